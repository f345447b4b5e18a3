package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamsim/adapters/family"
	"gamsim/domain/core"
)

func testBenchmarkConfig() BenchmarkConfig {
	return BenchmarkConfig{
		N:              500,
		EffectStrength: 1,
		Family:         family.Gaussian{Sigma: 2},
		FactorLevels:   20,
		StructuralSeed: 126,
		ReplicateSeed:  seedPtr(7),
	}
}

func TestBenchmarkDeterminism(t *testing.T) {
	cfg := testBenchmarkConfig()

	a, _, err := Benchmark(cfg)
	require.NoError(t, err)
	b, _, err := Benchmark(cfg)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestBenchmarkShape(t *testing.T) {
	tbl, gt, err := Benchmark(testBenchmarkConfig())
	require.NoError(t, err)

	assert.Equal(t, 500, tbl.Rows())
	for _, name := range []string{"y", "x0", "x1", "x2", "x3"} {
		v, ok := tbl.Numeric(name)
		require.True(t, ok, "missing column %q", name)
		require.Len(t, v, 500)
	}

	// Covariates are uniform on the unit interval.
	for _, name := range []string{"x0", "x1", "x2", "x3"} {
		v, _ := tbl.Numeric(name)
		for i, x := range v {
			require.GreaterOrEqual(t, x, 0.0, "%s[%d]", name, i)
			require.Less(t, x, 1.0, "%s[%d]", name, i)
		}
	}

	// The fourth effect is identically zero; eta sums the components.
	for i, v := range gt.Components["f3"] {
		require.Zero(t, v, "f3[%d]", i)
		want := gt.Components["f0"][i] + gt.Components["f1"][i] + gt.Components["f2"][i]
		require.InDelta(t, want, gt.Components["eta"][i], 1e-12)
	}
}

func TestBenchmarkZeroStrength(t *testing.T) {
	cfg := testBenchmarkConfig()
	cfg.EffectStrength = 0

	_, gt, err := Benchmark(cfg)
	require.NoError(t, err)
	for i, v := range gt.Components["f0"] {
		assert.Zero(t, v, "f0[%d]", i)
	}
}

func TestBenchmarkGammaFamily(t *testing.T) {
	cfg := testBenchmarkConfig()
	cfg.Family = family.Gamma{Scale: 2}

	tbl, _, err := Benchmark(cfg)
	require.NoError(t, err)

	y, _ := tbl.Numeric("y")
	for i, v := range y {
		assert.Greater(t, v, 0.0, "row %d", i)
	}
}

func TestBenchmarkBinomialFamily(t *testing.T) {
	cfg := testBenchmarkConfig()
	cfg.Family = family.Binomial{}

	tbl, _, err := Benchmark(cfg)
	require.NoError(t, err)

	y, _ := tbl.Numeric("y")
	for i, v := range y {
		assert.Contains(t, []float64{0, 1}, v, "row %d", i)
	}
}

func TestBenchmarkRequiresFamily(t *testing.T) {
	cfg := testBenchmarkConfig()
	cfg.Family = nil

	_, _, err := Benchmark(cfg)
	assert.True(t, core.IsConfigurationError(err))
}

func TestRandomFactorOffsetsFixedAcrossReplicates(t *testing.T) {
	cfg := testBenchmarkConfig()

	_, a, err := RandomFactorBenchmark(cfg)
	require.NoError(t, err)
	cfg.ReplicateSeed = seedPtr(8)
	_, b, err := RandomFactorBenchmark(cfg)
	require.NoError(t, err)

	// Level offsets are population truth: only the structural seed moves them.
	require.Len(t, a.Offsets, cfg.FactorLevels)
	assert.Equal(t, a.Offsets, b.Offsets)

	cfg.StructuralSeed = 127
	_, c, err := RandomFactorBenchmark(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Offsets, c.Offsets)
}

func TestRandomFactorLevelsAndComponents(t *testing.T) {
	cfg := testBenchmarkConfig()
	tbl, gt, err := RandomFactorBenchmark(cfg)
	require.NoError(t, err)

	labels, ok := tbl.Categorical("x4")
	require.True(t, ok)
	distinct := map[string]struct{}{}
	for _, l := range labels {
		distinct[l] = struct{}{}
	}
	assert.LessOrEqual(t, len(distinct), cfg.FactorLevels)
	assert.Greater(t, len(distinct), 1)

	for i := range gt.Components["eta"] {
		want := gt.Components["f0"][i] + gt.Components["f1"][i] +
			gt.Components["f2"][i] + gt.Components["f4"][i]
		require.InDelta(t, want, gt.Components["eta"][i], 1e-12)
	}
}

func TestRandomFactorZeroStrengthHasNoOffsets(t *testing.T) {
	cfg := testBenchmarkConfig()
	cfg.EffectStrength = 0

	_, gt, err := RandomFactorBenchmark(cfg)
	require.NoError(t, err)
	for i, v := range gt.Offsets {
		assert.Zero(t, v, "level %d", i)
	}
}
