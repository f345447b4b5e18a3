package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamsim/adapters/basis"
	"gamsim/domain/core"
)

func testMultiCovariateConfig() MultiCovariateConfig {
	return MultiCovariateConfig{
		PanelConfig: testPanelConfig(),
		NumBasisZ:   7,
		SetZero:     ZeroX,
	}
}

func TestMultiCovariateDeterminism(t *testing.T) {
	p := basis.NewBSplineProvider()
	cfg := testMultiCovariateConfig()

	a, _, err := MultiCovariate(cfg, p)
	require.NoError(t, err)
	b, _, err := MultiCovariate(cfg, p)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestMultiCovariateColumns(t *testing.T) {
	tbl, gt, err := MultiCovariate(testMultiCovariateConfig(), basis.NewBSplineProvider())
	require.NoError(t, err)

	for _, name := range []string{"y", "truth", "time", "x", "z"} {
		_, ok := tbl.Numeric(name)
		assert.True(t, ok, "missing numeric column %q", name)
	}
	_, ok := tbl.Categorical("series")
	assert.True(t, ok)

	zs, _ := tbl.Numeric("z")
	for i, z := range zs {
		require.GreaterOrEqual(t, z, -1.0, "z[%d]", i)
		require.LessOrEqual(t, z, 1.0, "z[%d]", i)
	}

	require.Len(t, gt.Bases, 3)
	require.Len(t, gt.Coefs["z"], 1)
}

func TestMultiCovariateZeroedComponents(t *testing.T) {
	p := basis.NewBSplineProvider()

	// The covariate layout only depends on the seeds, so the truth columns of
	// the three variants differ exactly by the dropped component.
	truthFor := func(zero ZeroComponent) []float64 {
		cfg := testMultiCovariateConfig()
		cfg.SetZero = zero
		tbl, _, err := MultiCovariate(cfg, p)
		require.NoError(t, err)
		truth, _ := tbl.Numeric("truth")
		return truth
	}

	cfg := testMultiCovariateConfig()
	tbl, _, err := MultiCovariate(cfg, p)
	require.NoError(t, err)
	xs, _ := tbl.Numeric("x")
	zs, _ := tbl.Numeric("z")

	full := truthFor(ZeroNone)
	noX := truthFor(ZeroX)
	noZ := truthFor(ZeroZ)
	require.Len(t, noX, len(full))
	require.Len(t, noZ, len(full))

	// full - noX recovers the x effect, so it is a function of x alone; same
	// for full - noZ and z.
	xEffect := map[float64]float64{}
	zEffect := map[float64]float64{}
	for i := range full {
		fx := full[i] - noX[i]
		if want, ok := xEffect[xs[i]]; ok {
			require.InDelta(t, want, fx, 1e-9, "row %d", i)
		} else {
			xEffect[xs[i]] = fx
		}
		fz := full[i] - noZ[i]
		if want, ok := zEffect[zs[i]]; ok {
			require.InDelta(t, want, fz, 1e-9, "row %d", i)
		} else {
			zEffect[zs[i]] = fz
		}
	}

	differs := false
	for i := range full {
		if full[i] != noX[i] {
			differs = true
			break
		}
	}
	assert.True(t, differs, "zeroing x should change the truth somewhere")
}

func TestMultiCovariateRejectsUnknownComponent(t *testing.T) {
	cfg := testMultiCovariateConfig()
	cfg.SetZero = ZeroComponent("w")

	_, _, err := MultiCovariate(cfg, basis.NewBSplineProvider())
	assert.True(t, core.IsConfigurationError(err))
}
