package simulate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/adapters/family"
	"gamsim/domain/core"
)

func TestMultinomialDeterminism(t *testing.T) {
	cfg := MultinomialConfig{N: 400, Classes: 5, ReplicateSeed: seedPtr(7)}

	a, _, err := Multinomial(cfg)
	require.NoError(t, err)
	b, _, err := Multinomial(cfg)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestMultinomialClassRange(t *testing.T) {
	cfg := MultinomialConfig{N: 400, Classes: 5, ReplicateSeed: seedPtr(7)}
	tbl, gt, err := Multinomial(cfg)
	require.NoError(t, err)

	y, ok := tbl.Numeric("y")
	require.True(t, ok)
	for i, v := range y {
		require.Equal(t, math.Trunc(v), v, "row %d: class must be integral", i)
		require.GreaterOrEqual(t, v, 0.0, "row %d", i)
		require.LessOrEqual(t, v, 4.0, "row %d", i)
	}

	// One log-intensity per non-reference class.
	for _, name := range []string{"f0", "f1", "f2", "f3"} {
		require.Len(t, gt.Components[name], cfg.N)
	}
}

func TestMultinomialFrequenciesAtFixedCovariate(t *testing.T) {
	// At a fixed covariate the class draw is plain categorical sampling, so
	// empirical frequencies over 100k draws stay within a percentage point of
	// the log-partition probabilities.
	fam, err := family.NewMultinomial(5)
	require.NoError(t, err)

	fs := classIntensities(0.5)
	means := make([]float64, len(fs))
	for k, f := range fs {
		means[k] = math.Exp(f)
	}
	probs := make([]float64, 5)
	for k := range probs {
		lp, err := fam.LogPartition(k, means)
		require.NoError(t, err)
		probs[k] = math.Exp(lp)
	}

	const n = 100000
	counts := make([]float64, 5)
	cat := distuv.NewCategorical(probs, rand.NewSource(42))
	for i := 0; i < n; i++ {
		counts[int(cat.Rand())]++
	}
	for k := range probs {
		assert.InDelta(t, probs[k], counts[k]/n, 0.01, "class %d", k)
	}
}

func TestMultinomialRejectsClassCount(t *testing.T) {
	_, _, err := Multinomial(MultinomialConfig{N: 10, Classes: 3})
	assert.True(t, core.IsConfigurationError(err))
}

func TestMultinomialZeroRows(t *testing.T) {
	tbl, _, err := Multinomial(MultinomialConfig{N: 0, Classes: 5, ReplicateSeed: seedPtr(1)})
	require.NoError(t, err)
	assert.Zero(t, tbl.Rows())
}
