package smooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gamsim/adapters/basis"
	"gamsim/domain/core"
	"gamsim/domain/design"
	"gamsim/ports"
)

func testBundle(t *testing.T) *design.BasisBundle {
	t.Helper()
	grid := make([]float64, 60)
	for i := range grid {
		grid[i] = float64(i)
	}
	bundle, err := basis.NewBSplineProvider().Basis(grid, ports.SmoothConfig{NumBasis: 9})
	require.NoError(t, err)
	return bundle
}

func TestSamplerAnchorsFirstCoefficient(t *testing.T) {
	s, err := NewSampler(testBundle(t), 1e-4, 2.0, 5.0)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		coefs := s.SampleCoefs(rand.NewSource(uint64(i)))
		require.Len(t, coefs, s.Dim())
		assert.Zero(t, coefs[0], "unit %d", i)
	}
}

func TestSamplerDeterministicPerSource(t *testing.T) {
	s, err := NewSampler(testBundle(t), 1e-4, 2.0, 5.0)
	require.NoError(t, err)

	a := s.SampleCoefs(rand.NewSource(7))
	b := s.SampleCoefs(rand.NewSource(7))
	assert.Equal(t, a, b)

	c := s.SampleCoefs(rand.NewSource(8))
	assert.NotEqual(t, a, c)
}

func TestCurveMatchesDesign(t *testing.T) {
	bundle := testBundle(t)
	s, err := NewSampler(bundle, 1e-4, 2.0, 5.0)
	require.NoError(t, err)

	coefs := s.SampleCoefs(rand.NewSource(3))
	curve := s.Curve(coefs)
	require.Len(t, curve, bundle.GridLen())

	// The anchor zeroes the intercept column, so the curve at any point is a
	// combination of spline columns only.
	for r := 0; r < bundle.GridLen(); r++ {
		want := 0.0
		for c := 1; c < bundle.Dim(); c++ {
			want += bundle.X.At(r, c) * coefs[c]
		}
		assert.InDelta(t, want, curve[r], 1e-9)
	}
}

func TestSamplerRejectsBadConfig(t *testing.T) {
	bundle := testBundle(t)

	_, err := NewSampler(bundle, -1, 2.0, 5.0)
	assert.True(t, core.IsConfigurationError(err))

	_, err = NewSampler(bundle, 1e-4, 0, 5.0)
	assert.True(t, core.IsConfigurationError(err))
}

func TestZeroHeterogeneityMeansCenteredDraws(t *testing.T) {
	s, err := NewSampler(testBundle(t), 1e-2, 1.0, 0)
	require.NoError(t, err)

	// With sigmaB = 0 the mean stage is skipped; the empirical mean of each
	// coefficient over many units stays near zero.
	const n = 2000
	sums := make([]float64, s.Dim())
	for i := 0; i < n; i++ {
		for j, v := range s.SampleCoefs(rand.NewSource(uint64(i))) {
			sums[j] += v
		}
	}
	for j := 1; j < s.Dim(); j++ {
		assert.InDelta(t, 0, sums[j]/n, 0.2, "coefficient %d", j)
	}
}
