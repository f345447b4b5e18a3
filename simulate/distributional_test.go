package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamsim/domain/core"
)

func TestDistributionalDeterminism(t *testing.T) {
	cfg := DistributionalConfig{N: 400, Kind: DistributionalGaussian, ReplicateSeed: seedPtr(7)}

	a, _, err := Distributional(cfg)
	require.NoError(t, err)
	b, _, err := Distributional(cfg)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestDistributionalGaussianComponents(t *testing.T) {
	cfg := DistributionalConfig{N: 400, Kind: DistributionalGaussian, ReplicateSeed: seedPtr(7)}
	tbl, gt, err := Distributional(cfg)
	require.NoError(t, err)

	assert.Equal(t, 400, tbl.Rows())
	require.Len(t, gt.Components["mean"], 400)
	require.Len(t, gt.Components["scale"], 400)

	// The scale component stays inside (0, 2] on the open unit interval.
	for i, s := range gt.Components["scale"] {
		require.Greater(t, s, 0.0, "row %d", i)
		require.LessOrEqual(t, s, 2.0, "row %d", i)
	}
}

func TestDistributionalGammaPositive(t *testing.T) {
	cfg := DistributionalConfig{N: 400, Kind: DistributionalGamma, ReplicateSeed: seedPtr(7)}
	tbl, _, err := Distributional(cfg)
	require.NoError(t, err)

	y, _ := tbl.Numeric("y")
	for i, v := range y {
		assert.Greater(t, v, 0.0, "row %d", i)
	}
}

func TestDistributionalRejectsUnknownKind(t *testing.T) {
	_, _, err := Distributional(DistributionalConfig{N: 10, Kind: "poisson"})
	assert.True(t, core.IsConfigurationError(err))
}
