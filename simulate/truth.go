package simulate

import (
	"gonum.org/v1/gonum/mat"

	"gamsim/domain/core"
	"gamsim/domain/design"
)

// curveCap bounds the diagnostic random-curve matrix. Curves beyond the cap
// are still sampled but not recorded; the cap exists for plotting consumers.
const curveCap = 100

// GroundTruth bundles everything needed to score a fitted model against the
// generating process. Immutable once returned.
type GroundTruth struct {
	// RunID ties the bundle to the table of the same generation call.
	RunID core.RunID

	// RandomCurves holds the realized random curve of the first min(n, 100)
	// units over the full grid, one row per unit.
	RandomCurves *mat.Dense

	// UnitCoefs are the realized random coefficient vectors, one per unit.
	// The first entry of each is zero by the anchor constraint.
	UnitCoefs [][]float64

	// Bases are the basis bundles used for simulation, keyed by covariate.
	Bases map[string]*design.BasisBundle

	// Coefs are the population coefficient vectors per covariate, one per
	// factor level (a single entry for ungrouped scenarios).
	Coefs map[string][]PopulationCoefficients

	// Offsets are the per-level intercepts, reported separately.
	Offsets []float64

	// Components are per-row fixed-effect components for scenarios built on
	// closed-form test functions.
	Components map[string][]float64

	// ResponseSummary describes the emitted noisy responses.
	ResponseSummary Summary
}

// recordCurves copies the first min(n, cap) unit curves into the diagnostic
// matrix, accumulating intercept and slope like the emitted rows do.
func recordCurves(units []unitRecord, timeGrid []float64) *mat.Dense {
	rows := len(units)
	if rows > curveCap {
		rows = curveCap
	}
	if rows == 0 || len(timeGrid) == 0 {
		return nil
	}
	m := mat.NewDense(rows, len(timeGrid), nil)
	for i := 0; i < rows; i++ {
		for j, tv := range timeGrid {
			m.Set(i, j, units[i].seriesEffect(j, tv))
		}
	}
	return m
}

func collectCoefs(units []unitRecord) [][]float64 {
	out := make([][]float64, len(units))
	for i := range units {
		out[i] = units[i].coefs
	}
	return out
}
