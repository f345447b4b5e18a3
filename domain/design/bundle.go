// Package design holds the basis/penalty matrix pair a BasisProvider returns
// for one covariate axis.
package design

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"gamsim/domain/core"
)

// BasisBundle is the canonical object for one smooth term: a design matrix X
// evaluated over a covariate grid and the penalty matrix S whose quadratic
// form penalizes roughness of the fitted curve.
//
// Invariants: S is symmetric positive semi-definite, X has full column rank
// on the supplied grid. Dim() basis functions, GridLen() grid points.
type BasisBundle struct {
	// X is the design matrix, GridLen x Dim.
	X *mat.Dense
	// S is the penalty matrix, Dim x Dim.
	S *mat.SymDense
	// Grid is the covariate grid X was evaluated on.
	Grid []float64
}

// Dim returns the number of basis functions (columns of X).
func (b *BasisBundle) Dim() int {
	_, p := b.X.Dims()
	return p
}

// GridLen returns the number of grid points (rows of X).
func (b *BasisBundle) GridLen() int {
	t, _ := b.X.Dims()
	return t
}

// Validate ensures the bundle is internally consistent: matching shapes,
// symmetric S, and full column rank of X on the grid.
func (b *BasisBundle) Validate() error {
	if b.X == nil || b.S == nil {
		return core.NewConfigurationError("basis_bundle", "missing design or penalty matrix")
	}
	t, p := b.X.Dims()
	if len(b.Grid) != t {
		return core.NewConfigurationError("basis_bundle", "grid length does not match design rows")
	}
	if n := b.S.SymmetricDim(); n != p {
		return core.NewConfigurationError("basis_bundle", "penalty dimension does not match design columns")
	}
	if t < p {
		return core.NewConfigurationError("basis_bundle", "fewer grid points than basis functions")
	}

	var svd mat.SVD
	if !svd.Factorize(b.X, mat.SVDNone) {
		return core.NewNumericalInstabilityError("design matrix SVD failed")
	}
	values := svd.Values(nil)
	const rankTol = 1e-10
	if len(values) == 0 || values[len(values)-1] <= rankTol*math.Max(1, values[0]) {
		return core.NewConfigurationError("basis_bundle", "design matrix is rank deficient on the supplied grid")
	}
	return nil
}
