package ports

import (
	"gonum.org/v1/gonum/mat"

	"gamsim/domain/design"
)

// SmoothConfig specifies the smoothness of a basis requested from a provider.
type SmoothConfig struct {
	// Basis functions for the smooth term, excluding the intercept column.
	NumBasis int `json:"num_basis"`
	// Order of the difference penalty applied to adjacent coefficients.
	PenaltyOrder int `json:"penalty_order"`
}

// BasisProvider supplies realistic spline-like basis shapes. The generator
// treats it as a black box: any provider returning a full-column-rank design
// matrix and a symmetric positive semi-definite penalty works.
//
// Basis is basis-only by contract - obtaining a design matrix must not
// require a model fit as a side effect.
type BasisProvider interface {
	// Basis returns the design and penalty matrices for a covariate grid.
	// Fails with a configuration error when the grid is degenerate (fewer
	// points than basis functions).
	Basis(grid []float64, cfg SmoothConfig) (*design.BasisBundle, error)

	// Predict evaluates coefficients at new covariate values, returning the
	// prediction and the design submatrix used to compute it.
	Predict(bundle *design.BasisBundle, coefs []float64, values []float64) ([]float64, *mat.Dense, error)
}
