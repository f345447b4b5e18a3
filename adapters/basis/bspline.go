// Package basis provides a cubic B-spline BasisProvider. It exposes the
// basis-only operation the generator needs: no model is fitted to obtain a
// design matrix.
package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gamsim/domain/core"
	"gamsim/domain/design"
	"gamsim/ports"
)

const degree = 3

// BSplineProvider builds cubic B-spline design matrices with a difference
// penalty. Column 0 of every design matrix is the constant intercept; the
// first raw spline basis function is dropped so the columns stay linearly
// independent of it.
type BSplineProvider struct{}

// NewBSplineProvider returns a stateless provider.
func NewBSplineProvider() *BSplineProvider {
	return &BSplineProvider{}
}

var _ ports.BasisProvider = (*BSplineProvider)(nil)

// Basis returns the design matrix [1 | B_2 .. B_{k+1}] over the grid and the
// embedded difference penalty. The penalty block is D'D over the spline
// coefficients with a zero row and column for the intercept, which keeps it
// symmetric positive semi-definite.
func (p *BSplineProvider) Basis(grid []float64, cfg ports.SmoothConfig) (*design.BasisBundle, error) {
	nb := cfg.NumBasis
	order := cfg.PenaltyOrder
	if order <= 0 {
		order = 2
	}
	if nb < order+1 {
		return nil, core.NewConfigurationError("num_basis",
			fmt.Sprintf("need at least %d basis functions for a penalty of order %d", order+1, order))
	}
	if len(grid) < nb+1 {
		return nil, core.NewConfigurationError("grid",
			fmt.Sprintf("%d grid points cannot support %d basis functions", len(grid), nb+1))
	}
	lo, hi := gridRange(grid)
	if lo >= hi {
		return nil, core.NewConfigurationError("grid", "grid is degenerate")
	}

	knots := clampedKnots(lo, hi, nb+1)

	dim := nb + 1
	x := mat.NewDense(len(grid), dim, nil)
	for r, v := range grid {
		row, err := bsplineRow(v, knots, nb+1)
		if err != nil {
			return nil, err
		}
		x.Set(r, 0, 1)
		// Drop the first raw basis function.
		for c := 1; c < dim; c++ {
			x.Set(r, c, row[c])
		}
	}

	s := differencePenalty(dim, order)

	bundle := &design.BasisBundle{X: x, S: s, Grid: append([]float64(nil), grid...)}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Predict evaluates the given coefficients at new covariate values. The
// spline layout is reconstructed from the bundle's grid range and dimension,
// so any bundle this provider produced round-trips.
func (p *BSplineProvider) Predict(bundle *design.BasisBundle, coefs []float64, values []float64) ([]float64, *mat.Dense, error) {
	dim := bundle.Dim()
	if len(coefs) != dim {
		return nil, nil, core.NewConfigurationError("coefs",
			fmt.Sprintf("got %d coefficients for a %d-column basis", len(coefs), dim))
	}
	lo, hi := gridRange(bundle.Grid)
	knots := clampedKnots(lo, hi, dim)

	xNew := mat.NewDense(len(values), dim, nil)
	for r, v := range values {
		if v < lo || v > hi {
			return nil, nil, core.NewConfigurationError("values",
				fmt.Sprintf("value %g outside basis range [%g, %g]", v, lo, hi))
		}
		row, err := bsplineRow(v, knots, dim)
		if err != nil {
			return nil, nil, err
		}
		xNew.Set(r, 0, 1)
		for c := 1; c < dim; c++ {
			xNew.Set(r, c, row[c])
		}
	}

	var pred mat.VecDense
	pred.MulVec(xNew, mat.NewVecDense(dim, coefs))
	out := make([]float64, len(values))
	for i := range out {
		out[i] = pred.AtVec(i)
	}
	return out, xNew, nil
}

func gridRange(grid []float64) (lo, hi float64) {
	lo, hi = grid[0], grid[0]
	for _, v := range grid {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// clampedKnots builds a clamped uniform knot vector supporting m cubic basis
// functions over [lo, hi].
func clampedKnots(lo, hi float64, m int) []float64 {
	interior := m - degree - 1
	knots := make([]float64, 0, m+degree+1)
	for i := 0; i <= degree; i++ {
		knots = append(knots, lo)
	}
	for i := 1; i <= interior; i++ {
		knots = append(knots, lo+(hi-lo)*float64(i)/float64(interior+1))
	}
	for i := 0; i <= degree; i++ {
		knots = append(knots, hi)
	}
	return knots
}

// bsplineRow evaluates all m cubic basis functions at x by the Cox-de Boor
// recurrence.
func bsplineRow(x float64, knots []float64, m int) ([]float64, error) {
	if m+degree+1 != len(knots) {
		return nil, core.NewConfigurationError("knots", "knot vector does not match basis dimension")
	}
	n := make([]float64, len(knots)-1)
	hi := knots[len(knots)-1]
	if x == hi {
		// Right-closed at the final interval so the last basis reaches 1.
		for i := len(knots) - 2; i >= 0; i-- {
			if knots[i] < knots[i+1] {
				n[i] = 1
				break
			}
		}
	} else {
		for i := 0; i < len(n); i++ {
			if knots[i] <= x && x < knots[i+1] {
				n[i] = 1
				break
			}
		}
	}
	for k := 1; k <= degree; k++ {
		for i := 0; i < len(knots)-k-1; i++ {
			var v float64
			if d := knots[i+k] - knots[i]; d > 0 {
				v += (x - knots[i]) / d * n[i]
			}
			if d := knots[i+k+1] - knots[i+1]; d > 0 {
				v += (knots[i+k+1] - x) / d * n[i+1]
			}
			n[i] = v
		}
	}
	return n[:m], nil
}

// differencePenalty embeds D'D over the spline block of a dim-column design
// whose column 0 is the intercept.
func differencePenalty(dim, order int) *mat.SymDense {
	nb := dim - 1
	d := mat.NewDense(nb-order, nb, nil)
	for r := 0; r < nb-order; r++ {
		// Binomial coefficients with alternating signs, e.g. 1 -2 1 for order 2.
		coef := 1.0
		for j := 0; j <= order; j++ {
			if j > 0 {
				coef = coef * float64(order-j+1) / float64(j) * -1
			}
			d.Set(r, r+j, coef)
		}
	}
	var dtd mat.Dense
	dtd.Mul(d.T(), d)

	s := mat.NewSymDense(dim, nil)
	for i := 0; i < nb; i++ {
		for j := i; j < nb; j++ {
			s.SetSym(i+1, j+1, dtd.At(i, j))
		}
	}
	return s
}
