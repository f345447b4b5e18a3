// Package smooth draws unit-specific random curves from the penalized
// multivariate normal implied by a basis/penalty pair (Wood 2017, 6.10).
package smooth

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/domain/core"
	"gamsim/domain/design"
)

// Sampler draws realized coefficient vectors c ~ N(m, V) with
// V = sigma^2 * (X'X + lambda*S)^-1 and per-unit means m ~ N(0, sigmaB^2 I).
// Drawing m before c makes units a two-stage hierarchical sample rather than
// i.i.d. draws from N(0, V), matching realistic between-subject variability.
type Sampler struct {
	bundle *design.BasisBundle
	cholV  mat.Cholesky
	sigmaB float64
	dim    int
}

// NewSampler factorizes the penalized system once. The system is solved, not
// densely inverted: a Cholesky factorization of X'X + lambda*S backs the
// solve for V, and a second factorization of V backs the sampling.
func NewSampler(bundle *design.BasisBundle, lambda, sigma, sigmaB float64) (*Sampler, error) {
	if lambda < 0 {
		return nil, core.NewConfigurationError("lambda", "penalty strength must be non-negative")
	}
	if sigma <= 0 {
		return nil, core.NewConfigurationError("sigma", "noise scale must be positive")
	}
	p := bundle.Dim()

	// A = X'X + lambda*S
	var xtx mat.Dense
	xtx.Mul(bundle.X.T(), bundle.X)
	a := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			a.SetSym(i, j, xtx.At(i, j)+lambda*bundle.S.At(i, j))
		}
	}

	var cholA mat.Cholesky
	if !cholA.Factorize(a) {
		return nil, core.NewNumericalInstabilityError("X'X + lambda*S is not positive definite")
	}

	// V = sigma^2 * A^-1, via a solve against the identity.
	eye := mat.NewDiagDense(p, nil)
	for i := 0; i < p; i++ {
		eye.SetDiag(i, 1)
	}
	var ainv mat.Dense
	if err := cholA.SolveTo(&ainv, eye); err != nil {
		return nil, core.NewNumericalInstabilityError("solving penalized system failed")
	}

	v := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			// Average the off-diagonal pair to keep V exactly symmetric.
			v.SetSym(i, j, sigma*sigma*0.5*(ainv.At(i, j)+ainv.At(j, i)))
		}
	}

	s := &Sampler{bundle: bundle, sigmaB: sigmaB, dim: p}
	if !s.cholV.Factorize(v) {
		return nil, core.NewNumericalInstabilityError("penalized covariance is not positive definite")
	}
	return s, nil
}

// Dim returns the coefficient dimension.
func (s *Sampler) Dim() int { return s.dim }

// SampleCoefs draws one unit's realized coefficient vector from the given
// source and forces the first coefficient to zero, so the random curve
// contributes nothing at the reference point and intercepts stay attributable
// to fixed effects.
func (s *Sampler) SampleCoefs(src rand.Source) []float64 {
	mean := make([]float64, s.dim)
	if s.sigmaB > 0 {
		n := distuv.Normal{Mu: 0, Sigma: s.sigmaB, Src: src}
		for i := range mean {
			mean[i] = n.Rand()
		}
	}
	coefs := distmv.NormalRand(nil, mean, &s.cholV, src)
	coefs[0] = 0
	return coefs
}

// Curve evaluates X*c over the full grid.
func (s *Sampler) Curve(coefs []float64) []float64 {
	var y mat.VecDense
	y.MulVec(s.bundle.X, mat.NewVecDense(len(coefs), coefs))
	out := make([]float64, y.Len())
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out
}
