package simulate

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/domain/design"
	"gamsim/ports"
)

// PopulationCoefficients is one fixed-effect coefficient vector. The first
// entry is the offset for its level, kept separate from the functional part
// for later reporting.
type PopulationCoefficients []float64

// Offset returns the level's intercept.
func (p PopulationCoefficients) Offset() float64 { return p[0] }

// drawPopulationCoefs draws a coefficient vector from the structural stream:
// the given offset followed by dim-1 smooth coefficients ~ N(0, scale^2).
func drawPopulationCoefs(offset float64, dim int, scale float64, structural *rand.Rand) PopulationCoefficients {
	coefs := make(PopulationCoefficients, dim)
	coefs[0] = offset
	n := distuv.Normal{Mu: 0, Sigma: scale, Src: structural}
	for i := 1; i < dim; i++ {
		coefs[i] = n.Rand()
	}
	return coefs
}

// linearCoefs builds the weakly non-linear alternative: zero offset and
// smooth coefficients spaced linearly in [-strength, strength].
func linearCoefs(dim int, strength float64) PopulationCoefficients {
	coefs := make(PopulationCoefficients, dim)
	for i, v := range linspace(-strength, strength, dim-1) {
		coefs[i+1] = v
	}
	return coefs
}

// zeroCoefs is the null level: no offset, no effect.
func zeroCoefs(dim int) PopulationCoefficients {
	return make(PopulationCoefficients, dim)
}

// evalSmoothEffect evaluates one covariate axis' fixed effect at the observed
// values through the basis provider.
func evalSmoothEffect(provider ports.BasisProvider, bundle *design.BasisBundle, coefs PopulationCoefficients, values []float64) ([]float64, error) {
	pred, _, err := provider.Predict(bundle, coefs, values)
	return pred, err
}

// Canonical test functions of Gu & Wahba (1991) over [0, 1].

func guWahbaSin(x float64) float64 { return 2 * math.Sin(math.Pi*x) }

func guWahbaExp(x float64) float64 { return math.Exp(2 * x) }

// guWahbaBump is the beta-density-shaped component.
func guWahbaBump(x float64) float64 {
	return 0.2*math.Pow(x, 11)*math.Pow(10*(1-x), 6) + 10*math.Pow(10*x, 3)*math.Pow(1-x, 10)
}
