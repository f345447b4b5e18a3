// Package family implements the response families a generator scenario can
// draw observations from: Gaussian, Gamma, Binomial, and a multinomial
// log-partition family. Every branch rejects parameters outside the family's
// valid domain instead of clipping, since clipped draws would no longer match
// the declared ground truth.
package family

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/domain/core"
	"gamsim/ports"
)

// Gaussian draws y ~ N(mu, sigma^2) with an identity link.
type Gaussian struct {
	Sigma float64 `json:"sigma"`
}

var _ ports.ResponseFamily = Gaussian{}

func (Gaussian) Name() string { return "gaussian" }

func (Gaussian) InverseLink(eta float64) float64 { return eta }

func (g Gaussian) Sample(mu float64, row int, src rand.Source) (float64, error) {
	return g.SampleWithScale(mu, g.Sigma, row, src)
}

// SampleWithScale draws with a per-row standard deviation; distributional
// scenarios vary the scale smoothly across rows.
func (Gaussian) SampleWithScale(mu, sigma float64, row int, src rand.Source) (float64, error) {
	if sigma <= 0 {
		return 0, core.NewDistributionParameterError("gaussian", row, sigma)
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}.Rand(), nil
}

// Gamma draws from a mean/dispersion parameterization with a log link:
// shape alpha = 1/phi, rate beta = alpha/mu, so E[y] = mu and Var[y] =
// phi*mu^2.
type Gamma struct {
	Scale float64 `json:"scale"` // dispersion phi
}

var _ ports.ResponseFamily = Gamma{}

func (Gamma) Name() string { return "gamma" }

func (Gamma) InverseLink(eta float64) float64 { return math.Exp(eta) }

func (g Gamma) Sample(mu float64, row int, src rand.Source) (float64, error) {
	return g.SampleWithScale(mu, g.Scale, row, src)
}

// SampleWithScale draws with a per-row dispersion.
func (Gamma) SampleWithScale(mu, phi float64, row int, src rand.Source) (float64, error) {
	if mu <= 0 {
		return 0, core.NewDistributionParameterError("gamma", row, mu)
	}
	if phi <= 0 {
		return 0, core.NewDistributionParameterError("gamma", row, phi)
	}
	alpha := 1 / phi
	beta := alpha / mu
	return distuv.Gamma{Alpha: alpha, Beta: beta, Src: src}.Rand(), nil
}

// Binomial draws counts out of a fixed number of trials with a logit link.
// One trial is a Bernoulli draw, the original's default.
type Binomial struct {
	Trials int `json:"trials"`
}

var _ ports.ResponseFamily = Binomial{}

func (Binomial) Name() string { return "binomial" }

func (Binomial) InverseLink(eta float64) float64 { return 1 / (1 + math.Exp(-eta)) }

func (b Binomial) Sample(p float64, row int, src rand.Source) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, core.NewDistributionParameterError("binomial", row, p)
	}
	trials := b.Trials
	if trials == 0 {
		trials = 1
	}
	if trials == 1 {
		return distuv.Bernoulli{P: p, Src: src}.Rand(), nil
	}
	return distuv.Binomial{N: float64(trials), P: p, Src: src}.Rand(), nil
}
