// Package simulate generates synthetic longitudinal datasets with a fully
// known generating process, so fitted additive models can be scored against
// ground truth. Each scenario is a pure function from an immutable config
// plus seeds to a long-format table and a ground-truth bundle.
package simulate

import (
	"fmt"
	"math"

	"gamsim/domain/core"
	"gamsim/ports"
)

// PanelConfig holds the knobs shared by the longitudinal scenarios.
type PanelConfig struct {
	// UnitCount is the number of simulated units (series). Zero is valid and
	// yields an empty table.
	UnitCount int `json:"unit_count"`
	// Sigma is the residual standard deviation.
	Sigma float64 `json:"sigma"`
	// Lambda is the penalty strength of the unit-level smooth.
	Lambda float64 `json:"lambda"`
	// SigmaCoef is the between-unit standard deviation of the random smooth's
	// coefficient means.
	SigmaCoef float64 `json:"sigma_coef"`
	// SigmaIntercept and SigmaSlope scale the random offset and drift.
	SigmaIntercept float64 `json:"sigma_intercept"`
	SigmaSlope     float64 `json:"sigma_slope"`
	// TimePoints and TimeStep define the time grid 0, step, ..., (T-1)*step.
	TimePoints int     `json:"time_points"`
	TimeStep   float64 `json:"time_step"`
	// XMax defines the between-unit covariate grid linspace(0, XMax, T).
	XMax float64 `json:"x_max"`
	// TruncationMin overrides the minimum observation length. Zero means the
	// default ceil(T/4).
	TruncationMin int `json:"truncation_min"`
	// NumBasisTime and NumBasisX size the smooth bases per covariate axis.
	NumBasisTime int `json:"num_basis_time"`
	NumBasisX    int `json:"num_basis_x"`
	// StructuralSeed fixes population-level truth; keep it stable across
	// repeated simulations meant to share the same truth.
	StructuralSeed uint64 `json:"structural_seed"`
	// ReplicateSeed varies per Monte-Carlo repetition. Nil draws fresh entropy.
	ReplicateSeed *uint64 `json:"replicate_seed,omitempty"`
}

// DefaultPanelConfig mirrors the canonical simulation settings: 1000 units on
// a 150-point time grid with sigma 5.5 and lambda 1e-4.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		UnitCount:      1000,
		Sigma:          5.5,
		Lambda:         1e-4,
		SigmaCoef:      5,
		SigmaIntercept: 2.5,
		SigmaSlope:     0.0025,
		TimePoints:     150,
		TimeStep:       20,
		XMax:           25,
		NumBasisTime:   15,
		NumBasisX:      5,
		StructuralSeed: 126,
	}
}

// Validate fails fast on shape violations, before any stream is consumed.
func (c PanelConfig) Validate() error {
	if c.UnitCount < 0 {
		return core.NewConfigurationError("unit_count", "must be non-negative")
	}
	if c.TimePoints < 1 {
		return core.NewConfigurationError("time_points", "must be at least 1")
	}
	if c.TimeStep <= 0 {
		return core.NewConfigurationError("time_step", "must be positive")
	}
	if c.Sigma <= 0 {
		return core.NewConfigurationError("sigma", "must be positive")
	}
	if c.Lambda < 0 {
		return core.NewConfigurationError("lambda", "must be non-negative")
	}
	if c.SigmaIntercept < 0 || c.SigmaSlope < 0 || c.SigmaCoef < 0 {
		return core.NewConfigurationError("sigma_intercept", "random effect scales must be non-negative")
	}
	if lo := c.truncationMin(); lo < 1 || lo > c.TimePoints {
		return core.NewConfigurationError("truncation_min",
			fmt.Sprintf("lower bound %d outside 1..%d", lo, c.TimePoints))
	}
	return nil
}

// truncationMin returns the lower bound of the observation-length draw.
func (c PanelConfig) truncationMin() int {
	if c.TruncationMin != 0 {
		return c.TruncationMin
	}
	return int(math.Ceil(float64(c.TimePoints) / 4))
}

// timeGrid and xGrid lay out the simulation grids.
func (c PanelConfig) timeGrid() []float64 {
	grid := make([]float64, c.TimePoints)
	for i := range grid {
		grid[i] = float64(i) * c.TimeStep
	}
	return grid
}

func (c PanelConfig) xGrid() []float64 {
	return linspace(0, c.XMax, c.TimePoints)
}

// HierarchicalConfig configures the grouped panel scenario: three (or more)
// factor levels, each with its own time and x effect.
type HierarchicalConfig struct {
	PanelConfig
	// GroupWeights are the sampling probabilities of the factor levels. The
	// last level's fixed effects are held at zero, as in the original design.
	GroupWeights []float64 `json:"group_weights"`
	// WeakNonlin is the strength of the last level's weakly non-linear x
	// effect.
	WeakNonlin float64 `json:"weak_nonlin"`
}

// DefaultHierarchicalConfig uses three levels with weights .5/.2/.3.
func DefaultHierarchicalConfig() HierarchicalConfig {
	return HierarchicalConfig{
		PanelConfig:  DefaultPanelConfig(),
		GroupWeights: []float64{0.5, 0.2, 0.3},
		WeakNonlin:   0.5,
	}
}

func (c HierarchicalConfig) Validate() error {
	if err := c.PanelConfig.Validate(); err != nil {
		return err
	}
	if len(c.GroupWeights) < 2 {
		return core.NewConfigurationError("group_weights", "need at least two factor levels")
	}
	sum := 0.0
	for _, w := range c.GroupWeights {
		if w < 0 {
			return core.NewConfigurationError("group_weights", "weights must be non-negative")
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		return core.NewConfigurationError("group_weights", fmt.Sprintf("weights sum to %g, expected 1", sum))
	}
	return nil
}

// ZeroComponent selects which fixed-effect component of the multi-covariate
// scenario is zeroed in the ground truth.
type ZeroComponent string

const (
	ZeroNone ZeroComponent = "none"
	ZeroX    ZeroComponent = "x"
	ZeroZ    ZeroComponent = "z"
)

// MultiCovariateConfig configures the ungrouped panel scenario with a
// within-unit covariate z next to the between-unit covariate x.
type MultiCovariateConfig struct {
	PanelConfig
	// NumBasisZ sizes the z smooth.
	NumBasisZ int `json:"num_basis_z"`
	// SetZero zeroes the x or z ground-truth component.
	SetZero ZeroComponent `json:"set_zero"`
}

// DefaultMultiCovariateConfig zeroes the x component, the original default.
func DefaultMultiCovariateConfig() MultiCovariateConfig {
	return MultiCovariateConfig{
		PanelConfig: DefaultPanelConfig(),
		NumBasisZ:   10,
		SetZero:     ZeroX,
	}
}

func (c MultiCovariateConfig) Validate() error {
	if err := c.PanelConfig.Validate(); err != nil {
		return err
	}
	switch c.SetZero {
	case ZeroNone, ZeroX, ZeroZ:
	default:
		return core.NewConfigurationError("set_zero", fmt.Sprintf("unknown component %q", c.SetZero))
	}
	return nil
}

// BenchmarkConfig configures the i.i.d. benchmark scenarios built on the
// canonical test functions.
type BenchmarkConfig struct {
	// N is the number of rows.
	N int `json:"n"`
	// EffectStrength linearly interpolates one component between no effect (0)
	// and maximal effect (1): the sinusoid for Benchmark, the random-factor
	// standard deviation for RandomFactorBenchmark.
	EffectStrength float64 `json:"effect_strength"`
	// Family draws the response; Gaussian, Gamma and Binomial are supported.
	Family ports.ResponseFamily `json:"-"`
	// FactorLevels is the size of the random factor in the random-factor
	// variant.
	FactorLevels int `json:"factor_levels"`
	// StructuralSeed fixes the random-factor offsets; ReplicateSeed varies the
	// sample.
	StructuralSeed uint64  `json:"structural_seed"`
	ReplicateSeed  *uint64 `json:"replicate_seed,omitempty"`
}

// DefaultBenchmarkConfig leaves the family to the caller.
func DefaultBenchmarkConfig() BenchmarkConfig {
	return BenchmarkConfig{
		N:              1000,
		EffectStrength: 1,
		FactorLevels:   40,
		StructuralSeed: 126,
	}
}

func (c BenchmarkConfig) Validate() error {
	if c.N < 0 {
		return core.NewConfigurationError("n", "must be non-negative")
	}
	if c.EffectStrength < 0 || c.EffectStrength > 1 {
		return core.NewConfigurationError("effect_strength", "must lie in [0, 1]")
	}
	if c.Family == nil {
		return core.NewConfigurationError("family", "response family is required")
	}
	if c.FactorLevels < 1 {
		return core.NewConfigurationError("factor_levels", "must be at least 1")
	}
	return nil
}

// MultinomialConfig configures the categorical scenario: class probabilities
// change smoothly with a single covariate.
type MultinomialConfig struct {
	N int `json:"n"`
	// Classes counts all classes including the reference.
	Classes       int     `json:"classes"`
	ReplicateSeed *uint64 `json:"replicate_seed,omitempty"`
}

func DefaultMultinomialConfig() MultinomialConfig {
	return MultinomialConfig{N: 1000, Classes: 5}
}

func (c MultinomialConfig) Validate() error {
	if c.N < 0 {
		return core.NewConfigurationError("n", "must be non-negative")
	}
	if c.Classes != 5 {
		return core.NewConfigurationError("classes", "scenario defines smooth intensities for exactly 5 classes")
	}
	return nil
}

// DistributionalKind selects the response family of the distributional
// scenario, where mean and scale both change smoothly.
type DistributionalKind string

const (
	DistributionalGaussian DistributionalKind = "gaussian"
	DistributionalGamma    DistributionalKind = "gamma"
)

// DistributionalConfig configures the location-scale scenario.
type DistributionalConfig struct {
	N             int                `json:"n"`
	Kind          DistributionalKind `json:"kind"`
	ReplicateSeed *uint64            `json:"replicate_seed,omitempty"`
}

func DefaultDistributionalConfig() DistributionalConfig {
	return DistributionalConfig{N: 1000, Kind: DistributionalGaussian}
}

func (c DistributionalConfig) Validate() error {
	if c.N < 0 {
		return core.NewConfigurationError("n", "must be non-negative")
	}
	switch c.Kind {
	case DistributionalGaussian, DistributionalGamma:
	default:
		return core.NewConfigurationError("kind", fmt.Sprintf("unsupported family %q", c.Kind))
	}
	return nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
