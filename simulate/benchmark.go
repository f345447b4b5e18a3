package simulate

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/adapters/family"
	"gamsim/domain/table"
	"gamsim/internal/seedstream"
)

// Benchmark generates the classic four-smooth benchmark of Gu & Wahba (1991)
// as used by Wood et al. (2016): four uniform covariates, one effect truly
// zero everywhere, with the sinusoid scaled by the effect strength. Columns:
// y, x0..x3.
func Benchmark(cfg BenchmarkConfig) (*table.Table, *GroundTruth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	streams := seedstream.New(cfg.StructuralSeed, cfg.ReplicateSeed)
	rng := streams.Replicate()

	covs := make([][]float64, 4)
	for k := range covs {
		covs[k] = make([]float64, cfg.N)
		for i := range covs[k] {
			covs[k][i] = rng.Float64()
		}
	}

	f0 := make([]float64, cfg.N)
	f1 := make([]float64, cfg.N)
	f2 := make([]float64, cfg.N)
	f3 := make([]float64, cfg.N)
	eta := make([]float64, cfg.N)
	for i := 0; i < cfg.N; i++ {
		f0[i] = cfg.EffectStrength * guWahbaSin(covs[0][i])
		f1[i] = guWahbaExp(covs[1][i])
		f2[i] = guWahbaBump(covs[2][i])
		eta[i] = f0[i] + f1[i] + f2[i] + f3[i]
	}

	y, err := sampleBenchmarkResponses(cfg, eta, streams)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := buildTable([]col{
		numeric("y", y),
		numeric("x0", covs[0]),
		numeric("x1", covs[1]),
		numeric("x2", covs[2]),
		numeric("x3", covs[3]),
	})
	if err != nil {
		return nil, nil, err
	}

	gt := &GroundTruth{
		RunID: tbl.RunID,
		Components: map[string][]float64{
			"f0": f0, "f1": f1, "f2": f2, "f3": f3, "eta": eta,
		},
		ResponseSummary: summarize(y),
	}
	return tbl, gt, nil
}

// RandomFactorBenchmark is Benchmark plus a categorical covariate whose
// per-level offsets are drawn from the structural stream with standard
// deviation equal to the effect strength. Columns: y, x0..x3, x4.
func RandomFactorBenchmark(cfg BenchmarkConfig) (*table.Table, *GroundTruth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	streams := seedstream.New(cfg.StructuralSeed, cfg.ReplicateSeed)

	// Factor offsets are population truth: structural stream, fixed across
	// replicates for a fixed structural seed.
	offsets := make([]float64, cfg.FactorLevels)
	if cfg.EffectStrength > 0 {
		n := distuv.Normal{Mu: 0, Sigma: cfg.EffectStrength, Src: streams.Structural()}
		for i := range offsets {
			offsets[i] = n.Rand()
		}
	}

	rng := streams.Replicate()
	covs := make([][]float64, 4)
	for k := range covs {
		covs[k] = make([]float64, cfg.N)
		for i := range covs[k] {
			covs[k][i] = rng.Float64()
		}
	}
	levels := make([]int, cfg.N)
	labels := make([]string, cfg.N)
	for i := range levels {
		levels[i] = rng.Intn(cfg.FactorLevels)
		labels[i] = fmt.Sprintf("f_%d", levels[i])
	}

	f0 := make([]float64, cfg.N)
	f1 := make([]float64, cfg.N)
	f2 := make([]float64, cfg.N)
	f3 := make([]float64, cfg.N)
	f4 := make([]float64, cfg.N)
	eta := make([]float64, cfg.N)
	for i := 0; i < cfg.N; i++ {
		f0[i] = guWahbaSin(covs[0][i])
		f1[i] = guWahbaExp(covs[1][i])
		f2[i] = guWahbaBump(covs[2][i])
		f4[i] = offsets[levels[i]]
		eta[i] = f0[i] + f1[i] + f2[i] + f3[i] + f4[i]
	}

	y, err := sampleBenchmarkResponses(cfg, eta, streams)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := buildTable([]col{
		numeric("y", y),
		numeric("x0", covs[0]),
		numeric("x1", covs[1]),
		numeric("x2", covs[2]),
		numeric("x3", covs[3]),
		categorical("x4", labels),
	})
	if err != nil {
		return nil, nil, err
	}

	gt := &GroundTruth{
		RunID: tbl.RunID,
		Components: map[string][]float64{
			"f0": f0, "f1": f1, "f2": f2, "f3": f3, "f4": f4, "eta": eta,
		},
		Offsets:         offsets,
		ResponseSummary: summarize(y),
	}
	return tbl, gt, nil
}

// sampleBenchmarkResponses applies the family's inverse link and draws one
// observation per row. The binomial branch attenuates the linear predictor
// before the link, keeping probabilities away from the boundary as in the
// original design.
func sampleBenchmarkResponses(cfg BenchmarkConfig, eta []float64, streams *seedstream.Streams) ([]float64, error) {
	src := streams.ReplicateSource()
	_, isBinomial := cfg.Family.(family.Binomial)

	y := make([]float64, len(eta))
	for i, e := range eta {
		if isBinomial {
			e *= 0.1
		}
		mu := cfg.Family.InverseLink(e)
		v, err := cfg.Family.Sample(mu, i, src)
		if err != nil {
			return nil, err
		}
		y[i] = v
	}
	return y, nil
}
