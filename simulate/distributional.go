package simulate

import (
	"math"

	"gamsim/adapters/family"
	"gamsim/domain/table"
	"gamsim/internal/seedstream"
)

// Distributional generates data for location-scale models: both the mean and
// the scale of the response change smoothly with the covariate. The Gaussian
// variant uses the components directly; the Gamma variant shifts both by one
// to keep them inside the family's domain. Columns: y, x0.
func Distributional(cfg DistributionalConfig) (*table.Table, *GroundTruth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	streams := seedstream.New(0, cfg.ReplicateSeed)
	rng := streams.Replicate()
	src := streams.ReplicateSource()

	x0 := make([]float64, cfg.N)
	means := make([]float64, cfg.N)
	scales := make([]float64, cfg.N)
	for i := range x0 {
		x0[i] = rng.Float64()
		means[i] = guWahbaBump(x0[i])
		scales[i] = 2 * math.Sin(math.Pi*x0[i])
	}

	y := make([]float64, cfg.N)
	for i := 0; i < cfg.N; i++ {
		var v float64
		var err error
		switch cfg.Kind {
		case DistributionalGamma:
			v, err = family.Gamma{}.SampleWithScale(means[i]+1, scales[i]+1, i, src)
		default:
			v, err = family.Gaussian{}.SampleWithScale(means[i], scales[i], i, src)
		}
		if err != nil {
			return nil, nil, err
		}
		y[i] = v
	}

	tbl, err := buildTable([]col{
		numeric("y", y),
		numeric("x0", x0),
	})
	if err != nil {
		return nil, nil, err
	}

	gt := &GroundTruth{
		RunID: tbl.RunID,
		Components: map[string][]float64{
			"mean":  means,
			"scale": scales,
		},
		ResponseSummary: summarize(y),
	}
	return tbl, gt, nil
}
