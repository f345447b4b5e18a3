package simulate

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/adapters/family"
	"gamsim/domain/table"
	"gamsim/internal/seedstream"
)

// Multinomial generates categorical observations whose class probabilities
// change smoothly with a single covariate, differently per class. Class
// log-intensities come from modified Gu & Wahba functions; the family's
// log-partition routine turns them into a valid simplex, and the sampler
// never renormalizes on its own. Columns: y (class index), x0.
func Multinomial(cfg MultinomialConfig) (*table.Table, *GroundTruth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	fam, err := family.NewMultinomial(cfg.Classes)
	if err != nil {
		return nil, nil, err
	}

	streams := seedstream.New(0, cfg.ReplicateSeed)
	rng := streams.Replicate()
	src := streams.ReplicateSource()

	x0 := make([]float64, cfg.N)
	for i := range x0 {
		x0[i] = rng.Float64()
	}

	y := make([]float64, cfg.N)
	intensity := make([][]float64, cfg.Classes-1)
	for k := range intensity {
		intensity[k] = make([]float64, cfg.N)
	}
	for i := 0; i < cfg.N; i++ {
		fs := classIntensities(x0[i])
		means := make([]float64, len(fs))
		for k, f := range fs {
			means[k] = math.Exp(f)
			intensity[k][i] = fs[k]
		}

		probs := make([]float64, cfg.Classes)
		for k := 0; k < cfg.Classes; k++ {
			lp, err := fam.LogPartition(k, means)
			if err != nil {
				return nil, nil, err
			}
			probs[k] = math.Exp(lp)
		}
		y[i] = distuv.NewCategorical(probs, src).Rand()
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
			"f0": intensity[0], "f1": intensity[1], "f2": intensity[2], "f3": intensity[3],
		},
		ResponseSummary: summarize(y),
	}
	return tbl, gt, nil
}

// classIntensities returns the four non-reference log-intensities at x.
func classIntensities(x float64) []float64 {
	return []float64{
		2 * math.Sin(math.Pi*x),
		0.2 * math.Exp(2*x),
		1e-4*math.Pow(x, 11)*math.Pow(10*(1-x), 6) + 10*math.Pow(10*x, 3)*math.Pow(1-x, 10),
		x + 0.03*x*x,
	}
}
