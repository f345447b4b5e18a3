package simulate

import (
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"gamsim/internal/seedstream"
	"gamsim/internal/smooth"
)

// unitRecord is one simulated unit. Created once during assembly, read-only
// afterward; rng is retained so the unit's later response draws continue its
// own substream.
type unitRecord struct {
	id        int
	group     int
	x         float64
	z         []float64
	length    int
	intercept float64
	slope     float64
	coefs     []float64
	curve     []float64
	src       rand.Source
}

// unitPlan tells assembleUnits which per-unit draws a scenario needs.
type unitPlan struct {
	groupWeights []float64 // nil: no factor draw
	xGrid        []float64
	zGrid        []float64 // nil: no within-unit covariate
	truncMin     int
	gridLen      int
}

// assembleUnits samples every unit concurrently. Each unit consumes only its
// own substream of the replicate stream, so the result is independent of the
// degree of parallelism. Draw order within a unit is fixed: group, x, length,
// z values, intercept, slope, smooth coefficients.
func assembleUnits(streams *seedstream.Streams, sampler *smooth.Sampler, cfg PanelConfig, plan unitPlan) ([]unitRecord, error) {
	units := make([]unitRecord, cfg.UnitCount)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < cfg.UnitCount; i++ {
		i := i
		g.Go(func() error {
			units[i] = sampleUnit(i, streams.UnitSource(i), sampler, cfg, plan)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

func sampleUnit(id int, src rand.Source, sampler *smooth.Sampler, cfg PanelConfig, plan unitPlan) unitRecord {
	rng := rand.New(src)
	u := unitRecord{id: id, group: -1, src: src}

	if plan.groupWeights != nil {
		u.group = weightedChoice(plan.groupWeights, rng)
	}
	u.x = plan.xGrid[rng.Intn(len(plan.xGrid))]
	u.length = plan.truncMin + rng.Intn(plan.gridLen-plan.truncMin+1)
	if plan.zGrid != nil {
		u.z = make([]float64, u.length)
		for j := range u.z {
			u.z[j] = plan.zGrid[rng.Intn(len(plan.zGrid))]
		}
	}
	if cfg.SigmaIntercept > 0 {
		u.intercept = distuv.Normal{Mu: 0, Sigma: cfg.SigmaIntercept, Src: src}.Rand()
	}
	if cfg.SigmaSlope > 0 {
		u.slope = distuv.Normal{Mu: 0, Sigma: cfg.SigmaSlope, Src: src}.Rand()
	}
	u.coefs = sampler.SampleCoefs(src)
	u.curve = sampler.Curve(u.coefs)
	return u
}

// seriesEffect is the unit's total random contribution at grid index j.
func (u *unitRecord) seriesEffect(j int, timeValue float64) float64 {
	return u.curve[j] + u.intercept + u.slope*timeValue
}

// weightedChoice draws an index proportional to the given weights.
func weightedChoice(weights []float64, rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}
