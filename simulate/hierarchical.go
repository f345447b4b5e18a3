package simulate

import (
	"fmt"

	"gamsim/adapters/family"
	"gamsim/domain/design"
	"gamsim/domain/table"
	"gamsim/internal/seedstream"
	"gamsim/internal/smooth"
	"gamsim/ports"
)

// Hierarchical generates the grouped panel scenario: an additive time-series
// model with unit-level non-linear random effects, where the time and x
// effects differ across factor levels. The output table has columns y, truth,
// time, x, fact and series.
func Hierarchical(cfg HierarchicalConfig, provider ports.BasisProvider) (*table.Table, *GroundTruth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	streams := seedstream.New(cfg.StructuralSeed, cfg.ReplicateSeed)
	timeGrid := cfg.timeGrid()
	xGrid := cfg.xGrid()

	timeBundle, err := provider.Basis(timeGrid, ports.SmoothConfig{NumBasis: cfg.NumBasisTime})
	if err != nil {
		return nil, nil, err
	}
	xBundle, err := provider.Basis(xGrid, ports.SmoothConfig{NumBasis: cfg.NumBasisX})
	if err != nil {
		return nil, nil, err
	}

	// Population truth, structural stream only. The last level is the null
	// level: zero time effect, weakly linear x effect.
	levels := len(cfg.GroupWeights)
	timeCoefs := make([]PopulationCoefficients, levels)
	xCoefs := make([]PopulationCoefficients, levels)
	offsets := make([]float64, levels)
	for g := 0; g < levels; g++ {
		if g == levels-1 {
			timeCoefs[g] = zeroCoefs(timeBundle.Dim())
			xCoefs[g] = linearCoefs(xBundle.Dim(), cfg.WeakNonlin)
		} else {
			offset := 5.0
			if g%2 == 1 {
				offset = -5.0
			}
			timeCoefs[g] = drawPopulationCoefs(offset, timeBundle.Dim(), 5, streams.Structural())
			xCoefs[g] = drawPopulationCoefs(0, xBundle.Dim(), 5, streams.Structural())
		}
		offsets[g] = timeCoefs[g].Offset()
	}

	sampler, err := smooth.NewSampler(timeBundle, cfg.Lambda, cfg.Sigma, cfg.SigmaCoef)
	if err != nil {
		return nil, nil, err
	}

	units, err := assembleUnits(streams, sampler, cfg.PanelConfig, unitPlan{
		groupWeights: cfg.GroupWeights,
		xGrid:        xGrid,
		truncMin:     cfg.truncationMin(),
		gridLen:      cfg.TimePoints,
	})
	if err != nil {
		return nil, nil, err
	}

	rows := 0
	for _, u := range units {
		rows += u.length
	}

	times := make([]float64, 0, rows)
	xs := make([]float64, 0, rows)
	facts := make([]string, 0, rows)
	series := make([]string, 0, rows)
	ft := make([]float64, 0, rows)
	for _, u := range units {
		for j := 0; j < u.length; j++ {
			times = append(times, timeGrid[j])
			xs = append(xs, u.x)
			facts = append(facts, fmt.Sprintf("fact_%d", u.group+1))
			series = append(series, fmt.Sprintf("series_%d", u.id))
			ft = append(ft, u.seriesEffect(j, timeGrid[j]))
		}
	}

	// Fixed effects per factor level, evaluated at the observed covariates.
	truth := make([]float64, rows)
	for g := 0; g < levels; g++ {
		idx := make([]int, 0, rows)
		gTimes := make([]float64, 0, rows)
		gXs := make([]float64, 0, rows)
		label := fmt.Sprintf("fact_%d", g+1)
		for i := range facts {
			if facts[i] == label {
				idx = append(idx, i)
				gTimes = append(gTimes, times[i])
				gXs = append(gXs, xs[i])
			}
		}
		if len(idx) == 0 {
			continue
		}
		f0, err := evalSmoothEffect(provider, timeBundle, timeCoefs[g], gTimes)
		if err != nil {
			return nil, nil, err
		}
		f1, err := evalSmoothEffect(provider, xBundle, xCoefs[g], gXs)
		if err != nil {
			return nil, nil, err
		}
		for k, i := range idx {
			truth[i] = f0[k] + f1[k]
		}
	}

	// Responses, continuing each unit's own substream.
	noise := family.Gaussian{Sigma: cfg.Sigma}
	y := make([]float64, rows)
	row := 0
	for _, u := range units {
		for j := 0; j < u.length; j++ {
			v, err := noise.Sample(truth[row]+ft[row], row, u.src)
			if err != nil {
				return nil, nil, err
			}
			y[row] = v
			row++
		}
	}

	tbl, err := buildTable([]col{
		numeric("y", y),
		numeric("truth", truth),
		numeric("time", times),
		numeric("x", xs),
		categorical("fact", facts),
		categorical("series", series),
	})
	if err != nil {
		return nil, nil, err
	}

	gt := &GroundTruth{
		RunID:        tbl.RunID,
		RandomCurves: recordCurves(units, timeGrid),
		UnitCoefs:    collectCoefs(units),
		Bases:        map[string]*design.BasisBundle{"time": timeBundle, "x": xBundle},
		Coefs: map[string][]PopulationCoefficients{
			"time": timeCoefs,
			"x":    xCoefs,
		},
		Offsets:         offsets,
		ResponseSummary: summarize(y),
	}
	return tbl, gt, nil
}
