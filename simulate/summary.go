package simulate

import (
	"github.com/montanaflynn/stats"
)

// Summary holds empirical moments of the emitted responses, a quick sanity
// check for downstream consumers.
type Summary struct {
	Rows   int     `json:"rows"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// summarize computes the response summary. An empty response yields the zero
// summary rather than an error, matching the empty-table contract.
func summarize(y []float64) Summary {
	if len(y) == 0 {
		return Summary{}
	}
	mean, _ := stats.Mean(y)
	sd, _ := stats.StandardDeviation(y)
	min, _ := stats.Min(y)
	max, _ := stats.Max(y)
	median, _ := stats.Median(y)
	return Summary{
		Rows:   len(y),
		Mean:   mean,
		StdDev: sd,
		Min:    min,
		Max:    max,
		Median: median,
	}
}
