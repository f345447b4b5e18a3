package family

import (
	"fmt"
	"math"

	"gamsim/domain/core"
	"gamsim/ports"
)

// Multinomial normalizes K-1 non-reference class means into class
// log-probabilities. With mu_k > 0 per non-reference class, class k < K-1 has
// probability mu_k / (1 + sum(mu)) and the reference class 1 / (1 + sum(mu)).
type Multinomial struct {
	K int `json:"k"`
}

var _ ports.LogPartitionFamily = Multinomial{}

// NewMultinomial builds a family over k classes including the reference.
func NewMultinomial(k int) (Multinomial, error) {
	if k < 2 {
		return Multinomial{}, core.NewConfigurationError("k", "multinomial needs at least two classes")
	}
	return Multinomial{K: k}, nil
}

func (m Multinomial) Classes() int { return m.K }

// LogPartition returns the log-probability of one class from the K-1
// non-reference means. The caller exponentiates; it never renormalizes.
func (m Multinomial) LogPartition(class int, means []float64) (float64, error) {
	if class < 0 || class >= m.K {
		return 0, core.NewConfigurationError("class", fmt.Sprintf("class %d outside 0..%d", class, m.K-1))
	}
	if len(means) != m.K-1 {
		return 0, core.NewConfigurationError("means",
			fmt.Sprintf("got %d class means, expected %d", len(means), m.K-1))
	}
	sum := 1.0
	for i, mu := range means {
		if mu <= 0 || math.IsInf(mu, 0) || math.IsNaN(mu) {
			return 0, core.NewDistributionParameterError("multinomial", i, mu)
		}
		sum += mu
	}
	if class == m.K-1 {
		return -math.Log(sum), nil
	}
	return math.Log(means[class]) - math.Log(sum), nil
}
