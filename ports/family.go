package ports

import (
	"golang.org/x/exp/rand"
)

// ResponseFamily draws one observation given a linear predictor. Every
// implementation must reject a mean or probability outside its valid domain
// rather than silently clipping.
type ResponseFamily interface {
	// Name identifies the family in error messages and metadata.
	Name() string

	// InverseLink maps the linear predictor eta to the family's mean scale.
	InverseLink(eta float64) float64

	// Sample draws one observation for the mean value at the given row.
	// The row index is reported in domain errors.
	Sample(mu float64, row int, src rand.Source) (float64, error)
}

// LogPartitionFamily normalizes per-class log-intensities into class
// log-probabilities. The sampler delegates normalization entirely to this
// collaborator; it never renormalizes manually.
type LogPartitionFamily interface {
	// Classes returns K, the total number of classes including the reference.
	Classes() int

	// LogPartition returns the log-probability contribution of the given
	// class for one row, from the K-1 non-reference class means.
	LogPartition(class int, means []float64) (float64, error)
}
