package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrConfiguration covers invalid shapes and sizes: a grid smaller than the
	// requested basis dimension, a truncation lower bound above the upper bound,
	// an unsupported family/scenario combination. Raised before any sampling.
	ErrConfiguration = errors.New("invalid simulation configuration")

	// ErrDistributionParameter covers a computed mean or probability outside a
	// response family's valid domain. Raised at the offending row; the generator
	// never clamps or skips, since silent repair would corrupt the declared truth.
	ErrDistributionParameter = errors.New("distribution parameter outside valid domain")

	// ErrNumericalInstability covers a penalized covariance system that cannot be
	// factorized to acceptable conditioning. Never retried internally; the caller
	// controls lambda and grid choices.
	ErrNumericalInstability = errors.New("penalized system numerically unstable")
)

// Error constructors with context
func NewConfigurationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, field, reason)
}

func NewDistributionParameterError(family string, row int, value float64) error {
	return fmt.Errorf("%w: %s family at row %d: %g", ErrDistributionParameter, family, row, value)
}

func NewNumericalInstabilityError(what string) error {
	return fmt.Errorf("%w: %s", ErrNumericalInstability, what)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsDistributionParameterError(err error) bool {
	return errors.Is(err, ErrDistributionParameter)
}

func IsNumericalInstabilityError(err error) bool {
	return errors.Is(err, ErrNumericalInstability)
}
