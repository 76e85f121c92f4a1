package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero signals a metric that divides by an actual value
	// of exactly zero (MAPE).
	ErrDivisionByZero = errors.New("division by zero: actual sequence contains a zero value")

	// ErrDegenerateMetric signals a metric that is undefined for the given
	// data, e.g. R² over a constant actual sequence.
	ErrDegenerateMetric = errors.New("metric undefined for degenerate input")

	// ErrEmptyModelBank signals selection over a bank in which every model
	// family failed to fit.
	ErrEmptyModelBank = errors.New("no successfully fitted models in bank")
)

// FitError wraps a single model family's training failure. A FitError is
// isolated: the failing family is dropped from its bank and sibling
// families continue.
type FitError struct {
	Family ModelFamily
	Err    error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("model %s failed to fit: %v", e.Family, e.Err)
}

func (e *FitError) Unwrap() error { return e.Err }
