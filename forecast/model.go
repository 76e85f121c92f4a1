// Package forecast fits and serves the temporal-extrapolation side of the
// pipeline: a bank of time-series model families over the monthly index
// series, and the engine that regenerates forecasts on demand from an
// already-fitted model.
package forecast

import (
	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// Model is one time-series model family. Fit trains against the full
// series (time-series evaluation here is in-sample goodness-of-fit, not a
// train/test split). A fitted Model is never refit; Forecast may be called
// any number of times with different horizons.
type Model interface {
	Family() analytics.ModelFamily
	Fit(s *dataset.Series) error
	// Fitted returns the in-sample one-step-ahead fitted values and the
	// offset into the training series they align with.
	Fitted() (values []float64, offset int)
	Forecast(horizon int) (*analytics.Forecast, error)
}

// zScore maps a confidence level to the two-sided normal quantile used for
// interval bounds. Unrecognized levels fall back to 95%.
func zScore(confidence float64) float64 {
	switch confidence {
	case 0.80:
		return 1.282
	case 0.90:
		return 1.645
	case 0.99:
		return 2.576
	default:
		return 1.960
	}
}
