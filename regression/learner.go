// Package regression trains and serves the cross-sectional side of the
// pipeline: predictor ranking, the four-family regression bank, and the
// single-predictor sensitivity analyzer.
package regression

import "commodity-forecast-engine/analytics"

// Learner is one regression model family over a fixed predictor layout.
// Fit trains against row-major feature vectors; a fitted Learner is never
// refit and Predict never mutates it, so concurrent reads are safe.
type Learner interface {
	Family() analytics.ModelFamily
	Fit(features [][]float64, target []float64) error
	Predict(features [][]float64) ([]float64, error)
}
