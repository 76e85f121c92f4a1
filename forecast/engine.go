package forecast

import (
	"errors"
	"fmt"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// ErrInvalidHorizon rejects a dynamic forecast whose target month is not
// strictly after the reference month. This is user-input validation: no
// computation happens and nothing is clamped.
var ErrInvalidHorizon = errors.New("invalid horizon: target must be in the future")

// HorizonBetween computes the forecast horizon in months from reference to
// target.
func HorizonBetween(reference, target dataset.Month) (int, error) {
	if !target.Valid() {
		return 0, fmt.Errorf("target month %d out of range 1..12", target.Month)
	}
	h := reference.MonthsUntil(target)
	if h <= 0 {
		return 0, ErrInvalidHorizon
	}
	return h, nil
}

// WindowedForecast is a dynamic forecast plus the trailing slice of
// observed history requested for display.
type WindowedForecast struct {
	Forecast *analytics.Forecast `json:"forecast"`
	History  []dataset.Point     `json:"history"`
	Target   dataset.Month       `json:"target"`
	Horizon  int                 `json:"horizon"`
}

// Engine regenerates forecasts on demand from a model fitted once at
// pipeline start. The reference month is the final observation of the
// training series; it is a property of the fitted run, not request input.
// The engine never refits, so concurrent reads of the held model are safe.
type Engine struct {
	model     Model
	series    *dataset.Series
	reference dataset.Month
}

// NewEngine wraps an already-fitted model and its training series.
func NewEngine(model Model, series *dataset.Series) *Engine {
	return &Engine{model: model, series: series, reference: series.End()}
}

// Reference returns the month horizons are counted from.
func (e *Engine) Reference() dataset.Month { return e.reference }

// ForecastTo produces a fresh forecast covering every month from the
// reference up to and including the target.
func (e *Engine) ForecastTo(target dataset.Month) (*analytics.Forecast, error) {
	h, err := HorizonBetween(e.reference, target)
	if err != nil {
		return nil, err
	}
	return e.model.Forecast(h)
}

// WindowedForecastTo is ForecastTo plus a trailing window of historical
// points for display. historyPoints is clamped to the available history.
func (e *Engine) WindowedForecastTo(target dataset.Month, historyPoints int) (*WindowedForecast, error) {
	fc, err := e.ForecastTo(target)
	if err != nil {
		return nil, err
	}
	return &WindowedForecast{
		Forecast: fc,
		History:  e.series.Latest(historyPoints),
		Target:   target,
		Horizon:  fc.Horizon,
	}, nil
}
