package pipeline

import (
	"errors"
	"fmt"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
	"commodity-forecast-engine/forecast"
	"commodity-forecast-engine/regression"
)

// Request carries one recomputation order: a forecast target month, an
// optional sensitivity adjustment, and the alert threshold to test the
// new forecast against. Threshold is a pointer so an explicit zero is
// distinguishable from an omitted field, which falls back to the
// configured default.
type Request struct {
	TargetYear    int      `json:"target_year"`
	TargetMonth   int      `json:"target_month"`
	AdjustPercent float64  `json:"adjust_percent"`
	Predictor     string   `json:"predictor"`
	WindowPoints  int      `json:"window_points"`
	Threshold     *float64 `json:"threshold,omitempty"`
}

// Result is the combined outcome of one recomputation.
type Result struct {
	Forecast    *forecast.WindowedForecast    `json:"forecast"`
	Sensitivity *regression.SensitivityResult `json:"sensitivity,omitempty"`
	Alert       analytics.AlertState          `json:"alert"`
}

// ErrBadRequest marks validation failures the caller should surface as
// client errors rather than internal ones.
var ErrBadRequest = errors.New("bad request")

// Recompute re-runs the dynamic forecast, the optional sensitivity pass,
// and the alert check against the already-fitted models. It never
// refits anything.
func (m *FittedModels) Recompute(req Request) (*Result, error) {
	target := dataset.Month{Year: req.TargetYear, Month: req.TargetMonth}

	window := req.WindowPoints
	if window <= 0 {
		window = 24
	}
	wf, err := m.Engine.WindowedForecastTo(target, window)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidHorizon) {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return nil, err
	}

	res := &Result{Forecast: wf}

	if req.Predictor != "" {
		sens, err := regression.Sensitivity(m.Regression, m.Test, m.Selected, req.Predictor, req.AdjustPercent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		res.Sensitivity = sens
	}

	threshold := m.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	res.Alert = analytics.EvaluateAlert(wf.Forecast.Points, threshold)

	return res, nil
}
