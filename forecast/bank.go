package forecast

import (
	"github.com/sirupsen/logrus"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// BankHorizon is the fixed forecast length every family produces at fit
// time. Dynamic requests recompute the horizon from a target date instead.
const BankHorizon = 12

// FittedFamily pairs a fitted model with its scored result.
type FittedFamily struct {
	Model  Model
	Result analytics.EvaluationResult
}

// Bank fits a registered set of time-series model families against one
// series. Registration order is significant: it is the deterministic
// tie-break order for downstream selection.
type Bank struct {
	models  []Model
	horizon int
	log     logrus.FieldLogger
}

// NewBank builds a bank over an explicit family list, mostly for tests.
func NewBank(models []Model, horizon int, log logrus.FieldLogger) *Bank {
	if horizon < 1 {
		horizon = BankHorizon
	}
	return &Bank{models: models, horizon: horizon, log: log}
}

// DefaultBank registers the production family set: ARIMA first, ETS second.
func DefaultBank(arimaCfg ARIMAConfig, etsCfg ETSConfig, log logrus.FieldLogger) *Bank {
	return NewBank([]Model{NewARIMA(arimaCfg), NewETS(etsCfg)}, BankHorizon, log)
}

// Fit trains every registered family against the series. Each family
// produces in-sample fitted values scored against the training span and a
// fixed BankHorizon-step forecast. A family that fails to fit or evaluate
// is dropped and logged; its siblings are unaffected. The returned slice
// preserves registration order and may be empty when everything failed;
// the caller surfaces that through selection.
func (b *Bank) Fit(s *dataset.Series) []FittedFamily {
	actual := s.Values()
	var fitted []FittedFamily

	for _, model := range b.models {
		if err := model.Fit(s); err != nil {
			b.warn(&analytics.FitError{Family: model.Family(), Err: err})
			continue
		}
		values, offset := model.Fitted()
		metrics, err := analytics.Evaluate(actual[offset:], values)
		if err != nil {
			b.warn(&analytics.FitError{Family: model.Family(), Err: err})
			continue
		}
		fc, err := model.Forecast(b.horizon)
		if err != nil {
			b.warn(&analytics.FitError{Family: model.Family(), Err: err})
			continue
		}
		fitted = append(fitted, FittedFamily{
			Model: model,
			Result: analytics.EvaluationResult{
				Family:      model.Family(),
				Metrics:     metrics,
				Predictions: values,
				Forecast:    fc,
			},
		})
		b.log.WithFields(logrus.Fields{
			"family": model.Family(),
			"rmse":   metrics.RMSE,
			"mae":    metrics.MAE,
		}).Info("time-series family fitted")
	}
	return fitted
}

func (b *Bank) warn(err *analytics.FitError) {
	b.log.WithField("family", err.Family).WithError(err.Err).Warn("time-series family dropped from bank")
}

// Results extracts the evaluation results in registration order.
func Results(families []FittedFamily) []analytics.EvaluationResult {
	results := make([]analytics.EvaluationResult, len(families))
	for i, f := range families {
		results[i] = f.Result
	}
	return results
}
