// Package pipeline wires the startup fit and the per-request recomputation.
// Heavy model fitting happens exactly once per run; every later request
// reuses the fitted artifacts.
package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/config"
	"commodity-forecast-engine/dataset"
	"commodity-forecast-engine/forecast"
	"commodity-forecast-engine/regression"
)

// FittedModels is the explicit read-only bundle every request handler
// receives: the winning time-series model wrapped in its forecast engine,
// the winning regression learner, and the artifacts needed to serve
// sensitivity requests and reports. Constructed once per run, never
// mutated afterwards, safe for concurrent reads.
type FittedModels struct {
	Engine     *forecast.Engine
	Regression regression.Learner

	Series *dataset.Series
	Test   *dataset.TabularDataset

	Ranking   regression.Ranking
	Selected  []string
	Threshold float64

	TimeSeriesWinner analytics.EvaluationResult
	RegressionWinner analytics.EvaluationResult
	TimeSeriesReport []analytics.EvaluationResult
	RegressionReport []analytics.EvaluationResult
}

// Run executes the full startup pipeline over an already-cleaned dataset:
// time-series bank → selection, feature ranking → reduced split →
// regression bank → selection. It fails when either bank ends up empty.
func Run(cfg *config.Config, series *dataset.Series, table *dataset.TabularDataset, log logrus.FieldLogger) (*FittedModels, error) {
	start := time.Now()

	// Temporal side: full-history fits, in-sample evaluation.
	tsBank := forecast.DefaultBank(cfg.Models.ARIMA, cfg.Models.ETS, log)
	tsFamilies := tsBank.Fit(series)
	tsWinner, tsIdx, err := analytics.SelectBest(forecast.Results(tsFamilies))
	if err != nil {
		return nil, fmt.Errorf("time-series bank: %w", err)
	}

	// Cross-sectional side: one ranking run, then a shared reduced split.
	train, test, err := table.Split(cfg.Data.TrainRatio, cfg.Data.SplitSeed)
	if err != nil {
		return nil, err
	}
	ranking, err := regression.RankFeatures(train, cfg.Models.Selector)
	if err != nil {
		return nil, err
	}
	selected := ranking.Names(cfg.Models.Selector.Keep)
	log.WithField("predictors", selected).Info("predictor set selected")

	regBank := regression.DefaultBank(cfg.Models.Forest, cfg.Models.Boosting, cfg.Models.KNN, log)
	learners, err := regBank.Fit(train, test, selected)
	if err != nil {
		return nil, err
	}
	regWinner, regIdx, err := analytics.SelectBest(regression.LearnerResults(learners))
	if err != nil {
		return nil, fmt.Errorf("regression bank: %w", err)
	}

	log.WithFields(logrus.Fields{
		"time_series_winner": tsWinner.Family,
		"regression_winner":  regWinner.Family,
		"elapsed":            time.Since(start).String(),
	}).Info("startup fit complete")

	return &FittedModels{
		Engine:           forecast.NewEngine(tsFamilies[tsIdx].Model, series),
		Regression:       learners[regIdx].Learner,
		Series:           series,
		Test:             test,
		Ranking:          ranking,
		Selected:         selected,
		Threshold:        cfg.Alerts.DefaultThreshold,
		TimeSeriesWinner: tsWinner,
		RegressionWinner: regWinner,
		TimeSeriesReport: forecast.Results(tsFamilies),
		RegressionReport: regression.LearnerResults(learners),
	}, nil
}
