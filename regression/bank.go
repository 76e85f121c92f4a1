package regression

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// FittedLearner pairs a fitted learner with its held-out evaluation.
type FittedLearner struct {
	Learner Learner
	Result  analytics.EvaluationResult
}

// Bank trains a registered set of regression families on identical
// train/test partitions. Registration order is the deterministic tie-break
// order for downstream selection.
type Bank struct {
	learners []Learner
	log      logrus.FieldLogger
}

// NewBank builds a bank over an explicit learner list, mostly for tests.
func NewBank(learners []Learner, log logrus.FieldLogger) *Bank {
	return &Bank{learners: learners, log: log}
}

// DefaultBank registers the production family set in fixed order:
// linear regression, random forest, gradient boosted trees, k-NN.
func DefaultBank(forestCfg ForestConfig, boostCfg BoostingConfig, knnCfg KNNConfig, log logrus.FieldLogger) *Bank {
	return NewBank([]Learner{
		NewLinear(),
		NewRandomForest(forestCfg),
		NewGradientBoosting(boostCfg),
		NewKNN(knnCfg),
	}, log)
}

// Fit trains every learner on the train partition restricted to the given
// predictors and scores it against the held-out test target. Every family
// sees byte-identical partitions. A family that fails is dropped and
// logged; siblings continue. The returned slice preserves registration
// order.
func (b *Bank) Fit(train, test *dataset.TabularDataset, predictors []string) ([]FittedLearner, error) {
	trainX, err := train.Rows(predictors)
	if err != nil {
		return nil, fmt.Errorf("train partition: %w", err)
	}
	testX, err := test.Rows(predictors)
	if err != nil {
		return nil, fmt.Errorf("test partition: %w", err)
	}
	trainY := train.Target()
	testY := test.Target()

	var fitted []FittedLearner
	for _, learner := range b.learners {
		if err := learner.Fit(trainX, trainY); err != nil {
			b.warn(&analytics.FitError{Family: learner.Family(), Err: err})
			continue
		}
		preds, err := learner.Predict(testX)
		if err != nil {
			b.warn(&analytics.FitError{Family: learner.Family(), Err: err})
			continue
		}
		metrics, err := analytics.Evaluate(testY, preds)
		if err != nil {
			b.warn(&analytics.FitError{Family: learner.Family(), Err: err})
			continue
		}
		fitted = append(fitted, FittedLearner{
			Learner: learner,
			Result: analytics.EvaluationResult{
				Family:      learner.Family(),
				Metrics:     metrics,
				Predictions: preds,
			},
		})
		b.log.WithFields(logrus.Fields{
			"family": learner.Family(),
			"rmse":   metrics.RMSE,
			"mae":    metrics.MAE,
		}).Info("regression family fitted")
	}
	return fitted, nil
}

func (b *Bank) warn(err *analytics.FitError) {
	b.log.WithField("family", err.Family).WithError(err.Err).Warn("regression family dropped from bank")
}

// LearnerResults extracts the evaluation results in registration order.
func LearnerResults(fitted []FittedLearner) []analytics.EvaluationResult {
	results := make([]analytics.EvaluationResult, len(fitted))
	for i, f := range fitted {
		results[i] = f.Result
	}
	return results
}
