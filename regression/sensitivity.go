package regression

import (
	"fmt"

	"commodity-forecast-engine/dataset"
)

// SensitivityResult pairs the untouched test targets with the trained
// model's predictions over perturbed inputs. It measures prediction drift
// under a hypothetical input shock; the model itself is never retrained.
type SensitivityResult struct {
	Predictor string    `json:"predictor"`
	Percent   float64   `json:"percent"`
	Actual    []float64 `json:"actual"`
	Predicted []float64 `json:"predicted"`
}

// Sensitivity scales one predictor column of the test partition by
// (1 + percent/100) and re-scores the fixed trained learner against the
// perturbed rows. percent may be negative; zero reproduces the learner's
// original predictions exactly.
func Sensitivity(learner Learner, test *dataset.TabularDataset, predictors []string, predictor string, percent float64) (*SensitivityResult, error) {
	found := false
	for _, name := range predictors {
		if name == predictor {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("predictor %q is not in the selected set %v", predictor, predictors)
	}

	perturbed, err := test.Perturb(predictor, percent)
	if err != nil {
		return nil, err
	}
	rows, err := perturbed.Rows(predictors)
	if err != nil {
		return nil, err
	}
	preds, err := learner.Predict(rows)
	if err != nil {
		return nil, err
	}

	return &SensitivityResult{
		Predictor: predictor,
		Percent:   percent,
		Actual:    test.Target(),
		Predicted: preds,
	}, nil
}
