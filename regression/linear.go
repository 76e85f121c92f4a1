package regression

import (
	"errors"
	"fmt"

	"github.com/sajari/regression"

	"commodity-forecast-engine/analytics"
)

// Linear is the ordinary-least-squares family, backed by sajari/regression.
type Linear struct {
	model *regression.Regression
}

// NewLinear creates an unfitted OLS learner.
func NewLinear() *Linear {
	return &Linear{}
}

func (l *Linear) Family() analytics.ModelFamily { return analytics.FamilyLinearRegression }

func (l *Linear) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(features) != len(target) {
		return fmt.Errorf("bad training shape: %d rows vs %d targets", len(features), len(target))
	}

	r := new(regression.Regression)
	r.SetObserved("target")
	for j := range features[0] {
		r.SetVar(j, fmt.Sprintf("x%d", j))
	}
	for i, row := range features {
		r.Train(regression.DataPoint(target[i], row))
	}
	if err := r.Run(); err != nil {
		return err
	}

	l.model = r
	return nil
}

func (l *Linear) Predict(features [][]float64) ([]float64, error) {
	if l.model == nil {
		return nil, errors.New("linear model not fitted")
	}
	out := make([]float64, len(features))
	for i, row := range features {
		p, err := l.model.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
