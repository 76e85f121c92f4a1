package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds the evaluation measures for one model's predictions.
// MAPE and R² are not defined for every input; when a metric is undefined
// its value is zero and its Defined flag is false.
type Metrics struct {
	RMSE        float64 `json:"rmse"`
	MAE         float64 `json:"mae"`
	MAPE        float64 `json:"mape"`
	R2          float64 `json:"r2"`
	MAPEDefined bool    `json:"mape_defined"`
	R2Defined   bool    `json:"r2_defined"`
}

func checkLengths(actual, predicted []float64) error {
	if len(actual) == 0 {
		return fmt.Errorf("empty sequences")
	}
	if len(actual) != len(predicted) {
		return fmt.Errorf("sequence length mismatch: %d actual vs %d predicted", len(actual), len(predicted))
	}
	return nil
}

// RMSE returns the root mean squared error of predicted against actual.
func RMSE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	var sum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual))), nil
}

// MAE returns the mean absolute error of predicted against actual.
func MAE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual)), nil
}

// MAPE returns the mean absolute percentage error. It fails with
// ErrDivisionByZero if any actual value is exactly zero.
func MAPE(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	var sum float64
	for i := range actual {
		if actual[i] == 0 {
			return 0, ErrDivisionByZero
		}
		sum += math.Abs((actual[i] - predicted[i]) / actual[i])
	}
	return sum / float64(len(actual)) * 100, nil
}

// RSquared returns 1 − SS_residual/SS_total, with SS_total taken from the
// actual sequence's own mean. It fails with ErrDegenerateMetric when the
// actual sequence is constant (SS_total = 0).
func RSquared(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	mean := stat.Mean(actual, nil)
	var ssRes, ssTot float64
	for i := range actual {
		r := actual[i] - predicted[i]
		ssRes += r * r
		t := actual[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0, ErrDegenerateMetric
	}
	return 1 - ssRes/ssTot, nil
}

// Evaluate computes all metrics for one (actual, predicted) pair. Length
// mismatches fail the evaluation; a MAPE or R² that is undefined for this
// data is flagged rather than treated as an error, so a model bank can
// still rank the result by RMSE.
func Evaluate(actual, predicted []float64) (Metrics, error) {
	rmse, err := RMSE(actual, predicted)
	if err != nil {
		return Metrics{}, err
	}
	mae, err := MAE(actual, predicted)
	if err != nil {
		return Metrics{}, err
	}
	m := Metrics{RMSE: rmse, MAE: mae}
	if mape, err := MAPE(actual, predicted); err == nil {
		m.MAPE = mape
		m.MAPEDefined = true
	}
	if r2, err := RSquared(actual, predicted); err == nil {
		m.R2 = r2
		m.R2Defined = true
	}
	return m, nil
}
