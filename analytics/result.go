package analytics

// ModelFamily tags the algorithm that produced a trained model or result.
type ModelFamily string

const (
	FamilyARIMA                ModelFamily = "arima"
	FamilyETS                  ModelFamily = "ets"
	FamilyLinearRegression     ModelFamily = "linear_regression"
	FamilyRandomForest         ModelFamily = "random_forest"
	FamilyGradientBoostedTrees ModelFamily = "gradient_boosted_trees"
	FamilyKNN                  ModelFamily = "knn"
)

// Forecast is a point forecast of length Horizon with symmetric interval
// bounds. Horizon is always >= 1; a non-positive horizon is rejected before
// a Forecast is ever built.
type Forecast struct {
	Points  []float64 `json:"points"`
	Lower   []float64 `json:"lower"`
	Upper   []float64 `json:"upper"`
	Horizon int       `json:"horizon"`
}

// EvaluationResult is one model family's scored output. Predictions is
// aligned one-to-one with the actual sequence the metrics were computed
// against (in-sample fitted values for time-series families, held-out test
// predictions for regression families). Forecast is set only for
// time-series families.
type EvaluationResult struct {
	Family      ModelFamily `json:"family"`
	Metrics     Metrics     `json:"metrics"`
	Predictions []float64   `json:"predictions"`
	Forecast    *Forecast   `json:"forecast,omitempty"`
}
