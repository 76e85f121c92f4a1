package regression

import (
	"math"
	"testing"
)

func trainingData(n int) ([][]float64, []float64) {
	features := make([][]float64, n)
	target := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		features[i] = []float64{x, x * x / 10}
		target[i] = 2*x + 5
	}
	return features, target
}

func TestRandomForest_Deterministic(t *testing.T) {
	features, target := trainingData(80)
	cfg := ForestConfig{Trees: 25, MinLeaf: 5, Seed: 1}

	first := NewRandomForest(cfg)
	if err := first.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	second := NewRandomForest(cfg)
	if err := second.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	p1, err := first.Predict(features[:10])
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	p2, err := second.Predict(features[:10])
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("Same seed must reproduce the forest exactly: %f vs %f", p1[i], p2[i])
		}
	}

	imp1 := first.Importances()
	imp2 := second.Importances()
	for i := range imp1 {
		if imp1[i] != imp2[i] {
			t.Fatal("Importances must be reproducible under the same seed")
		}
	}
}

func TestRandomForest_ImportancesNormalized(t *testing.T) {
	features, target := trainingData(80)
	forest := NewRandomForest(ForestConfig{Trees: 20, MinLeaf: 5, Seed: 3})
	if err := forest.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	var sum float64
	for _, v := range forest.Importances() {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Importances should sum to 1, got %f", sum)
	}
}

func TestGradientBoosting_ImprovesOverMean(t *testing.T) {
	features, target := trainingData(80)

	booster := NewGradientBoosting(BoostingConfig{Rounds: 100, MaxDepth: 3, LearningRate: 0.1, MinLeaf: 1})
	if err := booster.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := booster.Predict(features)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	var mean float64
	for _, y := range target {
		mean += y
	}
	mean /= float64(len(target))

	var sseModel, sseMean float64
	for i := range target {
		sseModel += (target[i] - preds[i]) * (target[i] - preds[i])
		sseMean += (target[i] - mean) * (target[i] - mean)
	}
	if sseModel >= sseMean {
		t.Errorf("Boosting should beat the constant mean: %f vs %f", sseModel, sseMean)
	}
}

func TestKNN_ConstantColumnHandled(t *testing.T) {
	// A zero-variance feature would divide by zero under naive scaling.
	features := [][]float64{{1, 7}, {2, 7}, {3, 7}, {4, 7}, {5, 7}}
	target := []float64{10, 20, 30, 40, 50}

	knn := NewKNN(KNNConfig{K: 2})
	if err := knn.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := knn.Predict([][]float64{{1.1, 7}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.IsNaN(preds[0]) || math.IsInf(preds[0], 0) {
		t.Errorf("Constant columns must not poison distances, got %f", preds[0])
	}
	// Nearest two neighbors of x=1.1 are rows 0 and 1.
	if preds[0] != 15 {
		t.Errorf("Expected the mean of the two nearest targets (15), got %f", preds[0])
	}
}

func TestKNN_KClampedToTrainingSize(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}}
	target := []float64{10, 20, 30}

	knn := NewKNN(KNNConfig{K: 10})
	if err := knn.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := knn.Predict([][]float64{{2}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if preds[0] != 20 {
		t.Errorf("With k clamped to all 3 rows the prediction is their mean, got %f", preds[0])
	}
}

func TestLinear_RecoversCoefficients(t *testing.T) {
	features, target := trainingData(50)

	linear := NewLinear()
	if err := linear.Fit(features, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := linear.Predict([][]float64{{10, 10}, {40, 160}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(preds[0]-25) > 0.5 || math.Abs(preds[1]-85) > 0.5 {
		t.Errorf("OLS should recover the exact linear relationship, got %v", preds)
	}
}

func TestLearners_PredictBeforeFit(t *testing.T) {
	learners := []Learner{
		NewLinear(),
		NewRandomForest(DefaultForestConfig()),
		NewGradientBoosting(DefaultBoostingConfig()),
		NewKNN(DefaultKNNConfig()),
	}
	for _, l := range learners {
		if _, err := l.Predict([][]float64{{1, 2}}); err == nil {
			t.Errorf("%s: predicting before fitting should fail", l.Family())
		}
	}
}
