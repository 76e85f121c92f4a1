package analytics

import (
	"errors"
	"testing"
)

func resultWithRMSE(family ModelFamily, rmse float64) EvaluationResult {
	return EvaluationResult{Family: family, Metrics: Metrics{RMSE: rmse}}
}

func TestSelectBest_LowestRMSE(t *testing.T) {
	results := []EvaluationResult{
		resultWithRMSE(FamilyLinearRegression, 5.0),
		resultWithRMSE(FamilyRandomForest, 3.1),
		resultWithRMSE(FamilyGradientBoostedTrees, 4.2),
		resultWithRMSE(FamilyKNN, 7.9),
	}

	best, idx, err := SelectBest(results)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.Family != FamilyRandomForest || idx != 1 {
		t.Errorf("Expected random_forest at index 1, got %s at %d", best.Family, idx)
	}
}

func TestSelectBest_TieGoesToFirstRegistered(t *testing.T) {
	results := []EvaluationResult{
		resultWithRMSE(FamilyLinearRegression, 5.0),
		resultWithRMSE(FamilyRandomForest, 3.2),
		resultWithRMSE(FamilyGradientBoostedTrees, 3.2),
		resultWithRMSE(FamilyKNN, 7.1),
	}

	for run := 0; run < 10; run++ {
		best, idx, err := SelectBest(results)
		if err != nil {
			t.Fatalf("SelectBest failed: %v", err)
		}
		if best.Family != FamilyRandomForest || idx != 1 {
			t.Fatalf("Tie must resolve to the first-registered family, got %s at %d", best.Family, idx)
		}
	}
}

func TestSelectBest_Empty(t *testing.T) {
	_, idx, err := SelectBest(nil)
	if !errors.Is(err, ErrEmptyModelBank) {
		t.Errorf("Expected ErrEmptyModelBank, got %v", err)
	}
	if idx != -1 {
		t.Errorf("Expected index -1 on failure, got %d", idx)
	}
}
