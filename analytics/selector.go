package analytics

// SelectBest returns the result with the lowest RMSE and its index in the
// slice. The slice is expected in bank registration order; the strict
// less-than comparison means that when two results tie on RMSE to
// floating-point equality, the first-registered one wins, so repeated runs
// select deterministically. Fails with ErrEmptyModelBank on an empty slice.
func SelectBest(results []EvaluationResult) (EvaluationResult, int, error) {
	if len(results) == 0 {
		return EvaluationResult{}, -1, ErrEmptyModelBank
	}
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Metrics.RMSE < results[best].Metrics.RMSE {
			best = i
		}
	}
	return results[best], best, nil
}
