package regression

import (
	"fmt"
	"sort"

	"commodity-forecast-engine/dataset"
)

// FeatureScore is one predictor's importance. Scores are unitless and
// comparable only within the ranking run that produced them.
type FeatureScore struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// Ranking orders predictors by descending importance.
type Ranking []FeatureScore

// Names returns the top-n predictor names. n is clamped to the ranking
// length.
func (r Ranking) Names(n int) []string {
	if n > len(r) {
		n = len(r)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = r[i].Feature
	}
	return names
}

// SelectorConfig fixes the one-time ensemble used to rank predictors.
type SelectorConfig struct {
	Trees   int   `json:"trees"`
	MinLeaf int   `json:"min_leaf"`
	Seed    int64 `json:"seed"`
	Keep    int   `json:"keep"`
}

// DefaultSelectorConfig returns the fixed ranking ensemble: 500 trees,
// keep three of the four predictors.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{Trees: 500, MinLeaf: 5, Seed: 7, Keep: 3}
}

// RankFeatures fits one seeded forest on the training partition using every
// available predictor and extracts impurity-based importances. The ranking
// is derived once per run; downstream models all consume the same reduced
// predictor list for comparability. Identical data and seed always produce
// an identical order.
func RankFeatures(train *dataset.TabularDataset, cfg SelectorConfig) (Ranking, error) {
	predictors := train.Predictors()
	if len(predictors) == 0 {
		return nil, fmt.Errorf("dataset has no predictor columns")
	}

	features, err := train.Rows(predictors)
	if err != nil {
		return nil, err
	}

	forest := NewRandomForest(ForestConfig{Trees: cfg.Trees, MinLeaf: cfg.MinLeaf, Seed: cfg.Seed})
	if err := forest.Fit(features, train.Target()); err != nil {
		return nil, fmt.Errorf("ranking ensemble failed to fit: %w", err)
	}

	importances := forest.Importances()
	ranking := make(Ranking, len(predictors))
	for i, name := range predictors {
		ranking[i] = FeatureScore{Feature: name, Score: importances[i]}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Feature < ranking[j].Feature
	})
	return ranking, nil
}
