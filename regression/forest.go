package regression

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"commodity-forecast-engine/analytics"
)

// ForestConfig holds the fixed random-forest grid used by the pipeline.
type ForestConfig struct {
	Trees   int   `json:"trees"`
	MinLeaf int   `json:"min_leaf"`
	Seed    int64 `json:"seed"`
}

// DefaultForestConfig returns the production parameters: 1000 trees,
// min-leaf 5, √p features per split.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 1000, MinLeaf: 5, Seed: 1}
}

// RandomForest is a seeded bootstrap ensemble of CART regression trees.
// The feature sample size per split is √p. All randomness flows from the
// configured seed, so identical inputs produce identical forests.
type RandomForest struct {
	cfg        ForestConfig
	trees      []*treeNode
	importance []float64
}

// NewRandomForest creates an unfitted forest.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	return &RandomForest{cfg: cfg}
}

func (f *RandomForest) Family() analytics.ModelFamily { return analytics.FamilyRandomForest }

func (f *RandomForest) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(features) != len(target) {
		return fmt.Errorf("bad training shape: %d rows vs %d targets", len(features), len(target))
	}
	if f.cfg.Trees < 1 {
		return errors.New("forest needs at least one tree")
	}

	n := len(features)
	p := len(features[0])
	maxFeatures := int(math.Round(math.Sqrt(float64(p))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	params := treeParams{minLeaf: f.cfg.MinLeaf, maxFeatures: maxFeatures}

	rng := rand.New(rand.NewSource(f.cfg.Seed))
	trees := make([]*treeNode, f.cfg.Trees)
	importance := make([]float64, p)

	sample := make([]int, n)
	for t := range trees {
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		trees[t] = buildTree(features, target, sample, 0, params, rng, importance)
	}

	// Importance scores are comparator-only; normalize to sum 1 so runs of
	// different sizes read alike.
	var total float64
	for _, v := range importance {
		total += v
	}
	if total > 0 {
		for i := range importance {
			importance[i] /= total
		}
	}

	f.trees = trees
	f.importance = importance
	return nil
}

func (f *RandomForest) Predict(features [][]float64) ([]float64, error) {
	if f.trees == nil {
		return nil, errors.New("forest not fitted")
	}
	out := make([]float64, len(features))
	for i, row := range features {
		var sum float64
		for _, tree := range f.trees {
			sum += tree.predict(row)
		}
		out[i] = sum / float64(len(f.trees))
	}
	return out, nil
}

// Importances returns the normalized impurity-decrease score per feature,
// indexed like the training feature columns.
func (f *RandomForest) Importances() []float64 {
	imp := make([]float64, len(f.importance))
	copy(imp, f.importance)
	return imp
}
