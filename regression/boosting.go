package regression

import (
	"errors"
	"fmt"

	"commodity-forecast-engine/analytics"
)

// BoostingConfig holds the fixed gradient-boosting grid used by the
// pipeline.
type BoostingConfig struct {
	Rounds       int     `json:"rounds"`
	MaxDepth     int     `json:"max_depth"`
	LearningRate float64 `json:"learning_rate"`
	MinLeaf      int     `json:"min_leaf"`
}

// DefaultBoostingConfig returns the production parameters: 2000 rounds,
// depth 4, rate 0.01, squared-error objective.
func DefaultBoostingConfig() BoostingConfig {
	return BoostingConfig{Rounds: 2000, MaxDepth: 4, LearningRate: 0.01, MinLeaf: 1}
}

// GradientBoosting fits shallow regression trees to the squared-error
// residuals of the running prediction. Every round sees all features and
// all rows, so the fit is fully deterministic.
type GradientBoosting struct {
	cfg   BoostingConfig
	base  float64
	trees []*treeNode
}

// NewGradientBoosting creates an unfitted booster.
func NewGradientBoosting(cfg BoostingConfig) *GradientBoosting {
	return &GradientBoosting{cfg: cfg}
}

func (g *GradientBoosting) Family() analytics.ModelFamily {
	return analytics.FamilyGradientBoostedTrees
}

func (g *GradientBoosting) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(features) != len(target) {
		return fmt.Errorf("bad training shape: %d rows vs %d targets", len(features), len(target))
	}
	if g.cfg.Rounds < 1 {
		return errors.New("boosting needs at least one round")
	}

	n := len(target)
	var base float64
	for _, y := range target {
		base += y
	}
	base /= float64(n)

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}

	minLeaf := g.cfg.MinLeaf
	if minLeaf < 1 {
		minLeaf = 1
	}
	params := treeParams{minLeaf: minLeaf, maxDepth: g.cfg.MaxDepth}

	residual := make([]float64, n)
	trees := make([]*treeNode, 0, g.cfg.Rounds)
	for round := 0; round < g.cfg.Rounds; round++ {
		for i := range residual {
			residual[i] = target[i] - pred[i]
		}
		tree := buildTree(features, residual, indices, 0, params, nil, nil)
		trees = append(trees, tree)
		for i, row := range features {
			pred[i] += g.cfg.LearningRate * tree.predict(row)
		}
	}

	g.base = base
	g.trees = trees
	return nil
}

func (g *GradientBoosting) Predict(features [][]float64) ([]float64, error) {
	if g.trees == nil {
		return nil, errors.New("booster not fitted")
	}
	out := make([]float64, len(features))
	for i, row := range features {
		p := g.base
		for _, tree := range g.trees {
			p += g.cfg.LearningRate * tree.predict(row)
		}
		out[i] = p
	}
	return out, nil
}
