package regression

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"commodity-forecast-engine/analytics"
)

// KNNConfig holds the fixed nearest-neighbor parameters.
type KNNConfig struct {
	K int `json:"k"`
}

// DefaultKNNConfig returns the production parameter k=10.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{K: 10}
}

// KNN is a k-nearest-neighbors regressor over z-scaled features. Scaling
// statistics come from the training partition only; query rows are scaled
// with the same statistics.
type KNN struct {
	cfg    KNNConfig
	scaled [][]float64
	target []float64
	means  []float64
	stds   []float64
}

// NewKNN creates an unfitted regressor.
func NewKNN(cfg KNNConfig) *KNN {
	return &KNN{cfg: cfg}
}

func (k *KNN) Family() analytics.ModelFamily { return analytics.FamilyKNN }

func (k *KNN) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(features) != len(target) {
		return fmt.Errorf("bad training shape: %d rows vs %d targets", len(features), len(target))
	}
	if k.cfg.K < 1 {
		return errors.New("k must be at least 1")
	}

	p := len(features[0])
	means := make([]float64, p)
	stds := make([]float64, p)
	col := make([]float64, len(features))
	for j := 0; j < p; j++ {
		for i, row := range features {
			col[i] = row[j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		means[j] = mean
		stds[j] = std
	}

	scaled := make([][]float64, len(features))
	for i, row := range features {
		scaled[i] = scaleRow(row, means, stds)
	}

	tgt := make([]float64, len(target))
	copy(tgt, target)

	k.scaled = scaled
	k.target = tgt
	k.means = means
	k.stds = stds
	return nil
}

func (k *KNN) Predict(features [][]float64) ([]float64, error) {
	if k.scaled == nil {
		return nil, errors.New("knn not fitted")
	}
	neighbors := k.cfg.K
	if neighbors > len(k.scaled) {
		neighbors = len(k.scaled)
	}

	type ranked struct {
		dist float64
		idx  int
	}

	out := make([]float64, len(features))
	order := make([]ranked, len(k.scaled))
	for i, row := range features {
		q := scaleRow(row, k.means, k.stds)
		for j, train := range k.scaled {
			order[j] = ranked{dist: floats.Distance(q, train, 2), idx: j}
		}
		// Index tie-break keeps equal-distance neighborhoods stable.
		sort.Slice(order, func(a, b int) bool {
			if order[a].dist != order[b].dist {
				return order[a].dist < order[b].dist
			}
			return order[a].idx < order[b].idx
		})
		var sum float64
		for j := 0; j < neighbors; j++ {
			sum += k.target[order[j].idx]
		}
		out[i] = sum / float64(neighbors)
	}
	return out, nil
}

func scaleRow(row, means, stds []float64) []float64 {
	s := make([]float64, len(row))
	for j := range row {
		s[j] = (row[j] - means[j]) / stds[j]
	}
	return s
}
