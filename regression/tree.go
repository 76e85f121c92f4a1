package regression

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is one node of a CART regression tree. Leaves carry the mean of
// the training targets that reached them; internal nodes split on
// feature < threshold.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

type treeParams struct {
	minLeaf     int
	maxDepth    int // <= 0 means unbounded
	maxFeatures int // features examined per split; <= 0 means all
}

// buildTree grows a regression tree over the sample rows in indices.
// Splits minimize the summed squared error of the two children; the
// impurity decrease of every accepted split is accumulated into importance
// by feature, which is how the forest derives its ranking scores.
func buildTree(features [][]float64, target []float64, indices []int, depth int, params treeParams, rng *rand.Rand, importance []float64) *treeNode {
	node := &treeNode{value: meanAt(target, indices), leaf: true}
	if len(indices) < 2*params.minLeaf {
		return node
	}
	if params.maxDepth > 0 && depth >= params.maxDepth {
		return node
	}

	parentSSE := sseAt(target, indices, node.value)
	if parentSSE == 0 {
		return node
	}

	nFeatures := len(features[0])
	candidates := featureCandidates(nFeatures, params.maxFeatures, rng)

	bestSSE := math.Inf(1)
	bestFeature := -1
	var bestThreshold float64

	sorted := make([]int, len(indices))
	for _, f := range candidates {
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool {
			return features[sorted[i]][f] < features[sorted[j]][f]
		})

		// Incremental left/right sums over the sorted order.
		var leftSum, leftSq float64
		rightSum, rightSq := sumsAt(target, sorted)

		for i := 0; i < len(sorted)-1; i++ {
			y := target[sorted[i]]
			leftSum += y
			leftSq += y * y
			rightSum -= y
			rightSq -= y * y

			n := i + 1
			m := len(sorted) - n
			if n < params.minLeaf || m < params.minLeaf {
				continue
			}
			// No valid split point between equal feature values.
			if features[sorted[i]][f] == features[sorted[i+1]][f] {
				continue
			}
			sse := (leftSq - leftSum*leftSum/float64(n)) + (rightSq - rightSum*rightSum/float64(m))
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (features[sorted[i]][f] + features[sorted[i+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 || bestSSE >= parentSSE {
		return node
	}
	if importance != nil {
		importance[bestFeature] += parentSSE - bestSSE
	}

	var leftIdx, rightIdx []int
	for _, idx := range indices {
		if features[idx][bestFeature] < bestThreshold {
			leftIdx = append(leftIdx, idx)
		} else {
			rightIdx = append(rightIdx, idx)
		}
	}

	node.leaf = false
	node.feature = bestFeature
	node.threshold = bestThreshold
	node.left = buildTree(features, target, leftIdx, depth+1, params, rng, importance)
	node.right = buildTree(features, target, rightIdx, depth+1, params, rng, importance)
	return node
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// featureCandidates picks the features examined at one split. With
// maxFeatures <= 0 or covering all features the full ordered set is used,
// which keeps single-tree fits fully deterministic without an rng.
func featureCandidates(nFeatures, maxFeatures int, rng *rand.Rand) []int {
	if maxFeatures <= 0 || maxFeatures >= nFeatures {
		all := make([]int, nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(nFeatures)[:maxFeatures]
}

func meanAt(target []float64, indices []int) float64 {
	var sum float64
	for _, i := range indices {
		sum += target[i]
	}
	return sum / float64(len(indices))
}

func sseAt(target []float64, indices []int, mean float64) float64 {
	var sse float64
	for _, i := range indices {
		d := target[i] - mean
		sse += d * d
	}
	return sse
}

func sumsAt(target []float64, indices []int) (sum, sq float64) {
	for _, i := range indices {
		y := target[i]
		sum += y
		sq += y * y
	}
	return sum, sq
}
