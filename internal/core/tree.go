package core

import (
	"math"
	"math/rand"
	"sort"

	"lulc_service/internal/domain/model"
)

// A decision tree is stored as a flat arena of nodes linked by index,
// root at node 0. The arena is read-only after growth, so trees can be
// traversed concurrently during inference without locking.
type treeNode struct {
	feature   int
	threshold float64
	left      int32
	right     int32
	leaf      bool
	class     model.LandCoverClass
}

type decisionTree struct {
	nodes []treeNode
}

// predict routes a feature vector to a leaf. Comparison convention is
// feature <= threshold goes left.
func (t *decisionTree) predict(features []float64) model.LandCoverClass {
	i := int32(0)
	for {
		n := &t.nodes[i]
		if n.leaf {
			return n.class
		}
		if features[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

type treeBuilder struct {
	samples   []model.TrainingSample
	nFeatures int
	cfg       model.ClassifierConfig
	rng       *rand.Rand
	nodes     []treeNode
}

// growTree draws a bootstrap sample (with replacement, same size as the
// training set) and grows one CART tree on it.
func growTree(samples []model.TrainingSample, nFeatures int, cfg model.ClassifierConfig, rng *rand.Rand) decisionTree {
	idx := make([]int, len(samples))
	for i := range idx {
		idx[i] = rng.Intn(len(samples))
	}
	b := &treeBuilder{samples: samples, nFeatures: nFeatures, cfg: cfg, rng: rng}
	b.grow(idx, 0)
	return decisionTree{nodes: b.nodes}
}

func (b *treeBuilder) grow(idx []int, depth int) int32 {
	pos := int32(len(b.nodes))
	b.nodes = append(b.nodes, treeNode{})

	counts := classCounts(b.samples, idx)
	if depth >= b.cfg.MaxDepth || len(idx) < b.cfg.MinSamplesToSplit || isPure(counts) {
		b.nodes[pos] = leafNode(counts)
		return pos
	}

	feature, threshold, ok := b.bestSplit(idx, counts)
	if !ok {
		b.nodes[pos] = leafNode(counts)
		return pos
	}

	var left, right []int
	for _, i := range idx {
		if b.samples[i].Features[feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		b.nodes[pos] = leafNode(counts)
		return pos
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[pos] = treeNode{feature: feature, threshold: threshold, left: l, right: r}
	return pos
}

// bestSplit evaluates a random subset of features and returns the
// (feature, threshold) pair minimizing weighted Gini impurity.
// Thresholds are midpoints between adjacent distinct sorted values.
func (b *treeBuilder) bestSplit(idx []int, parent [model.NumClasses]int) (int, float64, bool) {
	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	ordered := make([]int, len(idx))
	for _, f := range b.sampleFeatures() {
		copy(ordered, idx)
		sort.Slice(ordered, func(i, j int) bool {
			return b.samples[ordered[i]].Features[f] < b.samples[ordered[j]].Features[f]
		})

		var leftCounts [model.NumClasses]int
		rightCounts := parent
		n := len(ordered)
		for i := 0; i < n-1; i++ {
			c := b.samples[ordered[i]].Class
			leftCounts[c]++
			rightCounts[c]--

			v, next := b.samples[ordered[i]].Features[f], b.samples[ordered[i+1]].Features[f]
			if v == next {
				continue
			}
			g := weightedGini(leftCounts, rightCounts, i+1, n-i-1)
			if g < bestGini {
				bestGini = g
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}
	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// sampleFeatures picks cfg.FeatureSubsample distinct feature indices
// without replacement.
func (b *treeBuilder) sampleFeatures() []int {
	all := make([]int, b.nFeatures)
	for i := range all {
		all[i] = i
	}
	k := b.cfg.FeatureSubsample
	for i := 0; i < k; i++ {
		j := i + b.rng.Intn(b.nFeatures-i)
		all[i], all[j] = all[j], all[i]
	}
	return all[:k]
}

func classCounts(samples []model.TrainingSample, idx []int) [model.NumClasses]int {
	var counts [model.NumClasses]int
	for _, i := range idx {
		counts[samples[i].Class]++
	}
	return counts
}

func isPure(counts [model.NumClasses]int) bool {
	seen := 0
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}
	return seen <= 1
}

func leafNode(counts [model.NumClasses]int) treeNode {
	return treeNode{leaf: true, class: majorityClass(counts)}
}

// majorityClass returns the class with the highest count; ties break
// toward the lowest class index.
func majorityClass(counts [model.NumClasses]int) model.LandCoverClass {
	best := 0
	for c := 1; c < model.NumClasses; c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return model.LandCoverClass(best)
}

func gini(counts [model.NumClasses]int, total int) float64 {
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		sum += p * p
	}
	return 1 - sum
}

func weightedGini(left, right [model.NumClasses]int, nl, nr int) float64 {
	n := float64(nl + nr)
	return float64(nl)/n*gini(left, nl) + float64(nr)/n*gini(right, nr)
}
