package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Booster is a gradient-boosted ensemble of regression trees trained on
// logistic loss. Leaf weights and split gains use the second-order
// (gradient and hessian) formulation; PredictProba returns probabilities
// and Predict applies Threshold.
type Booster struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	Lambda         float64 // L2 penalty on leaf weights
	Gamma          float64 // minimum gain to split
	MinChildWeight float64 // minimum hessian sum per child

	base  float64
	trees []*regNode
	p     int
}

type regNode struct {
	leaf      bool
	weight    float64
	feature   int
	threshold float64 // x < threshold goes left
	left      *regNode
	right     *regNode
}

// NewBooster returns a booster with binary:logistic defaults.
func NewBooster() *Booster {
	return &Booster{
		Rounds:         100,
		LearningRate:   0.3,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
	}
}

func (b *Booster) Fit(x [][]float64, y []int) error {
	n := len(x)
	if n == 0 {
		return errors.New("booster: empty training set")
	}
	if len(y) != n {
		return errors.New("booster: x and y length mismatch")
	}
	b.p = len(x[0])
	pos := 0
	for i, v := range y {
		if v != 0 && v != 1 {
			return fmt.Errorf("booster: label %d at row %d is not 0/1", v, i)
		}
		if len(x[i]) != b.p {
			return fmt.Errorf("booster: row %d has %d features, want %d", i, len(x[i]), b.p)
		}
		pos += v
	}
	mean := clamp(float64(pos)/float64(n), 1e-6, 1-1e-6)
	b.base = math.Log(mean / (1 - mean))
	b.trees = b.trees[:0]

	margin := make([]float64, n)
	for i := range margin {
		margin[i] = b.base
	}
	grad := make([]float64, n)
	hess := make([]float64, n)
	idx := make([]int, n)
	for r := 0; r < b.Rounds; r++ {
		for i := range margin {
			p := sigmoid(margin[i])
			grad[i] = p - float64(y[i])
			hess[i] = math.Max(p*(1-p), 1e-16)
			idx[i] = i
		}
		tree := b.grow(x, grad, hess, idx, 0)
		b.trees = append(b.trees, tree)
		for i := range margin {
			margin[i] += b.LearningRate * tree.eval(x[i])
		}
	}
	return nil
}

// PredictProba returns P(y=1) for every row.
func (b *Booster) PredictProba(x [][]float64) ([]float64, error) {
	if b.trees == nil {
		return nil, errors.New("booster: predict before fit")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != b.p {
			return nil, fmt.Errorf("booster: row %d has %d features, want %d", i, len(row), b.p)
		}
		m := b.base
		for _, t := range b.trees {
			m += b.LearningRate * t.eval(row)
		}
		out[i] = sigmoid(m)
	}
	return out, nil
}

func (b *Booster) Predict(x [][]float64) ([]int, error) {
	probs, err := b.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(probs))
	for i, p := range probs {
		out[i] = Threshold(p)
	}
	return out, nil
}

func (b *Booster) grow(x [][]float64, grad, hess []float64, idx []int, depth int) *regNode {
	var g, h float64
	for _, i := range idx {
		g += grad[i]
		h += hess[i]
	}
	leaf := &regNode{leaf: true, weight: -g / (h + b.Lambda)}
	if depth >= b.MaxDepth || len(idx) < 2 {
		return leaf
	}

	parent := g * g / (h + b.Lambda)
	bestGain := 0.0
	bestFeature := -1
	var bestThreshold float64
	sorted := make([]int, len(idx))
	for f := 0; f < b.p; f++ {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, c int) bool { return x[sorted[a]][f] < x[sorted[c]][f] })
		var gl, hl float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			gl += grad[i]
			hl += hess[i]
			cur, next := x[i][f], x[sorted[k+1]][f]
			if cur == next {
				continue
			}
			gr, hr := g-gl, h-hl
			if hl < b.MinChildWeight || hr < b.MinChildWeight {
				continue
			}
			gain := 0.5*(gl*gl/(hl+b.Lambda)+gr*gr/(hr+b.Lambda)-parent) - b.Gamma
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}
	if bestFeature < 0 {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if x[i][bestFeature] < bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &regNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      b.grow(x, grad, hess, left, depth+1),
		right:     b.grow(x, grad, hess, right, depth+1),
	}
}

func (n *regNode) eval(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.weight
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
