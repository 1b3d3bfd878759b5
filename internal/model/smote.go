package model

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SMOTE oversamples the minority class until both classes have the same
// count. Each synthetic row lies on the segment between a minority row and
// one of its k nearest minority neighbours. The input slices are not
// modified; synthetic rows are appended to copies.
func SMOTE(x [][]float64, y []int, k int, seed int64) ([][]float64, []int, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("smote: %d rows but %d labels", len(x), len(y))
	}
	if k < 1 {
		return nil, nil, errors.New("smote: k must be positive")
	}
	var byClass [2][]int
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, nil, fmt.Errorf("smote: label %d at row %d is not 0/1", v, i)
		}
		byClass[v] = append(byClass[v], i)
	}
	minority, majority := 1, 0
	if len(byClass[0]) < len(byClass[1]) {
		minority, majority = 0, 1
	}
	need := len(byClass[majority]) - len(byClass[minority])
	outX := append([][]float64(nil), x...)
	outY := append([]int(nil), y...)
	if need == 0 {
		return outX, outY, nil
	}
	members := byClass[minority]
	if len(members) < 2 {
		return nil, nil, fmt.Errorf("smote: minority class %d has %d rows, need at least 2", minority, len(members))
	}
	if k > len(members)-1 {
		k = len(members) - 1
	}

	neighbours := make([][]int, len(members))
	type cand struct {
		d float64
		i int
	}
	for a, i := range members {
		cands := make([]cand, 0, len(members)-1)
		for _, j := range members {
			if j == i {
				continue
			}
			cands = append(cands, cand{d: floats.Distance(x[i], x[j], 2), i: j})
		}
		sort.Slice(cands, func(p, q int) bool { return cands[p].d < cands[q].d })
		for _, c := range cands[:k] {
			neighbours[a] = append(neighbours[a], c.i)
		}
	}

	rnd := rand.New(rand.NewSource(seed))
	for s := 0; s < need; s++ {
		a := rnd.Intn(len(members))
		base := x[members[a]]
		nb := x[neighbours[a][rnd.Intn(k)]]
		gap := rnd.Float64()
		row := make([]float64, len(base))
		// row = base + gap*(nb-base)
		floats.SubTo(row, nb, base)
		floats.Scale(gap, row)
		floats.Add(row, base)
		outX = append(outX, row)
		outY = append(outY, minority)
	}
	return outX, outY, nil
}
