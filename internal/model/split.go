package model

import (
	"fmt"
	"math"
	"math/rand"
)

// Split holds the train and test partitions of a dataset.
type Split struct {
	XTrain, XTest [][]float64
	YTrain, YTest []int
}

// TrainTestSplit shuffles rows with a seeded source and puts
// ceil(testSize*n) of them in the test partition.
func TrainTestSplit(x [][]float64, y []int, testSize float64, seed int64) (*Split, error) {
	n := len(x)
	if n != len(y) {
		return nil, fmt.Errorf("split: %d rows but %d labels", n, len(y))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("split: test size %v must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest == 0 || nTest >= n {
		return nil, fmt.Errorf("split: %d rows cannot be split with test size %v", n, testSize)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	s := &Split{}
	for k, i := range perm {
		if k < nTest {
			s.XTest = append(s.XTest, x[i])
			s.YTest = append(s.YTest, y[i])
		} else {
			s.XTrain = append(s.XTrain, x[i])
			s.YTrain = append(s.YTrain, y[i])
		}
	}
	return s, nil
}
