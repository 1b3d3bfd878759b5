package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
)

// Forest is a golearn random forest over float features.
type Forest struct {
	Trees int
	// Features sampled per tree; 0 means ceil(sqrt(p)).
	Features int

	rf    *ensemble.RandomForest
	train *base.DenseInstances
	attrs []base.Attribute
	class *base.CategoricalAttribute
}

// NewForest returns a forest with n trees.
func NewForest(n int) *Forest {
	if n <= 0 {
		n = 100
	}
	return &Forest{Trees: n}
}

func (f *Forest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return errors.New("forest: empty training set")
	}
	p := len(x[0])
	if p == 0 {
		return errors.New("forest: no features")
	}
	f.attrs = make([]base.Attribute, p)
	for j := range f.attrs {
		f.attrs[j] = base.NewFloatAttribute("f" + strconv.Itoa(j))
	}
	f.class = base.NewCategoricalAttribute()
	f.class.SetName("class")
	// Fix the class order so "0" and "1" map to the same system values
	// across fits.
	f.class.GetSysValFromString("0")
	f.class.GetSysValFromString("1")

	train := base.NewDenseInstances()
	for _, a := range f.attrs {
		train.AddAttribute(a)
	}
	train.AddAttribute(f.class)
	if err := train.AddClassAttribute(f.class); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	labels := make([]string, len(y))
	for i, v := range y {
		labels[i] = strconv.Itoa(v)
	}
	if err := f.fill(train, x, labels); err != nil {
		return err
	}

	k := f.Features
	if k <= 0 {
		k = int(math.Ceil(math.Sqrt(float64(p))))
	}
	if k > p {
		k = p
	}
	f.rf = ensemble.NewRandomForest(f.Trees, k)
	if err := f.rf.Fit(train); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	f.train = train
	return nil
}

func (f *Forest) Predict(x [][]float64) ([]int, error) {
	if f.rf == nil {
		return nil, errors.New("forest: predict before fit")
	}
	if len(x) == 0 {
		return nil, nil
	}
	test := base.NewStructuralCopy(f.train)
	// The class cell is ignored when predicting.
	labels := make([]string, len(x))
	for i := range labels {
		labels[i] = "0"
	}
	if err := f.fill(test, x, labels); err != nil {
		return nil, err
	}
	grid, err := f.rf.Predict(test)
	if err != nil {
		return nil, fmt.Errorf("forest: %w", err)
	}
	out := make([]int, len(x))
	for i := range out {
		v, err := strconv.Atoi(base.GetClass(grid, i))
		if err != nil {
			return nil, fmt.Errorf("forest: row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// fill extends inst by len(x) rows and writes features and class labels.
func (f *Forest) fill(inst *base.DenseInstances, x [][]float64, labels []string) error {
	specs := make([]base.AttributeSpec, len(f.attrs))
	for j, a := range f.attrs {
		s, err := inst.GetAttribute(a)
		if err != nil {
			return fmt.Errorf("forest: %w", err)
		}
		specs[j] = s
	}
	classSpec, err := inst.GetAttribute(f.class)
	if err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	if err := inst.Extend(len(x)); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	for i, row := range x {
		if len(row) != len(specs) {
			return fmt.Errorf("forest: row %d has %d features, want %d", i, len(row), len(specs))
		}
		for j, v := range row {
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, i, f.class.GetSysValFromString(labels[i]))
	}
	return nil
}
