package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// MeanResult holds the mean of one column overall and per outcome group.
// A group with no rows has a NaN mean and is listed in Undefined.
type MeanResult struct {
	Col       string
	All       float64
	Stayed    float64
	Exited    float64
	NAll      int
	NStayed   int
	NExited   int
	Undefined []string
}

func (r *MeanResult) Mode() Mode { return ModeMean }
func (r *MeanResult) Column() string { return r.Col }
func (r *MeanResult) Defined() bool { return len(r.Undefined) == 0 }

// MeanComparison returns the mean of column over all rows, the rows that
// stayed and the rows that exited.
func MeanComparison(t *table.Table, column, outcome string) (*MeanResult, error) {
	if t == nil || t.Len() == 0 {
		return nil, &EmptySplitError{Split: "all"}
	}
	all, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	stayed, exited, err := table.SplitOutcome(t, outcome)
	if err != nil {
		return nil, err
	}
	s, err := stayed.Floats(column)
	if err != nil {
		return nil, err
	}
	e, err := exited.Floats(column)
	if err != nil {
		return nil, err
	}
	r := &MeanResult{
		Col:     column,
		All:     stat.Mean(all, nil),
		Stayed:  mean(s),
		Exited:  mean(e),
		NAll:    len(all),
		NStayed: len(s),
		NExited: len(e),
	}
	if len(s) == 0 {
		r.Undefined = append(r.Undefined, "Stayed")
	}
	if len(e) == 0 {
		r.Undefined = append(r.Undefined, "Exited")
	}
	return r, nil
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}
