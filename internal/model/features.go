package model

import (
	"fmt"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// Features splits t into a numeric feature matrix (every column but target,
// in table order) and the 0/1 target labels.
func Features(t *table.Table, target string) (x [][]float64, y []int, names []string, err error) {
	if !t.Has(target) {
		return nil, nil, nil, &table.ColumnNotFoundError{Column: target}
	}
	for _, c := range t.Columns() {
		if c != target {
			names = append(names, c)
		}
	}
	cols := make([][]float64, len(names))
	for j, c := range names {
		cols[j], err = t.Floats(c)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("feature %q: %w", c, err)
		}
	}
	labels, err := t.Column(target)
	if err != nil {
		return nil, nil, nil, err
	}
	x = make([][]float64, t.Len())
	y = make([]int, t.Len())
	for i := range x {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		x[i] = row
		o, ok := table.Outcome(labels[i])
		if !ok {
			return nil, nil, nil, &table.OutcomeValueError{Column: target, Row: i, Value: labels[i].String()}
		}
		y[i] = o
	}
	return x, y, names, nil
}
