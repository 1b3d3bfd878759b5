package analysis

import (
	"fmt"
	"math"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// RatioRow is one distinct value of the compared column. Counts are per
// split in split order; Ratios are Counts/All rounded to two decimals.
type RatioRow struct {
	Value     table.Value
	Counts    [2]int
	All       int
	Ratios    [2]float64
	Undefined bool
}

// RatioResult is the per-value comparison of two splits, sorted by value
// ascending. The counts are the comparison table; ratios are reported
// alongside for reading.
type RatioResult struct {
	Col    string
	Title  string
	Label  string
	Splits [2]string
	Rows   []RatioRow
}

func (r *RatioResult) Mode() Mode { return ModeRatio }
func (r *RatioResult) Column() string { return r.Col }

// SplitRatioComparison counts every distinct value of column in each of the
// two splits.
func SplitRatioComparison(splits []Split, column, title, label string) (*RatioResult, error) {
	if len(splits) != 2 {
		return nil, fmt.Errorf("ratio comparison needs exactly 2 splits, got %d", len(splits))
	}
	res := &RatioResult{Col: column, Title: title, Label: label}
	var counts [2]map[string]int
	var all []table.Value
	for i, s := range splits {
		res.Splits[i] = s.Name
		if s.Rows == nil || s.Rows.Len() == 0 {
			return nil, &EmptySplitError{Split: s.Name}
		}
		vals, err := s.Rows.Column(column)
		if err != nil {
			return nil, err
		}
		counts[i] = make(map[string]int)
		for _, v := range vals {
			counts[i][table.Key(v)]++
		}
		all = append(all, vals...)
	}

	for _, v := range table.SortedDistinct(all) {
		k := table.Key(v)
		row := RatioRow{Value: v, Counts: [2]int{counts[0][k], counts[1][k]}}
		row.All = row.Counts[0] + row.Counts[1]
		for i := range row.Counts {
			r, err := ratio(row.Counts[i], row.All)
			if err != nil {
				row.Undefined = true
			}
			row.Ratios[i] = r
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// ratio is count/total rounded to two decimals.
func ratio(count, total int) (float64, error) {
	if total == 0 {
		return math.NaN(), ErrUndefinedRatio
	}
	return round2(float64(count) / float64(total)), nil
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
