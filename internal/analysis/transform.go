package analysis

import (
	"fmt"
	"math"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// RoundTo rounds a numeric column to the given number of decimals; negative
// places round to tens, hundreds and so on (-4 is the nearest 10,000).
// Halves round to even.
func RoundTo(t *table.Table, column string, places int) (*table.Table, error) {
	return t.Map(column, func(v table.Value) (table.Value, error) {
		f, ok := v.Float()
		if !ok {
			return v, fmt.Errorf("%q is not numeric", v.String())
		}
		if places <= 0 {
			step := math.Pow(10, float64(-places))
			return table.Int(int64(math.RoundToEven(f/step) * step)), nil
		}
		scale := math.Pow(10, float64(places))
		return table.Real(math.RoundToEven(f*scale) / scale), nil
	})
}

// Binarize sets positive values of a numeric column to 1. Zero and negative
// values are kept as they are.
func Binarize(t *table.Table, column string) (*table.Table, error) {
	return t.Map(column, func(v table.Value) (table.Value, error) {
		f, ok := v.Float()
		if !ok {
			return v, fmt.Errorf("%q is not numeric", v.String())
		}
		if f > 0 {
			return table.Int(1), nil
		}
		return v, nil
	})
}

// IsZero keeps rows whose column is numerically zero.
func IsZero(column string) func(table.Row) bool {
	return func(r table.Row) bool {
		f, ok := r.Get(column).Float()
		return ok && f == 0
	}
}
