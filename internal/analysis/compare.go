// Package analysis compares churned and retained customers: mean comparisons,
// per-value split counts and descriptive summaries.
package analysis

import (
	"fmt"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// Mode selects a comparison.
type Mode int

const (
	// ModeMean compares the mean of a numeric column across outcome groups.
	ModeMean Mode = iota
	// ModeRatio counts each distinct value of a column in two named splits.
	ModeRatio
)

func (m Mode) String() string {
	if m == ModeRatio {
		return "ratio"
	}
	return "mean"
}

// ParseMode maps "mean" or "ratio" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "mean":
		return ModeMean, nil
	case "ratio", "split", "ratio-by-split":
		return ModeRatio, nil
	}
	return 0, fmt.Errorf("unknown comparison mode %q (use mean or ratio)", s)
}

// Split is a named subset of rows.
type Split struct {
	Name string
	Rows *table.Table
}

// Request describes one comparison.
type Request struct {
	Mode   Mode
	Column string

	// ModeMean: the table and its outcome column.
	Table   *table.Table
	Outcome string

	// ModeRatio: exactly two splits plus chart labels.
	Splits []Split
	Title  string
	Label  string
}

// Result is implemented by *MeanResult and *RatioResult.
type Result interface {
	Mode() Mode
	Column() string
}

// Compare runs the comparison selected by req.Mode.
func Compare(req Request) (Result, error) {
	switch req.Mode {
	case ModeMean:
		outcome := req.Outcome
		if outcome == "" {
			outcome = table.DefaultOutcome
		}
		return MeanComparison(req.Table, req.Column, outcome)
	case ModeRatio:
		return SplitRatioComparison(req.Splits, req.Column, req.Title, req.Label)
	}
	return nil, fmt.Errorf("unknown comparison mode %d", req.Mode)
}

// OutcomeSplits partitions t by its outcome flag into the "Stayed" and
// "Exited" splits.
func OutcomeSplits(t *table.Table, outcome string) ([]Split, error) {
	stayed, exited, err := table.SplitOutcome(t, outcome)
	if err != nil {
		return nil, err
	}
	return []Split{{Name: "Stayed", Rows: stayed}, {Name: "Exited", Rows: exited}}, nil
}

// FilterSplits applies keep to every split, preserving names.
func FilterSplits(splits []Split, keep func(table.Row) bool) []Split {
	out := make([]Split, len(splits))
	for i, s := range splits {
		out[i] = Split{Name: s.Name, Rows: s.Rows.Filter(keep)}
	}
	return out
}
