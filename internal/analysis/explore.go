package analysis

import (
	"fmt"
	"log/slog"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/logging"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/render"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// Column names used by the exploration report.
const (
	ColCreditScore     = "CreditScore"
	ColAge             = "Age"
	ColTenure          = "Tenure"
	ColBalance         = "Balance (EUR)"
	ColEstimatedSalary = "EstimatedSalary"
	ColIsActiveMember  = "IsActiveMember"
)

// BoxPlotColumns are drawn in the exploration box plot grid.
var BoxPlotColumns = []string{ColCreditScore, ColAge, ColTenure, ColBalance, ColEstimatedSalary}

// ExploreOptions controls Explore.
type ExploreOptions struct {
	Outcome  string
	GridCols int
	Sink     render.Sink
	Logger   *slog.Logger
}

// NamedRatio is a ratio comparison and the chart name it was drawn under.
type NamedRatio struct {
	Name   string
	Result *RatioResult
}

// Exploration collects every comparison Explore ran.
type Exploration struct {
	Ratios []NamedRatio
	Mean   *MeanResult
}

// Explore runs the standard churn exploration: a box plot grid of the main
// numeric columns, split comparisons for salary (to the nearest 10,000),
// tenure, positive balance and activity among zero-balance customers, and
// the mean age per outcome. Charts go to opt.Sink.
func Explore(t *table.Table, opt ExploreOptions) (*Exploration, error) {
	outcome := opt.Outcome
	if outcome == "" {
		outcome = table.DefaultOutcome
	}
	sink := opt.Sink
	if sink == nil {
		sink = render.Discard
	}
	logger := logging.OrDiscard(opt.Logger)
	cols := opt.GridCols
	if cols < 1 {
		cols = 2
	}

	grid, err := BoxPlotGrid(t, BoxPlotColumns, cols, outcome)
	if err != nil {
		return nil, fmt.Errorf("box plots: %w", err)
	}
	if err := sink.BoxGrid(grid); err != nil {
		return nil, fmt.Errorf("draw box plots: %w", err)
	}

	exp := &Exploration{}
	compare := func(data *table.Table, keep func(table.Row) bool, column, title, label, name string) error {
		splits, err := OutcomeSplits(data, outcome)
		if err != nil {
			return err
		}
		if keep != nil {
			splits = FilterSplits(splits, keep)
		}
		res, err := SplitRatioComparison(splits, column, title, label)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Debug("split comparison", "column", column, "values", len(res.Rows))
		if err := sink.BarChart(RatioChart(res, name)); err != nil {
			return fmt.Errorf("draw %s: %w", name, err)
		}
		exp.Ratios = append(exp.Ratios, NamedRatio{Name: name, Result: res})
		return nil
	}

	salary, err := RoundTo(t, ColEstimatedSalary, -4)
	if err != nil {
		return nil, err
	}
	if err := compare(salary, nil, ColEstimatedSalary,
		"Retention Against Estimated Salary To Nearest Ten Thousand", "Estimated Salary", "estimated_salary"); err != nil {
		return nil, err
	}
	if err := compare(t, nil, ColTenure,
		"Retention of Customers Based on Time With Service", "Tenure (years)", "tenure"); err != nil {
		return nil, err
	}
	balance, err := Binarize(t, ColBalance)
	if err != nil {
		return nil, err
	}
	if err := compare(balance, nil, ColBalance,
		"Retention of Customers With a Balance of 0 or >0", "Balance > 0", "binary_balance"); err != nil {
		return nil, err
	}
	if err := compare(balance, IsZero(ColBalance), ColIsActiveMember,
		"Retention of Active Customers With a Balance of 0", "Is Active Member", "zero_balance_active"); err != nil {
		return nil, err
	}

	exp.Mean, err = MeanComparison(t, ColAge, outcome)
	if err != nil {
		return nil, fmt.Errorf("mean %s: %w", ColAge, err)
	}
	return exp, nil
}
