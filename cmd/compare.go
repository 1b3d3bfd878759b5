package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/analysis"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

var (
	cmpColumn   string
	cmpMode     string
	cmpRound    int
	cmpBinarize bool
	cmpZeroOf   string
	cmpTitle    string
	cmpLabel    string
	cmpName     string
)

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Compare one column between customers who stayed and customers who exited",
	Example: `  churn compare customers.xlsx --column Age --mode mean
  churn compare customers.xlsx --column Tenure
  churn compare customers.xlsx --column EstimatedSalary --round -4
  churn compare customers.xlsx --column IsActiveMember --zero "Balance (EUR)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(cmpColumn) == "" {
			return fmt.Errorf("--column is required")
		}
		mode, err := analysis.ParseMode(cmpMode)
		if err != nil {
			return err
		}
		_, t, err := loadDataset(cmd.Context(), args)
		if err != nil {
			return err
		}
		outcome := outcomeColumn()
		if cmd.Flags().Changed("round") {
			if t, err = analysis.RoundTo(t, cmpColumn, cmpRound); err != nil {
				return err
			}
		}
		if cmpBinarize {
			if t, err = analysis.Binarize(t, cmpColumn); err != nil {
				return err
			}
		}

		req := analysis.Request{Mode: mode, Column: cmpColumn, Table: t, Outcome: outcome, Title: cmpTitle, Label: cmpLabel}
		if mode == analysis.ModeRatio {
			req.Splits, err = analysis.OutcomeSplits(t, outcome)
			if err != nil {
				return err
			}
			if cmpZeroOf != "" {
				if !t.Has(cmpZeroOf) {
					return &table.ColumnNotFoundError{Column: cmpZeroOf}
				}
				req.Splits = analysis.FilterSplits(req.Splits, analysis.IsZero(cmpZeroOf))
			}
			if req.Label == "" {
				req.Label = cmpColumn
			}
		}
		res, err := analysis.Compare(req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch r := res.(type) {
		case *analysis.MeanResult:
			renderMean(out, r)
		case *analysis.RatioResult:
			renderRatio(out, r)
			sink, err := figureSink()
			if err != nil {
				return err
			}
			name := cmpName
			if name == "" {
				name = strings.ToLower(cmpColumn)
			}
			if err := sink.BarChart(analysis.RatioChart(r, name)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&cmpColumn, "column", "c", "", "column to compare (required)")
	compareCmd.Flags().StringVarP(&cmpMode, "mode", "m", "ratio", "comparison: ratio (counts per value) | mean")
	compareCmd.Flags().IntVar(&cmpRound, "round", 0, "round the column first; negative rounds to tens, hundreds, ... (-4 = nearest 10,000)")
	compareCmd.Flags().BoolVar(&cmpBinarize, "binarize", false, "replace the column with 1 where positive and 0 otherwise")
	compareCmd.Flags().StringVar(&cmpZeroOf, "zero", "", "ratio mode: only count rows where this column is 0")
	compareCmd.Flags().StringVar(&cmpTitle, "title", "", "chart title")
	compareCmd.Flags().StringVar(&cmpLabel, "label", "", "chart x-axis label (defaults to the column)")
	compareCmd.Flags().StringVar(&cmpName, "name", "", "chart file name (defaults to the column)")
	addPlotFlags(compareCmd)
}
