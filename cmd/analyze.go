package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/analysis"
)

var anaGridCols int

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run the exploration report: describe, box plots, split comparisons and mean age",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path, t, err := loadDataset(cmd.Context(), args)
		if err != nil {
			return err
		}
		outcome := outcomeColumn()
		opt := analysis.DefaultDescribeOptions()
		opt.Outcome = outcome
		rep, err := analysis.Describe(filepath.Base(path), t, opt)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rep.Markdown())

		sink, err := figureSink()
		if err != nil {
			return err
		}
		exp, err := analysis.Explore(t, analysis.ExploreOptions{
			Outcome:  outcome,
			GridCols: anaGridCols,
			Sink:     sink,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		for _, nr := range exp.Ratios {
			renderRatio(out, nr.Result)
		}
		renderMean(out, exp.Mean)
		if !flagNoPlots {
			success(out, "Charts written to %s", figuresDir())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&anaGridCols, "grid-cols", 2, "box plots per row in the box plot grid")
	addPlotFlags(analyzeCmd)
}
