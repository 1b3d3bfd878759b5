package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/analysis"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/utils"
)

var (
	descOutputPath string
	descTopValues  int
	descOutlierThr float64
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Summarise every column and the outcome value counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, t, err := loadDataset(cmd.Context(), args)
		if err != nil {
			return err
		}
		opt := analysis.DefaultDescribeOptions()
		opt.Outcome = outcomeColumn()
		if descTopValues > 0 {
			opt.TopValues = descTopValues
		}
		if cmd.Flags().Changed("outlier-threshold") {
			opt.OutlierThreshold = descOutlierThr
		}
		rep, err := analysis.Describe(filepath.Base(path), t, opt)
		if err != nil {
			return err
		}
		md := rep.Markdown()
		if descOutputPath != "" {
			if err := utils.SafeWriteFile(descOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			success(cmd.OutOrStdout(), "Wrote description to %s", descOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutputPath, "output", "o", "", "optional path to write the description (Markdown)")
	describeCmd.Flags().IntVar(&descTopValues, "top", 5, "most frequent values listed per categorical column")
	describeCmd.Flags().Float64Var(&descOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based, 0 disables)")
}
