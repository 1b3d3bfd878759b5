package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/loader"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/render"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

var (
	flagSheetName  string
	flagSheetIndex int
	flagNoPlots    bool
	flagFiguresDir string
)

// datasetPath picks the positional file argument or the configured dataset.
func datasetPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg != nil && cfg.Dataset != "" {
		return cfg.Dataset, nil
	}
	return "", fmt.Errorf("no dataset given: pass a file or set one with 'churn config set dataset <path>'")
}

// loadDataset reads and cleans the customer table.
func loadDataset(ctx context.Context, args []string) (string, *table.Table, error) {
	path, err := datasetPath(args)
	if err != nil {
		return "", nil, err
	}
	sheet := flagSheetName
	if sheet == "" {
		sheet = cfg.SheetName
	}
	t, err := loader.Load(ctx, path, loader.Options{
		SheetName:  sheet,
		SheetIndex: flagSheetIndex,
		Logger:     logger,
	})
	if err != nil {
		return "", nil, err
	}
	logger.Info("dataset loaded", "path", path, "rows", t.Len(), "columns", len(t.Columns()))
	return path, t, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to load (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if no sheet name is set)")
}

// addPlotFlags registers the chart output flags on commands that draw.
func addPlotFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagNoPlots, "no-plots", false, "skip writing chart files")
	c.Flags().StringVar(&flagFiguresDir, "figures-dir", "", "directory for chart PNGs (overrides config)")
}

func outcomeColumn() string {
	if cfg != nil && cfg.OutcomeColumn != "" {
		return cfg.OutcomeColumn
	}
	return table.DefaultOutcome
}

// figureSink returns the sink charts are drawn to.
func figureSink() (render.Sink, error) {
	if flagNoPlots {
		return render.Discard, nil
	}
	return render.NewPlotSink(figuresDir())
}

func figuresDir() string {
	if flagFiguresDir != "" {
		return flagFiguresDir
	}
	if cfg != nil && cfg.FiguresDir != "" {
		return cfg.FiguresDir
	}
	return "Figures"
}
