package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/analysis"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/model"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/store"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

func success(w io.Writer, format string, a ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func warn(w io.Writer, format string, a ...any) {
	warnColor.Fprintf(w, "⚠ Warning: "+format+"\n", a...)
}

func heading(w io.Writer, format string, a ...any) {
	headColor.Fprintf(w, "\n"+format+"\n", a...)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderRatio(w io.Writer, r *analysis.RatioResult) {
	if r.Title != "" {
		heading(w, "%s", r.Title)
	}
	t := newTable(w)
	t.AppendHeader(table.Row{r.Col, r.Splits[0], r.Splits[1], "All", r.Splits[0] + " ratio", r.Splits[1] + " ratio"})
	for _, row := range r.Rows {
		t.AppendRow(table.Row{row.Value.String(), row.Counts[0], row.Counts[1], row.All,
			formatRatio(row.Ratios[0]), formatRatio(row.Ratios[1])})
	}
	t.Render()
}

func renderMean(w io.Writer, r *analysis.MeanResult) {
	heading(w, "Mean %s", r.Col)
	t := newTable(w)
	t.AppendHeader(table.Row{"Group", "Rows", "Mean"})
	t.AppendRow(table.Row{"All", r.NAll, formatMean(r.All)})
	t.AppendRow(table.Row{"Stayed", r.NStayed, formatMean(r.Stayed)})
	t.AppendRow(table.Row{"Exited", r.NExited, formatMean(r.Exited)})
	t.Render()
	for _, g := range r.Undefined {
		warn(w, "%s group is empty, its mean of %s is undefined", g, r.Col)
	}
}

func renderConfusion(w io.Writer, ev *model.Evaluation) {
	t := newTable(w)
	t.AppendHeader(table.Row{"true \\ predicted", model.ClassNames[0], model.ClassNames[1]})
	for i, row := range ev.ConfusionMatrix {
		t.AppendRow(table.Row{model.ClassNames[i], row[0], row[1]})
	}
	t.Render()
}

func renderRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "(0 runs)")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "When", "Dataset", "Model", "SMOTE", "Sentiment", "Accuracy"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID[:8], r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Dataset,
			r.Model, r.SMOTE, r.Sentiment, fmt.Sprintf("%.4f", r.Accuracy)})
	}
	t.Render()
	fmt.Fprintf(w, "(%d runs)\n", len(runs))
}

func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatMean(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}
