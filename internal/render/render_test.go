package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nonEmptyFile(t *testing.T, p string) {
	t.Helper()
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotSinkWritesPNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Figures")
	s, err := NewPlotSink(dir)
	require.NoError(t, err)

	require.NoError(t, s.BarChart(BarChart{
		Name:       "Tenure Comparison",
		Title:      "Tenure",
		XLabel:     "Tenure",
		YLabel:     "Count",
		Categories: []string{"1", "2"},
		Series:     []Series{{Name: "Stayed", Values: []float64{2, 1}}, {Name: "Exited", Values: []float64{1, 1}}},
	}))
	nonEmptyFile(t, filepath.Join(dir, "Tenure_Comparison.png"))

	require.NoError(t, s.BoxGrid(BoxGrid{
		Name: "box_plots",
		Cols: 2,
		Panels: []BoxPanel{
			{Title: "Age vs Exited", Groups: []BoxGroup{{Name: "0", Values: []float64{30, 35, 40}}, {Name: "1", Values: []float64{45, 50}}}},
			{Title: "Tenure vs Exited", Groups: []BoxGroup{{Name: "0", Values: []float64{1, 2}}, {Name: "1", Values: nil}}},
			{Title: "Balance vs Exited", Groups: []BoxGroup{{Name: "0", Values: []float64{0, 100}}}},
		},
	}))
	nonEmptyFile(t, filepath.Join(dir, "box_plots.png"))

	require.NoError(t, s.Heatmap(Heatmap{
		Name:      "confusion_matrix_RF",
		Title:     "Confusion Matrix for RF",
		XLabel:    "Predicted label",
		YLabel:    "True label",
		RowLabels: []string{"Stayed", "Exited"},
		ColLabels: []string{"Stayed", "Exited"},
		Values:    [][]float64{{0.9, 0.1}, {0.4, 0.6}},
	}))
	nonEmptyFile(t, filepath.Join(dir, "confusion_matrix_RF.png"))
}

func TestPlotSinkRejectsBadInput(t *testing.T) {
	s, err := NewPlotSink(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.BarChart(BarChart{Name: "x"}))
	assert.Error(t, s.BarChart(BarChart{Name: "x", Categories: []string{"a"}, Series: []Series{{Name: "s"}}}))
	assert.Error(t, s.BoxGrid(BoxGrid{Name: "x"}))
	assert.Error(t, s.Heatmap(Heatmap{Name: "x"}))
}

func TestPathSanitises(t *testing.T) {
	s := &PlotSink{Dir: "figs"}
	assert.Equal(t, filepath.Join("figs", "Balance_EUR_Comparison.png"), s.Path("Balance (EUR) Comparison"))
	assert.Equal(t, filepath.Join("figs", "chart.png"), s.Path("  "))
}

func TestBoxGridRows(t *testing.T) {
	assert.Equal(t, 3, BoxGrid{Cols: 2, Panels: make([]BoxPanel, 5)}.Rows())
	assert.Equal(t, 2, BoxGrid{Panels: make([]BoxPanel, 2)}.Rows())
}

func TestRecorderAndDiscard(t *testing.T) {
	var r Recorder
	require.NoError(t, r.BarChart(BarChart{Name: "a"}))
	require.NoError(t, r.Heatmap(Heatmap{Name: "h"}))
	assert.Len(t, r.Bars, 1)
	assert.Len(t, r.Heatmaps, 1)
	assert.NoError(t, Discard.BoxGrid(BoxGrid{}))
}
