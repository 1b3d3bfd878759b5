// Package render draws the charts produced by the analyzer and the
// classifier harness. Callers inject a Sink; nothing is written unless a
// file-backed sink is passed in.
package render

import "sync"

// Series is one named set of bar heights, aligned with BarChart.Categories.
type Series struct {
	Name   string
	Values []float64
}

// BarChart is a grouped bar chart, one group per category.
type BarChart struct {
	Name       string
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
}

// BoxGroup is the sample drawn as one box.
type BoxGroup struct {
	Name   string
	Values []float64
}

// BoxPanel is one box plot of the grid.
type BoxPanel struct {
	Title  string
	XLabel string
	YLabel string
	Groups []BoxGroup
}

// BoxGrid lays panels out row by row, Cols panels per row.
type BoxGrid struct {
	Name   string
	Title  string
	Cols   int
	Panels []BoxPanel
}

// Rows is the number of grid rows needed for the panels.
func (g BoxGrid) Rows() int {
	cols := g.Cols
	if cols < 1 {
		cols = 1
	}
	return (len(g.Panels) + cols - 1) / cols
}

// Heatmap is a labelled matrix; Values[r][c] is drawn at row r, column c.
type Heatmap struct {
	Name      string
	Title     string
	XLabel    string
	YLabel    string
	RowLabels []string
	ColLabels []string
	Values    [][]float64
}

// Sink receives charts.
type Sink interface {
	BarChart(c BarChart) error
	BoxGrid(g BoxGrid) error
	Heatmap(h Heatmap) error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) BarChart(BarChart) error { return nil }
func (discard) BoxGrid(BoxGrid) error { return nil }
func (discard) Heatmap(Heatmap) error { return nil }

// Recorder keeps every chart it receives in memory.
type Recorder struct {
	mu       sync.Mutex
	Bars     []BarChart
	Boxes    []BoxGrid
	Heatmaps []Heatmap
}

func (r *Recorder) BarChart(c BarChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Bars = append(r.Bars, c)
	return nil
}

func (r *Recorder) BoxGrid(g BoxGrid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Boxes = append(r.Boxes, g)
	return nil
}

func (r *Recorder) Heatmap(h Heatmap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Heatmaps = append(r.Heatmaps, h)
	return nil
}
