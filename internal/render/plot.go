package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/utils"
)

// PlotSink renders charts to PNG files under Dir.
type PlotSink struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

// NewPlotSink creates dir if needed and returns a sink writing into it.
func NewPlotSink(dir string) (*PlotSink, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create figures dir: %w", err)
	}
	return &PlotSink{Dir: dir, Width: 8 * vg.Inch, Height: 5 * vg.Inch}, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Path is the file a chart with the given name is written to.
func (s *PlotSink) Path(name string) string {
	n := strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if n == "" {
		n = "chart"
	}
	return filepath.Join(s.Dir, n+".png")
}

func (s *PlotSink) BarChart(c BarChart) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true

	n := len(c.Series)
	if n == 0 || len(c.Categories) == 0 {
		return fmt.Errorf("bar chart %q has no data", c.Name)
	}
	w := vg.Points(40 / float64(n))
	if len(c.Categories) > 20 {
		w = vg.Points(120 / float64(len(c.Categories)*n))
	}
	for i, sr := range c.Series {
		if len(sr.Values) != len(c.Categories) {
			return fmt.Errorf("bar chart %q: series %q has %d values for %d categories", c.Name, sr.Name, len(sr.Values), len(c.Categories))
		}
		bars, err := plotter.NewBarChart(plotter.Values(sr.Values), w)
		if err != nil {
			return fmt.Errorf("bar chart %q: %w", c.Name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(float64(i)-float64(n-1)/2)
		p.Add(bars)
		p.Legend.Add(sr.Name, bars)
	}
	p.NominalX(c.Categories...)
	return p.Save(s.Width, s.Height, s.Path(c.Name))
}

func (s *PlotSink) BoxGrid(g BoxGrid) error {
	if len(g.Panels) == 0 {
		return fmt.Errorf("box grid %q has no panels", g.Name)
	}
	cols := g.Cols
	if cols < 1 {
		cols = 1
	}
	rows := g.Rows()
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			i := r*cols + c
			if i >= len(g.Panels) {
				blank := plot.New()
				blank.HideAxes()
				plots[r][c] = blank
				continue
			}
			p, err := boxPanel(g.Panels[i])
			if err != nil {
				return fmt.Errorf("box grid %q: %w", g.Name, err)
			}
			plots[r][c] = p
		}
	}

	width := s.Width
	height := vg.Length(rows) * 3 * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}
	return writePNG(img, s.Path(g.Name))
}

func boxPanel(panel BoxPanel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	names := make([]string, len(panel.Groups))
	for i, grp := range panel.Groups {
		names[i] = grp.Name
		if len(grp.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(grp.Values))
		if err != nil {
			return nil, fmt.Errorf("panel %q group %q: %w", panel.Title, grp.Name, err)
		}
		p.Add(box)
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}
	return p, nil
}

func (s *PlotSink) Heatmap(h Heatmap) error {
	g := &matrixGrid{values: h.Values}
	rows, cols := g.dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("heatmap %q is empty", h.Name)
	}
	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = h.XLabel
	p.Y.Label.Text = h.YLabel

	hm := plotter.NewHeatMap(g, palette.Heat(12, 1))
	p.Add(hm)

	var xys plotter.XYs
	var labels []string
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			labels = append(labels, fmt.Sprintf("%.2f", h.Values[r][c]))
		}
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("heatmap %q: %w", h.Name, err)
	}
	p.Add(lbl)

	if len(h.ColLabels) > 0 {
		p.NominalX(h.ColLabels...)
	}
	var ticks []plot.Tick
	for r, l := range h.RowLabels {
		ticks = append(ticks, plot.Tick{Value: float64(r), Label: l})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return p.Save(6*vg.Inch, 5*vg.Inch, s.Path(h.Name))
}

// matrixGrid adapts a row-major matrix to plotter.GridXYZ.
type matrixGrid struct {
	values [][]float64
}

func (m *matrixGrid) dims() (rows, cols int) {
	if len(m.values) == 0 {
		return 0, 0
	}
	return len(m.values), len(m.values[0])
}

func (m *matrixGrid) Dims() (c, r int) {
	rows, cols := m.dims()
	return cols, rows
}

func (m *matrixGrid) Z(c, r int) float64 { return m.values[r][c] }
func (m *matrixGrid) X(c int) float64 { return float64(c) }
func (m *matrixGrid) Y(r int) float64 { return float64(r) }

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
