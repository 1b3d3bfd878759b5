package analysis

import (
	"fmt"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/render"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// RatioChart draws the split counts of r as a grouped bar chart, one bar per
// split for every value. name is the output file stem.
func RatioChart(r *RatioResult, name string) render.BarChart {
	if name == "" {
		name = r.Col
	}
	c := render.BarChart{
		Name:   name,
		Title:  r.Title,
		XLabel: r.Label,
		YLabel: "Num. Customers",
	}
	series := [2]render.Series{{Name: r.Splits[0]}, {Name: r.Splits[1]}}
	for _, row := range r.Rows {
		c.Categories = append(c.Categories, row.Value.String())
		for i := range series {
			series[i].Values = append(series[i].Values, float64(row.Counts[i]))
		}
	}
	c.Series = series[:]
	return c
}

// BoxPlotGrid builds one box plot per column, each split into one box per
// outcome value, laid out cols panels per row.
func BoxPlotGrid(t *table.Table, columns []string, cols int, outcome string) (render.BoxGrid, error) {
	g := render.BoxGrid{Name: "group_box_plot", Cols: cols}
	stayed, exited, err := table.SplitOutcome(t, outcome)
	if err != nil {
		return g, err
	}
	for _, col := range columns {
		s, err := stayed.Floats(col)
		if err != nil {
			return g, err
		}
		e, err := exited.Floats(col)
		if err != nil {
			return g, err
		}
		g.Panels = append(g.Panels, render.BoxPanel{
			Title:  fmt.Sprintf("%s vs %s", col, outcome),
			XLabel: outcome,
			YLabel: col,
			Groups: []render.BoxGroup{{Name: "0", Values: s}, {Name: "1", Values: e}},
		})
	}
	return g, nil
}
