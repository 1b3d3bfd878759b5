package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// DescribeOptions controls Describe.
type DescribeOptions struct {
	// Outcome column whose value counts are reported; empty skips them.
	Outcome string
	// TopValues is how many of the most frequent values categorical columns list.
	TopValues int
	// OutlierThreshold flags numeric values with robust |z| (MAD) above it; 0 disables.
	OutlierThreshold float64
}

// DefaultDescribeOptions returns the options used by the CLI.
func DefaultDescribeOptions() DescribeOptions {
	return DescribeOptions{Outcome: table.DefaultOutcome, TopValues: 5, OutlierThreshold: 3.5}
}

// Report summarises a table column by column.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Outcome  []CategoryCount
	Warnings []string
}

// ColumnSummary captures inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	Count   int
	Missing int
	Unique  int
	// Numeric stats
	Mean, Std                  float64
	Min, Q25, Median, Q75, Max float64
	OutliersCount              int
	// Categorical stats
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// Numeric returns the numeric column summaries.
func (r *Report) Numeric() []ColumnSummary { return r.byKind("numeric") }

// Categorical returns the categorical column summaries.
func (r *Report) Categorical() []ColumnSummary { return r.byKind("categorical") }

func (r *Report) byKind(kind string) []ColumnSummary {
	var out []ColumnSummary
	for _, c := range r.Cols {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Describe computes count, mean, std, min, quartiles and max for numeric
// columns, unique/top counts for the rest, and the outcome value counts.
// Empty cells count as missing.
func Describe(name string, t *table.Table, opt DescribeOptions) (*Report, error) {
	rep := &Report{Name: name, Rows: t.Len()}
	for _, col := range t.Columns() {
		vals, err := t.Column(col)
		if err != nil {
			return nil, err
		}
		rep.Cols = append(rep.Cols, summarise(col, vals, opt))
	}
	if opt.Outcome != "" {
		vals, err := t.Column(opt.Outcome)
		if err != nil {
			return nil, err
		}
		rep.Outcome = valueCounts(vals)
		if len(rep.Outcome) > 2 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("outcome column %q has %d distinct values, expected 0/1", opt.Outcome, len(rep.Outcome)))
		}
	}
	return rep, nil
}

func summarise(name string, vals []table.Value, opt DescribeOptions) ColumnSummary {
	cs := ColumnSummary{Name: name}
	var nums []float64
	numeric := true
	var present []table.Value
	for _, v := range vals {
		if v.IsEmpty() || v.IsMissing() {
			cs.Missing++
			continue
		}
		present = append(present, v)
		f, ok := v.Float()
		if !ok {
			numeric = false
			continue
		}
		nums = append(nums, f)
	}
	cs.Count = len(present)
	cs.Unique = len(table.SortedDistinct(present))

	if numeric && len(nums) > 0 {
		cs.Kind = "numeric"
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		cs.Mean, cs.Std = stat.MeanStdDev(nums, nil)
		if len(nums) < 2 {
			cs.Std = math.NaN()
		}
		cs.Min = sorted[0]
		cs.Q25 = quantile(sorted, 0.25)
		cs.Median = quantile(sorted, 0.5)
		cs.Q75 = quantile(sorted, 0.75)
		cs.Max = sorted[len(sorted)-1]
		if opt.OutlierThreshold > 0 {
			cs.OutliersCount = countOutliers(sorted, opt.OutlierThreshold)
		}
		return cs
	}
	cs.Kind = "categorical"
	counts := valueCounts(present)
	top := opt.TopValues
	if top <= 0 || top > len(counts) {
		top = len(counts)
	}
	cs.TopValues = counts[:top]
	return cs
}

// valueCounts counts each distinct value, most frequent first.
func valueCounts(vals []table.Value) []CategoryCount {
	idx := make(map[string]int)
	var out []CategoryCount
	for _, v := range vals {
		k := v.String()
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, CategoryCount{Value: k, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// countOutliers counts values whose robust z-score 0.6745*(x-median)/MAD
// exceeds threshold.
func countOutliers(sorted []float64, threshold float64) int {
	median, mad := medianMAD(sorted)
	if mad == 0 {
		return 0
	}
	n := 0
	for _, v := range sorted {
		if math.Abs(0.6745*(v-median)/mad) > threshold {
			n++
		}
	}
	return n
}

// medianMAD computes median and MAD (median absolute deviation) of sorted values.
func medianMAD(sorted []float64) (median, mad float64) {
	if len(sorted) == 0 {
		return 0, 0
	}
	median = quantile(sorted, 0.5)
	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	return median, quantile(dev, 0.5)
}

// quantile interpolates linearly between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Markdown renders the report in the same sectioned layout as other summaries.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", r.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n", r.Rows, len(r.Cols))

	if num := r.Numeric(); len(num) > 0 {
		b.WriteString("\n[NUMERIC COLUMNS]\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, c := range num {
			fmt.Fprintf(&b, "| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				safeVal(c.Name), c.Count, c.Mean, c.Std, c.Min, c.Q25, c.Median, c.Q75, c.Max)
		}
	}
	if cat := r.Categorical(); len(cat) > 0 {
		b.WriteString("\n[CATEGORICAL COLUMNS]\n")
		for _, c := range cat {
			fmt.Fprintf(&b, "- %s: count %d, unique %d", safeVal(c.Name), c.Count, c.Unique)
			if len(c.TopValues) > 0 {
				b.WriteString(", top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(&b, "%s(%d)", safeVal(preview(kv.Value)), kv.Count)
				}
			}
			b.WriteString("\n")
		}
	}
	if len(r.Outcome) > 0 {
		b.WriteString("\n[OUTCOME]\n")
		for _, kv := range r.Outcome {
			fmt.Fprintf(&b, "- %s: %d\n", kv.Value, kv.Count)
		}
	}
	var notes []string
	for _, c := range r.Cols {
		if c.Missing > 0 {
			notes = append(notes, fmt.Sprintf("%s has %d empty cells", c.Name, c.Missing))
		}
		if c.OutliersCount > 0 {
			notes = append(notes, fmt.Sprintf("%s has %d outliers", c.Name, c.OutliersCount))
		}
	}
	notes = append(notes, r.Warnings...)
	if len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return s
}
