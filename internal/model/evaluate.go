package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/render"
)

// ClassNames label the two outcome classes on charts.
var ClassNames = [2]string{"Stayed", "Exited"}

// ClassMetrics is one line of the classification report.
type ClassMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a per-class classification report with accuracy and averages.
type Report struct {
	Classes     [2]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Support     int
}

// Evaluation is the outcome of scoring predictions against true labels.
// ConfusionMatrix[t][p] counts rows with true label t predicted as p.
type Evaluation struct {
	Model           string
	ConfusionMatrix [2][2]int
	Report          Report
}

// Evaluate builds the confusion matrix and classification report for
// binary predictions. Precision, recall or F1 with a zero denominator are
// reported as 0.
func Evaluate(pred, truth []int) (*Evaluation, error) {
	if len(pred) != len(truth) {
		return nil, fmt.Errorf("evaluate: %d predictions for %d labels", len(pred), len(truth))
	}
	if len(truth) == 0 {
		return nil, fmt.Errorf("evaluate: no labels")
	}
	ref, err := labelGrid(truth)
	if err != nil {
		return nil, err
	}
	gen, err := labelGrid(pred)
	if err != nil {
		return nil, err
	}
	cm, err := evaluation.GetConfusionMatrix(ref, gen)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	ev := &Evaluation{}
	for t := 0; t < 2; t++ {
		for p := 0; p < 2; p++ {
			ev.ConfusionMatrix[t][p] = cm[strconv.Itoa(t)][strconv.Itoa(p)]
		}
	}
	r := &ev.Report
	r.Support = len(truth)
	r.Accuracy = zeroNaN(evaluation.GetAccuracy(cm))
	for c := 0; c < 2; c++ {
		label := strconv.Itoa(c)
		m := ClassMetrics{
			Label:     label,
			Precision: zeroNaN(evaluation.GetPrecision(label, cm)),
			Recall:    zeroNaN(evaluation.GetRecall(label, cm)),
			Support:   ev.ConfusionMatrix[c][0] + ev.ConfusionMatrix[c][1],
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = zeroNaN(evaluation.GetF1Score(label, cm))
		}
		r.Classes[c] = m
	}
	r.MacroAvg = ClassMetrics{Label: "macro avg", Support: r.Support}
	r.WeightedAvg = ClassMetrics{Label: "weighted avg", Support: r.Support}
	for _, m := range r.Classes {
		w := float64(m.Support) / float64(r.Support)
		r.MacroAvg.Precision += m.Precision / 2
		r.MacroAvg.Recall += m.Recall / 2
		r.MacroAvg.F1 += m.F1 / 2
		r.WeightedAvg.Precision += m.Precision * w
		r.WeightedAvg.Recall += m.Recall * w
		r.WeightedAvg.F1 += m.F1 * w
	}
	return ev, nil
}

// Normalized returns the confusion matrix with every row divided by its
// total. Rows with no samples stay zero.
func (e *Evaluation) Normalized() [2][2]float64 {
	var out [2][2]float64
	for t, row := range e.ConfusionMatrix {
		total := row[0] + row[1]
		if total == 0 {
			continue
		}
		for p, n := range row {
			out[t][p] = float64(n) / float64(total)
		}
	}
	return out
}

// Heatmap renders the normalized confusion matrix.
func (e *Evaluation) Heatmap(name string) render.Heatmap {
	n := e.Normalized()
	// Row 0 is drawn at the bottom, so flip to keep "Stayed" on top.
	return render.Heatmap{
		Name:      name,
		Title:     "Confusion Matrix for " + e.Model,
		XLabel:    "Predicted label",
		YLabel:    "True label",
		RowLabels: []string{ClassNames[1], ClassNames[0]},
		ColLabels: ClassNames[:],
		Values:    [][]float64{n[1][:], n[0][:]},
	}
}

// String renders the report in the usual classification report layout.
func (e *Evaluation) String() string {
	const width = 12
	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	line := func(m ClassMetrics) {
		fmt.Fprintf(&b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	for _, m := range e.Report.Classes {
		line(m)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s  %9s %9s %9.2f %9d\n", width, "accuracy", "", "", e.Report.Accuracy, e.Report.Support)
	line(e.Report.MacroAvg)
	line(e.Report.WeightedAvg)
	return b.String()
}

// labelGrid stores 0/1 labels as the class attribute of a one-column grid.
func labelGrid(labels []int) (*base.DenseInstances, error) {
	attr := base.NewCategoricalAttribute()
	attr.SetName("class")
	inst := base.NewDenseInstances()
	spec := inst.AddAttribute(attr)
	if err := inst.AddClassAttribute(attr); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if err := inst.Extend(len(labels)); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	for i, v := range labels {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("evaluate: label %d at row %d is not 0/1", v, i)
		}
		inst.Set(spec, i, attr.GetSysValFromString(strconv.Itoa(v)))
	}
	return inst, nil
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
