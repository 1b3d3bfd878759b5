package model

import (
	"math"
	"strings"
	"testing"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns n rows where class 1 has both features above 10.
func separable(n int) ([][]float64, []int) {
	x := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		v := float64(i % 20)
		x[i] = []float64{v, v * 2}
		if v >= 10 {
			y[i] = 1
		}
	}
	return x, y
}

func TestThresholdTieGoesToZero(t *testing.T) {
	assert.Equal(t, 0, Threshold(0.5))
	assert.Equal(t, 1, Threshold(0.5000001))
	assert.Equal(t, 0, Threshold(0.1))
	assert.Equal(t, 1, Threshold(0.9))
}

func TestNewHarnessUnknownVariant(t *testing.T) {
	_, err := NewHarness(Variant("SVM"))
	var uve *UnknownVariantError
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, "SVM", uve.Name)

	v, err := ParseVariant("xgb")
	require.NoError(t, err)
	assert.Equal(t, VariantXGB, v)
	_, err = ParseVariant("lgbm")
	require.ErrorAs(t, err, &uve)
}

func TestHarnessSeed(t *testing.T) {
	h, err := NewHarness(VariantRF)
	require.NoError(t, err)
	assert.Equal(t, int64(42), h.Seed())

	h, err = NewHarness(VariantXGB, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), h.Seed())
	assert.Equal(t, VariantXGB, h.Variant())
}

func TestBoosterLearnsSeparableData(t *testing.T) {
	x, y := separable(200)
	h, err := NewHarness(VariantXGB, WithTrees(20), WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	pred, err := h.FitPredict(x, y, [][]float64{{2, 4}, {15, 30}, {9, 18}, {10, 20}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, pred)

	b := NewBooster()
	b.Rounds = 10
	require.NoError(t, b.Fit(x, y))
	probs, err := b.PredictProba([][]float64{{0, 0}, {19, 38}})
	require.NoError(t, err)
	assert.Less(t, probs[0], 0.5)
	assert.Greater(t, probs[1], 0.5)
	for _, p := range probs {
		assert.True(t, p > 0 && p < 1)
	}

	_, err = b.PredictProba([][]float64{{1}})
	require.Error(t, err)
}

func TestBoosterRejectsBadLabels(t *testing.T) {
	err := NewBooster().Fit([][]float64{{1}, {2}}, []int{0, 2})
	require.Error(t, err)
	_, err = NewBooster().Predict([][]float64{{1}})
	require.Error(t, err)
}

func TestForestFitPredict(t *testing.T) {
	x, y := separable(200)
	h, err := NewHarness(VariantRF, WithTrees(10))
	require.NoError(t, err)
	test, truth := separable(40)
	pred, err := h.FitPredict(x, y, test)
	require.NoError(t, err)
	require.Len(t, pred, len(test))
	ev, err := h.Evaluate(pred, truth)
	require.NoError(t, err)
	assert.Equal(t, "RF", ev.Model)
	assert.GreaterOrEqual(t, ev.Report.Accuracy, 0.8)
}

func TestFitPredictValidatesInput(t *testing.T) {
	h, err := NewHarness(VariantXGB)
	require.NoError(t, err)
	_, err = h.FitPredict(nil, nil, nil)
	require.Error(t, err)
	_, err = h.FitPredict([][]float64{{1}}, []int{0, 1}, nil)
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	truth := []int{0, 0, 0, 0, 1, 1, 1, 0}
	pred := []int{0, 0, 1, 0, 1, 0, 1, 0}
	ev, err := Evaluate(pred, truth)
	require.NoError(t, err)
	assert.Equal(t, [2][2]int{{4, 1}, {1, 2}}, ev.ConfusionMatrix)

	r := ev.Report
	assert.InDelta(t, 0.75, r.Accuracy, 1e-9)
	assert.Equal(t, 8, r.Support)
	assert.InDelta(t, 0.8, r.Classes[0].Precision, 1e-9)
	assert.InDelta(t, 0.8, r.Classes[0].Recall, 1e-9)
	assert.Equal(t, 5, r.Classes[0].Support)
	assert.InDelta(t, 2.0/3, r.Classes[1].Precision, 1e-9)
	assert.InDelta(t, 2.0/3, r.Classes[1].F1, 1e-9)
	assert.Equal(t, 3, r.Classes[1].Support)
	assert.InDelta(t, (0.8+2.0/3)/2, r.MacroAvg.Precision, 1e-9)
	assert.InDelta(t, 0.8*5/8+(2.0/3)*3/8, r.WeightedAvg.Recall, 1e-9)

	n := ev.Normalized()
	assert.InDelta(t, 0.8, n[0][0], 1e-9)
	assert.InDelta(t, 1.0/3, n[1][0], 1e-9)
	for _, row := range n {
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-9)
	}

	s := ev.String()
	assert.Contains(t, s, "precision")
	assert.Contains(t, s, "weighted avg")
	assert.Contains(t, s, "accuracy")
	assert.Equal(t, 8, len(strings.Split(strings.TrimRight(s, "\n"), "\n")))
}

func TestEvaluateNoPositivePredictions(t *testing.T) {
	ev, err := Evaluate([]int{0, 0, 0}, []int{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev.Report.Classes[1].Precision)
	assert.Equal(t, 0.0, ev.Report.Classes[1].F1)
	assert.False(t, math.IsNaN(ev.Report.MacroAvg.F1))

	_, err = Evaluate([]int{0}, []int{0, 1})
	require.Error(t, err)
}

func TestHeatmap(t *testing.T) {
	ev, err := Evaluate([]int{0, 1, 1, 1}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	ev.Model = "XGB"
	hm := ev.Heatmap("conf_matrix_SENTIMENT_XGB")
	assert.Equal(t, "Confusion Matrix for XGB", hm.Title)
	assert.Equal(t, "Predicted label", hm.XLabel)
	assert.Equal(t, "True label", hm.YLabel)
	assert.Equal(t, []string{"Stayed", "Exited"}, hm.ColLabels)
	assert.Equal(t, []string{"Exited", "Stayed"}, hm.RowLabels)
	assert.Equal(t, [][]float64{{0, 1}, {0.5, 0.5}}, hm.Values)
}

func TestTrainTestSplit(t *testing.T) {
	x, y := separable(10)
	s, err := TrainTestSplit(x, y, 0.3, 42)
	require.NoError(t, err)
	assert.Len(t, s.XTest, 3)
	assert.Len(t, s.XTrain, 7)
	assert.Len(t, s.YTest, 3)

	again, err := TrainTestSplit(x, y, 0.3, 42)
	require.NoError(t, err)
	assert.Equal(t, s, again, "same seed gives the same split")

	_, err = TrainTestSplit(x, y, 1.5, 42)
	require.Error(t, err)
	_, err = TrainTestSplit(x[:1], y[:1], 0.3, 42)
	require.Error(t, err)
}

func TestSMOTEBalancesClasses(t *testing.T) {
	x := [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {10, 10}, {11, 12}, {12, 11}}
	y := []int{0, 0, 0, 0, 0, 0, 1, 1, 1}
	ox, oy, err := SMOTE(x, y, 5, 42)
	require.NoError(t, err)
	require.Len(t, ox, 12)
	require.Len(t, oy, 12)
	assert.Len(t, x, 9, "input must not grow")

	var ones int
	for i, v := range oy {
		if v == 1 {
			ones++
		}
		if i >= len(x) {
			assert.Equal(t, 1, v)
			for _, f := range ox[i] {
				assert.True(t, f >= 10 && f <= 12, "synthetic row %v outside minority hull", ox[i])
			}
		}
	}
	assert.Equal(t, 6, ones)

	_, _, err = SMOTE([][]float64{{1}, {2}}, []int{0, 1}, 5, 1)
	require.NoError(t, err)
	_, _, err = SMOTE([][]float64{{1}, {2}, {3}}, []int{0, 0, 1}, 5, 1)
	require.Error(t, err)
}

func TestFeatures(t *testing.T) {
	tb := table.MustNew([]string{"Age", "Exited", "Tenure"}, [][]table.Value{
		{table.Int(30), table.Int(0), table.Int(2)},
		{table.Int(40), table.Int(1), table.Real(5.5)},
	})
	x, y, names, err := Features(tb, "Exited")
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "Tenure"}, names)
	assert.Equal(t, [][]float64{{30, 2}, {40, 5.5}}, x)
	assert.Equal(t, []int{0, 1}, y)

	_, _, _, err = Features(tb, "Churned")
	var cnf *table.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)

	text := table.MustNew([]string{"Country", "Exited"}, [][]table.Value{{table.Str("France"), table.Int(0)}})
	_, _, _, err = Features(text, "Exited")
	var cte *table.ColumnTypeError
	require.ErrorAs(t, err, &cte)
}
