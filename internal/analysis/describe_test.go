package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tb := table.MustNew([]string{"Age", "Country", "Exited"}, [][]table.Value{
		{table.Int(20), table.Str("France"), table.Int(0)},
		{table.Int(30), table.Str("Spain"), table.Int(0)},
		{table.Int(40), table.Str("France"), table.Int(1)},
		{table.Int(50), table.Str(""), table.Int(0)},
	})
	rep, err := Describe("customers.xlsx", tb, DefaultDescribeOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Rows)

	num := rep.Numeric()
	require.Len(t, num, 2)
	age := num[0]
	assert.Equal(t, "Age", age.Name)
	assert.Equal(t, 4, age.Count)
	assert.Equal(t, 35.0, age.Mean)
	assert.InDelta(t, 12.9099, age.Std, 1e-4)
	assert.Equal(t, 20.0, age.Min)
	assert.Equal(t, 27.5, age.Q25)
	assert.Equal(t, 35.0, age.Median)
	assert.Equal(t, 42.5, age.Q75)
	assert.Equal(t, 50.0, age.Max)

	cat := rep.Categorical()
	require.Len(t, cat, 1)
	assert.Equal(t, 3, cat[0].Count)
	assert.Equal(t, 1, cat[0].Missing)
	assert.Equal(t, 2, cat[0].Unique)
	assert.Equal(t, CategoryCount{Value: "France", Count: 2}, cat[0].TopValues[0])

	assert.Equal(t, []CategoryCount{{Value: "0", Count: 3}, {Value: "1", Count: 1}}, rep.Outcome)

	md := rep.Markdown()
	for _, section := range []string{"[DATASET SUMMARY]", "[NUMERIC COLUMNS]", "[CATEGORICAL COLUMNS]", "[OUTCOME]", "[NOTES]"} {
		assert.True(t, strings.Contains(md, section), "missing %s in:\n%s", section, md)
	}
	assert.Contains(t, md, "Country has 1 empty cells")
}

func TestDescribeMissingOutcome(t *testing.T) {
	tb := table.MustNew([]string{"Age"}, [][]table.Value{{table.Int(1)}})
	_, err := Describe("x", tb, DefaultDescribeOptions())
	var cnf *table.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)

	rep, err := Describe("x", tb, DescribeOptions{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rep.Cols[0].Std), "std of a single value is undefined")
}

func TestQuantileAndOutliers(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, quantile(sorted, 0.25))
	assert.Equal(t, 4.0, quantile(sorted, 1))
	assert.True(t, math.IsNaN(quantile(nil, 0.5)))

	vals := []float64{10, 10, 11, 11, 12, 12, 13, 500}
	assert.Equal(t, 1, countOutliers(vals, 3.5))
	assert.Equal(t, 0, countOutliers([]float64{5, 5, 5}, 3.5))
}
