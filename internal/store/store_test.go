package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first, err := st.Record(ctx, Run{
		CreatedAt: base,
		Dataset:   "customers.xlsx",
		Model:     "RF",
		Accuracy:  0.86,
		Matrix:    [2][2]int{{2300, 116}, {300, 284}},
		Report:    json.RawMessage(`{"accuracy":0.86}`),
	})
	require.NoError(t, err)
	assert.Len(t, first.ID, 36)

	_, err = st.Record(ctx, Run{
		CreatedAt: base.Add(time.Hour),
		Dataset:   "customers.xlsx",
		Model:     "XGB",
		SMOTE:     true,
		Sentiment: "vader",
		TestSize:  0.3,
		Seed:      42,
		Accuracy:  0.84,
	})
	require.NoError(t, err)

	runs, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "XGB", runs[0].Model, "newest first")
	assert.True(t, runs[0].SMOTE)
	assert.Equal(t, "vader", runs[0].Sentiment)
	assert.Equal(t, int64(42), runs[0].Seed)
	assert.Nil(t, runs[0].Report)

	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, [2][2]int{{2300, 116}, {300, 284}}, runs[1].Matrix)
	assert.JSONEq(t, `{"accuracy":0.86}`, string(runs[1].Report))
	assert.True(t, runs[1].CreatedAt.Equal(base))

	limited, err := st.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestListOrdersWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer st.Close()

	base := time.Date(2026, 1, 1, 10, 0, 5, 0, time.UTC)
	_, err = st.Record(ctx, Run{CreatedAt: base.Add(100 * time.Millisecond), Model: "RF"})
	require.NoError(t, err)
	_, err = st.Record(ctx, Run{CreatedAt: base.Add(120 * time.Millisecond), Model: "XGB"})
	require.NoError(t, err)
	_, err = st.Record(ctx, Run{CreatedAt: base, Model: "RF"})
	require.NoError(t, err)

	runs, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "XGB", runs[0].Model)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(120*time.Millisecond)))
	assert.True(t, runs[1].CreatedAt.Equal(base.Add(100*time.Millisecond)))
	assert.True(t, runs[2].CreatedAt.Equal(base))
}

func TestRecordRequiresModel(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Record(ctx, Run{Dataset: "x"})
	require.Error(t, err)
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = st.Record(ctx, Run{Model: "RF"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(ctx, path)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
