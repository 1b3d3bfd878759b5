package sentiment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/ai"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Label
	}{
		{0.9, Positive},
		{0.0501, Positive},
		{0.05, Neutral},
		{0, Neutral},
		{-0.05, Neutral},
		{-0.0501, Negative},
		{-1, Negative},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.score), "score %v", c.score)
	}
}

func feedbackTable() *table.Table {
	return table.MustNew([]string{"CustomerId", "CustomerFeedback"}, [][]table.Value{
		{table.Int(1), table.Str("good")},
		{table.Int(2), table.Str("bad")},
		{table.Int(3), table.Str("")},
		{table.Int(4), table.Str("good")},
	})
}

func fixedScorer(calls *int32) Scorer {
	return ScorerFunc(func(_ context.Context, text string) (float64, error) {
		atomic.AddInt32(calls, 1)
		switch text {
		case "good":
			return 0.6, nil
		case "bad":
			return -0.6, nil
		}
		return 0, nil
	})
}

func TestScoreColumn(t *testing.T) {
	var calls int32
	out, err := ScoreColumn(context.Background(), feedbackTable(), "CustomerFeedback", fixedScorer(&calls),
		Options{Concurrency: 2, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	got, err := out.Floats("CustomerFeedback")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, 0, 1}, got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "each distinct text scored once")
}

func TestScoreColumnIsPure(t *testing.T) {
	var calls int32
	s := fixedScorer(&calls)
	a, err := ScoreColumn(context.Background(), feedbackTable(), "CustomerFeedback", s, Options{})
	require.NoError(t, err)
	b, err := ScoreColumn(context.Background(), feedbackTable(), "CustomerFeedback", s, Options{})
	require.NoError(t, err)
	fa, _ := a.Floats("CustomerFeedback")
	fb, _ := b.Floats("CustomerFeedback")
	assert.Equal(t, fa, fb)
}

func TestScoreColumnErrors(t *testing.T) {
	_, err := ScoreColumn(context.Background(), feedbackTable(), "Feedback", NewVADER(), Options{})
	var cnf *table.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)

	boom := errors.New("backend down")
	failing := ScorerFunc(func(context.Context, string) (float64, error) { return 0, boom })
	_, err = ScoreColumn(context.Background(), feedbackTable(), "CustomerFeedback", failing, Options{})
	require.ErrorIs(t, err, boom)
}

func TestVADER(t *testing.T) {
	v := NewVADER()
	ctx := context.Background()
	pos, err := v.Score(ctx, "I love this bank, the service is great!")
	require.NoError(t, err)
	assert.Equal(t, Positive, Classify(pos))

	neg, err := v.Score(ctx, "Terrible service, awful and rude staff.")
	require.NoError(t, err)
	assert.Equal(t, Negative, Classify(neg))

	empty, err := v.Score(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Neutral, Classify(empty))
}

type fakeRuntime struct {
	reply string
	err   error
	last  ai.GenerateRequest
}

func (f *fakeRuntime) Generate(_ context.Context, req ai.GenerateRequest) (*ai.GenerateResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &ai.GenerateResponse{Choices: []ai.Choice{{Message: ai.Message{Content: f.reply}}}}, nil
}

func TestLLMScorer(t *testing.T) {
	rt := &fakeRuntime{reply: "Score: -0.8"}
	s := NewLLMScorer(rt, "llama3.1")
	got, err := s.Score(context.Background(), "the app keeps crashing")
	require.NoError(t, err)
	assert.InDelta(t, -0.8, got, 1e-9)
	assert.Equal(t, "llama3.1", rt.last.Model)
	require.Len(t, rt.last.Messages, 2)
	assert.Equal(t, "the app keeps crashing", rt.last.Messages[1].Content)
	require.NotNil(t, rt.last.Temperature)
	assert.Equal(t, 0.0, *rt.last.Temperature)

	rt.reply = "7"
	got, err = s.Score(context.Background(), "amazing")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got, "scores are clamped")

	rt.reply = "no idea"
	_, err = s.Score(context.Background(), "meh")
	require.Error(t, err)

	got, err = s.Score(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCached(t *testing.T) {
	var calls int32
	c := Cached(fixedScorer(&calls))
	for i := 0; i < 3; i++ {
		v, err := c.Score(context.Background(), "good")
		require.NoError(t, err)
		assert.Equal(t, 0.6, v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
