// Package sentiment turns free-text customer feedback into -1/0/1 labels.
package sentiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/logging"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"golang.org/x/sync/errgroup"
)

// Label is the discretised polarity of a text.
type Label int

const (
	Negative Label = -1
	Neutral  Label = 0
	Positive Label = 1
)

func (l Label) String() string {
	switch l {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	}
	return "neutral"
}

// Thresholds on the compound score. Values strictly inside the band are neutral.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Classify maps a compound polarity score in [-1, 1] to a Label.
func Classify(compound float64) Label {
	switch {
	case compound > PositiveThreshold:
		return Positive
	case compound < NegativeThreshold:
		return Negative
	}
	return Neutral
}

// Scorer returns a compound polarity score in [-1, 1] for a text.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(ctx context.Context, text string) (float64, error)

func (f ScorerFunc) Score(ctx context.Context, text string) (float64, error) { return f(ctx, text) }

// Options tunes ScoreColumn.
type Options struct {
	// Concurrency bounds in-flight Score calls. Values below 1 mean sequential.
	Concurrency int
	Logger      *slog.Logger
}

// ScoreColumn replaces each cell of column with the Label of its text. Each
// distinct text is scored once. Cells are read as plain strings.
func ScoreColumn(ctx context.Context, t *table.Table, column string, s Scorer, opt Options) (*table.Table, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	logger := logging.OrDiscard(opt.Logger)

	var texts []string
	seen := make(map[string]bool)
	for _, v := range vals {
		if txt := v.String(); !seen[txt] {
			seen[txt] = true
			texts = append(texts, txt)
		}
	}

	labels := make([]Label, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	limit := opt.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, txt := range texts {
		i, txt := i, txt
		g.Go(func() error {
			score, err := s.Score(gctx, txt)
			if err != nil {
				return fmt.Errorf("score %q: %w", preview(txt), err)
			}
			labels[i] = Classify(score)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byText := make(map[string]Label, len(texts))
	counts := map[Label]int{}
	for i, txt := range texts {
		byText[txt] = labels[i]
	}
	out := make([]table.Value, len(vals))
	for i, v := range vals {
		l := byText[v.String()]
		counts[l]++
		out[i] = table.Int(int64(l))
	}
	logger.Debug("scored feedback", "column", column, "rows", len(vals), "distinct", len(texts),
		"positive", counts[Positive], "neutral", counts[Neutral], "negative", counts[Negative])
	return t.WithColumn(column, out)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
