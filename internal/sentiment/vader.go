package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VADER scores text with the VADER lexicon and rule set.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns VADER's normalised compound score.
func (v *VADER) Score(_ context.Context, text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}
