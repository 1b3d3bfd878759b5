package sentiment

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/ai"
)

const llmSystemPrompt = `You rate the sentiment of bank customer feedback.
Reply with a single number between -1 and 1: -1 is very negative, 0 is neutral, 1 is very positive.
Reply with the number only.`

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// LLMScorer asks a chat runtime for a compound polarity score.
type LLMScorer struct {
	runtime ai.Runtime
	model   string
}

func NewLLMScorer(rt ai.Runtime, model string) *LLMScorer {
	return &LLMScorer{runtime: rt, model: model}
}

func (s *LLMScorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	resp, err := s.runtime.Generate(ctx, ai.GenerateRequest{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   8,
		Temperature: ai.Float(0),
	})
	if err != nil {
		return 0, err
	}
	return parseScore(resp.Text())
}

// parseScore takes the first number in reply and clamps it to [-1, 1].
func parseScore(reply string) (float64, error) {
	m := numberRe.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("no score in reply %q", reply)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", m, err)
	}
	return math.Max(-1, math.Min(1, f)), nil
}
