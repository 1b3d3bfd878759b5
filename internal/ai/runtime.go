// Package ai talks to chat-completion runtimes (OpenRouter, local Ollama).
// The sentiment scorer uses it to rate customer feedback.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Runtime is implemented by chat backends.
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Provider identifiers accepted by NewRuntime.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

type GenerateResponse struct {
	ID        string   `json:"id"`
	Choices   []Choice `json:"choices"`
	RequestID string   `json:"-"`
}

// Text returns the first choice's content, or "" when there is none.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Float returns a pointer to v, for optional request fields such as
// Temperature where zero must still be sent.
func Float(v float64) *float64 { return &v }

// RuntimeConfig carries the knobs shared by runtimes.
type RuntimeConfig struct {
	HTTPTimeout time.Duration
	RetryMax    int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// OpenRouter
	APIKey  string
	BaseURL string
	// Ollama
	Host string
}

// NewRuntime builds the runtime for a provider name.
func NewRuntime(provider string, c RuntimeConfig) (Runtime, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenRouter:
		cl := NewClient(c.APIKey, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay)
		if c.BaseURL != "" {
			cl.baseURL = strings.TrimRight(c.BaseURL, "/")
		}
		return cl, nil
	case ProviderOllama, "local":
		return NewOllamaClient(c.Host, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay), nil
	}
	return nil, fmt.Errorf("unknown provider %q (use openrouter or ollama)", provider)
}
