// Package model wraps the binary churn classifiers behind one harness:
// a golearn random forest ("RF") and gradient-boosted trees on logistic
// loss ("XGB").
package model

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/logging"
)

// Variant names a classifier.
type Variant string

const (
	VariantRF  Variant = "RF"
	VariantXGB Variant = "XGB"
)

// Variants lists the supported classifiers.
var Variants = []Variant{VariantRF, VariantXGB}

// UnknownVariantError is returned for a model name the harness cannot build.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown model %q (use RF or XGB)", e.Name)
}

// ParseVariant accepts RF or XGB in any case.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", &UnknownVariantError{Name: s}
}

// Classifier is a binary classifier over dense float features.
type Classifier interface {
	Fit(x [][]float64, y []int) error
	Predict(x [][]float64) ([]int, error)
}

// Threshold turns a probability into a label: above 0.5 is 1, 0.5 and below is 0.
func Threshold(p float64) int {
	if p > 0.5 {
		return 1
	}
	return 0
}

// Option configures a Harness.
type Option func(*Harness)

// WithSeed records the seed callers use for splitting and oversampling; read
// it back with Seed.
func WithSeed(seed int64) Option { return func(h *Harness) { h.seed = seed } }

// WithTrees sets the forest size for RF and the boosting rounds for XGB.
func WithTrees(n int) Option { return func(h *Harness) { h.trees = n } }

// WithLogger sets the harness logger.
func WithLogger(l *slog.Logger) Option { return func(h *Harness) { h.logger = l } }

// Harness fits one classifier variant and evaluates its predictions.
type Harness struct {
	variant Variant
	seed    int64
	trees   int
	logger  *slog.Logger
	clf     Classifier
}

// NewHarness builds a harness for the named variant.
func NewHarness(v Variant, opts ...Option) (*Harness, error) {
	h := &Harness{variant: v, seed: 42, trees: 100}
	for _, o := range opts {
		o(h)
	}
	h.logger = logging.OrDiscard(h.logger)
	switch v {
	case VariantRF:
		h.clf = NewForest(h.trees)
	case VariantXGB:
		b := NewBooster()
		b.Rounds = h.trees
		h.clf = b
	default:
		return nil, &UnknownVariantError{Name: string(v)}
	}
	return h, nil
}

// Variant returns the classifier variant.
func (h *Harness) Variant() Variant { return h.variant }

// Seed returns the configured seed.
func (h *Harness) Seed() int64 { return h.seed }

// FitPredict trains on the training rows and labels the test rows.
func (h *Harness) FitPredict(xTrain [][]float64, yTrain []int, xTest [][]float64) ([]int, error) {
	if len(xTrain) == 0 {
		return nil, fmt.Errorf("%s: no training rows", h.variant)
	}
	if len(xTrain) != len(yTrain) {
		return nil, fmt.Errorf("%s: %d training rows but %d labels", h.variant, len(xTrain), len(yTrain))
	}
	start := time.Now()
	if err := h.clf.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("%s fit: %w", h.variant, err)
	}
	h.logger.Debug("model fitted", "model", string(h.variant), "rows", len(xTrain), "took", time.Since(start))
	pred, err := h.clf.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("%s predict: %w", h.variant, err)
	}
	return pred, nil
}

// Evaluate compares predictions against the true labels.
func (h *Harness) Evaluate(pred, yTest []int) (*Evaluation, error) {
	ev, err := Evaluate(pred, yTest)
	if err != nil {
		return nil, err
	}
	ev.Model = string(h.variant)
	h.logger.Info("model evaluated", "model", ev.Model, "accuracy", ev.Report.Accuracy)
	return ev, nil
}
