package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/ai"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/encoding"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/model"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/sentiment"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/store"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

var (
	trModel       string
	trSMOTE       bool
	trSentiment   string
	trMapping     string
	trTestSize    float64
	trSeed        int64
	trTrees       int
	trNoRecord    bool
	trConcurrency int
)

var trainCmd = &cobra.Command{
	Use:   "train [file]",
	Short: "Train a churn classifier and print its classification report",
	Example: `  churn train customers.xlsx --model RF
  churn train customers.xlsx --model XGB --sentiment vader --smote
  churn train customers.xlsx --mapping encoding.json --no-plots`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		f := cmd.Flags()

		name := cfg.Model
		if f.Changed("model") || name == "" {
			name = trModel
		}
		variant, err := model.ParseVariant(name)
		if err != nil {
			return err
		}
		backend := cfg.SentimentBackend
		if f.Changed("sentiment") || backend == "" {
			backend = trSentiment
		}
		useSMOTE := cfg.SMOTE
		if f.Changed("smote") {
			useSMOTE = trSMOTE
		}
		testSize := cfg.TestSize
		if f.Changed("test-size") || testSize == 0 {
			testSize = trTestSize
		}
		seed := cfg.Seed
		if f.Changed("seed") {
			seed = trSeed
		}

		path, t, err := loadDataset(ctx, args)
		if err != nil {
			return err
		}
		outcome := outcomeColumn()

		t, err = encodeForTraining(t, out)
		if err != nil {
			return err
		}
		t, backend, err = scoreFeedback(ctx, t, backend)
		if err != nil {
			return err
		}
		t, err = dropPresent(t, cfg.DropColumns)
		if err != nil {
			return err
		}

		x, y, names, err := model.Features(t, outcome)
		if err != nil {
			return err
		}
		logger.Debug("features", "columns", strings.Join(names, ","))
		split, err := model.TrainTestSplit(x, y, testSize, seed)
		if err != nil {
			return err
		}
		xTrain, yTrain := split.XTrain, split.YTrain
		if useSMOTE {
			xTrain, yTrain, err = model.SMOTE(xTrain, yTrain, 5, seed)
			if err != nil {
				return err
			}
			logger.Info("oversampled training set", "rows", len(xTrain))
		}

		h, err := model.NewHarness(variant, model.WithSeed(seed), model.WithTrees(trTrees), model.WithLogger(logger))
		if err != nil {
			return err
		}
		pred, err := h.FitPredict(xTrain, yTrain, split.XTest)
		if err != nil {
			return err
		}
		ev, err := h.Evaluate(pred, split.YTest)
		if err != nil {
			return err
		}

		heading(out, "Classification report (%s)", variant)
		fmt.Fprint(out, ev.String())
		heading(out, "Confusion matrix")
		renderConfusion(out, ev)

		sink, err := figureSink()
		if err != nil {
			return err
		}
		chart := "conf_matrix_" + string(variant)
		if backend != "none" {
			chart = "conf_matrix_SENTIMENT_" + string(variant)
		}
		if err := sink.Heatmap(ev.Heatmap(chart)); err != nil {
			return fmt.Errorf("draw confusion matrix: %w", err)
		}

		if trNoRecord {
			return nil
		}
		run, err := recordRun(ctx, store.Run{
			Dataset:   filepath.Base(path),
			Model:     string(variant),
			SMOTE:     useSMOTE,
			Sentiment: backend,
			TestSize:  testSize,
			Seed:      seed,
			Accuracy:  ev.Report.Accuracy,
			Matrix:    ev.ConfusionMatrix,
		}, ev.Report)
		if err != nil {
			warn(out, "run not recorded: %v", err)
			return nil
		}
		success(out, "Recorded run %s", run.ID)
		return nil
	},
}

// encodeForTraining label-encodes the configured columns. With --mapping an
// existing mapping file is reapplied; otherwise a fresh mapping is built and
// saved there.
func encodeForTraining(t *table.Table, out io.Writer) (*table.Table, error) {
	cols := presentColumns(t, cfg.EncodeColumns)
	if trMapping != "" {
		m, err := encoding.LoadMapping(trMapping)
		if err == nil {
			logger.Info("reusing encoding mapping", "id", m.ID, "path", trMapping)
			return m.Apply(t)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	enc, m, err := encoding.Encode(t, cols...)
	if err != nil {
		return nil, err
	}
	if trMapping != "" {
		if err := m.Save(trMapping); err != nil {
			return nil, err
		}
		success(out, "Saved mapping %s to %s", m.ID, trMapping)
	}
	return enc, nil
}

// scoreFeedback replaces the feedback column with sentiment labels, or drops
// it when scoring is off. It returns the backend actually used.
func scoreFeedback(ctx context.Context, t *table.Table, backend string) (*table.Table, string, error) {
	col := cfg.FeedbackColumn
	if col == "" || !t.Has(col) {
		return t, "none", nil
	}
	backend = strings.ToLower(strings.TrimSpace(backend))
	var s sentiment.Scorer
	concurrency := 1
	switch backend {
	case "none", "":
		out, err := t.Drop(col)
		return out, "none", err
	case "vader":
		s = sentiment.NewVADER()
	case ai.ProviderOllama, ai.ProviderOpenRouter:
		rt, err := ai.NewRuntime(backend, runtimeConfig())
		if err != nil {
			return nil, "", err
		}
		if cfg.SentimentModel == "" {
			return nil, "", fmt.Errorf("sentiment backend %s needs sentiment_model", backend)
		}
		s = sentiment.Cached(sentiment.NewLLMScorer(rt, cfg.SentimentModel))
		concurrency = trConcurrency
	default:
		return nil, "", fmt.Errorf("unknown sentiment backend %q (use vader, ollama, openrouter or none)", backend)
	}
	out, err := sentiment.ScoreColumn(ctx, t, col, s, sentiment.Options{Concurrency: concurrency, Logger: logger})
	if err != nil {
		return nil, "", err
	}
	return out, backend, nil
}

func recordRun(ctx context.Context, r store.Run, report model.Report) (store.Run, error) {
	b, err := json.Marshal(report)
	if err != nil {
		return r, err
	}
	r.Report = b
	st, err := store.Open(ctx, cfg.RunsDB)
	if err != nil {
		return r, err
	}
	defer st.Close()
	return st.Record(ctx, r)
}

func presentColumns(t *table.Table, cols []string) []string {
	var out []string
	for _, c := range cols {
		if t.Has(c) {
			out = append(out, c)
		} else {
			logger.Debug("column not in dataset, skipped", "column", c)
		}
	}
	return out
}

func dropPresent(t *table.Table, cols []string) (*table.Table, error) {
	present := presentColumns(t, cols)
	if len(present) == 0 {
		return t, nil
	}
	return t.Drop(present...)
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringVarP(&trModel, "model", "m", "RF", "classifier: RF | XGB")
	trainCmd.Flags().BoolVar(&trSMOTE, "smote", false, "oversample the minority class in the training set")
	trainCmd.Flags().StringVar(&trSentiment, "sentiment", "vader", "feedback sentiment backend: vader | ollama | openrouter | none")
	trainCmd.Flags().StringVar(&trMapping, "mapping", "", "encoding mapping JSON to reuse (created if missing)")
	trainCmd.Flags().Float64Var(&trTestSize, "test-size", 0.3, "fraction of rows held out for testing")
	trainCmd.Flags().Int64Var(&trSeed, "seed", 42, "seed for the train/test split, SMOTE and boosting")
	trainCmd.Flags().IntVar(&trTrees, "trees", 100, "forest size (RF) or boosting rounds (XGB)")
	trainCmd.Flags().IntVar(&trConcurrency, "concurrency", 4, "parallel sentiment requests for LLM backends")
	trainCmd.Flags().BoolVar(&trNoRecord, "no-record", false, "do not record the run in the runs database")
	addPlotFlags(trainCmd)
}
