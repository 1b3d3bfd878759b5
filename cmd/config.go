package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set churn configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "dataset: %s\n", cfg.Dataset)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "figures_dir: %s\n", cfg.FiguresDir)
		fmt.Fprintf(out, "outcome_column: %s\n", cfg.OutcomeColumn)
		fmt.Fprintf(out, "feedback_column: %s\n", cfg.FeedbackColumn)
		fmt.Fprintf(out, "encode_columns: %s\n", strings.Join(cfg.EncodeColumns, ","))
		fmt.Fprintf(out, "drop_columns: %s\n", strings.Join(cfg.DropColumns, ","))
		fmt.Fprintf(out, "model: %s\n", cfg.Model)
		fmt.Fprintf(out, "test_size: %.2f\n", cfg.TestSize)
		fmt.Fprintf(out, "seed: %d\n", cfg.Seed)
		fmt.Fprintf(out, "smote: %t\n", cfg.SMOTE)
		fmt.Fprintf(out, "sentiment_backend: %s\n", cfg.SentimentBackend)
		if cfg.SentimentModel != "" {
			fmt.Fprintf(out, "sentiment_model: %s\n", cfg.SentimentModel)
		}
		fmt.Fprintf(out, "api_key: %s\n", mask(cfg.APIKey))
		fmt.Fprintf(out, "ollama_host: %s\n", cfg.OllamaHost)
		fmt.Fprintf(out, "runs_db: %s\n", cfg.RunsDB)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
