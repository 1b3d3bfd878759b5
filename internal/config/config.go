package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/utils"
)

// DirName is the per-user config directory under $HOME.
const DirName = ".churn"

// Global configuration structure.
type Global struct {
	// Dataset
	Dataset        string   `mapstructure:"dataset" yaml:"dataset"`
	SheetName      string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	FiguresDir     string   `mapstructure:"figures_dir" yaml:"figures_dir"`
	OutcomeColumn  string   `mapstructure:"outcome_column" yaml:"outcome_column"`
	FeedbackColumn string   `mapstructure:"feedback_column" yaml:"feedback_column"`
	EncodeColumns  []string `mapstructure:"encode_columns" yaml:"encode_columns"`
	DropColumns    []string `mapstructure:"drop_columns" yaml:"drop_columns"`

	// Modelling
	Model    string  `mapstructure:"model" yaml:"model"`
	TestSize float64 `mapstructure:"test_size" yaml:"test_size"`
	Seed     int64   `mapstructure:"seed" yaml:"seed"`
	SMOTE    bool    `mapstructure:"smote" yaml:"smote"`

	// Sentiment scoring
	SentimentBackend string `mapstructure:"sentiment_backend" yaml:"sentiment_backend"`
	SentimentModel   string `mapstructure:"sentiment_model" yaml:"sentiment_model"`
	APIKey           string `mapstructure:"api_key" yaml:"api_key"`
	OllamaHost       string `mapstructure:"ollama_host" yaml:"ollama_host"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	RunsDB   string `mapstructure:"runs_db" yaml:"runs_db"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// SentimentBackends are the accepted values of sentiment_backend.
var SentimentBackends = []string{"vader", "ollama", "openrouter", "none"}

// Dir returns ~/.churn.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.churn/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CHURN")
	v.AutomaticEnv()

	v.SetDefault("dataset", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("figures_dir", "Figures")
	v.SetDefault("outcome_column", "Exited")
	v.SetDefault("feedback_column", "CustomerFeedback")
	v.SetDefault("encode_columns", []string{"Country", "Gender"})
	v.SetDefault("drop_columns", []string{"RowNumber", "CustomerId", "Surname"})
	v.SetDefault("model", "RF")
	v.SetDefault("test_size", 0.3)
	v.SetDefault("seed", 42)
	v.SetDefault("smote", false)
	v.SetDefault("sentiment_backend", "vader")
	v.SetDefault("sentiment_model", "")
	v.SetDefault("log_level", "info")
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	// Ollama defaults
	v.SetDefault("ollama_host", "http://127.0.0.1:11434")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Env values for list keys arrive as one comma separated string.
	c.EncodeColumns = splitList(c.EncodeColumns)
	c.DropColumns = splitList(c.DropColumns)
	if c.RunsDB == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.RunsDB = filepath.Join(dir, "runs.db")
	}
	for _, p := range []*string{&c.RunsDB, &c.FiguresDir, &c.Dataset} {
		expanded, err := utils.ExpandHome(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}
	return &c, nil
}

// Set assigns one key from its string form, validating the value.
func (c *Global) Set(key, val string) error {
	switch key {
	case "dataset":
		c.Dataset = val
	case "sheet_name":
		c.SheetName = val
	case "figures_dir":
		c.FiguresDir = val
	case "outcome_column":
		c.OutcomeColumn = val
	case "feedback_column":
		c.FeedbackColumn = val
	case "encode_columns":
		c.EncodeColumns = splitList([]string{val})
	case "drop_columns":
		c.DropColumns = splitList([]string{val})
	case "model":
		switch strings.ToUpper(val) {
		case "RF", "XGB":
			c.Model = strings.ToUpper(val)
		default:
			return fmt.Errorf("invalid model: %s (use RF or XGB)", val)
		}
	case "test_size":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 || f >= 1 {
			return fmt.Errorf("invalid float for test_size: %v (must be in (0, 1))", val)
		}
		c.TestSize = f
	case "seed":
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int for seed: %w", err)
		}
		c.Seed = i
	case "smote":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for smote: %w", err)
		}
		c.SMOTE = b
	case "sentiment_backend":
		b := strings.ToLower(val)
		for _, known := range SentimentBackends {
			if b == known {
				c.SentimentBackend = b
				return nil
			}
		}
		return fmt.Errorf("invalid sentiment_backend: %s (use %s)", val, strings.Join(SentimentBackends, ", "))
	case "sentiment_model":
		c.SentimentModel = val
	case "api_key":
		c.APIKey = val
	case "ollama_host":
		c.OllamaHost = val
	case "http_timeout_sec", "retry_max_attempts", "retry_base_delay_ms", "retry_max_delay_ms":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "http_timeout_sec":
			c.HTTPTimeoutSec = i
		case "retry_max_attempts":
			c.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			c.RetryBaseDelayMs = i
		default:
			c.RetryMaxDelayMs = i
		}
	case "runs_db":
		c.RunsDB = val
	case "log_level":
		c.LogLevel = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
