package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model != "RF" || c.TestSize != 0.3 || c.Seed != 42 || c.SMOTE {
		t.Fatalf("unexpected modelling defaults: %+v", c)
	}
	if c.OutcomeColumn != "Exited" || c.SentimentBackend != "vader" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !reflect.DeepEqual(c.EncodeColumns, []string{"Country", "Gender"}) {
		t.Fatalf("encode_columns = %v", c.EncodeColumns)
	}
	if c.RunsDB != filepath.Join(home, DirName, "runs.db") {
		t.Fatalf("runs_db = %q", c.RunsDB)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHURN_MODEL", "XGB")
	t.Setenv("CHURN_DROP_COLUMNS", "RowNumber, Surname")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model != "XGB" {
		t.Fatalf("model = %q", c.Model)
	}
	if !reflect.DeepEqual(c.DropColumns, []string{"RowNumber", "Surname"}) {
		t.Fatalf("drop_columns = %v", c.DropColumns)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for k, v := range map[string]string{"model": "xgb", "smote": "true", "test_size": "0.25", "encode_columns": "Country"} {
		if err := c.Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Model != "XGB" || !got.SMOTE || got.TestSize != 0.25 {
		t.Fatalf("reloaded config lost values: %+v", got)
	}
	if !reflect.DeepEqual(got.EncodeColumns, []string{"Country"}) {
		t.Fatalf("encode_columns = %v", got.EncodeColumns)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{}
	bad := map[string]string{
		"model":              "SVM",
		"test_size":          "1.5",
		"seed":               "x",
		"smote":              "maybe",
		"sentiment_backend":  "textblob",
		"retry_max_attempts": "-1",
		"nope":               "1",
	}
	for k, v := range bad {
		if err := c.Set(k, v); err == nil {
			t.Errorf("Set(%q, %q) should fail", k, v)
		}
	}
}
