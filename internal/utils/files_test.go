package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileCreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	if err := SafeWriteFile(p, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	var got map[string]int
	if err := ReadJSON(p, &got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["a"] != 1 {
		t.Fatalf("unexpected content: %v", got)
	}
}

func TestReadJSONMissing(t *testing.T) {
	var v any
	err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"), &v)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/tmp/home-x")
	got, err := ExpandHome("~/runs.db")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join("/tmp/home-x", "runs.db") {
		t.Fatalf("got %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path changed: %q", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "runs.db")
	if err := EnsureParentDir(p); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if fi, err := os.Stat(filepath.Dir(p)); err != nil || !fi.IsDir() {
		t.Fatalf("parent not created: %v", err)
	}
	if err := EnsureParentDir("runs.db"); err != nil {
		t.Fatalf("bare file name: %v", err)
	}
}
