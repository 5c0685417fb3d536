package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "theme.json")
	if err := os.WriteFile(valid, []byte(`{"Colors": {"background": "#202020ff"}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	th, err := LoadTheme(valid)
	if err != nil || th == nil {
		t.Fatalf("valid theme: %v, %v", th, err)
	}

	th, err = LoadTheme(filepath.Join(dir, "missing.json"))
	if err != nil || th != nil {
		t.Fatalf("missing theme should be ignored: %v, %v", th, err)
	}

	if _, err := LoadTheme(broken); err == nil {
		t.Fatalf("expected parse error")
	}

	th, err = LoadTheme("")
	if err != nil || th != nil {
		t.Fatalf("empty path: %v, %v", th, err)
	}
}
