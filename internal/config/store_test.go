package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSettings = `# launcher settings
global:
  fill_empty: true
  no_close: "maybe"
section_0:
  title: Web
  Q:
    title: Firefox   # main browser
    class: firefox
    command: firefox
  Y:
    title: Yazi
  N:
    title: ~
state:
  last_used_section: 3
`

func TestStore_ReadsNestedScalars(t *testing.T) {
	s, err := Parse([]byte(sampleSettings))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if v, ok := s.String("section_0/Q/class"); !ok || v != "firefox" {
		t.Fatalf("expected class firefox, got %q ok=%v", v, ok)
	}
	if v, ok := s.String("section_0/Y/title"); !ok || v != "Yazi" {
		t.Fatalf("expected Y key to be a plain string key, got %q ok=%v", v, ok)
	}
	if v, ok := s.Bool("global/fill_empty"); !ok || !v {
		t.Fatalf("expected fill_empty true, got %v ok=%v", v, ok)
	}
	if v, ok := s.Int("state/last_used_section"); !ok || v != 3 {
		t.Fatalf("expected last section 3, got %d ok=%v", v, ok)
	}
}

func TestStore_AbsentValues(t *testing.T) {
	s, err := Parse([]byte(sampleSettings))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []string{
		"section_1/Q/title",      // missing section
		"section_0/W/title",      // missing letter
		"section_0/N/title",      // explicit null
		"section_0/Q",            // mapping, not scalar
		"section_0/Q/title/deep", // descends through a scalar
		"",
	}
	for _, path := range cases {
		if v, ok := s.String(path); ok {
			t.Fatalf("expected %q to be absent, got %q", path, v)
		}
	}
	if _, ok := s.Bool("global/no_close"); ok {
		t.Fatalf("expected malformed bool to be absent")
	}
	if _, ok := s.Int("section_0/title"); ok {
		t.Fatalf("expected non-integer to be absent")
	}
}

func TestOpen_MissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qwerty.yaml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := s.String("section_0/title"); ok {
		t.Fatalf("expected empty store")
	}
	if s.Path() != path {
		t.Fatalf("expected path %q, got %q", path, s.Path())
	}
}

func TestOpen_RejectsNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qwerty.yaml")
	if err := os.WriteFile(path, []byte("- a\n- b\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatalf("expected error for sequence root")
	}
}

func TestStore_SetSyncRoundTripPreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "qwerty.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(sampleSettings), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyLastSection, 7); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("section_4/A/title", "Terminal"); err != nil {
		t.Fatalf("set new path: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "# launcher settings") || !strings.Contains(text, "# main browser") {
		t.Fatalf("expected comments to survive, got:\n%s", text)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Int(KeyLastSection); !ok || v != 7 {
		t.Fatalf("expected last section 7, got %d ok=%v", v, ok)
	}
	if v, ok := reopened.String("section_4/A/title"); !ok || v != "Terminal" {
		t.Fatalf("expected new title, got %q ok=%v", v, ok)
	}
	if v, ok := reopened.String("section_0/Q/command"); !ok || v != "firefox" {
		t.Fatalf("expected untouched command, got %q ok=%v", v, ok)
	}
	if v, ok := reopened.String("section_0/Y/title"); !ok || v != "Yazi" {
		t.Fatalf("expected Y title to survive, got %q ok=%v", v, ok)
	}
}

func TestStore_SetThroughScalarFails(t *testing.T) {
	s, err := Parse([]byte(sampleSettings))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := s.Set("section_0/title/x", 1); err == nil {
		t.Fatalf("expected error when descending through a scalar")
	}
}

func TestStore_SetThroughEmptyKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qwerty.yaml")
	if err := os.WriteFile(path, []byte("state:\nglobal:\n  no_close: false\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyLastSection, 4); err != nil {
		t.Fatalf("set under empty key: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Int(KeyLastSection); !ok || v != 4 {
		t.Fatalf("expected last section 4, got %d ok=%v", v, ok)
	}
	if v, ok := reopened.Bool("global/no_close"); !ok || v {
		t.Fatalf("expected no_close false to survive, got %v ok=%v", v, ok)
	}
}

func TestStore_SetDoesNotWriteThroughAlias(t *testing.T) {
	s, err := Parse([]byte("base: &b\n  x: 1\nstate: *b\nother: *b\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := s.Set(KeyLastSection, 5); err != nil {
		t.Fatalf("set through alias: %v", err)
	}
	if _, ok := s.Int("base/last_used_section"); ok {
		t.Fatalf("anchored mapping was modified")
	}
	if _, ok := s.Int("other/last_used_section"); ok {
		t.Fatalf("sibling alias was modified")
	}
	if v, ok := s.Int(KeyLastSection); !ok || v != 5 {
		t.Fatalf("expected last section 5, got %d ok=%v", v, ok)
	}
	if v, ok := s.Int("state/x"); !ok || v != 1 {
		t.Fatalf("expected copied key x=1, got %d ok=%v", v, ok)
	}

	if err := s.Set("other", 9); err != nil {
		t.Fatalf("set alias leaf: %v", err)
	}
	if v, ok := s.Int("base/x"); !ok || v != 1 {
		t.Fatalf("expected anchored x to stay 1, got %d ok=%v", v, ok)
	}
	if v, ok := s.Int("other"); !ok || v != 9 {
		t.Fatalf("expected other=9, got %d ok=%v", v, ok)
	}
}

func TestStore_SyncCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "qwerty.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyLastSection, 2); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, in := range []string{"", "# only a comment\n", "~\n"} {
		s, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if err := s.Set("a/b", "c"); err != nil {
			t.Fatalf("set on %q: %v", in, err)
		}
		if v, ok := s.String("a/b"); !ok || v != "c" {
			t.Fatalf("expected a/b=c on %q, got %q", in, v)
		}
	}
}
