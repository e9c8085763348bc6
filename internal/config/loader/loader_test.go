package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"cursorkit.toml", FormatTOML, false},
		{"/etc/cursorkit.YAML", FormatYAML, false},
		{"conf.yml", FormatYAML, false},
		{"conf.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("FormatOf(%q) error = %v, want error %v", tt.path, err, tt.err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatOf(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFileLoadTOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cursorkit.toml", `
log_level = "debug"
visible_lines = [0, 40]

[chains]
quick = [["cursors_from_comma_list"], ["ace_jump_word", {}]]
`)

	l, err := NewFileWithFS(memfs, "/cursorkit.toml")
	if err != nil {
		t.Fatalf("NewFileWithFS failed: %v", err)
	}
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["log_level"] != "debug" {
		t.Errorf("log_level = %v, want debug", config["log_level"])
	}
	lines, ok := config["visible_lines"].([]any)
	if !ok || len(lines) != 2 || lines[1] != int64(40) {
		t.Errorf("visible_lines = %#v", config["visible_lines"])
	}
	chains, ok := config["chains"].(map[string]any)
	if !ok {
		t.Fatal("expected chains table")
	}
	quick, ok := chains["quick"].([]any)
	if !ok || len(quick) != 2 {
		t.Errorf("chains.quick = %#v", chains["quick"])
	}
}

func TestFileLoadYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cursorkit.yaml", `
log_level: warn
scripts: [a.lua, b.lua]
chains:
  quick:
    - [save_cursors]
    - command: go_to_custom_end
      args: {line: last}
`)

	l, err := NewFileWithFS(memfs, "/cursorkit.yaml")
	if err != nil {
		t.Fatalf("NewFileWithFS failed: %v", err)
	}
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["log_level"] != "warn" {
		t.Errorf("log_level = %v, want warn", config["log_level"])
	}
	chains := config["chains"].(map[string]any)
	quick := chains["quick"].([]any)
	second, ok := quick[1].(map[string]any)
	if !ok || second["command"] != "go_to_custom_end" {
		t.Errorf("unexpected second spec %#v", quick[1])
	}
}

func TestFileLoadNonExistent(t *testing.T) {
	l, _ := NewFileWithFS(NewMemFS(), "/missing.toml")

	config, err := l.Load()
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestFileLoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "log_level = \"x\"\nthis is not toml\n")

	l, _ := NewFileWithFS(memfs, "/bad.toml")
	_, err := l.Load()

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "/bad.toml" || perr.Line != 2 {
		t.Errorf("unexpected parse error location: %s line %d", perr.Path, perr.Line)
	}
}

func TestFileLoadFromReader(t *testing.T) {
	l, _ := NewFileWithFS(NewMemFS(), "inline.yml")

	config, err := l.LoadFromReader(strings.NewReader("log_level: error\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["log_level"] != "error" {
		t.Errorf("log_level = %v, want error", config["log_level"])
	}
}

func TestFileLoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/conf/cursorkit.toml", `
"@include" = ["base.yaml"]
log_level = "debug"

[chains]
mine = [["save_cursors"]]
`)
	memfs.AddFile("/conf/base.yaml", `
log_level: info
visible_lines: [5, 10]
chains:
  shared: [[restore_cursors]]
`)

	l, _ := NewFileWithFS(memfs, "/conf/cursorkit.toml")
	config, err := l.LoadWithIncludes(5)
	if err != nil {
		t.Fatalf("LoadWithIncludes failed: %v", err)
	}

	if config["log_level"] != "debug" {
		t.Errorf("log_level = %v, want the including file's value", config["log_level"])
	}
	if _, ok := config["visible_lines"]; !ok {
		t.Error("expected visible_lines from the included file")
	}
	chains := config["chains"].(map[string]any)
	if _, ok := chains["mine"]; !ok {
		t.Error("expected chains.mine")
	}
	if _, ok := chains["shared"]; !ok {
		t.Error("expected chains.shared merged in")
	}
	if _, ok := config[IncludeKey]; ok {
		t.Error("include key should be removed")
	}
}

func TestFileLoadWithIncludesDepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = "b.toml"`)
	memfs.AddFile("/b.toml", `"@include" = "c.toml"`)
	memfs.AddFile("/c.toml", `value = 1`)

	l, _ := NewFileWithFS(memfs, "/a.toml")

	if _, err := l.LoadWithIncludes(2); !errors.Is(err, ErrIncludeDepth) {
		t.Fatalf("expected ErrIncludeDepth, got %v", err)
	}

	config, err := l.LoadWithIncludes(5)
	if err != nil {
		t.Fatalf("expected success with depth 5, got: %v", err)
	}
	if config["value"] != int64(1) {
		t.Errorf("value = %v, want 1", config["value"])
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"log_level": "info",
		"chains":    map[string]any{"a": []any{"x"}, "b": []any{"y"}},
	}
	src := map[string]any{
		"log_level": "debug",
		"chains":    map[string]any{"b": []any{"z"}},
	}

	got := DeepMerge(dst, src)
	if got["log_level"] != "debug" {
		t.Errorf("log_level = %v", got["log_level"])
	}
	chains := got["chains"].(map[string]any)
	if len(chains) != 2 || chains["b"].([]any)[0] != "z" {
		t.Errorf("unexpected chains %v", chains)
	}

	if DeepMerge(nil, src)["log_level"] != "debug" {
		t.Error("merging into nil should copy src")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{"chains": map[string]any{"a": []any{[]any{"x"}}}}
	dst := Clone(src)

	dst["chains"].(map[string]any)["a"].([]any)[0] = "changed"
	if src["chains"].(map[string]any)["a"].([]any)[0].([]any)[0] != "x" {
		t.Error("clone should not share nested values")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestEnvLoaderLoad(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{
			"CURSORKIT_LOG_LEVEL=debug",
			"CURSORKIT_VISIBLE_LINES=[2, 12]",
			`CURSORKIT_CHAINS__QUICK=[["save_cursors"]]`,
			"CURSORKIT_=ignored",
			"HOME=/root",
		}
	}

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config["log_level"] != "debug" {
		t.Errorf("log_level = %v", config["log_level"])
	}
	lines, ok := config["visible_lines"].([]any)
	if !ok || len(lines) != 2 || lines[0] != int64(2) {
		t.Errorf("visible_lines = %#v", config["visible_lines"])
	}
	chains, ok := config["chains"].(map[string]any)
	if !ok {
		t.Fatalf("expected chains table, got %#v", config)
	}
	if _, ok := chains["quick"].([]any); !ok {
		t.Errorf("chains.quick = %#v", chains["quick"])
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables must be ignored")
	}
	if len(config) != 3 {
		t.Errorf("unexpected keys %v", config)
	}
}

func TestEnvToPath(t *testing.T) {
	tests := map[string]string{
		"LOG_LEVEL":     "log_level",
		"CHAINS__QUICK": "chains.quick",
		"SCRIPTS":       "scripts",
	}
	for in, want := range tests {
		if got := EnvToPath(in); got != want {
			t.Errorf("EnvToPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"debug", "debug"},
		{"[1", "[1"},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
