package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"luafmt/internal/format"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := writeConfig(t, root, "luafmt.toml", "column_width = 100\n")

	got, ok := FindConfig(nested)
	if !ok {
		t.Fatalf("config not found from nested dir")
	}
	if got != want {
		t.Fatalf("config path: want %s, got %s", want, got)
	}
}

func TestFindConfigPrefersUnhidden(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".luafmt.toml", "column_width = 80\n")
	want := writeConfig(t, dir, "luafmt.toml", "column_width = 100\n")

	got, ok := FindConfig(dir)
	if !ok || got != want {
		t.Fatalf("want %s, got %s (ok=%v)", want, got, ok)
	}
}

func TestFindConfigHiddenFallback(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, ".luafmt.toml", "column_width = 80\n")

	got, ok := FindConfig(dir)
	if !ok || got != want {
		t.Fatalf("want %s, got %s (ok=%v)", want, got, ok)
	}
}

func TestLoadConfigAppliesKnobs(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.toml", strings.Join([]string{
		`column_width = 100`,
		`indent_type = "spaces"`,
		`indent_width = 2`,
		`quote_style = "force-single"`,
		`table_separator = "semicolon"`,
		`no_call_parentheses = true`,
	}, "\n")+"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ColumnWidth != 100 || cfg.IndentKind != format.IndentSpaces || cfg.IndentWidth != 2 {
		t.Fatalf("layout knobs not applied: %+v", cfg)
	}
	if cfg.QuoteStyle != format.QuoteForceSingle || cfg.TableSeparator != format.SeparatorSemicolon {
		t.Fatalf("style knobs not applied: %+v", cfg)
	}
	if !cfg.NoCallParentheses {
		t.Fatalf("no_call_parentheses not applied")
	}
	// Untouched knobs keep their defaults.
	if cfg.LineEndings != format.LineEndingsUnix || !cfg.PadTables {
		t.Fatalf("defaults lost for unset knobs: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "luafmt.toml", "colum_width = 100\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("misspelled key must be rejected")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		`indent_type = "elastic"`,
		`quote_style = "fancy"`,
		`line_endings = "mac"`,
		`table_separator = "pipe"`,
		`column_width = -1`,
		`indent_width = 0`,
	}
	dir := t.TempDir()
	for i, body := range cases {
		path := writeConfig(t, dir, "luafmt.toml", body+"\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("case %d (%s): invalid value must be rejected", i, body)
		}
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, path, err := ResolveConfig(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" {
		t.Fatalf("no config file, path must be empty, got %s", path)
	}
	if cfg != format.DefaultConfig() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestResolveConfigSurfacesLoadError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "luafmt.toml", "not toml at all [[[\n")
	if _, _, err := ResolveConfig(dir); err == nil {
		t.Fatalf("broken config must surface an error")
	}
}
