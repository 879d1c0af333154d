package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"luafmt/internal/format"
)

// Configuration file names searched for, in priority order.
var configFileNames = []string{"luafmt.toml", ".luafmt.toml"}

// FindConfig walks from dir upward to the filesystem root looking for a
// configuration file. It returns the path of the first one found.
func FindConfig(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range configFileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadConfig reads and decodes a configuration file. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (format.Config, error) {
	cfg := format.DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return format.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return format.Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := validateConfig(cfg); err != nil {
		return format.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfig discovers and loads the configuration for files under
// startDir, falling back to defaults when no file exists. The returned
// path is empty when defaults were used.
func ResolveConfig(startDir string) (format.Config, string, error) {
	path, ok := FindConfig(startDir)
	if !ok {
		return format.DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return format.Config{}, path, err
	}
	return cfg, path, nil
}

func validateConfig(cfg format.Config) error {
	switch cfg.IndentKind {
	case format.IndentTabs, format.IndentSpaces:
	default:
		return fmt.Errorf("invalid indent_type %q", cfg.IndentKind)
	}
	switch cfg.LineEndings {
	case format.LineEndingsUnix, format.LineEndingsWindows:
	default:
		return fmt.Errorf("invalid line_endings %q", cfg.LineEndings)
	}
	switch cfg.QuoteStyle {
	case format.QuotePreferDouble, format.QuotePreferSingle, format.QuoteForceDouble, format.QuoteForceSingle:
	default:
		return fmt.Errorf("invalid quote_style %q", cfg.QuoteStyle)
	}
	switch cfg.TableSeparator {
	case format.SeparatorComma, format.SeparatorSemicolon:
	default:
		return fmt.Errorf("invalid table_separator %q", cfg.TableSeparator)
	}
	if cfg.ColumnWidth <= 0 {
		return fmt.Errorf("invalid column_width %d", cfg.ColumnWidth)
	}
	if cfg.IndentWidth <= 0 {
		return fmt.Errorf("invalid indent_width %d", cfg.IndentWidth)
	}
	return nil
}
