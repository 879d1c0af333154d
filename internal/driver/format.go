package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"luafmt/internal/format"
	"luafmt/internal/source"
)

// FormatOptions configures a formatting run over files and directories.
type FormatOptions struct {
	// Check reports whether files would change without writing anything.
	Check bool
	// Stdout returns formatted content in the results instead of writing
	// files.
	Stdout bool
	// Jobs caps the number of files formatted concurrently; zero means one
	// per CPU.
	Jobs int
	// NoCache disables the on-disk clean-file cache.
	NoCache bool
	// Options is passed through to the formatter.
	Options format.Options
}

// FormatResult captures the outcome for a single file. Warning holds a
// verification mismatch: output was produced but is suspect.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Warning   error
	Formatted []byte
}

// FormatPaths formats the given files and directories, collecting .lua
// files recursively. Results come back in sorted path order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	var cache *DiskCache
	if !opts.NoCache && !opts.Stdout && opts.Options.Range == nil {
		// Cache failures only cost speed, never correctness.
		cache, _ = OpenDiskCache("luafmt")
	}

	results, err := formatParallel(ctx, files, opts, cache)
	if err != nil {
		return results, err
	}
	return results, nil
}

// formatSingleFile formats one file's content and reports whether it
// changed. The caller decides what to do with the output.
func formatSingleFile(path string, data []byte, opts FormatOptions) (formatted []byte, changed bool, warning error, err error) {
	fileSet := source.NewFileSet()
	fileID := fileSet.Add(path, data, 0)
	sf := fileSet.Get(fileID)

	out, err := format.File(sf, opts.Options)
	if err != nil {
		var equiv *format.EquivalenceError
		if !errors.As(err, &equiv) {
			return nil, false, nil, err
		}
		warning = err
	}

	formatted = []byte(out)
	changed = !bytes.Equal(data, formatted)
	return formatted, changed, warning, nil
}

// collectSourceFiles expands paths into a sorted, deduplicated list of .lua
// files. Explicit file arguments are taken as-is regardless of extension.
func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if filepath.Ext(path) == ".lua" {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
