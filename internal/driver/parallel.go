package driver

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// formatParallel formats the collected files concurrently. Each worker
// writes only its own result slot, so no locking is needed beyond the
// cache's own.
func formatParallel(ctx context.Context, files []string, opts FormatOptions, cache *DiskCache) ([]FormatResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = formatOneResult(path, opts, cache)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOneResult(path string, opts FormatOptions, cache *DiskCache) FormatResult {
	result := FormatResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	key := cacheKey(data, opts.Options)
	if cache.IsClean(key) {
		return result
	}

	formatted, changed, warning, err := formatSingleFile(path, data, opts)
	result.Warning = warning
	if err != nil {
		result.Err = err
		return result
	}

	if opts.Check {
		result.Changed = changed
		return result
	}
	if opts.Stdout {
		result.Formatted = formatted
		result.Changed = changed
		return result
	}

	if changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			return result
		}
		result.Changed = true
	}

	// Output is now known clean for this config; remember it only when
	// verification did not flag it.
	if warning == nil {
		cache.MarkClean(cacheKey(formatted, opts.Options))
	}
	return result
}
