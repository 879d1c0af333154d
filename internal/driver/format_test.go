package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"luafmt/internal/format"
)

func writeLua(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func defaultOptions() FormatOptions {
	return FormatOptions{
		NoCache: true,
		Options: format.Options{Config: format.DefaultConfig(), Verify: format.VerifyFull},
	}
}

func TestFormatPathsWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeLua(t, dir, "a.lua", "if x then y() end\n")

	results, err := FormatPaths(context.Background(), []string{path}, defaultOptions())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if !results[0].Changed {
		t.Fatalf("file should have been rewritten")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "if x then\n\ty()\nend\n" {
		t.Fatalf("written content mismatch: %q", data)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	src := "if x then y() end\n"
	path := writeLua(t, dir, "a.lua", src)

	opts := defaultOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("check must report the pending change")
	}

	data, _ := os.ReadFile(path)
	if string(data) != src {
		t.Fatalf("check mode rewrote the file: %q", data)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeLua(t, dir, "a.lua", "local a   =   1\n")

	opts := defaultOptions()
	opts.Stdout = true
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if string(results[0].Formatted) != "local a = 1\n" {
		t.Fatalf("stdout content mismatch: %q", results[0].Formatted)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "local a   =   1\n" {
		t.Fatalf("stdout mode rewrote the file: %q", data)
	}
}

func TestFormatPathsRecursesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", "x   =   1\n")
	writeLua(t, dir, filepath.Join("sub", "b.lua"), "y   =   2\n")
	writeLua(t, dir, "notes.txt", "not lua\n")

	opts := defaultOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 lua files, got %d: %+v", len(results), results)
	}
}

func TestFormatPathsParseErrorPerFile(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "good.lua", "x = 1\n")
	writeLua(t, dir, "bad.lua", "if then end\n")

	opts := defaultOptions()
	opts.Check = true
	results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatalf("a broken file must not abort the run: %v", err)
	}

	var goodErr, badErr error
	for _, r := range results {
		switch filepath.Base(r.Path) {
		case "good.lua":
			goodErr = r.Err
		case "bad.lua":
			badErr = r.Err
		}
	}
	if goodErr != nil {
		t.Fatalf("good file failed: %v", goodErr)
	}
	if badErr == nil {
		t.Fatalf("bad file must carry a parse error")
	}
	if _, ok := badErr.(*format.ParseError); !ok {
		t.Fatalf("want *format.ParseError, got %T", badErr)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := FormatPaths(context.Background(), []string{dir}, defaultOptions()); err == nil {
		t.Fatalf("empty directory must be reported")
	}
}

func TestFormatPathsCacheSkipsCleanFiles(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeLua(t, dir, "a.lua", "if x then y() end\n")

	opts := defaultOptions()
	opts.NoCache = false

	if _, err := FormatPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if results[0].Changed {
		t.Fatalf("already-formatted file must be a cache hit, not a rewrite")
	}
}

func TestFormatPathsHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeLua(t, dir, "a.lua", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{dir}, defaultOptions()); err == nil {
		t.Fatalf("cancelled context must abort the run")
	}
}

func TestFormatPathsIdempotentOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeLua(t, dir, "a.lua", "local t = {1,2,3}\nfor i,v in ipairs(t) do print(i ,v) end\n")

	opts := defaultOptions()
	if _, err := FormatPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, _ := os.ReadFile(path)

	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if results[0].Changed {
		t.Fatalf("second run changed already-formatted output")
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Fatalf("on-disk content drifted:\nfirst  %q\nsecond %q", first, second)
	}
}
