package driver

import (
	"testing"

	"luafmt/internal/format"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("luafmt-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	opts := format.Options{Config: format.DefaultConfig()}
	key := cacheKey([]byte("local a = 1\n"), opts)

	if cache.IsClean(key) {
		t.Fatalf("fresh cache must miss")
	}
	cache.MarkClean(key)
	if !cache.IsClean(key) {
		t.Fatalf("recorded digest must hit")
	}

	other := cacheKey([]byte("local b = 2\n"), opts)
	if cache.IsClean(other) {
		t.Fatalf("different content must miss")
	}
}

func TestCacheKeyCoversConfig(t *testing.T) {
	content := []byte("local a = 1\n")
	base := format.Options{Config: format.DefaultConfig()}

	narrow := base
	narrow.Config.ColumnWidth = 80
	if cacheKey(content, base) == cacheKey(content, narrow) {
		t.Fatalf("config change must change the key")
	}

	verified := base
	verified.Verify = format.VerifyFull
	if cacheKey(content, base) == cacheKey(content, verified) {
		t.Fatalf("verification mode must change the key")
	}

	if cacheKey(content, base) != cacheKey([]byte("local a = 1\n"), base) {
		t.Fatalf("equal inputs must produce equal keys")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := cacheKey([]byte("x = 1\n"), format.Options{Config: format.DefaultConfig()})
	cache.MarkClean(key)

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if cache.IsClean(key) {
		t.Fatalf("dropped cache must miss")
	}
	// Dropping an already-empty cache is fine.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second drop: %v", err)
	}
}

func TestDiskCacheNilSafe(t *testing.T) {
	var cache *DiskCache
	key := cacheKey([]byte("x"), format.Options{Config: format.DefaultConfig()})
	if cache.IsClean(key) {
		t.Fatalf("nil cache must miss")
	}
	cache.MarkClean(key)
	if err := cache.DropAll(); err != nil {
		t.Fatalf("nil drop: %v", err)
	}
}
