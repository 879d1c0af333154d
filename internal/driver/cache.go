package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"luafmt/internal/format"
)

// Current schema version, incremented when the payload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// DiskCache remembers which content digests are already formatted, keyed by
// content plus configuration. A hit means the file can be skipped entirely.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cleanPayload marks one digest as known-clean.
type cleanPayload struct {
	Schema uint16
	Key    Digest
}

// OpenDiskCache initializes the cache at the standard user cache location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey hashes file content together with every formatting knob, so a
// config change invalidates all prior entries.
func cacheKey(content []byte, opts format.Options) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d;cfg=%+v;verify=%d;", diskCacheSchemaVersion, opts.Config, opts.Verify)
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "clean", hexKey[:2], hexKey+".mp")
}

// IsClean reports whether the digest was recorded as already formatted.
// A nil cache never hits.
func (c *DiskCache) IsClean(key Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false
	}
	defer f.Close()

	var payload cleanPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false
	}
	return payload.Schema == diskCacheSchemaVersion && payload.Key == key
}

// MarkClean records a digest as formatted. Errors are swallowed: the cache
// only ever costs speed.
func (c *DiskCache) MarkClean(key Digest) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	name := f.Name()
	payload := cleanPayload{Schema: diskCacheSchemaVersion, Key: key}
	encErr := msgpack.NewEncoder(f).Encode(payload)
	closeErr := f.Close()
	if encErr != nil || closeErr != nil {
		os.Remove(name)
		return
	}
	if err := os.Rename(name, p); err != nil {
		os.Remove(name)
	}
}

// DropAll clears the cache directory.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "clean"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
