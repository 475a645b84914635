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

	"jsrb/internal/project"
)

// Current schema version - increment when DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest keys the disk cache: sha256 over the correction table, the
// translator options and the input document. Any of them changing
// invalidates the entry.
type Digest [sha256.Size]byte

// DiskCache stores translated output per input fingerprint on disk.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached result of translating one document.
type DiskPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	// Output is the fully corrected target text.
	Output string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// XDG location.
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

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Keep entries under a subdirectory so the cache root stays tidy.
	return filepath.Join(c.dir, "out", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. The boolean
// reports whether the entry existed.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("driver: corrupt cache entry: %w", err)
	}
	return true, nil
}

// Fingerprint derives the cache key for one input document under this
// translator's configuration.
func (t *Translator) Fingerprint(src []byte) Digest {
	h := sha256.New()
	h.Write(t.fingerprintSeed)
	h.Write(src)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// fingerprintSeed folds everything configuration-side that affects
// output into a stable byte string.
func fingerprintSeed(m *project.Manifest) []byte {
	h := sha256.New()
	fmt.Fprintf(h, "schema:%d;indent:%d;print:%s;floor:%s;",
		diskCacheSchemaVersion,
		m.Translate.IndentWidth,
		m.Translate.PrintBuiltin,
		m.Translate.FloorSource,
	)
	for _, r := range m.Rules() {
		fmt.Fprintf(h, "rule:%q->%q;", r.Pattern, r.Replace)
	}
	return h.Sum(nil)
}
