package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pystrfmt/internal/format"
)

// Increment when CachePayload changes shape.
const cacheSchemaVersion uint16 = 1

// Digest identifies one (file content, options) pair.
type Digest [sha256.Size]byte

// DiskCache stores formatting results keyed by content digest, so
// repeated runs over unchanged trees skip the formatter entirely.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the cached outcome for one file.
type CachePayload struct {
	Schema    uint16
	Formatted []byte
	Changed   bool
}

// OpenDiskCache initializes a disk cache under the XDG cache dir.
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

// OpenDiskCacheAt initializes a disk cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey digests file content together with the options that shape
// the output, so an options change invalidates every entry.
func CacheKey(content []byte, opts format.Options) Digest {
	h := sha256.New()

	var head [20]byte
	binary.LittleEndian.PutUint16(head[0:], cacheSchemaVersion)
	head[2] = byte(opts.Quotes)
	head[3] = byte(opts.Target)
	if opts.NormalizeHexEscapes {
		head[4] = 1
	}
	binary.LittleEndian.PutUint32(head[5:], uint32(opts.LineWidth))
	binary.LittleEndian.PutUint32(head[9:], uint32(opts.IndentWidth))
	binary.LittleEndian.PutUint32(head[13:], uint32(opts.MaxFieldDepth))
	h.Write(head[:])

	h.Write(content)
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The hit is rejected when the schema version
// does not match.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
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

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
