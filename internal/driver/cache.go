package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"c0c/internal/project"
	"c0c/internal/trace"
	"c0c/internal/version"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// DiskCache хранит готовые модули по хешу исходника и версии компилятора.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is one cached compilation result. Only successful
// compilations are stored: failures must always re-report diagnostics.
type CachePayload struct {
	Schema   uint16
	Compiler string
	Path     string
	Source   project.Digest
	Module   []byte
	Globals  int
	Funcs    int
	Stored   time.Time
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "mods", hexKey[:2], hexKey+".mp")
}

// Put serializes and atomically writes a payload.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) (err error) {
	if c == nil || payload == nil {
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
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry is (false, nil); an entry written
// by another schema is treated as missing.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (bool, error) {
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
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	mods := filepath.Join(c.dir, "mods")
	old := mods + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(mods, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// CacheKey binds the source digest to the compiler build.
func CacheKey(source project.Digest) project.Digest {
	return project.Combine(source, project.HashBytes([]byte(version.Fingerprint())))
}

func (c *Compilation) lookupCache(ctx context.Context) (bool, error) {
	c.Key = CacheKey(project.Digest(c.File.Hash))
	var payload CachePayload
	hit, err := c.opts.Cache.Get(c.Key, &payload)
	if err != nil {
		// битая запись - просто компилируем заново
		trace.Point(ctx, trace.ScopeFile, "cache", err.Error())
		return false, nil
	}
	if !hit || payload.Source != project.Digest(c.File.Hash) {
		return false, nil
	}
	c.Module = payload.Module
	c.Cached = true
	trace.Point(ctx, trace.ScopeFile, "cache", "hit "+c.Key.String()[:12])
	return true, nil
}

func (c *Compilation) payload() *CachePayload {
	p := &CachePayload{
		Schema:   cacheSchemaVersion,
		Compiler: version.Fingerprint(),
		Path:     c.Path,
		Source:   project.Digest(c.File.Hash),
		Module:   c.Module,
		Stored:   time.Now(),
	}
	if c.Program != nil {
		p.Globals = c.Program.Globals.Len()
		p.Funcs = c.Program.Funcs.Len() + 1
	}
	return p
}
