package driver_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/driver"
	"c0c/internal/project"
)

func TestDiskCacheHitAfterCompile(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	be.Err(t, err, nil)
	opts := driver.Options{Cache: cache}

	first, err := driver.CompileSource(context.Background(), "main.c0", []byte(helloSrc), opts)
	be.Err(t, err, nil)
	be.Equal(t, first.Cached, false)

	second, err := driver.CompileSource(context.Background(), "main.c0", []byte(helloSrc), opts)
	be.Err(t, err, nil)
	be.Equal(t, second.Cached, true)
	be.Equal(t, second.ExitCode(), driver.ExitOK)
	be.True(t, bytes.Equal(second.Module, first.Module))
	be.Equal(t, second.Key, first.Key)

	// a cache hit still lists from the module bytes
	var buf bytes.Buffer
	be.Err(t, second.Listing(&buf), nil)
	be.True(t, bytes.Contains(buf.Bytes(), []byte("print.i")))
}

func TestDiskCacheSkipsFailures(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	be.Err(t, err, nil)
	opts := driver.Options{Cache: cache}
	src := []byte("fn main() -> void { undefined(); }")

	for range 2 {
		c, err := driver.CompileSource(context.Background(), "bad.c0", src, opts)
		be.Err(t, err, nil)
		be.Equal(t, c.Cached, false)
		be.Equal(t, c.ExitCode(), driver.ExitCompile)
	}
}

func TestDiskCacheGetPut(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	be.Err(t, err, nil)
	key := driver.CacheKey(project.HashBytes([]byte("src")))

	var out driver.CachePayload
	hit, err := cache.Get(key, &out)
	be.Err(t, err, nil)
	be.Equal(t, hit, false)

	be.Err(t, cache.Put(key, &driver.CachePayload{Schema: 1, Module: []byte{1, 2, 3}, Funcs: 2}), nil)
	hit, err = cache.Get(key, &out)
	be.Err(t, err, nil)
	be.Equal(t, hit, true)
	be.Equal(t, out.Funcs, 2)
	be.True(t, bytes.Equal(out.Module, []byte{1, 2, 3}))

	// another schema reads as a miss
	be.Err(t, cache.Put(key, &driver.CachePayload{Schema: 99}), nil)
	hit, err = cache.Get(key, &out)
	be.Err(t, err, nil)
	be.Equal(t, hit, false)

	be.Err(t, cache.DropAll(), nil)
	hit, err = cache.Get(key, &out)
	be.Err(t, err, nil)
	be.Equal(t, hit, false)
}

func TestDiskCacheCorruptEntryRecompiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.NewDiskCache(dir)
	be.Err(t, err, nil)
	first, err := driver.CompileSource(context.Background(), "main.c0", []byte(helloSrc), driver.Options{Cache: cache})
	be.Err(t, err, nil)

	var corrupted int
	walkFiles(t, dir, func(path string) {
		be.Err(t, os.WriteFile(path, []byte{0xc1}, 0o600), nil)
		corrupted++
	})
	be.Equal(t, corrupted, 1)

	again, err := driver.CompileSource(context.Background(), "main.c0", []byte(helloSrc), driver.Options{Cache: cache})
	be.Err(t, err, nil)
	be.Equal(t, again.Cached, false)
	be.True(t, bytes.Equal(again.Module, first.Module))
}

func TestCacheKeyDependsOnSource(t *testing.T) {
	a := driver.CacheKey(project.HashBytes([]byte("a")))
	b := driver.CacheKey(project.HashBytes([]byte("b")))
	be.True(t, a != b)
	be.Equal(t, a, driver.CacheKey(project.HashBytes([]byte("a"))))
}
