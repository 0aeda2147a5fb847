package driver_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/buildpipeline"
	"c0c/internal/driver"
)

func walkFiles(t *testing.T, root string, visit func(path string)) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			visit(path)
		}
		return nil
	})
	be.Err(t, err, nil)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src, outDir, want string
	}{
		{"a/b/main.c0", "", filepath.Join("a", "b", "main.o0")},
		{"main.c0", "out", filepath.Join("out", "main.o0")},
		{"noext", "", "noext.o0"},
	}
	for _, tt := range tests {
		be.Equal(t, driver.OutputPath(tt.src, tt.outDir), tt.want)
	}
}

func TestCompileFilesMixed(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.c0", helloSrc)
	bad := writeSource(t, dir, "bad.c0", "fn main() -> void { putint(true); }")
	missing := filepath.Join(dir, "missing.c0")
	outDir := filepath.Join(dir, "out")
	be.Err(t, os.MkdirAll(outDir, 0o755), nil)

	rec := &buildpipeline.Recorder{}
	res, err := driver.CompileFiles(context.Background(), []string{good, bad, missing}, driver.BatchOptions{
		Options: driver.Options{Progress: rec},
		Jobs:    2,
		OutDir:  outDir,
		BaseDir: dir,
	})
	be.Err(t, err, nil)
	be.Equal(t, len(res.Files), 3)

	be.Equal(t, res.Files[0].ExitCode(), driver.ExitOK)
	be.Equal(t, res.Files[1].ExitCode(), driver.ExitCompile)
	be.True(t, res.Errs[2] != nil)
	be.True(t, res.Err() != nil)
	// usage errors rank below compile errors
	be.Equal(t, res.ExitCode(), driver.ExitCompile)

	_, statErr := os.Stat(filepath.Join(outDir, "good.o0"))
	be.Err(t, statErr, nil)
	_, statErr = os.Stat(filepath.Join(outDir, "bad.o0"))
	be.True(t, os.IsNotExist(statErr))

	last := rec.Last()
	be.Equal(t, last["good.c0"], buildpipeline.StatusDone)
	be.Equal(t, last["bad.c0"], buildpipeline.StatusError)
	be.Equal(t, last["missing.c0"], buildpipeline.StatusError)
}

func TestCompileFilesRejectsOutputCollision(t *testing.T) {
	dir := t.TempDir()
	be.Err(t, os.MkdirAll(filepath.Join(dir, "x"), 0o755), nil)
	a := writeSource(t, dir, "main.c0", helloSrc)
	b := writeSource(t, filepath.Join(dir, "x"), "main.c0", helloSrc)

	_, err := driver.CompileFiles(context.Background(), []string{a, b}, driver.BatchOptions{OutDir: filepath.Join(dir, "out")})
	if err == nil {
		t.Fatal("expected collision error")
	}

	res, err := driver.CompileFiles(context.Background(), []string{a, b}, driver.BatchOptions{NoWrite: true})
	be.Err(t, err, nil)
	be.Equal(t, res.ExitCode(), driver.ExitOK)
}

func TestCompileFilesEmpty(t *testing.T) {
	res, err := driver.CompileFiles(context.Background(), nil, driver.BatchOptions{})
	be.Err(t, err, nil)
	be.Equal(t, res.ExitCode(), driver.ExitOK)
}

func TestCompileFilesCanceled(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.c0", helloSrc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.CompileFiles(ctx, []string{path}, driver.BatchOptions{NoWrite: true})
	be.Err(t, err, context.Canceled)
}

func TestCompileFilesExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c0", helloSrc)
	out := filepath.Join(dir, "program.bin")

	res, err := driver.CompileFiles(context.Background(), []string{src}, driver.BatchOptions{Output: out})
	be.Err(t, err, nil)
	be.Equal(t, res.ExitCode(), driver.ExitOK)
	_, statErr := os.Stat(out)
	be.Err(t, statErr, nil)

	_, err = driver.CompileFiles(context.Background(), []string{src, src}, driver.BatchOptions{Output: out})
	be.Err(t, err, "exactly one source")
}
