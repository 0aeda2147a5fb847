package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := prof.Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	be.True(t, cfg.Enabled())

	s, err := prof.Start(cfg)
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)
	be.Err(t, s.Stop(), nil)

	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		info, err := os.Stat(path)
		be.Err(t, err, nil)
		be.True(t, info.Size() > 0)
	}
}

func TestStartFailsCleanly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "trace.out")
	_, err := prof.Start(prof.Config{Trace: missing})
	be.True(t, err != nil)

	// the failed session must not leave the trace running
	s, err := prof.Start(prof.Config{Trace: filepath.Join(t.TempDir(), "trace.out")})
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)
	be.True(t, !prof.Config{}.Enabled())
}
