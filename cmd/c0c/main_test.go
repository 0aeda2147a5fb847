package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/diagfmt"
	"c0c/internal/driver"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func exitCodeOf(err error) int {
	if err == nil {
		return driver.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return driver.ExitUsage
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		ok   bool
	}{
		{"", uiModeAuto, true},
		{"AUTO", uiModeAuto, true},
		{" on ", uiModeOn, true},
		{"off", uiModeOff, true},
		{"maybe", "", false},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		be.Equal(t, err == nil, tt.ok)
		be.Equal(t, got, tt.want)
	}
	be.Equal(t, shouldUseTUI(uiModeOff, 10), false)
	be.Equal(t, shouldUseTUI(uiModeOn, 1), true)
}

func TestInitBuildDisasm(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execute(t, "init", "hello")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "c0.toml"))

	src := filepath.Join(dir, "hello", "main.c0")
	out, err = execute(t, "build", "--ui", "off", "--color", "off", "--emit-ir", src)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "fn main #1"))
	be.True(t, strings.Contains(out, "print.s"))

	module := filepath.Join(dir, "hello", "main.o0")
	_, statErr := os.Stat(module)
	be.Err(t, statErr, nil)

	out, err = execute(t, "disasm", module)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `"hello, world"`))
	be.True(t, strings.Contains(out, "println"))
}

func TestBuildCompileErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.c0")
	be.Err(t, os.WriteFile(src, []byte("fn main() -> void { putint(1.5); }"), 0o600), nil)

	out, err := execute(t, "build", "--ui", "off", "--diag-format", "json", "--no-write", src)
	be.Equal(t, exitCodeOf(err), driver.ExitCompile)

	var payload diagfmt.DiagnosticsOutput
	be.Err(t, json.Unmarshal([]byte(out), &payload), nil)
	be.Equal(t, payload.Count, 1)
	be.Equal(t, payload.Diagnostics[0].Code, "SEM3001")
	be.Equal(t, payload.ExitCode, driver.ExitCompile)
}

func TestBuildMissingFileIsUsageError(t *testing.T) {
	_, err := execute(t, "build", "--ui", "off", filepath.Join(t.TempDir(), "nope.c0"))
	be.Equal(t, exitCodeOf(err), driver.ExitUsage)
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	be.Err(t, err, nil)
	var payload versionPayload
	be.Err(t, json.Unmarshal([]byte(out), &payload), nil)
	be.Equal(t, payload.Tool, "c0c")
}
