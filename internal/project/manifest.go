// Package project finds and decodes the c0.toml manifest.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for by Find.
const ManifestName = "c0.toml"

// SourceExt is the extension of c0 source files.
const SourceExt = ".c0"

// Manifest is a decoded c0.toml with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig holds defaults for c0c build; command-line flags win.
type BuildConfig struct {
	Sources []string `toml:"sources"` // файлы или glob-шаблоны относительно Root
	OutDir  string   `toml:"out_dir"`
	Cache   bool     `toml:"cache"`
	Jobs    int      `toml:"jobs"`
}

// Find walks up from startDir to locate c0.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest above startDir. ok is false when
// there is none.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Sources expands [build].sources; with none listed every *.c0 under Root
// is used. The result is sorted and free of duplicates.
func (m *Manifest) Sources() ([]string, error) {
	patterns := m.Config.Build.Sources
	if len(patterns) == 0 {
		return ListSources(m.Root)
	}
	var out []string
	for _, pattern := range patterns {
		abs := filepath.Join(m.Root, filepath.FromSlash(pattern))
		matches, err := filepath.Glob(abs)
		if err != nil {
			return nil, fmt.Errorf("%s: bad source pattern %q: %w", m.Path, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: source %q matches no files", m.Path, pattern)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// OutDir resolves [build].out_dir against Root; empty means next to sources.
func (m *Manifest) OutDir() string {
	if strings.TrimSpace(m.Config.Build.OutDir) == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// ListSources returns every *.c0 file below dir, sorted.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes a fresh manifest into dir. It refuses to overwrite one.
func Init(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		name = filepath.Base(abs)
	}
	data, err := Encode(Config{
		Package: PackageConfig{Name: name},
		Build:   BuildConfig{Sources: []string{"*" + SourceExt}, OutDir: "out"},
	})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
