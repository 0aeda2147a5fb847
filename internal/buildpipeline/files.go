package buildpipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// DisplayFiles makes paths relative to baseDir where possible, converts them
// to slash form and drops duplicates. The result is sorted.
func DisplayFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		path := DisplayPath(file, base)
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}

// DisplayPath is the single-file form of DisplayFiles.
func DisplayPath(file, base string) string {
	if strings.TrimSpace(file) == "" {
		return ""
	}
	path := filepath.Clean(file)
	if base != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
