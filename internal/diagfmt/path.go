package diagfmt

import (
	"path/filepath"

	"c0c/internal/diag"
	"c0c/internal/source"
)

func formatPath(f *source.File, mode PathMode, base string) string {
	if f == nil {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(filepath.FromSlash(f.Path)); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if base == "" {
			return f.Path
		}
		abs, err := filepath.Abs(filepath.FromSlash(f.Path))
		if err != nil {
			return f.Path
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(rel)
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.DisplayPath()
	}
}

// located reports whether span can be resolved against fs. Internal
// diagnostics carry no meaningful position.
func located(fs *source.FileSet, d *diag.Diagnostic, span source.Span) bool {
	if fs == nil || d.Code.Class() == diag.ClassInternal {
		return false
	}
	return int(span.File) < fs.Len()
}
