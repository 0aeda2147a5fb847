package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"c0c/internal/buildpipeline"
	"c0c/internal/project"
	"c0c/internal/trace"
)

// BatchOptions configure CompileFiles.
type BatchOptions struct {
	Options
	// Jobs limits concurrent compilations; <=0 means GOMAXPROCS.
	Jobs int
	// OutDir receives one module per source; empty writes next to each source.
	OutDir string
	// Output names the module file explicitly; valid for a single source only.
	Output string
	// NoWrite compiles without writing modules.
	NoWrite bool
	// BaseDir shortens paths in progress events.
	BaseDir string
}

// BatchResult keeps results in input order.
type BatchResult struct {
	Files []*Compilation
	// Errs holds I/O errors per file, aligned with Files.
	Errs []error
}

// ExitCode is the worst exit code over all files.
func (r *BatchResult) ExitCode() int {
	code := ExitOK
	for i, c := range r.Files {
		fileCode := ExitOK
		switch {
		case r.Errs[i] != nil:
			fileCode = ExitUsage
		case c != nil:
			fileCode = c.ExitCode()
		}
		code = worseExit(code, fileCode)
	}
	return code
}

// Err joins per-file I/O errors.
func (r *BatchResult) Err() error {
	return errors.Join(r.Errs...)
}

// worseExit orders internal > compile > usage > ok.
func worseExit(a, b int) int {
	rank := func(code int) int {
		switch code {
		case ExitInternal:
			return 3
		case ExitCompile:
			return 2
		case ExitUsage:
			return 1
		}
		return 0
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// OutputPath maps a source path to its module path: "dir/x.c0" -> "dir/x.o0",
// or outDir/x.o0 when outDir is set.
func OutputPath(src, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".o0"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(src), base)
}

// CompileFiles compiles every path as an independent Compilation, up to
// Jobs at a time. Only cancellation aborts the batch; per-file failures are
// reported in the result.
func CompileFiles(ctx context.Context, paths []string, opts BatchOptions) (*BatchResult, error) {
	if err := checkOutputCollisions(paths, opts); err != nil {
		return nil, err
	}
	res := &BatchResult{
		Files: make([]*Compilation, len(paths)),
		Errs:  make([]error, len(paths)),
	}
	if len(paths) == 0 {
		return res, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	base := opts.BaseDir
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	display := make([]string, len(paths))
	for i, path := range paths {
		display[i] = buildpipeline.DisplayPath(path, base)
	}
	buildpipeline.EmitQueued(opts.Progress, display)

	ctx, sp := trace.Start(ctx, trace.ScopeBuild, "build")
	defer sp.End(fmt.Sprintf("%d files", len(paths)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileOpts := opts.Options
			fileOpts.DisplayPath = display[i]
			if !opts.NoWrite {
				fileOpts.OutputPath = outputFor(path, opts)
			}
			c, err := CompileFile(gctx, path, fileOpts)
			res.Files[i] = c
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			res.Errs[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

func outputFor(path string, opts BatchOptions) string {
	if opts.Output != "" {
		return opts.Output
	}
	return OutputPath(path, opts.OutDir)
}

// checkOutputCollisions rejects two sources that would write the same module.
func checkOutputCollisions(paths []string, opts BatchOptions) error {
	if opts.NoWrite {
		return nil
	}
	if opts.Output != "" && len(paths) != 1 {
		return fmt.Errorf("an explicit output path needs exactly one source, got %d", len(paths))
	}
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		out := filepath.Clean(outputFor(path, opts))
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%s and %s both compile to %s", prev, path, out)
		}
		seen[out] = path
	}
	return nil
}

// ListSources is project.ListSources, re-exported for callers that only
// import the driver.
func ListSources(dir string) ([]string, error) {
	return project.ListSources(dir)
}
