// Package driver runs the compilation pipeline and owns the exit-code policy.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"c0c/internal/buildpipeline"
	"c0c/internal/diag"
	"c0c/internal/emit"
	"c0c/internal/lexer"
	"c0c/internal/observ"
	"c0c/internal/parser"
	"c0c/internal/program"
	"c0c/internal/project"
	"c0c/internal/source"
	"c0c/internal/token"
	"c0c/internal/trace"
)

// Exit codes of the c0c process.
const (
	ExitOK       = 0
	ExitUsage    = 1  // bad flags, unreadable input, unwritable output
	ExitCompile  = 65 // the source was rejected
	ExitInternal = 70 // a table or instruction-stream invariant broke
)

// Options configure one compilation.
type Options struct {
	MaxDiagnostics int
	// TraceFunctions opens a trace span per compiled function.
	TraceFunctions bool
	// Cache, when set, is consulted before and filled after a successful compile.
	Cache *DiskCache
	// Progress receives stage events; File in them is DisplayPath.
	Progress    buildpipeline.ProgressSink
	DisplayPath string
	// OutputPath, when set, receives the module after a successful compile.
	OutputPath string
}

// Compilation is the explicit state of one compile: nothing is shared
// between two Compilations, so any number may run concurrently.
type Compilation struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Tokens  []token.Token
	Program *program.Program
	Module  []byte

	Key     project.Digest
	Cached  bool
	Timer   *observ.Timer
	Timings buildpipeline.Timings

	opts Options
}

// NewCompilation prepares an empty compilation.
func NewCompilation(opts Options) *Compilation {
	return &Compilation{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
		opts:    opts,
	}
}

// CompileFile loads path and compiles it. The error is non-nil only for I/O
// failures and cancellation; compile errors live in the Bag.
func CompileFile(ctx context.Context, path string, opts Options) (*Compilation, error) {
	c := NewCompilation(opts)
	c.Path = path
	if c.opts.DisplayPath == "" {
		c.opts.DisplayPath = path
	}
	c.event(buildpipeline.StageLoad, buildpipeline.StatusWorking, nil, 0)
	end := c.Timer.Track("load")
	id, err := c.FileSet.Load(path)
	end("")
	if err != nil {
		err = fmt.Errorf("read %s: %w", path, err)
		c.event(buildpipeline.StageLoad, buildpipeline.StatusError, err, 0)
		return c, err
	}
	c.File = c.FileSet.Get(id)
	return c, c.Run(ctx)
}

// CompileSource compiles an in-memory file; tests and tools use it.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*Compilation, error) {
	c := NewCompilation(opts)
	c.Path = name
	if c.opts.DisplayPath == "" {
		c.opts.DisplayPath = name
	}
	c.File = c.FileSet.Get(c.FileSet.AddVirtual(name, src))
	return c, c.Run(ctx)
}

// Run executes lex, parse and emit over c.File, then writes the module when
// Options.OutputPath is set. Any compile error stops the pipeline and leaves
// Module nil.
func (c *Compilation) Run(ctx context.Context) error {
	if c.File == nil {
		return errors.New("driver: compilation has no file")
	}
	ctx, sp := trace.Start(ctx, trace.ScopeFile, "file:"+c.File.DisplayPath())
	defer func() { sp.End(c.outcome()) }()

	if err := c.build(ctx); err != nil {
		return err
	}
	if c.Failed() {
		return nil
	}
	if c.opts.OutputPath != "" {
		if err := c.phase(ctx, buildpipeline.StageWrite, c.write); err != nil {
			return err
		}
	}
	status := buildpipeline.StatusDone
	if c.Cached {
		status = buildpipeline.StatusCached
	}
	c.event(buildpipeline.StageWrite, status, nil, c.Timings.Sum())
	return nil
}

func (c *Compilation) build(ctx context.Context) error {
	if c.opts.Cache != nil {
		if hit, err := c.lookupCache(ctx); err != nil || hit {
			return err
		}
	}

	steps := []struct {
		stage buildpipeline.Stage
		run   func(context.Context) error
	}{
		{buildpipeline.StageLex, c.lex},
		{buildpipeline.StageParse, c.parse},
		{buildpipeline.StageEmit, c.emit},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.phase(ctx, step.stage, step.run); err != nil {
			return err
		}
		if c.Failed() {
			return nil
		}
	}

	if c.opts.Cache != nil {
		if err := c.opts.Cache.Put(c.Key, c.payload()); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache", "store failed: "+err.Error())
		}
	}
	return nil
}

// phase runs one stage under a trace span, the timer and progress events.
func (c *Compilation) phase(ctx context.Context, stage buildpipeline.Stage, run func(context.Context) error) error {
	c.event(stage, buildpipeline.StatusWorking, nil, 0)
	pctx, sp := trace.Start(ctx, trace.ScopePhase, string(stage))
	started := time.Now()
	end := c.Timer.Track(string(stage))

	err := run(pctx)

	elapsed := time.Since(started)
	c.Timings.Add(stage, elapsed)
	note := ""
	if c.Bag.HasErrors() {
		note = "failed"
	}
	end(note)
	sp.End(note)
	if err != nil {
		c.event(stage, buildpipeline.StatusError, err, elapsed)
		return err
	}
	if c.Bag.HasErrors() {
		c.event(stage, buildpipeline.StatusError, c.firstError(), elapsed)
		trace.Error(ctx, trace.ScopeFile, "compile", c.firstError())
	}
	return nil
}

func (c *Compilation) lex(context.Context) error {
	c.Tokens = lexer.Tokenize(c.File, lexer.Options{Reporter: diag.BagReporter{Bag: c.Bag}})
	return nil
}

func (c *Compilation) parse(ctx context.Context) error {
	prog := program.New()
	err := parser.Parse(ctx, c.Tokens, prog, parser.Options{Trace: c.opts.TraceFunctions})
	if err == nil {
		if verr := prog.Validate(); verr != nil {
			err = diag.Internalf("program validation: %v", verr)
		}
	}
	if err != nil {
		return c.record(err)
	}
	c.Program = prog
	return nil
}

func (c *Compilation) write(context.Context) error {
	if err := WriteModule(c.opts.OutputPath, c.Module); err != nil {
		return fmt.Errorf("write %s: %w", c.opts.OutputPath, err)
	}
	return nil
}

func (c *Compilation) emit(context.Context) error {
	data, err := emit.Bytes(c.Program)
	if err != nil {
		return c.record(err)
	}
	c.Module = data
	return nil
}

// record moves a fail-fast compile error into the bag. Other errors
// (cancellation) are returned unchanged.
func (c *Compilation) record(err error) error {
	if de, ok := diag.AsError(err); ok {
		if !c.Bag.Add(de.Diag) {
			overflow := diag.NewBag(c.Bag.Len() + 1)
			overflow.Add(de.Diag)
			c.Bag.Merge(overflow)
		}
		return nil
	}
	return err
}

// Failed reports whether any error diagnostic was produced.
func (c *Compilation) Failed() bool {
	return c.Bag.HasErrors()
}

// ExitCode maps the diagnostics to the process exit code.
func (c *Compilation) ExitCode() int {
	switch {
	case c.Bag.HasInternal():
		return ExitInternal
	case c.Bag.HasErrors():
		return ExitCompile
	default:
		return ExitOK
	}
}

func (c *Compilation) firstError() error {
	for _, d := range c.Bag.Items() {
		if d.Severity >= diag.SevError {
			return &diag.Error{Diag: d}
		}
	}
	return nil
}

func (c *Compilation) outcome() string {
	switch {
	case c.Cached:
		return "cached"
	case c.Failed():
		return "exit " + strconv.Itoa(c.ExitCode())
	default:
		return strconv.Itoa(len(c.Module)) + " bytes"
	}
}

func (c *Compilation) event(stage buildpipeline.Stage, status buildpipeline.Status, err error, elapsed time.Duration) {
	buildpipeline.Emit(c.opts.Progress, buildpipeline.Event{
		File:    c.opts.DisplayPath,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

// WriteModule writes data to path through a temporary file and rename, so
// a failed write never leaves a truncated module behind.
func WriteModule(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".c0c-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
