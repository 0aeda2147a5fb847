package main

import (
	"fmt"
	"io"
	"time"

	"c0c/internal/buildpipeline"
	"c0c/internal/diag"
	"c0c/internal/diagfmt"
	"c0c/internal/driver"
)

// reporter prints the outcome of a batch in input order.
type reporter struct {
	stdout   io.Writer
	stderr   io.Writer
	format   string
	color    bool
	pathMode diagfmt.PathMode
	baseDir  string
	quiet    bool
	emitIR   bool
	timings  bool
}

func (r *reporter) report(res *driver.BatchResult) error {
	var merged diagfmt.DiagnosticsOutput
	var total buildpipeline.Timings

	for i, c := range res.Files {
		if err := res.Errs[i]; err != nil {
			fmt.Fprintf(r.stderr, "c0c: %v\n", err)
			continue
		}
		if c == nil {
			continue
		}
		if c.Bag.Len() > 0 {
			c.Bag.Sort()
			switch r.format {
			case "json":
				out := diagfmt.BuildDiagnosticsOutput(c.Bag, c.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         r.pathMode,
					BaseDir:          r.baseDir,
					IncludeNotes:     true,
				})
				merged.Diagnostics = append(merged.Diagnostics, out.Diagnostics...)
			case "short":
				fmt.Fprintln(r.stderr, diag.FormatShort(c.Bag.Items(), c.FileSet, true))
			default:
				diagfmt.Pretty(r.stderr, c.Bag, c.FileSet, diagfmt.PrettyOpts{
					Color:     r.color,
					Context:   1,
					PathMode:  r.pathMode,
					BaseDir:   r.baseDir,
					ShowNotes: true,
				})
			}
		}
		if c.Failed() {
			continue
		}

		if r.emitIR {
			if err := c.Listing(r.stdout); err != nil {
				return err
			}
		}
		if !r.quiet {
			r.printCompiled(c)
		}
		if r.timings {
			fmt.Fprint(r.stderr, c.Timer.Summary(buildpipeline.DisplayPath(c.Path, r.baseDir)))
		}
		total.Merge(c.Timings)
	}

	if r.format == "json" {
		merged.Count = len(merged.Diagnostics)
		merged.ExitCode = res.ExitCode()
		if err := diagfmt.WriteJSON(r.stdout, merged); err != nil {
			return err
		}
	}
	if r.timings && len(res.Files) > 1 {
		printStageTimings(r.stderr, total)
	}
	return nil
}

func (r *reporter) printCompiled(c *driver.Compilation) {
	name := buildpipeline.DisplayPath(c.Path, r.baseDir)
	note := fmt.Sprintf("%d bytes", len(c.Module))
	if c.Cached {
		note += ", cached"
	}
	fmt.Fprintf(r.stdout, "compiled %s (%s)\n", name, note)
}

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	fmt.Fprintln(out, "total:")
	for _, stage := range buildpipeline.Stages {
		if timings.Has(stage) {
			fmt.Fprintf(out, "  %-6s %8.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	fmt.Fprintf(out, "  %-6s %8.1f ms\n", "all", toMillis(timings.Sum()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
