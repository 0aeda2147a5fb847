package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"c0c/internal/buildpipeline"
	"c0c/internal/diagfmt"
	"c0c/internal/driver"
	"c0c/internal/project"
	"c0c/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.c0|dir]...",
	Short: "Compile c0 sources into bytecode modules",
	Long: `Build compiles every given file (directories are searched for *.c0) into
a module next to it, or into --out-dir. Without arguments the sources listed
in the nearest c0.toml are built.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "module path (single source only)")
	buildCmd.Flags().String("out-dir", "", "directory for compiled modules")
	buildCmd.Flags().Bool("emit-ir", false, "print the instruction listing of each compiled file")
	buildCmd.Flags().Bool("no-write", false, "compile without writing modules")
	buildCmd.Flags().Int("jobs", 0, "max parallel compilations (0=auto)")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|short)")
	buildCmd.Flags().String("path-mode", "auto", "diagnostic paths (auto|absolute|relative|basename)")
	buildCmd.Flags().Bool("cache", false, "reuse modules of unchanged sources from the user cache")
}

// buildPlan is what to compile after merging flags with c0.toml.
type buildPlan struct {
	paths   []string
	baseDir string
	outDir  string
	jobs    int
	cache   bool
	title   string
}

func runBuild(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	noWrite, _ := flags.GetBool("no-write")
	emitIR, _ := flags.GetBool("emit-ir")
	uiValue, _ := flags.GetString("ui")
	diagFormat, _ := flags.GetString("diag-format")
	pathModeValue, _ := flags.GetString("path-mode")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	colorMode, _ := cmd.Root().PersistentFlags().GetString("color")

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeValue)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeValue)
	}
	switch diagFormat {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("invalid --diag-format value %q (expected pretty|json|short)", diagFormat)
	}

	plan, err := planBuild(cmd, args)
	if err != nil {
		return err
	}
	if len(plan.paths) == 0 {
		return errors.New("no c0 sources to build")
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()

	var cache *driver.DiskCache
	if plan.cache {
		if cache, err = driver.OpenDiskCache("c0c"); err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	opts := driver.BatchOptions{
		Options: driver.Options{
			MaxDiagnostics: maxDiagnostics,
			TraceFunctions: trace.FromContext(ctx).Level() >= trace.LevelDetail,
			Cache:          cache,
		},
		Jobs:    plan.jobs,
		OutDir:  plan.outDir,
		Output:  out,
		NoWrite: noWrite,
		BaseDir: plan.baseDir,
	}
	if plan.outDir != "" && !noWrite {
		if err := os.MkdirAll(plan.outDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}

	var res *driver.BatchResult
	if !quiet && shouldUseTUI(uiModeValue, len(plan.paths)) {
		display := make([]string, len(plan.paths))
		for i, path := range plan.paths {
			display[i] = buildpipeline.DisplayPath(path, plan.baseDir)
		}
		res, err = runBuildWithUI(ctx, plan.title, display, plan.paths, opts)
	} else {
		res, err = driver.CompileFiles(ctx, plan.paths, opts)
	}
	if err != nil {
		return err
	}

	rep := reporter{
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
		format:   diagFormat,
		color:    useColor(colorMode, os.Stderr),
		pathMode: pathMode,
		baseDir:  plan.baseDir,
		quiet:    quiet,
		emitIR:   emitIR,
		timings:  timings,
	}
	if err := rep.report(res); err != nil {
		return err
	}
	return exitWith(res.ExitCode())
}

// planBuild resolves sources: explicit arguments win, otherwise c0.toml.
func planBuild(cmd *cobra.Command, args []string) (*buildPlan, error) {
	flags := cmd.Flags()
	plan := &buildPlan{title: "c0c build"}

	manifest, found, err := project.Discover(".")
	if err != nil {
		return nil, err
	}

	switch {
	case len(args) > 0:
		for _, arg := range args {
			paths, err := expandArg(arg)
			if err != nil {
				return nil, err
			}
			plan.paths = append(plan.paths, paths...)
		}
		if wd, err := os.Getwd(); err == nil {
			plan.baseDir = wd
		}
	case found:
		if plan.paths, err = manifest.Sources(); err != nil {
			return nil, err
		}
		plan.baseDir = manifest.Root
		plan.outDir = manifest.OutDir()
		plan.title = "c0c build " + manifest.Config.Package.Name
	default:
		return nil, fmt.Errorf("no input files and no %s found", project.ManifestName)
	}

	if found {
		plan.jobs = manifest.Config.Build.Jobs
		plan.cache = manifest.Config.Build.Cache
	}
	if flags.Changed("out-dir") {
		plan.outDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("jobs") {
		plan.jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("cache") {
		plan.cache, _ = flags.GetBool("cache")
	}
	if plan.baseDir != "" {
		if abs, err := filepath.Abs(plan.baseDir); err == nil {
			plan.baseDir = abs
		}
	}
	return plan, nil
}

func expandArg(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	paths, err := project.ListSources(arg)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no %s files", arg, project.SourceExt)
	}
	return paths, nil
}
