package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"c0c/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new c0 project",
	Long: `Initialize a new c0 project by creating a manifest (c0.toml) and a
hello-world entry point (main.c0). If [path] does not exist it is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const helloMain = `fn main() -> void {
    putstr("hello, world");
    putln();
}
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath, err := project.Init(target, "")
	if err != nil {
		return err
	}
	created := []string{manifestPath}

	mainPath := filepath.Join(target, "main"+project.SourceExt)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(helloMain), 0o644); err != nil {
			return err
		}
		created = append(created, mainPath)
	}

	for _, path := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
