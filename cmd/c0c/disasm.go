package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"c0c/internal/emit"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm file.o0",
	Short: "Print the globals and instructions of a compiled module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		m, err := emit.Read(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return emit.Dump(cmd.OutOrStdout(), m)
	},
}
