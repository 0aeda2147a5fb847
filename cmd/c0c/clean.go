package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"c0c/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("c0c")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %s: %w", cache.Dir(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cache.Dir())
		return nil
	},
}
