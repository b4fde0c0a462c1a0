package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pystrfmt/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the pystrfmt result cache",
	Long:  "Remove cached formatting results so every file is reformatted from scratch on the next run.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("pystrfmt")
	if err != nil {
		return fmt.Errorf("failed to locate cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	return nil
}
