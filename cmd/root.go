// Package cmd implements the vinom-maze command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vinom-maze",
		Short: "Generate, solve and serve perfect mazes",
		Long: `vinom-maze carves perfect mazes with a randomized recursive backtracker.

Examples:
  vinom-maze gen 20 10 --seed 42
  vinom-maze gen 30 30 --csv maze.csv --format png --out maze.png --solution
  vinom-maze solve maze.csv
  vinom-maze serve`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newGenCmd(),
		newSolveCmd(),
		newServeCmd(),
		newTokenCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
