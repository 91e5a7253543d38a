package cmd

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/infrastruture/csvstore"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	var (
		format string
		output string
		scale  int
		show   bool
	)

	solveCmd := &cobra.Command{
		Use:   "solve <maze.csv>",
		Short: "Print the path from the entrance to the exit of a saved maze",
		Long: `Load a maze cell table written by "gen --csv" and print its solution.

Examples:
  vinom-maze solve maze.csv
  vinom-maze solve maze.csv --show
  vinom-maze solve maze.csv --show --format png --out solved.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := csvstore.Load(args[0])
			if err != nil {
				return err
			}
			if err := solver.Verify(g); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", err)
			}

			path, err := solver.Solve(g)
			if err != nil {
				return err
			}

			steps := make([]string, len(path))
			for i, p := range path {
				steps[i] = p.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Path length: %d\n%s\n", len(path), strings.Join(steps, " -> "))

			if !show {
				return nil
			}
			return draw(cmd.OutOrStdout(), g, format, output, scale, true)
		},
	}

	solveCmd.Flags().BoolVar(&show, "show", false, "Draw the maze with the path")
	solveCmd.Flags().StringVarP(&format, "format", "f", "ascii", "Drawing format: ascii, svg or png")
	solveCmd.Flags().StringVarP(&output, "out", "o", "", "Write the drawing to this file instead of stdout")
	solveCmd.Flags().IntVar(&scale, "scale", render.DefaultScale, "Pixels per cell for svg and png")
	return solveCmd
}
