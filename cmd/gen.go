package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/generator"
	"github.com/beka-birhanu/vinom-maze/infrastruture/csvstore"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/spf13/cobra"
)

const (
	defaultWidth  = 10
	defaultHeight = 10
)

type genOptions struct {
	seed     int64
	csvFile  string
	format   string
	output   string
	scale    int
	solution bool
	quiet    bool
}

func newGenCmd() *cobra.Command {
	opts := &genOptions{}
	genCmd := &cobra.Command{
		Use:   "gen [width] [height]",
		Short: "Generate a perfect maze",
		Long: `Generate a perfect maze and draw it, optionally saving the cell table as CSV.

The entrance is the bottom-left cell, the exit the top-right cell.

Examples:
  vinom-maze gen
  vinom-maze gen 25 15 --seed 7
  vinom-maze gen 40 40 --csv maze.csv --quiet
  vinom-maze gen 16 9 --format svg --out maze.svg --solution`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args, opts)
		},
	}

	genCmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "Random seed (0 picks one from the clock)")
	genCmd.Flags().StringVar(&opts.csvFile, "csv", "", "Write the cell table to this CSV file")
	genCmd.Flags().StringVarP(&opts.format, "format", "f", "ascii", "Drawing format: ascii, svg or png")
	genCmd.Flags().StringVarP(&opts.output, "out", "o", "", "Write the drawing to this file instead of stdout")
	genCmd.Flags().IntVar(&opts.scale, "scale", render.DefaultScale, "Pixels per cell for svg and png")
	genCmd.Flags().BoolVar(&opts.solution, "solution", false, "Draw the path from the entrance to the exit")
	genCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not draw the maze")
	return genCmd
}

func runGen(cmd *cobra.Command, args []string, opts *genOptions) error {
	width, height, err := parseSize(args)
	if err != nil {
		return err
	}

	grid, stats, err := generator.Generate(width, height, &generator.Options{Seed: opts.seed})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Generated %dx%d maze (seed %d, %d walls removed, max depth %d) in %s\n",
		width, height, stats.Seed, stats.Removals, stats.MaxStackDepth, stats.Duration)

	if opts.csvFile != "" {
		if err := csvstore.Save(opts.csvFile, grid); err != nil {
			return fmt.Errorf("failed to write CSV file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved cell table to %s\n", opts.csvFile)
	}

	if opts.quiet {
		return nil
	}
	return draw(cmd.OutOrStdout(), grid, opts.format, opts.output, opts.scale, opts.solution)
}

// draw renders g to path, or to stdout when path is empty.
func draw(stdout io.Writer, g *maze.Grid, format, path string, scale int, withSolution bool) error {
	renderer, err := render.ByName(format)
	if err != nil {
		return err
	}
	if scale <= 0 || scale > render.MaxScale {
		return fmt.Errorf("scale must be between 1 and %d", render.MaxScale)
	}

	ro := render.Options{Scale: scale}
	if withSolution {
		ro.Solution, err = solver.Solve(g)
		if err != nil {
			return err
		}
	}

	if path == "" {
		return renderer.Render(stdout, g, ro)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := renderer.Render(file, g, ro); err != nil {
		return err
	}
	return file.Close()
}

// parseSize reads the optional width and height arguments.
func parseSize(args []string) (width, height int, err error) {
	width, height = defaultWidth, defaultHeight
	if len(args) > 0 {
		if width, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, fmt.Errorf("invalid width: %w", err)
		}
		height = width
	}
	if len(args) > 1 {
		if height, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid height: %w", err)
		}
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, width, height)
	}
	return width, height, nil
}
