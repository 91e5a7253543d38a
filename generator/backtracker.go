// Package generator carves perfect mazes with the recursive backtracker.
//
// The traversal is iterative: a slice of positions stands in for the call stack, so grids of any
// size are carved without growing the goroutine stack.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrDegenerateGrid = errors.New("grid has no cells")
	ErrGridVisited    = errors.New("grid already has visited cells")
	ErrIncomplete     = errors.New("traversal ended with unvisited cells")
)

// Stats summarizes a generation run.
type Stats struct {
	Seed          int64
	Visits        int
	Removals      int
	MaxStackDepth int
	Duration      time.Duration
}

// Backtracker generates mazes with a depth-first search that backtracks through an explicit stack.
type Backtracker struct {
	seed int64
	rng  Source
}

// New creates a Backtracker. A nil opts behaves like DefaultOptions.
func New(opts *Options) *Backtracker {
	if opts == nil {
		opts = DefaultOptions()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = clockSeed()
	}

	rng := opts.Source
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	return &Backtracker{
		seed: seed,
		rng:  rng,
	}
}

// Seed returns the seed of the default source. It is meaningless when a custom Source was given.
func (b *Backtracker) Seed() int64 {
	return b.seed
}

// Run carves g into a perfect maze, visiting every cell exactly once.
// g must be freshly constructed: no cell may be visited yet.
func (b *Backtracker) Run(g *maze.Grid) (Stats, error) {
	start := time.Now()
	if g == nil || g.Size() == 0 {
		return Stats{}, ErrDegenerateGrid
	}
	if g.VisitedCount() != 0 {
		return Stats{}, ErrGridVisited
	}

	total := g.Size()
	current := g.EntrancePosition()
	if err := b.visit(g, current); err != nil {
		return Stats{}, err
	}
	stats := Stats{Seed: b.seed, Visits: 1}

	var stack []maze.Position
	for stats.Visits < total {
		candidates := g.UnvisitedNeighbors(current.X, current.Y)
		if len(candidates) > 0 {
			next := candidates[b.rng.Intn(len(candidates))]
			stack = append(stack, current)
			stats.MaxStackDepth = max(stats.MaxStackDepth, len(stack))

			if err := g.RemoveWallBetween(current, next); err != nil {
				return stats, err
			}
			stats.Removals++

			if err := b.visit(g, next); err != nil {
				return stats, err
			}
			stats.Visits++
			current = next
			continue
		}

		if len(stack) == 0 {
			return stats, fmt.Errorf("%w: %d of %d visited", ErrIncomplete, stats.Visits, total)
		}
		current = pop(&stack)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

func (b *Backtracker) visit(g *maze.Grid, p maze.Position) error {
	cell, err := g.At(p.X, p.Y)
	if err != nil {
		return err
	}
	cell.Visited = true
	return nil
}

// pop removes and returns the last element of a stack of positions.
func pop(s *[]maze.Position) maze.Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// Generate builds a width x height grid and carves it with a Backtracker configured by opts.
func Generate(width, height int, opts *Options) (*maze.Grid, Stats, error) {
	g, err := maze.New(width, height)
	if err != nil {
		return nil, Stats{}, err
	}

	stats, err := New(opts).Run(g)
	if err != nil {
		return nil, stats, err
	}
	return g, stats, nil
}
