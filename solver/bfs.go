// Package solver walks carved mazes through their open walls.
package solver

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrNoPath     = errors.New("no path between cells")
	ErrNotPerfect = errors.New("maze is not perfect")
)

// ShortestPath returns the cells on the shortest route from one cell to another, both ends
// included. In a perfect maze this is the only simple route.
func ShortestPath(g *maze.Grid, from, to maze.Position) ([]maze.Position, error) {
	if !g.Contains(from.X, from.Y) {
		return nil, fmt.Errorf("%w: %s", maze.ErrOutOfBounds, from)
	}
	if !g.Contains(to.X, to.Y) {
		return nil, fmt.Errorf("%w: %s", maze.ErrOutOfBounds, to)
	}

	cameFrom := map[maze.Position]maze.Position{from: from}
	queue := []maze.Position{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return buildPath(cameFrom, from, to), nil
		}

		for _, next := range g.Passages(current.X, current.Y) {
			if _, known := cameFrom[next]; known {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}

	return nil, fmt.Errorf("%w: %s to %s", ErrNoPath, from, to)
}

// Solve returns the route from the entrance to the exit.
func Solve(g *maze.Grid) ([]maze.Position, error) {
	return ShortestPath(g, g.EntrancePosition(), g.ExitPosition())
}

// Reachable counts the cells reachable from start through open walls, start included.
func Reachable(g *maze.Grid, start maze.Position) int {
	if !g.Contains(start.X, start.Y) {
		return 0
	}

	seen := map[maze.Position]struct{}{start: {}}
	queue := []maze.Position{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Passages(current.X, current.Y) {
			if _, ok := seen[next]; !ok {
				seen[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

// Verify checks that g is a perfect maze: walls are mirrored, every cell is reachable from the
// entrance and the open walls form a tree (exactly one fewer than the number of cells).
func Verify(g *maze.Grid) error {
	if err := g.CheckWalls(); err != nil {
		return err
	}

	if n := Reachable(g, g.EntrancePosition()); n != g.Size() {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, n, g.Size())
	}

	if open := g.OpenWallCount(); open != g.Size()-1 {
		return fmt.Errorf("%w: %d open walls for %d cells", ErrNotPerfect, open, g.Size())
	}
	return nil
}

func buildPath(cameFrom map[maze.Position]maze.Position, from, to maze.Position) []maze.Position {
	path := []maze.Position{to}
	for current := to; current != from; {
		current = cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
