package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// MazeCache stores carved grids under a key derived from their generation parameters.
type MazeCache interface {
	// Get returns the cached grid for key. found is false on a miss.
	Get(ctx context.Context, key string) (g *maze.Grid, found bool, err error)

	// Set stores g under key.
	Set(ctx context.Context, key string, g *maze.Grid) error

	// Lock acquires an exclusive lock on key and returns the function that releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
