package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeService generates, stores and solves mazes.
type MazeService interface {
	// Generate carves a width x height maze. A zero seed picks one from the clock.
	Generate(ctx context.Context, width, height int, seed int64) (*dmn.Maze, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	List(ctx context.Context, limit int) ([]dmn.MazeMeta, error)
	// Solve returns the path from the entrance to the exit of the stored maze.
	Solve(ctx context.Context, id uuid.UUID) ([]maze.Position, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
