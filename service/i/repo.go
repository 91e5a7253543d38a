package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	Save(ctx context.Context, m *dmn.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns dmn.ErrMazeNotFound (wrapped) when no maze has the ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)

	// List returns up to limit mazes, newest first.
	List(ctx context.Context, limit int) ([]dmn.MazeMeta, error)

	// Delete removes the maze with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
