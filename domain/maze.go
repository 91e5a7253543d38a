package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var ErrMazeNotFound = errors.New("maze not found")

// Maze is a generated maze together with the parameters that reproduce it.
type Maze struct {
	ID        uuid.UUID
	Seed      int64
	Grid      *maze.Grid
	CreatedAt time.Time
}

// MazeMeta is a lightweight listing entry.
type MazeMeta struct {
	ID        uuid.UUID `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMaze wraps a carved grid under a fresh identifier.
func NewMaze(seed int64, grid *maze.Grid) *Maze {
	return &Maze{
		ID:        uuid.New(),
		Seed:      seed,
		Grid:      grid,
		CreatedAt: time.Now().UTC(),
	}
}

// Width returns the number of columns of the maze.
func (m *Maze) Width() int {
	return m.Grid.Width()
}

// Height returns the number of rows of the maze.
func (m *Maze) Height() int {
	return m.Grid.Height()
}

// Meta returns the listing entry of the maze.
func (m *Maze) Meta() MazeMeta {
	return MazeMeta{
		ID:        m.ID,
		Width:     m.Width(),
		Height:    m.Height(),
		Seed:      m.Seed,
		CreatedAt: m.CreatedAt,
	}
}
