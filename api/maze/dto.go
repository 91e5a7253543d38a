// Package mazeapi exposes maze generation, rendering and solving over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest represents a request to carve a new maze.
type GenerateRequest struct {
	Width  int   `json:"width" binding:"required,min=1"`
	Height int   `json:"height" binding:"required,min=1"`
	Seed   int64 `json:"seed"`
}

// CellResponse is one cell of a maze, walls ordered left, up, right, down.
type CellResponse struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Walls [4]bool `json:"walls"`
}

// MazeResponse represents a stored maze with its cells.
type MazeResponse struct {
	ID        uuid.UUID      `json:"id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Seed      int64          `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	Cells     []CellResponse `json:"cells"`
}

// SolutionResponse is the path from the entrance to the exit.
type SolutionResponse struct {
	ID     uuid.UUID       `json:"id"`
	Length int             `json:"length"`
	Path   []maze.Position `json:"path"`
}

func newMazeResponse(m *dmn.Maze) *MazeResponse {
	cells := make([]CellResponse, 0, m.Grid.Size())
	m.Grid.Walk(func(p maze.Position, c maze.Cell) {
		cells = append(cells, CellResponse{X: p.X, Y: p.Y, Walls: c.Walls()})
	})

	return &MazeResponse{
		ID:        m.ID,
		Width:     m.Width(),
		Height:    m.Height(),
		Seed:      m.Seed,
		CreatedAt: m.CreatedAt,
		Cells:     cells,
	}
}
