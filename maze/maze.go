/*
Package maze provides the rectangular grid a maze is carved into.

A Grid owns width*height cells addressed by (x, y), each carrying four wall flags and a visited
flag. Walls are only ever removed in mirrored pairs, so the wall on one side of a cell is open
exactly when the matching wall of the neighbor across that side is open.

The cell at (0,0) has its lower wall open as the entrance and the cell at (width-1, height-1) has
its right wall open as the exit.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrNotAdjacent       = errors.New("cells are not adjacent")
	ErrWallMismatch      = errors.New("wall pair mismatch")
	ErrClosedBoundary    = errors.New("entrance or exit is walled")
	ErrUnvisited         = errors.New("grid has unvisited cells")
)

// Grid is a rectangular collection of cells stored in x-major order.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New allocates a grid of the given dimensions with every wall present and no cell visited,
// then opens the entrance and exit walls.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = closedCell()
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
	g.Entrance().DownWall = false
	g.Exit().RightWall = false
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). The returned pointer aliases grid storage.
func (g *Grid) At(x, y int) (*Cell, error) {
	if !g.Contains(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return &g.cells[g.index(x, y)], nil
}

// Entrance returns the cell at (0,0).
func (g *Grid) Entrance() *Cell {
	return &g.cells[0]
}

// Exit returns the cell at (width-1, height-1).
func (g *Grid) Exit() *Cell {
	return &g.cells[g.index(g.width-1, g.height-1)]
}

// EntrancePosition returns the coordinates of the entrance cell.
func (g *Grid) EntrancePosition() Position {
	return Position{X: 0, Y: 0}
}

// ExitPosition returns the coordinates of the exit cell.
func (g *Grid) ExitPosition() Position {
	return Position{X: g.width - 1, Y: g.height - 1}
}

// Neighbors4 returns the in-bounds orthogonal neighbors of (x, y) in left, up, right, down order.
func (g *Grid) Neighbors4(x, y int) []Position {
	from := Position{X: x, Y: y}
	result := make([]Position, 0, len(Directions))
	for _, d := range Directions {
		n := from.Step(d)
		if g.Contains(n.X, n.Y) {
			result = append(result, n)
		}
	}
	return result
}

// UnvisitedNeighbors returns the subset of Neighbors4 that has not been visited yet.
func (g *Grid) UnvisitedNeighbors(x, y int) []Position {
	var result []Position
	for _, n := range g.Neighbors4(x, y) {
		if !g.cells[g.index(n.X, n.Y)].Visited {
			result = append(result, n)
		}
	}
	return result
}

// Passages returns the neighbors of (x, y) reachable through an open wall.
func (g *Grid) Passages(x, y int) []Position {
	if !g.Contains(x, y) {
		return nil
	}
	from := Position{X: x, Y: y}
	cell := &g.cells[g.index(x, y)]

	var result []Position
	for _, d := range Directions {
		n := from.Step(d)
		if g.Contains(n.X, n.Y) && !cell.HasWall(d) {
			result = append(result, n)
		}
	}
	return result
}

// AllVisited reports whether every cell has been visited.
func (g *Grid) AllVisited() bool {
	for i := range g.cells {
		if !g.cells[i].Visited {
			return false
		}
	}
	return true
}

// VisitedCount returns the number of visited cells.
func (g *Grid) VisitedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Visited {
			n++
		}
	}
	return n
}

// RemoveWallBetween opens the wall of a facing b together with the mirrored wall of b facing a.
func (g *Grid) RemoveWallBetween(a, b Position) error {
	if !g.Contains(a.X, a.Y) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, a)
	}
	if !g.Contains(b.X, b.Y) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, b)
	}

	d, ok := DirectionBetween(a, b)
	if !ok {
		return fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}

	g.cells[g.index(a.X, a.Y)].SetWall(d, false)
	g.cells[g.index(b.X, b.Y)].SetWall(d.Opposite(), false)
	return nil
}

// OpenWallCount returns the number of open wall pairs between cells of the grid.
// Entrance and exit openings face the outside and are not counted.
func (g *Grid) OpenWallCount() int {
	n := 0
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			cell := &g.cells[g.index(x, y)]
			if x+1 < g.width && !cell.RightWall {
				n++
			}
			if y+1 < g.height && !cell.UpWall {
				n++
			}
		}
	}
	return n
}

// CheckWalls verifies that every interior wall is open on both sides or on neither.
func (g *Grid) CheckWalls() error {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			cell := &g.cells[g.index(x, y)]
			if x+1 < g.width {
				right := &g.cells[g.index(x+1, y)]
				if cell.RightWall != right.LeftWall {
					return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrWallMismatch, x, y, x+1, y)
				}
			}
			if y+1 < g.height {
				above := &g.cells[g.index(x, y+1)]
				if cell.UpWall != above.DownWall {
					return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrWallMismatch, x, y, x, y+1)
				}
			}
		}
	}
	return nil
}

// Validate checks a fully carved grid: mirrored walls, an open entrance and exit, and every
// cell visited.
func (g *Grid) Validate() error {
	if err := g.CheckWalls(); err != nil {
		return err
	}
	if g.Entrance().DownWall {
		return fmt.Errorf("%w: entrance %s", ErrClosedBoundary, g.EntrancePosition())
	}
	if g.Exit().RightWall {
		return fmt.Errorf("%w: exit %s", ErrClosedBoundary, g.ExitPosition())
	}
	if n := g.VisitedCount(); n != g.Size() {
		return fmt.Errorf("%w: %d of %d visited", ErrUnvisited, n, g.Size())
	}
	return nil
}

// Walk calls fn for every cell in x-major order: (0,0), (0,1), ... (width-1, height-1).
// fn receives a copy of the cell.
func (g *Grid) Walk(fn func(p Position, c Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			fn(Position{X: x, Y: y}, g.cells[g.index(x, y)])
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether both grids have the same dimensions and cell state.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String provides a textual representation of the maze with the top row printed first.
func (g *Grid) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for x := 0; x < g.width; x++ {
		if g.cells[g.index(x, g.height-1)].UpWall {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for y := g.height - 1; y >= 0; y-- {
		// Cell row
		if g.cells[g.index(0, y)].LeftWall {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for x := 0; x < g.width; x++ {
			if g.cells[g.index(x, y)].RightWall {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")

		// Wall row
		sb.WriteString("+")
		for x := 0; x < g.width; x++ {
			if g.cells[g.index(x, y)].DownWall {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (g *Grid) index(x, y int) int {
	return x*g.height + y
}
