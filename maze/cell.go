package maze

import "fmt"

// Direction names one of the four sides of a cell.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every side in the fixed order used for neighbor lookup.
var Directions = [4]Direction{Left, Up, Right, Down}

var deltas = [4]Position{
	Left:  {X: -1, Y: 0},
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
}

// Opposite returns the side facing d from the neighboring cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate offset of the neighbor across d.
func (d Direction) Delta() Position {
	return deltas[d]
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Position identifies a cell by its column (X) and row (Y). Row 0 is the bottom row.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// DirectionBetween reports the side of a that faces b.
// ok is false when a and b are not orthogonally adjacent.
func DirectionBetween(a, b Position) (d Direction, ok bool) {
	for _, dir := range Directions {
		if a.Step(dir) == b {
			return dir, true
		}
	}
	return 0, false
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	LeftWall  bool // LeftWall indicates whether there is a wall on the left side of the cell.
	UpWall    bool // UpWall indicates whether there is a wall on the upper side of the cell.
	RightWall bool // RightWall indicates whether there is a wall on the right side of the cell.
	DownWall  bool // DownWall indicates whether there is a wall on the lower side of the cell.
	Visited   bool // Visited marks the cell as part of the carved spanning tree.
}

// HasWall returns true if there is a wall on side d of the cell.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Left:
		return c.LeftWall
	case Up:
		return c.UpWall
	case Right:
		return c.RightWall
	case Down:
		return c.DownWall
	}
	return true
}

// SetWall sets the presence of a wall on side d of the cell.
func (c *Cell) SetWall(d Direction, hasWall bool) {
	switch d {
	case Left:
		c.LeftWall = hasWall
	case Up:
		c.UpWall = hasWall
	case Right:
		c.RightWall = hasWall
	case Down:
		c.DownWall = hasWall
	}
}

// Walls returns the wall flags in left, up, right, down order.
func (c *Cell) Walls() [4]bool {
	return [4]bool{c.LeftWall, c.UpWall, c.RightWall, c.DownWall}
}

func closedCell() Cell {
	return Cell{
		LeftWall:  true,
		UpWall:    true,
		RightWall: true,
		DownWall:  true,
	}
}
