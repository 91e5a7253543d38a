package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}, {0, 0}} {
			g, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, g)
		}
	})

	t.Run("All walls present except entrance and exit", func(t *testing.T) {
		g, err := New(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 12, g.Size())

		g.Walk(func(p Position, c Cell) {
			assert.False(t, c.Visited, "cell %s visited", p)
			for _, d := range Directions {
				open := (p == Position{0, 0} && d == Down) || (p == Position{3, 2} && d == Right)
				assert.Equal(t, !open, c.HasWall(d), "cell %s side %s", p, d)
			}
		})
	})

	t.Run("Single cell carries both openings", func(t *testing.T) {
		g, err := New(1, 1)
		require.NoError(t, err)
		c, err := g.At(0, 0)
		require.NoError(t, err)
		assert.False(t, c.DownWall)
		assert.False(t, c.RightWall)
		assert.True(t, c.LeftWall)
		assert.True(t, c.UpWall)
	})
}

func TestAt(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	t.Run("Returns mutable reference", func(t *testing.T) {
		c, err := g.At(2, 1)
		require.NoError(t, err)
		c.Visited = true

		again, err := g.At(2, 1)
		require.NoError(t, err)
		assert.True(t, again.Visited)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		for _, p := range []Position{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
			_, err := g.At(p.X, p.Y)
			assert.ErrorIs(t, err, ErrOutOfBounds, "position %s", p)
		}
	})
}

func TestNeighbors4(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)

	assert.Equal(t, []Position{{0, 1}, {1, 0}}, g.Neighbors4(0, 0))
	assert.Equal(t, []Position{{0, 1}, {1, 2}, {2, 1}, {1, 0}}, g.Neighbors4(1, 1))
	assert.Equal(t, []Position{{1, 2}, {2, 1}}, g.Neighbors4(2, 2))
}

func TestUnvisitedNeighbors(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)

	c, _ := g.At(0, 1)
	c.Visited = true
	c, _ = g.At(1, 0)
	c.Visited = true

	assert.Equal(t, []Position{{1, 2}, {2, 1}}, g.UnvisitedNeighbors(1, 1))
	assert.Empty(t, g.UnvisitedNeighbors(0, 0))
}

func TestAllVisited(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	assert.False(t, g.AllVisited())

	for _, p := range []Position{{0, 0}, {0, 1}, {1, 0}} {
		c, _ := g.At(p.X, p.Y)
		c.Visited = true
	}
	assert.False(t, g.AllVisited())
	assert.Equal(t, 3, g.VisitedCount())

	c, _ := g.At(1, 1)
	c.Visited = true
	assert.True(t, g.AllVisited())
}

func TestRemoveWallBetween(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		aSide    Direction
		bSide    Direction
		expected error
	}{
		{name: "right neighbor", a: Position{0, 0}, b: Position{1, 0}, aSide: Right, bSide: Left},
		{name: "left neighbor", a: Position{1, 1}, b: Position{0, 1}, aSide: Left, bSide: Right},
		{name: "upper neighbor", a: Position{1, 0}, b: Position{1, 1}, aSide: Up, bSide: Down},
		{name: "lower neighbor", a: Position{2, 2}, b: Position{2, 1}, aSide: Down, bSide: Up},
		{name: "diagonal", a: Position{0, 0}, b: Position{1, 1}, expected: ErrNotAdjacent},
		{name: "same cell", a: Position{1, 1}, b: Position{1, 1}, expected: ErrNotAdjacent},
		{name: "two apart", a: Position{0, 0}, b: Position{2, 0}, expected: ErrNotAdjacent},
		{name: "outside", a: Position{2, 2}, b: Position{3, 2}, expected: ErrOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(3, 3)
			require.NoError(t, err)

			err = g.RemoveWallBetween(tc.a, tc.b)
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
				assert.Zero(t, g.OpenWallCount())
				return
			}
			require.NoError(t, err)

			a, _ := g.At(tc.a.X, tc.a.Y)
			b, _ := g.At(tc.b.X, tc.b.Y)
			assert.False(t, a.HasWall(tc.aSide))
			assert.False(t, b.HasWall(tc.bSide))
			assert.Equal(t, 1, g.OpenWallCount())
			assert.NoError(t, g.CheckWalls())
		})
	}
}

func TestCheckWalls(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	assert.NoError(t, g.CheckWalls())

	c, _ := g.At(0, 1)
	c.RightWall = false
	assert.ErrorIs(t, g.CheckWalls(), ErrWallMismatch)
}

func TestValidate(t *testing.T) {
	carved := func(t *testing.T) *Grid {
		t.Helper()
		g, err := New(2, 1)
		require.NoError(t, err)
		require.NoError(t, g.RemoveWallBetween(Position{0, 0}, Position{1, 0}))
		g.Walk(func(p Position, _ Cell) {
			c, _ := g.At(p.X, p.Y)
			c.Visited = true
		})
		return g
	}

	t.Run("Carved grid", func(t *testing.T) {
		assert.NoError(t, carved(t).Validate())
	})

	tests := []struct {
		name     string
		mutate   func(g *Grid)
		expected error
	}{
		{
			name:     "Walled entrance",
			mutate:   func(g *Grid) { g.Entrance().DownWall = true },
			expected: ErrClosedBoundary,
		},
		{
			name:     "Walled exit",
			mutate:   func(g *Grid) { g.Exit().RightWall = true },
			expected: ErrClosedBoundary,
		},
		{
			name: "Unvisited cell",
			mutate: func(g *Grid) {
				c, _ := g.At(1, 0)
				c.Visited = false
			},
			expected: ErrUnvisited,
		},
		{
			name: "One-sided wall",
			mutate: func(g *Grid) {
				c, _ := g.At(0, 0)
				c.RightWall = true
			},
			expected: ErrWallMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := carved(t)
			tc.mutate(g)
			assert.ErrorIs(t, g.Validate(), tc.expected)
		})
	}
}

func TestPassages(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.RemoveWallBetween(Position{0, 0}, Position{1, 0}))
	require.NoError(t, g.RemoveWallBetween(Position{0, 0}, Position{0, 1}))

	assert.Equal(t, []Position{{0, 1}, {1, 0}}, g.Passages(0, 0))
	assert.Equal(t, []Position{{0, 0}}, g.Passages(1, 0))
	assert.Empty(t, g.Passages(1, 1))
	assert.Nil(t, g.Passages(5, 5))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, Up, Down.Opposite())

	d, ok := DirectionBetween(Position{1, 1}, Position{1, 2})
	assert.True(t, ok)
	assert.Equal(t, Up, d)

	_, ok = DirectionBetween(Position{1, 1}, Position{2, 2})
	assert.False(t, ok)
}

func TestCloneAndEqual(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	clone := g.Clone()
	assert.True(t, g.Equal(clone))

	require.NoError(t, clone.RemoveWallBetween(Position{0, 0}, Position{1, 0}))
	assert.False(t, g.Equal(clone))
	assert.Zero(t, g.OpenWallCount())
}

func TestString(t *testing.T) {
	g, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.RemoveWallBetween(Position{0, 0}, Position{1, 0}))

	expected := "" +
		"+---+---+\n" +
		"|        \n" +
		"+   +---+\n"
	assert.Equal(t, expected, g.String())
}
