package render

import (
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// ASCII draws the maze with +, -, | characters. Solution cells are marked with a dot.
type ASCII struct{}

func (ASCII) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (ASCII) Render(w io.Writer, g *maze.Grid, opts Options) error {
	text := g.String()
	if len(opts.Solution) > 0 {
		text = markSolution(text, g, opts.Solution)
	}
	_, err := io.WriteString(w, text)
	return err
}

// markSolution places a dot in the middle of every solution cell of the text drawing.
func markSolution(text string, g *maze.Grid, path []maze.Position) string {
	lines := strings.Split(text, "\n")
	rows := make([][]byte, len(lines))
	for i, l := range lines {
		rows[i] = []byte(l)
	}

	for _, p := range path {
		if !g.Contains(p.X, p.Y) {
			continue
		}
		// Line 0 is the top boundary, each cell row is followed by its wall row.
		row := 1 + 2*(g.Height()-1-p.Y)
		col := 4*p.X + 2
		if row < len(rows) && col < len(rows[row]) {
			rows[row][col] = '.'
		}
	}

	for i, r := range rows {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}
