// Package render draws carved grids as text, SVG or PNG.
//
// Every present wall becomes one line segment. Cell (x, y) spans [x, x+1] horizontally and
// [y, y+1] vertically in maze units; Scale converts units to pixels and the y axis is flipped so
// row 0 is drawn at the bottom.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
)

const (
	DefaultScale = 10
	MaxScale     = 64
)

var ErrUnknownFormat = errors.New("unknown render format")

// Options configures a rendering.
type Options struct {
	Scale    int             // Pixels per cell side (0 = DefaultScale)
	Margin   int             // Pixels around the maze (0 = one cell)
	Solution []maze.Position // Optional path drawn over the maze
}

// Renderer writes a picture of g to w.
type Renderer interface {
	Render(w io.Writer, g *maze.Grid, opts Options) error
	ContentType() string
}

// Segment is a wall line in pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 int
}

var renderers = map[string]Renderer{
	"ascii": ASCII{},
	"text":  ASCII{},
	"svg":   SVG{},
	"png":   PNG{},
}

// ByName returns the renderer registered for format.
func ByName(format string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return r, nil
}

func (o Options) normalized() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Scale > MaxScale {
		o.Scale = MaxScale
	}
	if o.Margin <= 0 {
		o.Margin = o.Scale
	}
	return o
}

// canvasSize returns the pixel dimensions of the drawing, margins included.
func canvasSize(g *maze.Grid, o Options) (int, int) {
	return g.Width()*o.Scale + 2*o.Margin, g.Height()*o.Scale + 2*o.Margin
}

// toPixel maps a maze-unit corner to pixel coordinates.
func toPixel(g *maze.Grid, o Options, x, y int) (int, int) {
	return o.Margin + x*o.Scale, o.Margin + (g.Height()-y)*o.Scale
}

// center maps the middle of a cell to pixel coordinates.
func center(g *maze.Grid, o Options, p maze.Position) (int, int) {
	px, py := toPixel(g, o, p.X, p.Y)
	return px + o.Scale/2, py - o.Scale/2
}

// Segments lists the wall segments of g in pixel space.
func Segments(g *maze.Grid, opts Options) []Segment {
	o := opts.normalized()

	var segments []Segment
	line := func(x1, y1, x2, y2 int) {
		px1, py1 := toPixel(g, o, x1, y1)
		px2, py2 := toPixel(g, o, x2, y2)
		segments = append(segments, Segment{X1: px1, Y1: py1, X2: px2, Y2: py2})
	}

	g.Walk(func(p maze.Position, c maze.Cell) {
		if c.LeftWall {
			line(p.X, p.Y, p.X, p.Y+1)
		}
		if c.UpWall {
			line(p.X, p.Y+1, p.X+1, p.Y+1)
		}
		if c.RightWall {
			line(p.X+1, p.Y, p.X+1, p.Y+1)
		}
		if c.DownWall {
			line(p.X, p.Y, p.X+1, p.Y)
		}
	})
	return segments
}
