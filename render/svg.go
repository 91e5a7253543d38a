package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// SVG draws the maze as an SVG document with one <line> per wall.
type SVG struct{}

func (SVG) ContentType() string {
	return "image/svg+xml"
}

func (SVG) Render(w io.Writer, g *maze.Grid, opts Options) error {
	o := opts.normalized()
	width, height := canvasSize(g, o)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="white"/>`+"\n", width, height)

	fmt.Fprintln(bw, `<g stroke="black" stroke-width="1" stroke-linecap="square">`)
	for _, s := range Segments(g, o) {
		fmt.Fprintf(bw, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", s.X1, s.Y1, s.X2, s.Y2)
	}
	fmt.Fprintln(bw, `</g>`)

	if len(o.Solution) > 0 {
		fmt.Fprint(bw, `<polyline fill="none" stroke="red" stroke-width="2" points="`)
		for i, p := range o.Solution {
			x, y := center(g, o, p)
			if i > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%d,%d", x, y)
		}
		fmt.Fprintln(bw, `"/>`)
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}
