package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var solutionColor = color.RGBA{R: 0xd0, A: 0xff}

// PNG rasterizes the maze onto a white canvas.
type PNG struct{}

func (PNG) ContentType() string {
	return "image/png"
}

func (PNG) Render(w io.Writer, g *maze.Grid, opts Options) error {
	return png.Encode(w, Image(g, opts))
}

// Image draws the maze into an in-memory image.
func Image(g *maze.Grid, opts Options) *image.RGBA {
	o := opts.normalized()
	width, height := canvasSize(g, o)

	img := image.NewRGBA(image.Rect(0, 0, width+1, height+1))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for _, s := range Segments(g, o) {
		drawLine(img, s.X1, s.Y1, s.X2, s.Y2, color.Black)
	}

	for i := 1; i < len(o.Solution); i++ {
		x1, y1 := center(g, o, o.Solution[i-1])
		x2, y2 := center(g, o, o.Solution[i])
		drawLine(img, x1, y1, x2, y2, solutionColor)
	}
	return img
}

// drawLine draws a horizontal or vertical line.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		img.Set(x, y1, c)
	}

	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		img.Set(x2, y, c)
	}
}
