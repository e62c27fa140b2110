package render

import "github.com/taigrr/prism/pkg/material"

// Canvas is the float pixel buffer a render writes into. Colors are kept
// unclamped; quantizing is done when converting to a Framebuffer.
type Canvas struct {
	Width  int
	Height int
	Pixels []material.Color // Row-major pixel data
}

// NewCanvas creates a black canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]material.Color, width*height),
	}
}

// WritePixel sets the color at (x, y). Out-of-range writes are dropped.
func (c *Canvas) WritePixel(x, y int, col material.Color) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y), or black if out of range.
func (c *Canvas) PixelAt(x, y int) material.Color {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return material.Black
	}
	return c.Pixels[y*c.Width+x]
}

// Row returns row y as a slice aliasing the canvas.
func (c *Canvas) Row(y int) []material.Color {
	return c.Pixels[y*c.Width : (y+1)*c.Width]
}
