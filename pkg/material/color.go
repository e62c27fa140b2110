// Package material describes how surfaces look: colors, Phong material
// parameters and procedural patterns.
package material

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/prism/pkg/math3d"
)

// Color is a linear RGB triple. Components are not clamped; values above 1
// are legal until a color is written to an image.
type Color struct {
	R, G, B float64
}

// RGB creates a Color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Colors for convenience
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns the component-wise difference.
func (c Color) Sub(o Color) Color {
	return Color{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the Hadamard product, used to filter light through a surface.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// ApproxEqual compares colors within math3d.Epsilon per channel.
func (c Color) ApproxEqual(o Color) bool {
	return math3d.ApproxEqual(c.R, o.R) &&
		math3d.ApproxEqual(c.G, o.G) &&
		math3d.ApproxEqual(c.B, o.B)
}

// Clamped returns the color with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	return Color{cc.R, cc.G, cc.B}
}

// RGB255 quantizes the clamped color to 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}

// Hex formats the clamped color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// ParseHex parses a #rrggbb or #rgb color.
func ParseHex(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{cc.R, cc.G, cc.B}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("(%.5g, %.5g, %.5g)", c.R, c.G, c.B)
}
