// Package render turns a scene into pixels: the ray-tracing camera and its
// render loops, the float canvas they fill, and the 8-bit framebuffer that
// goes to image files and the terminal.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/prism/pkg/material"
)

// Framebuffer is a quantized 2D image. When drawn to a terminal each cell
// shows two pixel rows using half-block characters (▀).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// FromCanvas clamps and quantizes a rendered canvas.
func FromCanvas(c *Canvas) *Framebuffer {
	fb := NewFramebuffer(c.Width, c.Height)
	for i, col := range c.Pixels {
		r, g, b := col.RGB255()
		fb.Pixels[i] = color.RGBA{r, g, b, 255}
	}
	return fb
}

// FromImage copies any image into a framebuffer.
func FromImage(img image.Image) *Framebuffer {
	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := range fb.Height {
		for x := range fb.Width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			fb.Pixels[y*fb.Width+x] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		}
	}
	return fb
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

// PPMFormat selects the PPM flavor WritePPM emits.
type PPMFormat int

const (
	PPMPlain PPMFormat = iota // P3, ASCII samples
	PPMRaw                    // P6, binary samples
)

// maxPPMLine is the longest line the plain PPM format allows.
const maxPPMLine = 70

// WritePPM encodes the framebuffer as a PPM image with maxval 255.
func (fb *Framebuffer) WritePPM(w io.Writer, format PPMFormat) error {
	bw := bufio.NewWriter(w)

	magic := "P3"
	if format == PPMRaw {
		magic = "P6"
	}
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, fb.Width, fb.Height)

	if format == PPMRaw {
		for _, p := range fb.Pixels {
			bw.Write([]byte{p.R, p.G, p.B})
		}
		return bw.Flush()
	}

	for y := range fb.Height {
		lineLen := 0
		for x := range fb.Width {
			p := fb.Pixels[y*fb.Width+x]
			for _, v := range [3]uint8{p.R, p.G, p.B} {
				s := strconv.Itoa(int(v))
				switch {
				case lineLen == 0:
				case lineLen+1+len(s) > maxPPMLine:
					bw.WriteByte('\n')
					lineLen = 0
				default:
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(s)
				lineLen += len(s)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SavePPM writes the framebuffer to path as a PPM file.
func (fb *Framebuffer) SavePPM(path string, format PPMFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.WritePPM(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Limits on decoded PPM dimensions. The side limit keeps width*height
// from overflowing.
const (
	maxPPMSide   = 1 << 16
	maxPPMPixels = 1 << 26
)

// ReadPPM decodes a P3 or P6 image with a maxval of at most 255.
func ReadPPM(r io.Reader) (*Framebuffer, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, fmt.Errorf("read ppm header: %w", err)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("not a PPM image (magic %q)", magic)
	}

	var header [3]int
	for i := range header {
		tok, err := ppmToken(br)
		if err != nil {
			return nil, fmt.Errorf("read ppm header: %w", err)
		}
		if header[i], err = strconv.Atoi(tok); err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("bad ppm header value %q", tok)
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if maxval > 255 {
		return nil, fmt.Errorf("ppm maxval %d not supported", maxval)
	}
	if width > maxPPMSide || height > maxPPMSide || width*height > maxPPMPixels {
		return nil, fmt.Errorf("ppm size %dx%d too large", width, height)
	}

	fb := NewFramebuffer(width, height)
	scale := func(v int) uint8 { return uint8(v * 255 / maxval) }

	if magic == "P6" {
		// Exactly one whitespace byte separates the header from the samples,
		// and ppmToken has already consumed it.
		buf := make([]byte, width*height*3)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("read ppm samples: %w", err)
		}
		for i := range fb.Pixels {
			fb.Pixels[i] = color.RGBA{scale(int(buf[i*3])), scale(int(buf[i*3+1])), scale(int(buf[i*3+2])), 255}
		}
		return fb, nil
	}

	for i := range fb.Pixels {
		var rgb [3]uint8
		for c := range rgb {
			tok, err := ppmToken(br)
			if err != nil {
				return nil, fmt.Errorf("read ppm samples: %w", err)
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v < 0 || v > maxval {
				return nil, fmt.Errorf("bad ppm sample %q", tok)
			}
			rgb[c] = scale(v)
		}
		fb.Pixels[i] = color.RGBA{rgb[0], rgb[1], rgb[2], 255}
	}
	return fb, nil
}

// ppmToken reads the next whitespace-delimited token, skipping # comments.
// It consumes the single whitespace byte that ends the token.
func ppmToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		switch {
		case b == '#' && sb.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

// Save writes the framebuffer in the format implied by the extension:
// .png or .ppm (binary).
func (fb *Framebuffer) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return fb.SavePNG(path)
	case ".ppm":
		return fb.SavePPM(path, PPMRaw)
	default:
		return fmt.Errorf("unsupported image format %q (use .png or .ppm)", ext)
	}
}

// Color converts a pixel back to a linear material color.
func (fb *Framebuffer) Color(x, y int) material.Color {
	p := fb.GetPixel(x, y)
	return material.RGB(float64(p.R)/255, float64(p.G)/255, float64(p.B)/255)
}
