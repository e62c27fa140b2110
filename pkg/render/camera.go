package render

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Camera maps canvas pixels to rays. The canvas sits one unit in front of
// the eye, which looks down -z in camera space.
type Camera struct {
	HSize int     // canvas width in pixels
	VSize int     // canvas height in pixels
	FOV   float64 // field of view in radians, across the wider axis

	halfWidth  float64
	halfHeight float64
	pixelSize  float64

	transform math3d.Transform
}

// NewCamera creates a camera with an identity view transform.
func NewCamera(hsize, vsize int, fov float64) *Camera {
	c := &Camera{HSize: hsize, VSize: vsize, FOV: fov}
	c.computePixelSize()
	return c
}

func (c *Camera) computePixelSize() {
	halfView := math.Tan(c.FOV / 2)
	aspect := float64(c.HSize) / float64(c.VSize)

	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(c.HSize)
}

// PixelSize returns the world-space width of one pixel on the canvas plane.
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// SetTransform orients the camera. m is a view transform, usually built
// with math3d.LookAt.
func (c *Camera) SetTransform(m math3d.Mat4) {
	c.transform.Set(m)
}

// Transform returns the view transform.
func (c *Camera) Transform() math3d.Mat4 {
	return c.transform.Matrix()
}

// RayForPixel returns the ray from the eye through the center of pixel
// (px, py).
func (c *Camera) RayForPixel(px, py int) math3d.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// Camera looks toward -z, so +x is to the left.
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	inv := c.transform.InverseOrIdentity()
	pixel := inv.MulVec3(math3d.V3(worldX, worldY, -1))
	origin := inv.MulVec3(math3d.Zero3())
	return math3d.NewRay(origin, pixel.Sub(origin).Normalize())
}
