// Package models moves prism scenes in and out of glTF files.
//
// The tracer only knows analytic spheres and planes, so meshes are not
// traced as triangles. Each mesh node becomes one primitive fitted to the
// mesh's bounding box, and the writer emits low-poly stand-in meshes that
// other tools can display.
package models

import (
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
)

// flatness is the largest y extent, relative to the widest axis, for a mesh
// to count as a plane.
const flatness = 1e-3

// Mesh is the vertex data of one glTF mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Indices   []int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsFlat reports whether the mesh has no thickness along y.
func (m *Mesh) IsFlat() bool {
	size := m.Size()
	widest := math.Max(size.X, size.Z)
	if widest == 0 {
		return false
	}
	return size.Y <= widest*flatness
}

// Fit picks the primitive that stands in for the mesh and the object
// transform that maps the primitive onto the mesh's bounds. Planes keep
// their scale since they are unbounded; spheres are stretched to the box.
func (m *Mesh) Fit() (geometry.Kind, math3d.Mat4) {
	center := m.Center()
	if m.IsFlat() {
		return geometry.KindPlane, math3d.Translate(center)
	}
	half := m.Size().Scale(0.5)
	return geometry.KindSphere, math3d.Translate(center).
		Mul(math3d.Scale(half))
}

// UnitSphere builds a UV sphere of radius 1 with the given number of
// segments around y and rings from pole to pole.
func UnitSphere(segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := NewMesh("sphere")
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y, ring := math.Cos(phi), math.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Positions = append(m.Positions, math3d.V3(ring*math.Cos(theta), y, ring*math.Sin(theta)))
		}
	}

	stride := segments + 1
	for r := range rings {
		for s := range segments {
			a := r*stride + s
			b := a + stride
			m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
		}
	}

	m.CalculateBounds()
	return m
}

// UnitQuad builds a square in the xz plane spanning -size..size.
func UnitQuad(size float64) *Mesh {
	m := NewMesh("plane")
	m.Positions = []math3d.Vec3{
		math3d.V3(-size, 0, -size),
		math3d.V3(size, 0, -size),
		math3d.V3(size, 0, size),
		math3d.V3(-size, 0, size),
	}
	m.Indices = []int{0, 2, 1, 0, 3, 2}
	m.CalculateBounds()
	return m
}
