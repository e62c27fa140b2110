// Package geometry holds the closed set of traceable shapes and the
// intersection ledger built from them.
package geometry

import (
	"fmt"

	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// Kind identifies the local geometry of a Shape.
type Kind int

const (
	KindSphere Kind = iota // Unit sphere at the origin
	KindPlane              // The xz plane, normal +y
	KindTest               // Records the local ray it was asked about
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindTest:
		return "test"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "sphere" or "plane" back to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "sphere":
		return KindSphere, nil
	case "plane":
		return KindPlane, nil
	case "test":
		return KindTest, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", name)
}

// Shape is one object in a scene: a kind of local geometry, a transform
// placing it in the world, and a material.
type Shape struct {
	Name     string
	Kind     Kind
	Material material.Material

	transform math3d.Transform
	probe     *probe // only for KindTest
}

// NewSphere returns a unit sphere with the default material.
func NewSphere() Shape {
	return Shape{Kind: KindSphere, Material: material.Default()}
}

// NewPlane returns the xz plane with the default material.
func NewPlane() Shape {
	return Shape{Kind: KindPlane, Material: material.Default()}
}

// NewTestShape returns a shape whose Intersect only records the local ray.
func NewTestShape() Shape {
	return Shape{Kind: KindTest, Material: material.Default(), probe: &probe{}}
}

// SetTransform replaces the object-to-world transform and its cached inverse.
func (s *Shape) SetTransform(m math3d.Mat4) {
	s.transform.Set(m)
}

// Transform returns the object-to-world matrix.
func (s *Shape) Transform() math3d.Mat4 {
	return s.transform.Matrix()
}

// InverseTransform returns the world-to-object matrix, or the identity when
// the transform is singular.
func (s *Shape) InverseTransform() math3d.Mat4 {
	return s.transform.InverseOrIdentity()
}

// Intersect returns every t at which r meets the shape. index is the shape's
// position in the world and is stored on each Intersection.
func (s *Shape) Intersect(r math3d.Ray, index int) Intersections {
	local := r.Transform(s.InverseTransform())

	var ts []float64
	switch s.Kind {
	case KindSphere:
		ts = intersectSphere(local)
	case KindPlane:
		ts = intersectPlane(local)
	case KindTest:
		if s.probe != nil {
			s.probe.record(local)
		}
	}

	if len(ts) == 0 {
		return nil
	}
	xs := make(Intersections, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, Object: index}
	}
	return xs
}

// NormalAt returns the unit world-space normal at a point on the surface.
func (s *Shape) NormalAt(worldPoint math3d.Vec3) math3d.Vec3 {
	inv := s.InverseTransform()
	local := inv.MulVec3(worldPoint)

	var ln math3d.Vec3
	switch s.Kind {
	case KindSphere:
		ln = sphereNormal(local)
	case KindPlane:
		ln = planeNormal(local)
	default:
		ln = local
	}

	// The transpose of the inverse keeps normals perpendicular under
	// non-uniform scale. Treating the normal as a direction drops the
	// translation the transpose would otherwise leak into w.
	return inv.Transpose().MulVec3Dir(ln).Normalize()
}

// ColorAt returns the base color of the surface at a world point: the
// pattern evaluated in object space if there is one, else the flat color.
func (s *Shape) ColorAt(worldPoint math3d.Vec3) material.Color {
	if s.Material.Pattern == nil {
		return s.Material.Color
	}
	return s.Material.Pattern.ColorAtObject(s.InverseTransform().MulVec3(worldPoint))
}

// SavedRay returns the last local ray a test shape was intersected with.
func (s *Shape) SavedRay() (math3d.Ray, bool) {
	if s.probe == nil {
		return math3d.Ray{}, false
	}
	return s.probe.saved()
}
