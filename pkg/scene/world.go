package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// DefaultDepth is the bounce budget a camera ray starts with.
const DefaultDepth = 5

// World is the scene: an ordered object list and at most one light.
// Intersections refer to objects by their index in Objects.
//
// A World must not be modified while a render is reading it.
type World struct {
	Objects []geometry.Shape
	Light   *PointLight
}

// New creates a world from a light (may be nil) and objects.
func New(light *PointLight, objects ...geometry.Shape) *World {
	return &World{Objects: objects, Light: light}
}

// Default returns the two concentric spheres lit from the upper left that
// most shading behavior is checked against.
func Default() *World {
	outer := geometry.NewSphere()
	outer.Name = "outer"
	outer.Material.Color = material.RGB(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere()
	inner.Name = "inner"
	inner.SetTransform(math3d.ScaleUniform(0.5))

	return New(NewPointLight(math3d.V3(-10, 10, -10), material.White), outer, inner)
}

// Add appends a shape and returns its index.
func (w *World) Add(s geometry.Shape) int {
	w.Objects = append(w.Objects, s)
	return len(w.Objects) - 1
}

// Intersect returns every intersection of r with the world, sorted by t.
func (w *World) Intersect(r math3d.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for i := range w.Objects {
		xs = append(xs, w.Objects[i].Intersect(r, i)...)
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether something sits between point and the light.
// Without a light every point is in shadow.
func (w *World) IsShadowed(point math3d.Vec3) bool {
	if w.Light == nil {
		return true
	}

	v := w.Light.Position.Sub(point)
	distance := v.Len()
	hit, ok := w.Intersect(math3d.NewRay(point, v.Normalize())).Hit()
	return ok && hit.T < distance
}

// ShadeHit returns the color at a prepared hit, including reflected and
// refracted light while remaining allows.
func (w *World) ShadeHit(c geometry.Computations, remaining int) material.Color {
	shape := &w.Objects[c.Object]

	var surface material.Color
	if w.Light != nil {
		surface = Lighting(shape, *w.Light, c.OverPoint, c.EyeV, c.NormalV, w.IsShadowed(c.OverPoint))
	}

	reflected := w.ReflectedColor(c, remaining)
	refracted := w.RefractedColor(c, remaining)

	m := shape.Material
	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := c.Schlick()
		return surface.
			Add(reflected.Scale(reflectance)).
			Add(refracted.Scale(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor follows the mirror bounce from a hit.
func (w *World) ReflectedColor(c geometry.Computations, remaining int) material.Color {
	reflective := w.Objects[c.Object].Material.Reflective
	if remaining <= 0 || reflective == 0 {
		return material.Black
	}

	r := math3d.NewRay(c.OverPoint, c.ReflectV)
	return w.ColorAt(r, remaining-1).Scale(reflective)
}

// RefractedColor follows the transmitted ray through a transparent hit.
// Total internal reflection transmits nothing.
func (w *World) RefractedColor(c geometry.Computations, remaining int) material.Color {
	transparency := w.Objects[c.Object].Material.Transparency
	if remaining <= 0 || transparency == 0 {
		return material.Black
	}

	ratio := c.N1 / c.N2
	cosI := c.EyeV.Dot(c.NormalV)
	sin2T := ratio * ratio * (1 - cosI*cosI)
	if sin2T > 1 {
		return material.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	dir := c.NormalV.Scale(ratio*cosI - cosT).Sub(c.EyeV.Scale(ratio))
	r := math3d.NewRay(c.UnderPoint, dir)
	return w.ColorAt(r, remaining-1).Scale(transparency)
}

// ColorAt traces r into the world and returns the color it sees. A miss is
// black.
func (w *World) ColorAt(r math3d.Ray, remaining int) material.Color {
	xs := w.Intersect(r)
	hit, ok := xs.Hit()
	if !ok {
		return material.Black
	}
	return w.ShadeHit(geometry.PrepareComputations(hit, r, w.Objects, xs), remaining)
}
