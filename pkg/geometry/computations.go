package geometry

import (
	"math"
	"slices"

	"github.com/taigrr/prism/pkg/math3d"
)

// Computations is everything shading needs to know about a hit.
type Computations struct {
	T      float64
	Object int

	Point   math3d.Vec3
	EyeV    math3d.Vec3
	NormalV math3d.Vec3 // flipped toward the eye when Inside
	Inside  bool

	ReflectV math3d.Vec3

	// OverPoint sits just above the surface and starts shadow and reflection
	// rays. UnderPoint sits just below and starts refraction rays.
	OverPoint  math3d.Vec3
	UnderPoint math3d.Vec3

	// N1 and N2 are the refractive indices on the incoming and outgoing
	// sides of the surface.
	N1, N2 float64
}

// PrepareComputations derives the shading state for hit. objects resolves
// Intersection.Object indices and xs is the full ledger hit came from, used
// to work out which media the ray is passing between.
func PrepareComputations(hit Intersection, r math3d.Ray, objects []Shape, xs Intersections) Computations {
	obj := &objects[hit.Object]

	c := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  r.Position(hit.T),
		EyeV:   r.Direction.Negate(),
	}
	c.NormalV = obj.NormalAt(c.Point)
	if c.NormalV.Dot(c.EyeV) < 0 {
		c.Inside = true
		c.NormalV = c.NormalV.Negate()
	}
	c.ReflectV = r.Direction.Reflect(c.NormalV)

	bias := c.NormalV.Scale(math3d.SurfaceBias)
	c.OverPoint = c.Point.Add(bias)
	c.UnderPoint = c.Point.Sub(bias)

	c.N1, c.N2 = refractiveIndices(hit, objects, xs)
	return c
}

// refractiveIndices replays the ledger in order, tracking which objects the
// ray is inside, and reads off the media on either side of hit.
func refractiveIndices(hit Intersection, objects []Shape, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1, 1
	var containers []int

	top := func() float64 {
		if len(containers) == 0 {
			return 1
		}
		return objects[containers[len(containers)-1]].Material.RefractiveIndex
	}

	for _, x := range xs {
		if x == hit {
			n1 = top()
		}

		if i := slices.Index(containers, x.Object); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Object)
		}

		if x == hit {
			n2 = top()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the hit: the fraction of
// light reflected rather than refracted. Total internal reflection gives 1.
func (c Computations) Schlick() float64 {
	cos := c.EyeV.Dot(c.NormalV)

	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
