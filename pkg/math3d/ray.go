package math3d

// Ray is a half-line starting at Origin and running along Direction.
// Direction isn't required to be unit length; t is measured in multiples of
// it.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at distance t along the ray.
func (r Ray) Position(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray with its origin transformed as a point and its
// direction as a vector. The direction is not renormalized.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{
		Origin:    m.MulVec3(r.Origin),
		Direction: m.MulVec3Dir(r.Direction),
	}
}
