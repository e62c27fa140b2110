package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectSphere solves |o + t*d|^2 = 1 for the unit sphere. Tangent rays
// return the same t twice.
func intersectSphere(r math3d.Ray) []float64 {
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(r.Origin)
	c := r.Origin.Dot(r.Origin) - 1

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return []float64{t1, t2}
}

func sphereNormal(p math3d.Vec3) math3d.Vec3 {
	return p
}
