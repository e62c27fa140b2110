package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectPlane hits the xz plane once. Rays parallel to it, including rays
// lying in it, miss.
func intersectPlane(r math3d.Ray) []float64 {
	if math.Abs(r.Direction.Y) < math3d.Epsilon {
		return nil
	}
	return []float64{-r.Origin.Y / r.Direction.Y}
}

func planeNormal(math3d.Vec3) math3d.Vec3 {
	return math3d.Up()
}
