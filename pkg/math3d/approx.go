package math3d

import "math"

// Epsilon is the tolerance for every geometric and color equality test.
// The plane intersection uses it too, to decide a ray is parallel.
const Epsilon = 0.01

// SurfaceBias is how far hit points are nudged along the normal before
// spawning shadow, reflection and refraction rays. It has to stay well under
// Epsilon or refracted colors drift visibly.
const SurfaceBias = 1e-5

// ApproxEqual reports whether a and b differ by no more than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
