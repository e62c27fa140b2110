package math3d

// Vec4 represents a homogeneous tuple. W is 1 for points and 0 for vectors.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point returns the homogeneous form of a point (w=1).
func Point(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

// Vector returns the homogeneous form of a vector (w=0).
func Vector(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 0}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// IsPoint reports whether the tuple is a point.
func (v Vec4) IsPoint() bool {
	return v.W == 1
}

// IsVector reports whether the tuple is a vector.
func (v Vec4) IsVector() bool {
	return v.W == 0
}

// Add returns the tuple sum. A point plus a vector is a point; two points
// produce a tuple that is neither.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the tuple difference. Point minus point is a vector.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// ApproxEqual compares all four components within Epsilon.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Vec4) ApproxEqual(b Vec4) bool {
	return ApproxEqual(a.X, b.X) && ApproxEqual(a.Y, b.Y) &&
		ApproxEqual(a.Z, b.Z) && ApproxEqual(a.W, b.W)
}
