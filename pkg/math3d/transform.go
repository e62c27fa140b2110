package math3d

// Transform is an affine matrix together with its cached inverse.
//
// The inverse is derived state: it is recomputed by Set and can't be
// assigned on its own. A singular matrix leaves the inverse absent, and
// callers that need one fall back to the identity.
type Transform struct {
	matrix     Mat4
	inverse    Mat4
	invertible bool
	set        bool
}

// NewTransform returns a Transform holding m.
func NewTransform(m Mat4) Transform {
	var t Transform
	t.Set(m)
	return t
}

// Set stores m and recomputes its inverse.
func (t *Transform) Set(m Mat4) {
	t.matrix = m
	t.inverse, t.invertible = m.Inverse()
	t.set = true
}

// Matrix returns the forward matrix. The zero Transform is the identity.
func (t Transform) Matrix() Mat4 {
	if !t.set {
		return Identity()
	}
	return t.matrix
}

// Inverse returns the cached inverse. ok is false when the matrix is
// singular.
func (t Transform) Inverse() (inv Mat4, ok bool) {
	if !t.set {
		return Identity(), true
	}
	return t.inverse, t.invertible
}

// InverseOrIdentity returns the inverse, or the identity when there is none.
func (t Transform) InverseOrIdentity() Mat4 {
	inv, ok := t.Inverse()
	if !ok {
		return Identity()
	}
	return inv
}

// Invertible reports whether the matrix has an inverse.
func (t Transform) Invertible() bool {
	_, ok := t.Inverse()
	return ok
}

// ApplyPoint transforms p as a point.
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	return t.Matrix().MulVec3(p)
}

// ApplyVector transforms v as a direction; translation is ignored.
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return t.Matrix().MulVec3Dir(v)
}

// Apply transforms a homogeneous tuple.
func (t Transform) Apply(v Vec4) Vec4 {
	return t.Matrix().MulVec4(v)
}
