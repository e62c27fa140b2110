package render

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Orbit places a camera on a sphere around a target point. The interactive
// viewer drives it from mouse and keyboard input.
type Orbit struct {
	Target   math3d.Vec3
	Distance float64
	Pitch    float64 // elevation above the xz plane, radians
	Yaw      float64 // rotation around +y, radians

	MinDistance float64
	MaxDistance float64
}

const maxOrbitPitch = math.Pi/2 - 0.01

// NewOrbit builds an orbit that reproduces the view from eye toward target.
func NewOrbit(eye, target math3d.Vec3) *Orbit {
	o := &Orbit{Target: target, MinDistance: 0.5, MaxDistance: 100}
	o.LookFrom(eye)
	return o
}

// LookFrom moves the orbit so the eye sits at eye.
func (o *Orbit) LookFrom(eye math3d.Vec3) {
	offset := eye.Sub(o.Target)
	o.Distance = offset.Len()
	if o.Distance == 0 {
		o.Distance = 1
		offset = math3d.V3(0, 0, -1)
	}
	dir := offset.Normalize()
	o.Pitch = math.Asin(dir.Y)
	o.Yaw = math.Atan2(dir.X, -dir.Z)
}

// Eye returns the camera position on the orbit.
func (o *Orbit) Eye() math3d.Vec3 {
	return o.Target.Add(math3d.V3(
		math.Sin(o.Yaw)*math.Cos(o.Pitch),
		math.Sin(o.Pitch),
		-math.Cos(o.Yaw)*math.Cos(o.Pitch),
	).Scale(o.Distance))
}

// Rotate turns the orbit by the given angles (in radians).
func (o *Orbit) Rotate(deltaPitch, deltaYaw float64) {
	o.Pitch += deltaPitch
	o.Yaw += deltaYaw

	// Clamp pitch so the view never flips over the pole
	if o.Pitch > maxOrbitPitch {
		o.Pitch = maxOrbitPitch
	}
	if o.Pitch < -maxOrbitPitch {
		o.Pitch = -maxOrbitPitch
	}
}

// Zoom moves toward (negative) or away from (positive) the target.
func (o *Orbit) Zoom(delta float64) {
	o.Distance = math.Min(o.MaxDistance, math.Max(o.MinDistance, o.Distance+delta))
}

// ViewTransform returns the view matrix for the current orbit position.
func (o *Orbit) ViewTransform() math3d.Mat4 {
	return math3d.LookAt(o.Eye(), o.Target, math3d.Up())
}
