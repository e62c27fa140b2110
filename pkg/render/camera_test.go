package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestCameraPixelSize(t *testing.T) {
	tests := []struct {
		name         string
		hsize, vsize int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(tc.hsize, tc.vsize, math.Pi/2)
			if math.Abs(c.PixelSize()-0.01) > 1e-9 {
				t.Errorf("PixelSize = %v, want 0.01", c.PixelSize())
			}
		})
	}
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(160, 120, math.Pi/2)
	if c.HSize != 160 || c.VSize != 120 || c.FOV != math.Pi/2 {
		t.Errorf("unexpected camera %+v", c)
	}
	if c.Transform() != math3d.Identity() {
		t.Error("new camera should have the identity transform")
	}
}

func TestRayForPixel(t *testing.T) {
	half := math.Sqrt2 / 2

	tests := []struct {
		name       string
		xform      math3d.Mat4
		px, py     int
		wantOrigin math3d.Vec3
		wantDir    math3d.Vec3
	}{
		{"center of canvas", math3d.Identity(), 100, 50, math3d.V3(0, 0, 0), math3d.V3(0, 0, -1)},
		{"corner of canvas", math3d.Identity(), 0, 0, math3d.V3(0, 0, 0), math3d.V3(0.66519, 0.33259, -0.66851)},
		{
			"transformed camera",
			math3d.RotateY(math.Pi / 4).Mul(math3d.Translate(math3d.V3(0, -2, 5))),
			100, 50,
			math3d.V3(0, 2, -5), math3d.V3(half, 0, -half),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(201, 101, math.Pi/2)
			c.SetTransform(tc.xform)
			r := c.RayForPixel(tc.px, tc.py)
			if !r.Origin.ApproxEqual(tc.wantOrigin) {
				t.Errorf("origin = %v, want %v", r.Origin, tc.wantOrigin)
			}
			if !r.Direction.ApproxEqual(tc.wantDir) {
				t.Errorf("direction = %v, want %v", r.Direction, tc.wantDir)
			}
		})
	}
}

func TestRayForPixelSingularTransform(t *testing.T) {
	c := NewCamera(201, 101, math.Pi/2)
	c.SetTransform(math3d.Scale(math3d.V3(0, 0, 0)))
	r := c.RayForPixel(100, 50)
	if !r.Origin.ApproxEqual(math3d.Zero3()) || !r.Direction.ApproxEqual(math3d.V3(0, 0, -1)) {
		t.Errorf("singular view transform should act as identity, got %+v", r)
	}
}

func TestOrbit(t *testing.T) {
	o := NewOrbit(math3d.V3(0, 0, -5), math3d.Zero3())
	if math.Abs(o.Distance-5) > 1e-9 || math.Abs(o.Pitch) > 1e-9 || math.Abs(o.Yaw) > 1e-9 {
		t.Fatalf("unexpected orbit %+v", o)
	}
	if !o.Eye().ApproxEqual(math3d.V3(0, 0, -5)) {
		t.Errorf("Eye = %v", o.Eye())
	}

	o.Rotate(0, math.Pi/2)
	if !o.Eye().ApproxEqual(math3d.V3(5, 0, 0)) {
		t.Errorf("Eye after quarter yaw = %v, want (5, 0, 0)", o.Eye())
	}

	o.Rotate(10, 0)
	if o.Pitch >= math.Pi/2 {
		t.Errorf("pitch should be clamped below the pole, got %v", o.Pitch)
	}

	o.Zoom(-100)
	if o.Distance != o.MinDistance {
		t.Errorf("Distance = %v, want clamp to %v", o.Distance, o.MinDistance)
	}

	round := NewOrbit(math3d.V3(1, 3, 2), math3d.V3(0, 1, 0))
	if !round.Eye().ApproxEqual(math3d.V3(1, 3, 2)) {
		t.Errorf("orbit round trip Eye = %v, want (1, 3, 2)", round.Eye())
	}
	want := math3d.LookAt(math3d.V3(1, 3, 2), math3d.V3(0, 1, 0), math3d.Up())
	if !round.ViewTransform().ApproxEqual(want) {
		t.Errorf("ViewTransform = %v, want %v", round.ViewTransform(), want)
	}
}
