package models

import (
	"testing"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
)

func TestMeshBounds(t *testing.T) {
	m := NewMesh("box")
	m.Positions = []math3d.Vec3{
		math3d.V3(-1, 0, 2),
		math3d.V3(3, -2, 0),
		math3d.V3(1, 4, -2),
	}
	m.CalculateBounds()

	if !m.BoundsMin.ApproxEqual(math3d.V3(-1, -2, -2)) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if !m.BoundsMax.ApproxEqual(math3d.V3(3, 4, 2)) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
	if !m.Center().ApproxEqual(math3d.V3(1, 1, 0)) {
		t.Errorf("Center = %v", m.Center())
	}
	if !m.Size().ApproxEqual(math3d.V3(4, 6, 4)) {
		t.Errorf("Size = %v", m.Size())
	}
}

func TestMeshFit(t *testing.T) {
	tests := []struct {
		name     string
		min, max math3d.Vec3
		kind     geometry.Kind
		probe    math3d.Vec3 // object-space point
		want     math3d.Vec3 // where the fit puts it
	}{
		{"unit box", math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1), geometry.KindSphere, math3d.V3(0, 1, 0), math3d.V3(0, 1, 0)},
		{"offset box", math3d.V3(0, 0, 0), math3d.V3(4, 2, 2), geometry.KindSphere, math3d.V3(1, 0, 0), math3d.V3(4, 1, 1)},
		{"flat quad", math3d.V3(-5, 2, -5), math3d.V3(5, 2, 5), geometry.KindPlane, math3d.V3(3, 0, 3), math3d.V3(3, 2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &Mesh{BoundsMin: tc.min, BoundsMax: tc.max}
			kind, fit := m.Fit()
			if kind != tc.kind {
				t.Errorf("kind = %v, want %v", kind, tc.kind)
			}
			if got := fit.MulVec3(tc.probe); !got.ApproxEqual(tc.want) {
				t.Errorf("fit(%v) = %v, want %v", tc.probe, got, tc.want)
			}
		})
	}
}

func TestUnitSphere(t *testing.T) {
	m := UnitSphere(24, 12)

	if got, want := m.VertexCount(), 25*13; got != want {
		t.Errorf("VertexCount = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 24*12*2; got != want {
		t.Errorf("TriangleCount = %d, want %d", got, want)
	}
	for _, p := range m.Positions {
		if !math3d.ApproxEqual(p.Len(), 1) {
			t.Fatalf("vertex %v is not on the unit sphere", p)
		}
	}
	if !m.BoundsMin.ApproxEqual(math3d.V3(-1, -1, -1)) || !m.BoundsMax.ApproxEqual(math3d.V3(1, 1, 1)) {
		t.Errorf("bounds = %v..%v, want unit cube", m.BoundsMin, m.BoundsMax)
	}
	for _, i := range m.Indices {
		if i < 0 || i >= m.VertexCount() {
			t.Fatalf("index %d out of range", i)
		}
	}
	if m.IsFlat() {
		t.Error("sphere reported as flat")
	}
}

func TestUnitQuad(t *testing.T) {
	m := UnitQuad(10)
	if !m.IsFlat() {
		t.Error("quad should be flat")
	}
	if kind, _ := m.Fit(); kind != geometry.KindPlane {
		t.Errorf("quad fits a %v, want plane", kind)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}
}
