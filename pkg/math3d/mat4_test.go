package math3d

import (
	"math"
	"testing"
)

func TestFromRowsLayout(t *testing.T) {
	m := FromRows([4][4]float64{
		{1, 2, 3, 4},
		{5.5, 6.5, 7.5, 8.5},
		{9, 10, 11, 12},
		{13.5, 14.5, 15.5, 16.5},
	})

	if m.Get(0, 3) != 4 || m.Get(1, 0) != 5.5 || m.Get(3, 2) != 15.5 {
		t.Errorf("FromRows stored elements in the wrong order: %v", m)
	}
	// Column-major: translation lives in 12..14.
	if m[12] != 4 || m[13] != 8.5 {
		t.Errorf("expected column-major storage, got %v", m)
	}
}

func TestMulVec4(t *testing.T) {
	a := FromRows([4][4]float64{
		{1, 2, 3, 4},
		{2, 4, 4, 2},
		{8, 6, 4, 1},
		{0, 0, 0, 1},
	})
	got := a.MulVec4(V4(1, 2, 3, 1))
	want := V4(18, 24, 33, 1)
	if got != want {
		t.Errorf("MulVec4 = %v, want %v", got, want)
	}
}

func TestTranspose(t *testing.T) {
	a := FromRows([4][4]float64{
		{0, 9, 3, 0},
		{9, 8, 0, 8},
		{1, 8, 5, 3},
		{0, 0, 5, 8},
	})
	want := FromRows([4][4]float64{
		{0, 9, 1, 0},
		{9, 8, 8, 0},
		{3, 0, 5, 5},
		{0, 8, 3, 8},
	})
	if a.Transpose() != want {
		t.Errorf("Transpose = %v, want %v", a.Transpose(), want)
	}
	if Identity().Transpose() != Identity() {
		t.Error("transpose of identity should be identity")
	}
}

func TestInverse(t *testing.T) {
	a := FromRows([4][4]float64{
		{-5, 2, 6, -8},
		{1, -5, 1, 8},
		{7, 7, -6, -7},
		{1, -3, 7, 4},
	})
	if det := a.Determinant(); math.Abs(det-532) > 1e-9 {
		t.Fatalf("Determinant = %v, want 532", det)
	}

	inv, ok := a.Inverse()
	if !ok {
		t.Fatal("matrix should be invertible")
	}
	want := FromRows([4][4]float64{
		{0.21805, 0.45113, 0.24060, -0.04511},
		{-0.80827, -1.45677, -0.44361, 0.52068},
		{-0.07895, -0.22368, -0.05263, 0.19737},
		{-0.52256, -0.81391, -0.30075, 0.30639},
	})
	if !inv.ApproxEqual(want) {
		t.Errorf("Inverse = %v, want %v", inv, want)
	}

	// Multiplying a product by the inverse of one factor recovers the other.
	b := FromRows([4][4]float64{
		{8, 2, 2, 2},
		{3, -1, 7, 0},
		{7, 0, 5, 4},
		{6, -2, 0, 5},
	})
	binv, ok := b.Inverse()
	if !ok {
		t.Fatal("b should be invertible")
	}
	if got := a.Mul(b).Mul(binv); !got.ApproxEqual(a) {
		t.Errorf("a*b*inverse(b) = %v, want %v", got, a)
	}
}

func TestInverseSingular(t *testing.T) {
	a := FromRows([4][4]float64{
		{-4, 2, -2, -3},
		{9, 6, 2, 6},
		{0, -5, 1, -5},
		{0, 0, 0, 0},
	})
	inv, ok := a.Inverse()
	if ok {
		t.Fatal("singular matrix reported as invertible")
	}
	if inv != Identity() {
		t.Errorf("singular inverse should fall back to identity, got %v", inv)
	}

	if _, ok := Scale(V3(1, 0, 1)).Inverse(); ok {
		t.Error("degenerate scale should not be invertible")
	}
}

func TestTransformBuilders(t *testing.T) {
	half := math.Sqrt2 / 2

	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
		dir  bool
	}{
		{"translate point", Translate(V3(5, -3, 2)), V3(-3, 4, 5), V3(2, 1, 7), false},
		{"translate vector", Translate(V3(5, -3, 2)), V3(-3, 4, 5), V3(-3, 4, 5), true},
		{"scale point", Scale(V3(2, 3, 4)), V3(-4, 6, 8), V3(-8, 18, 32), false},
		{"reflect by scale", Scale(V3(-1, 1, 1)), V3(2, 3, 4), V3(-2, 3, 4), false},
		{"rotate x half quarter", RotateX(math.Pi / 4), V3(0, 1, 0), V3(0, half, half), false},
		{"rotate x full quarter", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1), false},
		{"rotate y half quarter", RotateY(math.Pi / 4), V3(0, 0, 1), V3(half, 0, half), false},
		{"rotate z half quarter", RotateZ(math.Pi / 4), V3(0, 1, 0), V3(-half, half, 0), false},
		{"rotate z full quarter", RotateZ(math.Pi / 2), V3(0, 1, 0), V3(-1, 0, 0), false},
		{"shear x by y", Shear(1, 0, 0, 0, 0, 0), V3(2, 3, 4), V3(5, 3, 4), false},
		{"shear x by z", Shear(0, 1, 0, 0, 0, 0), V3(2, 3, 4), V3(6, 3, 4), false},
		{"shear y by x", Shear(0, 0, 1, 0, 0, 0), V3(2, 3, 4), V3(2, 5, 4), false},
		{"shear y by z", Shear(0, 0, 0, 1, 0, 0), V3(2, 3, 4), V3(2, 7, 4), false},
		{"shear z by x", Shear(0, 0, 0, 0, 1, 0), V3(2, 3, 4), V3(2, 3, 6), false},
		{"shear z by y", Shear(0, 0, 0, 0, 0, 1), V3(2, 3, 4), V3(2, 3, 7), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Vec3
			if tc.dir {
				got = tc.m.MulVec3Dir(tc.in)
			} else {
				got = tc.m.MulVec3(tc.in)
			}
			if !got.ApproxEqual(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChainedTransformsApplyRightToLeft(t *testing.T) {
	p := V3(1, 0, 1)
	chained := Translate(V3(10, 5, 7)).Mul(ScaleUniform(5)).Mul(RotateX(math.Pi / 2))
	if got := chained.MulVec3(p); !got.ApproxEqual(V3(15, 0, 7)) {
		t.Errorf("chained transform = %v, want (15, 0, 7)", got)
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name         string
		from, to, up Vec3
		want         Mat4
	}{
		{"default orientation", V3(0, 0, 0), V3(0, 0, -1), V3(0, 1, 0), Identity()},
		{"looking toward +z", V3(0, 0, 0), V3(0, 0, 1), V3(0, 1, 0), Scale(V3(-1, 1, -1))},
		{"moves the world", V3(0, 0, 8), V3(0, 0, 0), V3(0, 1, 0), Translate(V3(0, 0, -8))},
		{"arbitrary", V3(1, 3, 2), V3(4, -2, 8), V3(1, 1, 0), FromRows([4][4]float64{
			{-0.51450, 0.51450, 0.68599, -2.40098},
			{0.77892, 0.61494, 0.12299, -2.86972},
			{-0.35857, 0.59761, -0.71714, 0},
			{0, 0, 0, 1},
		})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LookAt(tc.from, tc.to, tc.up)
			if !got.ApproxEqual(tc.want) {
				t.Errorf("LookAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromQuat(t *testing.T) {
	s := math.Sin(math.Pi / 4)
	c := math.Cos(math.Pi / 4)

	tests := []struct {
		name string
		q    [4]float64
		want Mat4
	}{
		{"identity", [4]float64{0, 0, 0, 1}, Identity()},
		{"quarter turn about x", [4]float64{s, 0, 0, c}, RotateX(math.Pi / 2)},
		{"quarter turn about y", [4]float64{0, s, 0, c}, RotateY(math.Pi / 2)},
		{"quarter turn about z", [4]float64{0, 0, s, c}, RotateZ(math.Pi / 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromQuat(tc.q[0], tc.q[1], tc.q[2], tc.q[3]); !got.ApproxEqual(tc.want) {
				t.Errorf("FromQuat = %v, want %v", got, tc.want)
			}
		})
	}
}
