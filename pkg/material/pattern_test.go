package material

import (
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

func TestStripePattern(t *testing.T) {
	p := Stripes(White, Black)

	tests := []struct {
		name string
		pt   math3d.Vec3
		want Color
	}{
		{"constant in y", math3d.V3(0, 1, 0), White},
		{"constant in z", math3d.V3(0, 0, 2), White},
		{"x=0", math3d.V3(0, 0, 0), White},
		{"x=0.9", math3d.V3(0.9, 0, 0), White},
		{"x=1", math3d.V3(1, 0, 0), Black},
		{"x=-0.1", math3d.V3(-0.1, 0, 0), Black},
		{"x=-1", math3d.V3(-1, 0, 0), Black},
		{"x=-1.1", math3d.V3(-1.1, 0, 0), White},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ColorAt(tc.pt); got != tc.want {
				t.Errorf("ColorAt(%v) = %v, want %v", tc.pt, got, tc.want)
			}
		})
	}
}

func TestGradientPattern(t *testing.T) {
	p := NewPattern(PatternGradient, White, Black)

	tests := []struct {
		x    float64
		want Color
	}{
		{0, White},
		{0.25, RGB(0.75, 0.75, 0.75)},
		{0.5, RGB(0.5, 0.5, 0.5)},
		{0.75, RGB(0.25, 0.25, 0.25)},
	}
	for _, tc := range tests {
		if got := p.ColorAt(math3d.V3(tc.x, 0, 0)); !got.ApproxEqual(tc.want) {
			t.Errorf("ColorAt(x=%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestRingPattern(t *testing.T) {
	p := NewPattern(PatternRing, White, Black)

	tests := []struct {
		pt   math3d.Vec3
		want Color
	}{
		{math3d.V3(0, 0, 0), White},
		{math3d.V3(1, 0, 0), Black},
		{math3d.V3(0, 0, 1), Black},
		{math3d.V3(0.708, 0, 0.708), Black},
	}
	for _, tc := range tests {
		if got := p.ColorAt(tc.pt); got != tc.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tc.pt, got, tc.want)
		}
	}
}

func TestCheckerPattern(t *testing.T) {
	p := Checkers(White, Black)

	tests := []struct {
		name string
		pt   math3d.Vec3
		want Color
	}{
		{"repeats in x", math3d.V3(0.99, 0, 0), White},
		{"repeats in x next cell", math3d.V3(1.01, 0, 0), Black},
		{"repeats in y", math3d.V3(0, 0.99, 0), White},
		{"repeats in y next cell", math3d.V3(0, 1.01, 0), Black},
		{"repeats in z", math3d.V3(0, 0, 0.99), White},
		{"repeats in z next cell", math3d.V3(0, 0, 1.01), Black},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ColorAt(tc.pt); got != tc.want {
				t.Errorf("ColorAt(%v) = %v, want %v", tc.pt, got, tc.want)
			}
		})
	}
}

func TestPatternTransform(t *testing.T) {
	p := NewPattern(PatternTest, White, Black)
	p.SetTransform(math3d.Translate(math3d.V3(0.5, 1, 1.5)))

	got := p.ColorAtObject(math3d.V3(2.5, 3, 3.5))
	if !got.ApproxEqual(RGB(2, 2, 2)) {
		t.Errorf("ColorAtObject = %v, want (2, 2, 2)", got)
	}

	s := Stripes(White, Black)
	s.SetTransform(math3d.Scale(math3d.V3(2, 2, 2)))
	if got := s.ColorAtObject(math3d.V3(1.5, 0, 0)); got != White {
		t.Errorf("scaled stripe = %v, want white", got)
	}
}

func TestParsePatternKind(t *testing.T) {
	for _, kind := range []PatternKind{PatternStripe, PatternGradient, PatternRing, PatternChecker, PatternTest} {
		got, err := ParsePatternKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParsePatternKind(%q) = %v, %v", kind.String(), got, err)
		}
	}
	if _, err := ParsePatternKind("plaid"); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestMaterialPresets(t *testing.T) {
	m := Default()
	if m.Color != White || m.Ambient != 0.1 || m.Diffuse != 0.9 || m.Specular != 0.9 ||
		m.Shininess != 200 || m.Reflective != 0 || m.Transparency != 0 || m.RefractiveIndex != 1 {
		t.Errorf("unexpected default material: %+v", m)
	}

	g := GlassMaterial()
	if g.Transparency != 1 || g.RefractiveIndex != 1.5 {
		t.Errorf("unexpected glass material: %+v", g)
	}
}
