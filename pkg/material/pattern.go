package material

import (
	"fmt"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// PatternKind selects the procedural function a Pattern evaluates.
type PatternKind int

const (
	PatternStripe   PatternKind = iota // Alternate A and B along x
	PatternGradient                    // Blend A to B along x, repeating each unit
	PatternRing                        // Concentric rings in the xz plane
	PatternChecker                     // 3D checkerboard of unit cubes
	PatternTest                        // The pattern-space point as a color
)

var patternNames = map[PatternKind]string{
	PatternStripe:   "stripe",
	PatternGradient: "gradient",
	PatternRing:     "ring",
	PatternChecker:  "checker",
	PatternTest:     "test",
}

func (k PatternKind) String() string {
	if s, ok := patternNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// ParsePatternKind maps a name such as "checker" back to its kind.
func ParsePatternKind(name string) (PatternKind, error) {
	for k, s := range patternNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

// Pattern is a two-color procedural texture evaluated in its own space.
type Pattern struct {
	Kind PatternKind
	A, B Color

	transform math3d.Transform
}

// NewPattern creates a pattern with an identity transform.
func NewPattern(kind PatternKind, a, b Color) *Pattern {
	return &Pattern{Kind: kind, A: a, B: b}
}

// Stripes is shorthand for NewPattern(PatternStripe, a, b).
func Stripes(a, b Color) *Pattern { return NewPattern(PatternStripe, a, b) }

// Checkers is shorthand for NewPattern(PatternChecker, a, b).
func Checkers(a, b Color) *Pattern { return NewPattern(PatternChecker, a, b) }

// SetTransform places the pattern relative to the object it decorates.
func (p *Pattern) SetTransform(m math3d.Mat4) {
	p.transform.Set(m)
}

// Transform returns the pattern's object-to-pattern placement.
func (p *Pattern) Transform() math3d.Mat4 {
	return p.transform.Matrix()
}

// ColorAtObject converts an object-space point into pattern space and
// evaluates the pattern there.
func (p *Pattern) ColorAtObject(objectPoint math3d.Vec3) Color {
	return p.ColorAt(p.transform.InverseOrIdentity().MulVec3(objectPoint))
}

// ColorAt evaluates the pattern at a point already in pattern space.
func (p *Pattern) ColorAt(pt math3d.Vec3) Color {
	switch p.Kind {
	case PatternStripe:
		return p.pick(floorInt(pt.X))
	case PatternGradient:
		frac := pt.X - math.Floor(pt.X)
		return p.A.Add(p.B.Sub(p.A).Scale(frac))
	case PatternRing:
		return p.pick(floorInt(math.Hypot(pt.X, pt.Z)))
	case PatternChecker:
		return p.pick(floorInt(pt.X) + floorInt(pt.Y) + floorInt(pt.Z))
	case PatternTest:
		return Color{pt.X, pt.Y, pt.Z}
	default:
		return p.A
	}
}

// pick returns A for even n and B for odd n, negatives included.
func (p *Pattern) pick(n int) Color {
	if n%2 == 0 {
		return p.A
	}
	return p.B
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
