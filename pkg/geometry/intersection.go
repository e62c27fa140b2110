package geometry

import (
	"cmp"
	"slices"
)

// Intersection is one crossing of a ray with a shape. Object is the shape's
// index in the world's object list.
type Intersection struct {
	T      float64
	Object int
}

// Intersections is a ledger of crossings kept in ascending T order.
type Intersections []Intersection

// NewIntersections collects xs and sorts them by T. Equal T values keep
// their argument order.
func NewIntersections(xs ...Intersection) Intersections {
	out := slices.Clone(Intersections(xs))
	out.Sort()
	return out
}

// Sort orders the ledger by T, stable for ties.
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the visible intersection: the one with the smallest positive
// T. ok is false when everything lies behind the ray origin.
func (xs Intersections) Hit() (hit Intersection, ok bool) {
	for _, x := range xs {
		if x.T > 0 && (!ok || x.T < hit.T) {
			hit, ok = x, true
		}
	}
	return hit, ok
}
