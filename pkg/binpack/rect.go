// Package binpack packs rectangular UV footprints into a square texture atlas
// using the MAXRECTS Best-Short-Side-Fit heuristic, and produces the affine
// UV transform each packed footprint needs.
package binpack

// Rect is an axis-aligned rectangle in atlas space.
type Rect struct {
	X, Y          float64
	Width, Height float64
	// Rotated is set when the rectangle was placed turned by 90°, so Width
	// and Height are swapped relative to the request.
	Rotated bool
}

// Contains reports whether r fully contains o.
func (r Rect) Contains(o Rect) bool {
	return r.X <= o.X &&
		r.Y <= o.Y &&
		r.X+r.Width >= o.X+o.Width &&
		r.Y+r.Height >= o.Y+o.Height
}

// DisjointFrom reports whether r and o share no interior area.
// Touching edges count as disjoint.
func (r Rect) DisjointFrom(o Rect) bool {
	return r.X+r.Width <= o.X ||
		r.Y+r.Height <= o.Y ||
		o.X+o.Width <= r.X ||
		o.Y+o.Height <= r.Y
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.DisjointFrom(o)
}

// Area returns Width * Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}
