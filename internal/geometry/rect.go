package geometry

import "math"

// Rect is an absolute pixel rectangle in frame coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return !(o.Left > r.Right() || o.Right() < r.Left || o.Top > r.Bottom() || o.Bottom() < r.Top)
}

// CenterDistance returns the distance between the centers of r and o.
func (r Rect) CenterDistance(o Rect) float64 {
	ax, ay := r.Center()
	bx, by := o.Center()
	return math.Hypot(ax-bx, ay-by)
}
