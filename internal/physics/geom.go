// Package physics implements the traversal core of magboots: force integration,
// magnetic fields, AABB collision resolution and the falling/grounded/sticking
// state machine. It performs no I/O and has no knowledge of rendering or input
// devices; collaborators plug in through the interfaces in ports.go.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector in world pixels (Y grows downward).
type Vec2 = mgl64.Vec2

// V is shorthand for building a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Normalize returns the unit vector of v.
// The zero vector normalizes to the zero vector instead of NaN.
func Normalize(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// IsFinite reports whether both components are neither NaN nor Inf.
func IsFinite(v Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) &&
		!math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}

// Rect is an axis-aligned bounding box. X, Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is shorthand for building a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.X += d[0]
	r.Y += d[1]
	return r
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Epsilon is the overlap depth below which rectangles count as touching
// rather than intersecting. It absorbs rounding after a push-out.
const Epsilon = 1e-7

// Intersects returns true if the rectangles overlap by more than Epsilon on
// both axes. Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right()-Epsilon || o.X >= r.Right()-Epsilon {
		return false
	}
	if r.Y >= o.Bottom()-Epsilon || o.Y >= r.Bottom()-Epsilon {
		return false
	}
	return true
}

// Penetration returns the signed translation on each axis that would move r
// out of o along that axis alone, choosing the shorter way out per axis.
// Both components are zero when the rectangles do not intersect.
func (r Rect) Penetration(o Rect) Vec2 {
	if !r.Intersects(o) {
		return Vec2{}
	}

	var p Vec2

	// Push left vs push right
	left := r.Right() - o.X
	right := o.Right() - r.X
	if left <= right {
		p[0] = -left
	} else {
		p[0] = right
	}

	// Push up vs push down
	up := r.Bottom() - o.Y
	down := o.Bottom() - r.Y
	if up <= down {
		p[1] = -up
	} else {
		p[1] = down
	}

	return p
}

// ClampF restricts a value to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
