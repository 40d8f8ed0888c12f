// Package geom provides the 2D primitives shared by sensing, collision and
// rendering: vectors, axis-aligned rectangles, circles and segments.
package geom

import "math"

// parallelEpsilon is the smallest |denominator| accepted by SegmentIntersection.
const parallelEpsilon = 1e-4

// Vec2 is a point or displacement in world units (y grows downward).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// FromAngle returns a vector of the given length pointing along rad.
func FromAngle(rad, length float64) Vec2 {
	return Vec2{math.Cos(rad) * length, math.Sin(rad) * length}
}

// Segment is a line segment from A to B.
type Segment struct {
	A, B Vec2
}

// SegmentIntersection reports whether segments p1p2 and p3p4 intersect and
// where. Parallel or degenerate pairs never intersect.
func SegmentIntersection(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	s1 := p2.Sub(p1)
	s2 := p4.Sub(p3)

	denom := -s2.X*s1.Y + s1.X*s2.Y
	if math.Abs(denom) < parallelEpsilon {
		return Vec2{}, false
	}

	s := (-s1.Y*(p1.X-p3.X) + s1.X*(p1.Y-p3.Y)) / denom
	t := (s2.X*(p1.Y-p3.Y) - s2.Y*(p1.X-p3.X)) / denom

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Vec2{}, false
	}
	return p1.Add(s1.Scale(t)), true
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the rectangle centred on c with the given half extents.
func RectAround(c Vec2, halfW, halfH float64) Rect {
	return Rect{X: c.X - halfW, Y: c.Y - halfH, W: 2 * halfW, H: 2 * halfH}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{r.X + r.W, r.Y + r.H} }

// Center returns the centre point.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// Edges returns the boundary segments in order top, right, bottom, left.
func (r Rect) Edges() [4]Segment {
	tl := r.Min()
	br := r.Max()
	tr := Vec2{br.X, tl.Y}
	bl := Vec2{tl.X, br.Y}
	return [4]Segment{
		{tl, tr},
		{tr, br},
		{br, bl},
		{bl, tl},
	}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects reports whether r and o overlap with non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// IntersectsCircle reports whether r and c overlap.
func (r Rect) IntersectsCircle(c Circle) bool {
	nx := clamp(c.Center.X, r.X, r.X+r.W)
	ny := clamp(c.Center.Y, r.Y, r.Y+r.H)
	dx := c.Center.X - nx
	dy := c.Center.Y - ny
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Circle is a disc with a centre and radius.
type Circle struct {
	Center Vec2
	Radius float64
}

// Bounds returns the bounding box of c.
func (c Circle) Bounds() Rect {
	return RectAround(c.Center, c.Radius, c.Radius)
}

// WrapAngle wraps a radian angle into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
