// Package geom provides the small floating-point solvers shared by the
// shrinkage classifier, the serpentine builder and the curved-arc builder.
//
// Inputs and outputs are raw Coord magnitudes held in float64; callers round
// back to fixed point at their boundary.
package geom

import "math"

// epsilon is the determinant below which two lines are treated as parallel.
const epsilon = 1e-9

// Vec2 is a 2D vector in raw Coord units.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Solve2x2 solves
//
//	a11*x + a12*y = b1
//	a21*x + a22*y = b2
//
// by Cramer's rule. ok is false when the determinant vanishes.
func Solve2x2(a11, a12, a21, a22, b1, b2 float64) (x, y float64, ok bool) {
	det := a11*a22 - a12*a21
	if math.Abs(det) < epsilon {
		return 0, 0, false
	}
	x = (b1*a22 - a12*b2) / det
	y = (a11*b2 - b1*a21) / det
	return x, y, true
}

// Intersect returns the intersection of the line through p with direction d
// and the line through q with direction e. ok is false for parallel lines.
func Intersect(p, d, q, e Vec2) (Vec2, bool) {
	// p + t*d = q + u*e  =>  t*d - u*e = q - p
	t, _, ok := Solve2x2(d.X, -e.X, d.Y, -e.Y, q.X-p.X, q.Y-p.Y)
	if !ok {
		return Vec2{}, false
	}
	return p.Add(d.Scale(t)), true
}

// Param returns t such that p + t*d meets the line through q with
// direction e. ok is false for parallel lines.
func Param(p, d, q, e Vec2) (float64, bool) {
	t, _, ok := Solve2x2(d.X, -e.X, d.Y, -e.Y, q.X-p.X, q.Y-p.Y)
	return t, ok
}

// CircleCenters returns the two centers of the circles of radius r through
// a and b. left lies to the left of the direction a->b and right to its
// right. ok is false when the points coincide or are further apart than the
// diameter.
func CircleCenters(r float64, a, b Vec2) (left, right Vec2, ok bool) {
	chord := b.Sub(a)
	half := chord.Length() / 2
	if half == 0 || half > r {
		return Vec2{}, Vec2{}, false
	}
	mid := a.Add(chord.Scale(0.5))
	h := math.Sqrt(r*r - half*half)
	n := chord.Perp().Scale(1 / (2 * half))
	return mid.Add(n.Scale(h)), mid.Sub(n.Scale(h)), true
}
