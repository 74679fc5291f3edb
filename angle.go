package icgeom

import "math"

// Angles are measured in tenths of a degree, counter-clockwise from the
// positive X axis, and normalized to [0, FullCircle).
const (
	FullCircle  = 3600
	HalfCircle  = 1800
	RightAngle  = 900
	HalfRight   = 450
	tenthRadian = math.Pi / HalfCircle
)

// NormAngle folds any angle into [0, FullCircle).
func NormAngle(a int) int {
	a %= FullCircle
	if a < 0 {
		a += FullCircle
	}
	return a
}

// OppositeAngle returns the angle pointing the other way.
func OppositeAngle(a int) int {
	return NormAngle(a + HalfCircle)
}

// IsManhattan reports whether a is a multiple of 90 degrees.
func IsManhattan(a int) bool {
	return NormAngle(a)%RightAngle == 0
}

// Is45 reports whether a is a multiple of 45 degrees.
func Is45(a int) bool {
	return NormAngle(a)%HalfRight == 0
}

// AngleDelta returns the smallest unsigned difference between two angles,
// in [0, HalfCircle].
func AngleDelta(a, b int) int {
	d := NormAngle(a - b)
	if d > HalfCircle {
		d = FullCircle - d
	}
	return d
}

// FigureAngle returns the direction of the vector (dx, dy), rounded to the
// nearest tenth of a degree. The zero vector has angle 0.
func FigureAngle(dx, dy Coord) int {
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dy == 0:
		if dx > 0 {
			return 0
		}
		return HalfCircle
	case dx == 0:
		if dy > 0 {
			return RightAngle
		}
		return 3 * RightAngle
	}
	a := math.Atan2(float64(dy), float64(dx)) / tenthRadian
	return NormAngle(int(math.Round(a)))
}

// Cos returns the cosine of an angle in tenths of a degree.
// Multiples of 90 degrees are exact.
func Cos(a int) float64 {
	switch NormAngle(a) {
	case 0:
		return 1
	case RightAngle, 3 * RightAngle:
		return 0
	case HalfCircle:
		return -1
	}
	return math.Cos(float64(a) * tenthRadian)
}

// Sin returns the sine of an angle in tenths of a degree.
// Multiples of 90 degrees are exact.
func Sin(a int) float64 {
	switch NormAngle(a) {
	case 0, HalfCircle:
		return 0
	case RightAngle:
		return 1
	case 3 * RightAngle:
		return -1
	}
	return math.Sin(float64(a) * tenthRadian)
}

// Polar returns the offset of length d in direction a, rounded to Coord.
// Manhattan directions are exact.
func Polar(d Coord, a int) Point {
	switch NormAngle(a) {
	case 0:
		return Point{X: d}
	case RightAngle:
		return Point{Y: d}
	case HalfCircle:
		return Point{X: -d}
	case 3 * RightAngle:
		return Point{Y: -d}
	}
	return Point{
		X: FromFloat(float64(d) * Cos(a)),
		Y: FromFloat(float64(d) * Sin(a)),
	}
}
