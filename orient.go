package icgeom

import (
	"fmt"
	"math"
)

// Orientation is a rotation by a multiple of a tenth of a degree, optionally
// preceded by a mirror that negates X.
//
// Orientation values are always in canonical form, so two Orientations that
// transform points identically compare equal and can be used as map keys.
// The zero value is the identity.
type Orientation struct {
	angle  int16
	mirror bool
}

// Ident is the identity orientation.
var Ident = Orientation{}

// Orient builds a canonical Orientation from a rotation and the two mirror
// flags. mirrorX negates X and mirrorY negates Y; both are applied before
// the rotation. Mirroring Y is the same as mirroring X and rotating by 180
// degrees, and mirroring both is a plain 180 degree rotation.
func Orient(angle int, mirrorX, mirrorY bool) Orientation {
	if mirrorY {
		angle += HalfCircle
	}
	// #nosec G115 -- NormAngle bounds the value to [0, 3600)
	return Orientation{angle: int16(NormAngle(angle)), mirror: mirrorX != mirrorY}
}

// Rotation returns the pure rotation by angle.
func Rotation(angle int) Orientation {
	return Orient(angle, false, false)
}

// Angle returns the rotation in tenths of a degree.
func (o Orientation) Angle() int { return int(o.angle) }

// Mirrored reports whether the orientation reverses handedness.
func (o Orientation) Mirrored() bool { return o.mirror }

// IsIdent reports whether o leaves every point unchanged.
func (o Orientation) IsIdent() bool { return o == Ident }

// IsManhattan reports whether o maps axis-aligned rectangles onto
// axis-aligned rectangles.
func (o Orientation) IsManhattan() bool { return int(o.angle)%RightAngle == 0 }

// Concat returns the orientation that applies inner first and then o.
// Concat is associative.
func (o Orientation) Concat(inner Orientation) Orientation {
	a := int(inner.angle)
	if o.mirror {
		a = -a
	}
	// #nosec G115 -- NormAngle bounds the value to [0, 3600)
	return Orientation{
		angle:  int16(NormAngle(int(o.angle) + a)),
		mirror: o.mirror != inner.mirror,
	}
}

// Inverse returns the orientation that undoes o.
// A mirrored orientation is its own inverse.
func (o Orientation) Inverse() Orientation {
	if o.mirror {
		return o
	}
	// #nosec G115 -- NormAngle bounds the value to [0, 3600)
	return Orientation{angle: int16(NormAngle(-int(o.angle)))}
}

// Transform applies o to p about the origin.
func (o Orientation) Transform(p Point) Point {
	if o.mirror {
		p.X = -p.X
	}
	switch o.angle {
	case 0:
		return p
	case RightAngle:
		return Point{X: -p.Y, Y: p.X}
	case HalfCircle:
		return Point{X: -p.X, Y: -p.Y}
	case 3 * RightAngle:
		return Point{X: p.Y, Y: -p.X}
	}
	c, s := Cos(int(o.angle)), Sin(int(o.angle))
	x, y := float64(p.X), float64(p.Y)
	return Point{
		X: Coord(math.Round(x*c - y*s)),
		Y: Coord(math.Round(x*s + y*c)),
	}
}

// TransformPoints applies o in place to every point about the origin.
func (o Orientation) TransformPoints(pts []Point) {
	if o.IsIdent() {
		return
	}
	for i := range pts {
		pts[i] = o.Transform(pts[i])
	}
}

// TransformRect applies a Manhattan orientation to r and returns the
// normalized result. Non-Manhattan orientations return the bounding box of
// the four transformed corners.
func (o Orientation) TransformRect(r Rect) Rect {
	corners := [4]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
	o.TransformPoints(corners[:])
	out := Rect{Min: corners[0], Max: corners[0]}
	for _, p := range corners[1:] {
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
	}
	return out
}

// String returns a readable representation like "R90" or "MX R180".
func (o Orientation) String() string {
	a := float64(o.angle) / 10
	if o.mirror {
		return fmt.Sprintf("MX R%g", a)
	}
	return fmt.Sprintf("R%g", a)
}
