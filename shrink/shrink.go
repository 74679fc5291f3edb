// Package shrink decides, for every node of a cell, how far the extended
// ends of the wires meeting at that node retract.
//
// Wires drawn with full end extension overshoot each other at
// non-Manhattan junctions, leaving small tabs. The classifier looks at the
// directions of all extended wire ends at a node and reduces them to one
// Entry, which the arc builder turns into a per-layer extension with
// Extension.
package shrink

import (
	"fmt"
	"math"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/internal/geom"
)

// Kind is the shrink class of a node.
type Kind uint8

const (
	// NoShrink extends every wire end by its full half width.
	NoShrink Kind = iota

	// FullShrink does not extend any wire end.
	FullShrink

	// Partial45 extends Manhattan wire ends fully and retracts diagonal ones
	// to the 45 degree miter.
	Partial45

	// AllButOne extends every wire end except the one at Entry.Angle.
	AllButOne

	// Pair miters two wires meeting at an obtuse or acute angle; Entry.Angle
	// holds the sum of their directions.
	Pair
)

var kindNames = [...]string{
	NoShrink:   "none",
	FullShrink: "full",
	Partial45:  "partial-45",
	AllButOne:  "all-but-one",
	Pair:       "pair",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Entry is the resolved shrink class of one node.
type Entry struct {
	Kind Kind

	// Angle is the exception angle of AllButOne or the angle sum of Pair,
	// in tenths of a degree. It is zero for the other kinds.
	Angle int
}

// String returns a readable form like "pair(1350)".
func (e Entry) String() string {
	switch e.Kind {
	case AllButOne, Pair:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Angle)
	}
	return e.Kind.String()
}

// reduction records which three-angle reduction was applied to a node.
type reduction uint8

const (
	reducedNone reduction = iota
	reducedPartial45
	reducedException
)

// Accumulator collects the wire end directions at one node.
// The zero value is an empty accumulator.
type Accumulator struct {
	angles [2]int

	// count is the number of distinct angles; 3 means no clean reduction
	// exists and the node is not shrunk.
	count int

	nonManhattan bool
	notAll45     bool
	reduced      reduction
	exception    int
	full         bool

	// merged is the pair member folded away by a reduction. It still
	// counts as a seen direction.
	merged int
}

// AddZeroExtend records a wire without any extension at the node, which
// shrinks the node fully and ends accumulation.
func (a *Accumulator) AddZeroExtend() {
	a.full = true
}

// Add records an extended wire end leaving the node in direction angle.
func (a *Accumulator) Add(angle int) {
	if a.full || a.count >= 3 {
		return
	}
	angle = icgeom.NormAngle(angle)
	for i := 0; i < a.count; i++ {
		if a.angles[i] == angle {
			return
		}
	}
	if a.reduced != reducedNone && a.merged == angle {
		return
	}
	if !icgeom.IsManhattan(angle) {
		a.nonManhattan = true
	}
	if !icgeom.Is45(angle) {
		a.notAll45 = true
	}
	if a.count < 2 {
		a.angles[a.count] = angle
		a.count++
		return
	}
	if a.reduced != reducedNone || !a.nonManhattan {
		a.count = 3
		return
	}
	a.reduce(angle)
}

// reduce tries to fold a third distinct angle into the two accumulated ones.
// Two angles with the same residue modulo 90 degrees are collinear or
// perpendicular; if the third lies within 45 degrees of one of them the
// node keeps a clean class.
func (a *Accumulator) reduce(third int) {
	tri := [3]int{a.angles[0], a.angles[1], third}
	pairs := [3][3]int{{0, 1, 2}, {0, 2, 1}, {1, 2, 0}}
	for _, p := range pairs {
		ai, aj, ak := tri[p[0]], tri[p[1]], tri[p[2]]
		if ai%icgeom.RightAngle != aj%icgeom.RightAngle {
			continue
		}
		if min(icgeom.AngleDelta(ak, ai), icgeom.AngleDelta(ak, aj)) > icgeom.HalfRight {
			continue
		}
		if a.notAll45 {
			a.reduced = reducedException
			a.exception = ak
		} else {
			a.reduced = reducedPartial45
		}
		a.angles = [2]int{ai, ak}
		a.merged = aj
		a.count = 2
		return
	}
	a.count = 3
}

// Resolve returns the shrink class of the accumulated wire ends.
func (a *Accumulator) Resolve() Entry {
	switch {
	case a.full:
		return Entry{Kind: FullShrink}
	case a.count >= 3:
		return Entry{Kind: NoShrink}
	case a.reduced == reducedException:
		return Entry{Kind: AllButOne, Angle: a.exception}
	case a.reduced == reducedPartial45:
		return Entry{Kind: Partial45}
	case a.count == 2:
		return resolvePair(a.angles[0], a.angles[1])
	}
	return Entry{Kind: NoShrink}
}

func resolvePair(a0, a1 int) Entry {
	da := a0 - a1
	if da < 0 {
		da = -da
	}
	switch {
	case da == icgeom.RightAngle || da == 3*icgeom.RightAngle:
		return Entry{Kind: FullShrink}
	case da == icgeom.HalfCircle:
		return Entry{Kind: NoShrink}
	case icgeom.RightAngle < da && da < 3*icgeom.RightAngle:
		return Entry{Kind: Pair, Angle: (a0 + a1) % icgeom.FullCircle}
	}
	return Entry{Kind: NoShrink}
}

// tan225 is tan(22.5 degrees), the miter of a diagonal against a Manhattan
// neighbour at 135 degrees.
var tan225 = math.Tan(math.Pi / 8)

// Extension returns how far a wire end of half width w, leaving a node of
// class e in direction angle, protrudes past its location.
func Extension(e Entry, w icgeom.Coord, angle int) icgeom.Coord {
	angle = icgeom.NormAngle(angle)
	switch e.Kind {
	case FullShrink:
		return 0
	case Partial45:
		if icgeom.IsManhattan(angle) {
			return w
		}
		return icgeom.FromFloat(float64(w) * tan225)
	case AllButOne:
		if angle == e.Angle {
			return 0
		}
		return w
	case Pair:
		return ComputeExtension(w, angle, e.Angle-angle)
	}
	return w
}

// ComputeExtension returns the extension of a wire end of half width w,
// leaving its node in direction angle, that meets the outer edge of a
// neighbour of the same half width leaving in direction other.
//
// The miter point is the intersection of the two outer offset lines. The
// result is clamped to [0, w]; parallel directions give 0.
func ComputeExtension(w icgeom.Coord, angle, other int) icgeom.Coord {
	if w <= 0 {
		return 0
	}
	d := geom.Vec2{X: icgeom.Cos(angle), Y: icgeom.Sin(angle)}
	d2 := geom.Vec2{X: icgeom.Cos(other), Y: icgeom.Sin(other)}
	cross := d.Cross(d2)

	// The outer side of this wire faces away from the neighbour.
	s := 1.0
	if cross < 0 {
		s = -1
	}
	fw := float64(w)
	p := d.Perp().Scale(-s * fw)
	q := d2.Perp().Scale(s * fw)
	t, ok := geom.Param(p, d, q, d2)
	if !ok {
		icgeom.Logger().Debug("shrink: parallel miter, no extension",
			"angle", angle, "other", icgeom.NormAngle(other))
		return 0
	}
	ext := -t
	switch {
	case ext < 0:
		return 0
	case ext > fw:
		return w
	}
	return icgeom.FromFloat(ext)
}
