// Package serpentine builds the outlines and ports of folded transistors
// whose gate follows a multi-segment path.
//
// Every layer of a serpentine template is offset to both sides of the gate
// path by its own left and right widths and extended past the path ends.
// Interior vertices are mitered exactly at the intersection of the offset
// lines of the two adjacent segments.
package serpentine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/internal/geom"
	"github.com/gogpu/icgeom/tech"
)

// Errors returned by Path.Validate and New.
var (
	ErrTooFewPoints      = errors.New("serpentine: path needs at least two points")
	ErrZeroLengthSegment = errors.New("serpentine: zero-length segment")
	ErrNotSerpentine     = errors.New("serpentine: template is not a serpentine transistor")
)

// Path is the gate center line, relative to the node anchor.
type Path []icgeom.Point

// Validate checks that p has at least two points and no zero-length segment.
func (p Path) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: has %d", ErrTooFewPoints, len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return fmt.Errorf("%w: between points %d and %d", ErrZeroLengthSegment, i-1, i)
		}
	}
	return nil
}

// Pusher receives the points of one shape and then finalizes it.
// shape.Builder implements Pusher.
type Pusher interface {
	PushPoint(p icgeom.Point)
	PushPoly(style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto)
}

// Transistor is a serpentine transistor ready to emit its layers and ports.
type Transistor struct {
	proto *tech.NodeProto
	path  Path

	// pts, dirs and norms are the path vertices, the unit direction of every
	// segment and its left normal, in Coord units.
	pts   []geom.Vec2
	dirs  []geom.Vec2
	norms []geom.Vec2

	extra     icgeom.Coord
	separated bool
	poly      *tech.NodeLayer
}

// New prepares a transistor. A positive gateLength widens every layer by
// half its difference to the template default.
//
// When the template has more than one poly layer, the field poly is drawn
// only as end caps past the path and the gate poly is not extended.
func New(np *tech.NodeProto, path Path, gateLength icgeom.Coord) (*Transistor, error) {
	if np.Kind != tech.KindSerpentine {
		return nil, fmt.Errorf("%w: %s", ErrNotSerpentine, np.Name)
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}
	t := &Transistor{proto: np, path: path}
	if gateLength > 0 {
		t.extra = (gateLength - np.Serpentine.DefaultGateLength) / 2
	}

	polys := 0
	for i := range np.Layers {
		if np.Layers[i].Layer.Function.IsPoly() {
			if t.poly == nil {
				t.poly = &np.Layers[i]
			}
			polys++
		}
	}
	t.separated = polys >= 2

	t.pts = make([]geom.Vec2, len(path))
	for i, p := range path {
		t.pts[i] = geom.Vec2{X: float64(p.X), Y: float64(p.Y)}
	}
	t.dirs = make([]geom.Vec2, len(path)-1)
	t.norms = make([]geom.Vec2, len(path)-1)
	for i := range t.dirs {
		d := t.pts[i+1].Sub(t.pts[i])
		d = d.Scale(1 / d.Length())
		t.dirs[i] = d
		t.norms[i] = d.Perp()
	}
	return t, nil
}

// Path returns the gate path.
func (t *Transistor) Path() Path { return t.path }

// Separated reports whether field poly and gate poly are drawn apart.
func (t *Transistor) Separated() bool { return t.separated }

// Extra returns the width added to both sides of every layer.
func (t *Transistor) Extra() icgeom.Coord { return t.extra }

// Outline emits layer i of the template with the given color override.
func (t *Transistor) Outline(i int, override color.Color, p Pusher) {
	nl := &t.proto.Layers[i]
	lw := float64(nl.LeftWidth + t.extra)
	rw := float64(nl.RightWidth + t.extra)
	te, he := float64(nl.TailExtend), float64(nl.HeadExtend)

	if t.separated {
		switch nl.Layer.Function {
		case tech.FuncPoly:
			t.endCaps(nl, lw, rw, te, he, override, p)
			return
		case tech.FuncGate:
			te, he = 0, 0
		}
	}

	left := t.offset(lw, te, he)
	right := t.offset(-rw, te, he)
	for _, v := range left {
		p.PushPoint(toPoint(v))
	}
	for k := len(right) - 1; k >= 0; k-- {
		p.PushPoint(toPoint(right[k]))
	}
	p.PushPoly(nl.Style, nl.Layer, override, nil)
}

// endCaps emits the field poly past both path ends as two rectangles.
func (t *Transistor) endCaps(nl *tech.NodeLayer, lw, rw, te, he float64, ov color.Color, p Pusher) {
	last := len(t.dirs) - 1
	if te > 0 {
		end := t.pts[0]
		t.rect(end.Sub(t.dirs[0].Scale(te)), end, t.norms[0], lw, rw, nl, ov, p)
	}
	if he > 0 {
		end := t.pts[len(t.pts)-1]
		t.rect(end, end.Add(t.dirs[last].Scale(he)), t.norms[last], lw, rw, nl, ov, p)
	}
}

func (t *Transistor) rect(a, b, n geom.Vec2, lw, rw float64, nl *tech.NodeLayer, ov color.Color, p Pusher) {
	p.PushPoint(toPoint(a.Add(n.Scale(lw))))
	p.PushPoint(toPoint(b.Add(n.Scale(lw))))
	p.PushPoint(toPoint(b.Sub(n.Scale(rw))))
	p.PushPoint(toPoint(a.Sub(n.Scale(rw))))
	p.PushPoly(nl.Style, nl.Layer, ov, nil)
}

// offset returns the path shifted by w along the left normals, with the
// first point pulled back by te and the last pushed forward by he.
func (t *Transistor) offset(w, te, he float64) []geom.Vec2 {
	n := len(t.pts)
	last := len(t.dirs) - 1
	out := make([]geom.Vec2, n)
	out[0] = t.pts[0].Sub(t.dirs[0].Scale(te)).Add(t.norms[0].Scale(w))
	out[n-1] = t.pts[n-1].Add(t.dirs[last].Scale(he)).Add(t.norms[last].Scale(w))
	for i := 1; i < n-1; i++ {
		a := t.pts[i].Add(t.norms[i-1].Scale(w))
		b := t.pts[i].Add(t.norms[i].Scale(w))
		v, ok := geom.Intersect(a, t.dirs[i-1], b, t.dirs[i])
		if !ok {
			v = b
		}
		out[i] = v
	}
	return out
}

// Port emits the port pp as an opened polyline along the path. It returns
// false when pp has no serpentine role; such ports keep their box.
func (t *Transistor) Port(pp *tech.PortProto, p Pusher) bool {
	sp := t.proto.Serpentine
	switch pp.Role {
	case tech.RolePolyTail, tech.RolePolyHead:
		var lw, rw float64
		if t.poly != nil {
			lw = float64(t.poly.LeftWidth + t.extra)
			rw = float64(t.poly.RightWidth + t.extra)
		}
		lw -= float64(sp.PolyInset)
		rw -= float64(sp.PolyInset)
		out := float64(sp.PolyOutset)

		var base, n geom.Vec2
		if pp.Role == tech.RolePolyTail {
			base = t.pts[0].Sub(t.dirs[0].Scale(out))
			n = t.norms[0]
		} else {
			last := len(t.dirs) - 1
			base = t.pts[len(t.pts)-1].Add(t.dirs[last].Scale(out))
			n = t.norms[last]
		}
		p.PushPoint(toPoint(base.Add(n.Scale(lw))))
		p.PushPoint(toPoint(base.Sub(n.Scale(rw))))
	case tech.RoleDiffLeft, tech.RoleDiffRight, tech.RoleCenter:
		w := float64(sp.DiffPortWidth)
		switch pp.Role {
		case tech.RoleDiffRight:
			w = -w
		case tech.RoleCenter:
			w = 0
		}
		for _, v := range t.offset(w, 0, 0) {
			p.PushPoint(toPoint(v))
		}
	default:
		return false
	}
	p.PushPoly(icgeom.StyleOpened, nil, nil, pp)
	return true
}

func toPoint(v geom.Vec2) icgeom.Point {
	return icgeom.Point{X: icgeom.FromFloat(v.X), Y: icgeom.FromFloat(v.Y)}
}
