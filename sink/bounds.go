package sink

import (
	"image/color"
	"math"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/tech"
)

// Bounds is a Sink that accumulates the bounding rectangle of every shape.
//
// Circular arcs contribute their true extent, including the axis extremes
// their sweep passes, and circles their full disc. Extremes computed in
// floating point are rounded outward so the rectangle always covers the
// shape.
type Bounds struct {
	r  icgeom.Rect
	ok bool
}

// Rect returns the accumulated rectangle. ok is false when nothing was
// emitted since the last Reset.
func (b *Bounds) Rect() (r icgeom.Rect, ok bool) {
	return b.r, b.ok
}

// Reset forgets all shapes.
func (b *Bounds) Reset() {
	*b = Bounds{}
}

// EmitPolygon folds the shape into the bounds.
func (b *Bounds) EmitPolygon(pts []icgeom.Point, style icgeom.Style, _ *tech.Layer, _ color.Color, _ *tech.PortProto) {
	switch {
	case style.IsArc() && len(pts) == 3:
		b.addArc(pts[0], pts[1], pts[2])
	case style.IsCircle() && len(pts) == 2:
		b.addCircle(pts[0], pts[1])
	default:
		for _, p := range pts {
			b.add(p)
		}
	}
}

// EmitBox folds the box into the bounds.
func (b *Bounds) EmitBox(_ *tech.Layer, box icgeom.Rect) {
	b.add(box.Min)
	b.add(box.Max)
}

func (b *Bounds) add(p icgeom.Point) {
	if !b.ok {
		b.r = icgeom.Rect{Min: p, Max: p}
		b.ok = true
		return
	}
	b.r.Min.X = min(b.r.Min.X, p.X)
	b.r.Min.Y = min(b.r.Min.Y, p.Y)
	b.r.Max.X = max(b.r.Max.X, p.X)
	b.r.Max.Y = max(b.r.Max.Y, p.Y)
}

func (b *Bounds) addCircle(c, rim icgeom.Point) {
	r := icgeom.Coord(math.Ceil(icgeom.Distance(c, rim)))
	b.add(icgeom.Point{X: c.X - r, Y: c.Y - r})
	b.add(icgeom.Point{X: c.X + r, Y: c.Y + r})
}

// addArc folds the counter-clockwise arc around c from s to e. Coincident
// ends describe a full circle.
func (b *Bounds) addArc(c, s, e icgeom.Point) {
	b.add(s)
	b.add(e)
	r := icgeom.Distance(c, s)
	a0 := math.Atan2(float64(s.Y-c.Y), float64(s.X-c.X))
	a1 := math.Atan2(float64(e.Y-c.Y), float64(e.X-c.X))
	sweep := normRadians(a1 - a0)
	full := s == e

	cx, cy := float64(c.X), float64(c.Y)
	for k := range 4 {
		axis := float64(k) * math.Pi / 2
		if !full && normRadians(axis-a0) > sweep {
			continue
		}
		switch k {
		case 0:
			b.add(icgeom.Point{X: roundUp(cx + r), Y: c.Y})
		case 1:
			b.add(icgeom.Point{X: c.X, Y: roundUp(cy + r)})
		case 2:
			b.add(icgeom.Point{X: roundDown(cx - r), Y: c.Y})
		case 3:
			b.add(icgeom.Point{X: c.X, Y: roundDown(cy - r)})
		}
	}
}

func normRadians(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// roundUp rounds f to the nearest Coord and grows one unit when that falls
// short of f.
func roundUp(f float64) icgeom.Coord {
	v := math.Round(f)
	if v < f {
		v++
	}
	return icgeom.Coord(v)
}

func roundDown(f float64) icgeom.Coord {
	v := math.Round(f)
	if v > f {
		v--
	}
	return icgeom.Coord(v)
}
