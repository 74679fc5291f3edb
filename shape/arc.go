package shape

import (
	"image/color"
	"math"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/internal/geom"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/tech"
)

const (
	// maxPieces is the largest number of segments a curved wire is split
	// into.
	maxPieces = 16

	// arrowSpread is the angle between an arrow stroke and the wire.
	arrowSpread = 300
)

// ShapeOfArc emits every wanted layer of a and returns the number of
// shapes emitted.
//
// Each layer is a rectangle around the centerline, half as wide as the
// layer and extended past each end by the amount the shrink table allows.
// A wire without any extension on a single layer is a plain line.
// Negated ends get a bubble, and arrowed ends and bodies get arrowheads.
// Curvable wires with a radius are drawn as a ring segment.
func (b *Builder) ShapeOfArc(a *cell.ArcInst) int {
	start := b.emitted
	b.arc = a
	defer func() { b.arc = nil }()

	ap := a.Proto
	layers := b.arcLayers(ap)
	if len(layers) == 0 {
		return 0
	}
	first := &ap.Layers[layers[0]]
	ov := overrideFor(a.Color, first.Layer)

	negated := a.Tail.Negated || a.Head.Negated
	arrowed := !b.opts.noArrows && (a.Tail.Arrowed || a.Head.Arrowed || a.BodyArrowed)
	cv, curved := b.curveOf(a)

	if !negated && !arrowed && !curved && len(layers) == 1 && a.ExtendOverMin+ap.MaxLayerExtend() == 0 {
		b.buf.Push(a.Tail.Location)
		b.buf.Push(a.Head.Location)
		b.PushPoly(icgeom.StyleOpened, first.Layer, ov, nil)
		return b.emitted - start
	}

	// Directions pointing from each end into the wire. Curved wires use
	// the tangent at the end.
	tailDir, headDir := a.Angle, icgeom.OppositeAngle(a.Angle)
	if curved {
		td, hd := cv.tangent(cv.fromHead), cv.tangent(!cv.fromHead)
		if cv.foreshorten(a.Tail.Negated, a.Head.Negated, float64(ap.BubbleSize)) {
			tailDir, headDir = td, hd
		} else {
			icgeom.Logger().Debug("shape: curved wire too short for its bubbles", "arc", a.Name)
			curved = false
		}
	}

	tail, head := a.Tail.Location, a.Head.Location
	if a.Tail.Negated {
		tail = tail.Add(icgeom.Polar(ap.BubbleSize, tailDir))
	}
	if a.Head.Negated {
		head = head.Add(icgeom.Polar(ap.BubbleSize, headDir))
	}
	for _, i := range layers {
		al := &ap.Layers[i]
		w := max(a.ExtendOverMin+al.Extend, 0)
		lov := overrideFor(a.Color, al.Layer)
		if curved {
			b.pushCurve(cv, w, al, lov)
			continue
		}
		b.straight(a, tail, head, w, al, lov)
	}

	if a.Tail.Negated {
		b.bubble(a.Tail.Location, tailDir, ap.BubbleSize, first.Layer, ov)
	}
	if a.Head.Negated {
		b.bubble(a.Head.Location, headDir, ap.BubbleSize, first.Layer, ov)
	}
	if arrowed {
		back := a.Angle + icgeom.HalfCircle
		if a.Tail.Arrowed {
			b.arrow(a.Tail.Location, tailDir, ap.ArrowSize, first.Layer, ov)
		}
		if a.Head.Arrowed {
			b.arrow(a.Head.Location, headDir, ap.ArrowSize, first.Layer, ov)
		}
		if a.BodyArrowed {
			mid := icgeom.Point{
				X: (a.Tail.Location.X + a.Head.Location.X) / 2,
				Y: (a.Tail.Location.Y + a.Head.Location.Y) / 2,
			}
			b.arrow(mid, back, ap.ArrowSize, first.Layer, ov)
		}
	}
	return b.emitted - start
}

// arcLayers returns the indices of the layers of ap to draw. The slice is
// reused by the next call.
func (b *Builder) arcLayers(ap *tech.ArcProto) []int {
	b.layers = b.layers[:0]
	if t := b.opts.electrical; t != nil {
		for _, i := range t.ElectricalLayers(ap) {
			if b.wanted(ap.Layers[i].Layer) {
				b.layers = append(b.layers, i)
			}
		}
		return b.layers
	}
	for i := range ap.Layers {
		if b.wanted(ap.Layers[i].Layer) {
			b.layers = append(b.layers, i)
		}
	}
	return b.layers
}

// endExtension returns how far the layer of half width w protrudes past
// the tail or head of a.
func (b *Builder) endExtension(a *cell.ArcInst, head bool, w icgeom.Coord) icgeom.Coord {
	end := &a.Tail
	if head {
		end = &a.Head
	}
	if !end.Extended || end.Negated {
		return 0
	}
	if b.table == nil {
		return w
	}
	return shrink.Extension(b.table.Get(end.Node), w, a.EndAngle(head))
}

// straight emits one layer of a straight wire running from tail to head.
func (b *Builder) straight(a *cell.ArcInst, tail, head icgeom.Point, w icgeom.Coord, al *tech.ArcLayer, ov color.Color) {
	p0 := tail.Sub(icgeom.Polar(b.endExtension(a, false, w), a.Angle))
	p1 := head.Add(icgeom.Polar(b.endExtension(a, true, w), a.Angle))
	if w == 0 {
		b.buf.Push(p0)
		b.buf.Push(p1)
		b.PushPoly(icgeom.StyleOpened, al.Layer, ov, nil)
		return
	}
	perp := icgeom.Polar(w, a.Angle+icgeom.RightAngle)
	b.pushRect([4]icgeom.Point{
		p0.Add(perp),
		p1.Add(perp),
		p1.Sub(perp),
		p0.Sub(perp),
	}, al.Style)
	b.PushPoly(al.Style, al.Layer, ov, nil)
}

// bubble emits the negation circle touching end and lying along dir.
func (b *Builder) bubble(end icgeom.Point, dir int, size icgeom.Coord, layer *tech.Layer, ov color.Color) {
	b.buf.Push(end.Add(icgeom.Polar(size/2, dir)))
	b.buf.Push(end)
	b.PushPoly(icgeom.StyleCircle, layer, ov, nil)
}

// arrow emits two strokes from tip, spread around direction back.
func (b *Builder) arrow(tip icgeom.Point, back int, size icgeom.Coord, layer *tech.Layer, ov color.Color) {
	b.buf.Push(tip)
	b.buf.Push(tip.Add(icgeom.Polar(size, back+arrowSpread)))
	b.buf.Push(tip)
	b.buf.Push(tip.Add(icgeom.Polar(size, back-arrowSpread)))
	b.PushPoly(icgeom.StyleVectors, layer, ov, nil)
}

// curve is the circle segment a curved wire follows, swept
// counter-clockwise from start.
type curve struct {
	center       geom.Vec2
	r            float64
	start, sweep float64
	pieces       int

	// fromHead is set when the sweep starts at the head.
	fromHead bool
}

// curveOf returns the smaller circle segment of radius |a.Radius| joining
// the wire ends. A positive radius puts the center on the left of the
// direction from tail to head. ok is false for straight wires and for
// radii too small to span the ends.
func (b *Builder) curveOf(a *cell.ArcInst) (curve, bool) {
	if !a.Proto.Curvable || a.Radius == 0 {
		return curve{}, false
	}
	t, h := vec(a.Tail.Location), vec(a.Head.Location)
	r := math.Abs(float64(a.Radius))
	left, right, ok := geom.CircleCenters(r, t, h)
	if !ok {
		icgeom.Logger().Debug("shape: curved wire drawn straight",
			"arc", a.Name, "radius", icgeom.ToLambda(a.Radius), "length", icgeom.ToLambda(icgeom.FromFloat(a.Length())))
		return curve{}, false
	}

	from, to, c := t, h, left
	if a.Radius < 0 {
		from, to, c = h, t, right
	}
	start := math.Atan2(from.Y-c.Y, from.X-c.X)
	sweep := math.Atan2(to.Y-c.Y, to.X-c.X) - start
	if sweep < 0 {
		sweep += 2 * math.Pi
	}

	tenths := int(math.Round(sweep * icgeom.HalfCircle / math.Pi))
	pieces := maxPieces
	for pieces > 1 && tenths%pieces != 0 {
		pieces /= 2
	}
	return curve{center: c, r: r, start: start, sweep: sweep, pieces: pieces, fromHead: a.Radius < 0}, true
}

// tangent returns the direction, in tenths of a degree, pointing into the
// curve at its first point or, when atEnd is set, at its last point.
func (cv curve) tangent(atEnd bool) int {
	theta := cv.start + math.Pi/2
	if atEnd {
		theta = cv.start + cv.sweep - math.Pi/2
	}
	return icgeom.NormAngle(int(math.Round(theta * icgeom.HalfCircle / math.Pi)))
}

// foreshorten pulls the negated ends of the curve back along the circle so
// they lie size away from the original ends. It returns false, leaving the
// curve unchanged, when nothing would remain.
func (cv *curve) foreshorten(tail, head bool, size float64) bool {
	first, last := tail, head
	if cv.fromHead {
		first, last = head, tail
	}
	var a0, a1 float64
	if first {
		a0 = chordAngle(size, cv.r)
	}
	if last {
		a1 = chordAngle(size, cv.r)
	}
	if a0+a1 >= cv.sweep {
		return false
	}
	cv.start += a0
	cv.sweep -= a0 + a1
	return true
}

// chordAngle returns the angle subtended by a chord of length d on a circle
// of radius r.
func chordAngle(d, r float64) float64 {
	if d >= 2*r {
		return math.Pi
	}
	return 2 * math.Asin(d/(2*r))
}

// at returns the point at radius r after k of the curve's pieces.
func (cv curve) at(k int, r float64) icgeom.Point {
	theta := cv.start + cv.sweep*float64(k)/float64(cv.pieces)
	return icgeom.Point{
		X: icgeom.FromFloat(cv.center.X + r*math.Cos(theta)),
		Y: icgeom.FromFloat(cv.center.Y + r*math.Sin(theta)),
	}
}

// pushCurve emits one layer of a curved wire: the inner edge forward and
// the outer edge back, or the centerline alone for a zero-width layer.
func (b *Builder) pushCurve(cv curve, w icgeom.Coord, al *tech.ArcLayer, ov color.Color) {
	if w == 0 {
		for k := 0; k <= cv.pieces; k++ {
			b.buf.Push(cv.at(k, cv.r))
		}
		b.PushPoly(icgeom.StyleOpened, al.Layer, ov, nil)
		return
	}
	inner := max(cv.r-float64(w), 0)
	outer := cv.r + float64(w)
	for k := 0; k <= cv.pieces; k++ {
		b.buf.Push(cv.at(k, inner))
	}
	for k := cv.pieces; k >= 0; k-- {
		b.buf.Push(cv.at(k, outer))
	}
	if al.Style.IsOpened() {
		b.buf.Push(cv.at(0, inner))
	}
	b.PushPoly(al.Style, al.Layer, ov, nil)
}

func vec(p icgeom.Point) geom.Vec2 {
	return geom.Vec2{X: float64(p.X), Y: float64(p.Y)}
}
