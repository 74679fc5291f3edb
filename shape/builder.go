// Package shape turns technology templates and placed instances into
// emitted polygons.
//
// A Builder is the synthesis context: it owns the point buffer, knows the
// node or wire being drawn, and pushes every finished shape through the
// transform pipeline into a sink.Sink. Builders are not safe for concurrent
// use; keep one per goroutine and reuse it, or let Generate do that.
//
//	rec := sink.NewRecorder()
//	b := shape.NewBuilder(rec, shape.WithReasonable())
//	b.ShapeOfCell(c)
package shape

import (
	"fmt"
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

// Builder synthesizes shapes into a sink.
type Builder struct {
	buf  Buffer
	sink sink.Sink
	opts options

	// node and arc are the instance being drawn, if any.
	node *cell.NodeInst
	arc  *cell.ArcInst

	table   *shrink.Table
	emitted int

	// layers is scratch for the layer indices of the wire being drawn.
	layers []int
}

// NewBuilder creates a builder emitting into s.
func NewBuilder(s sink.Sink, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{sink: s, opts: o}
}

// SetSink redirects output.
func (b *Builder) SetSink(s sink.Sink) { b.sink = s }

// SetShrinkTable sets the table ShapeOfArc consults. With a nil table, wire
// ends are extended exactly as their flags say.
func (b *Builder) SetShrinkTable(t *shrink.Table) { b.table = t }

// Emitted returns the number of shapes emitted so far.
func (b *Builder) Emitted() int { return b.emitted }

// PushPoint appends a point to the shape under construction.
func (b *Builder) PushPoint(p icgeom.Point) { b.buf.Push(p) }

// PushXY appends a point given by its coordinates.
func (b *Builder) PushXY(x, y icgeom.Coord) { b.buf.Push(icgeom.Point{X: x, Y: y}) }

// PushPoly finishes the shape under construction and emits it.
//
// The points are first taken from node to cell coordinates: rotated about
// the node origin by the node orientation and translated to its anchor.
// The cell orientation, if any, is then applied about the cell origin.
// A filled axis-aligned quadrilateral without color override or port is
// emitted as a box.
//
// PushPoly panics when the point count does not match a fixed-count style
// or when a color override targets a layer that forbids one.
func (b *Builder) PushPoly(style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto) {
	defer b.buf.Reset()
	pts := b.buf.Points()
	if n := style.PointCount(); n != 0 && len(pts) != n {
		panic(fmt.Sprintf("shape: style %s needs %d points, has %d", style, n, len(pts)))
	}
	if override != nil && layer != nil && layer.NoOverride {
		panic("shape: color override on layer " + layer.Name)
	}
	if len(pts) == 0 {
		return
	}

	if n := b.node; n != nil {
		orient(n.Orient, pts, style)
		for i := range pts {
			pts[i] = pts[i].Add(n.Anchor)
		}
	}
	orient(b.opts.cellOrient, pts, style)

	b.emitted++
	if style == icgeom.StyleFilled && override == nil && port == nil {
		if box, ok := boxOf(pts); ok {
			b.sink.EmitBox(layer, box)
			return
		}
	}
	b.sink.EmitPolygon(pts, style, layer, override, port)
}

// orient applies o to pts in place. Mirroring reverses the sweep of a
// counter-clockwise arc, so its start and end swap.
func orient(o icgeom.Orientation, pts []icgeom.Point, style icgeom.Style) {
	if o.IsIdent() {
		return
	}
	o.TransformPoints(pts)
	if style.IsArc() && o.Mirrored() {
		pts[1], pts[2] = pts[2], pts[1]
	}
}

// boxOf reports whether four points form an axis-aligned rectangle, in
// either winding, and returns it.
func boxOf(pts []icgeom.Point) (icgeom.Rect, bool) {
	if len(pts) != 4 {
		return icgeom.Rect{}, false
	}
	p0, p1, p2, p3 := pts[0], pts[1], pts[2], pts[3]
	horizontalFirst := p0.Y == p1.Y && p1.X == p2.X && p2.Y == p3.Y && p3.X == p0.X
	verticalFirst := p0.X == p1.X && p1.Y == p2.Y && p2.X == p3.X && p3.Y == p0.Y
	if !horizontalFirst && !verticalFirst {
		return icgeom.Rect{}, false
	}
	return icgeom.Box(min(p0.X, p2.X), min(p0.Y, p2.Y), max(p0.X, p2.X), max(p0.Y, p2.Y)), true
}

// pushRect pushes the corners of a rectangle given in order, closing the
// outline for open styles.
func (b *Builder) pushRect(c [4]icgeom.Point, style icgeom.Style) {
	for _, p := range c {
		b.buf.Push(p)
	}
	if style.IsOpened() {
		b.buf.Push(c[0])
	}
}

// pushBox pushes the corners of r counter-clockwise from its minimum.
func (b *Builder) pushBox(r icgeom.Rect, style icgeom.Style) {
	b.pushRect([4]icgeom.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}, style)
}

// overrideFor returns c when the layer accepts a color override.
func overrideFor(c color.Color, layer *tech.Layer) color.Color {
	if c == nil || layer == nil || layer.NoOverride {
		return nil
	}
	return c
}

// wanted reports whether shapes on l pass the function filter.
func (b *Builder) wanted(l *tech.Layer) bool {
	return l != nil && b.opts.functions.Contains(l.Function)
}
