package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/multicut"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

var (
	diff = &tech.Layer{Name: "diff", Function: tech.FuncDiff}
	poly = &tech.Layer{Name: "poly", Function: tech.FuncPoly}
	gate = &tech.Layer{Name: "gate", Function: tech.FuncGate}
)

func node(np *tech.NodeProto, anchor, size icgeom.Point, o icgeom.Orientation) *cell.NodeInst {
	return &cell.NodeInst{Name: np.Name, Proto: np, Anchor: anchor, Size: size, Orient: o}
}

func pinProto() *tech.NodeProto {
	return &tech.NodeProto{
		Name: "pin",
		Layers: []tech.NodeLayer{
			{Layer: metal, Rep: tech.RepBox, Points: tech.Centered(g(1), g(2), g(3), g(4))},
		},
		Ports: []*tech.PortProto{{Name: "p", Points: tech.Centered(0, 0, 0, 0)}},
	}
}

func contactProto() *tech.NodeProto {
	return &tech.NodeProto{
		Name: "contact",
		Layers: []tech.NodeLayer{
			{Layer: metal, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0)},
			{
				Layer:  contact,
				Rep:    tech.RepMultiCut,
				Points: tech.Centered(g(1), g(1), g(1), g(1)),
				Cut:    &multicut.Params{SizeX: g(2), SizeY: g(2), Sep1D: g(2), Sep2D: g(2)},
			},
		},
	}
}

func TestNodeBoxMatchesEdgeFormulas(t *testing.T) {
	size := icgeom.PtGrid(10, 20)
	for _, anchor := range []icgeom.Point{{}, icgeom.PtGrid(3, -4)} {
		rec := sink.NewRecorder()
		np := pinProto()
		n := node(np, anchor, size, icgeom.Ident)

		require.Equal(t, 1, NewBuilder(rec).ShapeOfNode(n))
		s := rec.Shapes()[0]
		require.True(t, s.Box)

		want := np.Layers[0].Box(size)
		want.Min = want.Min.Add(anchor)
		want.Max = want.Max.Add(anchor)
		assert.Equal(t, want, s.Rect())
		assert.Equal(t, icgeom.Box(g(-4)+anchor.X, g(-8)+anchor.Y, g(2)+anchor.X, g(6)+anchor.Y), s.Rect())
	}
}

func TestNodeRotatedBox(t *testing.T) {
	rec := sink.NewRecorder()
	np := &tech.NodeProto{
		Name:   "bar",
		Layers: []tech.NodeLayer{{Layer: metal, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0)}},
	}
	NewBuilder(rec).ShapeOfNode(node(np, icgeom.Point{}, icgeom.PtGrid(10, 4), icgeom.Rotation(900)))

	s := rec.Shapes()[0]
	require.True(t, s.Box)
	assert.Equal(t, icgeom.Box(g(-2), g(-5), g(2), g(5)), s.Rect())
}

func TestNodePointsLayer(t *testing.T) {
	rec := sink.NewRecorder()
	np := &tech.NodeProto{
		Name: "mark",
		Layers: []tech.NodeLayer{{
			Layer: metal,
			Style: icgeom.StyleDisc,
			Rep:   tech.RepPoints,
			Points: []tech.EdgePoint{
				{},
				{X: tech.Edge{Multiplier: 0.5}},
			},
		}},
	}
	NewBuilder(rec).ShapeOfNode(node(np, icgeom.PtGrid(1, 1), icgeom.PtGrid(4, 4), icgeom.Ident))

	s := rec.Shapes()[0]
	assert.Equal(t, icgeom.StyleDisc, s.Style)
	assert.Equal(t, []icgeom.Point{icgeom.PtGrid(1, 1), icgeom.PtGrid(3, 1)}, s.Points)
}

func TestNodeMultiCut(t *testing.T) {
	size := icgeom.PtGrid(22, 22)

	rec := sink.NewRecorder()
	n := node(contactProto(), icgeom.Point{}, size, icgeom.Ident)
	// One metal box and a 5x5 grid of cuts.
	assert.Equal(t, 1+25, NewBuilder(rec).ShapeOfNode(n))

	rec.Reset()
	assert.Equal(t, 1+16, NewBuilder(rec, WithReasonable()).ShapeOfNode(n))
	for _, s := range rec.Shapes()[1:] {
		r := s.Rect()
		ring := r.Min.X == g(-9) || r.Max.X == g(9) || r.Min.Y == g(-9) || r.Max.Y == g(9)
		assert.True(t, ring, "cut %v is not on the perimeter", r)
		assert.Same(t, contact, s.Layer)
	}
}

func TestNodeMultiCutOverrides(t *testing.T) {
	b := NewBuilder(sink.NewRecorder())
	n := node(contactProto(), icgeom.Point{}, icgeom.PtGrid(22, 22), icgeom.Ident)

	_, ok := b.CutLayout(n, 0)
	assert.False(t, ok)

	l, ok := b.CutLayout(n, 1)
	require.True(t, ok)
	assert.Equal(t, 25, l.Total())
	assert.Equal(t, multicut.AlignCenter, l.Alignment)

	corner := multicut.AlignCorner
	n.CutAlignment = &corner
	n.CutSpacing = g(4)
	l, _ = b.CutLayout(n, 1)
	assert.Equal(t, 16, l.Total())
	assert.Equal(t, multicut.AlignCorner, l.Alignment)
	assert.Equal(t, g(-10), l.Cut(0).Min.X, "corner alignment starts at the region edge")
}

func TestNodeFunctionFilter(t *testing.T) {
	rec := sink.NewRecorder()
	n := node(contactProto(), icgeom.Point{}, icgeom.PtGrid(22, 22), icgeom.Ident)

	NewBuilder(rec, WithFunctions(tech.NewFunctionSet(tech.FuncContact))).ShapeOfNode(n)
	assert.Equal(t, 25, rec.Len())
	for _, s := range rec.Shapes() {
		assert.Same(t, contact, s.Layer)
	}
}

func TestNodeColorOverride(t *testing.T) {
	np := &tech.NodeProto{
		Name: "two",
		Layers: []tech.NodeLayer{
			{Layer: metal, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0)},
			{Layer: frozen, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0)},
		},
	}
	n := node(np, icgeom.Point{}, icgeom.PtGrid(2, 2), icgeom.Ident)
	n.Color = red

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfNode(n)
	require.Equal(t, 2, rec.Len())
	assert.False(t, rec.Shapes()[0].Box, "overridden shapes keep their polygon")
	assert.Equal(t, red, rec.Shapes()[0].Override)
	assert.True(t, rec.Shapes()[1].Box)
	assert.Nil(t, rec.Shapes()[1].Override)
}

func TestNodePolygonalTrace(t *testing.T) {
	np := &tech.NodeProto{
		Name:   "blob",
		Kind:   tech.KindPolygonal,
		Layers: []tech.NodeLayer{{Layer: metal, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0)}},
	}
	n := node(np, icgeom.PtGrid(10, 10), icgeom.PtGrid(4, 4), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(4, 0), icgeom.PtGrid(0, 3)}

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfNode(n)
	want := []icgeom.Point{icgeom.PtGrid(10, 10), icgeom.PtGrid(14, 10), icgeom.PtGrid(10, 13)}
	assert.Equal(t, want, rec.Shapes()[0].Points)

	// Without a trace the box is drawn.
	n.Trace = nil
	rec.Reset()
	NewBuilder(rec).ShapeOfNode(n)
	assert.Equal(t, icgeom.Box(g(8), g(8), g(12), g(12)), rec.Shapes()[0].Rect())
}

func transistorProto(polys ...*tech.Layer) *tech.NodeProto {
	np := &tech.NodeProto{
		Name: "nmos",
		Kind: tech.KindSerpentine,
		Layers: []tech.NodeLayer{
			{Layer: diff, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0), LeftWidth: g(4), RightWidth: g(4)},
		},
		Ports: []*tech.PortProto{
			{Name: "g0", Role: tech.RolePolyTail, Points: tech.Centered(0, 0, 0, 0)},
			{Name: "c", Role: tech.RoleCenter, Points: tech.Centered(0, 0, 0, 0)},
		},
		DefaultSize: icgeom.PtGrid(10, 8),
		Serpentine:  tech.SerpentineParams{DefaultGateLength: g(2), PolyOutset: g(1)},
	}
	for _, l := range polys {
		np.Layers = append(np.Layers, tech.NodeLayer{
			Layer: l, Rep: tech.RepBox, Points: tech.Centered(0, 0, 0, 0),
			LeftWidth: g(1), RightWidth: g(1), TailExtend: g(2), HeadExtend: g(2),
		})
	}
	return np
}

func TestNodeSerpentine(t *testing.T) {
	n := node(transistorProto(gate), icgeom.PtGrid(100, 0), icgeom.PtGrid(10, 8), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 0)}

	rec := sink.NewRecorder()
	require.Equal(t, 2, NewBuilder(rec).ShapeOfNode(n))
	assert.Equal(t, icgeom.Box(g(100), g(-4), g(110), g(4)), rec.Shapes()[0].Rect())
	assert.Equal(t, icgeom.Box(g(98), g(-1), g(112), g(1)), rec.Shapes()[1].Rect())

	// A bent path gives a mitered polygon instead of a box.
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 0), icgeom.PtGrid(10, 10)}
	rec.Reset()
	NewBuilder(rec).ShapeOfNode(n)
	require.Equal(t, 2, rec.Len())
	assert.Len(t, rec.Shapes()[0].Points, 6)
	assert.Contains(t, rec.Shapes()[0].Points, icgeom.PtGrid(106, 4), "inner miter")
	assert.Contains(t, rec.Shapes()[0].Points, icgeom.PtGrid(114, -4), "outer miter")
}

func TestNodeSerpentineSeparatedPoly(t *testing.T) {
	n := node(transistorProto(gate, poly), icgeom.Point{}, icgeom.PtGrid(10, 8), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 0)}

	rec := sink.NewRecorder()
	// diff, gate without extension, two poly caps
	require.Equal(t, 4, NewBuilder(rec).ShapeOfNode(n))
	assert.Equal(t, icgeom.Box(0, g(-1), g(10), g(1)), rec.Shapes()[1].Rect())
	assert.Equal(t, icgeom.Box(g(-2), g(-1), 0, g(1)), rec.Shapes()[2].Rect())
	assert.Equal(t, icgeom.Box(g(10), g(-1), g(12), g(1)), rec.Shapes()[3].Rect())
}

func TestNodeSerpentineColorOverride(t *testing.T) {
	n := node(transistorProto(gate, poly), icgeom.Point{}, icgeom.PtGrid(10, 8), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 0)}
	n.Color = red

	rec := sink.NewRecorder()
	require.Equal(t, 4, NewBuilder(rec).ShapeOfNode(n))
	for i, s := range rec.Shapes() {
		assert.Equal(t, red, s.Override, "shape %d", i)
		assert.False(t, s.Box, "shape %d", i)
	}
}

func TestNodeSerpentineBadTraceFallsBack(t *testing.T) {
	n := node(transistorProto(gate), icgeom.Point{}, icgeom.PtGrid(10, 8), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(1, 1), icgeom.PtGrid(1, 1)}

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfNode(n)
	require.Equal(t, 2, rec.Len())
	assert.Equal(t, icgeom.Box(g(-5), g(-4), g(5), g(4)), rec.Shapes()[0].Rect())
}

func TestShapeOfPort(t *testing.T) {
	np := pinProto()
	n := node(np, icgeom.PtGrid(1, 1), icgeom.PtGrid(4, 4), icgeom.Ident)

	rec := sink.NewRecorder()
	b := NewBuilder(rec)
	require.True(t, b.ShapeOfPort(n, np.Ports[0]))
	s := rec.Shapes()[0]
	assert.Equal(t, icgeom.StyleClosed, s.Style)
	assert.Same(t, np.Ports[0], s.Port)
	assert.Nil(t, s.Layer)
	assert.Equal(t, []icgeom.Point{
		icgeom.PtGrid(-1, -1), icgeom.PtGrid(3, -1), icgeom.PtGrid(3, 3), icgeom.PtGrid(-1, 3),
	}, s.Points)

	dot := &tech.PortProto{Name: "dot", Points: []tech.EdgePoint{{}, {}}}
	rec.Reset()
	require.True(t, b.ShapeOfPort(n, dot))
	assert.Equal(t, icgeom.StyleCross, rec.Shapes()[0].Style)
	assert.Equal(t, []icgeom.Point{icgeom.PtGrid(1, 1)}, rec.Shapes()[0].Points)

	assert.False(t, b.ShapeOfPort(n, &tech.PortProto{Name: "none"}))
}

func TestShapeOfPortSerpentine(t *testing.T) {
	np := transistorProto(gate)
	n := node(np, icgeom.Point{}, icgeom.PtGrid(10, 8), icgeom.Ident)
	n.Trace = []icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 0)}

	rec := sink.NewRecorder()
	assert.Equal(t, 2, NewBuilder(rec).ShapeOfPorts(n))

	tail := rec.Shapes()[0]
	assert.Equal(t, icgeom.StyleOpened, tail.Style)
	assert.Equal(t, []icgeom.Point{icgeom.PtGrid(-1, 1), icgeom.PtGrid(-1, -1)}, tail.Points)

	center := rec.Shapes()[1]
	assert.Equal(t, []icgeom.Point(n.Trace), center.Points)
	assert.Same(t, np.Ports[1], center.Port)
}
