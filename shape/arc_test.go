package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

func wireProto(extend icgeom.Coord) *tech.ArcProto {
	return &tech.ArcProto{
		Name:       "wire",
		Layers:     []tech.ArcLayer{{Layer: metal, Extend: extend}},
		ArrowSize:  g(1),
		BubbleSize: g(2),
	}
}

// star places a hub at the origin and one pin per endpoint, each joined to
// the hub by a wire leaving it.
func star(t *testing.T, ap *tech.ArcProto, ends ...icgeom.Point) (*cell.Cell, []*cell.ArcInst) {
	t.Helper()
	c := cell.New("star")
	np := pinProto()
	hub, err := c.AddNode(np, icgeom.Point{}, icgeom.PtGrid(2, 2), icgeom.Ident)
	require.NoError(t, err)
	var arcs []*cell.ArcInst
	for _, p := range ends {
		pin, err := c.AddNode(np, p, icgeom.PtGrid(2, 2), icgeom.Ident)
		require.NoError(t, err)
		a, err := c.AddArc(ap, hub.ID, hub.Anchor, pin.ID, pin.Anchor)
		require.NoError(t, err)
		arcs = append(arcs, a)
	}
	return c, arcs
}

func TestArcZeroExtendIsLine(t *testing.T) {
	_, arcs := star(t, wireProto(0), icgeom.PtGrid(10, 0))

	rec := sink.NewRecorder()
	require.Equal(t, 1, NewBuilder(rec).ShapeOfArc(arcs[0]))
	s := rec.Shapes()[0]
	assert.Equal(t, icgeom.StyleOpened, s.Style)
	assert.Equal(t, []icgeom.Point{{}, icgeom.PtGrid(10, 0)}, s.Points)
}

func TestArcWithoutTableUsesFlags(t *testing.T) {
	ap := wireProto(g(2))
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0), icgeom.PtGrid(0, 10))

	rec := sink.NewRecorder()
	b := NewBuilder(rec)
	b.ShapeOfArc(arcs[0])
	assert.Equal(t, icgeom.Box(g(-2), g(-2), g(12), g(2)), rec.Shapes()[0].Rect())

	arcs[1].Head.Extended = false
	b.ShapeOfArc(arcs[1])
	assert.Equal(t, icgeom.Box(g(-2), g(-2), g(2), g(10)), rec.Shapes()[1].Rect())
}

func TestArcShrinkage(t *testing.T) {
	w := g(2)
	tests := []struct {
		name string
		ends []icgeom.Point
		want icgeom.Rect
	}{
		{
			name: "straight through",
			ends: []icgeom.Point{icgeom.PtGrid(10, 0), icgeom.PtGrid(-10, 0)},
			want: icgeom.Box(-w, -w, g(12), w),
		},
		{
			name: "corner",
			ends: []icgeom.Point{icgeom.PtGrid(10, 0), icgeom.PtGrid(0, 10)},
			want: icgeom.Box(0, -w, g(12), w),
		},
		{
			name: "obtuse",
			ends: []icgeom.Point{icgeom.PtGrid(10, 0), icgeom.PtGrid(-10, 10)},
			want: icgeom.Box(-shrink.ComputeExtension(w, 0, 1350), -w, g(12), w),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, arcs := star(t, wireProto(w), tt.ends...)
			rec := sink.NewRecorder()
			b := NewBuilder(rec)
			b.SetShrinkTable(shrink.Build(c))
			b.ShapeOfArc(arcs[0])

			s := rec.Shapes()[0]
			require.True(t, s.Box)
			assert.Equal(t, tt.want, s.Rect())
		})
	}
}

func TestArcObtuseMiterIsPartial(t *testing.T) {
	ext := shrink.ComputeExtension(g(2), 0, 1350)
	assert.Greater(t, ext, icgeom.Coord(0))
	assert.Less(t, ext, g(2))
}

func TestArcDiagonalIsPolygon(t *testing.T) {
	_, arcs := star(t, wireProto(g(1)), icgeom.PtGrid(10, 10))

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfArc(arcs[0])
	s := rec.Shapes()[0]
	assert.False(t, s.Box)
	require.Len(t, s.Points, 4)

	// Opposite corners are a diagonal plus twice the extension apart.
	d := icgeom.Distance(s.Points[0], s.Points[2])
	want := math.Hypot(math.Hypot(10, 10)+2, 2) * float64(icgeom.FromGrid(1))
	assert.InDelta(t, want, d, 4)
}

func TestArcOpenedStyleCloses(t *testing.T) {
	ap := wireProto(g(1))
	ap.Layers[0].Style = icgeom.StyleOpenedDashed
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfArc(arcs[0])
	pts := rec.Shapes()[0].Points
	require.Len(t, pts, 5)
	assert.Equal(t, pts[0], pts[4])
}

func TestArcZeroWidthLayer(t *testing.T) {
	ap := wireProto(g(1))
	ap.Layers = append(ap.Layers, tech.ArcLayer{Layer: frozen, Extend: g(-1)})
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))

	rec := sink.NewRecorder()
	require.Equal(t, 2, NewBuilder(rec).ShapeOfArc(arcs[0]))
	line := rec.Shapes()[1]
	assert.Equal(t, icgeom.StyleOpened, line.Style)
	assert.Equal(t, []icgeom.Point{{}, icgeom.PtGrid(10, 0)}, line.Points)
}

func TestArcNegated(t *testing.T) {
	_, arcs := star(t, wireProto(g(1)), icgeom.PtGrid(10, 0))
	a := arcs[0]
	a.Tail.Negated = true

	rec := sink.NewRecorder()
	require.Equal(t, 2, NewBuilder(rec).ShapeOfArc(a))

	body := rec.Shapes()[0]
	assert.Equal(t, icgeom.Box(g(2), g(-1), g(11), g(1)), body.Rect())

	bubble := rec.Shapes()[1]
	assert.Equal(t, icgeom.StyleCircle, bubble.Style)
	assert.Equal(t, []icgeom.Point{icgeom.PtGrid(1, 0), {}}, bubble.Points)
}

func TestArcArrows(t *testing.T) {
	_, arcs := star(t, wireProto(g(1)), icgeom.PtGrid(10, 0))
	a := arcs[0]
	a.Head.Arrowed = true
	a.BodyArrowed = true

	rec := sink.NewRecorder()
	require.Equal(t, 3, NewBuilder(rec).ShapeOfArc(a))
	for i, tip := range []icgeom.Point{icgeom.PtGrid(10, 0), icgeom.PtGrid(5, 0)} {
		s := rec.Shapes()[1+i]
		assert.Equal(t, icgeom.StyleVectors, s.Style)
		require.Len(t, s.Points, 4)
		assert.Equal(t, tip, s.Points[0])
		assert.Equal(t, tip, s.Points[2])
		assert.Less(t, s.Points[1].X, tip.X, "strokes point back along the wire")
		assert.Less(t, s.Points[3].X, tip.X)
		assert.Equal(t, s.Points[1].Y, -s.Points[3].Y)
	}

	rec.Reset()
	assert.Equal(t, 1, NewBuilder(rec, WithoutArrows()).ShapeOfArc(a))
}

func TestArcCurved(t *testing.T) {
	ap := wireProto(g(1))
	ap.Curvable = true
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))
	a := arcs[0]
	a.Radius = g(10)

	rec := sink.NewRecorder()
	require.Equal(t, 1, NewBuilder(rec).ShapeOfArc(a))
	pts := rec.Shapes()[0].Points

	// 60 degrees in 8 pieces, inner and outer edges.
	require.Len(t, pts, 18)
	unit := float64(g(1))
	center := icgeom.Point{X: g(5), Y: icgeom.FromFloat(math.Sqrt(75) * unit)}
	for i, p := range pts {
		want := 9.0
		if i >= 9 {
			want = 11
		}
		assert.InDelta(t, want*unit, icgeom.Distance(p, center), 2, "point %d", i)
		assert.Less(t, p.Y, center.Y, "the smaller arc lies below the center")
	}

	// A negative radius bends the other way.
	a.Radius = -a.Radius
	rec.Reset()
	NewBuilder(rec).ShapeOfArc(a)
	for _, p := range rec.Shapes()[0].Points {
		assert.Greater(t, p.Y, -center.Y)
	}
}

func TestArcCurvedNegated(t *testing.T) {
	ap := wireProto(g(1))
	ap.Curvable = true
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))
	a := arcs[0]
	a.Radius = g(10)
	a.Tail.Negated = true

	rec := sink.NewRecorder()
	require.Equal(t, 2, NewBuilder(rec).ShapeOfArc(a))
	ring, bubble := rec.Shapes()[0], rec.Shapes()[1]
	require.Len(t, ring.Points, 18)

	unit := float64(g(1))
	center := icgeom.Point{X: g(5), Y: icgeom.FromFloat(math.Sqrt(75) * unit)}
	for i, p := range ring.Points {
		want := 9.0
		if i >= 9 {
			want = 11
		}
		assert.InDelta(t, want*unit, icgeom.Distance(p, center), 2, "point %d", i)
	}

	// The ring starts one bubble away from the tail, on the circle.
	first := icgeom.Point{
		X: (ring.Points[0].X + ring.Points[17].X) / 2,
		Y: (ring.Points[0].Y + ring.Points[17].Y) / 2,
	}
	assert.InDelta(t, 2*unit, icgeom.Distance(first, icgeom.Point{}), 4)

	// The bubble follows the tangent at the tail, 30 degrees below the chord.
	assert.Equal(t, icgeom.StyleCircle, bubble.Style)
	assert.Equal(t, icgeom.Point{}, bubble.Points[1])
	assert.Equal(t, icgeom.Polar(g(1), 3300), bubble.Points[0])
}

func TestArcCurvedNegatedTooShortIsStraight(t *testing.T) {
	ap := wireProto(g(1))
	ap.Curvable = true
	ap.BubbleSize = g(12)
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))
	a := arcs[0]
	a.Radius = g(10)
	a.Tail.Negated = true

	rec := sink.NewRecorder()
	require.Equal(t, 2, NewBuilder(rec).ShapeOfArc(a))
	assert.LessOrEqual(t, len(rec.Shapes()[0].Points), 4, "drawn straight")
	assert.Equal(t, icgeom.PtGrid(6, 0), rec.Shapes()[1].Points[0], "bubble along the chord")
}

func TestArcCurvedTooTightIsStraight(t *testing.T) {
	ap := wireProto(g(1))
	ap.Curvable = true
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))
	arcs[0].Radius = g(2)

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfArc(arcs[0])
	assert.Equal(t, icgeom.Box(g(-1), g(-1), g(11), g(1)), rec.Shapes()[0].Rect())
}

func TestArcElectrical(t *testing.T) {
	ap := wireProto(g(1))
	ap.Layers = append(ap.Layers, tech.ArcLayer{Layer: &tech.Layer{Name: "glow", Pseudo: true}, Extend: g(2)})
	_, arcs := star(t, ap, icgeom.PtGrid(10, 0))

	rec := sink.NewRecorder()
	assert.Equal(t, 2, NewBuilder(rec).ShapeOfArc(arcs[0]))

	rec.Reset()
	assert.Equal(t, 1, NewBuilder(rec, WithElectrical(tech.New("t"))).ShapeOfArc(arcs[0]))
	assert.Same(t, metal, rec.Shapes()[0].Layer)
}

func TestArcColorOverride(t *testing.T) {
	_, arcs := star(t, wireProto(g(1)), icgeom.PtGrid(10, 0))
	arcs[0].Color = red

	rec := sink.NewRecorder()
	NewBuilder(rec).ShapeOfArc(arcs[0])
	assert.Equal(t, red, rec.Shapes()[0].Override)
}
