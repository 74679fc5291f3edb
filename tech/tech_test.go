package tech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/multicut"
)

func TestEdgeEval(t *testing.T) {
	size := icgeom.FromGrid(10)
	assert.Equal(t, icgeom.FromGrid(-5), Edge{Multiplier: -0.5}.Eval(size))
	assert.Equal(t, icgeom.FromGrid(-4), Edge{Multiplier: -0.5, Offset: icgeom.FromGrid(1)}.Eval(size))
	assert.Equal(t, icgeom.FromGrid(3), Edge{Offset: icgeom.FromGrid(3)}.Eval(size))
}

func TestCenteredBox(t *testing.T) {
	nl := NodeLayer{Points: Centered(icgeom.FromGrid(1), icgeom.FromGrid(2), icgeom.FromGrid(1), icgeom.FromGrid(2))}
	got := nl.Box(icgeom.PtGrid(10, 8))
	assert.Equal(t, icgeom.Box(icgeom.FromGrid(-4), icgeom.FromGrid(-2), icgeom.FromGrid(4), icgeom.FromGrid(2)), got)
}

func TestFunctionSet(t *testing.T) {
	s := NewFunctionSet(FuncMetal, FuncPoly)
	assert.True(t, s.Contains(FuncMetal))
	assert.True(t, s.Contains(FuncPoly))
	assert.False(t, s.Contains(FuncDiff))
	for f := FuncUnknown; f < funcCount; f++ {
		assert.True(t, AllFunctions.Contains(f), f.String())
		got, ok := ParseFunction(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	assert.True(t, FuncGate.IsPoly())
	assert.False(t, FuncMetal.IsPoly())
}

func newTestTech(t *testing.T) *Technology {
	t.Helper()
	tc := New("test")
	metal := &Layer{Name: "metal-1", Function: FuncMetal}
	pin := &Layer{Name: "pin", Function: FuncArt, Pseudo: true}
	cut := &Layer{Name: "cut", Function: FuncContact}
	for _, l := range []*Layer{metal, pin, cut} {
		require.NoError(t, tc.AddLayer(l))
	}
	require.NoError(t, tc.AddArc(&ArcProto{
		Name: "metal-1",
		Layers: []ArcLayer{
			{Layer: metal, Extend: icgeom.FromGrid(2), Style: icgeom.StyleFilled},
			{Layer: pin, Extend: 0, Style: icgeom.StyleOpened},
		},
	}))
	require.NoError(t, tc.AddNode(&NodeProto{
		Name:        "contact",
		DefaultSize: icgeom.PtGrid(10, 10),
		Layers: []NodeLayer{
			{Layer: metal, Style: icgeom.StyleFilled, Rep: RepBox, Points: Centered(0, 0, 0, 0)},
			{Layer: cut, Style: icgeom.StyleFilled, Rep: RepMultiCut, Points: Centered(0, 0, 0, 0),
				Cut: &multicut.Params{SizeX: icgeom.FromGrid(2), SizeY: icgeom.FromGrid(2)}},
		},
		Ports: []*PortProto{{Name: "a", Points: Centered(0, 0, 0, 0)}},
	}))
	return tc
}

func TestTechnologyLookups(t *testing.T) {
	tc := newTestTech(t)
	assert.Equal(t, 1, tc.Layer("pin").Index)
	assert.Len(t, tc.Layers(), 3)
	require.NotNil(t, tc.Node("contact"))
	assert.NotNil(t, tc.Node("contact").Port("a"))
	assert.Nil(t, tc.Node("contact").Port("b"))

	ap := tc.Arc("metal-1")
	require.NotNil(t, ap)
	assert.Equal(t, DefaultArrowSize, ap.ArrowSize)
	assert.Equal(t, icgeom.FromGrid(2), ap.MaxLayerExtend())
	assert.Equal(t, icgeom.Coord(0), ap.MinLayerExtend())
}

func TestTechnologyDuplicates(t *testing.T) {
	tc := newTestTech(t)
	assert.ErrorIs(t, tc.AddLayer(&Layer{Name: "metal-1"}), ErrDuplicateName)
	assert.ErrorIs(t, tc.AddArc(&ArcProto{Name: "metal-1", Layers: []ArcLayer{{Layer: tc.Layer("metal-1")}}}), ErrDuplicateName)
	assert.ErrorIs(t, tc.AddNode(&NodeProto{Name: "contact"}), ErrDuplicateName)
}

func TestTechnologyValidation(t *testing.T) {
	tc := newTestTech(t)
	metal := tc.Layer("metal-1")

	err := tc.AddNode(&NodeProto{Name: "bad-box", Layers: []NodeLayer{{Layer: metal, Rep: RepBox}}})
	assert.ErrorIs(t, err, ErrBadPoints)

	err = tc.AddNode(&NodeProto{Name: "bad-cut", Layers: []NodeLayer{{Layer: metal, Rep: RepMultiCut, Points: Centered(0, 0, 0, 0)}}})
	assert.ErrorIs(t, err, ErrBadPoints)

	err = tc.AddNode(&NodeProto{Name: "bad-arc", Layers: []NodeLayer{{Layer: metal, Rep: RepPoints, Style: icgeom.StyleCircleArc,
		Points: []EdgePoint{{}, {}}}}})
	assert.ErrorIs(t, err, ErrBadPoints)

	err = tc.AddNode(&NodeProto{Name: "no-layer", Layers: []NodeLayer{{Rep: RepPoints}}})
	assert.ErrorIs(t, err, ErrNoLayer)

	assert.ErrorIs(t, tc.AddArc(&ArcProto{Name: "empty"}), ErrNoLayer)
}

func TestElectricalLayersMemoized(t *testing.T) {
	tc := newTestTech(t)
	ap := tc.Arc("metal-1")

	got := tc.ElectricalLayers(ap)
	assert.Equal(t, []int{0}, got)

	again := tc.ElectricalLayers(ap)
	assert.Same(t, &got[0], &again[0], "second call should return the memoized slice")
	assert.Equal(t, uint64(1), tc.electrical.Stats().Hits)
}
