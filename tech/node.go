package tech

import (
	"math"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/multicut"
)

// Edge is a scalable edge formula: Multiplier times the instance size plus
// a fixed Offset. A left edge of a centered box is typically {-0.5, inset}.
type Edge struct {
	Multiplier float64
	Offset     icgeom.Coord
}

// Eval evaluates the formula at an instance size.
func (e Edge) Eval(size icgeom.Coord) icgeom.Coord {
	return icgeom.Coord(math.Round(e.Multiplier*float64(size))) + e.Offset
}

// EdgePoint is a point whose coordinates are edge formulas over the
// instance width and height.
type EdgePoint struct {
	X, Y Edge
}

// Eval evaluates the point at an instance size.
func (p EdgePoint) Eval(size icgeom.Point) icgeom.Point {
	return icgeom.Point{X: p.X.Eval(size.X), Y: p.Y.Eval(size.Y)}
}

// Centered returns the two corners of a box inset from a centered instance
// outline by the given amounts.
func Centered(left, bottom, right, top icgeom.Coord) []EdgePoint {
	return []EdgePoint{
		{X: Edge{-0.5, left}, Y: Edge{-0.5, bottom}},
		{X: Edge{0.5, -right}, Y: Edge{0.5, -top}},
	}
}

// Rep is how a node layer's geometry is represented.
type Rep uint8

const (
	// RepBox is a rectangle given by two corner formulas.
	RepBox Rep = iota

	// RepPoints is an explicit list of point formulas.
	RepPoints

	// RepMultiCut is a cut region, given by two corner formulas, filled with
	// a grid of cut squares.
	RepMultiCut
)

// NodeLayer is one layer of a primitive node template.
type NodeLayer struct {
	Layer  *Layer
	Style  icgeom.Style
	Rep    Rep
	Points []EdgePoint

	// Cut describes the cut squares of a RepMultiCut layer.
	Cut *multicut.Params

	// Serpentine offsets: perpendicular widths to the left and right of the
	// gate path and extensions past its tail and head.
	LeftWidth, RightWidth  icgeom.Coord
	TailExtend, HeadExtend icgeom.Coord
}

// Box evaluates a two-point layer at an instance size and returns the
// normalized rectangle.
func (nl *NodeLayer) Box(size icgeom.Point) icgeom.Rect {
	return evalBox(nl.Points, size)
}

func evalBox(pts []EdgePoint, size icgeom.Point) icgeom.Rect {
	if len(pts) < 2 {
		return icgeom.Rect{}
	}
	a, b := pts[0].Eval(size), pts[1].Eval(size)
	return icgeom.Box(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y))
}

// Kind is the closed set of node shape variants.
type Kind uint8

const (
	// KindPlain nodes are drawn from their layer formulas.
	KindPlain Kind = iota

	// KindPolygonal nodes carry an explicit outline on the instance; every
	// layer is drawn as that outline.
	KindPolygonal

	// KindSerpentine nodes are transistors whose gate follows a path stored
	// on the instance.
	KindSerpentine
)

// PortRole identifies a serpentine transistor port.
type PortRole uint8

const (
	RoleNone PortRole = iota
	RolePolyTail
	RoleDiffLeft
	RolePolyHead
	RoleDiffRight
	RoleCenter
)

// PortProto is a connection point of a node template.
type PortProto struct {
	Name string

	// Points are the two corners of the port area.
	Points []EdgePoint

	// Role is used by serpentine transistors to build the port along the path.
	Role PortRole

	// Index is the port's position in its node template.
	Index int
}

// Box evaluates the port area at an instance size.
func (pp *PortProto) Box(size icgeom.Point) icgeom.Rect {
	return evalBox(pp.Points, size)
}

// SerpentineParams are the transistor-wide serpentine parameters.
type SerpentineParams struct {
	// DefaultGateLength is the gate length the layer widths are drawn for.
	DefaultGateLength icgeom.Coord

	// PolyOutset moves the poly ports outward past the path ends.
	PolyOutset icgeom.Coord

	// PolyInset shrinks the poly ports from both sides.
	PolyInset icgeom.Coord

	// DiffPortWidth is the offset of the diffusion side ports from the path.
	DiffPortWidth icgeom.Coord
}

// NodeProto is a primitive node template.
type NodeProto struct {
	Name        string
	Kind        Kind
	Layers      []NodeLayer
	Ports       []*PortProto
	DefaultSize icgeom.Point
	Serpentine  SerpentineParams
}

// Port returns the port with the given name, or nil.
func (np *NodeProto) Port(name string) *PortProto {
	for _, pp := range np.Ports {
		if pp.Name == name {
			return pp
		}
	}
	return nil
}

// String returns the template name.
func (np *NodeProto) String() string {
	return np.Name
}
