// Package cell holds the per-instance state the shape engine reads: node
// instances with their anchor, size and orientation, and wire instances
// with their end locations and end flags.
//
// A Cell counts every connectivity or geometry change in its revision so
// that derived tables, like the shrinkage table, can tell when they are
// stale.
package cell

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/multicut"
	"github.com/gogpu/icgeom/tech"
)

// Errors returned by Cell mutators.
var (
	ErrUnknownNode = errors.New("cell: unknown node")
	ErrNoProto     = errors.New("cell: missing template")
)

// NodeID identifies a node instance within its cell.
type NodeID int

// ArcID identifies a wire instance within its cell.
type ArcID int

// NodeInst is a placed node template.
type NodeInst struct {
	ID     NodeID
	Name   string
	Proto  *tech.NodeProto
	Anchor icgeom.Point

	// Size is the full instance width and height.
	Size   icgeom.Point
	Orient icgeom.Orientation

	// Trace is the gate path of a serpentine transistor or the outline of a
	// polygonal node, relative to Anchor.
	Trace []icgeom.Point

	// GateLength overrides the serpentine default gate length when nonzero.
	GateLength icgeom.Coord

	// CutAlignment overrides the multi-cut alignment when non-nil.
	CutAlignment *multicut.Alignment

	// CutSpacing overrides the 2-D cut separation when nonzero.
	CutSpacing icgeom.Coord

	// Color overrides the display color of every layer that allows it.
	Color color.Color
}

// End is one end of a wire.
type End struct {
	Node     NodeID
	Location icgeom.Point

	// Extended ends protrude past Location by the layer half width.
	Extended bool
	Negated  bool
	Arrowed  bool
}

// ArcInst is a placed wire template.
type ArcInst struct {
	ID    ArcID
	Name  string
	Proto *tech.ArcProto
	Tail  End
	Head  End

	// ExtendOverMin is added to every layer's half width.
	ExtendOverMin icgeom.Coord

	// Angle is the direction from tail to head in tenths of a degree. It is
	// kept for zero-length wires, whose direction cannot be derived.
	Angle int

	BodyArrowed bool

	// Radius is the signed radius of a curved wire, zero when straight.
	// A positive radius puts the circle center left of the tail-to-head
	// direction.
	Radius icgeom.Coord

	// Color overrides the display color of every layer that allows it.
	Color color.Color
}

// Length returns the tail-to-head distance in Coord units.
func (a *ArcInst) Length() float64 {
	return icgeom.Distance(a.Tail.Location, a.Head.Location)
}

// EndAngle returns the direction pointing away from the node at the given
// end: the wire angle at the tail and its opposite at the head.
func (a *ArcInst) EndAngle(head bool) int {
	if head {
		return icgeom.OppositeAngle(a.Angle)
	}
	return a.Angle
}

// Cell is a set of node and wire instances.
type Cell struct {
	Name string

	nodes    []*NodeInst
	arcs     []*ArcInst
	revision uint64
}

// New creates an empty cell.
func New(name string) *Cell {
	return &Cell{Name: name}
}

// Revision returns the number of changes applied to the cell.
func (c *Cell) Revision() uint64 { return c.revision }

// Nodes returns the node instances indexed by NodeID.
func (c *Cell) Nodes() []*NodeInst { return c.nodes }

// Arcs returns the wire instances indexed by ArcID.
func (c *Cell) Arcs() []*ArcInst { return c.arcs }

// Node returns the node with the given ID, or nil.
func (c *Cell) Node(id NodeID) *NodeInst {
	if id < 0 || int(id) >= len(c.nodes) {
		return nil
	}
	return c.nodes[id]
}

// AddNode places a node template. A zero size takes the template default.
func (c *Cell) AddNode(np *tech.NodeProto, anchor, size icgeom.Point, orient icgeom.Orientation) (*NodeInst, error) {
	if np == nil {
		return nil, ErrNoProto
	}
	if size == (icgeom.Point{}) {
		size = np.DefaultSize
	}
	n := &NodeInst{
		ID:     NodeID(len(c.nodes)),
		Proto:  np,
		Anchor: anchor,
		Size:   size,
		Orient: orient,
	}
	n.Name = fmt.Sprintf("%s@%d", np.Name, n.ID)
	c.nodes = append(c.nodes, n)
	c.revision++
	return n, nil
}

// SetTrace replaces the trace of a node.
func (c *Cell) SetTrace(n *NodeInst, trace []icgeom.Point) {
	n.Trace = append([]icgeom.Point(nil), trace...)
	c.revision++
}

// MoveNode changes the anchor of a node.
func (c *Cell) MoveNode(n *NodeInst, anchor icgeom.Point) {
	n.Anchor = anchor
	c.revision++
}

// ArcOption configures a wire at creation.
type ArcOption func(*ArcInst)

// WithExtendOverMin widens every layer of the wire.
func WithExtendOverMin(e icgeom.Coord) ArcOption {
	return func(a *ArcInst) { a.ExtendOverMin = e }
}

// WithEnds sets the extension, negation and arrow flags of both ends.
// Wires are extended at both ends by default.
func WithEnds(tail, head End) ArcOption {
	return func(a *ArcInst) {
		a.Tail.Extended, a.Tail.Negated, a.Tail.Arrowed = tail.Extended, tail.Negated, tail.Arrowed
		a.Head.Extended, a.Head.Negated, a.Head.Arrowed = head.Extended, head.Negated, head.Arrowed
	}
}

// WithBodyArrow draws an arrowhead in the middle of the wire.
func WithBodyArrow() ArcOption {
	return func(a *ArcInst) { a.BodyArrowed = true }
}

// WithRadius curves the wire.
func WithRadius(r icgeom.Coord) ArcOption {
	return func(a *ArcInst) { a.Radius = r }
}

// WithColor overrides the display color of the wire.
func WithColor(c color.Color) ArcOption {
	return func(a *ArcInst) { a.Color = c }
}

// WithAngle sets the direction of a zero-length wire.
func WithAngle(angle int) ArcOption {
	return func(a *ArcInst) { a.Angle = icgeom.NormAngle(angle) }
}

// AddArc connects two nodes with a wire template.
func (c *Cell) AddArc(ap *tech.ArcProto, tail NodeID, tailLoc icgeom.Point, head NodeID, headLoc icgeom.Point, opts ...ArcOption) (*ArcInst, error) {
	if ap == nil {
		return nil, ErrNoProto
	}
	if c.Node(tail) == nil {
		return nil, fmt.Errorf("%w: tail %d", ErrUnknownNode, tail)
	}
	if c.Node(head) == nil {
		return nil, fmt.Errorf("%w: head %d", ErrUnknownNode, head)
	}
	a := &ArcInst{
		ID:    ArcID(len(c.arcs)),
		Proto: ap,
		Tail:  End{Node: tail, Location: tailLoc, Extended: true},
		Head:  End{Node: head, Location: headLoc, Extended: true},
	}
	for _, opt := range opts {
		opt(a)
	}
	if tailLoc != headLoc {
		a.Angle = icgeom.FigureAngle(headLoc.X-tailLoc.X, headLoc.Y-tailLoc.Y)
	}
	a.Name = fmt.Sprintf("%s@%d", ap.Name, a.ID)
	c.arcs = append(c.arcs, a)
	c.revision++
	return a, nil
}
