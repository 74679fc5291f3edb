package shape

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/tech"
)

// ShapeOfPort emits the outline of port pp on n and reports whether
// anything was emitted.
//
// Ports of serpentine transistors follow the gate path. Other ports are a
// closed box, or a cross when the box is a single point.
func (b *Builder) ShapeOfPort(n *cell.NodeInst, pp *tech.PortProto) bool {
	b.node = n
	defer func() { b.node = nil }()

	if pp.Role != tech.RoleNone {
		if tr := b.transistor(n); tr != nil && tr.Port(pp, b) {
			return true
		}
	}
	if len(pp.Points) < 2 {
		return false
	}
	r := pp.Box(n.Size)
	if r.Min == r.Max {
		b.buf.Push(r.Min)
		b.PushPoly(icgeom.StyleCross, nil, nil, pp)
		return true
	}
	b.pushBox(r, icgeom.StyleClosed)
	b.PushPoly(icgeom.StyleClosed, nil, nil, pp)
	return true
}

// ShapeOfPorts emits every port of n and returns how many were drawn.
func (b *Builder) ShapeOfPorts(n *cell.NodeInst) int {
	count := 0
	for _, pp := range n.Proto.Ports {
		if b.ShapeOfPort(n, pp) {
			count++
		}
	}
	return count
}
