package shape

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/sink"
)

// NodeBounds returns the bounding rectangle of the shapes of n. ok is false
// when n emits nothing under the given options.
func NodeBounds(n *cell.NodeInst, opts ...Option) (icgeom.Rect, bool) {
	var bb sink.Bounds
	NewBuilder(&bb, opts...).ShapeOfNode(n)
	return bb.Rect()
}

// ArcBounds returns the bounding rectangle of the shapes of a, using t to
// shrink its ends. t may be nil.
func ArcBounds(a *cell.ArcInst, t *shrink.Table, opts ...Option) (icgeom.Rect, bool) {
	var bb sink.Bounds
	b := NewBuilder(&bb, opts...)
	b.SetShrinkTable(t)
	b.ShapeOfArc(a)
	return bb.Rect()
}

// CellBounds returns the bounding rectangle of every shape of c.
func CellBounds(c *cell.Cell, opts ...Option) (icgeom.Rect, bool) {
	var bb sink.Bounds
	NewBuilder(&bb, opts...).ShapeOfCell(c)
	return bb.Rect()
}
