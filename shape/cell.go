package shape

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/shrink"
)

// ShapeOfCell emits every node and then every wire of c and returns the
// number of shapes emitted.
//
// Wires are shrunk with the table of c, taken from the shrink cache when
// the builder has one and built otherwise. The table set with
// SetShrinkTable is restored afterwards.
func (b *Builder) ShapeOfCell(c *cell.Cell) int {
	start := b.emitted
	prev := b.table
	defer func() { b.table = prev }()

	if b.opts.shrinks != nil {
		b.table = b.opts.shrinks.Table(c)
	} else {
		b.table = shrink.Build(c)
	}

	for _, n := range c.Nodes() {
		b.ShapeOfNode(n)
	}
	for _, a := range c.Arcs() {
		b.ShapeOfArc(a)
	}

	count := b.emitted - start
	icgeom.Logger().Debug("shape: cell done",
		"cell", c.Name, "nodes", len(c.Nodes()), "arcs", len(c.Arcs()), "shapes", count)
	return count
}
