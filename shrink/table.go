package shrink

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/internal/cache"
)

// Table holds the shrink class of every node of a cell at one revision.
type Table struct {
	entries  []Entry
	revision uint64
}

// Build classifies every node of c.
//
// A wire with no extension at all, neither over its minimum width nor on
// any layer, shrinks both of its nodes fully. Otherwise each extended end
// contributes the direction pointing away from its node.
func Build(c *cell.Cell) *Table {
	nodes := c.Nodes()
	accs := make([]Accumulator, len(nodes))
	for _, a := range c.Arcs() {
		tail, head := &accs[a.Tail.Node], &accs[a.Head.Node]
		if a.ExtendOverMin+a.Proto.MaxLayerExtend() == 0 {
			tail.AddZeroExtend()
			head.AddZeroExtend()
			continue
		}
		if a.Tail.Extended {
			tail.Add(a.EndAngle(false))
		}
		if a.Head.Extended {
			head.Add(a.EndAngle(true))
		}
	}

	t := &Table{entries: make([]Entry, len(nodes)), revision: c.Revision()}
	shrunk := 0
	for i := range accs {
		t.entries[i] = accs[i].Resolve()
		if t.entries[i].Kind != NoShrink {
			shrunk++
		}
	}
	icgeom.Logger().Debug("shrink: table built",
		"cell", c.Name, "nodes", len(nodes), "shrunk", shrunk, "revision", t.revision)
	return t
}

// Get returns the class of a node. Unknown nodes are not shrunk.
func (t *Table) Get(id cell.NodeID) Entry {
	if id < 0 || int(id) >= len(t.entries) {
		return Entry{Kind: NoShrink}
	}
	return t.entries[id]
}

// Len returns the number of classified nodes.
func (t *Table) Len() int { return len(t.entries) }

// Stale reports whether c changed since the table was built.
func (t *Table) Stale(c *cell.Cell) bool {
	return t.revision != c.Revision() || len(t.entries) != len(c.Nodes())
}

// Cache keeps one Table per cell and rebuilds it when the cell changes.
// Cache is safe for concurrent use.
type Cache struct {
	tables *cache.Cache[*cell.Cell, *Table]
}

// NewCache creates a cache holding tables for at most capacity cells.
// A capacity of 0 means unlimited.
func NewCache(capacity int) *Cache {
	return &Cache{tables: cache.New[*cell.Cell, *Table](capacity)}
}

// Table returns the current table of c, building it when missing or stale.
func (c *Cache) Table(cl *cell.Cell) *Table {
	if t, ok := c.tables.Get(cl); ok && !t.Stale(cl) {
		return t
	}
	t := Build(cl)
	c.tables.Set(cl, t)
	return t
}

// Invalidate drops the table of cl.
func (c *Cache) Invalidate(cl *cell.Cell) {
	c.tables.Delete(cl)
}

// Stats returns the underlying cache statistics.
func (c *Cache) Stats() cache.Stats {
	return c.tables.Stats()
}
