package shape

import "github.com/gogpu/icgeom"

// initialCapacity is the point capacity of a fresh Buffer.
const initialCapacity = 16

// Buffer is the growable point list of the shape under construction.
// Its storage always holds at least twice the live count and is reused
// across shapes.
type Buffer struct {
	pts []icgeom.Point
	n   int
}

// Push appends p, doubling the storage when needed.
func (b *Buffer) Push(p icgeom.Point) {
	if 2*(b.n+1) > len(b.pts) {
		b.grow()
	}
	b.pts[b.n] = p
	b.n++
}

func (b *Buffer) grow() {
	size := max(initialCapacity, 2*len(b.pts))
	pts := make([]icgeom.Point, size)
	copy(pts, b.pts[:b.n])
	b.pts = pts
}

// Points returns the live points. The slice aliases the buffer and is
// valid until the next Push or Reset.
func (b *Buffer) Points() []icgeom.Point { return b.pts[:b.n] }

// Len returns the number of live points.
func (b *Buffer) Len() int { return b.n }

// Cap returns the size of the storage.
func (b *Buffer) Cap() int { return len(b.pts) }

// Reset empties the buffer and keeps the storage.
func (b *Buffer) Reset() { b.n = 0 }
