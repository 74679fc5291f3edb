// Package multicut places the grid of contact cuts inside a contact's cut
// region.
//
// A contact is drawn as discrete cut squares rather than one solid region.
// The number of cuts along an axis follows from the cut size and a
// separation rule: a looser 1-D rule when the cuts form a single row or
// column, and a stricter 2-D rule when they form a true grid.
package multicut

import (
	"github.com/gogpu/icgeom"
)

// Alignment selects how the cut grid sits inside the cut region.
type Alignment uint8

const (
	// AlignCenter centers the grid in the region.
	AlignCenter Alignment = iota

	// AlignSpread pushes cuts to both edges, leaving any gap in the middle.
	// An odd count puts one cut exactly at the center.
	AlignSpread

	// AlignCorner packs the grid into the lower-left corner.
	AlignCorner
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignSpread:
		return "spread"
	case AlignCorner:
		return "corner"
	}
	return "unknown"
}

// ParseAlignment returns the Alignment with the given name.
func ParseAlignment(name string) (Alignment, bool) {
	for a := AlignCenter; a <= AlignCorner; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return AlignCenter, false
}

// Params describes the cut squares of one multi-cut layer.
type Params struct {
	SizeX, SizeY icgeom.Coord

	// Sep1D is the separation used when the cuts form a single row or column.
	Sep1D icgeom.Coord

	// Sep2D is the separation used when the cuts form a true grid.
	Sep2D icgeom.Coord

	Alignment Alignment
}

// Layout is the computed cut grid for one instance.
type Layout struct {
	// Area is the cut region the grid was computed for.
	Area icgeom.Rect

	CutsX, CutsY int

	// SepX and SepY are the separations actually applied along each axis.
	SepX, SepY icgeom.Coord

	SizeX, SizeY icgeom.Coord

	Alignment Alignment
}

// Count returns how many cuts of the given size and separation fit along
// one axis. span is the extent of the cut region minus one cut size, i.e.
// the room left after the first cut. The result is never less than 1.
func Count(span, size, sep icgeom.Coord) int {
	pitch := size + sep
	if pitch <= 0 || span < 0 {
		return 1
	}
	return 1 + int(span/pitch)
}

// Compute lays out cuts in area.
//
// Counts are first taken with the 1-D separation. When both axes hold more
// than one cut the grid is real and the 2-D separation applies instead. If
// the 2-D rule collapses an axis to a single cut, the layout reverts to the
// 1-D rule as a single row (or column, when the 1-D column is longer).
func Compute(area icgeom.Rect, p Params) Layout {
	spanX := area.Max.X - area.Min.X - p.SizeX
	spanY := area.Max.Y - area.Min.Y - p.SizeY

	l := Layout{
		Area:      area,
		SizeX:     p.SizeX,
		SizeY:     p.SizeY,
		Alignment: p.Alignment,
		SepX:      p.Sep1D,
		SepY:      p.Sep1D,
	}
	cx1 := Count(spanX, p.SizeX, p.Sep1D)
	cy1 := Count(spanY, p.SizeY, p.Sep1D)
	l.CutsX, l.CutsY = cx1, cy1
	if cx1 == 1 || cy1 == 1 {
		return l
	}

	cx2 := Count(spanX, p.SizeX, p.Sep2D)
	cy2 := Count(spanY, p.SizeY, p.Sep2D)
	if cx2 > 1 && cy2 > 1 {
		l.CutsX, l.CutsY = cx2, cy2
		l.SepX, l.SepY = p.Sep2D, p.Sep2D
		return l
	}

	// The 2-D rule leaves a single row or column: keep the 1-D count along
	// the longer axis only.
	if cy1 > cx1 {
		l.CutsX = 1
	} else {
		l.CutsY = 1
	}
	return l
}

// Total returns the number of cuts in the grid.
func (l Layout) Total() int {
	return l.CutsX * l.CutsY
}

// perimeter returns the number of cuts on the outer ring of a grid with more
// than two cuts along each axis.
func (l Layout) perimeter() int {
	return 2*l.CutsX + 2*(l.CutsY-2)
}

// ReasonableCount returns how many cuts are materialized when only a
// representative subset is wanted: the outer ring of a grid larger than
// 2x2, or every cut otherwise.
func (l Layout) ReasonableCount() int {
	if l.CutsX > 2 && l.CutsY > 2 {
		return l.perimeter()
	}
	return l.Total()
}

// Order maps the k-th cut of the enumeration to its grid position.
//
// For grids larger than 2x2 the ring comes first: the bottom row left to
// right, the top row left to right, the left column bottom to top, the right
// column bottom to top, and then the interior in row-major order. Smaller
// grids are enumerated row-major.
func (l Layout) Order(k int) (ix, iy int) {
	if l.CutsX <= 2 || l.CutsY <= 2 {
		return k % l.CutsX, k / l.CutsX
	}
	inner := l.CutsY - 2
	switch {
	case k < l.CutsX:
		return k, 0
	case k < 2*l.CutsX:
		return k - l.CutsX, l.CutsY - 1
	case k < 2*l.CutsX+inner:
		return 0, 1 + k - 2*l.CutsX
	case k < l.perimeter():
		return l.CutsX - 1, 1 + k - 2*l.CutsX - inner
	}
	k -= l.perimeter()
	w := l.CutsX - 2
	return 1 + k%w, 1 + k/w
}

// Center returns the center of the cut at grid position (ix, iy).
func (l Layout) Center(ix, iy int) icgeom.Point {
	return icgeom.Point{
		X: place(l.Area.Min.X, l.Area.Max.X, l.CutsX, ix, l.SizeX, l.SepX, l.Alignment),
		Y: place(l.Area.Min.Y, l.Area.Max.Y, l.CutsY, iy, l.SizeY, l.SepY, l.Alignment),
	}
}

// Cut returns the square of the k-th cut of the enumeration.
func (l Layout) Cut(k int) icgeom.Rect {
	c := l.Center(l.Order(k))
	hx, hy := l.SizeX/2, l.SizeY/2
	return icgeom.Box(c.X-hx, c.Y-hy, c.X-hx+l.SizeX, c.Y-hy+l.SizeY)
}

// place returns the center coordinate of cut i of n along one axis.
func place(lo, hi icgeom.Coord, n, i int, size, sep icgeom.Coord, align Alignment) icgeom.Coord {
	pitch := size + sep
	mid := lo + (hi-lo)/2
	if n == 1 {
		if align == AlignCorner {
			return lo + size/2
		}
		return mid
	}
	switch align {
	case AlignCorner:
		return lo + size/2 + icgeom.Coord(i)*pitch
	case AlignSpread:
		switch {
		case i < n/2:
			return lo + size/2 + icgeom.Coord(i)*pitch
		case i >= n-n/2:
			return hi - size/2 - icgeom.Coord(n-1-i)*pitch
		}
		return mid
	}
	// Offsets are symmetric about the middle so that mirrored instances
	// produce mirrored cuts.
	return mid + icgeom.Coord(2*i-(n-1))*pitch/2
}
