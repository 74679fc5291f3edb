package icgeom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Coord is a signed fixed-point distance: the grid value shifted left by
// FractionBits. All geometry arithmetic in icgeom happens in this
// representation; lambda and grid values only appear at the boundary.
type Coord = fixed.Int52_12

// Point is a fixed-point coordinate pair.
type Point = fixed.Point52_12

// Rect is a fixed-point rectangle. Unlike image.Rectangle, icgeom treats
// both Min and Max as inclusive, so a zero-width wire still has a Rect.
type Rect = fixed.Rectangle52_12

const (
	// FractionBits is the number of fraction bits in a Coord.
	FractionBits = 12

	// One is the Coord of one grid unit.
	One Coord = 1 << FractionBits

	// GridPerLambda is the number of grid units in one lambda.
	GridPerLambda = 400
)

// FromGrid converts an integer grid distance to a Coord.
func FromGrid(g int64) Coord {
	return Coord(g << FractionBits)
}

// ToGrid rounds a Coord to the nearest grid unit.
func ToGrid(c Coord) int64 {
	return int64(c.Round())
}

// FromLambda converts a lambda distance to the nearest Coord.
func FromLambda(l float64) Coord {
	return Coord(math.Round(l * GridPerLambda * float64(One)))
}

// ToLambda converts a Coord to lambda.
func ToLambda(c Coord) float64 {
	return float64(c) / (GridPerLambda * float64(One))
}

// FromFloat converts a raw distance, already expressed in Coord units, to
// the nearest Coord.
func FromFloat(f float64) Coord {
	return Coord(math.Round(f))
}

// Pt is a convenience function to create a Point.
func Pt(x, y Coord) Point {
	return Point{X: x, Y: y}
}

// PtGrid creates a Point from grid coordinates.
func PtGrid(x, y int64) Point {
	return Point{X: FromGrid(x), Y: FromGrid(y)}
}

// PtLambda creates a Point from lambda coordinates.
func PtLambda(x, y float64) Point {
	return Point{X: FromLambda(x), Y: FromLambda(y)}
}

// Box returns the Rect with the given extrema.
func Box(minX, minY, maxX, maxY Coord) Rect {
	return Rect{Min: Point{X: minX, Y: minY}, Max: Point{X: maxX, Y: maxY}}
}

// Distance returns the Euclidean distance between two points in Coord units.
func Distance(p, q Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// Abs returns the absolute value of c.
func Abs(c Coord) Coord {
	if c < 0 {
		return -c
	}
	return c
}
