package tech

import "github.com/gogpu/icgeom"

// Default decoration sizes of arc templates.
var (
	DefaultArrowSize  = icgeom.FromLambda(1)
	DefaultBubbleSize = icgeom.FromLambda(1.2)
)

// ArcLayer is one layer of a wire template.
type ArcLayer struct {
	Layer *Layer

	// Extend is the layer's half width beyond the wire's base width.
	Extend icgeom.Coord

	Style icgeom.Style
}

// ArcProto is a wire template.
type ArcProto struct {
	Name   string
	Layers []ArcLayer

	// Curvable wires may carry a radius and be drawn as circular arcs.
	Curvable bool

	// ArrowSize is the length of an arrowhead stroke.
	ArrowSize icgeom.Coord

	// BubbleSize is the diameter of a negation bubble.
	BubbleSize icgeom.Coord

	// Index is the template's position in its technology.
	Index int
}

// MaxLayerExtend returns the largest layer extend.
func (ap *ArcProto) MaxLayerExtend() icgeom.Coord {
	var m icgeom.Coord
	for i, l := range ap.Layers {
		if i == 0 || l.Extend > m {
			m = l.Extend
		}
	}
	return m
}

// MinLayerExtend returns the smallest layer extend.
func (ap *ArcProto) MinLayerExtend() icgeom.Coord {
	var m icgeom.Coord
	for i, l := range ap.Layers {
		if i == 0 || l.Extend < m {
			m = l.Extend
		}
	}
	return m
}

// String returns the template name.
func (ap *ArcProto) String() string {
	return ap.Name
}
