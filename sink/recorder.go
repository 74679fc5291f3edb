package sink

import (
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/tech"
)

// Shape is one recorded emission.
type Shape struct {
	Points   []icgeom.Point
	Style    icgeom.Style
	Layer    *tech.Layer
	Override color.Color
	Port     *tech.PortProto

	// Box is set for shapes emitted through EmitBox; Points then holds the
	// minimum and maximum corners.
	Box bool
}

// Rect returns the rectangle of a box shape.
func (s *Shape) Rect() icgeom.Rect {
	if !s.Box || len(s.Points) != 2 {
		return icgeom.Rect{}
	}
	return icgeom.Rect{Min: s.Points[0], Max: s.Points[1]}
}

// Recorder is a Sink that stores a copy of every shape.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	shapes []Shape
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// EmitPolygon records a copy of the shape.
func (r *Recorder) EmitPolygon(pts []icgeom.Point, style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto) {
	r.shapes = append(r.shapes, Shape{
		Points:   append([]icgeom.Point(nil), pts...),
		Style:    style,
		Layer:    layer,
		Override: override,
		Port:     port,
	})
}

// EmitBox records the box.
func (r *Recorder) EmitBox(layer *tech.Layer, box icgeom.Rect) {
	r.shapes = append(r.shapes, Shape{
		Points: []icgeom.Point{box.Min, box.Max},
		Style:  icgeom.StyleFilled,
		Layer:  layer,
		Box:    true,
	})
}

// Shapes returns the recorded shapes in emission order.
func (r *Recorder) Shapes() []Shape { return r.shapes }

// Len returns the number of recorded shapes.
func (r *Recorder) Len() int { return len(r.shapes) }

// Reset drops all recorded shapes and keeps the storage.
func (r *Recorder) Reset() {
	clear(r.shapes)
	r.shapes = r.shapes[:0]
}

// Replay emits every recorded shape to dst in order.
func (r *Recorder) Replay(dst Sink) {
	for i := range r.shapes {
		s := &r.shapes[i]
		if s.Box {
			dst.EmitBox(s.Layer, s.Rect())
			continue
		}
		dst.EmitPolygon(s.Points, s.Style, s.Layer, s.Override, s.Port)
	}
}
