// Package sink defines where synthesized shapes go.
//
// The shape engine depends only on the Sink interface. Two sinks live here:
// Recorder keeps copies of every shape for later replay, and Bounds folds
// every shape into a running bounding rectangle. Renderers that turn shapes
// into images register themselves by name, following the database/sql
// driver pattern:
//
//	import _ "github.com/gogpu/icgeom/sink/raster"
//
//	r, err := sink.NewRenderer("raster")
package sink

import (
	"image/color"
	"io"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/tech"
)

// Sink receives finished shapes.
//
// Slices passed to a Sink are owned by the caller and are valid only for
// the duration of the call; implementations that keep them must copy.
type Sink interface {
	// EmitPolygon receives the points of one shape. Arc styles pass center,
	// start and end; circle styles pass center and a rim point. layer is nil
	// for port shapes, in which case port is set.
	EmitPolygon(pts []icgeom.Point, style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto)

	// EmitBox receives a filled axis-aligned rectangle.
	EmitBox(layer *tech.Layer, box icgeom.Rect)
}

// Renderer is a Sink that draws shapes into an output document.
//
// Begin must be called before any shape is emitted; End finishes the
// document, after which WriteTo can be called.
type Renderer interface {
	Sink

	// Begin starts a document of width x height units showing view.
	Begin(view icgeom.Rect, width, height int) error

	// End finalizes the document.
	End() error

	// WriteTo writes the finished document.
	WriteTo(w io.Writer) (int64, error)
}

// Tee returns a Sink that forwards every shape to each of sinks in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) EmitPolygon(pts []icgeom.Point, style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto) {
	for _, s := range t {
		s.EmitPolygon(pts, style, layer, override, port)
	}
}

func (t tee) EmitBox(layer *tech.Layer, box icgeom.Rect) {
	for _, s := range t {
		s.EmitBox(layer, box)
	}
}
