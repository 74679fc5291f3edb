// Package raster provides a renderer that rasterizes emitted shapes into an
// RGBA image and writes it as PNG.
//
// Importing the package registers it under the name "raster":
//
//	import _ "github.com/gogpu/icgeom/sink/raster"
//
//	r, _ := sink.NewRenderer("raster")
//	r.Begin(view, 800, 600)
//	builder := shape.NewBuilder(r)
//	...
//	r.End()
//	r.WriteTo(f)
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

func init() {
	sink.Register("raster", func() sink.Renderer {
		return New()
	})
}

// ErrNotBegun is returned when output is requested before Begin.
var ErrNotBegun = errors.New("raster: Begin not called")

// Number of segments used to approximate a full circle.
const circleSegments = 64

// Renderer draws shapes into an RGBA image.
type Renderer struct {
	img *image.RGBA
	ras *vector.Rasterizer
	vp  sink.Viewport

	// Background fills the image on Begin; nil leaves it transparent.
	Background color.Color

	// LineWidth is the width in pixels of outlines and polylines.
	LineWidth float64
}

var _ sink.Renderer = (*Renderer)(nil)

// New creates a renderer with a white background and one-pixel lines.
func New() *Renderer {
	return &Renderer{Background: color.White, LineWidth: 1}
}

// Begin allocates a width x height image showing view.
func (r *Renderer) Begin(view icgeom.Rect, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("raster: image size must be positive")
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.ras = vector.NewRasterizer(width, height)
	r.vp = sink.NewViewport(view, width, height)
	if r.Background != nil {
		draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	}
	return nil
}

// End finishes drawing.
func (r *Renderer) End() error {
	if r.img == nil {
		return ErrNotBegun
	}
	return nil
}

// Image returns the rendered image, or nil before Begin.
func (r *Renderer) Image() *image.RGBA { return r.img }

// WriteTo encodes the image as PNG.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	if r.img == nil {
		return 0, ErrNotBegun
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, r.img)
	return cw.n, err
}

// EmitBox fills the box.
func (r *Renderer) EmitBox(layer *tech.Layer, box icgeom.Rect) {
	if r.img == nil {
		return
	}
	pts := [4]icgeom.Point{
		box.Min,
		{X: box.Max.X, Y: box.Min.Y},
		box.Max,
		{X: box.Min.X, Y: box.Max.Y},
	}
	r.fill(r.mapAll(pts[:]), sink.LayerColor(layer, nil))
}

// EmitPolygon draws the shape according to its style.
func (r *Renderer) EmitPolygon(pts []icgeom.Point, style icgeom.Style, layer *tech.Layer, override color.Color, _ *tech.PortProto) {
	if r.img == nil || len(pts) == 0 {
		return
	}
	c := sink.LayerColor(layer, override)
	switch {
	case style == icgeom.StyleFilled:
		r.fill(r.mapAll(pts), c)
	case style == icgeom.StyleClosed:
		r.polyline(r.mapAll(pts), true, c)
	case style.IsOpened():
		r.polyline(r.mapAll(pts), false, c)
	case style == icgeom.StyleVectors:
		m := r.mapAll(pts)
		for i := 0; i+1 < len(m); i += 2 {
			r.segment(m[i], m[i+1], c)
		}
	case style.IsCircle() && len(pts) == 2:
		ring := r.arc(pts[0], pts[1], pts[1])
		if style == icgeom.StyleDisc {
			r.fill(ring, c)
		} else {
			r.polyline(ring, true, c)
		}
	case style.IsArc() && len(pts) == 3:
		r.polyline(r.arc(pts[0], pts[1], pts[2]), false, c)
	default:
		// Crosses and text anchors are drawn as a small cross.
		size := 3.0
		if style == icgeom.StyleBigCross {
			size = 6
		}
		x, y := r.vp.Map(pts[0])
		r.segment([2]float64{x - size, y}, [2]float64{x + size, y}, c)
		r.segment([2]float64{x, y - size}, [2]float64{x, y + size}, c)
	}
}

func (r *Renderer) mapAll(pts []icgeom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i][0], out[i][1] = r.vp.Map(p)
	}
	return out
}

// arc returns device points along the counter-clockwise arc around c from
// s to e; coincident ends give a full circle.
func (r *Renderer) arc(c, s, e icgeom.Point) [][2]float64 {
	rad := icgeom.Distance(c, s)
	a0 := math.Atan2(float64(s.Y-c.Y), float64(s.X-c.X))
	a1 := math.Atan2(float64(e.Y-c.Y), float64(e.X-c.X))
	sweep := math.Mod(a1-a0, 2*math.Pi)
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}
	n := max(2, int(math.Ceil(circleSegments*sweep/(2*math.Pi))))
	out := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		p := icgeom.Point{
			X: c.X + icgeom.FromFloat(rad*math.Cos(a)),
			Y: c.Y + icgeom.FromFloat(rad*math.Sin(a)),
		}
		var q [2]float64
		q[0], q[1] = r.vp.Map(p)
		out = append(out, q)
	}
	return out
}

func (r *Renderer) fill(pts [][2]float64, c color.Color) {
	if len(pts) < 3 {
		r.polyline(pts, false, c)
		return
	}
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p[0]), float32(p[1]))
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

func (r *Renderer) polyline(pts [][2]float64, closed bool, c color.Color) {
	for i := 0; i+1 < len(pts); i++ {
		r.segment(pts[i], pts[i+1], c)
	}
	if closed && len(pts) > 2 {
		r.segment(pts[len(pts)-1], pts[0], c)
	}
}

// segment fills a thin quad around a line segment.
func (r *Renderer) segment(a, b [2]float64, c color.Color) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	hw := r.LineWidth / 2
	if l == 0 {
		r.fill([][2]float64{
			{a[0] - hw, a[1] - hw},
			{a[0] + hw, a[1] - hw},
			{a[0] + hw, a[1] + hw},
			{a[0] - hw, a[1] + hw},
		}, c)
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	r.fill([][2]float64{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
	}, c)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
