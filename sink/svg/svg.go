// Package svg provides a renderer that writes emitted shapes as an SVG
// document. Importing the package registers it under the name "svg".
package svg

import (
	"errors"
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

func init() {
	sink.Register("svg", func() sink.Renderer {
		return New()
	})
}

// ErrNotFinished is returned by WriteTo before End.
var ErrNotFinished = errors.New("svg: document not finished")

// Renderer builds an SVG document in memory.
type Renderer struct {
	sb   strings.Builder
	vp   sink.Viewport
	open bool
	done bool

	// Title is written as the document title when set.
	Title string
}

var _ sink.Renderer = (*Renderer)(nil)

// New creates an SVG renderer.
func New() *Renderer {
	return &Renderer{}
}

// Begin starts a document of width x height user units showing view.
func (r *Renderer) Begin(view icgeom.Rect, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("svg: document size must be positive")
	}
	r.sb.Reset()
	r.vp = sink.NewViewport(view, width, height)
	r.open, r.done = true, false
	fmt.Fprintf(&r.sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="%d" height="%d" fill="white"/>
`, width, height, width, height, width, height)
	if r.Title != "" {
		fmt.Fprintf(&r.sb, "<title>%s</title>\n", html.EscapeString(r.Title))
	}
	return nil
}

// End closes the document.
func (r *Renderer) End() error {
	if !r.open {
		return errors.New("svg: Begin not called")
	}
	r.sb.WriteString("</svg>\n")
	r.open, r.done = false, true
	return nil
}

// WriteTo writes the finished document.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	if !r.done {
		return 0, ErrNotFinished
	}
	n, err := io.WriteString(w, r.sb.String())
	return int64(n), err
}

// String returns the document written so far.
func (r *Renderer) String() string { return r.sb.String() }

// EmitBox writes a rect element.
func (r *Renderer) EmitBox(layer *tech.Layer, box icgeom.Rect) {
	if !r.open {
		return
	}
	x0, y0 := r.vp.Map(icgeom.Point{X: box.Min.X, Y: box.Max.Y})
	x1, y1 := r.vp.Map(icgeom.Point{X: box.Max.X, Y: box.Min.Y})
	fmt.Fprintf(&r.sb, `<rect x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
		num(x0), num(y0), num(x1-x0), num(y1-y0), paint(layer, nil, true))
}

// EmitPolygon writes one element for the shape.
func (r *Renderer) EmitPolygon(pts []icgeom.Point, style icgeom.Style, layer *tech.Layer, override color.Color, port *tech.PortProto) {
	if !r.open || len(pts) == 0 {
		return
	}
	switch {
	case style == icgeom.StyleFilled:
		r.poly("polygon", pts, paint(layer, override, true), port)
	case style == icgeom.StyleClosed:
		r.poly("polygon", pts, paint(layer, override, false), port)
	case style.IsOpened():
		attrs := paint(layer, override, false)
		switch style {
		case icgeom.StyleOpenedDotted:
			attrs += ` stroke-dasharray="1 2"`
		case icgeom.StyleOpenedDashed:
			attrs += ` stroke-dasharray="4 2"`
		}
		r.poly("polyline", pts, attrs, port)
	case style == icgeom.StyleVectors:
		for i := 0; i+1 < len(pts); i += 2 {
			r.poly("polyline", pts[i:i+2], paint(layer, override, false), port)
		}
	case style.IsCircle() && len(pts) == 2:
		cx, cy := r.vp.Map(pts[0])
		rad := r.vp.Scale(icgeom.FromFloat(icgeom.Distance(pts[0], pts[1])))
		fmt.Fprintf(&r.sb, `<circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			num(cx), num(cy), num(rad), paint(layer, override, style == icgeom.StyleDisc))
	case style.IsArc() && len(pts) == 3:
		r.arc(pts[0], pts[1], pts[2], paint(layer, override, false))
	default:
		x, y := r.vp.Map(pts[0])
		s := 3.0
		if style == icgeom.StyleBigCross {
			s = 6
		}
		fmt.Fprintf(&r.sb, `<path d="M%s %sH%sM%s %sV%s" %s/>`+"\n",
			num(x-s), num(y), num(x+s), num(x), num(y-s), num(y+s), paint(layer, override, false))
	}
}

func (r *Renderer) poly(elem string, pts []icgeom.Point, attrs string, port *tech.PortProto) {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		x, y := r.vp.Map(p)
		sb.WriteString(num(x))
		sb.WriteByte(',')
		sb.WriteString(num(y))
	}
	id := ""
	if port != nil {
		id = fmt.Sprintf(` data-port="%s"`, html.EscapeString(port.Name))
	}
	fmt.Fprintf(&r.sb, `<%s points="%s" %s%s/>`+"\n", elem, sb.String(), attrs, id)
}

// arc writes the counter-clockwise arc around c from s to e. The device Y
// axis points down, so counter-clockwise in layout is sweep-flag 0.
func (r *Renderer) arc(c, s, e icgeom.Point, attrs string) {
	rad := r.vp.Scale(icgeom.FromFloat(icgeom.Distance(c, s)))
	if s == e {
		cx, cy := r.vp.Map(c)
		fmt.Fprintf(&r.sb, `<circle cx="%s" cy="%s" r="%s" %s/>`+"\n", num(cx), num(cy), num(rad), attrs)
		return
	}
	a0 := math.Atan2(float64(s.Y-c.Y), float64(s.X-c.X))
	a1 := math.Atan2(float64(e.Y-c.Y), float64(e.X-c.X))
	sweep := math.Mod(a1-a0, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	x0, y0 := r.vp.Map(s)
	x1, y1 := r.vp.Map(e)
	fmt.Fprintf(&r.sb, `<path d="M%s %sA%s %s 0 %d 0 %s %s" %s/>`+"\n",
		num(x0), num(y0), num(rad), num(rad), large, num(x1), num(y1), attrs)
}

func paint(layer *tech.Layer, override color.Color, filled bool) string {
	c := color.NRGBAModel.Convert(sink.LayerColor(layer, override)).(color.NRGBA)
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	op := float64(c.A) / 0xff
	class := ""
	if layer != nil {
		class = fmt.Sprintf(`class="%s" `, html.EscapeString(layer.Name))
	}
	if filled {
		return fmt.Sprintf(`%sfill="%s" fill-opacity="%s"`, class, hex, num(op))
	}
	return fmt.Sprintf(`%sfill="none" stroke="%s" stroke-opacity="%s"`, class, hex, num(op))
}

func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
