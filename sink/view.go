package sink

import (
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/tech"
)

// Viewport maps layout coordinates onto a device of width x height units
// with Y pointing down. The view is scaled uniformly and centered.
type Viewport struct {
	view   icgeom.Rect
	scale  float64
	offX   float64
	offY   float64
	height int
}

// NewViewport fits view into a width x height device.
func NewViewport(view icgeom.Rect, width, height int) Viewport {
	vw := float64(view.Max.X - view.Min.X)
	vh := float64(view.Max.Y - view.Min.Y)
	v := Viewport{view: view, height: height, scale: 1}
	switch {
	case vw > 0 && vh > 0:
		v.scale = min(float64(width)/vw, float64(height)/vh)
	case vw > 0:
		v.scale = float64(width) / vw
	case vh > 0:
		v.scale = float64(height) / vh
	}
	v.offX = (float64(width) - vw*v.scale) / 2
	v.offY = (float64(height) - vh*v.scale) / 2
	return v
}

// Map returns the device position of p.
func (v Viewport) Map(p icgeom.Point) (x, y float64) {
	x = v.offX + float64(p.X-v.view.Min.X)*v.scale
	y = float64(v.height) - v.offY - float64(p.Y-v.view.Min.Y)*v.scale
	return x, y
}

// Scale returns the device length of d.
func (v Viewport) Scale(d icgeom.Coord) float64 {
	return float64(d) * v.scale
}

// Colors by layer function.
var functionColors = map[tech.Function]color.NRGBA{
	tech.FuncMetal:   {R: 0x40, G: 0x70, B: 0xe0, A: 0xa0},
	tech.FuncPoly:    {R: 0xe0, G: 0x30, B: 0x30, A: 0xa0},
	tech.FuncGate:    {R: 0xa0, G: 0x10, B: 0x10, A: 0xc0},
	tech.FuncDiff:    {R: 0x30, G: 0xb0, B: 0x40, A: 0xa0},
	tech.FuncContact: {R: 0x10, G: 0x10, B: 0x10, A: 0xff},
	tech.FuncImplant: {R: 0xe0, G: 0xd0, B: 0x40, A: 0x50},
	tech.FuncWell:    {R: 0xc0, G: 0xa0, B: 0x70, A: 0x40},
	tech.FuncArt:     {R: 0x60, G: 0x60, B: 0x60, A: 0xff},
}

// PortColor is the color of port shapes.
var PortColor = color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}

// LayerColor returns the color a renderer uses for a shape: the override
// when set, the port color for port shapes, and otherwise a color chosen
// by layer function.
func LayerColor(layer *tech.Layer, override color.Color) color.Color {
	switch {
	case override != nil:
		return override
	case layer == nil:
		return PortColor
	}
	if c, ok := functionColors[layer.Function]; ok {
		return c
	}
	return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xa0}
}
