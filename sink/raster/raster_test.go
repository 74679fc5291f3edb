package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"
)

func g(v int64) icgeom.Coord { return icgeom.FromGrid(v) }

func isWhite(c color.Color) bool {
	r, gr, b, _ := c.RGBA()
	return r == 0xffff && gr == 0xffff && b == 0xffff
}

func TestRegistered(t *testing.T) {
	require.True(t, sink.IsRegistered("raster"))
	r, err := sink.NewRenderer("raster")
	require.NoError(t, err)
	assert.IsType(t, &Renderer{}, r)
}

func TestRenderBoxAndDisc(t *testing.T) {
	metal := &tech.Layer{Name: "metal", Function: tech.FuncMetal}
	r := New()
	require.NoError(t, r.Begin(icgeom.Box(0, 0, g(100), g(100)), 100, 100))
	r.EmitBox(metal, icgeom.Box(0, 0, g(40), g(40)))
	r.EmitPolygon([]icgeom.Point{icgeom.PtGrid(75, 75), icgeom.PtGrid(85, 75)}, icgeom.StyleDisc, metal, color.Black, nil)
	require.NoError(t, r.End())

	img := r.Image()
	tests := []struct {
		name  string
		x, y  int
		white bool
	}{
		{"inside box", 20, 80, false},
		{"outside", 60, 40, true},
		{"disc center", 75, 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.white, isWhite(img.At(tt.x, tt.y)), "pixel (%d,%d)", tt.x, tt.y)
		})
	}
}

func TestWriteToPNG(t *testing.T) {
	r := New()
	_, err := r.WriteTo(&bytes.Buffer{})
	assert.Error(t, err, "WriteTo before Begin")
	require.NoError(t, r.Begin(icgeom.Box(0, 0, g(10), g(10)), 16, 8))
	r.EmitPolygon([]icgeom.Point{icgeom.PtGrid(0, 0), icgeom.PtGrid(10, 10)}, icgeom.StyleOpened, nil, nil, &tech.PortProto{Name: "a"})
	r.EmitPolygon([]icgeom.Point{icgeom.PtGrid(5, 5)}, icgeom.StyleCross, nil, nil, nil)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}
