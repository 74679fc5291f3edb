package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inverter = "../../internal/fixture/testdata/inverter.toml"

func TestRunSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "inv.svg")
	var stdout, stderr bytes.Buffer
	err := run([]string{"-fixture", inverter, "-output", out, "-ports"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), "</svg>")
	assert.Contains(t, stdout.String(), "inverter: 7 nodes, 6 wires")
	assert.Contains(t, stdout.String(), "(svg)")
}

func TestRunPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "row.png")
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-fixture", "../../internal/fixture/testdata/pads.yaml",
		"-cell", "row", "-output", out, "-width", "120", "-height", "90", "-reasonable",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestRunFunctions(t *testing.T) {
	dir := t.TempDir()
	var all, metal bytes.Buffer
	require.NoError(t, run([]string{"-fixture", inverter, "-output", filepath.Join(dir, "a.svg")}, &all, &bytes.Buffer{}))
	require.NoError(t, run([]string{"-fixture", inverter, "-output", filepath.Join(dir, "m.svg"), "-functions", "metal"}, &metal, &bytes.Buffer{}))
	assert.NotEqual(t, all.String(), metal.String())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no fixture", nil, "-fixture is required"},
		{"missing cell", []string{"-fixture", inverter, "-cell", "nand"}, `no cell "nand"`},
		{"bad function", []string{"-fixture", inverter, "-functions", "plasma"}, "unknown layer function"},
		{"bad extension", []string{"-fixture", inverter, "-output", filepath.Join(dir, "x.gif")}, "cannot choose a renderer"},
		{"bad renderer", []string{"-fixture", inverter, "-renderer", "pdf"}, "unknown renderer"},
		{"bad fixture", []string{"-fixture", "nope.json"}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRendererFor(t *testing.T) {
	name, err := rendererFor("", "a/b.PNG")
	require.NoError(t, err)
	assert.Equal(t, "raster", name)
	name, err = rendererFor("svg", "out.png")
	require.NoError(t, err)
	assert.Equal(t, "svg", name)
}
