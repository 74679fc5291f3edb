package fixture

// document is the decoded form of a fixture file.
type document struct {
	Name   string     `toml:"name" yaml:"name"`
	Layers []layerDoc `toml:"layers" yaml:"layers"`
	Nodes  []nodeDoc  `toml:"nodes" yaml:"nodes"`
	Arcs   []arcDoc   `toml:"arcs" yaml:"arcs"`
	Cells  []cellDoc  `toml:"cells" yaml:"cells"`
}

type layerDoc struct {
	Name       string `toml:"name" yaml:"name"`
	Function   string `toml:"function" yaml:"function"`
	Pseudo     bool   `toml:"pseudo" yaml:"pseudo"`
	NoOverride bool   `toml:"no_override" yaml:"no_override"`
}

type nodeDoc struct {
	Name       string         `toml:"name" yaml:"name"`
	Kind       string         `toml:"kind" yaml:"kind"`
	Size       []float64      `toml:"size" yaml:"size"`
	Layers     []nodeLayerDoc `toml:"layers" yaml:"layers"`
	Ports      []portDoc      `toml:"ports" yaml:"ports"`
	Serpentine *serpentineDoc `toml:"serpentine" yaml:"serpentine"`
}

type nodeLayerDoc struct {
	Layer string `toml:"layer" yaml:"layer"`
	Style string `toml:"style" yaml:"style"`
	Rep   string `toml:"rep" yaml:"rep"`

	// Inset is the distance of the box edges from the node edges: left,
	// bottom, right, top.
	Inset []float64 `toml:"inset" yaml:"inset"`

	// Points are edge points as [x multiplier, x offset, y multiplier,
	// y offset].
	Points [][]float64 `toml:"points" yaml:"points"`

	Cut *cutDoc `toml:"cut" yaml:"cut"`

	// Width and Extend are the serpentine left and right widths and the
	// tail and head extensions.
	Width  []float64 `toml:"width" yaml:"width"`
	Extend []float64 `toml:"extend" yaml:"extend"`
}

type cutDoc struct {
	Size  float64 `toml:"size" yaml:"size"`
	Sep1D float64 `toml:"sep1d" yaml:"sep1d"`
	Sep2D float64 `toml:"sep2d" yaml:"sep2d"`
	Align string  `toml:"align" yaml:"align"`
}

type portDoc struct {
	Name  string    `toml:"name" yaml:"name"`
	Inset []float64 `toml:"inset" yaml:"inset"`
	Role  string    `toml:"role" yaml:"role"`
}

type serpentineDoc struct {
	GateLength    float64 `toml:"gate_length" yaml:"gate_length"`
	PolyOutset    float64 `toml:"poly_outset" yaml:"poly_outset"`
	PolyInset     float64 `toml:"poly_inset" yaml:"poly_inset"`
	DiffPortWidth float64 `toml:"diff_port_width" yaml:"diff_port_width"`
}

type arcDoc struct {
	Name       string        `toml:"name" yaml:"name"`
	Curvable   bool          `toml:"curvable" yaml:"curvable"`
	ArrowSize  float64       `toml:"arrow_size" yaml:"arrow_size"`
	BubbleSize float64       `toml:"bubble_size" yaml:"bubble_size"`
	Layers     []arcLayerDoc `toml:"layers" yaml:"layers"`
}

type arcLayerDoc struct {
	Layer  string  `toml:"layer" yaml:"layer"`
	Extend float64 `toml:"extend" yaml:"extend"`
	Style  string  `toml:"style" yaml:"style"`
}

type cellDoc struct {
	Name  string    `toml:"name" yaml:"name"`
	Nodes []instDoc `toml:"nodes" yaml:"nodes"`
	Arcs  []wireDoc `toml:"arcs" yaml:"arcs"`
}

type instDoc struct {
	Name  string    `toml:"name" yaml:"name"`
	Proto string    `toml:"proto" yaml:"proto"`
	At    []float64 `toml:"at" yaml:"at"`
	Size  []float64 `toml:"size" yaml:"size"`

	// Angle is in degrees.
	Angle   float64 `toml:"angle" yaml:"angle"`
	MirrorX bool    `toml:"mirror_x" yaml:"mirror_x"`
	MirrorY bool    `toml:"mirror_y" yaml:"mirror_y"`

	Trace      [][]float64 `toml:"trace" yaml:"trace"`
	GateLength float64     `toml:"gate_length" yaml:"gate_length"`
	Align      string      `toml:"align" yaml:"align"`
	Spacing    float64     `toml:"spacing" yaml:"spacing"`
	Color      string      `toml:"color" yaml:"color"`
}

type wireDoc struct {
	Proto  string    `toml:"proto" yaml:"proto"`
	Tail   string    `toml:"tail" yaml:"tail"`
	Head   string    `toml:"head" yaml:"head"`
	TailAt []float64 `toml:"tail_at" yaml:"tail_at"`
	HeadAt []float64 `toml:"head_at" yaml:"head_at"`
	Extend float64   `toml:"extend" yaml:"extend"`

	// TailExtended and HeadExtended default to true.
	TailExtended *bool `toml:"tail_extended" yaml:"tail_extended"`
	HeadExtended *bool `toml:"head_extended" yaml:"head_extended"`

	TailNegated bool    `toml:"tail_negated" yaml:"tail_negated"`
	HeadNegated bool    `toml:"head_negated" yaml:"head_negated"`
	TailArrow   bool    `toml:"tail_arrow" yaml:"tail_arrow"`
	HeadArrow   bool    `toml:"head_arrow" yaml:"head_arrow"`
	BodyArrow   bool    `toml:"body_arrow" yaml:"body_arrow"`
	Radius      float64 `toml:"radius" yaml:"radius"`
	Color       string  `toml:"color" yaml:"color"`
}
