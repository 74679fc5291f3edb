package fixture

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/multicut"
	"github.com/gogpu/icgeom/tech"
)

var kinds = map[string]tech.Kind{
	"":           tech.KindPlain,
	"plain":      tech.KindPlain,
	"polygonal":  tech.KindPolygonal,
	"serpentine": tech.KindSerpentine,
}

var reps = map[string]tech.Rep{
	"":         tech.RepBox,
	"box":      tech.RepBox,
	"points":   tech.RepPoints,
	"multicut": tech.RepMultiCut,
}

var roles = map[string]tech.PortRole{
	"":           tech.RoleNone,
	"poly-tail":  tech.RolePolyTail,
	"diff-left":  tech.RoleDiffLeft,
	"poly-head":  tech.RolePolyHead,
	"diff-right": tech.RoleDiffRight,
	"center":     tech.RoleCenter,
}

func lookup[V any](m map[string]V, what, name string) (V, error) {
	v, ok := m[strings.ToLower(name)]
	if !ok {
		return v, fmt.Errorf("%w: %s %q", ErrBadValue, what, name)
	}
	return v, nil
}

func (d *document) build() (*Fixture, error) {
	t := tech.New(d.Name)
	for _, ld := range d.Layers {
		fn := tech.FuncUnknown
		if ld.Function != "" {
			var ok bool
			if fn, ok = tech.ParseFunction(ld.Function); !ok {
				return nil, fmt.Errorf("%w: layer %s function %q", ErrBadValue, ld.Name, ld.Function)
			}
		}
		if err := t.AddLayer(&tech.Layer{Name: ld.Name, Function: fn, Pseudo: ld.Pseudo, NoOverride: ld.NoOverride}); err != nil {
			return nil, err
		}
	}
	for i := range d.Nodes {
		np, err := d.Nodes[i].proto(t)
		if err != nil {
			return nil, err
		}
		if err := t.AddNode(np); err != nil {
			return nil, err
		}
	}
	for i := range d.Arcs {
		ap, err := d.Arcs[i].proto(t)
		if err != nil {
			return nil, err
		}
		if err := t.AddArc(ap); err != nil {
			return nil, err
		}
	}

	f := &Fixture{Tech: t}
	for i := range d.Cells {
		c, err := d.Cells[i].cell(t)
		if err != nil {
			return nil, err
		}
		f.Cells = append(f.Cells, c)
	}
	icgeom.Logger().Info("fixture: loaded",
		"tech", t.Name, "layers", len(t.Layers()), "nodes", len(t.Nodes()), "arcs", len(t.Arcs()), "cells", len(f.Cells))
	return f, nil
}

func layerOf(t *tech.Technology, name, owner string) (*tech.Layer, error) {
	l := t.Layer(name)
	if l == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownLayer, name, owner)
	}
	return l, nil
}

func styleOf(name string) (icgeom.Style, error) {
	if name == "" {
		return icgeom.StyleFilled, nil
	}
	s, ok := icgeom.ParseStyle(name)
	if !ok {
		return s, fmt.Errorf("%w: style %q", ErrBadValue, name)
	}
	return s, nil
}

func (nd *nodeDoc) proto(t *tech.Technology) (*tech.NodeProto, error) {
	kind, err := lookup(kinds, "kind", nd.Kind)
	if err != nil {
		return nil, err
	}
	size, err := point(nd.Size, "size of "+nd.Name)
	if err != nil {
		return nil, err
	}
	np := &tech.NodeProto{Name: nd.Name, Kind: kind, DefaultSize: size}
	if s := nd.Serpentine; s != nil {
		np.Serpentine = tech.SerpentineParams{
			DefaultGateLength: icgeom.FromLambda(s.GateLength),
			PolyOutset:        icgeom.FromLambda(s.PolyOutset),
			PolyInset:         icgeom.FromLambda(s.PolyInset),
			DiffPortWidth:     icgeom.FromLambda(s.DiffPortWidth),
		}
	}

	for i := range nd.Layers {
		nl, err := nd.Layers[i].layer(t, nd.Name)
		if err != nil {
			return nil, err
		}
		np.Layers = append(np.Layers, nl)
	}
	for _, pd := range nd.Ports {
		role, err := lookup(roles, "port role", pd.Role)
		if err != nil {
			return nil, err
		}
		pts, err := inset(pd.Inset, "port "+pd.Name)
		if err != nil {
			return nil, err
		}
		np.Ports = append(np.Ports, &tech.PortProto{Name: pd.Name, Points: pts, Role: role})
	}
	return np, nil
}

func (ld *nodeLayerDoc) layer(t *tech.Technology, owner string) (tech.NodeLayer, error) {
	var nl tech.NodeLayer
	var err error
	if nl.Layer, err = layerOf(t, ld.Layer, owner); err != nil {
		return nl, err
	}
	if nl.Style, err = styleOf(ld.Style); err != nil {
		return nl, err
	}
	if nl.Rep, err = lookup(reps, "representation", ld.Rep); err != nil {
		return nl, err
	}

	where := owner + " layer " + ld.Layer
	if nl.Rep == tech.RepPoints {
		for _, p := range ld.Points {
			if len(p) != 4 {
				return nl, fmt.Errorf("%w: %s point needs 4 numbers, has %d", ErrBadValue, where, len(p))
			}
			nl.Points = append(nl.Points, tech.EdgePoint{
				X: tech.Edge{Multiplier: p[0], Offset: icgeom.FromLambda(p[1])},
				Y: tech.Edge{Multiplier: p[2], Offset: icgeom.FromLambda(p[3])},
			})
		}
	} else if nl.Points, err = inset(ld.Inset, where); err != nil {
		return nl, err
	}

	if c := ld.Cut; c != nil {
		align := multicut.AlignCenter
		if c.Align != "" {
			var ok bool
			if align, ok = multicut.ParseAlignment(c.Align); !ok {
				return nl, fmt.Errorf("%w: %s alignment %q", ErrBadValue, where, c.Align)
			}
		}
		sep2d := c.Sep2D
		if sep2d == 0 {
			sep2d = c.Sep1D
		}
		nl.Cut = &multicut.Params{
			SizeX:     icgeom.FromLambda(c.Size),
			SizeY:     icgeom.FromLambda(c.Size),
			Sep1D:     icgeom.FromLambda(c.Sep1D),
			Sep2D:     icgeom.FromLambda(sep2d),
			Alignment: align,
		}
	}

	if nl.LeftWidth, nl.RightWidth, err = pair(ld.Width, where+" width"); err != nil {
		return nl, err
	}
	if nl.TailExtend, nl.HeadExtend, err = pair(ld.Extend, where+" extend"); err != nil {
		return nl, err
	}
	return nl, nil
}

func (ad *arcDoc) proto(t *tech.Technology) (*tech.ArcProto, error) {
	ap := &tech.ArcProto{
		Name:       ad.Name,
		Curvable:   ad.Curvable,
		ArrowSize:  icgeom.FromLambda(ad.ArrowSize),
		BubbleSize: icgeom.FromLambda(ad.BubbleSize),
	}
	for _, ld := range ad.Layers {
		l, err := layerOf(t, ld.Layer, ad.Name)
		if err != nil {
			return nil, err
		}
		style, err := styleOf(ld.Style)
		if err != nil {
			return nil, err
		}
		ap.Layers = append(ap.Layers, tech.ArcLayer{Layer: l, Extend: icgeom.FromLambda(ld.Extend), Style: style})
	}
	return ap, nil
}

func (cd *cellDoc) cell(t *tech.Technology) (*cell.Cell, error) {
	c := cell.New(cd.Name)
	byName := make(map[string]*cell.NodeInst, len(cd.Nodes))
	for i := range cd.Nodes {
		id := &cd.Nodes[i]
		n, err := id.node(t, c)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", cd.Name, err)
		}
		if id.Name != "" {
			if _, dup := byName[id.Name]; dup {
				return nil, fmt.Errorf("cell %s: %w: node %q", cd.Name, tech.ErrDuplicateName, id.Name)
			}
			n.Name = id.Name
			byName[id.Name] = n
		}
	}
	for i := range cd.Arcs {
		if err := cd.Arcs[i].arc(t, c, byName); err != nil {
			return nil, fmt.Errorf("cell %s: %w", cd.Name, err)
		}
	}
	return c, nil
}

func (id *instDoc) node(t *tech.Technology, c *cell.Cell) (*cell.NodeInst, error) {
	np := t.Node(id.Proto)
	if np == nil {
		return nil, fmt.Errorf("%w: node %q", ErrUnknownProto, id.Proto)
	}
	at, err := point(id.At, "position of "+id.Name)
	if err != nil {
		return nil, err
	}
	size, err := point(id.Size, "size of "+id.Name)
	if err != nil {
		return nil, err
	}
	o := icgeom.Orient(int(math.Round(id.Angle*10)), id.MirrorX, id.MirrorY)
	n, err := c.AddNode(np, at, size, o)
	if err != nil {
		return nil, err
	}

	if len(id.Trace) > 0 {
		if np.Kind == tech.KindPlain {
			icgeom.Logger().Warn("fixture: trace ignored on plain node", "node", id.Name, "proto", np.Name)
		} else {
			trace := make([]icgeom.Point, 0, len(id.Trace))
			for _, p := range id.Trace {
				q, err := point(p, "trace of "+id.Name)
				if err != nil {
					return nil, err
				}
				trace = append(trace, q)
			}
			c.SetTrace(n, trace)
		}
	}
	n.GateLength = icgeom.FromLambda(id.GateLength)
	n.CutSpacing = icgeom.FromLambda(id.Spacing)
	if id.Align != "" {
		a, ok := multicut.ParseAlignment(id.Align)
		if !ok {
			return nil, fmt.Errorf("%w: node %s alignment %q", ErrBadValue, id.Name, id.Align)
		}
		n.CutAlignment = &a
	}
	if n.Color, err = parseColor(id.Color); err != nil {
		return nil, err
	}
	return n, nil
}

func (wd *wireDoc) arc(t *tech.Technology, c *cell.Cell, byName map[string]*cell.NodeInst) error {
	ap := t.Arc(wd.Proto)
	if ap == nil {
		return fmt.Errorf("%w: arc %q", ErrUnknownProto, wd.Proto)
	}
	tail, ok := byName[wd.Tail]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, wd.Tail)
	}
	head, ok := byName[wd.Head]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, wd.Head)
	}

	tailAt, headAt := tail.Anchor, head.Anchor
	var err error
	if len(wd.TailAt) > 0 {
		if tailAt, err = point(wd.TailAt, "tail of "+wd.Proto); err != nil {
			return err
		}
	}
	if len(wd.HeadAt) > 0 {
		if headAt, err = point(wd.HeadAt, "head of "+wd.Proto); err != nil {
			return err
		}
	}
	override, err := parseColor(wd.Color)
	if err != nil {
		return err
	}

	opts := []cell.ArcOption{
		cell.WithExtendOverMin(icgeom.FromLambda(wd.Extend)),
		cell.WithEnds(
			cell.End{Extended: orTrue(wd.TailExtended), Negated: wd.TailNegated, Arrowed: wd.TailArrow},
			cell.End{Extended: orTrue(wd.HeadExtended), Negated: wd.HeadNegated, Arrowed: wd.HeadArrow},
		),
		cell.WithRadius(icgeom.FromLambda(wd.Radius)),
		cell.WithColor(override),
	}
	if wd.BodyArrow {
		opts = append(opts, cell.WithBodyArrow())
	}
	_, err = c.AddArc(ap, tail.ID, tailAt, head.ID, headAt, opts...)
	return err
}

func orTrue(b *bool) bool { return b == nil || *b }

// point converts [x, y] in lambda. An empty list is the origin.
func point(v []float64, what string) (icgeom.Point, error) {
	switch len(v) {
	case 0:
		return icgeom.Point{}, nil
	case 2:
		return icgeom.PtLambda(v[0], v[1]), nil
	}
	return icgeom.Point{}, fmt.Errorf("%w: %s needs 2 numbers, has %d", ErrBadValue, what, len(v))
}

// pair converts [a, b] in lambda. An empty list is zero.
func pair(v []float64, what string) (a, b icgeom.Coord, err error) {
	switch len(v) {
	case 0:
		return 0, 0, nil
	case 2:
		return icgeom.FromLambda(v[0]), icgeom.FromLambda(v[1]), nil
	}
	return 0, 0, fmt.Errorf("%w: %s needs 2 numbers, has %d", ErrBadValue, what, len(v))
}

// inset converts [left, bottom, right, top] in lambda to a centered box.
// An empty list is the full node.
func inset(v []float64, what string) ([]tech.EdgePoint, error) {
	switch len(v) {
	case 0:
		return tech.Centered(0, 0, 0, 0), nil
	case 4:
		return tech.Centered(icgeom.FromLambda(v[0]), icgeom.FromLambda(v[1]),
			icgeom.FromLambda(v[2]), icgeom.FromLambda(v[3])), nil
	}
	return nil, fmt.Errorf("%w: %s inset needs 4 numbers, has %d", ErrBadValue, what, len(v))
}

// parseColor accepts an SVG color name, #rrggbb or #rrggbbaa. The empty
// string is no color.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return nil, fmt.Errorf("%w: color %q", ErrBadValue, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q", ErrBadValue, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil // #nosec G115 -- byte extraction
}
