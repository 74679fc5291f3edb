package shape

import (
	"image/color"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/multicut"
	"github.com/gogpu/icgeom/serpentine"
	"github.com/gogpu/icgeom/tech"
)

// ShapeOfNode emits every wanted layer of n and returns the number of
// shapes emitted.
//
// Serpentine transistors with a valid trace follow it; polygonal nodes
// with a trace use it as their outline on every layer. Anything else is
// drawn from the template's edge formulas at the instance size.
func (b *Builder) ShapeOfNode(n *cell.NodeInst) int {
	start := b.emitted
	b.node = n
	defer func() { b.node = nil }()

	np := n.Proto
	tr := b.transistor(n)
	for i := range np.Layers {
		nl := &np.Layers[i]
		if !b.wanted(nl.Layer) {
			continue
		}
		ov := overrideFor(n.Color, nl.Layer)
		switch {
		case tr != nil:
			tr.Outline(i, ov, b)
		case np.Kind == tech.KindPolygonal && len(n.Trace) > 0:
			for _, p := range n.Trace {
				b.buf.Push(p)
			}
			b.PushPoly(nl.Style, nl.Layer, ov, nil)
		default:
			b.plainLayer(n, nl, ov)
		}
	}
	return b.emitted - start
}

// transistor returns the serpentine view of n, or nil when n is drawn
// plainly.
func (b *Builder) transistor(n *cell.NodeInst) *serpentine.Transistor {
	if n.Proto.Kind != tech.KindSerpentine || len(n.Trace) == 0 {
		return nil
	}
	tr, err := serpentine.New(n.Proto, n.Trace, n.GateLength)
	if err != nil {
		icgeom.Logger().Debug("shape: serpentine fallback", "node", n.Name, "err", err)
		return nil
	}
	return tr
}

func (b *Builder) plainLayer(n *cell.NodeInst, nl *tech.NodeLayer, ov color.Color) {
	switch nl.Rep {
	case tech.RepBox:
		if len(nl.Points) < 2 {
			return
		}
		b.pushBox(nl.Box(n.Size), nl.Style)
		b.PushPoly(nl.Style, nl.Layer, ov, nil)
	case tech.RepPoints:
		for _, ep := range nl.Points {
			b.buf.Push(ep.Eval(n.Size))
		}
		b.PushPoly(nl.Style, nl.Layer, ov, nil)
	case tech.RepMultiCut:
		l := multicut.Compute(nl.Box(n.Size), b.cutParams(n, nl))
		count := l.Total()
		if b.opts.reasonable {
			count = l.ReasonableCount()
		}
		for k := range count {
			b.pushBox(l.Cut(k), nl.Style)
			b.PushPoly(nl.Style, nl.Layer, ov, nil)
		}
	}
}

// cutParams returns the cut parameters of nl with the per-instance
// alignment and spacing of n applied.
func (b *Builder) cutParams(n *cell.NodeInst, nl *tech.NodeLayer) multicut.Params {
	p := *nl.Cut
	if n.CutAlignment != nil {
		p.Alignment = *n.CutAlignment
	}
	if n.CutSpacing > 0 {
		p.Sep2D = n.CutSpacing
	}
	return p
}

// CutLayout returns the multi-cut layout of layer i of n, as ShapeOfNode
// would place it.
func (b *Builder) CutLayout(n *cell.NodeInst, i int) (multicut.Layout, bool) {
	nl := &n.Proto.Layers[i]
	if nl.Rep != tech.RepMultiCut {
		return multicut.Layout{}, false
	}
	return multicut.Compute(nl.Box(n.Size), b.cutParams(n, nl)), true
}
