// Package tech holds the numeric technology parameters the shape engine
// consumes: layers and their functions, node templates with edge formulas,
// multi-cut and serpentine parameters, port templates and wire templates.
//
// A Technology is built once and is read-only afterwards, so it can be
// shared by engines running on different goroutines. Derived data, such as
// the electrical layers of a wire template, is memoized in a cache owned by
// the Technology.
package tech

import (
	"errors"
	"fmt"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/internal/cache"
)

// Errors returned by Validate and the Add methods.
var (
	ErrDuplicateName = errors.New("tech: duplicate name")
	ErrNoLayer       = errors.New("tech: missing layer")
	ErrBadPoints     = errors.New("tech: wrong number of points")
)

// Technology is a set of layers, node templates and wire templates.
type Technology struct {
	Name string

	layers []*Layer
	nodes  []*NodeProto
	arcs   []*ArcProto

	layerByName map[string]*Layer
	nodeByName  map[string]*NodeProto
	arcByName   map[string]*ArcProto

	electrical *cache.Cache[*ArcProto, []int]
}

// New creates an empty technology.
func New(name string) *Technology {
	return &Technology{
		Name:        name,
		layerByName: make(map[string]*Layer),
		nodeByName:  make(map[string]*NodeProto),
		arcByName:   make(map[string]*ArcProto),
		electrical:  cache.New[*ArcProto, []int](0),
	}
}

// AddLayer adds a layer and assigns its index.
func (t *Technology) AddLayer(l *Layer) error {
	if _, dup := t.layerByName[l.Name]; dup {
		return fmt.Errorf("%w: layer %q", ErrDuplicateName, l.Name)
	}
	l.Index = len(t.layers)
	t.layers = append(t.layers, l)
	t.layerByName[l.Name] = l
	return nil
}

// AddNode adds a node template after validating it.
func (t *Technology) AddNode(np *NodeProto) error {
	if _, dup := t.nodeByName[np.Name]; dup {
		return fmt.Errorf("%w: node %q", ErrDuplicateName, np.Name)
	}
	if err := validateNode(np); err != nil {
		return err
	}
	for i, pp := range np.Ports {
		pp.Index = i
	}
	t.nodes = append(t.nodes, np)
	t.nodeByName[np.Name] = np
	return nil
}

// AddArc adds a wire template after validating it. Zero decoration sizes
// are replaced by the defaults.
func (t *Technology) AddArc(ap *ArcProto) error {
	if _, dup := t.arcByName[ap.Name]; dup {
		return fmt.Errorf("%w: arc %q", ErrDuplicateName, ap.Name)
	}
	if len(ap.Layers) == 0 {
		return fmt.Errorf("%w: arc %q has no layers", ErrNoLayer, ap.Name)
	}
	for i, al := range ap.Layers {
		if al.Layer == nil {
			return fmt.Errorf("%w: arc %q layer %d", ErrNoLayer, ap.Name, i)
		}
	}
	if ap.ArrowSize == 0 {
		ap.ArrowSize = DefaultArrowSize
	}
	if ap.BubbleSize == 0 {
		ap.BubbleSize = DefaultBubbleSize
	}
	ap.Index = len(t.arcs)
	t.arcs = append(t.arcs, ap)
	t.arcByName[ap.Name] = ap
	return nil
}

func validateNode(np *NodeProto) error {
	for i := range np.Layers {
		nl := &np.Layers[i]
		if nl.Layer == nil {
			return fmt.Errorf("%w: node %q layer %d", ErrNoLayer, np.Name, i)
		}
		switch nl.Rep {
		case RepBox:
			if len(nl.Points) != 2 && np.Kind != KindSerpentine {
				return fmt.Errorf("%w: node %q layer %s box needs 2 points, has %d",
					ErrBadPoints, np.Name, nl.Layer.Name, len(nl.Points))
			}
		case RepMultiCut:
			if len(nl.Points) != 2 || nl.Cut == nil {
				return fmt.Errorf("%w: node %q layer %s multi-cut needs 2 points and cut parameters",
					ErrBadPoints, np.Name, nl.Layer.Name)
			}
		case RepPoints:
			if n := nl.Style.PointCount(); n != 0 && len(nl.Points) != n {
				return fmt.Errorf("%w: node %q layer %s style %s needs %d points, has %d",
					ErrBadPoints, np.Name, nl.Layer.Name, nl.Style, n, len(nl.Points))
			}
		}
	}
	for _, pp := range np.Ports {
		if len(pp.Points) != 2 && np.Kind != KindSerpentine {
			return fmt.Errorf("%w: node %q port %q needs 2 points", ErrBadPoints, np.Name, pp.Name)
		}
	}
	return nil
}

// Layer returns the layer with the given name, or nil.
func (t *Technology) Layer(name string) *Layer { return t.layerByName[name] }

// Node returns the node template with the given name, or nil.
func (t *Technology) Node(name string) *NodeProto { return t.nodeByName[name] }

// Arc returns the wire template with the given name, or nil.
func (t *Technology) Arc(name string) *ArcProto { return t.arcByName[name] }

// Layers returns the layers in index order.
func (t *Technology) Layers() []*Layer { return t.layers }

// Nodes returns the node templates in insertion order.
func (t *Technology) Nodes() []*NodeProto { return t.nodes }

// Arcs returns the wire templates in index order.
func (t *Technology) Arcs() []*ArcProto { return t.arcs }

// ElectricalLayers returns the indices of the layers of ap that are not
// pseudo layers. The result is memoized per template and must not be
// modified.
func (t *Technology) ElectricalLayers(ap *ArcProto) []int {
	return t.electrical.GetOrCreate(ap, func() []int {
		idx := make([]int, 0, len(ap.Layers))
		for i, al := range ap.Layers {
			if !al.Layer.Pseudo {
				idx = append(idx, i)
			}
		}
		icgeom.Logger().Debug("tech: electrical layers", "arc", ap.Name, "count", len(idx))
		return idx
	})
}
