package shape

import (
	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/tech"
)

// Option configures a Builder during creation.
//
// Example:
//
//	// Everything, in cell coordinates
//	b := shape.NewBuilder(rec)
//
//	// Metal only, rotated by 90 degrees, sharing shrink tables
//	b := shape.NewBuilder(rec,
//	    shape.WithFunctions(tech.NewFunctionSet(tech.FuncMetal)),
//	    shape.WithCellOrientation(icgeom.Rotation(900)),
//	    shape.WithShrinkage(cache))
type Option func(*options)

// options holds optional configuration for Builder creation.
type options struct {
	cellOrient icgeom.Orientation
	shrinks    *shrink.Cache
	functions  tech.FunctionSet
	reasonable bool
	electrical *tech.Technology
	noArrows   bool
}

// defaultOptions returns the default builder options.
func defaultOptions() options {
	return options{
		functions: tech.AllFunctions,
	}
}

// WithCellOrientation applies o, about the cell origin, to every shape.
func WithCellOrientation(o icgeom.Orientation) Option {
	return func(opts *options) {
		opts.cellOrient = o
	}
}

// WithShrinkage makes ShapeOfCell take shrink tables from c instead of
// building a new one on every call. The cache may be shared by builders
// on different goroutines.
func WithShrinkage(c *shrink.Cache) Option {
	return func(opts *options) {
		opts.shrinks = c
	}
}

// WithFunctions restricts output to layers whose function is in fs.
func WithFunctions(fs tech.FunctionSet) Option {
	return func(opts *options) {
		opts.functions = fs
	}
}

// WithReasonable limits multi-cut contacts to their outer ring of cuts.
func WithReasonable() Option {
	return func(opts *options) {
		opts.reasonable = true
	}
}

// WithElectrical skips the pseudo layers of wires, using the memoized layer
// lists of t.
func WithElectrical(t *tech.Technology) Option {
	return func(opts *options) {
		opts.electrical = t
	}
}

// WithoutArrows suppresses arrowheads on wires.
func WithoutArrows() Option {
	return func(opts *options) {
		opts.noArrows = true
	}
}
