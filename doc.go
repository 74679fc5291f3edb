// Package icgeom turns IC layout descriptions into drawable polygons.
//
// # Overview
//
// A technology (package tech) defines layers, node templates and wire
// templates. A cell (package cell) places instances of those templates.
// The shape engine (package shape) converts each instance into finished
// polygons on layers and streams them to a sink (package sink), which may
// record them, measure them or render them to PNG or SVG.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/icgeom/shape"
//	    "github.com/gogpu/icgeom/sink"
//	)
//
//	rec := sink.NewRecorder()
//	b := shape.NewBuilder(rec)
//	b.ShapeOfCell(c)
//	for _, s := range rec.Shapes() {
//	    ...
//	}
//
// # Coordinate System
//
// Positions are fixed-point Coord values with 12 fractional bits. The
// integer part counts grid units, and one lambda is [GridPerLambda] grid
// units. Angles are integers in tenths of a degree, 0 pointing along +X
// and increasing counter-clockwise, so a right angle is 900.
//
// # Architecture
//
//   - icgeom: coordinates, angles, orientations, shape styles, logging
//   - tech: layers and templates
//   - cell: placed instances
//   - shrink: per-wire-end extension tables
//   - multicut: contact cut arrays
//   - serpentine: transistors drawn along a gate path
//   - shape: the builder that produces polygons
//   - sink: shape consumers and renderers
package icgeom

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
