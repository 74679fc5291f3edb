package icgeom

// Style is the rendering semantics of an emitted shape. It determines how
// buffered points are interpreted by the transform pipeline and the sinks.
type Style uint8

const (
	// StyleFilled is a closed, filled polygon.
	StyleFilled Style = iota

	// StyleClosed is a closed polygon outline.
	StyleClosed

	// StyleOpened is an open polyline.
	StyleOpened

	// StyleOpenedDotted is an open dotted polyline.
	StyleOpenedDotted

	// StyleOpenedDashed is an open dashed polyline.
	StyleOpenedDashed

	// StyleVectors is a set of independent line segments, one per point pair.
	StyleVectors

	// StyleCross is a small cross at the first point.
	StyleCross

	// StyleBigCross is a large cross at the first point.
	StyleBigCross

	// StyleCircle is a circle outline: center, then a point on the circle.
	StyleCircle

	// StyleThickCircle is a thick circle outline: center, then a point on the circle.
	StyleThickCircle

	// StyleDisc is a filled circle: center, then a point on the circle.
	StyleDisc

	// StyleCircleArc is a counter-clockwise arc: center, start, end.
	StyleCircleArc

	// StyleThickCircleArc is a thick counter-clockwise arc: center, start, end.
	StyleThickCircleArc

	// StyleText is a text anchor point.
	StyleText
)

var styleNames = [...]string{
	StyleFilled:         "filled",
	StyleClosed:         "closed",
	StyleOpened:         "opened",
	StyleOpenedDotted:   "opened-dotted",
	StyleOpenedDashed:   "opened-dashed",
	StyleVectors:        "vectors",
	StyleCross:          "cross",
	StyleBigCross:       "big-cross",
	StyleCircle:         "circle",
	StyleThickCircle:    "thick-circle",
	StyleDisc:           "disc",
	StyleCircleArc:      "circle-arc",
	StyleThickCircleArc: "thick-circle-arc",
	StyleText:           "text",
}

// String returns the style name.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// ParseStyle returns the Style with the given name.
func ParseStyle(name string) (Style, bool) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), true // #nosec G115 -- bounded by styleNames
		}
	}
	return 0, false
}

// IsArc reports whether s encodes a circular arc as center, start and end.
func (s Style) IsArc() bool {
	return s == StyleCircleArc || s == StyleThickCircleArc
}

// IsCircle reports whether s encodes a circle or disc as center and rim point.
func (s Style) IsCircle() bool {
	return s == StyleCircle || s == StyleThickCircle || s == StyleDisc
}

// IsOpened reports whether s is an open polyline.
func (s Style) IsOpened() bool {
	return s == StyleOpened || s == StyleOpenedDotted || s == StyleOpenedDashed
}

// IsText reports whether s is a text anchor.
func (s Style) IsText() bool {
	return s == StyleText
}

// PointCount returns the fixed number of points s requires, or 0 when any
// count is allowed.
func (s Style) PointCount() int {
	switch {
	case s.IsArc():
		return 3
	case s.IsCircle():
		return 2
	}
	return 0
}
