package tech

import "strings"

// Function is the fabrication role of a layer.
type Function uint8

const (
	FuncUnknown Function = iota
	FuncMetal
	FuncPoly // field poly
	FuncGate // gate poly over diffusion
	FuncDiff
	FuncContact
	FuncImplant
	FuncWell
	FuncArt
	funcCount
)

var functionNames = [...]string{
	FuncUnknown: "unknown",
	FuncMetal:   "metal",
	FuncPoly:    "poly",
	FuncGate:    "gate",
	FuncDiff:    "diff",
	FuncContact: "contact",
	FuncImplant: "implant",
	FuncWell:    "well",
	FuncArt:     "art",
}

// String returns the function name.
func (f Function) String() string {
	if f < funcCount {
		return functionNames[f]
	}
	return "unknown"
}

// ParseFunction returns the Function with the given name.
func ParseFunction(name string) (Function, bool) {
	name = strings.ToLower(name)
	for i, n := range functionNames {
		if n == name {
			return Function(i), true // #nosec G115 -- bounded by functionNames
		}
	}
	return FuncUnknown, false
}

// IsPoly reports whether f is field or gate polysilicon.
func (f Function) IsPoly() bool {
	return f == FuncPoly || f == FuncGate
}

// FunctionSet is a set of layer functions.
type FunctionSet uint32

// AllFunctions contains every function.
const AllFunctions FunctionSet = 1<<funcCount - 1

// NewFunctionSet returns the set of the given functions.
func NewFunctionSet(fs ...Function) FunctionSet {
	var s FunctionSet
	for _, f := range fs {
		s |= 1 << f
	}
	return s
}

// Contains reports whether f is in s.
func (s FunctionSet) Contains(f Function) bool {
	return s&(1<<f) != 0
}

// Layer is one fabrication or artwork layer.
type Layer struct {
	Name     string
	Function Function

	// Pseudo layers exist only for display and are skipped in electrical mode.
	Pseudo bool

	// NoOverride layers must never receive a colour override.
	NoOverride bool

	// Index is the layer's position in its technology.
	Index int
}

// String returns the layer name.
func (l *Layer) String() string {
	if l == nil {
		return "<nil>"
	}
	return l.Name
}
