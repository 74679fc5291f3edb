// Package fixture loads technologies and cells described in TOML or YAML.
//
// Distances are given in lambda and converted to Coord on load. Enumerated
// values (layer functions, styles, alignments) are spelled by name.
//
//	f, err := fixture.Load("testdata/inverter.toml")
//	if err != nil {
//	    return err
//	}
//	for _, c := range f.Cells {
//	    ...
//	}
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/tech"
)

// Errors returned while loading a fixture.
var (
	ErrUnknownFormat = errors.New("fixture: unknown format")
	ErrUnknownLayer  = errors.New("fixture: unknown layer")
	ErrUnknownProto  = errors.New("fixture: unknown template")
	ErrUnknownNode   = errors.New("fixture: unknown node")
	ErrBadValue      = errors.New("fixture: bad value")
)

// Format is the syntax of a fixture file.
type Format uint8

const (
	TOML Format = iota
	YAML
)

// String returns the format name.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Fixture is a loaded technology and the cells drawn with it.
type Fixture struct {
	Tech  *tech.Technology
	Cells []*cell.Cell
}

// Cell returns the cell called name, or nil.
func (f *Fixture) Cell(name string) *cell.Cell {
	for _, c := range f.Cells {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Load reads the fixture at path, choosing the format by extension.
func Load(path string) (*Fixture, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided on purpose
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("fixture: load %s: %w", path, err)
	}
	return f, nil
}

// Decode parses a fixture from r and builds it. Unknown fields are errors.
func Decode(r io.Reader, format Format) (*Fixture, error) {
	var doc document
	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, decodeError(err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	return doc.build()
}

// decodeError adds the position of a TOML syntax error to its message.
func decodeError(err error) error {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return fmt.Errorf("line %d column %d: %w", row, col, err)
	}
	var se *toml.StrictMissingError
	if errors.As(err, &se) {
		return fmt.Errorf("%w\n%s", err, se.String())
	}
	return err
}
