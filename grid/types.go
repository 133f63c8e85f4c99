package grid

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/SGpp/SGpp-sub016/basis"
)

// Type enumerates the supported grid types.
type Type int

const (
	// Linear uses hat functions on interior points.
	Linear Type = iota
	// LinearBoundary adds the level-0 boundary points to Linear.
	LinearBoundary
	// ModLinear uses the modified linear basis on interior points.
	ModLinear
)

var typeNames = map[Type]string{
	Linear:         "linear",
	LinearBoundary: "linearBoundary",
	ModLinear:      "modlinear",
}

// String returns the serialization tag of t.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType maps a serialization tag back to its Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownType, "%q", s)
}

// Boundary reports whether grids of this type carry boundary points.
func (t Type) Boundary() bool { return t == LinearBoundary }

// Basis returns the basis family of the type.
func (t Type) Basis() basis.Basis {
	switch t {
	case LinearBoundary:
		return basis.LinearBoundary{}
	case ModLinear:
		return basis.ModLinear{}
	default:
		return basis.Linear{}
	}
}

func (t Type) valid() bool {
	_, ok := typeNames[t]
	return ok
}

// MarshalYAML encodes the type as its tag.
func (t Type) MarshalYAML() (interface{}, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrUnknownType, "%d", int(t))
	}
	return t.String(), nil
}

// UnmarshalYAML decodes a type tag.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
