// SPDX-License-Identifier: MIT

package storage

import (
	"math"

	"github.com/cockroachdb/errors"
)

// StretchingType selects the 1D map used by a stretched dimension.
type StretchingType int

const (
	// StretchingID is the affine map, identical to a bounding box.
	StretchingID StretchingType = iota
	// StretchingLog places points uniformly in log space; needs Left > 0.
	StretchingLog
	// StretchingSinh clusters points around X0 with strength 1/Xsi
	// (Leentvaar–Oosterlee stretching); needs Xsi > 0.
	StretchingSinh
)

var stretchingNames = [...]string{"id", "log", "sinh"}

// String returns the tag used in the serialized format.
func (t StretchingType) String() string {
	if t < 0 || int(t) >= len(stretchingNames) {
		return "unknown"
	}
	return stretchingNames[t]
}

// ParseStretchingType parses a serialized stretching tag.
func ParseStretchingType(s string) (StretchingType, error) {
	for k, name := range stretchingNames {
		if name == s {
			return StretchingType(k), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidStretching, "unknown type %q", s)
}

// Stretching1D is the stretching of one dimension.
type Stretching1D struct {
	Type     StretchingType
	Interval Interval
	X0       float64 // sinh: clustering centre
	Xsi      float64 // sinh: clustering width
}

func (s Stretching1D) validate() error {
	if err := s.Interval.validate(); err != nil {
		return err
	}
	switch s.Type {
	case StretchingID:
	case StretchingLog:
		if s.Interval.Left <= 0 {
			return errors.Wrapf(ErrInvalidStretching, "log stretching needs left > 0, got %g", s.Interval.Left)
		}
	case StretchingSinh:
		if !(s.Xsi > 0) || math.IsInf(s.Xsi, 0) || math.IsNaN(s.X0) || math.IsInf(s.X0, 0) {
			return errors.Wrapf(ErrInvalidStretching, "sinh stretching needs finite x0 and xsi > 0, got x0=%g xsi=%g", s.X0, s.Xsi)
		}
	default:
		return errors.Wrapf(ErrInvalidStretching, "unknown type %d", int(s.Type))
	}
	return nil
}

func (s Stretching1D) fromUnit(t float64) float64 {
	iv := s.Interval
	switch s.Type {
	case StretchingLog:
		a, b := math.Log(iv.Left), math.Log(iv.Right)
		return math.Exp(a + t*(b-a))
	case StretchingSinh:
		c1 := math.Asinh((iv.Left - s.X0) / s.Xsi)
		c2 := math.Asinh((iv.Right - s.X0) / s.Xsi)
		return s.X0 + s.Xsi*math.Sinh(c1+t*(c2-c1))
	default:
		return iv.Left + t*iv.Width()
	}
}

func (s Stretching1D) toUnit(x float64) float64 {
	iv := s.Interval
	switch s.Type {
	case StretchingLog:
		a, b := math.Log(iv.Left), math.Log(iv.Right)
		return (math.Log(x) - a) / (b - a)
	case StretchingSinh:
		c1 := math.Asinh((iv.Left - s.X0) / s.Xsi)
		c2 := math.Asinh((iv.Right - s.X0) / s.Xsi)
		return (math.Asinh((x-s.X0)/s.Xsi) - c1) / (c2 - c1)
	default:
		return (x - iv.Left) / iv.Width()
	}
}

// Stretching maps the canonical unit cube to physical space with a
// non-uniform, monotone 1D map per dimension.
type Stretching struct {
	dims []Stretching1D
}

// NewStretching validates and copies the per-dimension maps.
func NewStretching(dims ...Stretching1D) (*Stretching, error) {
	if len(dims) == 0 {
		return nil, errors.Wrap(ErrInvalidDimension, "stretching needs at least one dimension")
	}
	for d, s := range dims {
		if err := s.validate(); err != nil {
			return nil, errors.Wrapf(err, "dim %d", d)
		}
	}
	return &Stretching{dims: append([]Stretching1D(nil), dims...)}, nil
}

// Dim returns the number of stretched dimensions.
func (s *Stretching) Dim() int { return len(s.dims) }

// Dimension returns the map of dimension d.
func (s *Stretching) Dimension(d int) Stretching1D { return s.dims[d] }

// FromUnit maps t ∈ [0,1] to physical space along d.
func (s *Stretching) FromUnit(d int, t float64) float64 { return s.dims[d].fromUnit(t) }

// ToUnit inverts FromUnit along d.
func (s *Stretching) ToUnit(d int, x float64) float64 { return s.dims[d].toUnit(x) }

// BoundingBox returns the box spanned by the stretched intervals.
func (s *Stretching) BoundingBox() *BoundingBox {
	b := &BoundingBox{intervals: make([]Interval, len(s.dims))}
	for d, sd := range s.dims {
		b.intervals[d] = sd.Interval
	}
	return b
}

// Equal compares all parameters exactly.
func (s *Stretching) Equal(o *Stretching) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.dims) != len(o.dims) {
		return false
	}
	for d := range s.dims {
		if s.dims[d] != o.dims[d] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *Stretching) Clone() *Stretching {
	return &Stretching{dims: append([]Stretching1D(nil), s.dims...)}
}
