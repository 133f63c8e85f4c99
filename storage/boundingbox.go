// SPDX-License-Identifier: MIT

package storage

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Interval is one dimension of a bounding box. The Dirichlet flags mark
// boundaries whose values are prescribed by a PDE layer; the engine only
// carries them.
type Interval struct {
	Left, Right    float64
	DirichletLeft  bool
	DirichletRight bool
}

// UnitInterval is [0,1] without Dirichlet flags.
var UnitInterval = Interval{Left: 0, Right: 1}

// Width returns Right − Left.
func (iv Interval) Width() float64 { return iv.Right - iv.Left }

func (iv Interval) validate() error {
	if math.IsNaN(iv.Left) || math.IsInf(iv.Left, 0) || math.IsNaN(iv.Right) || math.IsInf(iv.Right, 0) {
		return errors.Wrapf(ErrInvalidBoundingBox, "non-finite interval [%g,%g]", iv.Left, iv.Right)
	}
	if !(iv.Right > iv.Left) {
		return errors.Wrapf(ErrInvalidBoundingBox, "empty interval [%g,%g]", iv.Left, iv.Right)
	}
	return nil
}

// BoundingBox maps the canonical unit cube affinely onto a product of
// intervals.
type BoundingBox struct {
	intervals []Interval
}

// NewBoundingBox validates and copies the intervals.
func NewBoundingBox(intervals ...Interval) (*BoundingBox, error) {
	if len(intervals) == 0 {
		return nil, errors.Wrap(ErrInvalidDimension, "bounding box needs at least one interval")
	}
	for d, iv := range intervals {
		if err := iv.validate(); err != nil {
			return nil, errors.Wrapf(err, "dim %d", d)
		}
	}
	return &BoundingBox{intervals: append([]Interval(nil), intervals...)}, nil
}

// UnitBoundingBox returns [0,1]^dim.
func UnitBoundingBox(dim int) *BoundingBox {
	b := &BoundingBox{intervals: make([]Interval, dim)}
	for d := range b.intervals {
		b.intervals[d] = UnitInterval
	}
	return b
}

// Dim returns the number of intervals.
func (b *BoundingBox) Dim() int { return len(b.intervals) }

// Interval returns the interval along d.
func (b *BoundingBox) Interval(d int) Interval { return b.intervals[d] }

// Intervals returns a copy of all intervals.
func (b *BoundingBox) Intervals() []Interval { return append([]Interval(nil), b.intervals...) }

// Width returns the width along d.
func (b *BoundingBox) Width(d int) float64 { return b.intervals[d].Width() }

// FromUnit maps t ∈ [0,1] to the interval along d.
func (b *BoundingBox) FromUnit(d int, t float64) float64 {
	iv := b.intervals[d]
	return iv.Left + t*iv.Width()
}

// ToUnit maps x in the interval along d to [0,1].
func (b *BoundingBox) ToUnit(d int, x float64) float64 {
	iv := b.intervals[d]
	return (x - iv.Left) / iv.Width()
}

// Volume returns Π_d width_d.
func (b *BoundingBox) Volume() float64 {
	v := 1.0
	for _, iv := range b.intervals {
		v *= iv.Width()
	}
	return v
}

// IsUnitCube reports whether every interval is exactly [0,1] without
// Dirichlet flags, which makes the box equivalent to having none.
func (b *BoundingBox) IsUnitCube() bool {
	for _, iv := range b.intervals {
		if iv.Left != 0 || iv.Right != 1 || iv.DirichletLeft || iv.DirichletRight {
			return false
		}
	}
	return true
}

// Contains reports whether x lies in the closed box. NaN coordinates are
// outside.
func (b *BoundingBox) Contains(x []float64) bool {
	if len(x) != len(b.intervals) {
		return false
	}
	for d, iv := range b.intervals {
		if !(x[d] >= iv.Left && x[d] <= iv.Right) {
			return false
		}
	}
	return true
}

// Equal compares intervals and flags exactly.
func (b *BoundingBox) Equal(o *BoundingBox) bool {
	if b == nil || o == nil {
		return b == o
	}
	if len(b.intervals) != len(o.intervals) {
		return false
	}
	for d := range b.intervals {
		if b.intervals[d] != o.intervals[d] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b *BoundingBox) Clone() *BoundingBox {
	return &BoundingBox{intervals: append([]Interval(nil), b.intervals...)}
}
