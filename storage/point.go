// SPDX-License-Identifier: MIT

package storage

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxLevel is the deepest level representable with 32-bit indices.
const MaxLevel Level = 31

// Level is the refinement level of a point along one dimension.
// Level 0 is reserved for the two boundary points.
type Level uint32

// Index selects a point within its level. For level ≥ 1 it is odd and
// lies in [1, 2^level); for level 0 it is 0 (left) or 1 (right).
type Index uint32

// Point is a single hierarchical grid point: one (level, index) pair per
// dimension plus a leaf flag. The (level, index) vector is the logical key;
// the leaf flag is maintained by the owning Storage.
type Point struct {
	levels  []Level
	indices []Index
	leaf    bool
}

// NewPoint returns a point of the given dimension positioned on the root
// (1,1) of every dimension. It panics if dim < 1 (programmer error).
func NewPoint(dim int) *Point {
	if dim < 1 {
		panic("storage: NewPoint: dim must be >= 1")
	}
	p := &Point{
		levels:  make([]Level, dim),
		indices: make([]Index, dim),
		leaf:    true,
	}
	for d := 0; d < dim; d++ {
		p.levels[d], p.indices[d] = 1, 1
	}
	return p
}

// PointOf builds a point from parallel level/index vectors and validates the
// canonical indexing. The input slices are copied.
func PointOf(levels []Level, indices []Index) (*Point, error) {
	if len(levels) == 0 || len(levels) != len(indices) {
		return nil, errors.Wrapf(ErrInvalidDimension, "levels=%d indices=%d", len(levels), len(indices))
	}
	p := &Point{
		levels:  append([]Level(nil), levels...),
		indices: append([]Index(nil), indices...),
		leaf:    true,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustPointOf is PointOf for literals in tests and examples; it panics on error.
func MustPointOf(levels []Level, indices []Index) *Point {
	p, err := PointOf(levels, indices)
	if err != nil {
		panic(err)
	}
	return p
}

// Dim returns the number of dimensions.
func (p *Point) Dim() int { return len(p.levels) }

// Get returns the (level, index) pair along dimension d.
func (p *Point) Get(d int) (Level, Index) { return p.levels[d], p.indices[d] }

// Set replaces the (level, index) pair along dimension d. No validation is
// performed; callers building points by hand should call Validate.
func (p *Point) Set(d int, l Level, i Index) {
	p.levels[d] = l
	p.indices[d] = i
}

// Level returns the level along dimension d.
func (p *Point) Level(d int) Level { return p.levels[d] }

// Index returns the index along dimension d.
func (p *Point) Index(d int) Index { return p.indices[d] }

// Leaf reports whether the point had no children in its storage at the time
// it was read. Points not owned by a storage report true.
func (p *Point) Leaf() bool { return p.leaf }

// Levels returns a copy of the level vector.
func (p *Point) Levels() []Level { return append([]Level(nil), p.levels...) }

// Indices returns a copy of the index vector.
func (p *Point) Indices() []Index { return append([]Index(nil), p.indices...) }

// Clone returns a deep copy, leaf flag included.
func (p *Point) Clone() *Point {
	return &Point{
		levels:  append([]Level(nil), p.levels...),
		indices: append([]Index(nil), p.indices...),
		leaf:    p.leaf,
	}
}

// Equal reports whether p and q share the same (level, index) key.
// The leaf flag is not part of the key.
func (p *Point) Equal(q *Point) bool {
	return sameKey(p.levels, p.indices, q.levels, q.indices)
}

// Key is the (level, index) vector of a point in a comparable form, usable
// as a map key. Two points have equal keys iff Equal reports true.
type Key string

// Key returns the comparable key of p. The leaf flag is not part of it.
func (p *Point) Key() Key {
	return Key(packKey(make([]byte, 0, 8*len(p.levels)), p.levels, p.indices))
}

// LevelSum returns Σ_d level_d.
func (p *Point) LevelSum() int {
	sum := 0
	for _, l := range p.levels {
		sum += int(l)
	}
	return sum
}

// MaxLevel returns max_d level_d.
func (p *Point) MaxLevel() Level {
	var m Level
	for _, l := range p.levels {
		if l > m {
			m = l
		}
	}
	return m
}

// IsInner reports whether no dimension sits on a boundary level.
func (p *Point) IsInner() bool {
	for _, l := range p.levels {
		if l == 0 {
			return false
		}
	}
	return true
}

// Coordinate returns the canonical [0,1] coordinate along dimension d,
// i.e. index / 2^level.
func (p *Point) Coordinate(d int) float64 {
	return UnitCoordinate(p.levels[d], p.indices[d])
}

// UnitCoordinates returns the canonical coordinates in [0,1]^d.
func (p *Point) UnitCoordinates() []float64 {
	out := make([]float64, len(p.levels))
	for d := range out {
		out[d] = p.Coordinate(d)
	}
	return out
}

// Validate checks canonical indexing along every dimension.
func (p *Point) Validate() error {
	for d := range p.levels {
		if !validPair(p.levels[d], p.indices[d]) {
			return errors.Wrapf(ErrInvalidPoint, "dim %d: (%d,%d)", d, p.levels[d], p.indices[d])
		}
	}
	return nil
}

// String renders the key as "[(l0,i0) (l1,i1) ...]".
func (p *Point) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for d := range p.levels {
		if d > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatUint(uint64(p.levels[d]), 10))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatUint(uint64(p.indices[d]), 10))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')
	return sb.String()
}

// LeftChild returns a copy of p moved to its left child along d.
func (p *Point) LeftChild(d int) *Point {
	c := p.Clone()
	c.leaf = true
	c.levels[d], c.indices[d] = LeftChildOf(p.levels[d], p.indices[d])
	return c
}

// RightChild returns a copy of p moved to its right child along d.
func (p *Point) RightChild(d int) *Point {
	c := p.Clone()
	c.leaf = true
	c.levels[d], c.indices[d] = RightChildOf(p.levels[d], p.indices[d])
	return c
}

// Parents returns copies of p moved to each hierarchical parent along d:
// none for level 0, both boundary points for level 1, one point otherwise.
func (p *Point) Parents(d int) []*Point {
	var out []*Point
	forEachParent(p.levels[d], p.indices[d], func(l Level, i Index) {
		c := p.Clone()
		c.leaf = true
		c.levels[d], c.indices[d] = l, i
		out = append(out, c)
	})
	return out
}

// UnitCoordinate maps a (level, index) pair to [0,1].
func UnitCoordinate(l Level, i Index) float64 {
	if l == 0 {
		return float64(i)
	}
	return float64(i) / float64(uint64(1)<<l)
}

// LeftChildOf returns the left child of (l,i). Both boundary points have the
// single child (1,1).
func LeftChildOf(l Level, i Index) (Level, Index) {
	if l == 0 {
		return 1, 1
	}
	return l + 1, 2*i - 1
}

// RightChildOf returns the right child of (l,i).
func RightChildOf(l Level, i Index) (Level, Index) {
	if l == 0 {
		return 1, 1
	}
	return l + 1, 2*i + 1
}

// ParentOf returns the single interior parent of (l,i) for l ≥ 2.
// ok is false for levels 0 and 1.
func ParentOf(l Level, i Index) (Level, Index, bool) {
	if l < 2 {
		return 0, 0, false
	}
	return l - 1, (i >> 1) | 1, true
}

// forEachParent calls fn for every hierarchical parent of (l,i).
func forEachParent(l Level, i Index, fn func(Level, Index)) {
	switch {
	case l == 0:
	case l == 1:
		fn(0, 0)
		fn(0, 1)
	default:
		pl, pi, _ := ParentOf(l, i)
		fn(pl, pi)
	}
}

// forEachChild calls fn for every distinct child of (l,i).
func forEachChild(l Level, i Index, fn func(Level, Index)) {
	if l == 0 {
		fn(1, 1)
		return
	}
	fn(l+1, 2*i-1)
	fn(l+1, 2*i+1)
}

func validPair(l Level, i Index) bool {
	if l == 0 {
		return i <= 1
	}
	if l > MaxLevel {
		return false
	}
	return i%2 == 1 && uint64(i) < uint64(1)<<l
}

func sameKey(la []Level, ia []Index, lb []Level, ib []Index) bool {
	if len(la) != len(lb) {
		return false
	}
	for d := range la {
		if la[d] != lb[d] || ia[d] != ib[d] {
			return false
		}
	}
	return true
}
