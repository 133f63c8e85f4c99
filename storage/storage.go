// SPDX-License-Identifier: MIT

package storage

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// Storage is an insertion-ordered, hash-indexed collection of grid points.
//
// points[seq] is the point with sequence number seq; index maps the xxhash of
// a packed (level, index) vector to the sequence numbers sharing that hash.
// Collisions are resolved by full key comparison.
type Storage struct {
	dim    int
	points []*Point
	index  map[uint64][]int

	bbox    *BoundingBox // nil ⇒ unit cube unless stretch is set
	stretch *Stretching  // nil ⇒ no stretching
}

// New creates an empty storage for points of the given dimension.
// Complexity: O(1).
func New(dim int) (*Storage, error) {
	if dim < 1 {
		return nil, errors.Wrapf(ErrInvalidDimension, "dim=%d", dim)
	}
	return &Storage{
		dim:   dim,
		index: make(map[uint64][]int),
	}, nil
}

// Dim returns the dimension of every stored point.
func (s *Storage) Dim() int { return s.dim }

// Size returns the number of stored points; sequence numbers are [0, Size()).
func (s *Storage) Size() int { return len(s.points) }

// Empty reports whether no point is stored.
func (s *Storage) Empty() bool { return len(s.points) == 0 }

// Point returns a copy of the point with sequence number seq.
func (s *Storage) Point(seq int) (*Point, error) {
	if seq < 0 || seq >= len(s.points) {
		return nil, errors.Wrapf(ErrPointNotFound, "seq=%d size=%d", seq, len(s.points))
	}
	return s.points[seq].Clone(), nil
}

// Get returns the (level, index) pair of point seq along dimension d without
// copying. It panics on an out-of-range seq, like a slice access.
func (s *Storage) Get(seq, d int) (Level, Index) {
	p := s.points[seq]
	return p.levels[d], p.indices[d]
}

// IsLeaf reports the cached leaf flag of point seq. It panics on an
// out-of-range seq.
func (s *Storage) IsLeaf(seq int) bool { return s.points[seq].leaf }

// Points returns copies of all points in sequence order.
func (s *Storage) Points() []*Point {
	out := make([]*Point, len(s.points))
	for seq, p := range s.points {
		out[seq] = p.Clone()
	}
	return out
}

// Find returns the sequence number of the point with p's key.
// Complexity: O(1) average.
func (s *Storage) Find(p *Point) (int, bool) {
	if p == nil || p.Dim() != s.dim {
		return 0, false
	}
	return s.lookup(p.levels, p.indices, nil)
}

// FindKey is Find for parallel level/index vectors.
func (s *Storage) FindKey(levels []Level, indices []Index) (int, bool) {
	if len(levels) != s.dim || len(indices) != s.dim {
		return 0, false
	}
	return s.lookup(levels, indices, nil)
}

// Insert adds a copy of p and returns its sequence number.
//
// Implementation:
//   - Stage 1: Validate dimension and canonical indexing.
//   - Stage 2: Reject an existing key with ErrDuplicatePoint.
//   - Stage 3: Append, index, and derive the new point's own leaf flag from
//     the children already present.
//   - Stage 4: Clear the leaf flag of every present hierarchical parent
//     (one per dimension, two for a level-1 pair in boundary grids).
//
// Errors:
//   - ErrInvalidDimension, ErrInvalidPoint, ErrDuplicatePoint.
//
// Complexity:
//   - Time O(d) hash lookups, amortized O(1) append.
func (s *Storage) Insert(p *Point) (int, error) {
	if p == nil || p.Dim() != s.dim {
		return 0, errors.Wrapf(ErrInvalidDimension, "storage dim=%d", s.dim)
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if _, ok := s.lookup(p.levels, p.indices, nil); ok {
		return 0, errors.Wrapf(ErrDuplicatePoint, "%s", p)
	}
	q := p.Clone()
	q.leaf = !s.hasAnyChild(q.levels, q.indices)
	seq := s.appendPoint(q)
	s.updateParents(q, func(parent *Point) { parent.leaf = false })
	return seq, nil
}

// insertRaw appends p as-is, leaf flag included. Used by Unserialize so the
// encoded flags survive the round trip exactly.
func (s *Storage) insertRaw(p *Point) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if _, ok := s.lookup(p.levels, p.indices, nil); ok {
		return 0, errors.Wrapf(ErrDuplicatePoint, "%s", p)
	}
	return s.appendPoint(p), nil
}

func (s *Storage) appendPoint(p *Point) int {
	seq := len(s.points)
	s.points = append(s.points, p)
	h := s.hash(p.levels, p.indices, nil)
	s.index[h] = append(s.index[h], seq)
	return seq
}

// HasChild reports whether point seq has at least one child present along
// any dimension. It is the uncached counterpart of IsLeaf.
func (s *Storage) HasChild(seq int) bool {
	p := s.points[seq]
	return s.hasAnyChild(p.levels, p.indices)
}

// HasChildAlong reports whether point seq has a child present along d.
func (s *Storage) HasChildAlong(seq, d int) bool {
	p := s.points[seq]
	levels := append([]Level(nil), p.levels...)
	indices := append([]Index(nil), p.indices...)
	return s.hasChildAlong(levels, indices, d, nil)
}

// Remove deletes the point with sequence number seq and compacts the
// sequence: every point after seq moves down by one.
//
// Errors:
//   - ErrPointNotFound: seq out of range.
//   - ErrNotALeaf: the point still has a child along some dimension.
//
// Complexity:
//   - Time O(n) for the compaction and index rebuild.
func (s *Storage) Remove(seq int) error {
	if seq < 0 || seq >= len(s.points) {
		return errors.Wrapf(ErrPointNotFound, "seq=%d size=%d", seq, len(s.points))
	}
	p := s.points[seq]
	if s.hasAnyChild(p.levels, p.indices) {
		return errors.Wrapf(ErrNotALeaf, "seq=%d %s", seq, p)
	}
	s.removeBatch([]int{seq})
	return nil
}

// RemovePoints attempts to remove every listed sequence number in ascending
// order and compacts once at the end. Candidates that still have a child at
// the moment they are visited are skipped. The removed sequence numbers
// (pre-removal numbering, ascending) are returned.
//
// Errors:
//   - ErrPointNotFound: any seq out of range; nothing is removed.
func (s *Storage) RemovePoints(seqs []int) ([]int, error) {
	cand := append([]int(nil), seqs...)
	sort.Ints(cand)
	uniq := cand[:0]
	for k, seq := range cand {
		if seq < 0 || seq >= len(s.points) {
			return nil, errors.Wrapf(ErrPointNotFound, "seq=%d size=%d", seq, len(s.points))
		}
		if k > 0 && seq == cand[k-1] {
			continue
		}
		uniq = append(uniq, seq)
	}
	return s.removeBatch(uniq), nil
}

// removeBatch unindexes leaf candidates one by one so later candidates see
// earlier removals, then refreshes the parents' leaf flags and compacts.
func (s *Storage) removeBatch(cand []int) []int {
	dead := make(map[int]bool, len(cand))
	var removed []int
	var buf []byte
	for _, seq := range cand {
		p := s.points[seq]
		if s.hasAnyChild(p.levels, p.indices) {
			continue
		}
		buf = s.unindex(p, seq, buf)
		dead[seq] = true
		removed = append(removed, seq)
	}
	if len(removed) == 0 {
		return nil
	}
	for _, seq := range removed {
		s.updateParents(s.points[seq], func(parent *Point) {
			parent.leaf = !s.hasAnyChild(parent.levels, parent.indices)
		})
	}
	s.compact(dead)
	return removed
}

func (s *Storage) unindex(p *Point, seq int, buf []byte) []byte {
	var h uint64
	h, buf = s.hashBuf(p.levels, p.indices, buf)
	bucket := s.index[h]
	for k, v := range bucket {
		if v == seq {
			bucket = append(bucket[:k], bucket[k+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.index, h)
	} else {
		s.index[h] = bucket
	}
	return buf
}

// compact drops dead points, keeps survivor order and rebuilds the index.
func (s *Storage) compact(dead map[int]bool) {
	kept := s.points[:0]
	for seq, p := range s.points {
		if !dead[seq] {
			kept = append(kept, p)
		}
	}
	for k := len(kept); k < len(s.points); k++ {
		s.points[k] = nil
	}
	s.points = kept
	s.reindex()
}

func (s *Storage) reindex() {
	s.index = make(map[uint64][]int, len(s.points))
	var buf []byte
	for seq, p := range s.points {
		var h uint64
		h, buf = s.hashBuf(p.levels, p.indices, buf)
		s.index[h] = append(s.index[h], seq)
	}
}

// updateParents calls fn on every stored hierarchical parent of p.
func (s *Storage) updateParents(p *Point, fn func(parent *Point)) {
	levels := append([]Level(nil), p.levels...)
	indices := append([]Index(nil), p.indices...)
	var buf []byte
	for d := 0; d < s.dim; d++ {
		l, i := levels[d], indices[d]
		forEachParent(l, i, func(pl Level, pi Index) {
			levels[d], indices[d] = pl, pi
			var seq int
			var ok bool
			seq, ok, buf = s.lookupBuf(levels, indices, buf)
			if ok {
				fn(s.points[seq])
			}
		})
		levels[d], indices[d] = l, i
	}
}

// hasAnyChild probes the children of the key along every dimension.
func (s *Storage) hasAnyChild(levels []Level, indices []Index) bool {
	lv := append([]Level(nil), levels...)
	iv := append([]Index(nil), indices...)
	var buf []byte
	for d := 0; d < s.dim; d++ {
		if s.hasChildAlong(lv, iv, d, buf) {
			return true
		}
	}
	return false
}

// hasChildAlong probes the children along d. levels/indices are scratch
// vectors that are restored before returning.
func (s *Storage) hasChildAlong(levels []Level, indices []Index, d int, buf []byte) bool {
	l, i := levels[d], indices[d]
	if l >= MaxLevel {
		return false
	}
	found := false
	forEachChild(l, i, func(cl Level, ci Index) {
		if found {
			return
		}
		levels[d], indices[d] = cl, ci
		_, found, buf = s.lookupBuf(levels, indices, buf)
	})
	levels[d], indices[d] = l, i
	return found
}

func (s *Storage) lookup(levels []Level, indices []Index, buf []byte) (int, bool) {
	seq, ok, _ := s.lookupBuf(levels, indices, buf)
	return seq, ok
}

// lookupBuf resolves a key, reusing buf for the packed key bytes.
func (s *Storage) lookupBuf(levels []Level, indices []Index, buf []byte) (int, bool, []byte) {
	var h uint64
	h, buf = s.hashBuf(levels, indices, buf)
	for _, seq := range s.index[h] {
		p := s.points[seq]
		if sameKey(p.levels, p.indices, levels, indices) {
			return seq, true, buf
		}
	}
	return 0, false, buf
}

func (s *Storage) hash(levels []Level, indices []Index, buf []byte) uint64 {
	h, _ := s.hashBuf(levels, indices, buf)
	return h
}

func (s *Storage) hashBuf(levels []Level, indices []Index, buf []byte) (uint64, []byte) {
	buf = packKey(buf[:0], levels, indices)
	return xxhash.Sum64(buf), buf
}

// packKey appends the little-endian (level, index) words of a key to buf.
func packKey(buf []byte, levels []Level, indices []Index) []byte {
	for d := range levels {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(levels[d]))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(indices[d]))
	}
	return buf
}

// Clone returns a deep copy with identical sequence numbering and transforms.
func (s *Storage) Clone() *Storage {
	c := &Storage{
		dim:    s.dim,
		points: make([]*Point, len(s.points)),
	}
	for seq, p := range s.points {
		c.points[seq] = p.Clone()
	}
	c.reindex()
	if s.bbox != nil {
		c.bbox = s.bbox.Clone()
	}
	if s.stretch != nil {
		c.stretch = s.stretch.Clone()
	}
	return c
}

// MaxLevel returns the largest level of any point along any dimension.
func (s *Storage) MaxLevel() Level {
	var m Level
	for _, p := range s.points {
		if l := p.MaxLevel(); l > m {
			m = l
		}
	}
	return m
}

// SetBoundingBox installs a bounding box and drops any stretching.
// A nil box restores the unit cube.
func (s *Storage) SetBoundingBox(b *BoundingBox) error {
	if b != nil && b.Dim() != s.dim {
		return errors.Wrapf(ErrInvalidDimension, "bounding box dim=%d storage dim=%d", b.Dim(), s.dim)
	}
	s.bbox = b
	s.stretch = nil
	return nil
}

// SetStretching installs a stretching and drops any bounding box.
// A nil stretching restores the unit cube.
func (s *Storage) SetStretching(st *Stretching) error {
	if st != nil && st.Dim() != s.dim {
		return errors.Wrapf(ErrInvalidDimension, "stretching dim=%d storage dim=%d", st.Dim(), s.dim)
	}
	s.stretch = st
	s.bbox = nil
	return nil
}

// BoundingBox returns the effective bounding box: the installed one, the
// box spanned by the stretching, or the unit cube.
func (s *Storage) BoundingBox() *BoundingBox {
	switch {
	case s.bbox != nil:
		return s.bbox
	case s.stretch != nil:
		return s.stretch.BoundingBox()
	default:
		return UnitBoundingBox(s.dim)
	}
}

// Stretching returns the installed stretching or nil.
func (s *Storage) Stretching() *Stretching { return s.stretch }

// UnitCoordinates returns the canonical [0,1]^d coordinates of point seq.
func (s *Storage) UnitCoordinates(seq int) ([]float64, error) {
	if seq < 0 || seq >= len(s.points) {
		return nil, errors.Wrapf(ErrPointNotFound, "seq=%d size=%d", seq, len(s.points))
	}
	return s.points[seq].UnitCoordinates(), nil
}

// Coordinates returns the physical coordinates of point seq under the
// installed stretching or bounding box.
func (s *Storage) Coordinates(seq int) ([]float64, error) {
	x, err := s.UnitCoordinates(seq)
	if err != nil {
		return nil, err
	}
	for d := range x {
		x[d] = s.FromUnit(d, x[d])
	}
	return x, nil
}

// FromUnit maps a canonical coordinate along d to physical space.
func (s *Storage) FromUnit(d int, t float64) float64 {
	switch {
	case s.stretch != nil:
		return s.stretch.FromUnit(d, t)
	case s.bbox != nil:
		return s.bbox.FromUnit(d, t)
	default:
		return t
	}
}

// ToUnit maps a physical coordinate along d back to [0,1].
func (s *Storage) ToUnit(d int, x float64) float64 {
	switch {
	case s.stretch != nil:
		return s.stretch.ToUnit(d, x)
	case s.bbox != nil:
		return s.bbox.ToUnit(d, x)
	default:
		return x
	}
}
