// SPDX-License-Identifier: MIT

package storage

import "github.com/cockroachdb/errors"

// Iterator is a navigation cursor over the implicit per-dimension binary
// trees of a Storage. Moves only change the cursor's (level, index) vector;
// Seq resolves the current position lazily and caches the answer until the
// next move. The position may name a point that does not exist, which is
// how recursive algorithms detect the edge of the refined region.
//
// An Iterator never mutates its storage and must not be shared between
// goroutines. It is invalidated by any Insert/Remove on the storage.
type Iterator struct {
	st      *Storage
	levels  []Level
	indices []Index
	buf     []byte

	seq    int
	found  bool
	cached bool
}

// NewIterator returns a cursor positioned on the root (1,1) of every
// dimension.
func NewIterator(st *Storage) *Iterator {
	it := &Iterator{
		st:      st,
		levels:  make([]Level, st.dim),
		indices: make([]Index, st.dim),
		buf:     make([]byte, 0, 8*st.dim),
	}
	for d := range it.levels {
		it.levels[d], it.indices[d] = 1, 1
	}
	return it
}

// Storage returns the storage the cursor walks.
func (it *Iterator) Storage() *Storage { return it.st }

// Get returns the current (level, index) along d.
func (it *Iterator) Get(d int) (Level, Index) { return it.levels[d], it.indices[d] }

// Set moves dimension d to (l, i).
func (it *Iterator) Set(d int, l Level, i Index) {
	it.levels[d], it.indices[d] = l, i
	it.cached = false
}

// SetPoint moves the cursor onto p's key.
func (it *Iterator) SetPoint(p *Point) {
	copy(it.levels, p.levels)
	copy(it.indices, p.indices)
	it.cached = false
}

// SetSeq moves the cursor onto the stored point seq.
func (it *Iterator) SetSeq(seq int) error {
	if seq < 0 || seq >= len(it.st.points) {
		return errors.Wrapf(ErrPointNotFound, "seq=%d size=%d", seq, len(it.st.points))
	}
	p := it.st.points[seq]
	copy(it.levels, p.levels)
	copy(it.indices, p.indices)
	it.seq, it.found, it.cached = seq, true, true
	return nil
}

// LeftChild descends to the left child along d. From a boundary point it
// moves to (1,1).
func (it *Iterator) LeftChild(d int) {
	it.levels[d], it.indices[d] = LeftChildOf(it.levels[d], it.indices[d])
	it.cached = false
}

// RightChild descends to the right child along d. From a boundary point it
// moves to (1,1).
func (it *Iterator) RightChild(d int) {
	it.levels[d], it.indices[d] = RightChildOf(it.levels[d], it.indices[d])
	it.cached = false
}

// StepLeft moves to the left neighbour on the same level (index − 2).
func (it *Iterator) StepLeft(d int) {
	it.indices[d] -= 2
	it.cached = false
}

// StepRight moves to the right neighbour on the same level (index + 2).
func (it *Iterator) StepRight(d int) {
	it.indices[d] += 2
	it.cached = false
}

// Up moves to the parent along d. From level 1 it moves to the left
// boundary point; on level 0 it stays put.
func (it *Iterator) Up(d int) {
	l, i := it.levels[d], it.indices[d]
	switch {
	case l == 0:
		return
	case l == 1:
		it.levels[d], it.indices[d] = 0, 0
	default:
		it.levels[d], it.indices[d], _ = ParentOf(l, i)
	}
	it.cached = false
}

// ResetToLevelOne moves dimension d to the interior root (1,1).
func (it *Iterator) ResetToLevelOne(d int) { it.Set(d, 1, 1) }

// ResetToLeftLevelZero moves dimension d to the left boundary point (0,0).
func (it *Iterator) ResetToLeftLevelZero(d int) { it.Set(d, 0, 0) }

// ResetToRightLevelZero moves dimension d to the right boundary point (0,1).
func (it *Iterator) ResetToRightLevelZero(d int) { it.Set(d, 0, 1) }

// Seq resolves the current position. ok is false when no point with the
// current key is stored.
func (it *Iterator) Seq() (seq int, ok bool) {
	if !it.cached {
		it.seq, it.found, it.buf = it.st.lookupBuf(it.levels, it.indices, it.buf)
		it.cached = true
	}
	return it.seq, it.found
}

// Valid reports whether the current position names a stored point.
func (it *Iterator) Valid() bool {
	_, ok := it.Seq()
	return ok
}

// Hint reports whether the current point exists and carries the leaf flag.
// A true result guarantees no child exists along any dimension, so a
// descent can stop without probing the children.
func (it *Iterator) Hint() bool {
	seq, ok := it.Seq()
	return ok && it.st.points[seq].leaf
}

// Point returns a copy of the current position as a free-standing point.
func (it *Iterator) Point() *Point {
	p := &Point{
		levels:  append([]Level(nil), it.levels...),
		indices: append([]Index(nil), it.indices...),
		leaf:    true,
	}
	if seq, ok := it.Seq(); ok {
		p.leaf = it.st.points[seq].leaf
	}
	return p
}
