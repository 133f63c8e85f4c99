// SPDX-License-Identifier: MIT

package updown

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Sweep visits the poles of a storage along one dimension. A pole is the set
// of points that agree in every other dimension; it forms a binary tree
// along the swept dimension. The callback receives an iterator positioned on
// the pole's root:
//
//   - interior sweeps: the level-1 point (1,1);
//   - boundary sweeps: the left boundary point (0,0), or (0,1) if the left
//     one is missing, or (1,1) if the pole has no boundary points at all.
//
// The callback may move the iterator freely.
type Sweep struct {
	st       *storage.Storage
	boundary bool
}

// NewSweep returns a sweep over st. boundary selects whether level-0
// points are part of the poles.
func NewSweep(st *storage.Storage, boundary bool) *Sweep {
	return &Sweep{st: st, boundary: boundary}
}

// Storage returns the swept storage.
func (s *Sweep) Storage() *storage.Storage { return s.st }

// Boundary reports whether level-0 points belong to the poles.
func (s *Sweep) Boundary() bool { return s.boundary }

// Run calls fn once per pole along dim, in ascending order of the root's
// sequence number. The first error aborts the sweep.
func (s *Sweep) Run(dim int, fn func(it *storage.Iterator) error) error {
	if dim < 0 || dim >= s.st.Dim() {
		return errors.Wrapf(ErrInvalidDimension, "dim=%d storage dim=%d", dim, s.st.Dim())
	}
	it := storage.NewIterator(s.st)
	probe := storage.NewIterator(s.st)
	for seq := 0; seq < s.st.Size(); seq++ {
		if !s.isRoot(seq, dim, probe) {
			continue
		}
		if err := it.SetSeq(seq); err != nil {
			return err
		}
		if err := fn(it); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sweep) isRoot(seq, dim int, probe *storage.Iterator) bool {
	l, i := s.st.Get(seq, dim)
	switch {
	case l == 0 && s.boundary:
		if i == 0 {
			return true
		}
		_ = probe.SetSeq(seq)
		probe.ResetToLeftLevelZero(dim)
		return !probe.Valid()
	case l == 1:
		if !s.boundary {
			return true
		}
		_ = probe.SetSeq(seq)
		probe.ResetToLeftLevelZero(dim)
		if probe.Valid() {
			return false
		}
		probe.ResetToRightLevelZero(dim)
		return !probe.Valid()
	}
	return false
}

// pole holds the boundary part of a pole rooted at level 0.
type pole struct {
	left, right       int
	hasLeft, hasRight bool
}

// boundaryPole resolves both boundary points of the pole the iterator sits
// on and leaves the iterator on the interior root (1,1).
func boundaryPole(it *storage.Iterator, dim int) pole {
	var p pole
	it.ResetToLeftLevelZero(dim)
	p.left, p.hasLeft = it.Seq()
	it.ResetToRightLevelZero(dim)
	p.right, p.hasRight = it.Seq()
	it.ResetToLevelOne(dim)
	return p
}

func (p pole) values(v []float64) (l, r float64) {
	if p.hasLeft {
		l = v[p.left]
	}
	if p.hasRight {
		r = v[p.right]
	}
	return l, r
}
