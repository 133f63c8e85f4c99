// SPDX-License-Identifier: MIT

package updown

import (
	"gonum.org/v1/gonum/floats"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Stiffness is the block of ∫φ'_p φ'_q for the linear hat basis, optionally
// with boundary functions. Hierarchical hats are orthogonal in this product:
// an ancestor's derivative is constant on a descendant's support, where the
// descendant's derivative integrates to zero. The interior part is therefore
// the diagonal 2/h, and only the boundary pair couples
// ([[1, −1], [−1, 1]]). Entries scale with the inverse bounding-box width.
type Stiffness struct {
	sweep *Sweep
}

// NewStiffnessLinear returns the stiffness block for interior linear grids.
func NewStiffnessLinear(st *storage.Storage) *Stiffness {
	return &Stiffness{sweep: NewSweep(st, false)}
}

// NewStiffnessLinearBoundary returns the stiffness block for linear grids
// with boundary points.
func NewStiffnessLinearBoundary(st *storage.Storage) *Stiffness {
	return &Stiffness{sweep: NewSweep(st, true)}
}

// Down writes the diagonal and the right boundary's coupling to the left
// boundary.
func (s *Stiffness) Down(src, dst []float64, dim int) error {
	st := s.sweep.Storage()
	if err := checkLen(st.Size(), src, dst); err != nil {
		return err
	}
	clear(dst)
	err := s.sweep.Run(dim, func(it *storage.Iterator) error {
		if l, _ := it.Get(dim); l == 0 {
			p := boundaryPole(it, dim)
			al, ar := p.values(src)
			if p.hasLeft {
				dst[p.left] = al
			}
			if p.hasRight {
				dst[p.right] = ar - al
			}
		}
		s.diagonal(src, dst, it, dim)
		return nil
	})
	if err != nil {
		return err
	}
	floats.Scale(1/st.BoundingBox().Width(dim), dst)
	return nil
}

func (s *Stiffness) diagonal(src, dst []float64, it *storage.Iterator, dim int) {
	seq, ok := it.Seq()
	if !ok {
		return
	}
	l, _ := it.Get(dim)
	dst[seq] = 2 / width(l) * src[seq]
	if it.Hint() {
		return
	}
	descend(it, dim,
		func() { s.diagonal(src, dst, it, dim) },
		func() { s.diagonal(src, dst, it, dim) },
	)
}

// Up writes the left boundary's coupling to the right boundary; every other
// entry is zero.
func (s *Stiffness) Up(src, dst []float64, dim int) error {
	st := s.sweep.Storage()
	if err := checkLen(st.Size(), src, dst); err != nil {
		return err
	}
	clear(dst)
	err := s.sweep.Run(dim, func(it *storage.Iterator) error {
		if l, _ := it.Get(dim); l != 0 {
			return nil
		}
		p := boundaryPole(it, dim)
		_, ar := p.values(src)
		if p.hasLeft {
			dst[p.left] = -ar
		}
		return nil
	})
	if err != nil {
		return err
	}
	floats.Scale(1/st.BoundingBox().Width(dim), dst)
	return nil
}
