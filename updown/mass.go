// SPDX-License-Identifier: MIT

package updown

import (
	"gonum.org/v1/gonum/floats"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Mass is the block of the L2 scalar product ∫φ_p φ_q for the linear hat
// basis, optionally with the level-0 boundary functions 1−x and x. Entries
// scale with the bounding-box width of the swept dimension.
type Mass struct {
	sweep *Sweep
}

// NewMassLinear returns the mass block for interior linear grids.
func NewMassLinear(st *storage.Storage) *Mass {
	return &Mass{sweep: NewSweep(st, false)}
}

// NewMassLinearBoundary returns the mass block for linear grids with
// boundary points.
func NewMassLinearBoundary(st *storage.Storage) *Mass {
	return &Mass{sweep: NewSweep(st, true)}
}

// Down writes the ancestor and diagonal contributions.
//
// For a point p with mesh width h the ancestors sum to a function that is
// linear on p's support, so their contribution is h·(fl+fr)/2 where fl and
// fr are the ancestor interpolant at the support ends. The diagonal is
// ∫φ_p² = 2h/3. Boundary pairs contribute 1/3 on the diagonal and 1/6
// from the left to the right boundary function.
func (m *Mass) Down(src, dst []float64, dim int) error {
	st := m.sweep.Storage()
	if err := checkLen(st.Size(), src, dst); err != nil {
		return err
	}
	clear(dst)
	err := m.sweep.Run(dim, func(it *storage.Iterator) error {
		if l, _ := it.Get(dim); l != 0 {
			m.down(src, dst, it, dim, 0, 0)
			return nil
		}
		p := boundaryPole(it, dim)
		al, ar := p.values(src)
		if p.hasLeft {
			dst[p.left] = al / 3
		}
		if p.hasRight {
			dst[p.right] = ar/3 + al/6
		}
		m.down(src, dst, it, dim, al, ar)
		return nil
	})
	if err != nil {
		return err
	}
	floats.Scale(st.BoundingBox().Width(dim), dst)
	return nil
}

func (m *Mass) down(src, dst []float64, it *storage.Iterator, dim int, fl, fr float64) {
	seq, ok := it.Seq()
	if !ok {
		return
	}
	l, _ := it.Get(dim)
	h := width(l)
	a := src[seq]
	dst[seq] = h*(fl+fr)/2 + 2*h/3*a
	if it.Hint() {
		return
	}
	fm := (fl+fr)/2 + a
	descend(it, dim,
		func() { m.down(src, dst, it, dim, fl, fm) },
		func() { m.down(src, dst, it, dim, fm, fr) },
	)
}

// Up writes the contributions of strict descendants. The recursion returns
// the integrals of the subtree's function against the two linear ramps of
// the subtree's support, which the parent combines.
func (m *Mass) Up(src, dst []float64, dim int) error {
	st := m.sweep.Storage()
	if err := checkLen(st.Size(), src, dst); err != nil {
		return err
	}
	clear(dst)
	err := m.sweep.Run(dim, func(it *storage.Iterator) error {
		if l, _ := it.Get(dim); l != 0 {
			m.up(src, dst, it, dim)
			return nil
		}
		p := boundaryPole(it, dim)
		_, ar := p.values(src)
		fl, fr := m.up(src, dst, it, dim)
		if p.hasLeft {
			dst[p.left] = ar/6 + fl
		}
		if p.hasRight {
			dst[p.right] = fr
		}
		return nil
	})
	if err != nil {
		return err
	}
	floats.Scale(st.BoundingBox().Width(dim), dst)
	return nil
}

func (m *Mass) up(src, dst []float64, it *storage.Iterator, dim int) (fl, fr float64) {
	seq, ok := it.Seq()
	if !ok {
		return 0, 0
	}
	l, _ := it.Get(dim)
	h := width(l)
	var fml, fmr float64
	if !it.Hint() {
		descend(it, dim,
			func() { fl, fml = m.up(src, dst, it, dim) },
			func() { fmr, fr = m.up(src, dst, it, dim) },
		)
	}
	fm := fml + fmr
	dst[seq] = fm
	a := src[seq]
	fl += fm/2 + a*h/2
	fr += fm/2 + a*h/2
	return fl, fr
}
