package operation

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/storage"
	"github.com/SGpp/SGpp-sub016/updown"
)

// Hierarchisation converts between nodal values at the grid points and
// hierarchical surpluses of the piecewise-linear interpolant. Both
// directions work in place, one pole sweep per dimension.
type Hierarchisation struct {
	st    *storage.Storage
	sweep *updown.Sweep
}

// NewHierarchisation binds the transform to g. Only the hat-function grid
// types are supported; the transform does not depend on the coordinate
// map.
//
// Errors: ErrUnsupportedGrid.
func NewHierarchisation(g *grid.Grid) (*Hierarchisation, error) {
	if g.Type() != grid.Linear && g.Type() != grid.LinearBoundary {
		return nil, errors.Wrapf(ErrUnsupportedGrid, "grid type %s", g.Type())
	}
	return &Hierarchisation{st: g.Storage(), sweep: updown.NewSweep(g.Storage(), g.Boundary())}, nil
}

// Hierarchise replaces nodal values by surpluses: along each dimension
// α_p = v_p − (v_left + v_right)/2 with the values at the ends of p's
// support. Boundary values are their own surpluses.
func (h *Hierarchisation) Hierarchise(v []float64) error {
	if len(v) != h.st.Size() {
		return errors.Wrapf(ErrDimensionMismatch, "len(v)=%d size=%d", len(v), h.st.Size())
	}
	for d := 0; d < h.st.Dim(); d++ {
		if err := h.sweep.Run(d, func(it *storage.Iterator) error {
			fl, fr := poleEnds(it, d, v)
			hierarchise(v, it, d, fl, fr)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Dehierarchise is the inverse of Hierarchise.
func (h *Hierarchisation) Dehierarchise(v []float64) error {
	if len(v) != h.st.Size() {
		return errors.Wrapf(ErrDimensionMismatch, "len(v)=%d size=%d", len(v), h.st.Size())
	}
	for d := h.st.Dim() - 1; d >= 0; d-- {
		if err := h.sweep.Run(d, func(it *storage.Iterator) error {
			fl, fr := poleEnds(it, d, v)
			dehierarchise(v, it, d, fl, fr)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// poleEnds reads the boundary values of a pole rooted at level 0 and moves
// the iterator to (1,1). Interior poles have zero ends.
func poleEnds(it *storage.Iterator, d int, v []float64) (fl, fr float64) {
	if l, _ := it.Get(d); l != 0 {
		return 0, 0
	}
	it.ResetToLeftLevelZero(d)
	if seq, ok := it.Seq(); ok {
		fl = v[seq]
	}
	it.ResetToRightLevelZero(d)
	if seq, ok := it.Seq(); ok {
		fr = v[seq]
	}
	it.ResetToLevelOne(d)
	return fl, fr
}

func hierarchise(v []float64, it *storage.Iterator, d int, fl, fr float64) {
	seq, ok := it.Seq()
	if !ok {
		return
	}
	fm := v[seq]
	v[seq] = fm - (fl+fr)/2
	if it.Hint() {
		return
	}
	l, i := it.Get(d)
	it.LeftChild(d)
	hierarchise(v, it, d, fl, fm)
	it.Set(d, l, i)
	it.RightChild(d)
	hierarchise(v, it, d, fm, fr)
	it.Set(d, l, i)
}

func dehierarchise(v []float64, it *storage.Iterator, d int, fl, fr float64) {
	seq, ok := it.Seq()
	if !ok {
		return
	}
	fm := v[seq] + (fl+fr)/2
	v[seq] = fm
	if it.Hint() {
		return
	}
	l, i := it.Get(d)
	it.LeftChild(d)
	dehierarchise(v, it, d, fl, fm)
	it.Set(d, l, i)
	it.RightChild(d)
	dehierarchise(v, it, d, fm, fr)
	it.Set(d, l, i)
}
