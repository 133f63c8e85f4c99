package operation

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/basis"
	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/storage"
)

// Quadrature integrates sparse-grid functions exactly over the grid domain.
type Quadrature struct {
	st *storage.Storage
	b  basis.Basis
}

// NewQuadrature binds a quadrature to g. Stretched grids are rejected: the
// basis integrals are only valid under an affine map.
//
// Errors: ErrUnsupportedGrid.
func NewQuadrature(g *grid.Grid) (*Quadrature, error) {
	if g.Storage().Stretching() != nil {
		return nil, errors.Wrap(ErrUnsupportedGrid, "stretched grid")
	}
	return &Quadrature{st: g.Storage(), b: g.Basis()}, nil
}

// Integrate returns ∫ Σ α_p φ_p over the bounding box:
// vol(box) · Σ_p α_p Π_d ∫φ_{l_d,i_d}.
//
// Errors: ErrDimensionMismatch.
func (q *Quadrature) Integrate(alpha []float64) (float64, error) {
	if len(alpha) != q.st.Size() {
		return 0, errors.Wrapf(ErrDimensionMismatch, "len(alpha)=%d size=%d", len(alpha), q.st.Size())
	}
	sum := 0.0
	for seq, a := range alpha {
		if a == 0 {
			continue
		}
		w := a
		for d := 0; d < q.st.Dim(); d++ {
			l, i := q.st.Get(seq, d)
			w *= q.b.Integral(l, i)
		}
		sum += w
	}
	return sum * q.st.BoundingBox().Volume(), nil
}
