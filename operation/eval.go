package operation

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/SGpp/SGpp-sub016/basis"
	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/storage"
)

// domainTol absorbs rounding in the physical-to-unit map at the domain edge.
const domainTol = 1e-12

// Eval evaluates sparse-grid functions u(x) = Σ α_p φ_p(x) at single points.
// Works for every grid type and coordinate transform.
type Eval struct {
	st       *storage.Storage
	b        basis.Basis
	boundary bool
}

// NewEval binds an evaluator to g.
func NewEval(g *grid.Grid) *Eval {
	return &Eval{st: g.Storage(), b: g.Basis(), boundary: g.Boundary()}
}

// Eval returns u(x) for a point x in physical coordinates.
//
// Implementation:
//
//	Stage 1: map x to unit coordinates through the storage transform.
//	         Points outside the bounding box are accepted only within a
//	         rounding tolerance and clamped onto it.
//	Stage 2: for dimension d, visit the boundary points (boundary grids),
//	         then descend the pole from (1,1) towards x, multiplying the
//	         running product by φ(x_d) and recursing into d+1 at every
//	         visited point. The descent stops at the first missing point or
//	         at a leaf.
//
// Only the O(L^d) points whose support contains x are visited.
//
// Errors: ErrDimensionMismatch, ErrOutOfDomain.
func (e *Eval) Eval(alpha, x []float64) (float64, error) {
	if len(alpha) != e.st.Size() {
		return 0, errors.Wrapf(ErrDimensionMismatch, "len(alpha)=%d size=%d", len(alpha), e.st.Size())
	}
	u, err := e.unit(x)
	if err != nil {
		return 0, err
	}
	return e.eval(alpha, u, e.newIterator()), nil
}

// EvalBatch evaluates u at every point of xs using up to workers
// goroutines, each with its own iterator.
func (e *Eval) EvalBatch(alpha []float64, xs [][]float64, workers int) ([]float64, error) {
	if len(alpha) != e.st.Size() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "len(alpha)=%d size=%d", len(alpha), e.st.Size())
	}
	out := make([]float64, len(xs))
	var eg errgroup.Group
	eg.SetLimit(max(workers, 1))
	for k, x := range xs {
		eg.Go(func() error {
			u, err := e.unit(x)
			if err != nil {
				return errors.Wrapf(err, "point %d", k)
			}
			out[k] = e.eval(alpha, u, e.newIterator())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Eval) unit(x []float64) ([]float64, error) {
	if len(x) != e.st.Dim() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "len(x)=%d dim=%d", len(x), e.st.Dim())
	}
	inside := e.st.BoundingBox().Contains(x)
	u := make([]float64, len(x))
	for d, xd := range x {
		t := e.st.ToUnit(d, xd)
		if !inside && (math.IsNaN(t) || t < -domainTol || t > 1+domainTol) {
			return nil, errors.Wrapf(ErrOutOfDomain, "x[%d]=%g", d, xd)
		}
		u[d] = min(max(t, 0), 1)
	}
	return u, nil
}

// newIterator positions every dimension on its pole representative: the
// left boundary point for boundary grids, (1,1) otherwise. The generator
// keeps grids hierarchically closed and stores boundary points in pairs, so
// the representative exists whenever any point of the pole does.
func (e *Eval) newIterator() *storage.Iterator {
	it := storage.NewIterator(e.st)
	if e.boundary {
		for d := 0; d < e.st.Dim(); d++ {
			it.ResetToLeftLevelZero(d)
		}
	}
	return it
}

func (e *Eval) reset(it *storage.Iterator, d int) {
	if e.boundary {
		it.ResetToLeftLevelZero(d)
	} else {
		it.ResetToLevelOne(d)
	}
}

func (e *Eval) eval(alpha, u []float64, it *storage.Iterator) float64 {
	return e.rec(alpha, u, it, 0, 1)
}

func (e *Eval) rec(alpha, u []float64, it *storage.Iterator, d int, value float64) float64 {
	last := d == len(u)-1
	sum := 0.0
	visit := func() bool {
		seq, ok := it.Seq()
		if !ok {
			return false
		}
		l, i := it.Get(d)
		v := value * e.b.Eval(l, i, u[d])
		switch {
		case v == 0:
		case last:
			sum += v * alpha[seq]
		default:
			sum += e.rec(alpha, u, it, d+1, v)
		}
		return true
	}

	if e.boundary {
		it.ResetToLeftLevelZero(d)
		visit()
		it.ResetToRightLevelZero(d)
		visit()
	}
	it.ResetToLevelOne(d)
	for visit() && !it.Hint() {
		l, i := it.Get(d)
		if u[d] < storage.UnitCoordinate(l, i) {
			it.LeftChild(d)
		} else {
			it.RightChild(d)
		}
	}
	e.reset(it, d)
	return sum
}
