package operation

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/storage"
	"github.com/SGpp/SGpp-sub016/updown"
)

// OperationMatrix is a linear operator on coefficient vectors.
type OperationMatrix interface {
	Mult(alpha, result []float64) error
}

// linearOnly rejects grid types and transforms the piecewise-linear blocks
// do not cover.
func linearOnly(g *grid.Grid) error {
	if g.Type() != grid.Linear && g.Type() != grid.LinearBoundary {
		return errors.Wrapf(ErrUnsupportedGrid, "grid type %s", g.Type())
	}
	if g.Storage().Stretching() != nil {
		return errors.Wrap(ErrUnsupportedGrid, "stretched grid")
	}
	return nil
}

func massBlock(g *grid.Grid) updown.Block {
	if g.Boundary() {
		return updown.NewMassLinearBoundary(g.Storage())
	}
	return updown.NewMassLinear(g.Storage())
}

func stiffnessBlock(g *grid.Grid) updown.Block {
	if g.Boundary() {
		return updown.NewStiffnessLinearBoundary(g.Storage())
	}
	return updown.NewStiffnessLinear(g.Storage())
}

// NewMass returns the mass operator ∫ u v over the grid's bounding box.
//
// Errors: ErrUnsupportedGrid.
func NewMass(g *grid.Grid, opts ...updown.Option) (*updown.Operator, error) {
	if err := linearOnly(g); err != nil {
		return nil, err
	}
	blocks := make([]updown.Block, g.Dim())
	for d := range blocks {
		blocks[d] = massBlock(g)
	}
	opts = append([]updown.Option{updown.WithLogger(g.Logger())}, opts...)
	return updown.New(g.Storage(), blocks, opts...)
}

// Laplace is the weak Laplacian ∫ ∇u·∇v, the sum over k of the operator
// with stiffness along k and mass along every other dimension.
type Laplace struct {
	st    *storage.Storage
	terms []*updown.Operator
}

// NewLaplace builds one up/down operator per dimension.
//
// Errors: ErrUnsupportedGrid.
func NewLaplace(g *grid.Grid, opts ...updown.Option) (*Laplace, error) {
	if err := linearOnly(g); err != nil {
		return nil, err
	}
	opts = append([]updown.Option{updown.WithLogger(g.Logger())}, opts...)
	lp := &Laplace{st: g.Storage(), terms: make([]*updown.Operator, g.Dim())}
	for k := range lp.terms {
		blocks := make([]updown.Block, g.Dim())
		for d := range blocks {
			if d == k {
				blocks[d] = stiffnessBlock(g)
			} else {
				blocks[d] = massBlock(g)
			}
		}
		op, err := updown.New(g.Storage(), blocks, opts...)
		if err != nil {
			return nil, err
		}
		lp.terms[k] = op
	}
	return lp, nil
}

// Mult implements OperationMatrix.
func (lp *Laplace) Mult(alpha, result []float64) error {
	n := lp.st.Size()
	if len(alpha) != n || len(result) != n {
		return errors.Wrapf(ErrDimensionMismatch, "len(alpha)=%d len(result)=%d size=%d", len(alpha), len(result), n)
	}
	sum := make([]float64, n)
	tmp := make([]float64, n)
	for _, op := range lp.terms {
		if err := op.Mult(alpha, tmp); err != nil {
			return err
		}
		floats.Add(sum, tmp)
	}
	copy(result, sum)
	return nil
}

// Materialize assembles the n×n matrix of op column by column by applying
// it to unit vectors.
func Materialize(op OperationMatrix, n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "n=%d", n)
	}
	m := mat.NewDense(n, n, nil)
	e := make([]float64, n)
	col := make([]float64, n)
	for c := 0; c < n; c++ {
		e[c] = 1
		if err := op.Mult(e, col); err != nil {
			return nil, err
		}
		m.SetCol(c, col)
		e[c] = 0
	}
	return m, nil
}

// Static interface checks.
var (
	_ OperationMatrix = (*updown.Operator)(nil)
	_ OperationMatrix = (*Laplace)(nil)
)
