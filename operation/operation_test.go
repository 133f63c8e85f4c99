package operation_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/operation"
	"github.com/SGpp/SGpp-sub016/storage"
)

func regular(t *testing.T, typ grid.Type, dim int, level storage.Level) *grid.Grid {
	t.Helper()
	g, err := grid.New(typ, dim)
	require.NoError(t, err)
	gen, err := g.Generator()
	require.NoError(t, err)
	require.NoError(t, gen.Regular(level))
	return g
}

// nodal samples f at every grid point in physical coordinates.
func nodal(t *testing.T, g *grid.Grid, f func(x []float64) float64) []float64 {
	t.Helper()
	v := make([]float64, g.Size())
	for seq := range v {
		x, err := g.Storage().Coordinates(seq)
		require.NoError(t, err)
		v[seq] = f(x)
	}
	return v
}

func bilinear(x []float64) float64 { return 1 + 2*x[0] - 3*x[1] + x[0]*x[1] }

//----------------------------------------------------------------------------//
// Mass / Laplace
//----------------------------------------------------------------------------//

func TestLaplace_1DIsDiagonal(t *testing.T) {
	g := regular(t, grid.Linear, 1, 3)
	lp, err := operation.NewLaplace(g)
	require.NoError(t, err)
	m, err := operation.Materialize(lp, g.Size())
	require.NoError(t, err)

	want := mat.NewDiagDense(7, []float64{4, 8, 8, 16, 16, 16, 16})
	require.True(t, mat.EqualApprox(want, m, 1e-12), "got\n%v", mat.Formatted(m))
}

func TestLaplace_1DBoundaryBlock(t *testing.T) {
	g := regular(t, grid.LinearBoundary, 1, 1) // (0,0) (0,1) (1,1)
	lp, err := operation.NewLaplace(g)
	require.NoError(t, err)
	m, err := operation.Materialize(lp, g.Size())
	require.NoError(t, err)

	want := mat.NewDense(3, 3, []float64{
		1, -1, 0,
		-1, 1, 0,
		0, 0, 4,
	})
	require.True(t, mat.EqualApprox(want, m, 1e-12), "got\n%v", mat.Formatted(m))
}

func TestMass_SymmetricPositive(t *testing.T) {
	for _, typ := range []grid.Type{grid.Linear, grid.LinearBoundary} {
		g := regular(t, typ, 2, 3)
		op, err := operation.NewMass(g)
		require.NoError(t, err)
		m, err := operation.Materialize(op, g.Size())
		require.NoError(t, err)
		require.True(t, mat.EqualApprox(m, m.T(), 1e-14), "%s mass not symmetric", typ)

		var chol mat.Cholesky
		require.True(t, chol.Factorize(mat.NewSymDense(g.Size(), m.RawMatrix().Data)), "%s mass not SPD", typ)
	}
}

// TestMass_ConsistentWithQuadrature checks βᵀ M α = ∫ u_α when u_β ≡ 1.
func TestMass_ConsistentWithQuadrature(t *testing.T) {
	g := regular(t, grid.LinearBoundary, 2, 3)
	bb, err := storage.NewBoundingBox(storage.Interval{Left: 0, Right: 2}, storage.Interval{Left: -1, Right: 1})
	require.NoError(t, err)
	require.NoError(t, g.Storage().SetBoundingBox(bb))

	h, err := operation.NewHierarchisation(g)
	require.NoError(t, err)
	one := nodal(t, g, func([]float64) float64 { return 1 })
	require.NoError(t, h.Hierarchise(one))

	rng := rand.New(rand.NewSource(11))
	alpha := make([]float64, g.Size())
	for k := range alpha {
		alpha[k] = rng.NormFloat64()
	}

	op, err := operation.NewMass(g)
	require.NoError(t, err)
	ma := make([]float64, g.Size())
	require.NoError(t, op.Mult(alpha, ma))
	dot := 0.0
	for k := range ma {
		dot += one[k] * ma[k]
	}

	q, err := operation.NewQuadrature(g)
	require.NoError(t, err)
	integral, err := q.Integrate(alpha)
	require.NoError(t, err)
	require.InDelta(t, integral, dot, 1e-12)
}

func TestOperations_Unsupported(t *testing.T) {
	g := regular(t, grid.ModLinear, 2, 2)
	_, err := operation.NewMass(g)
	require.ErrorIs(t, err, operation.ErrUnsupportedGrid)
	_, err = operation.NewLaplace(g)
	require.ErrorIs(t, err, operation.ErrUnsupportedGrid)
	_, err = operation.NewHierarchisation(g)
	require.ErrorIs(t, err, operation.ErrUnsupportedGrid)

	s := regular(t, grid.Linear, 1, 2)
	st, err := storage.NewStretching(storage.Stretching1D{Type: storage.StretchingLog, Interval: storage.Interval{Left: 1, Right: 4}})
	require.NoError(t, err)
	require.NoError(t, s.Storage().SetStretching(st))
	_, err = operation.NewMass(s)
	require.ErrorIs(t, err, operation.ErrUnsupportedGrid)
	_, err = operation.NewQuadrature(s)
	require.ErrorIs(t, err, operation.ErrUnsupportedGrid)
}

func TestLaplace_DimensionMismatch(t *testing.T) {
	g := regular(t, grid.Linear, 2, 2)
	lp, err := operation.NewLaplace(g)
	require.NoError(t, err)
	err = lp.Mult(make([]float64, 4), make([]float64, 5))
	require.ErrorIs(t, err, operation.ErrDimensionMismatch)
}

//----------------------------------------------------------------------------//
// Hierarchisation / Eval / Quadrature
//----------------------------------------------------------------------------//

func TestHierarchise_BilinearIsExactOnBoundaryGrid(t *testing.T) {
	g := regular(t, grid.LinearBoundary, 2, 3)
	bb, err := storage.NewBoundingBox(storage.Interval{Left: 0, Right: 2}, storage.Interval{Left: -1, Right: 1})
	require.NoError(t, err)
	require.NoError(t, g.Storage().SetBoundingBox(bb))

	h, err := operation.NewHierarchisation(g)
	require.NoError(t, err)
	alpha := nodal(t, g, bilinear)
	require.NoError(t, h.Hierarchise(alpha))

	ev := operation.NewEval(g)
	rng := rand.New(rand.NewSource(5))
	for k := 0; k < 50; k++ {
		x := []float64{2 * rng.Float64(), 2*rng.Float64() - 1}
		got, err := ev.Eval(alpha, x)
		require.NoError(t, err)
		require.InDelta(t, bilinear(x), got, 1e-12, "x=%v", x)
	}

	q, err := operation.NewQuadrature(g)
	require.NoError(t, err)
	integral, err := q.Integrate(alpha)
	require.NoError(t, err)
	require.InDelta(t, 12.0, integral, 1e-12)
}

func TestHierarchise_RoundTripAndInterpolation(t *testing.T) {
	f := func(x []float64) float64 { return math.Sin(math.Pi*x[0]) * x[1] * (1 - x[1]) * math.Exp(x[2]) }
	g := regular(t, grid.Linear, 3, 4)
	h, err := operation.NewHierarchisation(g)
	require.NoError(t, err)

	values := nodal(t, g, f)
	alpha := append([]float64(nil), values...)
	require.NoError(t, h.Hierarchise(alpha))

	ev := operation.NewEval(g)
	for seq := 0; seq < g.Size(); seq++ {
		x, err := g.Storage().Coordinates(seq)
		require.NoError(t, err)
		got, err := ev.Eval(alpha, x)
		require.NoError(t, err)
		require.InDelta(t, values[seq], got, 1e-12, "interpolant misses grid point %d", seq)
	}

	require.NoError(t, h.Dehierarchise(alpha))
	for k := range values {
		require.InDelta(t, values[k], alpha[k], 1e-12)
	}
	require.ErrorIs(t, h.Hierarchise(alpha[:3]), operation.ErrDimensionMismatch)
}

func TestQuadrature_MatchesGaussOnInterpolant(t *testing.T) {
	g := regular(t, grid.Linear, 1, 5)
	h, err := operation.NewHierarchisation(g)
	require.NoError(t, err)
	alpha := nodal(t, g, func(x []float64) float64 { return math.Sin(math.Pi * x[0]) })
	require.NoError(t, h.Hierarchise(alpha))

	ev := operation.NewEval(g)
	u := func(x float64) float64 {
		v, err := ev.Eval(alpha, []float64{x})
		require.NoError(t, err)
		return v
	}
	ref := 0.0
	for k := 0; k < 32; k++ {
		ref += quad.Fixed(u, float64(k)/32, float64(k+1)/32, 2, quad.Legendre{}, 0)
	}

	q, err := operation.NewQuadrature(g)
	require.NoError(t, err)
	got, err := q.Integrate(alpha)
	require.NoError(t, err)
	require.InDelta(t, ref, got, 1e-12)
	require.InDelta(t, 2/math.Pi, got, 1e-3)
}

func TestQuadrature_ModLinearConstant(t *testing.T) {
	g := regular(t, grid.ModLinear, 2, 3)
	alpha := make([]float64, g.Size())
	alpha[0] = 1 // level (1,1) is the constant function
	q, err := operation.NewQuadrature(g)
	require.NoError(t, err)
	got, err := q.Integrate(alpha)
	require.NoError(t, err)
	require.Equal(t, 1.0, got)

	v, err := operation.NewEval(g).Eval(alpha, []float64{0.01, 0.99})
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestEval_Errors(t *testing.T) {
	g := regular(t, grid.Linear, 2, 2)
	ev := operation.NewEval(g)
	alpha := make([]float64, g.Size())

	_, err := ev.Eval(alpha, []float64{0.5})
	require.ErrorIs(t, err, operation.ErrDimensionMismatch)
	_, err = ev.Eval(alpha[:1], []float64{0.5, 0.5})
	require.ErrorIs(t, err, operation.ErrDimensionMismatch)
	_, err = ev.Eval(alpha, []float64{0.5, 1.5})
	require.ErrorIs(t, err, operation.ErrOutOfDomain)
	_, err = ev.Eval(alpha, []float64{math.NaN(), 0.5})
	require.ErrorIs(t, err, operation.ErrOutOfDomain)
	_, err = ev.Eval(alpha, []float64{1 + 1e-14, 0})
	require.NoError(t, err, "rounding at the edge is clamped")
}

func TestEvalBatch_MatchesSingle(t *testing.T) {
	g := regular(t, grid.LinearBoundary, 2, 4)
	rng := rand.New(rand.NewSource(9))
	alpha := make([]float64, g.Size())
	for k := range alpha {
		alpha[k] = rng.NormFloat64()
	}
	xs := make([][]float64, 40)
	for k := range xs {
		xs[k] = []float64{rng.Float64(), rng.Float64()}
	}

	ev := operation.NewEval(g)
	got, err := ev.EvalBatch(alpha, xs, 4)
	require.NoError(t, err)
	for k, x := range xs {
		want, err := ev.Eval(alpha, x)
		require.NoError(t, err)
		require.Equal(t, want, got[k])
	}

	_, err = ev.EvalBatch(alpha, [][]float64{{0.5, 0.5}, {2, 0}}, 2)
	require.ErrorIs(t, err, operation.ErrOutOfDomain)
}
