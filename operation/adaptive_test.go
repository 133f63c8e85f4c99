package operation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"github.com/SGpp/SGpp-sub016/basis"
	"github.com/SGpp/SGpp-sub016/functor"
	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/operation"
	"github.com/SGpp/SGpp-sub016/storage"
)

// ip1D integrates φ_p·φ_q, or φ'_p·φ'_q when dx is set, on [0,1] with a
// Gauss rule per dyadic piece fine enough to make the integrand polynomial.
func ip1D(b basis.Basis, dx bool, lp storage.Level, ip storage.Index, lq storage.Level, iq storage.Index) float64 {
	f := func(x float64) float64 { return b.Eval(lp, ip, x) * b.Eval(lq, iq, x) }
	if dx {
		f = func(x float64) float64 { return b.EvalDx(lp, ip, x) * b.EvalDx(lq, iq, x) }
	}
	n := 1 << (max(lp, lq) + 1)
	sum := 0.0
	for j := 0; j < n; j++ {
		sum += quad.Fixed(f, float64(j)/float64(n), float64(j+1)/float64(n), 2, quad.Legendre{}, 0)
	}
	return sum
}

// denseMass and denseLaplace assemble the Galerkin matrices entry by entry
// on the unit cube.
func denseMass(g *grid.Grid) *mat.Dense { return dense(g, -1) }

func denseLaplace(g *grid.Grid) *mat.Dense {
	n := g.Size()
	out := mat.NewDense(n, n, nil)
	for k := 0; k < g.Dim(); k++ {
		out.Add(out, dense(g, k))
	}
	return out
}

// dense builds Π_d ∫ factor_d with the derivative taken along dimension
// stiff (none when stiff < 0).
func dense(g *grid.Grid, stiff int) *mat.Dense {
	n := g.Size()
	pts := g.Storage().Points()
	out := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := 1.0
			for d := 0; d < g.Dim() && v != 0; d++ {
				lp, ip := pts[r].Get(d)
				lq, iq := pts[c].Get(d)
				v *= ip1D(g.Basis(), d == stiff, lp, ip, lq, iq)
			}
			out.Set(r, c, v)
		}
	}
	return out
}

// bruteEval sums α_p Π_d φ_p(x_d) over every stored point.
func bruteEval(g *grid.Grid, alpha, x []float64) float64 {
	sum := 0.0
	for seq, p := range g.Storage().Points() {
		v := alpha[seq]
		for d := range x {
			l, i := p.Get(d)
			v *= g.Basis().Eval(l, i, x[d])
		}
		sum += v
	}
	return sum
}

func requireDenseEqual(t *testing.T, want, got *mat.Dense, g *grid.Grid) {
	t.Helper()
	n, _ := want.Dims()
	pts := g.Storage().Points()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			require.InDelta(t, want.At(r, c), got.At(r, c), 1e-12, "entry %s x %s", pts[r], pts[c])
		}
	}
}

//----------------------------------------------------------------------------//
// Adaptive grids
//----------------------------------------------------------------------------//

func TestAdaptive_OneSidedBoundaryRefinement(t *testing.T) {
	g := regular(t, grid.LinearBoundary, 2, 1)
	st := g.Storage()
	edge, ok := st.Find(storage.MustPointOf([]storage.Level{1, 0}, []storage.Index{1, 1}))
	require.True(t, ok)

	alpha := make([]float64, st.Size())
	alpha[edge] = 1
	gen, err := g.Generator()
	require.NoError(t, err)
	_, err = gen.Refine(functor.NewSurplusRefinement(alpha, 1, 0))
	require.NoError(t, err)
	require.NoError(t, st.CheckClosed(true))

	target, ok := st.Find(storage.MustPointOf([]storage.Level{2, 0}, []storage.Index{1, 1}))
	require.True(t, ok)
	corner, ok := st.Find(storage.MustPointOf([]storage.Level{0, 0}, []storage.Index{0, 0}))
	require.True(t, ok)

	unit := make([]float64, st.Size())
	unit[target] = 1
	x := []float64{0.173, 0.541}
	v, err := operation.NewEval(g).Eval(unit, x)
	require.NoError(t, err)
	require.InDelta(t, (1-(1-4*0.173))*0.541, v, 1e-12)

	m, err := operation.NewMass(g)
	require.NoError(t, err)
	got, err := operation.Materialize(m, st.Size())
	require.NoError(t, err)
	// ∫(1−x)φ_(2,1) = 3/16 and ∫(1−y)y = 1/6
	require.InDelta(t, 0.03125, got.At(corner, target), 1e-12)
	require.InDelta(t, 0.03125, got.At(target, corner), 1e-12)
}

// TestAdaptive_RandomRefinementsMatchDense refines grids with random
// surpluses and compares the matrix-free operators and the evaluation
// descent against dense assembly and brute-force summation.
func TestAdaptive_RandomRefinementsMatchDense(t *testing.T) {
	cases := []struct {
		name string
		typ  grid.Type
		dim  int
		seed int64
	}{
		{"Boundary2D_a", grid.LinearBoundary, 2, 1},
		{"Boundary2D_b", grid.LinearBoundary, 2, 7},
		{"Boundary2D_c", grid.LinearBoundary, 2, 23},
		{"Boundary3D", grid.LinearBoundary, 3, 5},
		{"Linear2D", grid.Linear, 2, 11},
		{"Linear3D", grid.Linear, 3, 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(tc.seed))
			g := regular(t, tc.typ, tc.dim, 1)
			gen, err := g.Generator()
			require.NoError(t, err)
			for round := 0; round < 4; round++ {
				alpha := make([]float64, g.Size())
				for k := range alpha {
					alpha[k] = rng.NormFloat64()
				}
				_, err := gen.Refine(functor.NewSurplusRefinement(alpha, 1+rng.Intn(2), 0))
				require.NoError(t, err)
			}
			require.NoError(t, g.Storage().CheckClosed(g.Boundary()))
			n := g.Size()

			m, err := operation.NewMass(g)
			require.NoError(t, err)
			gotMass, err := operation.Materialize(m, n)
			require.NoError(t, err)
			requireDenseEqual(t, denseMass(g), gotMass, g)

			lp, err := operation.NewLaplace(g)
			require.NoError(t, err)
			gotLaplace, err := operation.Materialize(lp, n)
			require.NoError(t, err)
			requireDenseEqual(t, denseLaplace(g), gotLaplace, g)

			alpha := make([]float64, n)
			for k := range alpha {
				alpha[k] = rng.NormFloat64()
			}
			ev := operation.NewEval(g)
			for k := 0; k < 25; k++ {
				x := make([]float64, tc.dim)
				for d := range x {
					x[d] = rng.Float64()
				}
				got, err := ev.Eval(alpha, x)
				require.NoError(t, err)
				require.InDelta(t, bruteEval(g, alpha, x), got, 1e-12, "x=%v", x)
			}
		})
	}
}
