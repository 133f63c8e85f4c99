package solver

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Operator is the matrix-free view of A.
type Operator interface {
	Mult(x, result []float64) error
}

// Result reports the outcome of a solve.
type Result struct {
	X          []float64 // final iterate
	Iterations int       // iterations performed
	Residual   float64   // ‖b − A X‖₂ / ‖b‖₂ (absolute when b = 0)
}

// ConjugateGradients solves A x = b starting from x0 (nil means zero).
// Neither b nor x0 is modified.
//
// Errors: ErrDimensionMismatch, ErrBreakdown, ErrNotConverged (Result is
// filled in all three non-mismatch cases), or the operator's own error.
//
// Complexity: one Mult and O(n) vector work per iteration.
func ConjugateGradients(a Operator, b, x0 []float64, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger.Sugar()

	n := len(b)
	x := make([]float64, n)
	if x0 != nil {
		if len(x0) != n {
			return Result{}, errors.Wrapf(ErrDimensionMismatch, "len(b)=%d len(x0)=%d", n, len(x0))
		}
		copy(x, x0)
	}

	scale := floats.Norm(b, 2)
	if scale == 0 {
		scale = 1
	}

	// r = b − A x
	r := make([]float64, n)
	if err := a.Mult(x, r); err != nil {
		return Result{}, err
	}
	floats.SubTo(r, b, r)
	p := append([]float64(nil), r...)
	ap := make([]float64, n)
	rr := floats.Dot(r, r)

	res := Result{X: x, Residual: math.Sqrt(rr) / scale}
	for res.Residual > o.Tolerance {
		if res.Iterations == o.MaxIterations {
			log.Debugw("conjugate gradients stopped", "iterations", res.Iterations, "residual", res.Residual)
			return res, errors.Wrapf(ErrNotConverged, "residual %g after %d iterations", res.Residual, res.Iterations)
		}
		if err := a.Mult(p, ap); err != nil {
			return res, err
		}
		pap := floats.Dot(p, ap)
		if !(pap > 0) {
			return res, errors.Wrapf(ErrBreakdown, "pᵀAp=%g at iteration %d", pap, res.Iterations)
		}
		step := rr / pap
		floats.AddScaled(x, step, p)
		floats.AddScaled(r, -step, ap)
		next := floats.Dot(r, r)
		floats.AddScaledTo(p, r, next/rr, p)
		rr = next
		res.Iterations++
		res.Residual = math.Sqrt(rr) / scale
	}
	log.Debugw("conjugate gradients converged", "iterations", res.Iterations, "residual", res.Residual, "n", n)
	return res, nil
}
