package solver

import "github.com/cockroachdb/errors"

// Sentinel errors returned by the solvers.
var (
	// ErrDimensionMismatch indicates inconsistent vector lengths.
	ErrDimensionMismatch = errors.New("solver: vector length mismatch")

	// ErrNotConverged indicates the iteration limit was reached before the
	// residual dropped below the tolerance.
	ErrNotConverged = errors.New("solver: not converged")

	// ErrBreakdown indicates a non-positive curvature pᵀAp.
	ErrBreakdown = errors.New("solver: conjugate gradients breakdown")
)
