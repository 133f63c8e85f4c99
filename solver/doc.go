// Package solver solves linear systems A x = b whose matrix is only
// available through a Mult method, such as the sparse-grid mass and Laplace
// operators.
//
// ConjugateGradients requires A to be symmetric positive definite on the
// coefficient space. Convergence is declared when ‖r‖₂ ≤ tol·‖b‖₂.
//
// Errors (sentinel):
//
//   - ErrDimensionMismatch  b and x0 lengths differ.
//   - ErrNotConverged       iteration budget exhausted; the best iterate is
//     still returned in Result.
//   - ErrBreakdown          pᵀAp ≤ 0, the operator is not positive definite.
package solver
