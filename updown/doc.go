// Package updown applies separable d-dimensional operators on a sparse grid
// without assembling their matrices.
//
// A separable operator A = A_{d−1} ⊗ … ⊗ A_0 is given by one-dimensional
// factors. Each factor is split along the grid hierarchy into
//
//	Up:   contributions from hierarchical descendants (strictly finer points)
//	Down: contributions from ancestors plus the diagonal
//
// so that A_k = Up_k + Down_k. Operator.Mult evaluates the product with the
// recursion
//
//	updown(a, 0) = Up_0 a + Down_0 a
//	updown(a, k) = updown(Up_k a, k−1) + Down_k updown(a, k−1)
//
// where every sweep is linear in the number of points. The two branches
// of each level are independent: up to WithParallelDepth levels they run as
// errgroup tasks writing disjoint buffers, summed after the join. Inside a
// branch the dimensions stay sequential.
//
// Blocks:
//
//   - Mass:      L2 scalar products ∫φ_p φ_q of piecewise-linear functions.
//   - Stiffness: ∫φ'_p φ'_q of the same functions.
//
// Both come in an interior and a boundary flavour and scale with the
// bounding-box width of their dimension. Blocks walk the grid pole by pole
// with a Sweep and rely on hierarchical closure.
//
// Errors (sentinel):
//
//   - ErrDimensionMismatch  vector length ≠ storage size; result untouched.
//   - ErrInvalidDimension   dimension out of range or repeated in WithDims.
//   - ErrBlockCount         number of blocks ≠ number of dimensions.
package updown
