// Package basis provides the one-dimensional basis capability consumed by
// the sparse-grid engine: Eval, EvalDx and Integral per (level, index).
//
// The engine never branches on the family in use. Three piecewise-linear
// families are provided, enough to build and exercise grids:
//
//   - Linear:         hat functions on levels ≥ 1, zero on the boundary.
//   - LinearBoundary: Linear plus the two level-0 functions 1−x and x.
//   - ModLinear:      level 1 is the constant 1, the outermost functions of
//     every level are extrapolated linearly to the boundary.
//
// All functions are defined on the canonical interval [0,1]; mapping to a
// bounding box is the caller's business.
package basis
