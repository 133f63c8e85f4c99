// Package operation provides the grid-level operations built on the
// up/down machinery and the basis capability:
//
//   - NewMass          L2 mass matrix (Linear, LinearBoundary).
//   - NewLaplace       Σ_k stiffness in dim k ⊗ mass elsewhere.
//   - NewEval          point evaluation of a sparse-grid function.
//   - NewQuadrature    integral of a sparse-grid function.
//   - NewHierarchisation nodal ⇄ hierarchical coefficients, in place.
//   - Materialize      assembles any OperationMatrix densely (inspection).
//
// Operators act on coefficient vectors aligned with the storage sequence.
// They read the grid and never mutate it; a generator call invalidates
// every vector sized for the previous grid.
//
// Errors (sentinel):
//
//   - ErrUnsupportedGrid    the grid type or coordinate transform is not
//     handled by the operation.
//   - ErrDimensionMismatch  vector or point of the wrong length.
//   - ErrOutOfDomain        evaluation point outside the grid's domain.
package operation
