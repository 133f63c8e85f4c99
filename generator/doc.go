// Package generator builds and adapts sparse grids in a storage.Storage.
//
// What:
//
//   - Regular(L) inserts the regular sparse grid of level L. For interior
//     grids the admissible level vectors satisfy Σ l_d ≤ L + d − 1 with every
//     l_d ≥ 1. For boundary grids the level-0 boundary points count as level 1
//     in that sum, so a boundary grid of level L is the interior grid of
//     level L together with the boundary points of every admissible
//     sub-hierarchy (2D, L=3: 49 points).
//   - Full(L) inserts the full tensor grid with every l_d ≤ L.
//   - Refine/RefineMaxLevel insert the children of the best-scoring points.
//   - Coarsen/CoarsenNFirstOnly remove the worst-scoring leaves.
//
// Ordering:
//
// Sequence numbers are positional keys into coefficient vectors, so every
// mutation is deterministic. Regular and Full visit level vectors ordered
// by total level, then lexicographically with dimension 0 most significant,
// and within a level vector the index vectors in the same lexicographic
// order. Refinement processes the selected points by descending score (ties
// by ascending sequence number), dimensions ascending, left child first.
//
// Closure:
//
// Every point inserted by this package has all of its hierarchical parents
// present: missing ancestors of a new child are created first, recursively.
// Coarsening only removes leaves and never removes boundary points, so the
// grid stays closed. Up/down sweeps and evaluation rely on that.
//
// Concurrency:
//
// Functor scores are computed on a snapshot, optionally in parallel on an
// errgroup bounded by WithWorkers. Selection and all storage mutation run
// on the calling goroutine after scoring has finished.
//
// Errors (sentinel):
//
//   - ErrAlreadyGenerated         Regular/Full on a non-empty storage.
//   - ErrInvalidLevel             level < 1 or above storage.MaxLevel.
//   - ErrAlreadyRefinedToMaxLevel recorded per point and dimension in the
//     refinement report; never returned from Refine.
//   - ErrDimensionMismatch        coefficient vector length ≠ storage size.
//   - ErrNilFunctor               nil functor passed to Refine/Coarsen.
package generator
