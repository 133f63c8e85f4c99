// Package sgpp is the root of a hierarchical sparse-grid engine: adaptive
// grids over [0,1]^d (or a bounding box), built from per-dimension binary
// trees of hierarchical basis functions, with matrix-free operators that
// work directly on hierarchical coefficient vectors.
//
// What is inside?
//
//	storage/   : point keys, the hashed Storage, iterator, transforms
//	basis/     : Linear, LinearBoundary and ModLinear basis functions
//	functor/   : refinement and coarsening scores (surplus-based)
//	generator/ : regular/full construction, refine, coarsen
//	updown/    : dimension-recursive up/down operator, mass and stiffness blocks
//	operation/ : mass, Laplace, evaluation, quadrature, hierarchisation
//	solver/    : matrix-free conjugate gradients
//	grid/      : grid types, factory, serialization, YAML config
//
// Typical flow:
//
//	g, _ := grid.NewLinearBoundaryGrid(2)
//	gen, _ := g.Generator()
//	_ = gen.Regular(3)                                   // 49 points
//	h, _ := operation.NewHierarchisation(g)
//	_ = h.Hierarchise(alpha)                             // nodal → surplus
//	_, _ = gen.Refine(functor.NewSurplusRefinement(alpha, 5, 1e-3))
//
// Sequence numbers are positional: every coefficient vector is exactly
// Size() long and aligned with storage order. Refinement appends,
// coarsening compacts and reports the removed numbers so vectors can be
// resliced with generator.Compact.
//
// Quick ASCII example (1D, level 3):
//
//	level 1            (1,1)
//	                  /     \
//	level 2       (2,1)     (2,3)
//	              /  \       /  \
//	level 3   (3,1) (3,3) (3,5) (3,7)
//
//	go get github.com/SGpp/SGpp-sub016
package sgpp
