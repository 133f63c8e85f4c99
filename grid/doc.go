// Package grid is the entry point for building sparse grids: a closed set of
// grid types, each bundling a storage, the matching basis family and a
// pre-configured generator.
//
// Types:
//
//   - Linear          hat functions, no boundary points.
//   - LinearBoundary  hat functions plus the level-0 boundary points.
//   - ModLinear       modified linear functions, no boundary points.
//
// Construction:
//
//	g, err := grid.NewLinearBoundaryGrid(2)
//	gen, err := g.Generator()
//	err = gen.Regular(3) // 49 points
//
// A grid can also be described in YAML and built with LoadConfig/Build:
//
//	type: linearBoundary
//	dim: 2
//	level: 3
//	boundingBox:
//	  - {left: 0, right: 2}
//	  - {left: -1, right: 1, dirichletLeft: true}
//
// Serialization prefixes the storage block with a "grid <type>" line so the
// type survives the round trip.
package grid
