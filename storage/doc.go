// SPDX-License-Identifier: MIT

// Package storage holds the point set of a hierarchical sparse grid.
//
// What:
//
//   - Point: one (level, index) pair per dimension plus a leaf flag.
//   - Storage: an insertion-ordered, hash-indexed collection of points with
//     bidirectional point ↔ sequence-number lookup.
//   - Iterator: a cursor that walks the implicit binary tree of each
//     dimension (parent, children, siblings) without mutating storage.
//   - BoundingBox / Stretching: optional maps from the canonical unit cube
//     to physical coordinates.
//   - A versioned text encoding with exact round-trip.
//
// Hierarchy:
//
//	level 0:  (0,0)                         (0,1)     boundary points
//	level 1:                 (1,1)
//	level 2:        (2,1)             (2,3)
//	level 3:    (3,1)   (3,3)     (3,5)   (3,7)
//
// Parent/child relations are computed from (level, index) arithmetic and
// never stored as references. The children of (l,i) along a dimension are
// (l+1, 2i−1) and (l+1, 2i+1); both boundary points share the child (1,1).
//
// Sequence numbers:
//
//   - Dense in [0, Size()). Coefficient vectors are positional and aligned
//     with storage order.
//   - Removal compacts the sequence; survivors keep their relative order.
//     Callers reslice coefficient vectors with the returned removed list.
//
// Concurrency:
//
//   - Storage is not internally synchronized. Concurrent readers are safe
//     while no goroutine mutates; mutation is owned by one generator session.
//
// Errors:
//
//   - ErrInvalidDimension: dimension < 1 or mismatched point/box dimension.
//   - ErrInvalidPoint: (level, index) pair outside the canonical indexing.
//   - ErrDuplicatePoint: Insert of an existing key.
//   - ErrNotALeaf: Remove of a point that still has children.
//   - ErrPointNotFound: sequence number out of range.
//   - ErrInvalidBoundingBox / ErrInvalidStretching: malformed transforms.
//   - ErrDeserialization: malformed serialized block.
//   - ErrCorrupt: Check found a violated structural invariant.
package storage
