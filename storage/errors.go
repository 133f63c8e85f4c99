// SPDX-License-Identifier: MIT

package storage

import "github.com/cockroachdb/errors"

// Sentinel errors for storage operations. Match them with errors.Is; callers
// receive them wrapped with the offending point or sequence number.
var (
	// ErrInvalidDimension indicates a dimension < 1 or a dimension mismatch
	// between a point (or transform) and the storage.
	ErrInvalidDimension = errors.New("storage: invalid dimension")

	// ErrInvalidPoint indicates an index that is not canonical for its level
	// (even index on level ≥ 1, index ≥ 2^level, or level 0 index > 1).
	ErrInvalidPoint = errors.New("storage: invalid grid point")

	// ErrDuplicatePoint indicates Insert was called with a key already present.
	ErrDuplicatePoint = errors.New("storage: duplicate point")

	// ErrNotALeaf indicates an attempt to remove a point that has children.
	ErrNotALeaf = errors.New("storage: point is not a leaf")

	// ErrPointNotFound indicates a sequence number outside [0, Size()).
	ErrPointNotFound = errors.New("storage: point not found")

	// ErrInvalidBoundingBox indicates an empty, inverted or non-finite interval.
	ErrInvalidBoundingBox = errors.New("storage: invalid bounding box")

	// ErrInvalidStretching indicates an unknown stretching type or parameters
	// outside the domain of the stretching map.
	ErrInvalidStretching = errors.New("storage: invalid stretching")

	// ErrDeserialization indicates a malformed serialized storage block.
	ErrDeserialization = errors.New("storage: deserialization failed")

	// ErrCorrupt indicates that Check found a violated structural invariant.
	ErrCorrupt = errors.New("storage: invariant violated")
)
