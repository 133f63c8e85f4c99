package operation

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/updown"
)

// Sentinel errors returned by operations.
var (
	// ErrUnsupportedGrid indicates a grid type or transform the operation
	// does not implement.
	ErrUnsupportedGrid = errors.New("operation: unsupported grid")

	// ErrDimensionMismatch is shared with the up/down operators so callers
	// match a single sentinel.
	ErrDimensionMismatch = updown.ErrDimensionMismatch

	// ErrOutOfDomain indicates an evaluation point outside the grid domain.
	ErrOutOfDomain = errors.New("operation: point outside domain")
)
