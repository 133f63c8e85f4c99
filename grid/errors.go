package grid

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Sentinel errors returned by this package.
var (
	// ErrUnknownType indicates an unrecognised grid type tag.
	ErrUnknownType = errors.New("grid: unknown grid type")

	// ErrInvalidConfig indicates a YAML grid description that cannot be built.
	ErrInvalidConfig = errors.New("grid: invalid config")

	// ErrDeserialization is the storage parse error; grid-level parse
	// failures are reported with it as well.
	ErrDeserialization = storage.ErrDeserialization
)
