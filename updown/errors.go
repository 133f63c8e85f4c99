package updown

import "github.com/cockroachdb/errors"

// Sentinel errors returned by the up/down machinery.
var (
	// ErrNilStorage indicates a nil storage.
	ErrNilStorage = errors.New("updown: storage is nil")

	// ErrDimensionMismatch indicates a coefficient vector whose length
	// differs from the storage size.
	ErrDimensionMismatch = errors.New("updown: coefficient vector length mismatch")

	// ErrInvalidDimension indicates a dimension outside [0, dim) or listed
	// twice.
	ErrInvalidDimension = errors.New("updown: invalid dimension")

	// ErrBlockCount indicates that the number of blocks does not match the
	// number of dimensions the operator runs over.
	ErrBlockCount = errors.New("updown: block count mismatch")
)

func checkLen(n int, vs ...[]float64) error {
	for _, v := range vs {
		if len(v) != n {
			return errors.Wrapf(ErrDimensionMismatch, "len=%d size=%d", len(v), n)
		}
	}
	return nil
}
