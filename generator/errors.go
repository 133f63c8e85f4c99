package generator

import "github.com/cockroachdb/errors"

// Sentinel errors returned by the generator.
var (
	// ErrNilStorage indicates a nil storage was passed to New.
	ErrNilStorage = errors.New("generator: storage is nil")

	// ErrAlreadyGenerated indicates Regular or Full was called on a storage
	// that already holds points.
	ErrAlreadyGenerated = errors.New("generator: grid already generated")

	// ErrInvalidLevel indicates a level outside [1, storage.MaxLevel].
	ErrInvalidLevel = errors.New("generator: invalid level")

	// ErrAlreadyRefinedToMaxLevel marks a child that was not created because
	// its level would exceed the configured cap.
	ErrAlreadyRefinedToMaxLevel = errors.New("generator: already refined to max level")

	// ErrDimensionMismatch indicates a coefficient vector whose length differs
	// from the storage size.
	ErrDimensionMismatch = errors.New("generator: coefficient vector length mismatch")

	// ErrNilFunctor indicates a nil refinement or coarsening functor.
	ErrNilFunctor = errors.New("generator: functor is nil")
)
