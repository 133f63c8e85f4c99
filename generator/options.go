package generator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Defaults for Options.
const (
	// DefaultWorkers scores sequentially.
	DefaultWorkers = 1

	// DefaultMaxLevel is the largest level representable in storage.
	DefaultMaxLevel = storage.MaxLevel
)

// Options configures a Generator.
//
// Boundary – generate and keep the level-0 boundary points.
// MaxLevel – per-dimension level cap for refinement (1 ≤ MaxLevel ≤ storage.MaxLevel).
// Workers  – number of goroutines scoring functors (≥ 1).
// Logger   – destination of Debug summaries; zap.NewNop() by default.
type Options struct {
	Boundary bool
	MaxLevel storage.Level
	Workers  int
	Logger   *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns an interior generator without level cap that scores
// on the calling goroutine and discards logs.
func DefaultOptions() Options {
	return Options{
		MaxLevel: DefaultMaxLevel,
		Workers:  DefaultWorkers,
		Logger:   zap.NewNop(),
	}
}

// WithBoundary toggles boundary points.
func WithBoundary(on bool) Option {
	return func(o *Options) { o.Boundary = on }
}

// WithMaxLevel caps refinement at level l in every dimension.
// Panics if l is 0 or above storage.MaxLevel.
func WithMaxLevel(l storage.Level) Option {
	if l < 1 || l > storage.MaxLevel {
		panic(fmt.Sprintf("generator: WithMaxLevel(%d): must be in [1,%d]", l, storage.MaxLevel))
	}
	return func(o *Options) { o.MaxLevel = l }
}

// WithWorkers sets the scoring parallelism. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("generator: WithWorkers(%d): must be ≥ 1", n))
	}
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
