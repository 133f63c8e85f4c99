package solver

import (
	"fmt"

	"go.uber.org/zap"
)

// Defaults for Options.
const (
	DefaultMaxIterations = 1000
	DefaultTolerance     = 1e-10
)

// Options configures ConjugateGradients.
//
// MaxIterations – iteration budget (≥ 1).
// Tolerance     – relative residual target (> 0).
// Logger        – receives a Debug line per run; zap.NewNop() by default.
type Options struct {
	MaxIterations int
	Tolerance     float64
	Logger        *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations, Tolerance: DefaultTolerance, Logger: zap.NewNop()}
}

// WithMaxIterations sets the budget. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("solver: WithMaxIterations(%d): must be ≥ 1", n))
	}
	return func(o *Options) { o.MaxIterations = n }
}

// WithTolerance sets the relative residual target. Panics if tol ≤ 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic(fmt.Sprintf("solver: WithTolerance(%g): must be > 0", tol))
	}
	return func(o *Options) { o.Tolerance = tol }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
