package updown

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultParallelDepth forks the two branches of the outermost two
// recursion levels, i.e. up to four concurrent branches.
const DefaultParallelDepth = 2

// Options configures an Operator.
//
// Dims          – storage dimensions the recursion runs over, outermost last;
//
//	nil means every dimension in ascending order. Omitted dimensions act as
//	the identity.
//
// ParallelDepth – number of recursion levels whose branches run concurrently
//
//	(0 = fully sequential).
//
// Logger        – zap.NewNop() by default.
type Options struct {
	Dims          []int
	ParallelDepth int
	Logger        *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{ParallelDepth: DefaultParallelDepth, Logger: zap.NewNop()}
}

// WithDims restricts the operator to the given storage dimensions.
func WithDims(dims ...int) Option {
	cp := append([]int(nil), dims...)
	return func(o *Options) { o.Dims = cp }
}

// WithParallelDepth sets the fork depth. Panics if n < 0.
func WithParallelDepth(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("updown: WithParallelDepth(%d): must be ≥ 0", n))
	}
	return func(o *Options) { o.ParallelDepth = n }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
