package grid

import (
	"go.uber.org/zap"

	"github.com/SGpp/SGpp-sub016/generator"
	"github.com/SGpp/SGpp-sub016/storage"
)

// Options configures a Grid and the generators it hands out.
//
// MaxLevel – refinement cap passed to the generator.
// Workers  – functor scoring parallelism passed to the generator.
// Logger   – zap.NewNop() by default.
type Options struct {
	MaxLevel storage.Level
	Workers  int
	Logger   *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions mirrors generator.DefaultOptions.
func DefaultOptions() Options {
	return Options{
		MaxLevel: generator.DefaultMaxLevel,
		Workers:  generator.DefaultWorkers,
		Logger:   zap.NewNop(),
	}
}

// WithMaxLevel caps refinement. Panics like generator.WithMaxLevel.
func WithMaxLevel(l storage.Level) Option {
	generator.WithMaxLevel(l)
	return func(o *Options) { o.MaxLevel = l }
}

// WithWorkers sets the scoring parallelism. Panics like
// generator.WithWorkers.
func WithWorkers(n int) Option {
	generator.WithWorkers(n)
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
