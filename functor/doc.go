// Package functor defines the scoring contracts that drive adaptive
// refinement and coarsening, plus the surplus-based implementations used in
// practice.
//
// A functor is evaluated on a consistent snapshot: the generator scores
// every candidate sequence number before it mutates the storage. Score must
// therefore be safe for concurrent calls, which all functors here are as
// long as the coefficient vector is not modified while scoring runs.
package functor
