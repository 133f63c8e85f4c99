package functor

import (
	"math"

	"github.com/SGpp/SGpp-sub016/storage"
)

// RefinementFunctor ranks points for refinement. Higher scores are refined
// first; points scoring at or below Threshold are never refined.
type RefinementFunctor interface {
	Score(seq int) float64
	RefinementsNum() int
	Threshold() float64
}

// CoarseningFunctor ranks points for removal. Lower scores are removed
// first; points scoring at or above Threshold are kept.
type CoarseningFunctor interface {
	Score(seq int) float64
	RemovementsNum() int
	Threshold() float64
}

// SurplusRefinement scores a point by the magnitude of its hierarchical
// surplus.
type SurplusRefinement struct {
	alpha     []float64
	n         int
	threshold float64
}

// NewSurplusRefinement refines the n points with the largest |alpha[seq]|
// above threshold. alpha is retained, not copied.
func NewSurplusRefinement(alpha []float64, n int, threshold float64) *SurplusRefinement {
	return &SurplusRefinement{alpha: alpha, n: n, threshold: threshold}
}

func (f *SurplusRefinement) Score(seq int) float64 { return math.Abs(f.alpha[seq]) }
func (f *SurplusRefinement) RefinementsNum() int   { return f.n }
func (f *SurplusRefinement) Threshold() float64    { return f.threshold }

// SurplusVolumeRefinement weights |alpha[seq]| by the volume of the point's
// support, Π_d 2^−l_d, which favours coarse points with large surpluses.
// Boundary levels count as level 0 (volume factor 1).
type SurplusVolumeRefinement struct {
	st        *storage.Storage
	alpha     []float64
	n         int
	threshold float64
}

// NewSurplusVolumeRefinement binds the functor to st and alpha.
func NewSurplusVolumeRefinement(st *storage.Storage, alpha []float64, n int, threshold float64) *SurplusVolumeRefinement {
	return &SurplusVolumeRefinement{st: st, alpha: alpha, n: n, threshold: threshold}
}

func (f *SurplusVolumeRefinement) Score(seq int) float64 {
	vol := 1.0
	for d := 0; d < f.st.Dim(); d++ {
		l, _ := f.st.Get(seq, d)
		vol = math.Ldexp(vol, -int(l))
	}
	return math.Abs(f.alpha[seq]) * vol
}
func (f *SurplusVolumeRefinement) RefinementsNum() int { return f.n }
func (f *SurplusVolumeRefinement) Threshold() float64  { return f.threshold }

// SurplusCoarsening scores a point by |alpha[seq]|; small surpluses are
// removed first.
type SurplusCoarsening struct {
	alpha     []float64
	n         int
	threshold float64
}

// NewSurplusCoarsening removes up to n points with |alpha[seq]| < threshold.
func NewSurplusCoarsening(alpha []float64, n int, threshold float64) *SurplusCoarsening {
	return &SurplusCoarsening{alpha: alpha, n: n, threshold: threshold}
}

func (f *SurplusCoarsening) Score(seq int) float64 { return math.Abs(f.alpha[seq]) }
func (f *SurplusCoarsening) RemovementsNum() int   { return f.n }
func (f *SurplusCoarsening) Threshold() float64    { return f.threshold }

// Static interface checks.
var (
	_ RefinementFunctor = (*SurplusRefinement)(nil)
	_ RefinementFunctor = (*SurplusVolumeRefinement)(nil)
	_ CoarseningFunctor = (*SurplusCoarsening)(nil)
)
