package generator

import (
	"github.com/cockroachdb/errors"

	"github.com/SGpp/SGpp-sub016/functor"
)

// Coarsen removes the lowest-scoring leaves of f. See CoarsenNFirstOnly.
func (g *Generator) Coarsen(f functor.CoarseningFunctor, alpha []float64) ([]float64, []int, error) {
	return g.CoarsenNFirstOnly(f, alpha, 0)
}

// CoarsenNFirstOnly removes up to f.RemovementsNum() leaves whose score is
// below f.Threshold(), lowest first with ties broken by ascending seq.
// Points with seq < keepFirstN and boundary points are never candidates.
//
// It returns alpha compacted to the new storage order and the removed
// sequence numbers (pre-removal numbering, ascending). alpha itself is not
// modified.
//
// Errors: ErrNilFunctor, ErrDimensionMismatch.
func (g *Generator) CoarsenNFirstOnly(f functor.CoarseningFunctor, alpha []float64, keepFirstN int) ([]float64, []int, error) {
	if f == nil {
		return nil, nil, ErrNilFunctor
	}
	if len(alpha) != g.st.Size() {
		return nil, nil, errors.Wrapf(ErrDimensionMismatch, "len(alpha)=%d size=%d", len(alpha), g.st.Size())
	}

	cands := g.coarsenable(keepFirstN)
	scores := g.scores(cands, f.Score)
	selected := rank(cands, scores, func(s float64) bool { return s < f.Threshold() }, false, f.RemovementsNum())

	removed, err := g.st.RemovePoints(selected)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generator: coarsen")
	}
	out := Compact(alpha, removed)

	g.log.Debugw("grid coarsened",
		"candidates", len(cands), "selected", len(selected), "removed", len(removed), "size", g.st.Size())
	return out, removed, nil
}

// CoarsenableCount returns the number of removal candidates at or after
// keepFirstN: non-boundary leaves.
func (g *Generator) CoarsenableCount(keepFirstN int) int {
	return len(g.coarsenable(keepFirstN))
}

func (g *Generator) coarsenable(keepFirstN int) []int {
	var out []int
	for seq := max(keepFirstN, 0); seq < g.st.Size(); seq++ {
		if !g.st.IsLeaf(seq) || g.onBoundary(seq) {
			continue
		}
		out = append(out, seq)
	}
	return out
}

func (g *Generator) onBoundary(seq int) bool {
	for d := 0; d < g.st.Dim(); d++ {
		if l, _ := g.st.Get(seq, d); l == 0 {
			return true
		}
	}
	return false
}

// Compact returns a copy of alpha without the entries at the ascending
// sequence numbers in removed.
func Compact(alpha []float64, removed []int) []float64 {
	out := make([]float64, 0, len(alpha)-min(len(removed), len(alpha)))
	k := 0
	for seq, v := range alpha {
		if k < len(removed) && removed[k] == seq {
			k++
			continue
		}
		out = append(out, v)
	}
	return out
}
