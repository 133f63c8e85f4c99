package generator

import (
	"sort"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/SGpp/SGpp-sub016/functor"
	"github.com/SGpp/SGpp-sub016/storage"
)

// Report summarises one refinement round.
type Report struct {
	// Selected holds the refined sequence numbers in processing order.
	Selected []int
	// Inserted counts new points, ancestors included.
	Inserted int
	// Capped holds one ErrAlreadyRefinedToMaxLevel per (point, dimension)
	// whose children were skipped.
	Capped []error
}

// Refine refines the best-scoring points of f under the generator's level
// cap. See RefineMaxLevel.
func (g *Generator) Refine(f functor.RefinementFunctor) (Report, error) {
	return g.refine(f, g.opts.MaxLevel)
}

// RefineMaxLevel refines like Refine but never creates a point whose level
// exceeds maxLevel in any dimension (nor the generator's own cap).
//
// Implementation:
//
//	Stage 1: collect refinable points (a child within the cap is missing).
//	Stage 2: score them on a snapshot, in parallel when Workers > 1.
//	Stage 3: keep scores > Threshold, order max-first with ties broken by
//	         ascending seq, truncate to RefinementsNum.
//	Stage 4: for each selected point, dimension by dimension, create the
//	         missing left and right children together with any missing
//	         ancestors.
//
// Errors: ErrNilFunctor, ErrInvalidLevel. Cap hits are recorded in the
// report and do not fail the call.
func (g *Generator) RefineMaxLevel(f functor.RefinementFunctor, maxLevel storage.Level) (Report, error) {
	if maxLevel < 1 || maxLevel > storage.MaxLevel {
		return Report{}, errors.Wrapf(ErrInvalidLevel, "maxLevel=%d", maxLevel)
	}
	return g.refine(f, min(maxLevel, g.opts.MaxLevel))
}

func (g *Generator) refine(f functor.RefinementFunctor, maxLevel storage.Level) (Report, error) {
	if f == nil {
		return Report{}, ErrNilFunctor
	}

	var cands []int
	for seq := 0; seq < g.st.Size(); seq++ {
		if g.refinable(seq, maxLevel) {
			cands = append(cands, seq)
		}
	}
	scores := g.scores(cands, f.Score)
	selected := rank(cands, scores, func(s float64) bool { return s > f.Threshold() }, true, f.RefinementsNum())

	// snapshot before inserting: appends do not move existing seqs
	points := make([]*storage.Point, len(selected))
	for k, seq := range selected {
		p, err := g.st.Point(seq)
		if err != nil {
			return Report{}, err
		}
		points[k] = p
	}

	rep := Report{Selected: selected}
	before := g.st.Size()
	for k, p := range points {
		for d := 0; d < p.Dim(); d++ {
			left, right := p.LeftChild(d), p.RightChild(d)
			if left.Level(d) > maxLevel {
				rep.Capped = append(rep.Capped, errors.Wrapf(ErrAlreadyRefinedToMaxLevel,
					"seq %d %s dim %d: child level %d > %d", selected[k], p, d, left.Level(d), maxLevel))
				continue
			}
			for _, c := range []*storage.Point{left, right} {
				if _, err := g.create(c); err != nil {
					return rep, errors.Wrapf(err, "generator: refine seq %d dim %d", selected[k], d)
				}
			}
		}
	}
	rep.Inserted = g.st.Size() - before

	g.log.Debugw("grid refined",
		"candidates", len(cands), "selected", len(selected), "inserted", rep.Inserted,
		"capped", len(rep.Capped), "size", g.st.Size())
	for _, err := range rep.Capped {
		g.log.Debugw("refinement capped", "reason", err.Error())
	}
	return rep, nil
}

// RefinableCount returns the number of points with at least one missing
// child within the generator's level cap.
func (g *Generator) RefinableCount() int {
	n := 0
	for seq := 0; seq < g.st.Size(); seq++ {
		if g.refinable(seq, g.opts.MaxLevel) {
			n++
		}
	}
	return n
}

// refinable reports whether seq misses a child whose level stays within
// maxLevel.
func (g *Generator) refinable(seq int, maxLevel storage.Level) bool {
	p, err := g.st.Point(seq)
	if err != nil {
		return false
	}
	for d := 0; d < p.Dim(); d++ {
		for _, c := range []*storage.Point{p.LeftChild(d), p.RightChild(d)} {
			if c.Level(d) > maxLevel {
				continue
			}
			if _, ok := g.st.Find(c); !ok {
				return true
			}
		}
	}
	return false
}

// scores evaluates score for every seq. With more than one worker the
// slice is split into contiguous chunks scored on an errgroup; each chunk
// writes a disjoint range of the result.
func (g *Generator) scores(seqs []int, score func(int) float64) []float64 {
	out := make([]float64, len(seqs))
	workers := g.opts.Workers
	if workers <= 1 || len(seqs) < 2*workers {
		for k, seq := range seqs {
			out[k] = score(seq)
		}
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	chunk := (len(seqs) + workers - 1) / workers
	for lo := 0; lo < len(seqs); lo += chunk {
		hi := min(lo+chunk, len(seqs))
		eg.Go(func() error {
			for k := lo; k < hi; k++ {
				out[k] = score(seqs[k])
			}
			return nil
		})
	}
	_ = eg.Wait() // score functions cannot fail
	return out
}

// rank filters seqs by keep and orders them by score (descending when desc),
// ties by ascending seq, returning at most limit entries.
func rank(seqs []int, scores []float64, keep func(float64) bool, desc bool, limit int) []int {
	type entry struct {
		seq   int
		score float64
	}
	var es []entry
	for k, seq := range seqs {
		if keep(scores[k]) {
			es = append(es, entry{seq, scores[k]})
		}
	}
	sort.Slice(es, func(a, b int) bool {
		if es[a].score != es[b].score {
			if desc {
				return es[a].score > es[b].score
			}
			return es[a].score < es[b].score
		}
		return es[a].seq < es[b].seq
	})
	if limit < 0 {
		limit = 0
	}
	if len(es) > limit {
		es = es[:limit]
	}
	out := make([]int, len(es))
	for k, e := range es {
		out[k] = e.seq
	}
	return out
}
