package generator

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Generator owns the mutation of one storage. It is not safe for concurrent
// use, and no operator may read the storage while a generator call runs.
type Generator struct {
	st   *storage.Storage
	opts Options
	log  *zap.SugaredLogger
}

// New binds a generator to st.
func New(st *storage.Storage, opts ...Option) (*Generator, error) {
	if st == nil {
		return nil, ErrNilStorage
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{st: st, opts: o, log: o.Logger.Sugar()}, nil
}

// Storage returns the storage the generator mutates.
func (g *Generator) Storage() *storage.Storage { return g.st }

// Boundary reports whether the generator maintains boundary points.
func (g *Generator) Boundary() bool { return g.opts.Boundary }

// MaxLevel returns the configured refinement cap.
func (g *Generator) MaxLevel() storage.Level { return g.opts.MaxLevel }

// Regular inserts the regular sparse grid of the given level into the empty
// storage.
//
// Errors: ErrInvalidLevel, ErrAlreadyGenerated.
//
// Complexity: O(N·d) for N generated points.
func (g *Generator) Regular(level storage.Level) error {
	return g.generate(level, false)
}

// Full inserts the full grid of the given level: every level vector with
// l_d ≤ level (boundary levels included when enabled).
//
// Errors: ErrInvalidLevel, ErrAlreadyGenerated.
func (g *Generator) Full(level storage.Level) error {
	return g.generate(level, true)
}

func (g *Generator) generate(level storage.Level, full bool) error {
	if level < 1 || level > storage.MaxLevel {
		return errors.Wrapf(ErrInvalidLevel, "level=%d", level)
	}
	if !g.st.Empty() {
		return errors.Wrapf(ErrAlreadyGenerated, "storage holds %d points", g.st.Size())
	}

	dim := g.st.Dim()
	indices := make([]storage.Index, dim)
	for _, levels := range g.levelVectors(level, full) {
		var rec func(d int) error
		rec = func(d int) error {
			if d == dim {
				p, err := storage.PointOf(levels, indices)
				if err != nil {
					return err
				}
				_, err = g.st.Insert(p)
				return err
			}
			first, last, step := storage.Index(1), storage.Index(1)<<levels[d]-1, storage.Index(2)
			if levels[d] == 0 {
				first, last, step = 0, 1, 1
			}
			for i := first; i <= last; i += step {
				indices[d] = i
				if err := rec(d + 1); err != nil {
					return err
				}
			}
			return nil
		}
		if err := rec(0); err != nil {
			return errors.Wrap(err, "generator: insert")
		}
	}

	g.log.Debugw("grid generated",
		"level", level, "full", full, "boundary", g.opts.Boundary, "size", g.st.Size())
	return nil
}

// levelVectors lists the admissible level vectors in generation order.
func (g *Generator) levelVectors(level storage.Level, full bool) [][]storage.Level {
	dim := g.st.Dim()
	lo := storage.Level(1)
	if g.opts.Boundary {
		lo = 0
	}
	budget := int(level) + dim - 1

	var out [][]storage.Level
	cur := make([]storage.Level, dim)
	var rec func(d, sum int)
	rec = func(d, sum int) {
		if d == dim {
			out = append(out, append([]storage.Level(nil), cur...))
			return
		}
		for l := lo; l <= level; l++ {
			eff := effective(l)
			// every remaining dimension needs at least effective level 1
			if !full && sum+eff+(dim-d-1) > budget {
				break
			}
			cur[d] = l
			rec(d+1, sum+eff)
		}
	}
	rec(0, 0)

	sort.SliceStable(out, func(a, b int) bool { return total(out[a]) < total(out[b]) })
	return out
}

// effective maps boundary level 0 onto level 1 for admissibility.
func effective(l storage.Level) int {
	if l == 0 {
		return 1
	}
	return int(l)
}

func total(levels []storage.Level) int {
	s := 0
	for _, l := range levels {
		s += int(l)
	}
	return s
}

// create inserts p after creating every missing hierarchical parent, and
// returns p's sequence number. Existing points are left untouched.
//
// On boundary grids a level-0 coordinate always comes in pairs: once p is
// stored, its sibling on the opposite boundary is created along every
// dimension where p has level 0. Poles are entered through their left
// boundary point, so a lone right boundary point would be unreachable.
func (g *Generator) create(p *storage.Point) (int, error) {
	if seq, ok := g.st.Find(p); ok {
		return seq, nil
	}
	for d := 0; d < p.Dim(); d++ {
		if p.Level(d) == 1 && !g.opts.Boundary {
			continue
		}
		for _, parent := range p.Parents(d) {
			if _, err := g.create(parent); err != nil {
				return 0, err
			}
		}
	}
	seq, err := g.st.Insert(p)
	if err != nil || !g.opts.Boundary {
		return seq, err
	}
	for d := 0; d < p.Dim(); d++ {
		l, i := p.Get(d)
		if l != 0 {
			continue
		}
		sibling := p.Clone()
		sibling.Set(d, 0, 1-i)
		if _, err := g.create(sibling); err != nil {
			return 0, err
		}
	}
	return seq, nil
}
