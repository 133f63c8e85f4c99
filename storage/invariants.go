// SPDX-License-Identifier: MIT

package storage

import "github.com/cockroachdb/errors"

// Check validates the structural invariants of the storage:
//
//   - every point has the storage dimension and canonical indexing;
//   - the hash index resolves every point to its own sequence number and
//     holds exactly Size() entries;
//   - the leaf flag is true iff no child key is present along any dimension.
//
// Check is O(n·d) and intended for tests and debugging.
func (s *Storage) Check() error {
	entries := 0
	for _, bucket := range s.index {
		entries += len(bucket)
	}
	if entries != len(s.points) {
		return errors.Wrapf(ErrCorrupt, "index holds %d entries for %d points", entries, len(s.points))
	}
	for seq, p := range s.points {
		if p.Dim() != s.dim {
			return errors.Wrapf(ErrCorrupt, "seq %d: dim %d, storage dim %d", seq, p.Dim(), s.dim)
		}
		if err := p.Validate(); err != nil {
			return errors.Wrapf(ErrCorrupt, "seq %d: %v", seq, err)
		}
		got, ok := s.lookup(p.levels, p.indices, nil)
		if !ok || got != seq {
			return errors.Wrapf(ErrCorrupt, "seq %d %s: index resolves to %d (found=%t)", seq, p, got, ok)
		}
		if want := !s.hasAnyChild(p.levels, p.indices); p.leaf != want {
			return errors.Wrapf(ErrCorrupt, "seq %d %s: leaf=%t, want %t", seq, p, p.leaf, want)
		}
	}
	return nil
}

// CheckClosed reports the first point with a missing hierarchical parent.
// Grids built by the generator are hierarchically closed, which is what the
// up/down sweeps and the evaluation descent rely on. boundary selects whether
// level-1 points need their two boundary parents; it also requires every
// level-0 coordinate to have its sibling on the opposite boundary.
func (s *Storage) CheckClosed(boundary bool) error {
	for seq, p := range s.points {
		levels := append([]Level(nil), p.levels...)
		indices := append([]Index(nil), p.indices...)
		for d := 0; d < s.dim; d++ {
			l, i := levels[d], indices[d]
			if l == 1 && !boundary {
				continue
			}
			if l == 0 && boundary {
				indices[d] = 1 - i
				_, ok := s.lookup(levels, indices, nil)
				indices[d] = i
				if !ok {
					return errors.Wrapf(ErrCorrupt, "seq %d %s: boundary sibling (0,%d) missing along dim %d", seq, p, 1-i, d)
				}
				continue
			}
			var missing *Point
			forEachParent(l, i, func(pl Level, pi Index) {
				levels[d], indices[d] = pl, pi
				if _, ok := s.lookup(levels, indices, nil); !ok && missing == nil {
					missing = &Point{levels: append([]Level(nil), levels...), indices: append([]Index(nil), indices...)}
				}
			})
			levels[d], indices[d] = l, i
			if missing != nil {
				return errors.Wrapf(ErrCorrupt, "seq %d %s: parent %s missing along dim %d", seq, p, missing, d)
			}
		}
	}
	return nil
}
