// SPDX-License-Identifier: MIT

package updown

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Operator applies the tensor product of its blocks to coefficient vectors.
// It reads the storage but never mutates it; Mult may be called from several
// goroutines as long as no generator mutates the storage meanwhile.
type Operator struct {
	st     *storage.Storage
	blocks []Block
	dims   []int
	depth  int
	log    *zap.SugaredLogger
}

// New returns the operator ⊗_k blocks[k], where blocks[k] acts along
// Options.Dims[k] (dimension k when Dims is unset).
//
// Errors: ErrNilStorage, ErrInvalidDimension, ErrBlockCount.
func New(st *storage.Storage, blocks []Block, opts ...Option) (*Operator, error) {
	if st == nil {
		return nil, ErrNilStorage
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dims := o.Dims
	if dims == nil {
		dims = make([]int, st.Dim())
		for d := range dims {
			dims[d] = d
		}
	}
	seen := make(map[int]bool, len(dims))
	for _, d := range dims {
		if d < 0 || d >= st.Dim() || seen[d] {
			return nil, errors.Wrapf(ErrInvalidDimension, "dims=%v storage dim=%d", dims, st.Dim())
		}
		seen[d] = true
	}
	if len(blocks) != len(dims) {
		return nil, errors.Wrapf(ErrBlockCount, "%d blocks for %d dims", len(blocks), len(dims))
	}
	for k, b := range blocks {
		if b == nil {
			return nil, errors.Wrapf(ErrBlockCount, "block %d is nil", k)
		}
	}

	op := &Operator{
		st:     st,
		blocks: append([]Block(nil), blocks...),
		dims:   dims,
		depth:  o.ParallelDepth,
		log:    o.Logger.Sugar(),
	}
	op.log.Debugw("up/down operator ready", "dims", dims, "parallelDepth", op.depth, "size", st.Size())
	return op, nil
}

// Storage returns the grid the operator is bound to.
func (op *Operator) Storage() *storage.Storage { return op.st }

// Dims returns the dimensions the recursion runs over.
func (op *Operator) Dims() []int { return append([]int(nil), op.dims...) }

// Mult computes result = A·alpha.
//
// Implementation:
//
//	Stage 1: validate both lengths against the storage size.
//	Stage 2: recurse from the outermost dimension; at each level the
//	         branches updown(Up_k a, k−1) and Down_k updown(a, k−1) run on
//	         an errgroup while the level is shallower than ParallelDepth.
//	Stage 3: copy the sum into result.
//
// Errors: ErrDimensionMismatch (result untouched), or the first block error.
//
// Complexity: every recursion level issues two sweeps per branch, O(2^d·N)
// for d dimensions and N points. No matrix is formed.
func (op *Operator) Mult(alpha, result []float64) error {
	if err := checkLen(op.st.Size(), alpha, result); err != nil {
		return err
	}
	if len(op.dims) == 0 {
		copy(result, alpha)
		return nil
	}
	out, err := op.updown(alpha, len(op.dims)-1, 0)
	if err != nil {
		return err
	}
	copy(result, out)
	return nil
}

func (op *Operator) updown(alpha []float64, k, depth int) ([]float64, error) {
	n := len(alpha)
	b, dim := op.blocks[k], op.dims[k]

	if k == 0 {
		up, down := make([]float64, n), make([]float64, n)
		if err := b.Up(alpha, up, dim); err != nil {
			return nil, err
		}
		if err := b.Down(alpha, down, dim); err != nil {
			return nil, err
		}
		floats.Add(up, down)
		return up, nil
	}

	var r1, r2 []float64
	upBranch := func() error {
		tmp := make([]float64, n)
		if err := b.Up(alpha, tmp, dim); err != nil {
			return err
		}
		var err error
		r1, err = op.updown(tmp, k-1, depth+1)
		return err
	}
	downBranch := func() error {
		tmp, err := op.updown(alpha, k-1, depth+1)
		if err != nil {
			return err
		}
		r2 = make([]float64, n)
		return b.Down(tmp, r2, dim)
	}

	if depth < op.depth {
		var eg errgroup.Group
		eg.Go(upBranch)
		eg.Go(downBranch)
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		if err := upBranch(); err != nil {
			return nil, err
		}
		if err := downBranch(); err != nil {
			return nil, err
		}
	}
	floats.Add(r1, r2)
	return r1, nil
}
