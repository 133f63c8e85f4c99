// SPDX-License-Identifier: MIT

package updown

import (
	"math"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Block is a one-dimensional operator factor split into its Up and Down
// parts. Both read src and overwrite every entry of dst; src and dst have
// the storage's length and must not alias. Implementations must be safe for
// concurrent calls on distinct buffers.
type Block interface {
	Up(src, dst []float64, dim int) error
	Down(src, dst []float64, dim int) error
}

// width returns the mesh width 2^−l.
func width(l storage.Level) float64 { return math.Ldexp(1, -int(l)) }

// descend runs fn on the left and then the right child of the iterator's
// position along dim and restores the position afterwards.
func descend(it *storage.Iterator, dim int, left, right func()) {
	l, i := it.Get(dim)
	it.LeftChild(dim)
	left()
	it.Set(dim, l, i)
	it.RightChild(dim)
	right()
	it.Set(dim, l, i)
}
