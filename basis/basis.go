package basis

import (
	"math"

	"github.com/SGpp/SGpp-sub016/storage"
)

// Basis evaluates one-dimensional hierarchical basis functions.
type Basis interface {
	// Eval returns φ_{l,i}(x) for x ∈ [0,1].
	Eval(l storage.Level, i storage.Index, x float64) float64
	// EvalDx returns φ'_{l,i}(x). At kinks the derivative of the right
	// piece is returned.
	EvalDx(l storage.Level, i storage.Index, x float64) float64
	// Integral returns ∫_0^1 φ_{l,i}(x) dx.
	Integral(l storage.Level, i storage.Index) float64
}

// Linear is the standard hat-function basis without boundary functions.
type Linear struct{}

// Eval implements Basis. Level 0 evaluates to 0.
func (Linear) Eval(l storage.Level, i storage.Index, x float64) float64 {
	if l == 0 {
		return 0
	}
	return hat(l, i, x)
}

// EvalDx implements Basis.
func (Linear) EvalDx(l storage.Level, i storage.Index, x float64) float64 {
	if l == 0 {
		return 0
	}
	return hatDx(l, i, x)
}

// Integral implements Basis: 2^−l.
func (Linear) Integral(l storage.Level, _ storage.Index) float64 {
	if l == 0 {
		return 0
	}
	return h(l)
}

// LinearBoundary extends Linear with the boundary functions 1−x (index 0)
// and x (index 1) on level 0.
type LinearBoundary struct{}

// Eval implements Basis.
func (LinearBoundary) Eval(l storage.Level, i storage.Index, x float64) float64 {
	if l == 0 {
		if x < 0 || x > 1 {
			return 0
		}
		if i == 0 {
			return 1 - x
		}
		return x
	}
	return hat(l, i, x)
}

// EvalDx implements Basis.
func (LinearBoundary) EvalDx(l storage.Level, i storage.Index, x float64) float64 {
	if l == 0 {
		if x < 0 || x > 1 {
			return 0
		}
		if i == 0 {
			return -1
		}
		return 1
	}
	return hatDx(l, i, x)
}

// Integral implements Basis.
func (LinearBoundary) Integral(l storage.Level, _ storage.Index) float64 {
	if l == 0 {
		return 0.5
	}
	return h(l)
}

// ModLinear is the modified linear basis: the single level-1 function is
// constant and the outermost function of each level folds up towards the
// boundary, so no boundary points are needed.
type ModLinear struct{}

// Eval implements Basis.
func (ModLinear) Eval(l storage.Level, i storage.Index, x float64) float64 {
	switch {
	case l == 0:
		return 0
	case l == 1:
		return 1
	case i == 1:
		scale := float64(uint64(1) << l)
		return math.Max(0, 2-scale*x)
	case uint64(i) == uint64(1)<<l-1:
		scale := float64(uint64(1) << l)
		return math.Max(0, scale*x-float64(i)+1)
	default:
		return hat(l, i, x)
	}
}

// EvalDx implements Basis.
func (ModLinear) EvalDx(l storage.Level, i storage.Index, x float64) float64 {
	switch {
	case l <= 1:
		return 0
	case i == 1:
		scale := float64(uint64(1) << l)
		if x < 0 || x >= 2/scale {
			return 0
		}
		return -scale
	case uint64(i) == uint64(1)<<l-1:
		scale := float64(uint64(1) << l)
		if x > 1 || x < 1-2/scale {
			return 0
		}
		return scale
	default:
		return hatDx(l, i, x)
	}
}

// Integral implements Basis.
func (ModLinear) Integral(l storage.Level, i storage.Index) float64 {
	switch {
	case l == 0:
		return 0
	case l == 1:
		return 1
	case i == 1 || uint64(i) == uint64(1)<<l-1:
		return 2 * h(l)
	default:
		return h(l)
	}
}

// h returns the mesh width 2^−l.
func h(l storage.Level) float64 { return 1 / float64(uint64(1)<<l) }

func hat(l storage.Level, i storage.Index, x float64) float64 {
	scale := float64(uint64(1) << l)
	return math.Max(0, 1-math.Abs(scale*x-float64(i)))
}

func hatDx(l storage.Level, i storage.Index, x float64) float64 {
	scale := float64(uint64(1) << l)
	t := scale*x - float64(i)
	switch {
	case t < -1 || t >= 1:
		return 0
	case t < 0:
		return scale
	default:
		return -scale
	}
}
