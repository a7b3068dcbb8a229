package ranges

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Sum combines two ranges of equal shape element by element.
func Sum[T any](a, b *Range[T], combine func(T, T) T) (*Range[T], error) {
	if !slices.Equal(a.shape, b.shape) || len(a.elements) != len(b.elements) {
		return nil, fmt.Errorf("cannot sum ranges of shape %v and %v: %w",
			a.shape, b.shape, ErrDimensionMismatch)
	}
	result := &Range[T]{
		shape:    slices.Clone(a.shape),
		strides:  slices.Clone(a.strides),
		elements: make([]T, len(a.elements)),
	}
	err := forChunks(len(a.elements), func(from, to int) error {
		for i := from; i < to; i++ {
			result.elements[i] = combine(a.elements[i], b.elements[i])
		}
		return nil
	})
	return result, err
}

// Multiply computes the outer product of two ranges. The result has shape
// concat(a.shape, b.shape), and the element combining a[i] and b[j] lives at
// position j*|a|+i. If any of the operands is of rank 0, the result is empty.
func Multiply[T any](a, b *Range[T], combine func(T, T) T) (*Range[T], error) {
	if a.Rank() == 0 || b.Rank() == 0 {
		tracer().Debugf("outer product with rank-0 operand is empty")
		return Empty[T](), nil
	}
	shape := append(slices.Clone(a.shape), b.shape...)
	la, lb := len(a.elements), len(b.elements)
	result := &Range[T]{
		shape:    shape,
		strides:  strides(shape),
		elements: make([]T, la*lb),
	}
	if la == 0 {
		return result, nil
	}
	err := forChunks(la*lb, func(from, to int) error {
		i, j := from%la, from/la
		for k := from; k < to; k++ {
			result.elements[k] = combine(a.elements[i], b.elements[j])
			if i++; i == la {
				i, j = 0, j+1
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Contract folds the diagonal over a set of axes of equal length, the
// generalized trace. The remaining axes keep their order and form the shape
// of the result. Contracting all axes results in a range of rank 0.
//
// Folding starts with the first diagonal element; an empty diagonal folds to
// the zero value of T.
func Contract[T any](r *Range[T], axes []int, combine func(T, T) T) (*Range[T], error) {
	if err := checkContraction(r.shape, axes); err != nil {
		return nil, err
	}
	var kept, keptStrides []int
	diagStride := 0
	for a := range r.shape {
		if slices.Contains(axes, a) {
			diagStride += r.strides[a]
		} else {
			kept = append(kept, r.shape[a])
			keptStrides = append(keptStrides, r.strides[a])
		}
	}
	diagLen := r.shape[axes[0]]
	result, _ := New[T](kept...)
	tracer().Debugf("contracting axes %v of %v: diagonal of %d with stride %d",
		axes, r.shape, diagLen, diagStride)
	err := forChunks(len(result.elements), func(from, to int) error {
		odo := NewOdometer(kept, keptStrides)
		odo.Seek(from)
		for k := from; k < to; k++ {
			result.elements[k] = fold(r.elements, odo.Offset(), diagStride, diagLen, combine)
			odo.Next()
		}
		return nil
	})
	return result, err
}

func fold[T any](elements []T, start, stride, n int, combine func(T, T) T) T {
	var acc T
	if n == 0 {
		return acc
	}
	acc = elements[start]
	for d := 1; d < n; d++ {
		acc = combine(acc, elements[start+d*stride])
	}
	return acc
}

func checkContraction(shape []int, axes []int) error {
	if len(axes) < 2 {
		return fmt.Errorf("need at least 2 axes to contract, have %v: %w", axes, ErrContraction)
	}
	for i, a := range axes {
		if a < 0 || a >= len(shape) {
			return fmt.Errorf("axis %d not in range of rank %d: %w", a, len(shape), ErrContraction)
		}
		if slices.Contains(axes[:i], a) {
			return fmt.Errorf("axis %d contracted twice: %w", a, ErrContraction)
		}
		if shape[a] != shape[axes[0]] {
			return fmt.Errorf("axes %d and %d differ in length (%d/%d): %w",
				axes[0], a, shape[axes[0]], shape[a], ErrContraction)
		}
	}
	return nil
}
