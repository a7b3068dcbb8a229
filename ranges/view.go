package ranges

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// View is a window onto a range or onto another view. For every axis of its
// base, a view holds a list of base indices; the length of the list is the
// length of the view's axis. Indices may repeat and appear in any order.
// Views never copy elements.
type View[T any] struct {
	base    Indexable[T]
	indices [][]int
	shape   []int
}

var _ Indexable[int] = (*View[int])(nil)

// NewView creates a view of base.
func NewView[T any](base Indexable[T], indices [][]int) (*View[T], error) {
	bshape := base.Shape()
	if len(indices) != len(bshape) {
		return nil, fmt.Errorf("view needs %d index lists, has %d: %w",
			len(bshape), len(indices), ErrDimensionMismatch)
	}
	v := &View[T]{
		base:    base,
		indices: make([][]int, len(indices)),
		shape:   make([]int, len(indices)),
	}
	for a, list := range indices {
		for _, i := range list {
			if i < 0 || i >= bshape[a] {
				return nil, fmt.Errorf("index %d of axis %d outside [0,%d): %w",
					i, a, bshape[a], ErrIndexOutOfRange)
			}
		}
		v.indices[a] = slices.Clone(list)
		v.shape[a] = len(list)
	}
	return v, nil
}

// Shape returns a copy of the shape of v.
func (v *View[T]) Shape() []int {
	return slices.Clone(v.shape)
}

// Rank returns the number of axes of v.
func (v *View[T]) Rank() int {
	return len(v.shape)
}

// At returns the element at view coordinates coords.
func (v *View[T]) At(coords ...int) (T, error) {
	var zero T
	if len(coords) != len(v.shape) {
		return zero, fmt.Errorf("%d coordinates for a view of rank %d: %w",
			len(coords), len(v.shape), ErrDimensionMismatch)
	}
	bcoords := make([]int, len(coords))
	for a, c := range coords {
		if c < 0 || c >= v.shape[a] {
			return zero, fmt.Errorf("coordinate %d of axis %d outside [0,%d): %w",
				c, a, v.shape[a], ErrIndexOutOfRange)
		}
		bcoords[a] = v.indices[a][c]
	}
	return v.base.At(bcoords...)
}

// Each calls f for every element of v, axis 0 varying fastest. The
// coordinates slice is re-used between calls. Enumeration stops at the first
// error.
func (v *View[T]) Each(f func(coords []int, value T)) error {
	odo := NewOdometer(v.shape, nil)
	for !odo.Done() {
		value, err := v.At(odo.Coords()...)
		if err != nil {
			return err
		}
		f(odo.Coords(), value)
		odo.Next()
	}
	return nil
}

// Sub creates a view of v.
func (v *View[T]) Sub(indices [][]int) (*View[T], error) {
	return NewView[T](v, indices)
}

// Materialize copies the elements of v into a new range.
func (v *View[T]) Materialize() (*Range[T], error) {
	r, err := New[T](v.shape...)
	if err != nil {
		return nil, err
	}
	i := 0
	err = v.Each(func(_ []int, value T) {
		r.elements[i] = value
		i++
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
