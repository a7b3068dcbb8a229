package ranges

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"golang.org/x/exp/slices"
)

// Indexable is implemented by ranges and views.
type Indexable[T any] interface {
	Shape() []int
	At(coords ...int) (T, error)
}

// Range is a dense multidimensional array of elements of type T.
//
// A range of rank 0 holds a single element. The only exception is the empty
// range, which results from multiplying with a rank-0 operand: it has rank 0
// and no elements at all.
type Range[T any] struct {
	shape    []int
	strides  []int
	elements []T
}

var _ Indexable[int] = (*Range[int])(nil)

// New allocates a range of the given shape, with all elements set to the zero
// value of T.
func New[T any](shape ...int) (*Range[T], error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	return &Range[T]{
		shape:    slices.Clone(shape),
		strides:  strides(shape),
		elements: make([]T, n),
	}, nil
}

// FromElements creates a range of a given shape, taking ownership of elements.
// The number of elements must match the shape.
func FromElements[T any](shape []int, elements []T) (*Range[T], error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	if n != len(elements) {
		return nil, fmt.Errorf("shape %v needs %d elements, have %d: %w",
			shape, n, len(elements), ErrDimensionMismatch)
	}
	return &Range[T]{
		shape:    slices.Clone(shape),
		strides:  strides(shape),
		elements: elements,
	}, nil
}

// Empty returns a range of rank 0 without any elements.
func Empty[T any]() *Range[T] {
	return &Range[T]{elements: []T{}}
}

// volume returns the product of the axis lengths.
func volume(shape []int) (int, error) {
	n := 1
	for a, l := range shape {
		if l < 0 {
			return 0, fmt.Errorf("axis %d has negative length %d: %w", a, l, ErrDimensionMismatch)
		}
		n *= l
	}
	return n, nil
}

// strides returns the linear distance between neighbours on each axis.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	s := 1
	for a, l := range shape {
		st[a] = s
		s *= l
	}
	return st
}

// Shape returns a copy of the shape of r.
func (r *Range[T]) Shape() []int {
	return slices.Clone(r.shape)
}

// Rank returns the number of axes of r.
func (r *Range[T]) Rank() int {
	return len(r.shape)
}

// Len returns the number of elements of r.
func (r *Range[T]) Len() int {
	return len(r.elements)
}

// IsEmpty is true for a range without elements.
func (r *Range[T]) IsEmpty() bool {
	return len(r.elements) == 0
}

// Elements returns a copy of the element buffer, in linear order.
func (r *Range[T]) Elements() []T {
	return slices.Clone(r.elements)
}

// Linear maps coordinates to a position in the element buffer.
// Coordinates are never wrapped: any coordinate outside its axis is an error.
func (r *Range[T]) Linear(coords ...int) (int, error) {
	if len(coords) != len(r.shape) {
		return -1, fmt.Errorf("%d coordinates for a range of rank %d: %w",
			len(coords), len(r.shape), ErrDimensionMismatch)
	}
	if len(r.elements) == 0 {
		return -1, fmt.Errorf("range is empty: %w", ErrIndexOutOfRange)
	}
	partial := 0
	for a := len(r.shape) - 1; a >= 0; a-- {
		if coords[a] < 0 || coords[a] >= r.shape[a] {
			return -1, fmt.Errorf("coordinate %d of axis %d outside [0,%d): %w",
				coords[a], a, r.shape[a], ErrIndexOutOfRange)
		}
		partial = partial*r.shape[a] + coords[a]
	}
	return partial, nil
}

// At returns the element at the given coordinates.
func (r *Range[T]) At(coords ...int) (T, error) {
	i, err := r.Linear(coords...)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.elements[i], nil
}

// Set replaces the element at the given coordinates.
func (r *Range[T]) Set(value T, coords ...int) error {
	i, err := r.Linear(coords...)
	if err != nil {
		return err
	}
	r.elements[i] = value
	return nil
}

// Fill replaces all elements of r, given in linear order.
func (r *Range[T]) Fill(elements []T) error {
	if len(elements) != len(r.elements) {
		return fmt.Errorf("range of shape %v cannot be filled with %d elements: %w",
			r.shape, len(elements), ErrDimensionMismatch)
	}
	copy(r.elements, elements)
	return nil
}

// Each calls f for every element, in linear order. The coordinates slice is
// re-used between calls.
func (r *Range[T]) Each(f func(coords []int, value T)) {
	if len(r.elements) == 0 {
		return
	}
	odo := NewOdometer(r.shape, nil)
	for i := range r.elements {
		f(odo.Coords(), r.elements[i])
		odo.Next()
	}
}

// Sub creates a view of r. There has to be one list of indices for every axis
// of r, with every index valid for its axis.
func (r *Range[T]) Sub(indices [][]int) (*View[T], error) {
	return NewView[T](r, indices)
}

// String lists the elements of r with their coordinates.
func (r *Range[T]) String() string {
	var b strings.Builder
	b.WriteString("Range{")
	r.Each(func(coords []int, value T) {
		b.WriteString(" [")
		for a, c := range coords {
			if a > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", c)
		}
		fmt.Fprintf(&b, "]=%v", value)
	})
	b.WriteString(" }")
	return b.String()
}

// Fingerprint returns a hash over shape and elements of r. Two ranges with
// equal fingerprint have equal shape and print their elements identically.
func (r *Range[T]) Fingerprint() (string, error) {
	fp := struct {
		Shape    []int
		Elements []string
	}{
		Shape:    r.shape,
		Elements: make([]string, len(r.elements)),
	}
	for i, e := range r.elements {
		fp.Elements[i] = fmt.Sprintf("%v", e)
	}
	return structhash.Hash(fp, 1)
}
