package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/mdrange/literal"
	"github.com/npillmayer/mdrange/ranges"
	"github.com/npillmayer/mdrange/runtime"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// value is a range of any element type, as bound to names.
type value interface {
	Kind() runtime.Kind
	Shape() []int
	At(coords []int) (interface{}, error)
	Literal() (string, error)
	Fingerprint() (string, error)
	View(indices [][]int) (value, error)
	Contract(axes []int) (value, error)
	Combine(op string, other value) (value, error)
	Tree() pterm.TreeNode
	String() string
}

// typed is a value holding a range of element type T, together with the
// operations on T the algebra needs.
type typed[T any] struct {
	kind     runtime.Kind
	r        *ranges.Range[T]
	add, mul func(T, T) T
	show     func(T) string
}

func (v *typed[T]) Kind() runtime.Kind {
	return v.kind
}

func (v *typed[T]) Shape() []int {
	return v.r.Shape()
}

func (v *typed[T]) At(coords []int) (interface{}, error) {
	return v.r.At(coords...)
}

func (v *typed[T]) Literal() (string, error) {
	w := literal.BraceWriter[T]()
	w.Element = v.show
	return literal.Format[T](v.r, w)
}

func (v *typed[T]) Fingerprint() (string, error) {
	return v.r.Fingerprint()
}

func (v *typed[T]) with(r *ranges.Range[T]) *typed[T] {
	return &typed[T]{kind: v.kind, r: r, add: v.add, mul: v.mul, show: v.show}
}

func (v *typed[T]) View(indices [][]int) (value, error) {
	view, err := v.r.Sub(indices)
	if err != nil {
		return nil, err
	}
	r, err := view.Materialize()
	if err != nil {
		return nil, err
	}
	return v.with(r), nil
}

func (v *typed[T]) Contract(axes []int) (value, error) {
	r, err := ranges.Contract(v.r, axes, v.add)
	if err != nil {
		return nil, err
	}
	return v.with(r), nil
}

func (v *typed[T]) Combine(op string, other value) (value, error) {
	o, ok := other.(*typed[T])
	if !ok || o.kind != v.kind {
		return nil, fmt.Errorf("cannot combine %s and %s", v.kind, other.Kind())
	}
	switch op {
	case "sum":
		r, err := ranges.Sum(v.r, o.r, v.add)
		if err != nil {
			return nil, err
		}
		return v.with(r), nil
	case "mul":
		r, err := ranges.Multiply(v.r, o.r, v.mul)
		if err != nil {
			return nil, err
		}
		return v.with(r), nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

// Tree lists the elements grouped the way a literal nests them: the last
// axis outermost.
func (v *typed[T]) Tree() pterm.TreeNode {
	shape := v.r.Shape()
	rank := len(shape)
	ll := pterm.LeveledList{}
	v.r.Each(func(coords []int, x T) {
		for a := rank - 1; a > 0; a-- {
			if allZero(coords[:a]) {
				ll = append(ll, pterm.LeveledListItem{
					Level: rank - 1 - a,
					Text:  fmt.Sprintf("axis %d = %d", a, coords[a]),
				})
			}
		}
		ll = append(ll, pterm.LeveledListItem{
			Level: max(rank-1, 0),
			Text:  v.show(x),
		})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func allZero(coords []int) bool {
	for _, c := range coords {
		if c != 0 {
			return false
		}
	}
	return true
}

func (v *typed[T]) String() string {
	return v.r.String()
}

// --- Kinds of values -------------------------------------------------------

var kindNames = map[string]runtime.Kind{
	"int":     runtime.IntRange,
	"float":   runtime.FloatRange,
	"decimal": runtime.DecimalRange,
	"string":  runtime.StringRange,
}

// readValue parses a literal into a value of kind k. With shape nil, the
// shape is inferred.
func readValue(k runtime.Kind, text string, shape []int) (value, error) {
	switch k {
	case runtime.IntRange:
		return read(k, text, shape, literal.IntParser(), ranges.Add[int], ranges.Mul[int], nil)
	case runtime.FloatRange:
		return read(k, text, shape, literal.FloatParser(), ranges.Add[float64], ranges.Mul[float64], nil)
	case runtime.DecimalRange:
		return read(k, text, shape, literal.DecimalParser(), ranges.AddDecimal, ranges.MulDecimal,
			func(d decimal.Decimal) string { return d.String() })
	case runtime.StringRange:
		concat := func(a, b string) string { return a + b }
		return read(k, text, shape, literal.StringParser(), concat, concat,
			func(s string) string { return fmt.Sprintf("%q", s) })
	}
	return nil, fmt.Errorf("cannot read values of kind %s", k)
}

func read[T any](k runtime.Kind, text string, shape []int, leaf literal.ElementParser[T],
	add, mul func(T, T) T, show func(T) string) (value, error) {
	//
	if show == nil {
		show = func(x T) string { return fmt.Sprintf("%v", x) }
	}
	var r *ranges.Range[T]
	var err error
	if shape == nil {
		r, err = literal.Read(text, literal.BraceTable(), leaf)
	} else {
		r, err = literal.ReadShaped(text, shape, literal.BraceTable(), leaf)
	}
	if err != nil {
		return nil, err
	}
	return &typed[T]{kind: k, r: r, add: add, mul: mul, show: show}, nil
}

func kindName(k runtime.Kind) string {
	for name, kk := range kindNames {
		if kk == k {
			return name
		}
	}
	return strings.ReplaceAll(k.String(), " ", "-")
}
