package literal

import (
	"errors"
	"sync/atomic"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/mdrange/ranges"
	"golang.org/x/exp/slices"
)

// InferringParser parses literals of unknown shape. The first group closed
// at a nesting level determines the length of the corresponding axis.
//
// If an opening delimiter may start a group as well as a leaf, the parser
// first takes it as a group. Should the shape turn out inconsistent later,
// it returns to the most recent of these points and reads the delimiter as
// the start of a leaf instead.
type InferringParser[T any] struct {
	table    *DelimiterTable
	leaf     ElementParser[T]
	conf     config
	busy     atomic.Bool
	elements []T
}

// NewInferringParser creates a parser for a delimiter table and an element
// parser. The table has to be complete, see DelimiterTable.Validate.
func NewInferringParser[T any](table *DelimiterTable, leaf ElementParser[T], opts ...Option) (*InferringParser[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	p := &InferringParser[T]{table: table, leaf: leaf}
	for _, opt := range opts {
		opt(&p.conf)
	}
	return p, nil
}

// Parse reads a literal from src and returns a range of the literal's shape.
func (p *InferringParser[T]) Parse(src CheckpointSource) (*ranges.Range[T], error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrReentrant
	}
	defer p.busy.Store(false)
	//
	m := newMachine(p.table, p.leaf, src, p.conf)
	m.infer = true
	m.csrc = src
	m.cps = arraystack.New()
	defer func() {
		p.elements = m.elements
	}()
	for {
		err := m.run()
		if err == nil {
			break
		}
		if m.pending != nil && errors.Is(err, ErrLeafValue) {
			err = m.pending // ambiguous delimiter does not start a leaf either
		}
		if !isShapeMismatch(err) || !m.rollback(err) {
			return nil, m.fail(err)
		}
	}
	shape := slices.Clone(m.sizes[:m.depth])
	slices.Reverse(shape)
	tracer().Debugf("literal has shape %v", shape)
	return ranges.FromElements(shape, slices.Clone(m.elements))
}

// Elements returns the elements read by the most recent call to Parse. After
// a failed parse these are the elements read before the error, without those
// discarded by rolling back.
func (p *InferringParser[T]) Elements() []T {
	return slices.Clone(p.elements)
}
