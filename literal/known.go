package literal

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/mdrange/ranges"
)

// KnownShapeParser parses literals into ranges of a shape known in advance.
// Every deviation of the literal from the shape is an error.
type KnownShapeParser[T any] struct {
	table *DelimiterTable
	leaf  ElementParser[T]
	conf  config
	busy  atomic.Bool
}

// NewKnownShapeParser creates a parser for a delimiter table and an element
// parser. The table has to be complete, see DelimiterTable.Validate.
func NewKnownShapeParser[T any](table *DelimiterTable, leaf ElementParser[T], opts ...Option) (*KnownShapeParser[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	p := &KnownShapeParser[T]{table: table, leaf: leaf}
	for _, opt := range opts {
		opt(&p.conf)
	}
	return p, nil
}

// Parse reads a literal from src and fills target with its elements. The
// shape of target determines the shape the literal must have. target is
// changed only if parsing succeeds.
//
// Literals cannot express ranges of rank 0 or with an axis of length 0.
func (p *KnownShapeParser[T]) Parse(target *ranges.Range[T], src SymbolSource) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrReentrant
	}
	defer p.busy.Store(false)
	//
	shape := target.Shape()
	m := newMachine(p.table, p.leaf, src, p.conf)
	if len(shape) == 0 {
		return m.fail(m.errorf(ErrDimensions, mdrange.Span{}, "range of rank 0"))
	}
	m.depth = len(shape)
	m.sizes = make([]int, len(shape))
	m.counts = make([]int, len(shape))
	for L := range m.sizes {
		m.sizes[L] = shape[len(shape)-1-L]
		if m.sizes[L] == 0 {
			return m.fail(m.errorf(ErrDimensions, mdrange.Span{}, "axis %d has length 0", len(shape)-1-L))
		}
	}
	tracer().Debugf("parsing literal of shape %v", shape)
	if err := m.run(); err != nil {
		return m.fail(err)
	}
	if err := target.Fill(m.elements); err != nil {
		return m.fail(fmt.Errorf("literal does not fill range: %w", err))
	}
	return nil
}
