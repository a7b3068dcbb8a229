package literal

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/mdrange/scanner"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/exp/slices"
)

// SymbolSource is a source of symbols for the shape-known parser.
// scanner.Reader implements it.
type SymbolSource interface {
	Peek() mdrange.Token
	Get() mdrange.Token
	UnGet()
	IsAtEOF() bool
}

// CheckpointSource is a source of symbols which is able to return to earlier
// positions. The shape-inferring parser needs it.
type CheckpointSource interface {
	SymbolSource
	Checkpoint() scanner.Mark
	Restore(scanner.Mark) error
}

// --- Options ---------------------------------------------------------------

type config struct {
	allowTrailing bool
}

// Option configures a parser.
type Option func(c *config)

// AllowTrailing lets parsers stop after the outermost closing delimiter,
// without checking for the end of input.
func AllowTrailing(b bool) Option {
	return func(c *config) {
		c.allowTrailing = b
	}
}

// --- State machine ---------------------------------------------------------

type state int

const (
	stateStart    state = iota // expect outermost opening delimiter
	stateSequence              // group has just been opened
	stateElement               // an element or group has just been completed
	stateLeaf                  // inside external delimiters
	stateOperator              // separator has just been read
	stateEnd
)

func (s state) String() string {
	return [...]string{"Start", "Sequence", "Element", "Leaf", "Operator", "End"}[s]
}

// machine holds the parse state both parsers share. Levels count nesting
// depth from the outermost group (level 0); level L counts the elements of
// axis rank-1-L.
type machine[T any] struct {
	table    *DelimiterTable
	leaf     ElementParser[T]
	src      SymbolSource
	conf     config
	state    state
	level    int
	depth    int               // number of levels, -1 if not yet known
	opens    *arraystack.Stack // opening delimiters of enclosing groups
	counts   []int             // separators seen per level in the current group
	sizes    []int             // number of elements per level, -1 if not yet known
	elements []T
	leafOpen mdrange.Token     // external delimiter the current leaf started with
	leafSyms []mdrange.Token   // symbols of the current leaf
	aux      *arraystack.Stack // nested external delimiters within a leaf
	infer    bool
	csrc     CheckpointSource
	cps      *arraystack.Stack // checkpoints
	pending  error             // shape mismatch being resolved by re-reading a leaf
}

func newMachine[T any](table *DelimiterTable, leaf ElementParser[T], src SymbolSource, conf config) *machine[T] {
	return &machine[T]{
		table: table,
		leaf:  leaf,
		src:   src,
		conf:  conf,
		state: stateStart,
		level: -1,
		depth: -1,
		opens: arraystack.New(),
		aux:   arraystack.New(),
	}
}

func isEOF(tok mdrange.Token) bool {
	return tok == nil || tok.TokType() == scanner.EOF
}

// run drives the state machine until the literal is complete or an error occurs.
func (m *machine[T]) run() error {
	for m.state != stateEnd {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

// step is the transition function.
func (m *machine[T]) step() error {
	switch m.state {
	case stateStart:
		tok, c := m.peek()
		if isEOF(tok) || !c.Is(InternalOpen) {
			return m.errorf(ErrExpectedOpen, span(tok), "literal starts with %q", lexeme(tok))
		}
		m.src.Get()
		m.push(tok)
		m.state = stateSequence
	case stateSequence, stateOperator:
		return m.item()
	case stateElement:
		return m.afterElement()
	case stateLeaf:
		return m.leafSymbol()
	}
	return nil
}

// peek skips blanks and returns the next symbol with its class.
func (m *machine[T]) peek() (mdrange.Token, Class) {
	tok := m.src.Peek()
	for !isEOF(tok) {
		c := m.table.Classify(tok.TokType())
		if c != Blank {
			return tok, c
		}
		m.src.Get()
		tok = m.src.Peek()
	}
	return tok, Other
}

// item reads the start of a group or a leaf, in states Sequence and Operator.
func (m *machine[T]) item() error {
	tok, c := m.peek()
	deepest := m.depth >= 0 && m.level == m.depth-1
	switch {
	case isEOF(tok):
		return m.errorf(ErrUnexpectedEOF, span(tok), "element missing")
	case c.Is(InternalOpen):
		if deepest {
			if c.Is(ExternalOpen) {
				m.startLeaf(m.src.Get())
				return nil
			}
			return m.errorf(ErrDimensions, span(tok), "group nested deeper than %d levels", m.depth)
		}
		if m.infer && m.depth < 0 && c.Is(ExternalOpen) {
			m.checkpoint()
		}
		m.push(m.src.Get())
		m.state = stateSequence
	case c.Is(InternalClose):
		return m.errorf(ErrTooFewElements, span(tok), "empty element at level %d", m.level)
	case c.Is(Separator):
		return m.errorf(ErrUnexpectedSeparator, span(tok), "empty element at level %d", m.level)
	case c.Is(ExternalOpen):
		if err := m.leafLevel(tok); err != nil {
			return err
		}
		m.startLeaf(m.src.Get())
	case c.Is(ExternalClose):
		return m.errorf(ErrUnexpectedSymbol, span(tok), "closing delimiter %q without opening", lexeme(tok))
	default:
		if err := m.leafLevel(tok); err != nil {
			return err
		}
		return m.plainLeaf()
	}
	return nil
}

// leafLevel checks that a leaf occurs at the deepest level. The first leaf
// determines the depth if it is not known.
func (m *machine[T]) leafLevel(tok mdrange.Token) error {
	if m.depth < 0 {
		m.depth = m.level + 1
		tracer().Debugf("literal has %d levels", m.depth)
		return nil
	}
	if m.level != m.depth-1 {
		return m.errorf(ErrDimensions, span(tok), "leaf at level %d, expected group", m.level)
	}
	return nil
}

// afterElement handles state Element: close a group or continue with a sibling.
func (m *machine[T]) afterElement() error {
	tok, c := m.peek()
	L := m.level
	switch {
	case isEOF(tok):
		return m.errorf(ErrUnexpectedEOF, span(tok), "%d groups not closed", m.opens.Size())
	case c.Is(InternalClose):
		m.src.Get()
		open := m.pop()
		if !m.table.Closes(open.TokType(), tok.TokType()) {
			return m.errorf(ErrDelimiterMismatch, open.Span().Extend(tok.Span()),
				"%q does not close %q", tok.Lexeme(), open.Lexeme())
		}
		n := m.counts[L] + 1
		if m.sizes[L] < 0 {
			m.sizes[L] = n
			tracer().Debugf("level %d has %d elements", L, n)
		} else if n != m.sizes[L] {
			return m.errorf(ErrSiblingCount, span(tok), "group has %d elements, expected %d", n, m.sizes[L])
		}
		m.level--
		if m.level < 0 {
			return m.end()
		}
	case c.Is(Separator):
		m.src.Get()
		return m.sibling(tok)
	case c.Is(InternalOpen) && L < m.depth-1:
		return m.sibling(tok) // groups need no separator
	default:
		return m.errorf(ErrUnexpectedSymbol, span(tok), "%q after element", tok.Lexeme())
	}
	return nil
}

func (m *machine[T]) sibling(tok mdrange.Token) error {
	L := m.level
	m.counts[L]++
	if m.sizes[L] >= 0 && m.counts[L] >= m.sizes[L] {
		return m.errorf(ErrSiblingCount, span(tok), "more than %d elements", m.sizes[L])
	}
	m.state = stateOperator
	return nil
}

func (m *machine[T]) end() error {
	m.state = stateEnd
	if m.conf.allowTrailing {
		return nil
	}
	if tok, _ := m.peek(); !isEOF(tok) {
		return m.errorf(ErrUnexpectedSymbol, span(tok), "%q after end of literal", tok.Lexeme())
	}
	return nil
}

// --- Leaves ----------------------------------------------------------------

func (m *machine[T]) startLeaf(open mdrange.Token) {
	m.leafOpen = open
	m.leafSyms = append(m.leafSyms[:0], open)
	m.aux.Clear()
	m.state = stateLeaf
}

// leafSymbol collects a symbol inside external delimiters. Nested external
// delimiters have to balance.
func (m *machine[T]) leafSymbol() error {
	tok := m.src.Get()
	if isEOF(tok) {
		return m.errorf(ErrUnexpectedEOF, m.leafOpen.Span(), "%q not closed", m.leafOpen.Lexeme())
	}
	m.leafSyms = append(m.leafSyms, tok)
	t := tok.TokType()
	if top, ok := m.aux.Peek(); ok {
		if m.table.ClosesLeaf(top.(mdrange.TokType), t) {
			m.aux.Pop()
			return nil
		}
	} else if m.table.ClosesLeaf(m.leafOpen.TokType(), t) {
		return m.finishLeaf(m.leafSyms)
	}
	if m.table.Classify(t).Is(ExternalOpen) {
		m.aux.Push(t)
	}
	return nil
}

// plainLeaf collects a run of adjacent symbols up to a blank, a separator or
// any delimiter. External delimiters never occur inside a plain leaf.
func (m *machine[T]) plainLeaf() error {
	var syms []mdrange.Token
	for tok := m.src.Peek(); !isEOF(tok); tok = m.src.Peek() {
		c := m.table.Classify(tok.TokType())
		if c.Is(Blank | Separator | InternalOpen | InternalClose | ExternalOpen | ExternalClose) {
			break
		}
		syms = append(syms, m.src.Get())
	}
	return m.finishLeaf(syms)
}

func (m *machine[T]) finishLeaf(syms []mdrange.Token) error {
	v, ok := m.leaf.TryParse(syms)
	if !ok {
		return m.errorf(ErrLeafValue, mdrange.SymbolsSpan(syms), "%q", Text(syms))
	}
	m.elements = append(m.elements, v)
	m.pending = nil
	m.state = stateElement
	return nil
}

// --- Delimiter stack -------------------------------------------------------

func (m *machine[T]) push(open mdrange.Token) {
	m.opens.Push(open)
	m.level = m.opens.Size() - 1
	for len(m.counts) <= m.level {
		m.counts = append(m.counts, 0)
		m.sizes = append(m.sizes, -1)
	}
	m.counts[m.level] = 0
}

func (m *machine[T]) pop() mdrange.Token {
	open, _ := m.opens.Pop()
	return open.(mdrange.Token)
}

// --- Checkpoints -----------------------------------------------------------

// checkpoint is a snapshot of the parse state before reading an ambiguous
// opening delimiter.
type checkpoint struct {
	mark     scanner.Mark
	level    int
	elements int
	counts   []int
	sizes    []int
	opens    int
}

func (m *machine[T]) checkpoint() {
	cp := checkpoint{
		mark:     m.csrc.Checkpoint(),
		level:    m.level,
		elements: len(m.elements),
		counts:   slices.Clone(m.counts),
		sizes:    slices.Clone(m.sizes),
		opens:    m.opens.Size(),
	}
	tracer().Debugf("checkpoint at level %d, position %d", cp.level, cp.mark.Pos())
	m.cps.Push(cp)
}

// rollback returns to the most recent checkpoint and re-reads the ambiguous
// delimiter as the start of a leaf. The depth of the literal is fixed to the
// checkpoint's level. It returns false if there is no checkpoint left.
func (m *machine[T]) rollback(cause error) bool {
	v, ok := m.cps.Pop()
	if !ok {
		return false
	}
	cp := v.(checkpoint)
	if err := m.csrc.Restore(cp.mark); err != nil {
		tracer().Errorf("cannot roll back: %v", err)
		return false
	}
	tracer().Infof("rolling back to level %d after: %v", cp.level, cause)
	m.level = cp.level
	m.depth = cp.level + 1
	m.elements = m.elements[:cp.elements]
	m.counts = slices.Clone(cp.counts)
	m.sizes = slices.Clone(cp.sizes)
	for m.opens.Size() > cp.opens {
		m.opens.Pop()
	}
	m.startLeaf(m.csrc.Get())
	m.pending = cause
	return true
}

// --- Errors ----------------------------------------------------------------

func (m *machine[T]) errorf(kind error, at mdrange.Span, format string, args ...interface{}) error {
	err := &ParseError{
		Kind: kind,
		Span: at,
		Msg:  fmt.Sprintf(format, args...),
	}
	tracer().Debugf("literal parser in state %s: %v", m.state, err)
	return err
}

// fail reports a fatal parse error.
func (m *machine[T]) fail(err error) error {
	tracer().Errorf("literal parser: %v", err)
	if panicOnError() {
		panic(`Literal parser failed.

Configuration flag panic-on-literal-error is set to true. It is aimed at helping
to debug literals and do a post-mortem of why parsing failed. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-literal-error to its default (false).

` + err.Error())
	}
	return err
}

func panicOnError() (b bool) {
	defer func() {
		if r := recover(); r != nil { // configuration not initialized
			b = false
		}
	}()
	return gconf.GetBool("panic-on-literal-error")
}

func span(tok mdrange.Token) mdrange.Span {
	if tok == nil {
		return mdrange.Span{}
	}
	return tok.Span()
}

func lexeme(tok mdrange.Token) string {
	if isEOF(tok) {
		return "<EOF>"
	}
	return tok.Lexeme()
}
