package mdrange

import "fmt"

// --- A general purpose interface for symbols -------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to tokenizers and applications to define them.
type TokType int

// TokTypeStringer is a type to be provided by a tokenizer to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Token represents an input symbol. Tokens are produced by a tokenizer and
// consumed by the literal parsers, which decide on the token type only.
//
// An example would be a token for an integer leaf of a range literal:
//
//    TokType = Int         // identifier for this kind of tokens (application specific)
//    Lexeme  = "42"        // lexeme how it appeared in the input stream
//    Value   = nil         // tokenizers may pre-convert values, parsers need not
//    Span    = 7…9         // occured from position 7 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// SymbolsSpan returns the span covering a run of tokens.
func SymbolsSpan(tokens []Token) Span {
	var span Span
	for _, t := range tokens {
		span = span.Extend(t.Span())
	}
	return span
}
