/*
Package scanner defines an interface for tokenizers to be used with the
literal parsers of package literal, and the symbol reader these parsers consume.

Three tokenizer implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', (2) a category-run tokenizer grouping runes by category code, and
(3) an adapter for lexmachine, living in sub-package `lexmach`.

Parsers do not talk to tokenizers directly. They read symbols from a Reader,
which buffers tokens and is able to peek, un-read and return to a checkpoint.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdrange.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("mdrange.scanner")
}

// Token types of the Go tokenizer. Other token types are single runes.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is the source of tokens for a Reader.
type Tokenizer interface {
	NextToken() mdrange.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer splits literal text into Go tokens: numbers, identifiers,
// quoted strings and single runes for everything else. Create one with
// GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	Error         func(error) // error handler
	unifyStrings  bool        // chars and raw strings are reported as String
	signedNumbers bool        // a sign directly before a number is part of it
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a tokenizer for input. Blanks and comments are skipped
// unless options KeepBlanks or KeepComments say otherwise.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the tokenizer. nil restores
// logging of errors.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() mdrange.Token {
	typ := t.Scan()
	from := t.Position.Offset
	lexeme := t.TokenText()
	switch {
	case typ == EOF:
		tracer().Debugf("DefaultTokenizer reached end of input")
	case t.signedNumbers && (typ == '-' || typ == '+') && startsNumber(t.Peek()):
		typ = t.Scan()
		lexeme += t.TokenText()
	case t.unifyStrings && (typ == RawString || typ == Char):
		typ = String
	}
	return DefaultToken{
		kind:   mdrange.TokType(typ),
		lexeme: lexeme,
		span:   mdrange.Span{uint64(from), uint64(t.Pos().Offset)},
	}
}

func startsNumber(r rune) bool {
	return r >= '0' && r <= '9'
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is the token type of all tokenizers of this package.
type DefaultToken struct {
	kind   mdrange.TokType
	lexeme string
	span   mdrange.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ mdrange.TokType, lexeme string, span mdrange.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() mdrange.TokType {
	return t.kind
}

// Value is always nil, leaf values are converted by the parsers.
func (t DefaultToken) Value() interface{} {
	return nil
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() mdrange.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q|%d", t.lexeme, t.kind)
}

// --- Options for the default tokenizer -------------------------------------

// Option configures a default tokenizer.
type Option func(t *DefaultTokenizer)

// KeepBlanks makes the tokenizer report whitespace runes as tokens of their
// own, with the rune as token type. The literal parsers need blanks to tell
// "1 2" from "12".
func KeepBlanks(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Whitespace = 0
		} else {
			t.Whitespace = scanner.GoWhitespace
		}
	}
}

// KeepComments makes the tokenizer report Go comments as tokens of type
// Comment. Delimiter tables usually classify them as blanks, allowing
// annotated literals like
//
//    { 1, 2, /* last one */ 3 }
//
func KeepComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode &^= scanner.SkipComments
		} else {
			t.Mode |= scanner.SkipComments
		}
	}
}

// UnifyStrings reports chars and raw strings as tokens of type String.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// SignedNumbers merges a sign rune directly followed by a number into a
// single Int or Float token, like "-7" or "+2.5".
func SignedNumbers(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.signedNumbers = b
	}
}
