package literal

import (
	"strings"

	"github.com/npillmayer/mdrange/ranges"
	"github.com/npillmayer/mdrange/scanner"
)

// NewStringReader creates a symbol source for text, tokenized by the default
// Go tokenizer with blanks and comments kept as symbols. Signed numbers are
// single symbols.
func NewStringReader(text string) *scanner.Reader {
	tok := scanner.GoTokenizer("literal", strings.NewReader(text),
		scanner.KeepBlanks(true), scanner.KeepComments(true),
		scanner.UnifyStrings(true), scanner.SignedNumbers(true))
	return scanner.NewReader(tok)
}

// Read parses text and infers the shape of the literal.
func Read[T any](text string, table *DelimiterTable, leaf ElementParser[T], opts ...Option) (*ranges.Range[T], error) {
	p, err := NewInferringParser(table, leaf, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(NewStringReader(text))
}

// ReadShaped parses text into a new range of a given shape.
func ReadShaped[T any](text string, shape []int, table *DelimiterTable, leaf ElementParser[T], opts ...Option) (*ranges.Range[T], error) {
	p, err := NewKnownShapeParser(table, leaf, opts...)
	if err != nil {
		return nil, err
	}
	r, err := ranges.New[T](shape...)
	if err != nil {
		return nil, err
	}
	if err = p.Parse(r, NewStringReader(text)); err != nil {
		return nil, err
	}
	return r, nil
}
