package literal

import (
	"strconv"
	"strings"

	"github.com/npillmayer/mdrange"
	"github.com/shopspring/decimal"
)

// ElementParser converts the symbols of a leaf to a value of type T.
// Symbols of leaves wrapped in external delimiters include the delimiters.
//
// TryParse must not have side effects on the symbol source.
type ElementParser[T any] interface {
	TryParse(symbols []mdrange.Token) (T, bool)
}

// ElementParserFunc is an adapter to use a function as an ElementParser.
type ElementParserFunc[T any] func(symbols []mdrange.Token) (T, bool)

// TryParse calls f(symbols).
func (f ElementParserFunc[T]) TryParse(symbols []mdrange.Token) (T, bool) {
	return f(symbols)
}

// Text concatenates the lexemes of a leaf.
func Text(symbols []mdrange.Token) string {
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s.Lexeme())
	}
	return b.String()
}

// IntParser parses leaves like "42" or "-7".
func IntParser() ElementParser[int] {
	return ElementParserFunc[int](func(symbols []mdrange.Token) (int, bool) {
		n, err := strconv.Atoi(Text(symbols))
		return n, err == nil
	})
}

// FloatParser parses leaves like "1.5", "-2" or "1e-3".
func FloatParser() ElementParser[float64] {
	return ElementParserFunc[float64](func(symbols []mdrange.Token) (float64, bool) {
		f, err := strconv.ParseFloat(Text(symbols), 64)
		return f, err == nil
	})
}

// DecimalParser parses leaves into arbitrary-precision decimals.
func DecimalParser() ElementParser[decimal.Decimal] {
	return ElementParserFunc[decimal.Decimal](func(symbols []mdrange.Token) (decimal.Decimal, bool) {
		d, err := decimal.NewFromString(Text(symbols))
		return d, err == nil
	})
}

// StringParser accepts any non-empty leaf. Leaves which are a Go string
// literal are unquoted, other leaves are returned as their text.
func StringParser() ElementParser[string] {
	return ElementParserFunc[string](func(symbols []mdrange.Token) (string, bool) {
		if len(symbols) == 0 {
			return "", false
		}
		text := Text(symbols)
		if s, err := strconv.Unquote(text); err == nil {
			return s, true
		}
		return text, true
	})
}
