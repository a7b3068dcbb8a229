package literal

import (
	"fmt"
	"strings"

	"github.com/npillmayer/mdrange/ranges"
)

// WriterConfig determines how Format writes a literal.
type WriterConfig[T any] struct {
	Open, Close string        // internal delimiters
	Separator   string        // between siblings
	Element     func(T) string // defaults to fmt's %v
}

// BraceWriter writes literals which may be read back with BraceTable.
func BraceWriter[T any]() WriterConfig[T] {
	return WriterConfig[T]{Open: "{", Close: "}", Separator: ","}
}

// Format writes a range or a view as a literal, without blanks.
// Ranges of rank 0 are written as their single element.
func Format[T any](r ranges.Indexable[T], conf WriterConfig[T]) (string, error) {
	elem := conf.Element
	if elem == nil {
		elem = func(x T) string { return fmt.Sprintf("%v", x) }
	}
	shape := r.Shape()
	rank := len(shape)
	var b strings.Builder
	b.WriteString(strings.Repeat(conf.Open, rank))
	odo := ranges.NewOdometer(shape, nil)
	if odo.Done() { // some axis of length 0
		b.WriteString(strings.Repeat(conf.Close, rank))
		return b.String(), nil
	}
	for {
		coords := odo.Coords()
		x, err := r.At(coords...)
		if err != nil {
			return "", err
		}
		b.WriteString(elem(x))
		closes := 0
		for closes < rank && coords[closes] == shape[closes]-1 {
			closes++
		}
		b.WriteString(strings.Repeat(conf.Close, closes))
		if _, ok := odo.Next(); !ok {
			break
		}
		b.WriteString(conf.Separator)
		b.WriteString(strings.Repeat(conf.Open, closes))
	}
	return b.String(), nil
}
