/*
Package literal reads range literals: nested groups of elements, like

	{ {1,2,3} {4,5,6} }

A literal is a sequence of symbols, produced by a scanner.Tokenizer. The
roles of symbols are configured by a DelimiterTable: internal delimiters
open and close groups, one for every axis of the range; a separator divides
siblings; blanks are ignored. External delimiters wrap the symbols of a
single element, which is useful for elements containing separators or
blanks, such as strings.

The outermost group corresponds to the last axis of a range. The example
above therefore is a range of shape [3,2], with axis 0 running through the
elements of the inner groups.

Two parsers are available. KnownShapeParser fills a range of pre-defined
shape and checks the literal against it. InferringParser finds out the
shape while parsing. If delimiters are configured to both open groups and
wrap elements, a literal may be ambiguous; the inferring parser then
takes notes on where it guessed, and returns to these points if the shape
turns out inconsistent.

	r, err := literal.Read("{ {1,2,3} {4,5,6} }", literal.BraceTable(), literal.IntParser())

Package literal traces to key 'mdrange.literal'. Setting configuration
flag 'panic-on-literal-error' makes parsers panic instead of returning
structural errors.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package literal

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mdrange.literal'.
func tracer() tracing.Trace {
	return tracing.Select("mdrange.literal")
}
