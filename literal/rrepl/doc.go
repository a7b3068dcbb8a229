/*
Package rrepl/main provides an interactive command line tool (R.REPL) for
range literals. Users bind literals to names and apply the range algebra:

	rrepl> let a = { {1,2} {3,4} }
	rrepl> let b int[2] = {10, 20}
	rrepl> shape a
	rrepl> contract a 0 1
	rrepl> view a [1,0] [1]
	rrepl> show _

Values are ranges of floats unless a kind (int, float, decimal, string) is
given; a kind may be followed by the shape the literal must have. Results of
operations are bound to '_'. Between 'begin' and 'end', names live in a
local scope and shadow outer ones.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdrange.rrepl'
func tracer() tracing.Trace {
	return tracing.Select("mdrange.rrepl")
}
