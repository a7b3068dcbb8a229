/*
Package ranges implements dense multidimensional ranges and their algebra.

A range is a flat buffer of elements together with a shape. Elements are
linearized in mixed radix with axis 0 varying fastest, i.e. for shape [3,2]
the element at coordinates (i,j) lives at position j*3+i.

	r, _ := ranges.FromElements([]int{3, 2}, []int{1, 2, 3, 4, 5, 6})
	v, _ := r.At(2, 1) // 6

Operations Sum, Multiply and Contract are pure: they leave their operands
untouched and return a new range. Large folds are split into chunks which
are computed in parallel; the minimum number of elements for going parallel
is read from configuration key "ranges.parallel-threshold".

Views select and re-order indices of a range (or of another view) without
copying elements:

	v, _ := r.Sub([][]int{{0, 0, 2}, {1}}) // shape [3,1]: (0,1), (0,1), (2,1)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ranges

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mdrange.ranges'.
func tracer() tracing.Trace {
	return tracing.Select("mdrange.ranges")
}
