/*
Package mdrange reads nested range literals into dense multidimensional ranges.

A range literal is a stream of symbols where the shape of the range is only
implicitly encoded by nesting depth and sibling counts:

    { {1,2,3} {4,5,6} }     // shape [3 2], axis 0 varies fastest

Package structure is as follows:

■ scanner: Package scanner defines tokenizers and the symbol reader the
literal parsers consume. The reader supports peeking, un-reading and
checkpoints.

■ literal: Package literal implements the delimiter configuration and two
parsers for range literals: one for ranges of known shape, and one which
infers the shape while parsing, retrying from checkpoints if a guess about the
nesting structure turns out to be wrong.

■ ranges: Package ranges implements the dense range type, its algebra
(sum, outer product, contraction) and non-owning sub-range views.

■ runtime: Package runtime provides a small symbol table for named values,
used by the interactive tool in literal/rrepl.

The base package contains the token types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mdrange
