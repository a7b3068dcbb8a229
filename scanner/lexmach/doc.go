/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the range literal parsers of mdrange.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Package lexmach is very opinionated on how to do the setup of lexmachine.
Clients who need more liberty in how to create the scanner should use their
own wrapper code to fit lexmachine into the scanner.Tokenizer interface.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   mdrange.Token
	}

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

For range literals there is a ready-made adapter. It reports brackets and
punctuation with their rune value as token type, numbers and identifiers like
text/scanner does, and runs of white space as tokens of type Blank.

	LM, err := lexmach.RangeLexer()
	scan, err := LM.Scanner("{ {1,2,3} {4,5,6} }")
	reader := scanner.NewReader(scan)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
