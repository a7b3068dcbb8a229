package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mdrange"
)

// --- Category codes --------------------------------------------------------

// CatCode is a category code for runes. Runs of runes of the same category
// form a token, with the category code as its token type.
type CatCode int16

// IllegalCatCode is reserved for runes a categorizer does not know.
const IllegalCatCode CatCode = 0

// RuneCategorizer maps runes to category codes. Loner runes are not allowed to
// form sequences and will always be reported as a sequence of length 1.
type RuneCategorizer interface {
	Cat(r rune) (cat CatCode, isLoner bool)
}

// CatSeq is a run of runes of equal category.
type CatSeq struct {
	Cat    CatCode // catcode of all runes in this sequence
	Length int     // length of sequence in terms of runes
}

// --- Category sequence reader ----------------------------------------------

// CatSeqReader reads runs of runes of equal category from a rune reader.
// The text of the current run is collected in an output buffer and has to be
// reset by the client with ResetOutput.
type CatSeqReader struct {
	isEof      bool
	next       rune
	hasNext    bool
	start, end uint64 // as bytes index
	reader     io.RuneReader
	writer     bytes.Buffer
}

// NewCatSeqReader creates a category sequence reader for a rune reader.
func NewCatSeqReader(r io.RuneReader) *CatSeqReader {
	csr := &CatSeqReader{
		reader: r,
	}
	return csr
}

// Next reads the next run of runes of equal category, as determined by rc.
// At the end of input Next will return io.EOF.
func (rs *CatSeqReader) Next(rc RuneCategorizer) (csq CatSeq, err error) {
	var r rune
	r, err = rs.lookahead()
	if err != nil && err != io.EOF {
		return csq, fmt.Errorf("scanner cannot read sequence: %w", err)
	} else if err == io.EOF {
		return csq, io.EOF
	}
	var isLoner bool
	csq.Cat, isLoner = rc.Cat(r)
	if isLoner { // rune category is not allowed to form sequences
		rs.match(r)
		csq.Length = 1
		return
	}
	cc := csq.Cat
	for cc == csq.Cat {
		rs.match(r)
		csq.Length++
		r, err = rs.lookahead()
		if err == io.EOF {
			return csq, nil // EOF will be reported with the next call
		} else if err != nil {
			return csq, fmt.Errorf("scanner cannot read sequence: %w", err)
		}
		var loner bool
		if cc, loner = rc.Cat(r); loner {
			break
		}
	}
	return csq, nil
}

// OutputString returns the text collected since the last call to ResetOutput.
func (rs *CatSeqReader) OutputString() string {
	return rs.writer.String()
}

// ResetOutput clears the output buffer and starts a new span.
func (rs *CatSeqReader) ResetOutput() {
	if rs == nil {
		return
	}
	rs.writer.Reset()
	rs.start = rs.end
}

// Span returns the byte span of the text collected since the last reset.
func (rs *CatSeqReader) Span() mdrange.Span {
	return mdrange.Span{rs.start, rs.end}
}

func (rs *CatSeqReader) lookahead() (r rune, err error) {
	if rs == nil || rs.isEof {
		return utf8.RuneError, io.EOF
	}
	if rs.hasNext {
		return rs.next, nil
	}
	r, _, err = rs.reader.ReadRune()
	if err == io.EOF {
		tracer().Debugf("category reader reached end of input")
		rs.isEof = true
		return utf8.RuneError, io.EOF
	} else if err != nil {
		return 0, err
	}
	rs.next, rs.hasNext = r, true
	return
}

func (rs *CatSeqReader) match(r rune) {
	if rs == nil {
		return
	}
	if !rs.hasNext {
		panic("match without lookahead")
	}
	rs.writer.WriteRune(r)
	rs.end += uint64(utf8.RuneLen(r))
	rs.hasNext = false
}

// --- Category tokenizer ----------------------------------------------------

// CatTokenizer is a tokenizer producing a token for every run of runes of
// equal category. Token types are the category codes.
type CatTokenizer struct {
	csr   *CatSeqReader
	cat   RuneCategorizer
	Error func(error)
}

var _ Tokenizer = (*CatTokenizer)(nil)

// NewCatTokenizer creates a tokenizer reading from r and categorizing runes with rc.
// If rc is nil, LiteralCategorizer is used.
func NewCatTokenizer(r io.RuneReader, rc RuneCategorizer) *CatTokenizer {
	if rc == nil {
		rc = LiteralCategorizer{}
	}
	return &CatTokenizer{
		csr:   NewCatSeqReader(r),
		cat:   rc,
		Error: logError,
	}
}

// SetErrorHandler sets an error handler for the scanner.
func (ct *CatTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		ct.Error = logError
		return
	}
	ct.Error = h
}

// NextToken is part of the Tokenizer interface.
func (ct *CatTokenizer) NextToken() mdrange.Token {
	ct.csr.ResetOutput()
	csq, err := ct.csr.Next(ct.cat)
	if err != nil {
		if err != io.EOF {
			ct.Error(err)
		}
		pos := ct.csr.end
		return MakeDefaultToken(EOF, "", mdrange.Span{pos, pos})
	}
	return MakeDefaultToken(mdrange.TokType(csq.Cat), ct.csr.OutputString(), ct.csr.Span())
}

// --- Categories for range literals -----------------------------------------

// Category codes of LiteralCategorizer.
const (
	CatWord     CatCode = iota + 1 // letters, digits and . + - _
	CatBlank                       // white space
	CatComma                       // ,
	CatSemicolon                   // ;
	CatLBrace                      // {
	CatRBrace                      // }
	CatLBracket                    // [
	CatRBracket                    // ]
	CatLParen                      // (
	CatRParen                      // )
	CatQuote                       // "
	CatOther                       // anything else
)

var literalLoners = map[rune]CatCode{
	',': CatComma, ';': CatSemicolon,
	'{': CatLBrace, '}': CatRBrace,
	'[': CatLBracket, ']': CatRBracket,
	'(': CatLParen, ')': CatRParen,
	'"': CatQuote,
}

// LiteralCategorizer categorizes runes for range literals: brackets, quotes
// and punctuation are loners, words and blanks form runs.
type LiteralCategorizer struct{}

// Cat is part of interface RuneCategorizer.
func (LiteralCategorizer) Cat(r rune) (CatCode, bool) {
	if c, ok := literalLoners[r]; ok {
		return c, true
	}
	switch {
	case unicode.IsSpace(r):
		return CatBlank, false
	case unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(".+-_", r):
		return CatWord, false
	case r == utf8.RuneError:
		return IllegalCatCode, true
	}
	return CatOther, true
}

// CatString is a TokTypeStringer for the codes of LiteralCategorizer.
func CatString(t mdrange.TokType) string {
	switch CatCode(t) {
	case CatWord:
		return "word"
	case CatBlank:
		return "blank"
	case CatOther:
		return "other"
	case IllegalCatCode:
		return "illegal"
	}
	for r, c := range literalLoners {
		if mdrange.TokType(c) == t {
			return string(r)
		}
	}
	if t == EOF {
		return "EOF"
	}
	return fmt.Sprintf("cat(%d)", t)
}
