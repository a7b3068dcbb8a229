package scanner

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mdrange"
)

// ErrStaleMark is returned when restoring a mark which has been invalidated by
// restoring an earlier mark.
var ErrStaleMark = errors.New("stale reader mark")

// Mark is a handle for a position of a Reader, taken with Checkpoint.
type Mark struct {
	index int // index into the reader's list of marks
	pos   int
	id    uint64
}

// Pos returns the input position of a mark, in terms of tokens read.
func (m Mark) Pos() int {
	return m.pos
}

// Reader is a symbol source for parsers. It reads tokens from a tokenizer and
// keeps every token read, thus it is able to un-read symbols and to return to
// earlier positions.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	tokenizer Tokenizer
	buffer    []mdrange.Token
	pos       int   // position of next token to Get
	marks     []Mark // live marks
	markID    uint64
	eof       mdrange.Token
}

// NewReader creates a reader for a tokenizer.
func NewReader(tokenizer Tokenizer) *Reader {
	return &Reader{tokenizer: tokenizer}
}

// fill makes sure the buffer holds the token at position pos, or EOF has been seen.
func (r *Reader) fill(pos int) {
	for r.eof == nil && pos >= len(r.buffer) {
		tok := r.tokenizer.NextToken()
		if tok == nil || tok.TokType() == EOF {
			if tok == nil {
				tok = MakeDefaultToken(EOF, "", mdrange.Span{})
			}
			r.eof = tok
			return
		}
		r.buffer = append(r.buffer, tok)
	}
}

// Peek returns the next token without consuming it. At the end of input
// Peek returns a token of type EOF.
func (r *Reader) Peek() mdrange.Token {
	r.fill(r.pos)
	if r.pos < len(r.buffer) {
		return r.buffer[r.pos]
	}
	return r.eof
}

// Get consumes the next token. At the end of input Get returns a token of
// type EOF and does not advance.
func (r *Reader) Get() mdrange.Token {
	tok := r.Peek()
	if tok.TokType() != EOF {
		r.pos++
	}
	return tok
}

// UnGet pushes back the last token consumed. It is a no-op at the start of input.
func (r *Reader) UnGet() {
	if r.pos > 0 {
		r.pos--
	}
}

// IsAtEOF returns true if no more tokens are available.
func (r *Reader) IsAtEOF() bool {
	return r.Peek().TokType() == EOF
}

// Checkpoint returns a mark for the current position.
func (r *Reader) Checkpoint() Mark {
	r.markID++
	m := Mark{index: len(r.marks), pos: r.pos, id: r.markID}
	r.marks = append(r.marks, m)
	return m
}

// Restore returns the reader to the position of mark m. All marks taken after m
// become stale; m itself stays valid.
func (r *Reader) Restore(m Mark) error {
	if m.index < 0 || m.index >= len(r.marks) || r.marks[m.index] != m {
		return fmt.Errorf("cannot restore reader to position %d: %w", m.pos, ErrStaleMark)
	}
	tracer().Debugf("reader restores position %d (was %d)", m.pos, r.pos)
	r.pos = m.pos
	r.marks = r.marks[:m.index+1]
	return nil
}
