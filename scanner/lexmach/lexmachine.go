package lexmach

import (
	"strings"

	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/mdrange/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'mdrange.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("mdrange.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64 // end position of last token
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
// Unconsumable input is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() mdrange.Token {
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(scanner.EOF, "", mdrange.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", mdrange.Span{lms.end, lms.end})
	}
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	lms.end = from + uint64(len(token.Lexeme))
	tracer().Debugf("lexmachine token %d %q", token.Type, token.Lexeme)
	return scanner.MakeDefaultToken(
		mdrange.TokType(token.Type),
		string(token.Lexeme),
		mdrange.Span{from, lms.end},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Range literals --------------------------------------------------------

// Blank is the token type for runs of white space, as produced by RangeLexer.
const Blank = scanner.Comment - 1

// rangeLiterals are reported with their rune value as token type, the same
// way scanner.DefaultTokenizer does.
var rangeLiterals = []string{"{", "}", "[", "]", "(", ")", "<", ">", ",", ";", "+", "-"}

// RangeLexer creates an adapter for range literals. Numbers are reported as
// scanner.Int or scanner.Float, identifiers as scanner.Ident, double-quoted
// strings as scanner.String, and white space runs as Blank.
func RangeLexer() (*LMAdapter, error) {
	tokenIds := make(map[string]int, len(rangeLiterals))
	for _, lit := range rangeLiterals {
		tokenIds[lit] = int([]rune(lit)[0])
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), MakeToken("BLANK", Blank))
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", scanner.String))
		lexer.Add([]byte(`[\+\-]?[0-9]+`), MakeToken("INT", scanner.Int))
		lexer.Add([]byte(`[\+\-]?[0-9]+\.[0-9]*([eE][\+\-]?[0-9]+)?`), MakeToken("FLOAT", scanner.Float))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("ID", scanner.Ident))
	}
	return NewLMAdapter(init, rangeLiterals, nil, tokenIds)
}
