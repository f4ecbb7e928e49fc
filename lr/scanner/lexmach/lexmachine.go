package lexmach

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lrone/lrone"
	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lrone.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …) and a list of keywords ("if", "for", …), each
// of them being the name of a terminal.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	id := 1
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(escape(lit)), MakeToken(lit, id))
		id++
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(name), MakeToken(name, id))
		id++
	}
	if init != nil {
		init(adapter.Lexer)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Regular expressions for token classes of grammars.
const (
	IdentRegex  = `[a-zA-Z_][a-zA-Z0-9_]*`
	NumberRegex = `[0-9]+`
	SpaceRegex  = `( |\t|\n|\r)+`
)

// ForGrammar creates a vocabulary tokenizer for the terminals of a grammar.
// See the package documentation.
func ForGrammar(g *lr.Grammar) (*LMAdapter, error) {
	var literals, keywords []string
	hasIdent, hasNum := false, false
	for _, a := range g.Terminals() {
		switch {
		case a == lr.EOF:
		case a == scanner.Ident:
			hasIdent = true
		case a == scanner.Number:
			hasNum = true
		case isWord(string(a)):
			keywords = append(keywords, string(a))
		default:
			literals = append(literals, string(a))
		}
	}
	tracer().Debugf("vocabulary for %s: literals=%v, keywords=%v, id=%v, num=%v", g.Name,
		literals, keywords, hasIdent, hasNum)
	init := func(lexer *lexmachine.Lexer) {
		if hasIdent {
			lexer.Add([]byte(IdentRegex), MakeToken(scanner.Ident, 0))
		}
		if hasNum {
			lexer.Add([]byte(NumberRegex), MakeToken(scanner.Number, 0))
		}
		lexer.Add([]byte(SpaceRegex), Skip)
	}
	return NewLMAdapter(init, literals, keywords)
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
	done    bool
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
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Unmatched input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() lrone.Token {
	if lms.done {
		return scanner.EOFToken(uint64(len(lms.scanner.Text)))
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.Error(err)
			lms.done = true
			return scanner.EOFToken(uint64(lms.scanner.TC))
		}
		next := ui.FailTC
		if next <= ui.StartTC {
			next = ui.StartTC + 1
		}
		if next > len(lms.scanner.Text) {
			next = len(lms.scanner.Text)
		}
		lms.Error(fmt.Errorf("unexpected input %q at position %d",
			lms.scanner.Text[ui.StartTC:next], ui.StartTC))
		lms.scanner.TC = next
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		lms.done = true
		return scanner.EOFToken(uint64(len(lms.scanner.Text)))
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %v = %q", token.Value, token.Lexeme)
	return scanner.MakeDefaultToken(
		token.Value.(string),
		string(token.Lexeme),
		lrone.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// for a terminal.
func MakeToken(terminal string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, terminal, m), nil
	}
}

// escape quotes every character of a literal which is not a letter or digit.
func escape(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWord(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}
