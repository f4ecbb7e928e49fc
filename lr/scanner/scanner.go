/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Tokens carry the name of the grammar terminal they represent. At the end of
input, tokenizers return tokens for the terminal lr.EOF, and keep doing so
on subsequent calls.

Three scanner implementations are provided: (1) a tokenizer replaying a
pre-tokenized sequence of terminals, (2) a thin wrapper over the Go std lib
'text/scanner', and (3) a longest-match vocabulary tokenizer based on
lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/lrone/lrone"
	"github.com/lrone/lrone/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.scanner")
}

// Terminal names the Go tokenizer uses for identifiers, numbers and strings.
const (
	Ident  = "id"
	Number = "num"
	String = "string"
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrone.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for all
// the tokenizers of this module.
type DefaultToken struct {
	terminal string
	lexeme   string
	span     lrone.Span
}

var _ lrone.Token = DefaultToken{}

// MakeDefaultToken creates a token for a terminal.
func MakeDefaultToken(terminal string, lexeme string, span lrone.Span) DefaultToken {
	return DefaultToken{
		terminal: terminal,
		lexeme:   lexeme,
		span:     span,
	}
}

// EOFToken creates an end-of-input token at a given input position.
func EOFToken(pos uint64) DefaultToken {
	return MakeDefaultToken(string(lr.EOF), "", lrone.Span{pos, pos})
}

// Terminal is part of the lrone.Token interface.
func (t DefaultToken) Terminal() string {
	return t.terminal
}

// Lexeme is part of the lrone.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the lrone.Token interface.
func (t DefaultToken) Span() lrone.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.lexeme == "" || t.lexeme == t.terminal {
		return t.terminal
	}
	return fmt.Sprintf("%s(%s)", t.terminal, t.lexeme)
}

// --- Pre-tokenized input ---------------------------------------------------

// TerminalTokenizer replays a sequence of terminal names. Every terminal
// counts as one input position.
type TerminalTokenizer struct {
	terminals []string
	pos       int
	Error     func(error)
}

var _ Tokenizer = (*TerminalTokenizer)(nil)

// FromTerminals creates a tokenizer for a pre-tokenized input.
func FromTerminals(terminals []string) *TerminalTokenizer {
	return &TerminalTokenizer{terminals: terminals, Error: logError}
}

// SetErrorHandler sets an error handler for the scanner. Replaying terminals
// never produces errors.
func (tt *TerminalTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		tt.Error = logError
		return
	}
	tt.Error = h
}

// NextToken is part of the Tokenizer interface.
func (tt *TerminalTokenizer) NextToken() lrone.Token {
	if tt.pos >= len(tt.terminals) {
		return EOFToken(uint64(len(tt.terminals)))
	}
	t := tt.terminals[tt.pos]
	tt.pos++
	return MakeDefaultToken(t, t, lrone.Span{uint64(tt.pos - 1), uint64(tt.pos)})
}

// --- Go tokenizer ----------------------------------------------------------

// DefaultTokenizer is a tokenizer backed by scanner.Scanner. Identifiers are
// reported as terminal "id", unless they are keywords. Integer and float
// literals are reported as "num", strings as "string", and any other
// character as a terminal of its own.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                // last token this scanner has produced
	Error        func(error)         // error handler
	unifyStrings bool                // convert single chars to strings
	keywords     map[string]struct{} // identifiers to report verbatim
	operators    map[string]struct{} // multi-character operators and their prefixes
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		keywords:  make(map[string]struct{}),
		operators: make(map[string]struct{}),
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrone.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return EOFToken(uint64(t.Pos().Offset))
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	lexeme := t.TokenText()
	from := t.Position.Offset // Next() invalidates the token position
	var terminal string
	switch t.lastToken {
	case scanner.Ident:
		terminal = Ident
		if _, ok := t.keywords[lexeme]; ok {
			terminal = lexeme
		}
	case scanner.Int, scanner.Float:
		terminal = Number
	case scanner.String, scanner.RawString, scanner.Char:
		terminal = String
	default:
		lexeme = t.longestOperator(lexeme)
		terminal = lexeme
	}
	return MakeDefaultToken(terminal, lexeme,
		lrone.Span{uint64(from), uint64(t.Pos().Offset)})
}

// longestOperator extends a single-character token with following characters
// as long as the result is a prefix of a declared operator.
func (t *DefaultTokenizer) longestOperator(lexeme string) string {
	for {
		r := t.Peek()
		if r == scanner.EOF {
			return lexeme
		}
		if _, ok := t.operators[lexeme+string(r)]; !ok {
			return lexeme
		}
		lexeme += string(t.Next())
	}
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Keywords sets identifiers which are reported as terminals of their own
// instead of "id".
func Keywords(kw ...string) Option {
	return func(t *DefaultTokenizer) {
		for _, k := range kw {
			t.keywords[k] = struct{}{}
		}
	}
}

// Operators declares multi-character operators like "==" or "<=". They are
// reported as one token instead of one token per character.
func Operators(ops ...string) Option {
	return func(t *DefaultTokenizer) {
		for _, op := range ops {
			runes := []rune(op)
			for i := 2; i <= len(runes); i++ {
				t.operators[string(runes[:i])] = struct{}{}
			}
		}
	}
}
