package lrone

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are usually produced by a scanner and
// stand for terminals of a grammar.
//
// An example would be a token for an identifier:
//
//    Terminal = "id"        // grammar terminal this token is an instance of
//    Lexeme   = "counter"   // lexeme how it appeared in the input stream
//    Span     = 67…74       // occured from position 67 in the input stream
//
// Pre-tokenized input (a plain sequence of terminal names) results in tokens
// where Lexeme equals Terminal and Span is the index of the token.
type Token interface {
	Terminal() string
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is a predicate for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are
// neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
