package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
type Symbol string

// Reserved symbols.
const (
	EOF     Symbol = "#" // end of input, a terminal
	Epsilon Symbol = "ε" // denotes an empty right-hand side, neither terminal nor non-terminal
)

// SymbolKind classifies grammar symbols.
type SymbolKind uint8

// Symbols are either terminals or non-terminals.
const (
	Unclassified SymbolKind = iota
	TerminalSymbol
	NonTerminalSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalSymbol:
		return "terminal"
	case NonTerminalSymbol:
		return "non-terminal"
	}
	return "unclassified"
}

// Classifier decides the kind of symbols on the right-hand side of productions
// which have not been classified before.
type Classifier func(Symbol) SymbolKind

// DefaultClassifier treats symbols starting with an upper case letter as
// non-terminals. Every other symbol is a terminal: identifiers and numbers
// represented by `id` and `num`, keywords like `if` or `while`, and all
// punctuation and operator tokens.
func DefaultClassifier(sym Symbol) SymbolKind {
	if sym == "" || sym == Epsilon {
		return Unclassified
	}
	if c := sym[0]; c >= 'A' && c <= 'Z' {
		return NonTerminalSymbol
	}
	return TerminalSymbol
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is an ordered set of symbols. Iteration order is the lexical order
// of symbol names.
type SymbolSet struct {
	set *treeset.Set
}

func symbolComparator(s1, s2 interface{}) int {
	return utils.StringComparator(string(s1.(Symbol)), string(s2.(Symbol)))
}

func newSymbolSet(syms ...Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		S.set.Add(A)
	}
	return S
}

// Add adds a symbol and returns true if it has not been in the set before.
func (S *SymbolSet) Add(A Symbol) bool {
	if S.set.Contains(A) {
		return false
	}
	S.set.Add(A)
	return true
}

// Contains is a predicate for set membership.
func (S *SymbolSet) Contains(A Symbol) bool {
	if S == nil {
		return false
	}
	return S.set.Contains(A)
}

// Remove removes a symbol from the set.
func (S *SymbolSet) Remove(A Symbol) {
	S.set.Remove(A)
}

// Union adds all symbols of another set. It is destructive and returns true
// if S changed.
func (S *SymbolSet) Union(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, x := range other.set.Values() {
		if S.Add(x.(Symbol)) {
			changed = true
		}
	}
	return changed
}

// Size returns the number of symbols in the set.
func (S *SymbolSet) Size() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Empty is a predicate.
func (S *SymbolSet) Empty() bool {
	return S.Size() == 0
}

// Symbols returns the members of the set in order.
func (S *SymbolSet) Symbols() []Symbol {
	if S == nil {
		return nil
	}
	syms := make([]Symbol, 0, S.set.Size())
	for _, x := range S.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Copy returns a new set containing the symbols of S.
func (S *SymbolSet) Copy() *SymbolSet {
	if S == nil {
		return newSymbolSet()
	}
	return newSymbolSet(S.Symbols()...)
}

// Equals compares two sets by content.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, A := range S.Symbols() {
		if !other.Contains(A) {
			return false
		}
	}
	return true
}

func (S *SymbolSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, A := range S.Symbols() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(A))
	}
	b.WriteString("}")
	return b.String()
}
