package lr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// === Productions ===========================================================

// Production is a grammar rule A → X₁ … Xₙ. Its serial number is the
// production's index in the grammar, with 0 being the augmented start rule.
type Production struct {
	Serial int    // index of this rule within the grammar
	LHS    Symbol // left-hand side, always a non-terminal
	rhs    []Symbol
}

// RHS returns the right-hand side symbols of a rule. An epsilon-production
// has an empty right-hand side. Clients must not modify the slice.
func (r *Production) RHS() []Symbol {
	return r.rhs
}

// Len returns the number of symbols on the right-hand side.
func (r *Production) Len() int {
	return len(r.rhs)
}

// IsEpsilon is a predicate for epsilon-productions.
func (r *Production) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Production) String() string {
	if r.IsEpsilon() {
		return fmt.Sprintf("%s → %s", r.LHS, Epsilon)
	}
	var b strings.Builder
	b.WriteString(string(r.LHS))
	b.WriteString(" →")
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(string(A))
	}
	return b.String()
}

// === Grammars ==============================================================

// Grammar is a context-free grammar, augmented with a start rule S' → S.
// Grammars are created with a GrammarBuilder and are immutable afterwards.
// They may be shared between goroutines.
type Grammar struct {
	Name         string
	rules        []*Production
	rulesByLHS   map[Symbol][]*Production
	terminals    map[Symbol]struct{}
	nonterminals map[Symbol]struct{}
	start        Symbol // user start symbol
	augmented    Symbol // S'
	first        map[Symbol]*SymbolSet
	follow       map[Symbol]*SymbolSet
}

// Rule returns production number no, or nil if out of range.
func (g *Grammar) Rule(no int) *Production {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns all productions, in order. Clients must not modify the slice.
func (g *Grammar) Rules() []*Production {
	return g.rules
}

// Size returns the number of productions, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// StartSymbol returns the user start symbol S.
func (g *Grammar) StartSymbol() Symbol {
	return g.start
}

// AugmentedStart returns the start symbol S' of the augmented start rule.
func (g *Grammar) AugmentedStart() Symbol {
	return g.augmented
}

// IsTerminal is a predicate. The end-of-input symbol is a terminal.
func (g *Grammar) IsTerminal(A Symbol) bool {
	_, ok := g.terminals[A]
	return ok
}

// IsNonTerminal is a predicate.
func (g *Grammar) IsNonTerminal(A Symbol) bool {
	_, ok := g.nonterminals[A]
	return ok
}

// Terminals returns the terminals of the grammar in lexical order, including
// the end-of-input symbol.
func (g *Grammar) Terminals() []Symbol {
	T := maps.Keys(g.terminals)
	slices.Sort(T)
	return T
}

// NonTerminals returns the non-terminals of the grammar in lexical order,
// including the augmented start symbol.
func (g *Grammar) NonTerminals() []Symbol {
	N := maps.Keys(g.nonterminals)
	slices.Sort(N)
	return N
}

// EachSymbol iterates over all symbols of the grammar, terminals first.
// Iteration stops if f returns false.
func (g *Grammar) EachSymbol(f func(A Symbol) bool) {
	for _, A := range g.Terminals() {
		if !f(A) {
			return
		}
	}
	for _, A := range g.NonTerminals() {
		if !f(A) {
			return
		}
	}
}

// FindNonTermRules returns all productions with left-hand side A, in grammar
// order.
func (g *Grammar) FindNonTermRules(A Symbol) []*Production {
	return g.rulesByLHS[A]
}

// matchesRHS finds the first rule with the given left-hand side and
// right-hand side. It returns -1 if no such rule exists.
func (g *Grammar) matchesRHS(lhs Symbol, rhs []Symbol) (*Production, int) {
	for _, r := range g.rulesByLHS[lhs] {
		if slices.Equal(r.rhs, rhs) {
			return r, r.Serial
		}
	}
	return nil, -1
}

// Dump is a debugging helper, writing the grammar rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// === Errors ================================================================

// ErrGrammar is the sentinel error for malformed grammars.
var ErrGrammar = errors.New("grammar error")

// GrammarError lists the problems found while finalizing a grammar.
type GrammarError struct {
	Grammar  string
	Problems []string
}

func (e *GrammarError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("grammar %s: %s", e.Grammar, e.Problems[0])
	}
	return fmt.Sprintf("grammar %s: %d problems: %s", e.Grammar, len(e.Problems),
		strings.Join(e.Problems, "; "))
}

// Unwrap makes GrammarError match ErrGrammar.
func (e *GrammarError) Unwrap() error {
	return ErrGrammar
}

// === Grammar Builder =======================================================

// GrammarBuilder is used to construct a Grammar.
//
//	b := NewGrammarBuilder("G")
//	b.LHS("S").N("A").T("a").End()  // S  ->  A a
//	b.LHS("A").Epsilon()            // A  ->  ε
//	g, err := b.Grammar()
//
// The first left-hand side becomes the start symbol.
type GrammarBuilder struct {
	g        *Grammar
	classify Classifier
	kinds    map[Symbol]SymbolKind
	problems []string
	done     bool
	err      error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		g: &Grammar{
			Name:         gname,
			rulesByLHS:   make(map[Symbol][]*Production),
			terminals:    make(map[Symbol]struct{}),
			nonterminals: make(map[Symbol]struct{}),
		},
		classify: DefaultClassifier,
		kinds:    make(map[Symbol]SymbolKind),
	}
}

// Classifier replaces the classifier for right-hand side symbols added with
// RuleBuilder.Sym or AddProduction.
func (gb *GrammarBuilder) Classifier(c Classifier) *GrammarBuilder {
	if c != nil {
		gb.classify = c
	}
	return gb
}

func (gb *GrammarBuilder) problem(format string, args ...interface{}) {
	gb.problems = append(gb.problems, fmt.Sprintf(format, args...))
}

// declare fixes the kind of a symbol. A symbol keeps its first classification;
// a contradicting one is a grammar error.
func (gb *GrammarBuilder) declare(A Symbol, kind SymbolKind) {
	if A == EOF || A == Epsilon {
		gb.problem("reserved symbol %q used in a production", A)
		return
	}
	if A == "" {
		gb.problem("empty symbol name")
		return
	}
	if kind == Unclassified {
		gb.problem("cannot classify symbol %q", A)
		return
	}
	if k, ok := gb.kinds[A]; ok {
		if k != kind {
			gb.problem("symbol %q used as %s and as %s", A, k, kind)
		}
		return
	}
	gb.kinds[A] = kind
}

// kindOf returns the kind of a symbol, asking the classifier for new ones.
func (gb *GrammarBuilder) kindOf(A Symbol) SymbolKind {
	if k, ok := gb.kinds[A]; ok {
		return k
	}
	return gb.classify(A)
}

// mustBeOpen panics if the grammar has been finalized already.
func (gb *GrammarBuilder) mustBeOpen() {
	if gb.done {
		tracer().Errorf("grammar %s is finalized, cannot add rules", gb.g.Name)
		panic(fmt.Sprintf("grammar %s is finalized, cannot add rules", gb.g.Name))
	}
}

// LHS starts a new rule with non-terminal s on the left-hand side.
// It panics if Grammar() has been called before.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	gb.mustBeOpen()
	A := Symbol(s)
	gb.declare(A, NonTerminalSymbol)
	if gb.g.start == "" {
		gb.g.start = A
	}
	return &RuleBuilder{gb: gb, lhs: A}
}

// AddProduction adds a rule lhs → rhs. Right-hand side symbols are classified
// by the builder's classifier unless they are known already. An empty
// right-hand side, or a single "ε", denotes an epsilon-production.
func (gb *GrammarBuilder) AddProduction(lhs string, rhs ...string) *Production {
	rb := gb.LHS(lhs)
	if len(rhs) == 0 || (len(rhs) == 1 && Symbol(rhs[0]) == Epsilon) {
		return rb.Epsilon()
	}
	for _, s := range rhs {
		rb.Sym(s)
	}
	return rb.End()
}

func (gb *GrammarBuilder) appendRule(r *Production) {
	gb.mustBeOpen()
	r.Serial = len(gb.g.rules) + 1 // rule 0 is reserved for the start rule
	gb.g.rules = append(gb.g.rules, r)
}

// Grammar finalizes the grammar. It checks the grammar for consistency,
// adds the augmented start rule and computes FIRST and FOLLOW sets.
// Calling Grammar more than once returns the same grammar. Afterwards no
// more rules may be added to the builder.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.done {
		if gb.err != nil {
			return nil, gb.err
		}
		return gb.g, nil
	}
	gb.done = true
	g := gb.g
	if len(g.rules) == 0 {
		gb.problem("grammar has no productions")
	}
	for _, r := range g.rules {
		g.rulesByLHS[r.LHS] = append(g.rulesByLHS[r.LHS], r)
	}
	for A, k := range gb.kinds {
		switch k {
		case TerminalSymbol:
			g.terminals[A] = struct{}{}
		case NonTerminalSymbol:
			g.nonterminals[A] = struct{}{}
		}
	}
	for _, A := range g.NonTerminals() {
		if len(g.rulesByLHS[A]) == 0 {
			gb.problem("non-terminal %q has no productions", A)
		}
	}
	if len(gb.problems) > 0 {
		gb.err = &GrammarError{Grammar: g.Name, Problems: gb.problems}
		tracer().Errorf("%v", gb.err)
		return nil, gb.err
	}
	g.augmented = g.start + "'"
	for gb.kinds[g.augmented] != Unclassified {
		g.augmented += "'"
	}
	start := &Production{LHS: g.augmented, rhs: []Symbol{g.start}}
	g.rules = append([]*Production{start}, g.rules...)
	g.rulesByLHS[g.augmented] = []*Production{start}
	g.nonterminals[g.augmented] = struct{}{}
	g.terminals[EOF] = struct{}{}
	g.computeFirstSets()
	g.computeFollowSets()
	tracer().Debugf("grammar %s has %d rules", g.Name, len(g.rules))
	return g, nil
}

// RuleBuilder is a builder type for rules.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.gb.declare(Symbol(s), NonTerminalSymbol)
	rb.rhs = append(rb.rhs, Symbol(s))
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.declare(Symbol(s), TerminalSymbol)
	rb.rhs = append(rb.rhs, Symbol(s))
	return rb
}

// Sym appends a symbol whose kind is either known already or decided by
// the grammar builder's classifier.
func (rb *RuleBuilder) Sym(s string) *RuleBuilder {
	A := Symbol(s)
	rb.gb.declare(A, rb.gb.kindOf(A))
	rb.rhs = append(rb.rhs, A)
	return rb
}

// End ends the rule and adds it to the grammar.
func (rb *RuleBuilder) End() *Production {
	r := &Production{LHS: rb.lhs, rhs: rb.rhs}
	rb.gb.appendRule(r)
	return r
}

// Epsilon adds an epsilon-production A → ε to the grammar. Symbols added
// to the rule builder before are discarded.
func (rb *RuleBuilder) Epsilon() *Production {
	r := &Production{LHS: rb.lhs}
	rb.gb.appendRule(r)
	return r
}
