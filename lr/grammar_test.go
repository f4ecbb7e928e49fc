package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGrammarCC(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G1")
	b.LHS("S").N("C").N("C").End()
	b.LHS("C").T("c").N("C").End()
	b.LHS("C").T("d").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar G1 should build, got %v", err)
	}
	return g
}

func makeArithmeticGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Arithmetic")
	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("E", "T")
	b.AddProduction("T", "T", "*", "F")
	b.AddProduction("T", "F")
	b.AddProduction("F", "(", "E", ")")
	b.AddProduction("F", "id")
	b.AddProduction("F", "num")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("arithmetic grammar should build, got %v", err)
	}
	return g
}

func makeBalancedGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Balanced")
	b.AddProduction("S", "(", "S", ")", "S")
	b.AddProduction("S", "ε")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("balanced grammar should build, got %v", err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	g.Dump()
	if g.Size() != 4 {
		t.Errorf("expected 4 rules including start rule, have %d", g.Size())
	}
	if g.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, have %q", g.StartSymbol())
	}
	r := g.Rule(0)
	if r.LHS != "S'" || len(r.RHS()) != 1 || r.RHS()[0] != "S" {
		t.Errorf("expected rule 0 to be S' → S, is %v", r)
	}
	if g.Rule(2).String() != "C → c C" {
		t.Errorf("expected rule 2 to be C → c C, is %v", g.Rule(2))
	}
	if !g.IsTerminal("c") || !g.IsTerminal(EOF) || g.IsTerminal("C") {
		t.Errorf("terminal classification wrong")
	}
	if !g.IsNonTerminal("S'") {
		t.Errorf("augmented start symbol should be a non-terminal")
	}
	for i, r := range g.Rules() {
		if r.Serial != i {
			t.Errorf("rule %v has serial %d, expected %d", r, r.Serial, i)
		}
	}
}

func TestDefaultClassifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for _, s := range []Symbol{"E", "SL", "Stmt"} {
		assert.Equal(t, NonTerminalSymbol, DefaultClassifier(s), s)
	}
	for _, s := range []Symbol{"id", "num", "if", "while", "int", "+", "==", "<=", "{", ";", ","} {
		assert.Equal(t, TerminalSymbol, DefaultClassifier(s), s)
	}
	assert.Equal(t, Unclassified, DefaultClassifier(Epsilon))
}

func TestEpsilonProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeBalancedGrammar(t)
	r := g.Rule(2)
	if !r.IsEpsilon() || r.Len() != 0 {
		t.Errorf("expected rule 2 to be an epsilon-production, is %v", r)
	}
	if r.String() != "S → ε" {
		t.Errorf("expected S → ε, have %q", r.String())
	}
	if g.IsTerminal(Epsilon) || g.IsNonTerminal(Epsilon) {
		t.Errorf("ε must be neither terminal nor non-terminal")
	}
}

func TestAugmentedStartIsUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Primes")
	b.AddProduction("S", "S'", "a")
	b.AddProduction("S'", "b")
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, Symbol("S''"), g.AugmentedStart())
	assert.Equal(t, Symbol("S''"), g.Rule(0).LHS)
}

func TestGrammarIsFrozen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Frozen")
	b.AddProduction("S", "a")
	pending := b.LHS("S").T("x")
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Panics(t, func() { b.AddProduction("S", "b") })
	assert.Panics(t, func() { b.LHS("S").T("c").End() })
	assert.Panics(t, func() { pending.End() })
	g2, err := b.Grammar()
	require.NoError(t, err)
	assert.Same(t, g, g2)
	assert.Equal(t, 2, g.Size(), "S' → S and S → a")
	for i, r := range g.Rules() {
		assert.Equal(t, i, r.Serial)
	}
	assert.False(t, g.IsTerminal("b"))
	assert.Len(t, g.FindNonTermRules("S"), 1)
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	cases := map[string]func(b *GrammarBuilder){
		"empty":     func(b *GrammarBuilder) {},
		"undefined": func(b *GrammarBuilder) { b.AddProduction("S", "X", "a") },
		"reserved":  func(b *GrammarBuilder) { b.AddProduction("S", "a", "#") },
		"contradiction": func(b *GrammarBuilder) {
			b.LHS("S").T("A").End()
			b.LHS("A").T("a").End()
		},
	}
	for name, build := range cases {
		b := NewGrammarBuilder(name)
		build(b)
		g, err := b.Grammar()
		if err == nil || g != nil {
			t.Errorf("%s: expected grammar error", name)
			continue
		}
		if !errors.Is(err, ErrGrammar) {
			t.Errorf("%s: expected error to match ErrGrammar, is %v", name, err)
		}
		var gerr *GrammarError
		if !errors.As(err, &gerr) || len(gerr.Problems) == 0 {
			t.Errorf("%s: expected problems listed in GrammarError", name)
		}
	}
}

func TestMatchesRHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Duplicates")
	b.AddProduction("S", "a")
	b.AddProduction("S", "a")
	g, err := b.Grammar()
	require.NoError(t, err)
	_, no := g.matchesRHS("S", []Symbol{"a"})
	assert.Equal(t, 1, no, "first matching production wins")
	_, no = g.matchesRHS("S", []Symbol{"b"})
	assert.Equal(t, -1, no)
}

func TestEachSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	var syms []Symbol
	g.EachSymbol(func(A Symbol) bool {
		syms = append(syms, A)
		return true
	})
	assert.Equal(t, []Symbol{"#", "c", "d", "C", "S", "S'"}, syms)
}
