package grammars

import (
	"errors"
	"testing"

	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/lr1"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g, err := Parse("Expr", `
		// expressions
		E -> E + T | T
		T → T * F | F
		F → ( E ) | id
	`)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Size())
	assert.Equal(t, lr.Symbol("E"), g.StartSymbol())
	assert.True(t, g.IsTerminal("id"))
	assert.True(t, g.IsTerminal("("))
	assert.True(t, g.IsNonTerminal("F"))
	assert.Equal(t, "E → E + T | T\nT → T * F | F\nF → ( E ) | id\n", Format(g))
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for _, text := range []string{"S → ( S ) S | ε", "S → ( S ) S | eps", "S → ( S ) S |"} {
		g, err := Parse("Balanced", text)
		require.NoError(t, err)
		assert.True(t, g.Rule(2).IsEpsilon(), text)
		assert.Equal(t, "S → ( S ) S | ε\n", Format(g))
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for _, text := range []string{"S C C", "→ a", "A B → a", "S → X", ""} {
		_, err := Parse("Broken", text)
		if !errors.Is(err, lr.ErrGrammar) {
			t.Errorf("expected grammar error for %q, have %v", text, err)
		}
	}
}

func TestCatalogue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for i, ex := range Catalogue() {
		assert.Equal(t, i+1, ex.Number)
		g, err := ex.Build()
		require.NoError(t, err, ex.Name)
		lrgen := lr.NewTableGenerator(g)
		require.NoError(t, lrgen.CreateTables(), ex.Name)
		assert.Equal(t, ex.Name == "dangling-else", lrgen.HasConflicts(),
			"%s: unexpected conflict state %v", ex.Name, lrgen.Conflicts())
		p, err := lr1.NewParser(lrgen)
		require.NoError(t, err)
		res, err := p.ParseString(ex.Input)
		require.NoError(t, err, ex.Name)
		assert.True(t, res.Accepted, "%s: %s", ex.Name, res.Message)
	}
	ex, ok := Find("arith")
	assert.True(t, ok)
	assert.Equal(t, 11, ex.Number)
	_, ok = Find("nonexistent")
	assert.False(t, ok)
}
