package parsetree

import (
	"errors"
	"testing"

	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/grammars"
	"github.com/lrone/lrone/lr/lr1"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, name string, input []string) *lr1.Result {
	t.Helper()
	ex, ok := grammars.Find(name)
	require.True(t, ok, name)
	g, err := ex.Build()
	require.NoError(t, err)
	lrgen := lr.NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	p, err := lr1.NewParser(lrgen)
	require.NoError(t, err)
	res, err := p.ParseSymbols(input)
	require.NoError(t, err)
	return res
}

func leafSymbols(root *Node) []string {
	var syms []string
	for _, leaf := range root.Leaves() {
		syms = append(syms, string(leaf.Symbol))
	}
	return syms
}

func TestTreeCC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.tree")
	defer teardown()
	//
	input := []string{"c", "c", "d", "c", "c", "d"}
	root, err := FromResult(parse(t, "cc", input))
	require.NoError(t, err)
	t.Logf("tree = %v", root)
	assert.Equal(t, "S(C(c C(c C(d))) C(c C(c C(d))))", root.String())
	require.Len(t, root.Children, 2)
	for _, ch := range root.Children {
		assert.Equal(t, lr.Symbol("C"), ch.Symbol)
	}
	assert.Equal(t, input, leafSymbols(root))
	assert.Equal(t, uint64(0), root.Span.From())
	assert.Equal(t, uint64(6), root.Span.To())
	assert.Equal(t, uint64(3), root.Children[1].Span.From())
}

func TestTreeBalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.tree")
	defer teardown()
	//
	root, err := FromResult(parse(t, "balanced", []string{"(", ")", "(", ")"}))
	require.NoError(t, err)
	t.Logf("tree = %v", root)
	require.Len(t, root.Children, 4)
	inner, right := root.Children[1], root.Children[3]
	assert.Equal(t, lr.Symbol("S"), inner.Symbol)
	require.Len(t, inner.Children, 1)
	assert.True(t, inner.Children[0].IsEpsilon())
	assert.Equal(t, lr.Symbol("S"), right.Symbol)
	assert.Len(t, right.Children, 4)
	epsilons := 0
	root.Walk(func(n *Node, depth int) bool {
		if n.IsEpsilon() {
			epsilons++
			assert.True(t, n.IsLeaf())
		}
		return true
	})
	assert.Equal(t, 3, epsilons)
	assert.Equal(t, []string{"(", ")", "(", ")"}, leafSymbols(root))
}

func TestTreeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.tree")
	defer teardown()
	//
	input := []string{"id", "+", "id", "*", "num"}
	res := parse(t, "arith", input)
	root, err := FromResult(res)
	require.NoError(t, err)
	assert.Equal(t, input, leafSymbols(root))
	assert.Equal(t, lr.Symbol("E"), root.Symbol)
	// E(E(T(F(id))) + T(T(F(id)) * F(num)))
	require.Len(t, root.Children, 3)
	mul := root.Children[2]
	assert.Equal(t, lr.Symbol("T"), mul.Symbol)
	assert.Equal(t, "T → T * F", mul.Rule.String())
	ids := make(map[int]bool)
	root.Walk(func(n *Node, _ int) bool {
		assert.False(t, ids[n.ID], "node IDs must be unique")
		ids[n.ID] = true
		return true
	})
	for _, leaf := range root.Leaves() {
		assert.Equal(t, string(leaf.Symbol), leaf.Token.Terminal())
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.tree")
	defer teardown()
	//
	root, err := FromResult(parse(t, "cc", []string{"d", "d"}))
	require.NoError(t, err)
	visited := 0
	root.Walk(func(n *Node, depth int) bool {
		visited++
		return depth < 1
	})
	assert.Equal(t, 3, visited, "root and its two children")
}

func TestRejectIncompleteTraces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.tree")
	defer teardown()
	//
	failed := parse(t, "arith", []string{"id", "+", "+", "num"})
	_, err := FromResult(failed)
	assert.True(t, errors.Is(err, ErrIncompleteTrace))
	_, err = Build(failed.Steps)
	assert.True(t, errors.Is(err, ErrIncompleteTrace))
	//
	ok := parse(t, "cc", []string{"d", "d"})
	_, err = Build(ok.Steps[:len(ok.Steps)-1])
	assert.True(t, errors.Is(err, ErrIncompleteTrace), "trace without accept")
	_, err = Build(ok.Steps[2:])
	assert.True(t, errors.Is(err, ErrIncompleteTrace), "trace with stack underflow")
	_, err = FromResult(nil)
	assert.True(t, errors.Is(err, ErrIncompleteTrace))
}
