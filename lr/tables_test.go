package lr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDanglingElseGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("DanglingElse")
	b.AddProduction("S", "if", "E", "then", "S")
	b.AddProduction("S", "if", "E", "then", "S", "else", "S")
	b.AddProduction("S", "a")
	b.AddProduction("E", "b")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g)
	C, err := lrgen.closure(newItemSet(StartItem(g)))
	require.NoError(t, err)
	// [S'→•S,#] [S→•CC,#] [C→•cC,c/d] [C→•d,c/d]
	assert.Equal(t, 6, C.Size())
	for _, i := range C.Items() {
		t.Logf("  %v", i)
	}
	assert.True(t, C.Contains(Item{rule: g.Rule(2), dot: 0, la: "d"}))
}

func TestGotoSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g)
	C, _ := lrgen.closure(newItemSet(StartItem(g)))
	G, err := lrgen.gotoSet(C, "C")
	require.NoError(t, err)
	// [S→C•C,#] [C→•cC,#] [C→•d,#]
	assert.Equal(t, 3, G.Size())
	E, err := lrgen.gotoSet(C, "x")
	require.NoError(t, err)
	assert.True(t, E.Empty())
}

func TestCanonicalCollectionCC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	cfsm := lrgen.CFSM()
	if cfsm.StateCount() != 10 {
		t.Errorf("expected canonical LR(1) collection of 10 states, have %d", cfsm.StateCount())
	}
	if lrgen.HasConflicts() {
		t.Errorf("grammar G1 should have no conflicts, has %v", lrgen.Conflicts())
	}
	acc := lrgen.AcceptingStates()
	require.Len(t, acc, 1)
	s, ok := lrgen.GotoTable().Lookup(0, "S")
	require.True(t, ok)
	assert.Equal(t, acc[0], s, "GOTO(0,S) should be the accepting state")
	action, ok := lrgen.ActionTable().Lookup(s, EOF)
	require.True(t, ok)
	assert.Equal(t, Accept(), action)
	action, ok = lrgen.ActionTable().Lookup(0, "c")
	require.True(t, ok)
	assert.Equal(t, ShiftAction, action.Kind)
	_, ok = lrgen.ActionTable().Lookup(0, EOF)
	assert.False(t, ok, "empty input is not in L(G1)")
}

func TestStatesAreUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{makeGrammarCC(t), makeArithmeticGrammar(t), makeBalancedGrammar(t)} {
		lrgen := NewTableGenerator(g)
		require.NoError(t, lrgen.CreateTables())
		cfsm := lrgen.CFSM()
		for i := 0; i < cfsm.StateCount(); i++ {
			for j := i + 1; j < cfsm.StateCount(); j++ {
				if cfsm.State(i).items.Equals(cfsm.State(j).items) {
					t.Errorf("%s: states %d and %d have equal item sets", g.Name, i, j)
				}
			}
		}
		seen := make(map[string]bool)
		for _, tr := range cfsm.Transitions() {
			key := fmt.Sprintf("%d/%s", tr.From, tr.Symbol)
			if seen[key] {
				t.Errorf("%s: more than one transition from state %d on %q", g.Name, tr.From, tr.Symbol)
			}
			seen[key] = true
		}
	}
}

func dumpTables(lrgen *TableGenerator) string {
	var b strings.Builder
	lrgen.ActionTable().Each(func(state int, a Symbol, action Action) {
		fmt.Fprintf(&b, "A(%d,%s)=%v\n", state, a, action)
	})
	lrgen.GotoTable().Each(func(state int, A Symbol, target int) {
		fmt.Fprintf(&b, "G(%d,%s)=%d\n", state, A, target)
	})
	return b.String()
}

func TestConstructionIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeArithmeticGrammar(t)
	lrgen1 := NewTableGenerator(g)
	lrgen2 := NewTableGenerator(g)
	require.NoError(t, lrgen1.CreateTables())
	require.NoError(t, lrgen2.CreateTables())
	assert.Equal(t, lrgen1.CFSM().StateCount(), lrgen2.CFSM().StateCount())
	assert.Equal(t, dumpTables(lrgen1), dumpTables(lrgen2))
	assert.False(t, lrgen1.HasConflicts())
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeDanglingElseGrammar(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	require.True(t, lrgen.HasConflicts())
	for _, c := range lrgen.Conflicts() {
		t.Logf("%v", c)
		assert.Equal(t, ShiftReduce, c.Kind)
		assert.Equal(t, Symbol("else"), c.Symbol)
		assert.Equal(t, c.Existing, c.Kept, "first writer is kept by default")
		kept, _ := lrgen.ActionTable().Lookup(c.State, c.Symbol)
		assert.Equal(t, c.Kept, kept)
		rejected, ok := lrgen.ActionTable().Alternative(c.State, c.Symbol)
		assert.True(t, ok)
		assert.Equal(t, c.Incoming, rejected)
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.AddProduction("S", "A")
	b.AddProduction("S", "B")
	b.AddProduction("A", "x")
	b.AddProduction("B", "x")
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	require.Len(t, lrgen.Conflicts(), 1)
	c := lrgen.Conflicts()[0]
	assert.Equal(t, ReduceReduce, c.Kind)
	assert.Equal(t, EOF, c.Symbol)
	assert.Equal(t, Reduce(3), c.Kept)
	assert.Equal(t, Reduce(4), c.Incoming)
}

func TestConflictStrategies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	sr := Conflict{Kind: ShiftReduce, Existing: Reduce(2), Incoming: Shift(7)}
	kept, rejected := KeepFirst.resolve(sr)
	assert.Equal(t, Reduce(2), kept)
	assert.Equal(t, Shift(7), rejected)
	kept, rejected = PreferShift.resolve(sr)
	assert.Equal(t, Shift(7), kept)
	assert.Equal(t, Reduce(2), rejected)
	rr := Conflict{Kind: ReduceReduce, Existing: Reduce(5), Incoming: Reduce(3)}
	kept, _ = PreferShift.resolve(rr)
	assert.Equal(t, Reduce(3), kept)
	kept, _ = KeepFirst.resolve(rr)
	assert.Equal(t, Reduce(5), kept)
	//
	g := makeDanglingElseGrammar(t)
	lrgen := NewTableGenerator(g, WithConflictStrategy(PreferShift))
	require.NoError(t, lrgen.CreateTables())
	for _, c := range lrgen.Conflicts() {
		assert.Equal(t, ShiftAction, c.Kept.Kind)
	}
}

func TestClosureLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g, ClosureLimit(1))
	err := lrgen.CreateTables()
	if !errors.Is(err, ErrClosureLimit) {
		t.Fatalf("expected closure limit error, have %v", err)
	}
	if err2 := lrgen.CreateTables(); err2 != err {
		t.Errorf("expected CreateTables to return the first result again")
	}
}

func TestEventSink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	counts := make(map[EventKind]int)
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g, WithEventSink(func(e Event) {
		counts[e.Kind]++
	}))
	require.NoError(t, lrgen.CreateTables())
	cfsm := lrgen.CFSM()
	assert.Equal(t, cfsm.StateCount(), counts[StateAdded])
	assert.Equal(t, len(cfsm.Transitions()), counts[TransitionAdded])
	assert.Equal(t, counts[TransitionAdded], counts[StateAdded]-1+counts[StateReused])
	assert.Equal(t, lrgen.ActionTable().Size(), counts[ActionWritten])
	assert.Equal(t, lrgen.GotoTable().Size(), counts[GotoWritten])
	assert.Zero(t, counts[ConflictDetected])
	assert.NotZero(t, counts[ClosureComputed])
}

func TestActionEncoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	for _, a := range []Action{Accept(), Reduce(1), Reduce(42), Shift(0), Shift(9)} {
		if d := decodeAction(a.encode()); d != a {
			t.Errorf("action %v decodes to %v", a, d)
		}
	}
	assert.Equal(t, "S3", Shift(3).String())
	assert.Equal(t, "R2", Reduce(2).String())
	assert.Equal(t, "ACC", Accept().String())
}

func TestExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	lrgen := NewTableGenerator(g)
	var buf bytes.Buffer
	assert.ErrorIs(t, ActionTableAsHTML(lrgen, &buf), ErrNoTables)
	require.NoError(t, lrgen.CreateTables())
	require.NoError(t, lrgen.CFSM().ExportDOT(&buf))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph {"))
	assert.Contains(t, dot, "lightgray")
	assert.Contains(t, dot, "s000 -> s")
	buf.Reset()
	require.NoError(t, ActionTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "ACC")
	buf.Reset()
	require.NoError(t, GotoTableAsHTML(lrgen, &buf))
	assert.Contains(t, buf.String(), "GOTO table")
}
