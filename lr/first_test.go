package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func checkSet(t *testing.T, what string, S *SymbolSet, expected ...Symbol) {
	t.Helper()
	if S.Size() != len(expected) {
		t.Errorf("expected %s = %v, is %v", what, expected, S)
		return
	}
	for _, A := range expected {
		if !S.Contains(A) {
			t.Errorf("expected %s = %v, is %v", what, expected, S)
			return
		}
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	checkSet(t, "FIRST(C)", g.First("C"), "c", "d")
	checkSet(t, "FIRST(S)", g.First("S"), "c", "d")
	checkSet(t, "FIRST(c)", g.First("c"), "c")
	checkSet(t, "FIRST(ε)", g.First(Epsilon), Epsilon)
}

func TestFirstOfLeftRecursiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeArithmeticGrammar(t)
	for _, A := range []Symbol{"E", "T", "F"} {
		checkSet(t, "FIRST("+string(A)+")", g.First(A), "(", "id", "num")
	}
}

func TestFirstOfNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeBalancedGrammar(t)
	checkSet(t, "FIRST(S)", g.First("S"), "(", Epsilon)
	if !g.Nullable("S") {
		t.Errorf("expected S to be nullable")
	}
	checkSet(t, "FIRST(S ))", g.FirstOfString([]Symbol{"S", ")"}), "(", ")")
	checkSet(t, "FIRST(S S)", g.FirstOfString([]Symbol{"S", "S"}), "(", Epsilon)
}

func TestFirstOfMutualRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Mutual")
	b.AddProduction("A", "B", "a")
	b.AddProduction("B", "A", "b")
	b.AddProduction("B", "ε")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	checkSet(t, "FIRST(A)", g.First("A"), "a")
	checkSet(t, "FIRST(B)", g.First("B"), "a", Epsilon)
}

func TestFirstOfString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeGrammarCC(t)
	checkSet(t, "FIRST()", g.FirstOfString(nil), Epsilon)
	checkSet(t, "FIRST(#)", g.FirstOfString([]Symbol{EOF}), EOF)
	checkSet(t, "FIRST(C #)", g.FirstOfString([]Symbol{"C", EOF}), "c", "d")
	b := makeBalancedGrammar(t)
	checkSet(t, "FIRST(S #)", b.FirstOfString([]Symbol{"S", EOF}), "(", EOF)
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrone.lr")
	defer teardown()
	//
	g := makeArithmeticGrammar(t)
	checkSet(t, "FOLLOW(E)", g.Follow("E"), EOF, "+", ")")
	checkSet(t, "FOLLOW(T)", g.Follow("T"), EOF, "+", "*", ")")
	checkSet(t, "FOLLOW(F)", g.Follow("F"), EOF, "+", "*", ")")
	checkSet(t, "FOLLOW(id)", g.Follow("id"))
}
