package lr

import (
	"fmt"

	"github.com/lrone/lrone/lr/sparse"
)

// === Parser actions ========================================================

// ActionKind is the kind of an ACTION-table entry.
type ActionKind uint8

// Kinds of parser actions.
const (
	ShiftAction ActionKind = iota + 1
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "<none>"
}

// Action is an entry of the ACTION table. For shift actions, Target is the
// state to push; for reduce actions it is the production number.
type Action struct {
	Kind   ActionKind
	Target int
}

// Shift creates a shift action to state s.
func Shift(s int) Action {
	return Action{Kind: ShiftAction, Target: s}
}

// Reduce creates an action to reduce by production p.
func Reduce(p int) Action {
	return Action{Kind: ReduceAction, Target: p}
}

// Accept creates the accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// String renders actions as S<state>, R<production> or ACC.
func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("S%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("R%d", a.Target)
	case AcceptAction:
		return "ACC"
	}
	return "-"
}

// Actions are stored in a sparse matrix as int32:
//
//	accept     ⇒  0
//	reduce p   ⇒  p      (p ≥ 1)
//	shift s    ⇒  -(s+1)
func (a Action) encode() int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(-(a.Target + 1))
	case ReduceAction:
		return int32(a.Target)
	}
	return 0
}

func decodeAction(v int32) Action {
	switch {
	case v == 0:
		return Accept()
	case v > 0:
		return Reduce(int(v))
	}
	return Shift(int(-v) - 1)
}

// === Tables ================================================================

// symbolColumns maps symbols to matrix columns.
type symbolColumns struct {
	symbols []Symbol
	column  map[Symbol]int
}

func newSymbolColumns(symbols []Symbol) symbolColumns {
	sc := symbolColumns{symbols: symbols, column: make(map[Symbol]int, len(symbols))}
	for j, A := range symbols {
		sc.column[A] = j
	}
	return sc
}

// ActionTable maps (state, terminal) to a parser action. It is immutable
// once built and safe for concurrent lookups.
type ActionTable struct {
	matrix *sparse.IntMatrix
	symbolColumns
}

func newActionTable(g *Grammar, states int) *ActionTable {
	T := g.Terminals()
	return &ActionTable{
		matrix:        sparse.NewIntMatrix(states, len(T), sparse.DefaultNullValue),
		symbolColumns: newSymbolColumns(T),
	}
}

// Lookup returns the action for a state and a terminal. If no action is
// defined, false is returned.
func (t *ActionTable) Lookup(state int, a Symbol) (Action, bool) {
	j, ok := t.column[a]
	if !ok || state < 0 || state >= t.matrix.M() {
		return Action{}, false
	}
	v := t.matrix.Value(state, j)
	if v == t.matrix.NullValue() {
		return Action{}, false
	}
	return decodeAction(v), true
}

// Alternative returns the action which lost a conflict at (state, a), if any.
func (t *ActionTable) Alternative(state int, a Symbol) (Action, bool) {
	j, ok := t.column[a]
	if !ok || state < 0 || state >= t.matrix.M() {
		return Action{}, false
	}
	_, v := t.matrix.Values(state, j)
	if v == t.matrix.NullValue() {
		return Action{}, false
	}
	return decodeAction(v), true
}

// Each calls f for every defined entry, ordered by state and terminal.
func (t *ActionTable) Each(f func(state int, a Symbol, action Action)) {
	t.matrix.Each(func(i, j int, v, _ int32) {
		f(i, t.symbols[j], decodeAction(v))
	})
}

// Symbols returns the column symbols, i.e. the terminals including #.
func (t *ActionTable) Symbols() []Symbol {
	return t.symbols
}

// Size returns the number of entries.
func (t *ActionTable) Size() int {
	return t.matrix.ValueCount()
}

func (t *ActionTable) write(state int, a Symbol, action Action) {
	t.matrix.Set(state, t.column[a], action.encode())
}

func (t *ActionTable) writeConflict(state int, a Symbol, kept, rejected Action) {
	t.matrix.SetPair(state, t.column[a], kept.encode(), rejected.encode())
}

// GotoTable maps (state, non-terminal) to a state. It is immutable once
// built and safe for concurrent lookups.
type GotoTable struct {
	matrix *sparse.IntMatrix
	symbolColumns
}

func newGotoTable(g *Grammar, states int) *GotoTable {
	N := g.NonTerminals()
	return &GotoTable{
		matrix:        sparse.NewIntMatrix(states, len(N), sparse.DefaultNullValue),
		symbolColumns: newSymbolColumns(N),
	}
}

// Lookup returns the target state for a state and a non-terminal.
func (t *GotoTable) Lookup(state int, A Symbol) (int, bool) {
	j, ok := t.column[A]
	if !ok || state < 0 || state >= t.matrix.M() {
		return 0, false
	}
	v := t.matrix.Value(state, j)
	if v == t.matrix.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Each calls f for every defined entry, ordered by state and non-terminal.
func (t *GotoTable) Each(f func(state int, A Symbol, target int)) {
	t.matrix.Each(func(i, j int, v, _ int32) {
		f(i, t.symbols[j], int(v))
	})
}

// Symbols returns the column symbols, i.e. the non-terminals.
func (t *GotoTable) Symbols() []Symbol {
	return t.symbols
}

// Size returns the number of entries.
func (t *GotoTable) Size() int {
	return t.matrix.ValueCount()
}

func (t *GotoTable) set(state int, A Symbol, target int) {
	t.matrix.Set(state, t.column[A], int32(target))
}
