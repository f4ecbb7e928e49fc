package lr

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"golang.org/x/exp/slices"
)

// Errors of table construction.
var (
	ErrClosureLimit       = errors.New("closure did not converge")
	ErrInconsistentTables = errors.New("inconsistent parser tables")
	ErrNoTables           = errors.New("parser tables not yet created")
)

// DefaultClosureLimit is the default maximum number of passes over an item
// set when computing its closure.
const DefaultClosureLimit = 10000

// === Closure and Goto-Set Operations =======================================

// closure extends an item set until, for every item [A → α • B β, a] and
// every rule B → γ, it contains [B → • γ, b] for all b in FIRST(β a).
func (lrgen *TableGenerator) closure(iset *ItemSet) (*ItemSet, error) {
	G := lrgen.g
	C := iset.Copy()
	for pass := 0; ; pass++ {
		if pass >= lrgen.closureLimit {
			tracer().Errorf("closure of %d items exceeds %d passes", C.Size(), lrgen.closureLimit)
			return nil, fmt.Errorf("%w after %d passes", ErrClosureLimit, lrgen.closureLimit)
		}
		changed := false
		for _, i := range C.Items() {
			B, ok := i.PeekSymbol()
			if !ok || !G.IsNonTerminal(B) {
				continue
			}
			beta := append(slices.Clone(i.Rest()), i.la)
			lookaheads := G.FirstOfString(beta).Symbols()
			for _, r := range G.FindNonTermRules(B) {
				for _, b := range lookaheads {
					if C.Add(Item{rule: r, dot: 0, la: b}) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	lrgen.sink(Event{Kind: ClosureComputed, Items: C.Size()})
	return C, nil
}

// gotoSet advances the dot over A for all items of iset which expect A, and
// returns the closure of the result. The result is empty if no item expects A.
func (lrgen *TableGenerator) gotoSet(iset *ItemSet, A Symbol) (*ItemSet, error) {
	G := newItemSet()
	for _, i := range iset.Items() {
		if B, ok := i.PeekSymbol(); ok && B == A {
			G.Add(i.Advance())
		}
	}
	if G.Empty() {
		return G, nil
	}
	return lrgen.closure(G)
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	items  *ItemSet // configuration items within this state
	Accept bool     // does this state contain [S' → S •, #]?
}

// Items returns the LR(1) items of the state.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items.Items() {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.IsReduceReady() {
			return true
		}
	}
	return false
}

// EdgeKind tells transitions on terminals from transitions on non-terminals.
type EdgeKind uint8

// Kinds of CFSM transitions.
const (
	ShiftEdge EdgeKind = iota + 1
	GotoEdge
)

// CFSM edge between 2 states, directed and labeled with a symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label Symbol
	kind  EdgeKind
}

// Transition is an exported view of a CFSM edge.
type Transition struct {
	From, To int
	Symbol   Symbol
	Kind     EdgeKind
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// canonical collection of LR(1) item sets. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g      *Grammar                // this CFSM is for Grammar g
	states *arraylist.List         // all the states, indexed by ID
	edges  *arraylist.List         // all the edges between states
	index  map[string][]*CFSMState // states by item set key
	out    map[int][]*cfsmEdge     // outgoing edges per state
	S0     *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: arraylist.New(),
		edges:  arraylist.New(),
		index:  make(map[string][]*CFSMState),
		out:    make(map[int][]*cfsmEdge),
	}
}

// StateCount returns the number of states.
func (c *CFSM) StateCount() int {
	return c.states.Size()
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	x, ok := c.states.Get(id)
	if !ok {
		return nil
	}
	return x.(*CFSMState)
}

// Transitions returns all edges in order of creation.
func (c *CFSM) Transitions() []Transition {
	T := make([]Transition, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		T = append(T, Transition{From: e.from.ID, To: e.to.ID, Symbol: e.label, Kind: e.kind})
	}
	return T
}

// addState adds a state for an item set to the CFSM, if no state with an
// equal item set exists. It returns the state and a flag telling if it is new.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	key := iset.Key()
	for _, s := range c.index[key] {
		if s.items.Equals(iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: c.states.Size(), items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.index[key] = append(c.index[key], s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym, kind: GotoEdge}
	if c.g.IsTerminal(sym) {
		e.kind = ShiftEdge
	}
	c.edges.Add(e)
	c.out[s0.ID] = append(c.out[s0.ID], e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	return c.out[s.ID]
}

// === Table Generator =======================================================

// Option configures a TableGenerator.
type Option func(*TableGenerator)

// WithEventSink sets a receiver for construction events.
func WithEventSink(sink EventSink) Option {
	return func(lrgen *TableGenerator) {
		if sink != nil {
			lrgen.sink = sink
		}
	}
}

// ClosureLimit sets the maximum number of passes for a closure computation.
func ClosureLimit(n int) Option {
	return func(lrgen *TableGenerator) {
		if n > 0 {
			lrgen.closureLimit = n
		}
	}
}

// WithConflictStrategy sets the strategy for resolving table conflicts.
func WithConflictStrategy(strategy ConflictStrategy) Option {
	return func(lrgen *TableGenerator) {
		lrgen.strategy = strategy
	}
}

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for an
// LR(1)-parser recognizing grammar G.
//
// After CreateTables returns, the generator is immutable and may be shared
// between parsers running concurrently.
type TableGenerator struct {
	g            *Grammar
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	strategy     ConflictStrategy
	closureLimit int
	sink         EventSink
	created      bool
	err          error
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *Grammar, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{
		g:            g,
		closureLimit: DefaultClosureLimit,
		sink:         noEvents,
	}
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// Grammar returns the grammar tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		tracer().P("lr", "gen").Errorf("CFSM not yet created")
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// HasConflicts is a predicate: did table construction encounter conflicts?
func (lrgen *TableGenerator) HasConflicts() bool {
	return len(lrgen.conflicts) > 0
}

// Conflicts returns all conflicts in order of detection.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables builds the CFSM and the parser tables. Tables are created
// once; calling CreateTables again returns the result of the first call.
// A grammar with conflicts is not an error: the tables are usable and
// conflicts are available from Conflicts().
func (lrgen *TableGenerator) CreateTables() error {
	if lrgen.created {
		return lrgen.err
	}
	lrgen.created = true
	if lrgen.g == nil {
		lrgen.err = fmt.Errorf("%w: no grammar", ErrNoTables)
		return lrgen.err
	}
	dfa, err := lrgen.buildCFSM()
	if err != nil {
		lrgen.err = err
		return err
	}
	lrgen.dfa = dfa
	lrgen.buildTables()
	tracer().Infof("%s: %d states, %d actions, %d gotos, %d conflicts", lrgen.g.Name,
		dfa.StateCount(), lrgen.actiontable.Size(), lrgen.gototable.Size(), len(lrgen.conflicts))
	return nil
}

// AcceptingStates returns all states of the CFSM which have an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]int, 0, 1)
	for _, x := range lrgen.dfa.states.Values() {
		if state := x.(*CFSMState); state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are processed in order of creation. For each state, the symbols
// after the dot are visited in lexical order, which makes state numbering
// deterministic.
func (lrgen *TableGenerator) buildCFSM() (*CFSM, error) {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0, err := lrgen.closure(newItemSet(StartItem(G)))
	if err != nil {
		return nil, err
	}
	cfsm.S0, _ = cfsm.addState(closure0)
	lrgen.sink(Event{Kind: StateAdded, State: cfsm.S0.ID, Items: closure0.Size()})
	for n := 0; n < cfsm.StateCount(); n++ {
		s := cfsm.State(n)
		for _, A := range s.items.pendingSymbols() {
			gotoset, err := lrgen.gotoSet(s.items, A)
			if err != nil {
				return nil, err
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				lrgen.sink(Event{Kind: StateAdded, State: snew.ID, Symbol: A, Items: gotoset.Size()})
			} else {
				lrgen.sink(Event{Kind: StateReused, State: snew.ID, Symbol: A})
			}
			cfsm.addEdge(s, snew, A)
			lrgen.sink(Event{Kind: TransitionAdded, State: s.ID, Target: snew.ID, Symbol: A})
		}
	}
	tracer().Debugf("CFSM has %d states", cfsm.StateCount())
	return cfsm, nil
}

// buildTables fills the ACTION and GOTO tables from the CFSM. For every
// state, shift and goto entries are written before reduce entries.
func (lrgen *TableGenerator) buildTables() {
	G := lrgen.g
	n := lrgen.dfa.StateCount()
	lrgen.actiontable = newActionTable(G, n)
	lrgen.gototable = newGotoTable(G, n)
	for id := 0; id < n; id++ {
		state := lrgen.dfa.State(id)
		for _, e := range lrgen.dfa.allEdges(state) {
			if e.kind == ShiftEdge {
				lrgen.writeAction(state.ID, e.label, Shift(e.to.ID))
			} else {
				lrgen.gototable.set(state.ID, e.label, e.to.ID)
				lrgen.sink(Event{Kind: GotoWritten, State: state.ID, Symbol: e.label, Target: e.to.ID})
			}
		}
		for _, i := range state.items.Items() {
			if !i.IsReduceReady() {
				continue
			}
			if i.rule.Serial == 0 {
				lrgen.writeAction(state.ID, EOF, Accept())
				continue
			}
			_, p := G.matchesRHS(i.rule.LHS, i.rule.rhs)
			lrgen.writeAction(state.ID, i.la, Reduce(p))
		}
	}
}

// writeAction writes an action to the ACTION table. If the cell holds a
// different action already, a conflict is recorded and the strategy decides
// which action stays.
func (lrgen *TableGenerator) writeAction(state int, a Symbol, action Action) {
	existing, ok := lrgen.actiontable.Lookup(state, a)
	if !ok {
		lrgen.actiontable.write(state, a, action)
		lrgen.sink(Event{Kind: ActionWritten, State: state, Symbol: a, Action: action})
		return
	}
	if existing == action {
		return
	}
	c := Conflict{
		State:    state,
		Symbol:   a,
		Kind:     conflictKind(existing, action),
		Existing: existing,
		Incoming: action,
	}
	kept, rejected := lrgen.strategy.resolve(c)
	c.Kept = kept
	lrgen.actiontable.writeConflict(state, a, kept, rejected)
	lrgen.conflicts = append(lrgen.conflicts, c)
	tracer().Infof("%v", c)
	lrgen.sink(Event{Kind: ConflictDetected, State: state, Symbol: a, Action: kept, Conflict: &c})
}
