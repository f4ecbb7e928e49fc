package lr

import "fmt"

// ConflictKind tells shift/reduce from reduce/reduce conflicts.
type ConflictKind uint8

// Kinds of conflicts.
const (
	ShiftReduce ConflictKind = iota + 1
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict is recorded whenever two different actions compete for the
// same ACTION-table cell.
type Conflict struct {
	State    int
	Symbol   Symbol
	Kind     ConflictKind
	Existing Action // the action written first
	Incoming Action // the competing action
	Kept     Action // the action left in the table
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %q: %v vs %v, kept %v",
		c.Kind, c.State, c.Symbol, c.Existing, c.Incoming, c.Kept)
}

// ConflictStrategy decides which action of a conflict stays in the table.
type ConflictStrategy uint8

const (
	// KeepFirst keeps the action written first. This is the default.
	KeepFirst ConflictStrategy = iota
	// PreferShift resolves shift/reduce conflicts in favour of shifting and
	// reduce/reduce conflicts in favour of the lower production number.
	PreferShift
)

func conflictKind(a1, a2 Action) ConflictKind {
	if a1.Kind == ShiftAction || a2.Kind == ShiftAction {
		return ShiftReduce
	}
	return ReduceReduce
}

// resolve returns the action to keep and the one to reject.
func (strategy ConflictStrategy) resolve(c Conflict) (Action, Action) {
	if strategy == PreferShift {
		switch {
		case c.Kind == ShiftReduce && c.Incoming.Kind == ShiftAction:
			return c.Incoming, c.Existing
		case c.Kind == ReduceReduce && reduceTarget(c.Incoming) < reduceTarget(c.Existing):
			return c.Incoming, c.Existing
		}
	}
	return c.Existing, c.Incoming
}

// accept reduces by the start rule, which is production 0.
func reduceTarget(a Action) int {
	if a.Kind == AcceptAction {
		return 0
	}
	return a.Target
}
