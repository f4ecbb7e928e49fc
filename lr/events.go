package lr

// EventKind classifies construction events.
type EventKind uint8

// Events emitted during table construction.
const (
	ClosureComputed EventKind = iota + 1
	StateAdded
	StateReused
	TransitionAdded
	ActionWritten
	GotoWritten
	ConflictDetected
)

var eventNames = [...]string{"?", "closure", "state-added", "state-reused",
	"transition", "action", "goto", "conflict"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return eventNames[0]
}

// Event describes a step of table construction. Fields not applicable to an
// event kind are zero.
type Event struct {
	Kind     EventKind
	State    int       // state concerned, or source state of a transition
	Target   int       // target state of a transition or goto
	Symbol   Symbol    // transition or table column symbol
	Items    int       // size of a computed closure
	Action   Action    // written action
	Conflict *Conflict // for ConflictDetected
}

// EventSink receives construction events. Sinks are called synchronously
// from the goroutine constructing the tables.
type EventSink func(Event)

func noEvents(Event) {}
