package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// === Items =================================================================

// Item is an LR(1) item: a production with a dot position and a lookahead
// terminal. Items are values and may be compared with ==.
type Item struct {
	rule *Production
	dot  int
	la   Symbol
}

// StartItem returns the item [S' → • S, #] of a grammar.
func StartItem(g *Grammar) Item {
	return Item{rule: g.rules[0], dot: 0, la: EOF}
}

// Rule returns the production of an item.
func (i Item) Rule() *Production {
	return i.rule
}

// Dot returns the dot position, 0 ≤ dot ≤ |rhs|.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal.
func (i Item) Lookahead() Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot. If the dot is at the end of
// the production, false is returned.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.dot >= len(i.rule.rhs) {
		return "", false
	}
	return i.rule.rhs[i.dot], true
}

// Advance returns a new item with the dot moved one symbol to the right.
// It panics on reduce-ready items.
func (i Item) Advance() Item {
	if i.IsReduceReady() {
		panic(fmt.Sprintf("cannot advance item %v", i))
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Rest returns the symbols following the symbol after the dot.
func (i Item) Rest() []Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

// IsReduceReady is a predicate: is the dot at the end of the production?
func (i Item) IsReduceReady() bool {
	return i.dot >= len(i.rule.rhs)
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(i.rule.LHS))
	b.WriteString(" →")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(string(A))
	}
	if i.IsReduceReady() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(string(i.la))
	b.WriteString("]")
	return b.String()
}

func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(Item), i2.(Item)
	switch {
	case a.rule.Serial != b.rule.Serial:
		return a.rule.Serial - b.rule.Serial
	case a.dot != b.dot:
		return a.dot - b.dot
	case a.la < b.la:
		return -1
	case a.la > b.la:
		return 1
	}
	return 0
}

// === Item sets =============================================================

// ItemSet is a set of items, ordered by rule, dot position and lookahead.
type ItemSet struct {
	items *treeset.Set
}

func newItemSet(items ...Item) *ItemSet {
	iset := &ItemSet{items: treeset.NewWith(itemComparator)}
	for _, i := range items {
		iset.items.Add(i)
	}
	return iset
}

// Add adds an item and returns true if it has not been in the set before.
func (iset *ItemSet) Add(i Item) bool {
	if iset.items.Contains(i) {
		return false
	}
	iset.items.Add(i)
	return true
}

// Contains is a predicate for set membership.
func (iset *ItemSet) Contains(i Item) bool {
	return iset.items.Contains(i)
}

// Size returns the number of items.
func (iset *ItemSet) Size() int {
	return iset.items.Size()
}

// Empty is a predicate.
func (iset *ItemSet) Empty() bool {
	return iset.items.Empty()
}

// Items returns the items in order.
func (iset *ItemSet) Items() []Item {
	items := make([]Item, 0, iset.items.Size())
	for _, x := range iset.items.Values() {
		items = append(items, x.(Item))
	}
	return items
}

// Copy returns a new item set with the same items.
func (iset *ItemSet) Copy() *ItemSet {
	return newItemSet(iset.Items()...)
}

// Equals compares two item sets by content.
func (iset *ItemSet) Equals(other *ItemSet) bool {
	if iset.Size() != other.Size() {
		return false
	}
	it1, it2 := iset.items.Iterator(), other.items.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

type itemKey struct {
	Rule int    `hash:"name:r"`
	Dot  int    `hash:"name:d"`
	LA   string `hash:"name:la"`
}

// Key returns a content hash of the item set. Equal sets have equal keys;
// different sets may collide and have to be compared with Equals.
func (iset *ItemSet) Key() string {
	keys := make([]itemKey, 0, iset.Size())
	for _, i := range iset.Items() {
		keys = append(keys, itemKey{Rule: i.rule.Serial, Dot: i.dot, LA: string(i.la)})
	}
	return fmt.Sprintf("%x", structhash.Md5(keys, 1))
}

func (iset *ItemSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for n, i := range iset.Items() {
		if n > 0 {
			b.WriteString(" ")
		}
		b.WriteString(i.String())
	}
	b.WriteString("}")
	return b.String()
}

// pendingSymbols returns the symbols after the dot of all items, in
// lexical order.
func (iset *ItemSet) pendingSymbols() []Symbol {
	S := newSymbolSet()
	for _, i := range iset.Items() {
		if A, ok := i.PeekSymbol(); ok {
			S.Add(A)
		}
	}
	return S.Symbols()
}
