/*
Package parsetree reconstructs derivation trees from the step trace of a
successful LR(1) parse.

The trace is replayed left to right with a stack of tree nodes. A shift
pushes a leaf for the shifted terminal. A reduce by A → X₁ … Xₙ pops n
nodes, which become the ordered children of a new node for A. Reducing
an epsilon-production creates a single ε-leaf as the only child. The accept
step ends the replay, leaving the root of the tree as the only node on the
stack.

	res, err := parser.ParseString("ccdccd")
	root, err := parsetree.FromResult(res)
	fmt.Println(root)    // S(C(c C(c C(d))) C(c C(c C(d))))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsetree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/lrone/lrone"
	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/lr1"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.tree'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.tree")
}

// ErrIncompleteTrace is returned for traces of parses which did not accept
// their input, or which are not well-formed.
var ErrIncompleteTrace = errors.New("incomplete parse trace")

// Node is a node of a derivation tree. Leaves are terminals or ε; inner nodes
// are non-terminals, with Rule being the production applied.
type Node struct {
	ID       int // nodes are numbered in order of creation
	Symbol   lr.Symbol
	Children []*Node
	Rule     *lr.Production // for inner nodes
	Token    lrone.Token    // for terminal leaves, if known
	Span     lrone.Span     // input covered, if known
}

// IsLeaf is a predicate.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEpsilon is a predicate for leaves representing the empty string.
func (n *Node) IsEpsilon() bool {
	return n.Symbol == lr.Epsilon
}

// Walk visits the tree top-down, left to right. If f returns false, the
// children of a node are skipped.
func (n *Node) Walk(f func(node *Node, depth int) bool) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int) bool, depth int) {
	if !f(n, depth) {
		return
	}
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// Leaves returns the terminal leaves, left to right. ε-leaves are skipped.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() && !node.IsEpsilon() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// String renders a tree in bracketed form, e.g. "E(T(F(id)))".
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	b.WriteString(string(n.Symbol))
	if n.IsLeaf() {
		return
	}
	b.WriteString("(")
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		ch.format(b)
	}
	b.WriteString(")")
}

// --- Reconstruction --------------------------------------------------------

// Build replays a step trace. The trace has to end with an accept step.
func Build(steps []lr1.Step) (*Node, error) {
	stack := arraystack.New()
	ids := 0
	node := func(sym lr.Symbol) *Node {
		n := &Node{ID: ids, Symbol: sym}
		ids++
		return n
	}
	for i, step := range steps {
		switch step.Action.Kind {
		case lr.ShiftAction:
			if len(step.Symbols) == 0 {
				return nil, fmt.Errorf("%w: step %d has no shifted symbol", ErrIncompleteTrace, i+1)
			}
			stack.Push(node(step.Symbols[len(step.Symbols)-1]))
		case lr.ReduceAction:
			if step.Rule == nil {
				return nil, fmt.Errorf("%w: reduce step %d without production", ErrIncompleteTrace, i+1)
			}
			n := step.Rule.Len()
			if stack.Size() < n {
				return nil, fmt.Errorf("%w: stack underflow at step %d", ErrIncompleteTrace, i+1)
			}
			children := make([]*Node, n)
			for k := n - 1; k >= 0; k-- {
				x, _ := stack.Pop()
				children[k] = x.(*Node)
			}
			if n == 0 {
				children = []*Node{node(lr.Epsilon)}
			}
			parent := node(step.Rule.LHS)
			parent.Rule = step.Rule
			parent.Children = children
			stack.Push(parent)
		case lr.AcceptAction:
			if stack.Size() != 1 {
				return nil, fmt.Errorf("%w: %d nodes left at accept", ErrIncompleteTrace, stack.Size())
			}
			root, _ := stack.Peek()
			tracer().Debugf("derivation tree with %d nodes", ids)
			return root.(*Node), nil
		}
	}
	return nil, fmt.Errorf("%w: no accept step", ErrIncompleteTrace)
}

// FromResult builds the derivation tree for a successful parse. Leaves are
// annotated with the input tokens, and every node with the input span
// it covers.
func FromResult(res *lr1.Result) (*Node, error) {
	if res == nil || !res.Accepted {
		return nil, fmt.Errorf("%w: input has not been accepted", ErrIncompleteTrace)
	}
	root, err := Build(res.Steps)
	if err != nil {
		return nil, err
	}
	leaves := root.Leaves()
	if len(leaves) > len(res.Tokens) {
		return nil, fmt.Errorf("%w: more leaves than tokens", ErrIncompleteTrace)
	}
	for i, leaf := range leaves {
		leaf.Token = res.Tokens[i]
		leaf.Span = res.Tokens[i].Span()
	}
	computeSpans(root)
	return root, nil
}

func computeSpans(n *Node) lrone.Span {
	for _, ch := range n.Children {
		n.Span = n.Span.Extend(computeSpans(ch))
	}
	return n.Span
}
