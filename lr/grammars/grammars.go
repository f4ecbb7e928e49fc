/*
Package grammars reads grammars in a compact textual notation and provides a
catalogue of predefined grammars, each with an example input.

# Notation

Every line holds the productions for one non-terminal. Alternatives are
separated by '|', symbols by white space:

	E → E + T | E - T | T
	T → T * F | F
	F → ( E ) | id | num

'->' may be used instead of '→'. An empty alternative, 'ε' or 'eps' denote an
epsilon-production. Lines starting with '//' are comments. Symbols are
classified by lr.DefaultClassifier, i.e. symbols starting with an upper case
letter are non-terminals. The left-hand side of the first line is the start
symbol.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammars

import (
	"fmt"
	"strings"

	"github.com/lrone/lrone/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.lr")
}

var arrows = []string{"→", "->"}

// Parse reads a grammar in textual notation.
func Parse(name string, text string) (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder(name)
	for no, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lhs, rhs, err := splitRule(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", lr.ErrGrammar, name, no+1, err)
		}
		for _, alt := range strings.Split(rhs, "|") {
			syms := strings.Fields(alt)
			if len(syms) == 1 && (syms[0] == string(lr.Epsilon) || syms[0] == "eps") {
				syms = nil
			}
			b.AddProduction(lhs, syms...)
		}
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed grammar %s with %d rules", name, g.Size())
	return g, nil
}

// MustParse is like Parse, but panics on errors.
func MustParse(name string, text string) *lr.Grammar {
	g, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return g
}

func splitRule(line string) (string, string, error) {
	for _, arrow := range arrows {
		if i := strings.Index(line, arrow); i >= 0 {
			lhs := strings.TrimSpace(line[:i])
			if lhs == "" || len(strings.Fields(lhs)) != 1 {
				return "", "", fmt.Errorf("malformed left-hand side %q", lhs)
			}
			return lhs, line[i+len(arrow):], nil
		}
	}
	return "", "", fmt.Errorf("missing arrow in %q", line)
}

// Format renders the productions of a grammar in textual notation, one
// line per left-hand side, omitting the augmented start rule.
func Format(g *lr.Grammar) string {
	var b strings.Builder
	var order []lr.Symbol
	alts := make(map[lr.Symbol][]string)
	for _, r := range g.Rules()[1:] {
		if _, ok := alts[r.LHS]; !ok {
			order = append(order, r.LHS)
		}
		rhs := string(lr.Epsilon)
		if !r.IsEpsilon() {
			syms := make([]string, r.Len())
			for i, A := range r.RHS() {
				syms[i] = string(A)
			}
			rhs = strings.Join(syms, " ")
		}
		alts[r.LHS] = append(alts[r.LHS], rhs)
	}
	for _, A := range order {
		fmt.Fprintf(&b, "%s → %s\n", A, strings.Join(alts[A], " | "))
	}
	return b.String()
}
