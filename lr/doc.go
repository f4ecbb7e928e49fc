/*
Package lr implements canonical LR(1) parser construction.

# Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may contain
epsilon-productions.

Example:

	b := lr.NewGrammarBuilder("G")
	b.LHS("S").N("C").N("C").End()   // S  ->  C C
	b.LHS("C").T("c").N("C").End()   // C  ->  c C
	b.LHS("C").T("d").End()          // C  ->  d
	g, err := b.Grammar()

Symbols may also be classified automatically. AddProduction uses the
grammar's classifier, which treats symbols starting with an upper case letter
as non-terminals and everything else (id, num, keywords, punctuation) as
terminals:

	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("S", "ε")        // empty right-hand side

The builder augments the grammar with a start rule S' ➞ S, which always
is rule number 0:

	g.Dump()

	0: S' → S
	1: S → C C
	2: C → c C
	3: C → d

# Static Grammar Analysis

FIRST sets (and, as a supplement, FOLLOW sets) are computed when the grammar is
finalized and are available for every symbol:

	g.First("C")                  // {c, d}
	g.FirstOfString([]lr.Symbol{"C", "#"})

# Parser Construction

Using the grammar as input, the canonical collection of LR(1) item sets is
built. This characteristic finite state machine (CFSM) is then transformed into
a GOTO table and an ACTION table. The CFSM will not be thrown away,
but is made available to the client.  This is intended
for debugging and visualization purposes.
It can be exported to Graphviz's Dot-format.

Example:

	lrgen := lr.NewTableGenerator(g)   // g is a *Grammar, see above
	if err := lrgen.CreateTables(); err != nil { … }
	if lrgen.HasConflicts() {
	    for _, c := range lrgen.Conflicts() { … }
	}

Conflicts never overwrite table entries silently. The first action written
is kept unless a client opts into a resolution strategy with
WithConflictStrategy(PreferShift).

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.lr")
}
