/*
Package lr1 provides a canonical LR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface, and records every step it takes.

The main focus for this implementation is traceability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. The step trace
of a parse may be replayed to build a derivation tree, see package parsetree.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("id").End()  // Var  --> Sign id
	b.LHS("Sign").T("+").End()            // Sign --> +
	b.LHS("Sign").T("-").End()            // Sign --> -
	b.LHS("Sign").Epsilon()               // Sign -->
	g, err := b.Grammar()

This grammar is subjected to table generation.

	lrgen := lr.NewTableGenerator(g)
	if err := lrgen.CreateTables(); err != nil { ... }
	if lrgen.HasConflicts() { ... }  // the grammar is not LR(1)

Finally parse some input:

	p, err := lr1.NewParser(lrgen)
	result, err := p.ParseString("+ a")
	if result.Accepted { ... }

A failed parse is not an error: the result carries the verdict, a diagnostic
message and the trace up to the failure. Errors are returned for
tokenization failures and for inconsistent parser tables only.

Parsers do not hold any parse state. A single parser may be used by any
number of goroutines concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lrone.parser")
}
