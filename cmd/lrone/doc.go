/*
Command lrone is a workbench for canonical LR(1) parsing. It builds the
LR(1) collection and the ACTION/GOTO tables for a grammar, reports table
conflicts, and runs the table-driven parser on sample input, showing the
step trace and the derivation tree.

Grammars are either taken from the built-in catalogue (flag --grammar) or
read from a file in the notation of package grammars (flag --file):

	S → C C
	C → c C | d

Subcommands are

	lrone grammars            list the grammar catalogue
	lrone tables              print FIRST/FOLLOW sets, the CFSM and the tables
	lrone parse [input]       parse input, print the trace and the tree
	lrone dot                 export the CFSM in Graphviz DOT format
	lrone repl                interactive mode

Every flag may be given as an environment variable with prefix LRONE_,
e.g. LRONE_GRAMMAR=arith.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrone.cmd'
func tracer() tracing.Trace {
	return tracing.Select("lrone.cmd")
}
