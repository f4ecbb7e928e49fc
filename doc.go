/*
Package lrone is a canonical LR(1) toolbox.

It constructs the canonical collection of LR(1) item sets for a grammar,
derives ACTION and GOTO tables from it and runs a shift-reduce parser which
records a replayable trace of every step. Package structure is
as follows:

■ lr: Package lr implements the grammar model, FIRST/FOLLOW analysis, LR(1)
items, the closure engine and the table builder, including conflict reporting.

■ lr/lr1: Package lr1 implements the parse driver producing step traces.

■ lr/parsetree: Package parsetree replays a successful trace into a derivation tree.

■ lr/scanner: Package scanner defines the tokenizer interface; lr/scanner/lexmach
implements a longest-match tokenizer over a grammar's terminal vocabulary.

■ lr/grammars: Package grammars parses a compact grammar notation and holds a
catalogue of example grammars.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrone
