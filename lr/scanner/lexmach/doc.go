/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of package lr.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The simplest way to get a tokenizer is to derive it from the terminal
vocabulary of a grammar:

	LM, err := lexmach.ForGrammar(g)
	scan, err := LM.Scanner("id + num * ( x )")

ForGrammar creates a longest-match tokenizer. Every terminal of the grammar
matches its own spelling. If the grammar has a terminal `id`, identifiers
matching [a-zA-Z_][a-zA-Z0-9_]* are reported as `id`, unless they spell a
terminal of the grammar (i.e., a keyword). If the grammar has a terminal
`num`, digit sequences are reported as `num`. White space is skipped, and
input not matching any terminal is reported to the scanner's error handler
and skipped.

Clients needing other token classes may set up lexmachine themselves,
providing literals, keywords and regular expressions:

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   token for a grammar terminal
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed. Literals and
keywords take precedence over the patterns added by init for matches of
equal length.

	LM, err := NewLMAdapter(init, literals, keywords)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

On the parser side tokens are read until EOF.

	for … { // feed token into parser
		token := scan.NextToken()
		if token.Terminal() != "#" {
			…
		}
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
