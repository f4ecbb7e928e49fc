package grammars

import (
	"github.com/lrone/lrone/lr"
)

// Example is a predefined grammar together with a sample input.
type Example struct {
	Number      int
	Name        string
	Description string
	Notation    string
	Input       string
}

// Build parses the grammar of an example.
func (ex Example) Build() (*lr.Grammar, error) {
	return Parse(ex.Name, ex.Notation)
}

var catalogue = []Example{
	{1, "cc", "S → CC, C → cC | d", `
		S → C C
		C → c C | d`,
		"ccdccd"},
	{2, "lsr", "S → L=S | R, L → aLR | b, R → a", `
		S → L = S | R
		L → a L R | b
		R → a`,
		"aba=b=a"},
	{3, "alb", "S → aLb | a, L → aR, R → LR | b", `
		S → a L b | a
		L → a R
		R → L R | b`,
		"aaabbb"},
	{4, "llr", "S → L=LR | R, L → aR | b, R → L", `
		S → L = L R | R
		L → a R | b
		R → L`,
		"b=abab"},
	{5, "list", "S → (L) | a, L → L,S | S", `
		S → ( L ) | a
		L → L , S | S`,
		"((a),a)"},
	{6, "balanced", "S → (S)S | ε", `
		S → ( S ) S | ε`,
		"()()"},
	{7, "assign", "simple assignment: S → id=E;", `
		S → id = E ;
		E → E + T | T
		T → T * F | F
		F → ( E ) | id | num`,
		"result = value + factor * 5;"},
	{8, "if", "if statement: S → if(E)S | id=E; | {SL}", `
		S → if ( E ) S | id = E ; | { SL }
		SL → S | S SL
		E → E == T | T
		T → id | num`,
		"if (count == 10) {\n    result = success;\n}"},
	{9, "decl", "variable declaration: S → T id; | T id=E;", `
		S → T id ; | T id = E ;
		T → int | float | char
		E → id | num`,
		"int counter = 0;"},
	{10, "while", "while loop: S → while(E)S | id=E; | {SL}", `
		S → while ( E ) S | id = E ; | { SL }
		SL → S | S SL
		E → E < T | T
		T → T + F | F
		F → id | num`,
		"while (i < 10) {\n    i = i + 1;\n}"},
	{11, "arith", "arithmetic: E → E+T | E-T | T, T → T*F | T/F | F, F → (E) | id | num", `
		E → E + T | E - T | T
		T → T * F | T / F | F
		F → ( E ) | id | num`,
		"(a + b) * c / (d - 2)"},
	{12, "dangling-else", "ambiguous if-then-else (not LR(1))", `
		S → if E then S | if E then S else S | a
		E → b`,
		"if b then if b then a else a"},
}

// Catalogue returns all predefined grammars, in order.
func Catalogue() []Example {
	return append([]Example(nil), catalogue...)
}

// Find returns a predefined grammar by name.
func Find(name string) (Example, bool) {
	for _, ex := range catalogue {
		if ex.Name == name {
			return ex, true
		}
	}
	return Example{}, false
}
