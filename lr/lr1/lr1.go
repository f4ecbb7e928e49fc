package lr1

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lrone/lrone"
	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/scanner"
	"github.com/lrone/lrone/lr/scanner/lexmach"
	"golang.org/x/exp/slices"
)

// Parser is an LR(1)-parser type. Create and initialize one with lr1.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	gotoT   *lr.GotoTable   // GOTO table
	actionT *lr.ActionTable // ACTION table
	lexOnce sync.Once
	lexer   *lexmach.LMAdapter
	lexErr  error
}

// NewParser creates an LR(1) parser. The table generator must have created
// its tables.
func NewParser(lrgen *lr.TableGenerator) (*Parser, error) {
	if lrgen == nil || lrgen.ActionTable() == nil || lrgen.GotoTable() == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return nil, lr.ErrNoTables
	}
	return &Parser{
		G:       lrgen.Grammar(),
		gotoT:   lrgen.GotoTable(),
		actionT: lrgen.ActionTable(),
	}, nil
}

// Parse starts a new parse, given a scanner tokenizing the input. The input
// consists of the tokens up to the first end-of-input token.
//
// Parse returns an error if the tokenizer reports errors, or if the parser
// tables turn out to be inconsistent. Syntax errors are reported by the
// result's verdict.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	var scanErrors []error
	scan.SetErrorHandler(func(e error) {
		scanErrors = append(scanErrors, e)
	})
	tokens := make([]lrone.Token, 0, 64)
	for {
		token := scan.NextToken()
		tokens = append(tokens, token)
		if token.Terminal() == string(lr.EOF) {
			break
		}
	}
	if len(scanErrors) > 0 {
		err := fmt.Errorf("%w: %v", ErrTokenizer, errors.Join(scanErrors...))
		tracer().Errorf("%v", err)
		return nil, err
	}
	return p.parse(tokens)
}

// ParseSymbols parses a pre-tokenized input, given as a sequence of terminal
// names. A trailing "#" is accepted and not duplicated; end-of-input
// anywhere else is an error.
func (p *Parser) ParseSymbols(terminals []string) (*Result, error) {
	if n := len(terminals); n > 0 && terminals[n-1] == string(lr.EOF) {
		terminals = terminals[:n-1]
	}
	if slices.Contains(terminals, string(lr.EOF)) {
		return nil, fmt.Errorf("%w: end-of-input %q within input", ErrTokenizer, lr.EOF)
	}
	return p.Parse(scanner.FromTerminals(terminals))
}

// ParseString parses an input string, tokenized by a longest-match tokenizer
// over the terminals of the parser's grammar (see package lexmach).
func (p *Parser) ParseString(input string) (*Result, error) {
	p.lexOnce.Do(func() {
		p.lexer, p.lexErr = lexmach.ForGrammar(p.G)
	})
	if p.lexErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizer, p.lexErr)
	}
	scan, err := p.lexer.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenizer, err)
	}
	return p.Parse(scan)
}

// parse runs the stack machine over a sequence of tokens ending with #.
func (p *Parser) parse(tokens []lrone.Token) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	input := make([]lr.Symbol, len(tokens))
	for i, t := range tokens {
		input[i] = lr.Symbol(t.Terminal())
	}
	res := &Result{Tokens: tokens, ErrorState: -1}
	states := []int{0}
	symbols := []lr.Symbol{lr.EOF}
	step := func(action lr.Action, label string, rule *lr.Production, pos int) {
		res.Steps = append(res.Steps, Step{
			States:  slices.Clone(states),
			Symbols: slices.Clone(symbols),
			Input:   slices.Clone(input[pos:]),
			Action:  action,
			Label:   label,
			Rule:    rule,
		})
	}
	pos := 0
	for pos < len(input) {
		state := states[len(states)-1] // TOS
		a := input[pos]
		action, ok := p.actionT.Lookup(state, a)
		tracer().Debugf("action(%d,%s) = %v", state, a, action)
		if !ok {
			res.ErrorState, res.ErrorToken, res.errorAt = state, a, pos
			if a == lr.EOF {
				res.Verdict = UnexpectedEnd
				res.Message = fmt.Sprintf("unexpected end of input in state %d", state)
			} else {
				res.Verdict = SyntaxError
				res.Message = fmt.Sprintf("syntax error in state %d at %q (%s)", state, a,
					tokens[pos].Span())
			}
			tracer().Infof("%s", res.Message)
			return res, nil
		}
		switch action.Kind {
		case lr.ShiftAction:
			states = append(states, action.Target)
			symbols = append(symbols, a)
			step(action, "shift "+string(a), nil, pos)
			pos++
		case lr.ReduceAction:
			rule := p.G.Rule(action.Target)
			if rule == nil || rule.Len() >= len(states) {
				return res, fmt.Errorf("%w: cannot reduce by rule %d in state %d",
					lr.ErrInconsistentTables, action.Target, state)
			}
			states = states[:len(states)-rule.Len()]
			symbols = symbols[:len(symbols)-rule.Len()]
			from := states[len(states)-1]
			next, ok := p.gotoT.Lookup(from, rule.LHS)
			if !ok {
				tracer().Errorf("no GOTO entry for state %d and %s", from, rule.LHS)
				return res, fmt.Errorf("%w: no GOTO entry for state %d and %s",
					lr.ErrInconsistentTables, from, rule.LHS)
			}
			states = append(states, next)
			symbols = append(symbols, rule.LHS)
			step(action, "reduce "+rule.String(), rule, pos)
		case lr.AcceptAction:
			step(action, "accept", nil, pos)
			res.Accepted = true
			res.Verdict = Accepted
			res.Message = fmt.Sprintf("input accepted after %d steps", len(res.Steps))
			tracer().Infof("%s", res.Message)
			return res, nil
		}
	}
	res.Verdict = UnexpectedEnd
	res.ErrorState = states[len(states)-1]
	res.ErrorToken = lr.EOF
	res.errorAt = len(tokens) - 1
	res.Message = "input exhausted without accepting"
	return res, nil
}

// ErrTokenizer is returned if the input cannot be tokenized.
var ErrTokenizer = errors.New("tokenizer error")

// --- Results ---------------------------------------------------------------

// Verdict is the outcome of a parse.
type Verdict uint8

// Outcomes of parses.
const (
	Accepted      Verdict = iota + 1
	SyntaxError           // no action for a state and a lookahead
	UnexpectedEnd         // end of input without accepting
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case SyntaxError:
		return "syntax error"
	case UnexpectedEnd:
		return "unexpected end of input"
	}
	return "<none>"
}

// Step is a snapshot of the parser after an action. Input holds the remaining
// input at the time the action has been chosen, starting with the lookahead.
type Step struct {
	States  []int
	Symbols []lr.Symbol
	Input   []lr.Symbol
	Action  lr.Action
	Label   string
	Rule    *lr.Production // production of reduce steps
}

func (s Step) String() string {
	return fmt.Sprintf("%v | %v | %v | %s", s.States, s.Symbols, s.Input, s.Label)
}

// Result is the outcome of a parse, including the step trace.
type Result struct {
	Accepted   bool
	Verdict    Verdict
	Message    string
	Steps      []Step
	ErrorState int           // state without an action for ErrorToken, or -1
	ErrorToken lr.Symbol     // offending lookahead
	Tokens     []lrone.Token // input tokens, ending with #
	errorAt    int
}

// Err returns a *ParseError for failed parses, and nil otherwise.
func (r *Result) Err() error {
	if r == nil || r.Accepted {
		return nil
	}
	e := &ParseError{Verdict: r.Verdict, State: r.ErrorState, Token: r.ErrorToken, Message: r.Message}
	if r.errorAt >= 0 && r.errorAt < len(r.Tokens) {
		e.Span = r.Tokens[r.errorAt].Span()
	}
	return e
}

// Trace renders the steps, one per line.
func (r *Result) Trace() string {
	var b strings.Builder
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "%3d: %v\n", i+1, s)
	}
	return b.String()
}

// ParseError describes a failed parse.
type ParseError struct {
	Verdict Verdict
	State   int
	Token   lr.Symbol
	Span    lrone.Span
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
