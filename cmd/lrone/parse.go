package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/lr1"
	"github.com/lrone/lrone/lr/parsetree"
	"github.com/lrone/lrone/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var parseFlags = struct {
	source *string
	steps  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Parse input and print the step trace and the derivation tree",
		Example: `  lrone parse -g cc "c c d d"
  lrone parse -g arith --tokenizer go "(a + b) * 2"
  lrone parse -g balanced --tokenizer symbols "( ) ( )"`,
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default: arguments or sample input)")
	parseFlags.steps = cmd.Flags().Bool("steps", true, "print the step trace")
	cmd.Flags().String("tokenizer", "lex", "Tokenizer [lex|go|symbols]")
	_ = viper.BindPFlag("tokenizer", cmd.Flags().Lookup("tokenizer"))
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	wb, err := loadWorkbench()
	if err != nil {
		return err
	}
	input := strings.TrimSpace(strings.Join(args, " "))
	if *parseFlags.source != "" {
		text, err := os.ReadFile(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot read source file: %w", err)
		}
		input = string(text)
	}
	if input == "" {
		input = wb.sample
		pterm.Info.Printfln("parsing sample input %q", input)
	}
	res, err := wb.parse(input, viper.GetString("tokenizer"))
	if err != nil {
		return err
	}
	return wb.report(res, *parseFlags.steps)
}

// parse runs the parser on input, tokenized as selected by mode.
func (wb *workbench) parse(input string, mode string) (*lr1.Result, error) {
	switch mode {
	case "", "lex":
		return wb.parser.ParseString(input)
	case "symbols":
		return wb.parser.ParseSymbols(strings.Fields(input))
	case "go":
		tokenizer := scanner.GoTokenizer(wb.name, strings.NewReader(input),
			scanner.SkipComments(true),
			scanner.UnifyStrings(true),
			scanner.Keywords(keywords(wb.lrgen.Grammar())...),
			scanner.Operators(operators(wb.lrgen.Grammar())...))
		return wb.parser.Parse(tokenizer)
	}
	return nil, fmt.Errorf("unknown tokenizer %q", mode)
}

// keywords collects the terminals which look like identifiers.
func keywords(g *lr.Grammar) []string {
	var kw []string
	for _, a := range g.Terminals() {
		switch string(a) {
		case scanner.Ident, scanner.Number, scanner.String:
			continue
		}
		if isIdentifier(string(a)) {
			kw = append(kw, string(a))
		}
	}
	return kw
}

// operators collects the terminals which are neither identifiers nor
// single characters, e.g. "==".
func operators(g *lr.Grammar) []string {
	var ops []string
	for _, a := range g.Terminals() {
		if a != lr.EOF && !isIdentifier(string(a)) && utf8.RuneCountInString(string(a)) > 1 {
			ops = append(ops, string(a))
		}
	}
	return ops
}

func isIdentifier(s string) bool {
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return s != ""
}

// report prints the outcome of a parse.
func (wb *workbench) report(res *lr1.Result, steps bool) error {
	if steps {
		_ = pterm.DefaultTable.WithHasHeader().WithData(traceTable(res)).Render()
	}
	if !res.Accepted {
		return res.Err()
	}
	pterm.Success.Println(res.Message)
	root, err := parsetree.FromResult(res)
	if err != nil {
		return err
	}
	return pterm.DefaultTree.WithRoot(treeNode(root)).Render()
}

func traceTable(res *lr1.Result) pterm.TableData {
	data := pterm.TableData{{"step", "states", "symbols", "input", "action"}}
	for i, step := range res.Steps {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprint(step.States),
			fmt.Sprint(step.Symbols),
			fmt.Sprint(step.Input),
			step.Label,
		})
	}
	return data
}

// treeNode converts a derivation tree for display. Leaves show their
// lexeme if it differs from the terminal.
func treeNode(n *parsetree.Node) pterm.TreeNode {
	text := string(n.Symbol)
	if n.Token != nil && n.Token.Lexeme() != text {
		text = fmt.Sprintf("%s %q", text, n.Token.Lexeme())
	}
	tn := pterm.TreeNode{Text: text}
	for _, ch := range n.Children {
		tn.Children = append(tn.Children, treeNode(ch))
	}
	return tn
}
