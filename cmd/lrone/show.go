package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/grammars"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	items *bool
	html  *string
	out   *string
}{}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "grammars",
		Short: "List the grammar catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pterm.DefaultTable.WithHasHeader().WithData(catalogueTable()).Render()
		},
	})

	tables := &cobra.Command{
		Use:     "tables",
		Short:   "Print FIRST/FOLLOW sets, LR(1) states and parser tables",
		Example: `  lrone tables --grammar arith --items`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	showFlags.items = tables.Flags().BoolP("items", "i", false, "print the items of every state")
	showFlags.html = tables.Flags().String("html", "", "write ACTION and GOTO tables to an HTML file")
	rootCmd.AddCommand(tables)

	dot := &cobra.Command{
		Use:     "dot",
		Short:   "Export the LR(1) automaton in Graphviz DOT format",
		Example: `  lrone dot -g cc | dot -Tsvg > cc.svg`,
		Args:    cobra.NoArgs,
		RunE:    runDot,
	}
	showFlags.out = dot.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(dot)
}

func runTables(cmd *cobra.Command, args []string) error {
	wb, err := loadWorkbench()
	if err != nil {
		return err
	}
	wb.printGrammar()
	wb.printSets()
	if *showFlags.items {
		wb.printStates()
	}
	wb.printTables()
	wb.printConflicts()
	if *showFlags.html != "" {
		f, err := os.Create(*showFlags.html)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := lr.ActionTableAsHTML(wb.lrgen, f); err != nil {
			return err
		}
		if err := lr.GotoTableAsHTML(wb.lrgen, f); err != nil {
			return err
		}
		pterm.Info.Printfln("tables written to %s", *showFlags.html)
	}
	return nil
}

func runDot(cmd *cobra.Command, args []string) error {
	wb, err := loadWorkbench()
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if *showFlags.out != "" {
		f, err := os.Create(*showFlags.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return wb.lrgen.CFSM().ExportDOT(w)
}

// --- Output ----------------------------------------------------------------

func catalogueTable() pterm.TableData {
	data := pterm.TableData{{"#", "name", "grammar", "sample input"}}
	for _, ex := range grammars.Catalogue() {
		data = append(data, []string{strconv.Itoa(ex.Number), ex.Name, ex.Description, ex.Input})
	}
	return data
}

func (wb *workbench) printGrammar() {
	pterm.DefaultSection.Printfln("Grammar %s", wb.name)
	pterm.Println(grammars.Format(wb.lrgen.Grammar()))
}

// setsTable tabulates FIRST and FOLLOW for every non-terminal.
func setsTable(g *lr.Grammar) pterm.TableData {
	data := pterm.TableData{{"non-terminal", "nullable", "FIRST", "FOLLOW"}}
	for _, A := range g.NonTerminals() {
		data = append(data, []string{
			string(A),
			strconv.FormatBool(g.Nullable(A)),
			g.First(A).String(),
			g.Follow(A).String(),
		})
	}
	return data
}

func (wb *workbench) printSets() {
	pterm.DefaultSection.Println("FIRST and FOLLOW")
	_ = pterm.DefaultTable.WithHasHeader().WithData(setsTable(wb.lrgen.Grammar())).Render()
}

func (wb *workbench) printStates() {
	dfa := wb.lrgen.CFSM()
	pterm.DefaultSection.Printfln("LR(1) collection, %d states", dfa.StateCount())
	for id := 0; id < dfa.StateCount(); id++ {
		state := dfa.State(id)
		root := pterm.TreeNode{Text: fmt.Sprintf("state %d", id)}
		if state.Accept {
			root.Text += " (accept)"
		}
		for _, item := range state.Items() {
			root.Children = append(root.Children, pterm.TreeNode{Text: item.String()})
		}
		_ = pterm.DefaultTree.WithRoot(root).Render()
	}
	for _, t := range dfa.Transitions() {
		tracer().Debugf("%d -%s-> %d", t.From, t.Symbol, t.To)
	}
}

// parserTable tabulates ACTION and GOTO side by side, one row per state.
// Conflict cells show the kept and the rejected action.
func parserTable(lrgen *lr.TableGenerator) pterm.TableData {
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	header := []string{"state"}
	for _, a := range actions.Symbols() {
		header = append(header, string(a))
	}
	var nonterms []lr.Symbol
	for _, A := range gotos.Symbols() {
		if A != lrgen.Grammar().AugmentedStart() {
			nonterms = append(nonterms, A)
			header = append(header, string(A))
		}
	}
	data := pterm.TableData{header}
	for state := 0; state < lrgen.CFSM().StateCount(); state++ {
		row := []string{strconv.Itoa(state)}
		for _, a := range actions.Symbols() {
			cell := ""
			if action, ok := actions.Lookup(state, a); ok {
				cell = action.String()
				if alt, ok := actions.Alternative(state, a); ok {
					cell += "/" + alt.String()
				}
			}
			row = append(row, cell)
		}
		for _, A := range nonterms {
			cell := ""
			if target, ok := gotos.Lookup(state, A); ok {
				cell = strconv.Itoa(target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

func (wb *workbench) printTables() {
	pterm.DefaultSection.Println("ACTION and GOTO")
	_ = pterm.DefaultTable.WithHasHeader().WithData(parserTable(wb.lrgen)).Render()
	pterm.Info.Printfln("accepting states: %v", wb.lrgen.AcceptingStates())
}

func (wb *workbench) printConflicts() {
	if !wb.lrgen.HasConflicts() {
		pterm.Success.Println("grammar is LR(1)")
		return
	}
	for _, c := range wb.lrgen.Conflicts() {
		pterm.Warning.Println(c.String())
	}
}
