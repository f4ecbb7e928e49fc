package lr

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
)

// ExportDOT exports a CFSM to the Graphviz Dot format. Accepting states
// are filled light gray.
func (c *CFSM) ExportDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		fmt.Fprintf(bw, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(bw, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			dotEscape(string(edge.label)))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(iset *ItemSet) string {
	var b strings.Builder
	for _, i := range iset.Items() {
		b.WriteString(dotEscape(i.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

var dotReplacer = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotReplacer.Replace(s)
}

// --- HTML tables -----------------------------------------------------------

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return ErrNoTables
	}
	T := lrgen.gototable
	return parserTableAsHTML(lrgen, "GOTO", T.Symbols(), T.Size(), w, func(state int, A Symbol) string {
		if to, ok := T.Lookup(state, A); ok {
			return fmt.Sprintf("%d", to)
		}
		return "&nbsp;"
	})
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format. Cells
// with conflicts show the kept action and the rejected one.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return ErrNoTables
	}
	T := lrgen.actiontable
	return parserTableAsHTML(lrgen, "ACTION", T.Symbols(), T.Size(), w, func(state int, a Symbol) string {
		act, ok := T.Lookup(state, a)
		if !ok {
			return "&nbsp;"
		}
		if alt, ok := T.Alternative(state, a); ok {
			return fmt.Sprintf("%v/%v", act, alt)
		}
		return act.String()
	})
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, symbols []Symbol, size int,
	w io.Writer, cell func(int, Symbol) string) error {
	//
	bw := bufio.NewWriter(w)
	bw.WriteString("<html><body>\n")
	fmt.Fprintf(bw, "%s table of size = %d<p>", tname, size)
	bw.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	bw.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symbols {
		fmt.Fprintf(bw, "<td>%s</td>", html.EscapeString(string(A)))
	}
	bw.WriteString("</tr>\n")
	for id := 0; id < lrgen.dfa.StateCount(); id++ {
		fmt.Fprintf(bw, "<tr><td>state %d</td>\n", id)
		for _, A := range symbols {
			bw.WriteString("<td>")
			bw.WriteString(cell(id, A))
			bw.WriteString("</td>\n")
		}
		bw.WriteString("</tr>\n")
	}
	bw.WriteString("</table></body></html>\n")
	return bw.Flush()
}
