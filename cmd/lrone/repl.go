package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/lrone/lrone/lr/grammars"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive mode: enter input lines to parse them",
		Long: `repl starts an interactive session for the selected grammar.
Every line is parsed and its derivation tree is printed. Lines starting
with a colon are commands; enter :help to list them.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	cmd.Flags().String("init", "", "file with lines to evaluate at start")
	_ = viper.BindPFlag("init", cmd.Flags().Lookup("init"))
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	wb, err := loadWorkbench()
	if err != nil {
		return err
	}
	repl, err := readline.New("lrone> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{
		wb:        wb,
		tokenizer: viper.GetString("tokenizer"),
		repl:      repl,
	}
	pterm.Info.Printfln("Welcome to lrone, grammar is %s", wb.name)
	pterm.Info.Println("Quit with <ctrl>D")
	intp.loadInitFile(viper.GetString("init"))
	intp.REPL()
	return nil
}

// Intp is our interpreter object.
type Intp struct {
	wb        *workbench
	tokenizer string
	lastInput string
	repl      *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

const replHelp = `:grammar <name>     switch to a grammar from the catalogue
:grammars           list the catalogue
:tables             print sets, tables and conflicts
:states             print the LR(1) collection
:tokenizer <mode>   select tokenizer [lex|go|symbols]
:sample             parse the sample input of the grammar
:again              parse the last input again
:quit               leave`

// Eval executes a command or parses a line of input.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		intp.lastInput = line
		return false, intp.parse(line)
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	tracer().Debugf("command %s %v", cmd, args)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help", ":h":
		pterm.Println(replHelp)
	case ":grammars":
		return false, pterm.DefaultTable.WithHasHeader().WithData(catalogueTable()).Render()
	case ":grammar", ":g":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :grammar <name>")
		}
		ex, ok := grammars.Find(args[0])
		if !ok {
			return false, fmt.Errorf("no grammar %q in catalogue", args[0])
		}
		g, err := ex.Build()
		if err != nil {
			return false, err
		}
		wb, err := newWorkbench(g, ex.Input)
		if err != nil {
			return false, err
		}
		intp.wb = wb
		pterm.Info.Printfln("grammar is %s: %s", ex.Name, ex.Description)
		wb.printConflicts()
	case ":tables":
		intp.wb.printGrammar()
		intp.wb.printSets()
		intp.wb.printTables()
		intp.wb.printConflicts()
	case ":states":
		intp.wb.printStates()
	case ":tokenizer":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :tokenizer <lex|go|symbols>")
		}
		intp.tokenizer = args[0]
	case ":sample":
		pterm.Info.Printfln("sample input is %q", intp.wb.sample)
		return false, intp.parse(intp.wb.sample)
	case ":again":
		return false, intp.parse(intp.lastInput)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}
	return false, nil
}

func (intp *Intp) parse(input string) error {
	res, err := intp.wb.parse(input, intp.tokenizer)
	if err != nil {
		return err
	}
	return intp.wb.report(res, true)
}
