package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lrone/lrone/lr"
	"github.com/lrone/lrone/lr/grammars"
	"github.com/lrone/lrone/lr/lr1"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "lrone",
	Short: "Canonical LR(1) table construction and parsing",
	Long: `lrone builds the canonical LR(1) collection for a context-free grammar,
derives the ACTION and GOTO tables, reports conflicts, and parses input
with the resulting tables.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initTracing(viper.GetString("trace"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("grammar", "g", "cc", "Name of a grammar from the catalogue")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Grammar file (overrides --grammar)")
	rootCmd.PersistentFlags().String("strategy", "keep-first", "Conflict strategy [keep-first|prefer-shift]")
	rootCmd.PersistentFlags().StringP("trace", "t", "Error", "Trace level [Debug|Info|Error]")

	_ = viper.BindPFlag("grammar", rootCmd.PersistentFlags().Lookup("grammar"))
	_ = viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("strategy", rootCmd.PersistentFlags().Lookup("strategy"))
	_ = viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
}

func initConfig() {
	viper.SetEnvPrefix("LRONE")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// --- Workbench -------------------------------------------------------------

// workbench bundles a grammar with its tables and a parser.
type workbench struct {
	name   string
	sample string // sample input, for catalogue grammars
	lrgen  *lr.TableGenerator
	parser *lr1.Parser
}

// loadGrammar reads a grammar as configured by flags or environment.
func loadGrammar() (*lr.Grammar, string, error) {
	if file := viper.GetString("file"); file != "" {
		text, err := os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("cannot read grammar file: %w", err)
		}
		g, err := grammars.Parse(file, string(text))
		return g, "", err
	}
	name := viper.GetString("grammar")
	ex, ok := grammars.Find(name)
	if !ok {
		return nil, "", fmt.Errorf("no grammar %q in catalogue; try 'lrone grammars'", name)
	}
	g, err := ex.Build()
	return g, ex.Input, err
}

func conflictStrategy(s string) (lr.ConflictStrategy, error) {
	switch strings.ToLower(s) {
	case "", "keep-first":
		return lr.KeepFirst, nil
	case "prefer-shift":
		return lr.PreferShift, nil
	}
	return lr.KeepFirst, fmt.Errorf("unknown conflict strategy %q", s)
}

// newWorkbench builds tables for a grammar. Conflicts do not prevent a
// parser from being created.
func newWorkbench(g *lr.Grammar, sample string, opts ...lr.Option) (*workbench, error) {
	strategy, err := conflictStrategy(viper.GetString("strategy"))
	if err != nil {
		return nil, err
	}
	opts = append(opts, lr.WithConflictStrategy(strategy))
	lrgen := lr.NewTableGenerator(g, opts...)
	if err := lrgen.CreateTables(); err != nil {
		return nil, err
	}
	parser, err := lr1.NewParser(lrgen)
	if err != nil {
		return nil, err
	}
	return &workbench{
		name:   g.Name,
		sample: sample,
		lrgen:  lrgen,
		parser: parser,
	}, nil
}

func loadWorkbench() (*workbench, error) {
	g, sample, err := loadGrammar()
	if err != nil {
		return nil, err
	}
	return newWorkbench(g, sample)
}
