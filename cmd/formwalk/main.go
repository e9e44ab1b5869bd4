// Command formwalk runs the term-rewriting interpreter: lex, parse, and
// execute a program's let/form/unlink/show statements in source order.
// The command tree is grounded on go-corset/pkg/cmd's rootCmd +
// GetFlag/GetString accessor idiom (see pkg/cmd/root.go and
// pkg/cmd/corset/debug.go), with logrus for leveled diagnostics in
// place of the teacher's plain fmt.Fprintf-to-stderr style.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/lexer"
	"github.com/formwalk/formwalk/internal/parser"
	"github.com/formwalk/formwalk/internal/pipeline"
	"github.com/formwalk/formwalk/internal/prettyprinter"
	"github.com/formwalk/formwalk/internal/tracelog"
)

var rootCmd = &cobra.Command{
	Use:   "formwalk",
	Short: "An interpreter for a small term-rewriting language.",
	Long:  "formwalk lexes, parses and executes programs built from let, form, unlink and show statements.",
}

// Execute runs the root command, exiting with status 1 if it returns an
// error. Child commands are added in init. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetFlag gets an expected bool flag, or exits if the flag is undeclared.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

// GetString gets an expected string flag, or exits if the flag is undeclared.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

var runCmd = &cobra.Command{
	Use:   "run source_file",
	Short: "execute a program and print its show output.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		runProgram(cmd, args[0])
	},
}

func runProgram(cmd *cobra.Command, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %s", path, err)
	}

	run := pipeline.New(string(src), os.Stdout)

	if tracePath := GetString(cmd, "trace-log"); tracePath != "" {
		tl, err := tracelog.Open(tracePath)
		if err != nil {
			log.Fatalf("opening trace log: %s", err)
		}
		defer tl.Close()
		run.TraceLog = tl
		log.Debugf("session %s: trace log at %s", run.SessionID, tracePath)
	}

	if execErr := run.Execute(); execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
		os.Exit(1)
	}
}

var dumpASTCmd = &cobra.Command{
	Use:   "dump-ast source_file",
	Short: "parse a program and render its statements as a tree, without executing it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dumpAST(args[0])
	},
}

func dumpAST(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %s", path, err)
	}
	toks, err := lexer.Tokenize(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stmts, err := parser.ParseProgram(toks, diagnostics.SourceLines(string(src)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := prettyprinter.DumpStmts(stmts); err != nil {
		log.Fatalf("rendering tree: %s", err)
	}
}

func init() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	runCmd.Flags().Bool("verbose", false, "enable debug-level logging")
	runCmd.Flags().String("trace-log", "", "path to a SQLite database recording each executed statement")
	rootCmd.AddCommand(runCmd)

	rootCmd.AddCommand(dumpASTCmd)
}

func main() {
	Execute()
}
