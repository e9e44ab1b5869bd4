// Package pipeline orchestrates one program run end to end: lex,
// parse, execute, with an optional trace-log side channel attached. It
// is a much smaller descendant of funxy/internal/pipeline's
// PipelineContext/Processor machinery: this core has only one linear
// flow (no analyzer, no module loader, no type map), so a single
// struct threading the run's state through ordinary method calls
// replaces the teacher's Processor-interface chain.
package pipeline

import (
	"fmt"
	"io"

	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/evaluator"
	"github.com/formwalk/formwalk/internal/lexer"
	"github.com/formwalk/formwalk/internal/parser"
	"github.com/formwalk/formwalk/internal/session"
	"github.com/formwalk/formwalk/internal/tracelog"
	"github.com/formwalk/formwalk/internal/token"
)

// Run holds everything one interpret_program execution needs: the
// source, the session identifying it, and the optional trace log a
// driver may attach before calling Execute.
type Run struct {
	Source    string
	SessionID session.ID

	Eval *evaluator.Evaluator

	TraceLog *tracelog.Log // nil disables trace-log recording
}

// New prepares a Run over source, writing `show` output to out.
func New(source string, out io.Writer) *Run {
	e := evaluator.New()
	e.Out = out
	e.SetSource(source)
	return &Run{
		Source:    source,
		SessionID: session.New(),
		Eval:      e,
	}
}

// Execute lexes, parses, and runs the program in source order, per
// spec.md §5's ordering guarantee. It stops at the first error,
// preserving whatever `show` output already reached Eval.Out.
func (r *Run) Execute() error {
	toks, err := lexer.Tokenize(r.Source)
	if err != nil {
		return err
	}
	stmts, err := parser.ParseProgram(toks, diagnostics.SourceLines(r.Source))
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		execErr := r.Eval.ExecuteStatement(stmt)
		r.record(i, stmt, execErr)
		if execErr != nil {
			return execErr
		}
	}
	return nil
}

func (r *Run) record(seq int, stmt ast.Stmt, execErr error) {
	if r.TraceLog == nil {
		return
	}
	kind, name, tok := describe(stmt)
	// A trace-log write failure must not mask the statement's own
	// result, so it is reported but does not replace execErr.
	if logErr := r.TraceLog.Record(r.SessionID.String(), seq, kind, name, tok, execErr); logErr != nil {
		fmt.Fprintf(r.Eval.Out, "# tracelog: %s\n", logErr)
	}
}

func describe(stmt ast.Stmt) (kind, name string, tok token.Token) {
	switch s := stmt.(type) {
	case *ast.Let:
		return "let", s.Name, s.Token
	case *ast.DefForm:
		return "form", s.Name, s.Token
	case *ast.Unlink:
		return "unlink", s.Name, s.Token
	case *ast.Show:
		return "show", "", s.Token
	default:
		panic("pipeline.describe: unreachable statement kind")
	}
}
