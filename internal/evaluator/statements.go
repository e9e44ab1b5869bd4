package evaluator

import (
	"fmt"

	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/rulestore"
	"github.com/formwalk/formwalk/internal/sexpr"
)

// ExecuteProgram walks stmts in source order, per spec.md §4.E.3 and the
// ordering guarantee of §5 ("statements are evaluated strictly in
// source order").
func (e *Evaluator) ExecuteProgram(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := e.ExecuteStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteStatement runs a single statement against the Evaluator's
// Store. Exported so a driver (internal/pipeline) can interpose
// per-statement bookkeeping (a trace-log row) between statements
// without duplicating dispatch logic.
func (e *Evaluator) ExecuteStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Let:
		return e.execLet(s)
	case *ast.DefForm:
		return e.execDefForm(s)
	case *ast.Unlink:
		return e.execUnlink(s)
	case *ast.Show:
		return e.execShow(s)
	default:
		panic("evaluator.ExecuteStatement: unreachable statement kind")
	}
}

// execLet implements spec.md §4.E.3's Let rule: a name already claimed
// by a transformation cannot be reused as a symbol (the P7 exclusivity
// invariant), reported citing the transformation's defining token.
func (e *Evaluator) execLet(s *ast.Let) error {
	if tok, ok := e.Store.FirstTransformationToken(s.Name); ok {
		return diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrConflict, s.Token,
			"name `%s' is already taken by a transformation defined at %d:%d", s.Name, tok.Line+1, tok.Column), e.lines)
	}
	val, err := e.EvalExpr(s.Expr, false)
	if err != nil {
		return err
	}
	val, err = e.InterpretSExpr(val, false, s.Token)
	if err != nil {
		return err
	}
	e.Store.SetSymbol(s.Name, rulestore.Symbol{Value: val, Token: s.Token})
	return nil
}

// execDefForm implements spec.md §4.E.3's Form rule: lhs and rhs are
// both elaborated in compile-time mode, and the resulting rule is
// appended to BOTH the meta-transformation table (consulted by CTCalls
// in later form definitions) and the run-time transformation table
// (consulted by Calls in ordinary expressions).
func (e *Evaluator) execDefForm(s *ast.DefForm) error {
	if sym, ok := e.Store.Symbol(s.Name); ok {
		return diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrConflict, s.Token,
			"name `%s' is already taken by a symbol defined at %d:%d", s.Name, sym.Token.Line+1, sym.Token.Column), e.lines)
	}

	lhs, err := e.EvalExpr(s.LHS, true)
	if err != nil {
		return err
	}
	lhs, err = e.InterpretSExpr(lhs, true, s.Token)
	if err != nil {
		return err
	}

	rhs, err := e.EvalExpr(s.RHS, true)
	if err != nil {
		return err
	}
	rhs, err = e.InterpretSExpr(rhs, true, s.Token)
	if err != nil {
		return err
	}

	e.Store.AppendMetaTransformation(s.Name, rulestore.MetaRule{LHS: lhs, RHS: rhs})
	e.Store.AppendTransformation(s.Name, rulestore.TransformRule{LHS: lhs, RHS: rhs, Token: s.Token})
	return nil
}

// execUnlink implements spec.md §4.E.3's Unlink rule: transformations
// take priority over symbols, and an unknown name is an error.
func (e *Evaluator) execUnlink(s *ast.Unlink) error {
	if e.Store.HasTransformation(s.Name) {
		e.Store.RemoveTransformation(s.Name)
		return nil
	}
	if e.Store.HasSymbol(s.Name) {
		e.Store.RemoveSymbol(s.Name)
		return nil
	}
	return diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrName, s.Token,
		"nothing to unlink for name `%s'", s.Name), e.lines)
}

// execShow implements spec.md §4.E.3's Show rule: evaluate, normalise,
// and write the stringified result followed by a newline to Out.
func (e *Evaluator) execShow(s *ast.Show) error {
	val, err := e.EvalExpr(s.Expr, false)
	if err != nil {
		return err
	}
	val, err = e.InterpretSExpr(val, false, s.Token)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.Out, sexpr.Stringify(val))
	return err
}
