// Package builtins holds the fixed primitive-rewrite catalogue of
// spec.md §4.E.2. Only _ISCOMPTIME is specified; the Args/Registry shape
// is kept general so a future builtin needs no signature change, per
// original_source/ss.py's uniform BuiltinFunc_Args.
package builtins

import (
	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/sexpr"
	"github.com/formwalk/formwalk/internal/token"
)

// Args is the full context handed to every builtin, mirroring
// original_source/ss.py's BuiltinFunc_Args, whose call node is typed
// `ExprCall | SExprCall | ExprCTCall`: a builtin can be reached either
// from surface-expression evaluation (ExprArg set) or from the
// semantic-tree normalisation pass (SExprArg set). Exactly one is set
// on any given call.
type Args struct {
	Fun           string
	ExprArg       ast.Expr    // set when invoked from surface Expr evaluation
	SExprArg      sexpr.SExpr // set when invoked from SExpr normalisation
	AtCompileTime bool
	Token         token.Token
}

// Func is a primitive rewrite over sexpr.SExpr.
type Func func(Args) (sexpr.SExpr, error)

// Registry maps builtin names to their implementation.
type Registry map[string]Func

// Default returns the frozen built-in catalogue: _ISCOMPTIME only, per
// spec.md §1 ("The built-in primitive catalogue beyond _ISCOMPTIME is
// out of scope").
func Default() Registry {
	return Registry{
		"_ISCOMPTIME": isComptime,
	}
}

// isComptime returns the literal symbol TRUE when invoked in
// compile-time mode, else FALSE. It ignores its argument.
func isComptime(a Args) (sexpr.SExpr, error) {
	if a.AtCompileTime {
		return &sexpr.Symbol{Name: "TRUE"}, nil
	}
	return &sexpr.Symbol{Name: "FALSE"}, nil
}
