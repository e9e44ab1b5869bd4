package evaluator

import (
	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/builtins"
	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/rewriter"
	"github.com/formwalk/formwalk/internal/rulestore"
	"github.com/formwalk/formwalk/internal/sexpr"
	"github.com/formwalk/formwalk/internal/token"
)

// EvalExpr evaluates a surface expression per spec.md §4.E.1's mode
// table. comptime is the single boolean threaded through the evaluator
// that spec.md §4.E.1 describes - every recursive call below propagates
// it unchanged, including into Tuple elements and a compile-time
// CTCall's argument (see DESIGN.md for why this departs from
// original_source/ss.py's apparent default-argument behavior there).
func (e *Evaluator) EvalExpr(expr ast.Expr, comptime bool) (sexpr.SExpr, error) {
	switch x := expr.(type) {
	case *ast.Symbol:
		if !comptime {
			if sym, ok := e.Store.Symbol(x.Name); ok {
				return sym.Value, nil
			}
		}
		return &sexpr.Symbol{Wrapped: false, Name: x.Name}, nil

	case *ast.Tuple:
		els := make([]sexpr.SExpr, len(x.Elements))
		for i, el := range x.Elements {
			v, err := e.EvalExpr(el, comptime)
			if err != nil {
				return nil, err
			}
			els[i] = v
		}
		return &sexpr.Tuple{Wrapped: false, Elements: els}, nil

	case *ast.Quote:
		return sexpr.Lower(x.Sentence), nil

	case *ast.Call:
		if comptime {
			// Compile-time mode converts a Call literally: it is never
			// dispatched as a transformation during form elaboration.
			return sexpr.Lower(x), nil
		}
		if e.Store.HasTransformation(x.Fun) {
			argVal, err := e.EvalExpr(x.Arg, false)
			if err != nil {
				return nil, err
			}
			return rewriter.SubstituteCompatible(argVal, transformRules(e.Store.Transformations(x.Fun)), x.Token, e.lines)
		}
		if fn, ok := e.Builtins[x.Fun]; ok {
			return fn(builtins.Args{Fun: x.Fun, ExprArg: x.Arg, AtCompileTime: false, Token: x.Token})
		}
		return nil, diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrName, x.Token,
			"unknown transformation or builtin function `%s'", x.Fun), e.lines)

	case *ast.CTCall:
		if !comptime {
			return nil, diagnostics.WithSource(diagnostics.New(diagnostics.ErrMode, x.Token,
				"CT-call is available only at transformation definition"), e.lines)
		}
		if e.Store.HasMetaTransformation(x.Fun) {
			argVal, err := e.EvalExpr(x.Arg, true)
			if err != nil {
				return nil, err
			}
			return rewriter.SubstituteCompatible(argVal, metaRules(e.Store.MetaTransformations(x.Fun)), x.Token, e.lines)
		}
		if fn, ok := e.Builtins[x.Fun]; ok {
			return fn(builtins.Args{Fun: x.Fun, ExprArg: x.Arg, AtCompileTime: true, Token: x.Token})
		}
		return nil, diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrName, x.Token,
			"unknown meta-transformation or builtin function `%s'", x.Fun), e.lines)

	default:
		panic("evaluator.EvalExpr: unreachable expression kind")
	}
}

// InterpretSExpr is the semantic-tree normalisation pass closing out
// spec.md §4.E.1: a just-produced SExpr is re-descended, expanding every
// Call it contains through run-time transformations and builtins. At
// compile time this pass does not dispatch Call nodes at all - an RHS
// template substituted during form elaboration is left exactly as
// substitution produced it, since its Call nodes denote the next form's
// eventual behaviour, not something to run now.
func (e *Evaluator) InterpretSExpr(expr sexpr.SExpr, comptime bool, tok token.Token) (sexpr.SExpr, error) {
	switch x := expr.(type) {
	case *sexpr.Symbol:
		return x, nil

	case *sexpr.Tuple:
		els := make([]sexpr.SExpr, len(x.Elements))
		for i, el := range x.Elements {
			v, err := e.InterpretSExpr(el, comptime, tok)
			if err != nil {
				return nil, err
			}
			els[i] = v
		}
		return &sexpr.Tuple{Wrapped: false, Elements: els}, nil

	case *sexpr.Call:
		if comptime {
			return x, nil
		}
		argVal, err := e.InterpretSExpr(x.Arg, comptime, tok)
		if err != nil {
			return nil, err
		}
		if e.Store.HasTransformation(x.Fun) {
			result, err := rewriter.SubstituteCompatible(argVal, transformRules(e.Store.Transformations(x.Fun)), tok, e.lines)
			if err != nil {
				return nil, err
			}
			return e.InterpretSExpr(result, comptime, tok)
		}
		if fn, ok := e.Builtins[x.Fun]; ok {
			return fn(builtins.Args{Fun: x.Fun, SExprArg: argVal, AtCompileTime: false, Token: tok})
		}
		return nil, diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrName, tok,
			"unknown transformation or builtin function `%s'", x.Fun), e.lines)

	default:
		panic("evaluator.InterpretSExpr: unreachable SExpr kind")
	}
}

func transformRules(trs []rulestore.TransformRule) []rewriter.Rule {
	out := make([]rewriter.Rule, len(trs))
	for i, r := range trs {
		out[i] = rewriter.Rule{LHS: r.LHS, RHS: r.RHS}
	}
	return out
}

func metaRules(mrs []rulestore.MetaRule) []rewriter.Rule {
	out := make([]rewriter.Rule, len(mrs))
	for i, r := range mrs {
		out[i] = rewriter.Rule{LHS: r.LHS, RHS: r.RHS}
	}
	return out
}
