// Package rewriter implements spec.md §4.D: pattern matching, the
// wrap/unwrap protection system, and substitution over sexpr.SExpr.
package rewriter

import (
	"strings"
	"sync"

	"github.com/cnf/structhash"

	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/sexpr"
	"github.com/formwalk/formwalk/internal/token"
)

// Rule is one (pattern, template) pair as consulted by SubstituteCompatible.
type Rule struct {
	LHS sexpr.SExpr
	RHS sexpr.SExpr
}

// Walk matches a subject against a pattern, binding metavariable names to
// subject subtrees. Rules are tried in the order of spec.md §4.D.1.
func Walk(expr, form sexpr.SExpr, bindings map[string]sexpr.SExpr, tok token.Token, lines []string) (map[string]sexpr.SExpr, error) {
	if sym, ok := form.(*sexpr.Symbol); ok && sexpr.IsMetavariable(sym.Name) {
		bindings[sym.Name] = expr
		return bindings, nil
	}
	ft, fok := form.(*sexpr.Tuple)
	et, eok := expr.(*sexpr.Tuple)
	if fok && eok {
		if len(ft.Elements) != len(et.Elements) {
			return nil, incompatible(expr, form, tok, lines)
		}
		for i := range et.Elements {
			var err error
			bindings, err = Walk(et.Elements[i], ft.Elements[i], bindings, tok, lines)
			if err != nil {
				return nil, err
			}
		}
		return bindings, nil
	}
	if !sexpr.Equal(expr, form) {
		return nil, incompatible(expr, form, tok, lines)
	}
	return bindings, nil
}

func incompatible(expr, form sexpr.SExpr, tok token.Token, lines []string) error {
	msg := "an expression `" + sexpr.Stringify(expr) + "' is incompatible with a form `" + sexpr.Stringify(form) + "'"
	return diagnostics.WithSource(diagnostics.New(diagnostics.ErrMatch, tok, msg), lines)
}

var compatCache = struct {
	mu sync.Mutex
	m  map[string]bool
}{m: make(map[string]bool)}

func compatKey(expr, form sexpr.SExpr) (string, bool) {
	h, err := structhash.Hash(struct {
		Expr string
		Form string
	}{sexpr.Stringify(expr) + boolSuffix(expr), sexpr.Stringify(form) + boolSuffix(form)}, 1)
	if err != nil {
		return "", false
	}
	return h, true
}

func boolSuffix(e sexpr.SExpr) string {
	if sexpr.Wrapped(e) {
		return "#w"
	}
	return "#u"
}

// IsCompatible is a non-erroring mirror of Walk used to select a rule
// from an ordered list. Results are memoised keyed by a structhash
// digest of (expr, form), since the same pattern is re-tested against
// many candidate subjects during SubstituteCompatible dispatch.
func IsCompatible(expr, form sexpr.SExpr) bool {
	key, ok := compatKey(expr, form)
	if ok {
		compatCache.mu.Lock()
		if v, hit := compatCache.m[key]; hit {
			compatCache.mu.Unlock()
			return v
		}
		compatCache.mu.Unlock()
	}
	result := isCompatible(expr, form)
	if ok {
		compatCache.mu.Lock()
		compatCache.m[key] = result
		compatCache.mu.Unlock()
	}
	return result
}

func isCompatible(expr, form sexpr.SExpr) bool {
	if sym, ok := form.(*sexpr.Symbol); ok && sexpr.IsMetavariable(sym.Name) {
		return true
	}
	ft, fok := form.(*sexpr.Tuple)
	et, eok := expr.(*sexpr.Tuple)
	if fok && eok {
		if len(ft.Elements) != len(et.Elements) {
			return false
		}
		for i := range et.Elements {
			if !isCompatible(et.Elements[i], ft.Elements[i]) {
				return false
			}
		}
		return true
	}
	return sexpr.Equal(expr, form)
}

// Replace returns e with every subtree structurally equal to a replaced
// by b, except that descent stops at any node whose Wrapped flag is
// true, and non-matching Symbol nodes are returned as-is. Newly
// constructed interior nodes have their Wrapped flag reset to false:
// the result is an "open" template again, per spec.md §4.D.3.
func Replace(e, a, b sexpr.SExpr) sexpr.SExpr {
	if sexpr.Equal(e, a) {
		return b
	}
	if sexpr.Wrapped(e) {
		return e
	}
	switch x := e.(type) {
	case *sexpr.Symbol:
		return e
	case *sexpr.Call:
		return &sexpr.Call{Wrapped: false, Fun: x.Fun, Arg: Replace(x.Arg, a, b)}
	case *sexpr.Tuple:
		els := make([]sexpr.SExpr, len(x.Elements))
		for i, el := range x.Elements {
			els[i] = Replace(el, a, b)
		}
		return &sexpr.Tuple{Wrapped: false, Elements: els}
	default:
		panic("rewriter.Replace: unreachable SExpr kind")
	}
}

// Wrap marks the topmost node of e opaque to Replace descent. Nested
// children are untouched. Idempotent.
func Wrap(e sexpr.SExpr) sexpr.SExpr {
	switch x := e.(type) {
	case *sexpr.Symbol:
		return &sexpr.Symbol{Wrapped: true, Name: x.Name}
	case *sexpr.Call:
		return &sexpr.Call{Wrapped: true, Fun: x.Fun, Arg: x.Arg}
	case *sexpr.Tuple:
		return &sexpr.Tuple{Wrapped: true, Elements: x.Elements}
	default:
		panic("rewriter.Wrap: unreachable SExpr kind")
	}
}

// Unwrap clears the topmost Wrapped flag, with one deliberate asymmetry
// preserved from original_source/ss.py: for a Call it recurses into Arg
// only (never Fun, which is a plain string anyway); for a Tuple it SETS
// the top flag to true while unwrapping children, exposing elements to
// further rewriting while keeping the outer tuple itself opaque.
func Unwrap(e sexpr.SExpr) sexpr.SExpr {
	switch x := e.(type) {
	case *sexpr.Symbol:
		return &sexpr.Symbol{Wrapped: false, Name: x.Name}
	case *sexpr.Call:
		return &sexpr.Call{Wrapped: false, Fun: x.Fun, Arg: Unwrap(x.Arg)}
	case *sexpr.Tuple:
		els := make([]sexpr.SExpr, len(x.Elements))
		for i, el := range x.Elements {
			els[i] = Unwrap(el)
		}
		return &sexpr.Tuple{Wrapped: true, Elements: els}
	default:
		panic("rewriter.Unwrap: unreachable SExpr kind")
	}
}

// Substitute applies a single rule's LHS/RHS against expr: spec.md
// §4.D.4. Each bound value is wrapped before being spliced into rhs so
// the next Replace can't descend into what was just inserted - this is
// the hygiene mechanism behind P5.
func Substitute(expr, lhs, rhs sexpr.SExpr, tok token.Token, lines []string) (sexpr.SExpr, error) {
	bindings, err := Walk(expr, lhs, map[string]sexpr.SExpr{}, tok, lines)
	if err != nil {
		return nil, err
	}
	for name, value := range bindings {
		rhs = Replace(rhs, &sexpr.Symbol{Wrapped: false, Name: name}, Wrap(value))
	}
	return Unwrap(rhs), nil
}

// SubstituteCompatible scans rules in declaration order and applies the
// first whose LHS is compatible with expr, per spec.md §4.D.5.
func SubstituteCompatible(expr sexpr.SExpr, rules []Rule, tok token.Token, lines []string) (sexpr.SExpr, error) {
	for _, r := range rules {
		if IsCompatible(expr, r.LHS) {
			return Substitute(expr, r.LHS, r.RHS, tok, lines)
		}
	}
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = sexpr.Stringify(r.LHS)
	}
	msg := "an expression `" + sexpr.Stringify(expr) + "' is incompatible with any form in this list: " + strings.Join(names, ";")
	return nil, diagnostics.WithSource(diagnostics.New(diagnostics.ErrNoRule, tok, msg), lines)
}
