// Package sexpr is the rewriter's semantic expression tree: spec.md
// §4.A's SExpr. Unlike ast.Expr it carries no source token, and it adds
// the Wrapped flag that protects a subtree from substitution descent.
//
// Every recursion point over SExpr is a plain exhaustive type switch, per
// spec.md §9 Design Notes ("implement as a single discriminated-sum type
// ... and match exhaustively at every recursion point").
package sexpr

import "strings"

// SExpr is any of Symbol, Call, Tuple.
type SExpr interface {
	isWrapped() bool
	sexprNode()
}

// Symbol is a bare name, possibly a metavariable (see IsMetavariable).
type Symbol struct {
	Wrapped bool
	Name    string
}

func (s *Symbol) isWrapped() bool { return s.Wrapped }
func (*Symbol) sexprNode()        {}

// Call is a runtime-invocation node: fun applied to Arg.
type Call struct {
	Wrapped bool
	Fun     string
	Arg     SExpr
}

func (c *Call) isWrapped() bool { return c.Wrapped }
func (*Call) sexprNode()        {}

// Tuple is an ordered sequence of elements.
type Tuple struct {
	Wrapped  bool
	Elements []SExpr
}

func (t *Tuple) isWrapped() bool { return t.Wrapped }
func (*Tuple) sexprNode()        {}

// Wrapped reports the Wrapped flag of any SExpr.
func Wrapped(e SExpr) bool { return e.isWrapped() }

// IsMetavariable reports whether name denotes a pattern metavariable: a
// non-empty name whose first character is an ASCII uppercase letter.
func IsMetavariable(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// Equal is structural equality over tag + payload + Wrapped. Two nodes
// are equal only when every field matches.
func Equal(a, b SExpr) bool {
	switch x := a.(type) {
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Wrapped == y.Wrapped && x.Name == y.Name
	case *Call:
		y, ok := b.(*Call)
		return ok && x.Wrapped == y.Wrapped && x.Fun == y.Fun && Equal(x.Arg, y.Arg)
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || x.Wrapped != y.Wrapped || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Stringify renders an SExpr per spec.md §4.E.4. The Wrapped flag is
// never printed.
func Stringify(e SExpr) string {
	var b strings.Builder
	stringify(e, &b)
	return b.String()
}

func stringify(e SExpr, b *strings.Builder) {
	switch x := e.(type) {
	case *Symbol:
		b.WriteString(x.Name)
	case *Call:
		b.WriteString(x.Fun)
		b.WriteByte('[')
		stringify(x.Arg, b)
		b.WriteByte(']')
	case *Tuple:
		b.WriteByte('(')
		for i, el := range x.Elements {
			if i > 0 {
				b.WriteByte(' ')
			}
			stringify(el, b)
		}
		b.WriteByte(')')
	}
}
