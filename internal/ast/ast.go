// Package ast defines the surface syntax tree produced by the parser:
// the Expr/Stmt shapes of spec.md §4.A/§4.C. Every node keeps its
// originating token for diagnostics; this is the one thing that tells
// Expr apart from the token-free rewriter tree in package sexpr.
package ast

import "github.com/formwalk/formwalk/internal/token"

// Node is the root of both expression and statement trees.
type Node interface {
	GetToken() token.Token
	Accept(v Visitor)
}

// Expr is a surface expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a top-level statement.
type Stmt interface {
	Node
	stmtNode()
}

// Symbol is a bare identifier.
type Symbol struct {
	Token token.Token
	Name  string
}

func (s *Symbol) GetToken() token.Token { return s.Token }
func (s *Symbol) Accept(v Visitor)      { v.VisitSymbol(s) }
func (*Symbol) exprNode()               {}

// Call is a runtime invocation `fun[arg]`.
type Call struct {
	Token token.Token
	Fun   string
	Arg   Expr
}

func (c *Call) GetToken() token.Token { return c.Token }
func (c *Call) Accept(v Visitor)      { v.VisitCall(c) }
func (*Call) exprNode()               {}

// CTCall is a compile-time invocation `` fun`[arg] ``.
type CTCall struct {
	Token token.Token
	Fun   string
	Arg   Expr
}

func (c *CTCall) GetToken() token.Token { return c.Token }
func (c *CTCall) Accept(v Visitor)      { v.VisitCTCall(c) }
func (*CTCall) exprNode()               {}

// Quote is a prefix `` `e `` that suppresses one layer of evaluation.
type Quote struct {
	Token    token.Token
	Sentence Expr
}

func (q *Quote) GetToken() token.Token { return q.Token }
func (q *Quote) Accept(v Visitor)      { v.VisitQuote(q) }
func (*Quote) exprNode()               {}

// Tuple is a parenthesised sequence of expressions.
type Tuple struct {
	Token    token.Token
	Elements []Expr
}

func (t *Tuple) GetToken() token.Token { return t.Token }
func (t *Tuple) Accept(v Visitor)      { v.VisitTuple(t) }
func (*Tuple) exprNode()               {}

// Let binds Name to the value of Expr.
type Let struct {
	Token token.Token
	Name  string
	Expr  Expr
}

func (l *Let) GetToken() token.Token { return l.Token }
func (l *Let) Accept(v Visitor)      { v.VisitLet(l) }
func (*Let) stmtNode()               {}

// DefForm appends a rewrite rule `name : lhs -> rhs`.
type DefForm struct {
	Token token.Token
	Name  string
	LHS   Expr
	RHS   Expr
}

func (d *DefForm) GetToken() token.Token { return d.Token }
func (d *DefForm) Accept(v Visitor)      { v.VisitDefForm(d) }
func (*DefForm) stmtNode()               {}

// Unlink removes Name from either the symbol or transformation table.
type Unlink struct {
	Token token.Token
	Name  string
}

func (u *Unlink) GetToken() token.Token { return u.Token }
func (u *Unlink) Accept(v Visitor)      { v.VisitUnlink(u) }
func (*Unlink) stmtNode()               {}

// Show evaluates Expr and prints its stringified result.
type Show struct {
	Token token.Token
	Expr  Expr
}

func (s *Show) GetToken() token.Token { return s.Token }
func (s *Show) Accept(v Visitor)      { v.VisitShow(s) }
func (*Show) stmtNode()               {}

// Visitor dispatches over every Expr/Stmt kind. No package in this
// module implements it: the prettyprinter, evaluator and rewriter use
// exhaustive type switches instead, per spec.md §9's preference for
// case analysis over the rewriter's own tree.
type Visitor interface {
	VisitSymbol(*Symbol)
	VisitCall(*Call)
	VisitCTCall(*CTCall)
	VisitQuote(*Quote)
	VisitTuple(*Tuple)
	VisitLet(*Let)
	VisitDefForm(*DefForm)
	VisitUnlink(*Unlink)
	VisitShow(*Show)
}
