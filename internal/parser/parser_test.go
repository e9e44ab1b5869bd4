package parser

import (
	"testing"

	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/lexer"
	"github.com/formwalk/formwalk/internal/sexpr"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, err := ParseProgram(toks, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return stmts
}

func TestParseLet(t *testing.T) {
	stmts := parse(t, "let x : a")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	let, ok := stmts[0].(*ast.Let)
	if !ok {
		t.Fatalf("got %T, want *ast.Let", stmts[0])
	}
	if let.Name != "x" {
		t.Fatalf("got name %q, want x", let.Name)
	}
	sym, ok := let.Expr.(*ast.Symbol)
	if !ok || sym.Name != "a" {
		t.Fatalf("got expr %v, want symbol a", let.Expr)
	}
}

func TestParseDefForm(t *testing.T) {
	stmts := parse(t, "form swap : (A B) -> (B A)")
	form, ok := stmts[0].(*ast.DefForm)
	if !ok {
		t.Fatalf("got %T, want *ast.DefForm", stmts[0])
	}
	if form.Name != "swap" {
		t.Fatalf("got name %q, want swap", form.Name)
	}
	lhs, ok := form.LHS.(*ast.Tuple)
	if !ok || len(lhs.Elements) != 2 {
		t.Fatalf("unexpected LHS %v", form.LHS)
	}
	rhs, ok := form.RHS.(*ast.Tuple)
	if !ok || len(rhs.Elements) != 2 {
		t.Fatalf("unexpected RHS %v", form.RHS)
	}
}

func TestParseUnlink(t *testing.T) {
	stmts := parse(t, "unlink id")
	u, ok := stmts[0].(*ast.Unlink)
	if !ok || u.Name != "id" {
		t.Fatalf("got %v, want Unlink(id)", stmts[0])
	}
}

func TestParseShowCall(t *testing.T) {
	stmts := parse(t, "show id[(a b)]")
	s, ok := stmts[0].(*ast.Show)
	if !ok {
		t.Fatalf("got %T, want *ast.Show", stmts[0])
	}
	call, ok := s.Expr.(*ast.Call)
	if !ok || call.Fun != "id" {
		t.Fatalf("got %v, want Call(id, ...)", s.Expr)
	}
	tup, ok := call.Arg.(*ast.Tuple)
	if !ok || len(tup.Elements) != 2 {
		t.Fatalf("unexpected call arg %v", call.Arg)
	}
}

func TestParseShowCTCall(t *testing.T) {
	stmts := parse(t, "show ct`[x]")
	s := stmts[0].(*ast.Show)
	ct, ok := s.Expr.(*ast.CTCall)
	if !ok || ct.Fun != "ct" {
		t.Fatalf("got %v, want CTCall(ct, ...)", s.Expr)
	}
}

func TestParseShowQuote(t *testing.T) {
	stmts := parse(t, "show `a")
	s := stmts[0].(*ast.Show)
	q, ok := s.Expr.(*ast.Quote)
	if !ok {
		t.Fatalf("got %T, want *ast.Quote", s.Expr)
	}
	sym, ok := q.Sentence.(*ast.Symbol)
	if !ok || sym.Name != "a" {
		t.Fatalf("unexpected quote sentence %v", q.Sentence)
	}
}

func TestParseNestedTuple(t *testing.T) {
	stmts := parse(t, "show (a (b c) d)")
	s := stmts[0].(*ast.Show)
	tup := s.Expr.(*ast.Tuple)
	if len(tup.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(tup.Elements))
	}
	inner, ok := tup.Elements[1].(*ast.Tuple)
	if !ok || len(inner.Elements) != 2 {
		t.Fatalf("unexpected inner tuple %v", tup.Elements[1])
	}
}

func TestParseEmptyTuple(t *testing.T) {
	stmts := parse(t, "show ()")
	s := stmts[0].(*ast.Show)
	tup := s.Expr.(*ast.Tuple)
	if len(tup.Elements) != 0 {
		t.Fatalf("got %d elements, want 0", len(tup.Elements))
	}
}

func TestParseMultipleStatements(t *testing.T) {
	stmts := parse(t, "let x : a\nshow x\nunlink x")
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
}

func TestParseUnterminatedTupleIsParseError(t *testing.T) {
	toks, err := lexer.Tokenize("show (a b")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := ParseProgram(toks, nil); err == nil {
		t.Fatalf("expected a parse error for an unterminated tuple")
	}
}

func TestParseMissingArrowIsParseError(t *testing.T) {
	toks, err := lexer.Tokenize("form id : X X")
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := ParseProgram(toks, nil); err == nil {
		t.Fatalf("expected a parse error for a missing arrow")
	}
}

// P2: parse round-trip modulo whitespace, for expressions with no
// Quote/Call.
func TestParseRoundTripModuloWhitespace(t *testing.T) {
	cases := []string{"a", "(a b c)", "(a (b c) d)", "()"}
	for _, src := range cases {
		toks, err := lexer.Tokenize("show " + src)
		if err != nil {
			t.Fatalf("lex error on %q: %v", src, err)
		}
		stmts, err := ParseProgram(toks, nil)
		if err != nil {
			t.Fatalf("parse error on %q: %v", src, err)
		}
		first := stmts[0].(*ast.Show).Expr
		rendered := sexpr.Stringify(sexpr.Lower(first))

		toks2, err := lexer.Tokenize("show " + rendered)
		if err != nil {
			t.Fatalf("re-lex error on %q: %v", rendered, err)
		}
		stmts2, err := ParseProgram(toks2, nil)
		if err != nil {
			t.Fatalf("re-parse error on %q: %v", rendered, err)
		}
		second := stmts2[0].(*ast.Show).Expr
		if !sexpr.Equal(sexpr.Lower(first), sexpr.Lower(second)) {
			t.Fatalf("round trip mismatch for %q: got %q", src, rendered)
		}
	}
}
