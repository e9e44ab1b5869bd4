package rewriter

import (
	"testing"

	"github.com/formwalk/formwalk/internal/sexpr"
	"github.com/formwalk/formwalk/internal/token"
)

func sym(name string) *sexpr.Symbol { return &sexpr.Symbol{Name: name} }

func tup(els ...sexpr.SExpr) *sexpr.Tuple { return &sexpr.Tuple{Elements: els} }

func call(fun string, arg sexpr.SExpr) *sexpr.Call { return &sexpr.Call{Fun: fun, Arg: arg} }

var noTok = token.Token{}

func TestWalkBindsMetavariable(t *testing.T) {
	b, err := Walk(sym("a"), sym("X"), map[string]sexpr.SExpr{}, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sexpr.Equal(b["X"], sym("a")) {
		t.Fatalf("X bound to %v, want `a`", b["X"])
	}
}

func TestWalkLaterBindingOverwritesEarlier(t *testing.T) {
	form := tup(sym("X"), sym("X"))
	expr := tup(sym("a"), sym("b"))
	b, err := Walk(expr, form, map[string]sexpr.SExpr{}, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sexpr.Equal(b["X"], sym("b")) {
		t.Fatalf("X bound to %v, want `b` (last binding wins)", b["X"])
	}
}

func TestWalkTupleArityMismatchFails(t *testing.T) {
	_, err := Walk(tup(sym("a")), tup(sym("X"), sym("Y")), map[string]sexpr.SExpr{}, noTok, nil)
	if err == nil {
		t.Fatalf("expected arity mismatch error")
	}
}

func TestWalkLiteralMismatchFails(t *testing.T) {
	_, err := Walk(sym("a"), sym("b"), map[string]sexpr.SExpr{}, noTok, nil)
	if err == nil {
		t.Fatalf("expected literal mismatch error")
	}
}

// P3: matching soundness.
func TestIsCompatibleImpliesWalkSucceeds(t *testing.T) {
	expr := tup(sym("a"), sym("b"))
	form := tup(sym("X"), sym("Y"))
	if !IsCompatible(expr, form) {
		t.Fatalf("expected compatible")
	}
	if _, err := Walk(expr, form, map[string]sexpr.SExpr{}, noTok, nil); err != nil {
		t.Fatalf("walk failed after IsCompatible succeeded: %v", err)
	}
}

// Scenario 4: identity form.
func TestSubstituteIdentity(t *testing.T) {
	lhs := sym("X")
	rhs := sym("X")
	expr := tup(sym("a"), sym("b"))
	got, err := Substitute(expr, lhs, rhs, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sexpr.Stringify(got) != "(a b)" {
		t.Fatalf("got %s, want (a b)", sexpr.Stringify(got))
	}
}

// Scenario 5: swap form.
func TestSubstituteSwap(t *testing.T) {
	lhs := tup(sym("A"), sym("B"))
	rhs := tup(sym("B"), sym("A"))
	expr := tup(sym("a"), sym("b"))
	got, err := Substitute(expr, lhs, rhs, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sexpr.Stringify(got) != "(b a)" {
		t.Fatalf("got %s, want (b a)", sexpr.Stringify(got))
	}
}

// P5: wrap hygiene - no top-level Wrapped node survives, and binding
// cross-contamination does not occur between two distinct metavariables.
func TestSubstituteHygieneNoCrossContamination(t *testing.T) {
	// form X Y -> (X Y); substituting X=a, Y=X(literal symbol named "X")
	// must not let the newly inserted literal symbol "X" be replaced by
	// X's binding in the same pass.
	lhs := tup(sym("X"), sym("Y"))
	rhs := tup(sym("X"), sym("Y"))
	expr := tup(sym("a"), sym("X")) // Y binds to the literal symbol "X"
	got, err := Substitute(expr, lhs, rhs, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sexpr.Wrapped(got) {
		t.Fatalf("result is still wrapped at top level")
	}
	if sexpr.Stringify(got) != "(a X)" {
		t.Fatalf("got %s, want (a X) - no cross-contamination", sexpr.Stringify(got))
	}
}

// P4: rule ordering - lowest-indexed compatible rule wins.
func TestSubstituteCompatiblePicksFirstMatch(t *testing.T) {
	rules := []Rule{
		{LHS: sym("a"), RHS: sym("first")},
		{LHS: sym("X"), RHS: sym("second")},
	}
	got, err := SubstituteCompatible(sym("a"), rules, noTok, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sexpr.Stringify(got) != "first" {
		t.Fatalf("got %s, want first", sexpr.Stringify(got))
	}
}

func TestSubstituteCompatibleNoMatch(t *testing.T) {
	rules := []Rule{{LHS: sym("a"), RHS: sym("first")}}
	_, err := SubstituteCompatible(sym("b"), rules, noTok, nil)
	if err == nil {
		t.Fatalf("expected no-rule-matches error")
	}
}

// Wrap/unwrap asymmetry regression, per spec.md §9 Design Notes.
func TestUnwrapTupleSetsTopWrappedTrue(t *testing.T) {
	e := tup(sym("a"), sym("b"))
	got := Unwrap(e).(*sexpr.Tuple)
	if !got.Wrapped {
		t.Fatalf("Unwrap(Tuple) must set the top Wrapped flag true")
	}
	for _, el := range got.Elements {
		if sexpr.Wrapped(el) {
			t.Fatalf("Unwrap(Tuple) must unwrap children")
		}
	}
}

func TestUnwrapCallRecursesIntoArgOnly(t *testing.T) {
	e := call("f", sym("a"))
	e.Wrapped = true
	got := Unwrap(e).(*sexpr.Call)
	if got.Wrapped {
		t.Fatalf("Unwrap(Call) must clear the top Wrapped flag")
	}
	if got.Fun != "f" {
		t.Fatalf("Unwrap(Call) must not touch Fun")
	}
}

func TestWrapIsIdempotent(t *testing.T) {
	e := Wrap(sym("a"))
	again := Wrap(e)
	if !sexpr.Wrapped(again) {
		t.Fatalf("Wrap must stay wrapped")
	}
}

func TestReplaceStopsAtWrappedNode(t *testing.T) {
	wrapped := Wrap(sym("target"))
	e := tup(wrapped, sym("other"))
	got := Replace(e, sym("target"), sym("replacement")).(*sexpr.Tuple)
	if !sexpr.Equal(got.Elements[0], wrapped) {
		t.Fatalf("Replace descended into a wrapped node")
	}
	if !sexpr.Equal(got.Elements[1], sym("other")) {
		t.Fatalf("unrelated sibling changed unexpectedly")
	}
}
