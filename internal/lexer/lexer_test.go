package lexer

import (
	"testing"

	"github.com/formwalk/formwalk/internal/token"
)

func TestTokenizeBasic(t *testing.T) {
	input := "form swap : (A B) -> (B A)"

	expected := []struct {
		kind token.Kind
		text string
	}{
		{token.SYMBOL, "form"},
		{token.SYMBOL, "swap"},
		{token.COLON, ""},
		{token.LPAREN, ""},
		{token.SYMBOL, "A"},
		{token.SYMBOL, "B"},
		{token.RPAREN, ""},
		{token.ARROW, ""},
		{token.LPAREN, ""},
		{token.SYMBOL, "B"},
		{token.SYMBOL, "A"},
		{token.RPAREN, ""},
		{token.EOF, ""},
	}

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d (%v)", len(toks), len(expected), toks)
	}
	for i, want := range expected {
		if toks[i].Kind != want.kind {
			t.Fatalf("tok[%d] kind = %s, want %s", i, toks[i].Kind, want.kind)
		}
		if want.kind == token.SYMBOL && toks[i].Text != want.text {
			t.Fatalf("tok[%d] text = %q, want %q", i, toks[i].Text, want.text)
		}
	}
}

// P1: lex round-trip on identifiers.
func TestIdentifierRoundTrip(t *testing.T) {
	cases := []string{"a", "X", "foo_bar", "_underscore", "A1b2_3"}
	for _, in := range cases {
		toks, err := Tokenize(in)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", in, err)
		}
		if len(toks) != 2 || toks[0].Kind != token.SYMBOL || toks[0].Text != in || toks[1].Kind != token.EOF {
			t.Fatalf("Tokenize(%q) = %v, want single SYMBOL %q then EOF", in, toks, in)
		}
	}
}

func TestNewlineTracksLineAndColumn(t *testing.T) {
	toks, err := Tokenize("a\nb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Line != 0 || toks[0].Column != 0 {
		t.Fatalf("tok[0] loc = %d:%d, want 0:0", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 1 || toks[1].Column != 0 {
		t.Fatalf("tok[1] loc = %d:%d, want 1:0", toks[1].Line, toks[1].Column)
	}
}

func TestDashWithoutSuccessorIsLexError(t *testing.T) {
	_, err := Tokenize("a -")
	if err == nil {
		t.Fatalf("expected lex error for trailing '-'")
	}
}

func TestDashWithAnySuccessorLexesAsArrow(t *testing.T) {
	// Matches original_source/ss.py: the successor need not be '>'.
	toks, err := Tokenize("-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.ARROW {
		t.Fatalf("tok[0].Kind = %s, want ARROW", toks[0].Kind)
	}
}

func TestIllegalCharacter(t *testing.T) {
	_, err := Tokenize("a + b")
	if err == nil {
		t.Fatalf("expected lex error for '+'")
	}
	le, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if le.Char != '+' {
		t.Fatalf("error char = %q, want '+'", le.Char)
	}
}
