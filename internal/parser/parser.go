// Package parser turns a formwalk token stream into a statement list, per
// spec.md §4.C's grammar. It is a plain recursive-descent parser - the
// grammar has no operator precedence to speak of, so the teacher's
// Pratt-parser machinery (prefix/infix function tables) is not needed
// here; the curToken/peekToken cursor idiom is kept.
package parser

import (
	"github.com/formwalk/formwalk/internal/ast"
	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/token"
)

// Parser holds the state of our parser: the token stream and a two-token
// look-ahead window. Parsing is a pure function of the input tokens; a
// Parser is never reused across programs.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	lines []string
}

// New creates a Parser positioned at the start of tokens. lines is the
// source split by line, used to annotate parse errors; it may be nil.
func New(tokens []token.Token, lines []string) *Parser {
	p := &Parser{tokens: tokens, lines: lines}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) err(tok token.Token, format string, args ...interface{}) error {
	return diagnostics.WithSource(diagnostics.Newf(diagnostics.ErrParse, tok, format, args...), p.lines)
}

// expect advances past the current token if it matches k, else raises a
// parse error naming both the expected and actual kind.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.curTokenIs(k) {
		return token.Token{}, p.err(p.curToken, "expected %s, got %s", k, p.curToken.Kind)
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

// expectSymbolText is for the keyword-as-identifier statement heads
// (`let`, `form`, `unlink`, `show`): the lexer has no keyword kind, so a
// keyword is a SYMBOL token whose text is checked directly.
func (p *Parser) expectSymbolText(text string) (token.Token, error) {
	if !p.curTokenIs(token.SYMBOL) || p.curToken.Text != text {
		return token.Token{}, p.err(p.curToken, "expected `%s', got %s", text, p.describeCur())
	}
	tok := p.curToken
	p.nextToken()
	return tok, nil
}

func (p *Parser) describeCur() string {
	if p.curTokenIs(token.SYMBOL) {
		return p.curToken.Text
	}
	if p.curTokenIs(token.EOF) {
		return "EOF"
	}
	return string(p.curToken.Kind)
}

// ParseProgram parses the complete token stream into an ordered
// statement list, per spec.md §4.C. Parsing stops at the first error.
func ParseProgram(tokens []token.Token, lines []string) ([]ast.Stmt, error) {
	p := New(tokens, lines)
	var stmts []ast.Stmt
	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// parseStmt parses one of the four statement forms of spec.md §4.C.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	if !p.curTokenIs(token.SYMBOL) {
		return nil, p.err(p.curToken, "expected a statement keyword, got %s", p.describeCur())
	}

	switch p.curToken.Text {
	case "let":
		return p.parseLet()
	case "form":
		return p.parseDefForm()
	case "unlink":
		return p.parseUnlink()
	case "show":
		return p.parseShow()
	default:
		return nil, p.err(p.curToken, "unknown statement keyword `%s'", p.curToken.Text)
	}
}

// parseLet parses `let` SYMBOL ':' expr.
func (p *Parser) parseLet() (ast.Stmt, error) {
	tok, err := p.expectSymbolText("let")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Token: tok, Name: name.Text, Expr: expr}, nil
}

// parseDefForm parses `form` SYMBOL ':' expr '->' expr.
func (p *Parser) parseDefForm() (ast.Stmt, error) {
	tok, err := p.expectSymbolText("form")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.DefForm{Token: tok, Name: name.Text, LHS: lhs, RHS: rhs}, nil
}

// parseUnlink parses `unlink` SYMBOL.
func (p *Parser) parseUnlink() (ast.Stmt, error) {
	tok, err := p.expectSymbolText("unlink")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.SYMBOL)
	if err != nil {
		return nil, err
	}
	return &ast.Unlink{Token: tok, Name: name.Text}, nil
}

// parseShow parses `show` expr.
func (p *Parser) parseShow() (ast.Stmt, error) {
	tok, err := p.expectSymbolText("show")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Show{Token: tok, Expr: expr}, nil
}

// startsTupleElement reports whether the current token can begin
// another greedily-read tuple element. Per spec.md §4.C and
// original_source/ss.py:219, a tuple element is a SYMBOL or LPAREN
// only - a GRAVE (quote) is not a valid bare element, so `(`a)` is a
// parse error, not a one-element tuple.
func (p *Parser) startsTupleElement() bool {
	return p.curTokenIs(token.SYMBOL) || p.curTokenIs(token.LPAREN)
}

// parseExpr parses one `expr` production of spec.md §4.C.
func (p *Parser) parseExpr() (ast.Expr, error) {
	switch {
	case p.curTokenIs(token.GRAVE):
		tok := p.curToken
		p.nextToken()
		sentence, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Quote{Token: tok, Sentence: sentence}, nil

	case p.curTokenIs(token.SYMBOL):
		return p.parseSymbolOrCall()

	case p.curTokenIs(token.LPAREN):
		return p.parseTuple()

	default:
		return nil, p.err(p.curToken, "expected an expression, got %s", p.describeCur())
	}
}

// parseSymbolOrCall parses the three alternatives that begin with a
// SYMBOL: a CTCall `` name`[arg] ``, a Call `name[arg]`, or a bare
// Symbol, distinguishing them by what immediately follows the name.
func (p *Parser) parseSymbolOrCall() (ast.Expr, error) {
	nameTok := p.curToken
	name := p.curToken.Text
	p.nextToken()

	if p.curTokenIs(token.GRAVE) {
		p.nextToken()
		if _, err := p.expect(token.LBRACK); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		return &ast.CTCall{Token: nameTok, Fun: name, Arg: arg}, nil
	}

	if p.curTokenIs(token.LBRACK) {
		p.nextToken()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		return &ast.Call{Token: nameTok, Fun: name, Arg: arg}, nil
	}

	return &ast.Symbol{Token: nameTok, Name: name}, nil
}

// parseTuple parses '(' expr* ')', reading elements greedily while the
// look-ahead starts an expression, per spec.md §4.C.
func (p *Parser) parseTuple() (ast.Expr, error) {
	tok, err := p.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}
	var elements []ast.Expr
	for p.startsTupleElement() {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Tuple{Token: tok, Elements: elements}, nil
}
