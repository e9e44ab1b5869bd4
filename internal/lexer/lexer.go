// Package lexer turns formwalk source text into a flat token stream.
package lexer

import (
	"fmt"

	"github.com/formwalk/formwalk/internal/token"
)

// Error reports an unexpected character, with a 1-based line and 0-based
// column, per spec.md §4.B.
type Error struct {
	Line   int
	Column int
	Char   byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected symbol `%c' at %d:%d", e.Char, e.Line+1, e.Column)
}

// Lexer is a single-pass character scanner over the full source text.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, column: -1} // bumped to 0 by the first readChar
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = -1 // bumped to 0 by the column++ below
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func isAlnumOrUnderscore(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// Tokenize scans the entire input and returns its token stream, or the
// first lex error encountered.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, nil
}

func (l *Lexer) next() (token.Token, error) {
	for isSpace(l.ch) && l.ch != 0 {
		l.readChar()
	}

	line, column := l.line, l.column

	switch {
	case l.ch == 0:
		return token.New(token.EOF, line, column), nil
	case l.ch == '(':
		l.readChar()
		return token.New(token.LPAREN, line, column), nil
	case l.ch == ')':
		l.readChar()
		return token.New(token.RPAREN, line, column), nil
	case l.ch == '[':
		l.readChar()
		return token.New(token.LBRACK, line, column), nil
	case l.ch == ']':
		l.readChar()
		return token.New(token.RBRACK, line, column), nil
	case l.ch == ':':
		l.readChar()
		return token.New(token.COLON, line, column), nil
	case l.ch == '`':
		l.readChar()
		return token.New(token.GRAVE, line, column), nil
	case l.ch == '-':
		// Any '-' with a successor lexes as ARROW, even if that successor
		// isn't '>' - matches original_source/ss.py's lexer exactly.
		if l.peekChar() == 0 {
			return token.Token{}, &Error{Line: l.line, Column: l.column, Char: l.ch}
		}
		l.readChar()
		l.readChar()
		return token.New(token.ARROW, line, column), nil
	case isAlnumOrUnderscore(l.ch):
		start := l.position
		for isAlnumOrUnderscore(l.ch) {
			l.readChar()
		}
		return token.NewSymbol(line, column, l.input[start:l.position]), nil
	default:
		return token.Token{}, &Error{Line: l.line, Column: l.column, Char: l.ch}
	}
}
