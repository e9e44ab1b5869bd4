// Package diagnostics formats the error kinds described in spec.md §7.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/formwalk/formwalk/internal/token"
)

// Code identifies one of the error kinds of spec.md §7.
type Code string

const (
	ErrLex      Code = "L001" // unexpected character
	ErrParse    Code = "P001" // wrong token kind or unexpected EOF
	ErrName     Code = "N001" // unknown transformation, builtin, or unlink target
	ErrConflict Code = "N002" // name already taken by the other table
	ErrMatch    Code = "M001" // pattern incompatibility
	ErrNoRule   Code = "M002" // no rule in a dispatch list is compatible
	ErrMode     Code = "C001" // CTCall outside a form definition
	ErrInternal Code = "I001" // unreachable code path
)

// Error is the error type raised by the parser, rewriter and evaluator;
// the lexer reports its own lexer.Error. Every value carries the token
// whose position it reports, per spec.md §6.
type Error struct {
	Code  Code
	Msg   string
	Token token.Token
	// Line is the original source line text for the offending token, or
	// "" if no source-line table was available to the caller.
	Line    string
	HasLine bool
}

func (e *Error) Error() string {
	if e.HasLine {
		return fmt.Sprintf("%s at %d:%d | %s", e.Msg, e.Token.Line+1, e.Token.Column, e.Line)
	}
	return fmt.Sprintf("%s at %d:%d", e.Msg, e.Token.Line+1, e.Token.Column)
}

// New builds an Error with no source-line table available.
func New(code Code, tok token.Token, msg string) *Error {
	return &Error{Code: code, Msg: msg, Token: tok}
}

// Newf is New with fmt.Sprintf-style formatting of msg.
func Newf(code Code, tok token.Token, format string, args ...interface{}) *Error {
	return New(code, tok, fmt.Sprintf(format, args...))
}

// WithSource annotates an Error with the full source so its message can
// include the offending line's text. lines may be nil if unavailable.
func WithSource(err *Error, lines []string) *Error {
	if err == nil {
		return nil
	}
	if err.Token.Line >= 0 && err.Token.Line < len(lines) {
		err.Line = lines[err.Token.Line]
		err.HasLine = true
	}
	return err
}

// SourceLines splits src into lines for use with WithSource.
func SourceLines(src string) []string {
	return strings.Split(src, "\n")
}
