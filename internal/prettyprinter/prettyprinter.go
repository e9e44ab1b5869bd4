// Package prettyprinter renders a surface ast.Expr/ast.Stmt tree as a
// pterm tree widget, grounded on
// gorgo/terex/terexlang/trepl/repl.go's "tree" command (leveledElem
// building a pterm.LeveledList, then pterm.NewTreeFromLeveledList /
// pterm.DefaultTree.WithRoot(...).Render()). This is strictly a debug
// aid for the CLI's dump-ast subcommand - it is not a REPL and has no
// read/eval loop of its own.
package prettyprinter

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/formwalk/formwalk/internal/ast"
)

// DumpStmts renders stmts as a pterm tree and writes it to stdout via
// pterm's own renderer (pterm chooses its own sink; there is no writer
// parameter in its API).
func DumpStmts(stmts []ast.Stmt) error {
	var ll pterm.LeveledList
	for i, stmt := range stmts {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("[%d] %s", i, stmtLabel(stmt))})
		ll = leveledExpr(exprOf(stmt), ll, 1)
	}
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Render()
}

func stmtLabel(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.Let:
		return fmt.Sprintf("let %s", s.Name)
	case *ast.DefForm:
		return fmt.Sprintf("form %s", s.Name)
	case *ast.Unlink:
		return fmt.Sprintf("unlink %s", s.Name)
	case *ast.Show:
		return "show"
	default:
		panic("prettyprinter.stmtLabel: unreachable statement kind")
	}
}

// exprOf returns the single expression a statement carries for tree
// display, or nil for Unlink (which carries only a name).
func exprOf(stmt ast.Stmt) ast.Expr {
	switch s := stmt.(type) {
	case *ast.Let:
		return s.Expr
	case *ast.DefForm:
		return &ast.Tuple{Token: s.Token, Elements: []ast.Expr{s.LHS, s.RHS}}
	case *ast.Unlink:
		return nil
	case *ast.Show:
		return s.Expr
	default:
		panic("prettyprinter.exprOf: unreachable statement kind")
	}
}

func leveledExpr(e ast.Expr, ll pterm.LeveledList, level int) pterm.LeveledList {
	if e == nil {
		return ll
	}
	switch x := e.(type) {
	case *ast.Symbol:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: x.Name})
	case *ast.Call:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf("%s[...]", x.Fun)})
		ll = leveledExpr(x.Arg, ll, level+1)
	case *ast.CTCall:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf("%s`[...]", x.Fun)})
		ll = leveledExpr(x.Arg, ll, level+1)
	case *ast.Quote:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "`"})
		ll = leveledExpr(x.Sentence, ll, level+1)
	case *ast.Tuple:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "()"})
		for _, el := range x.Elements {
			ll = leveledExpr(el, ll, level+1)
		}
	default:
		panic("prettyprinter.leveledExpr: unreachable expression kind")
	}
	return ll
}
