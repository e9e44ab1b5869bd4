package sexpr

import "github.com/formwalk/formwalk/internal/ast"

// Lower converts a surface ast.Expr into an SExpr. Symbol/Call/Tuple map
// pointwise with Wrapped=false; Quote unwraps its sentence by lowering
// it (suppressing one evaluation layer); CTCall has no lowering - it is
// dispatched entirely at compile time and never reaches SExpr, per
// spec.md §4.A.
func Lower(e ast.Expr) SExpr {
	switch x := e.(type) {
	case *ast.Symbol:
		return &Symbol{Wrapped: false, Name: x.Name}
	case *ast.Call:
		return &Call{Wrapped: false, Fun: x.Fun, Arg: Lower(x.Arg)}
	case *ast.Tuple:
		els := make([]SExpr, len(x.Elements))
		for i, el := range x.Elements {
			els[i] = Lower(el)
		}
		return &Tuple{Wrapped: false, Elements: els}
	case *ast.Quote:
		return Lower(x.Sentence)
	default:
		panic("sexpr.Lower: unreachable expression kind")
	}
}
