// Package evaluator implements spec.md §4.E: the two-mode expression
// evaluator, statement execution, and the semantic-tree normalisation
// pass, grounded on funxy/internal/evaluator/evaluator.go's
// Evaluator{Out io.Writer, ...} shape.
package evaluator

import (
	"io"
	"os"

	"github.com/formwalk/formwalk/internal/builtins"
	"github.com/formwalk/formwalk/internal/diagnostics"
	"github.com/formwalk/formwalk/internal/rulestore"
)

// Evaluator executes a parsed program against a rule-store Store. Out is
// where `show` statements write their results, kept as an explicit field
// (rather than a hardcoded os.Stdout) so tests can capture output.
type Evaluator struct {
	Out      io.Writer
	Store    *rulestore.Store
	Builtins builtins.Registry

	// lines is the current program's source split by line, for
	// diagnostics that include the offending line's text.
	lines []string
}

// New returns an Evaluator with a fresh Store and the default builtin
// catalogue, writing Show output to os.Stdout.
func New() *Evaluator {
	return &Evaluator{
		Out:      os.Stdout,
		Store:    rulestore.New(),
		Builtins: builtins.Default(),
	}
}

// SetSource installs the source text this Evaluator's diagnostics should
// quote. Call before ExecuteProgram.
func (e *Evaluator) SetSource(src string) {
	e.lines = diagnostics.SourceLines(src)
}
