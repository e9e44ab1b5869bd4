// Package rulestore holds the process-wide rule-store state of spec.md
// §3: symbols, run-time transformations, compile-time meta-transformations.
// It is modeled as an explicit, reentrant context rather than a package
// singleton, per spec.md §9 ("model as an explicit context passed through
// the evaluator rather than a singleton. This makes the core reentrant
// and testable without teardown between runs.").
//
// The three name tables use github.com/emirpasic/gods/maps/linkedhashmap
// so that a debug dump can walk them in definition order, grounded on
// gorgo/lr/tables.go's combined use of the gods collection family; each
// name's rule list uses gods/lists/arraylist for the same reason.
package rulestore

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/formwalk/formwalk/internal/sexpr"
	"github.com/formwalk/formwalk/internal/token"
)

// Symbol is a stored `let`-bound value together with its defining token,
// used to report the location of a prior definition in conflict errors.
type Symbol struct {
	Value sexpr.SExpr
	Token token.Token
}

// TransformRule is one run-time rule: a (lhs, rhs) pair plus the token of
// the `form` statement that defined it.
type TransformRule struct {
	LHS   sexpr.SExpr
	RHS   sexpr.SExpr
	Token token.Token
}

// MetaRule is one compile-time rule: no defining token is kept because
// meta-transformations are never cited in a conflict error.
type MetaRule struct {
	LHS sexpr.SExpr
	RHS sexpr.SExpr
}

// Store is the rule-store context threaded through one interpret_program
// run. Its lifecycle is exactly one program execution, per spec.md §5.
type Store struct {
	symbols             *linkedhashmap.Map // name -> Symbol
	transformations     *linkedhashmap.Map // name -> *arraylist.List of TransformRule
	metaTransformations *linkedhashmap.Map // name -> *arraylist.List of MetaRule
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		symbols:             linkedhashmap.New(),
		transformations:     linkedhashmap.New(),
		metaTransformations: linkedhashmap.New(),
	}
}

// Symbol looks up a bound symbol.
func (s *Store) Symbol(name string) (Symbol, bool) {
	v, ok := s.symbols.Get(name)
	if !ok {
		return Symbol{}, false
	}
	return v.(Symbol), true
}

// SetSymbol binds name to a symbol value, overwriting any prior binding.
func (s *Store) SetSymbol(name string, sym Symbol) {
	s.symbols.Put(name, sym)
}

// HasSymbol reports whether name is bound in the symbol table.
func (s *Store) HasSymbol(name string) bool {
	_, ok := s.symbols.Get(name)
	return ok
}

// RemoveSymbol deletes name from the symbol table.
func (s *Store) RemoveSymbol(name string) {
	s.symbols.Remove(name)
}

// HasTransformation reports whether name has at least one run-time rule.
func (s *Store) HasTransformation(name string) bool {
	_, ok := s.transformations.Get(name)
	return ok
}

// Transformations returns name's ordered run-time rule list.
func (s *Store) Transformations(name string) []TransformRule {
	v, ok := s.transformations.Get(name)
	if !ok {
		return nil
	}
	list := v.(*arraylist.List)
	out := make([]TransformRule, list.Size())
	for i, raw := range list.Values() {
		out[i] = raw.(TransformRule)
	}
	return out
}

// AppendTransformation appends a run-time rule to name's list, creating
// the list if this is the first rule for name.
func (s *Store) AppendTransformation(name string, rule TransformRule) {
	v, ok := s.transformations.Get(name)
	var list *arraylist.List
	if ok {
		list = v.(*arraylist.List)
	} else {
		list = arraylist.New()
		s.transformations.Put(name, list)
	}
	list.Add(rule)
}

// FirstTransformationToken returns the token of the first rule defined
// for name, used to cite "already taken by a transformation at ...".
func (s *Store) FirstTransformationToken(name string) (token.Token, bool) {
	rules := s.Transformations(name)
	if len(rules) == 0 {
		return token.Token{}, false
	}
	return rules[0].Token, true
}

// RemoveTransformation deletes name's entire run-time rule list.
func (s *Store) RemoveTransformation(name string) {
	s.transformations.Remove(name)
}

// MetaTransformations returns name's ordered compile-time rule list.
func (s *Store) MetaTransformations(name string) []MetaRule {
	v, ok := s.metaTransformations.Get(name)
	if !ok {
		return nil
	}
	list := v.(*arraylist.List)
	out := make([]MetaRule, list.Size())
	for i, raw := range list.Values() {
		out[i] = raw.(MetaRule)
	}
	return out
}

// HasMetaTransformation reports whether name has at least one
// compile-time rule.
func (s *Store) HasMetaTransformation(name string) bool {
	_, ok := s.metaTransformations.Get(name)
	return ok
}

// AppendMetaTransformation appends a compile-time rule to name's list.
func (s *Store) AppendMetaTransformation(name string, rule MetaRule) {
	v, ok := s.metaTransformations.Get(name)
	var list *arraylist.List
	if ok {
		list = v.(*arraylist.List)
	} else {
		list = arraylist.New()
		s.metaTransformations.Put(name, list)
	}
	list.Add(rule)
}

// SymbolNames returns bound symbol names in definition order.
func (s *Store) SymbolNames() []string {
	keys := s.symbols.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// TransformationNames returns transformation names in definition order.
func (s *Store) TransformationNames() []string {
	keys := s.transformations.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}
