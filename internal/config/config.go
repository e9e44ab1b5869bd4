// Package config centralizes the handful of constants shared across the
// driver and core packages, mirroring funxy/internal/config's role as
// the single home for cross-cutting constants rather than scattering
// them at each call site.
package config

// SourceFileExt is the canonical extension for formwalk source files.
const SourceFileExt = ".fw"

// Keywords lists the statement-head identifiers of spec.md §4.C. The
// lexer has no keyword kind of its own - these are plain SYMBOL tokens
// whose text the parser compares directly, without consulting this
// table.
var Keywords = []string{"let", "form", "unlink", "show"}

// IsKeyword reports whether name is one of the statement-head keywords.
func IsKeyword(name string) bool {
	for _, k := range Keywords {
		if k == name {
			return true
		}
	}
	return false
}
