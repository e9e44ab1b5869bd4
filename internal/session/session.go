// Package session assigns each program run an identifier, grounded on
// funxy/internal/evaluator/builtins_uuid.go's use of google/uuid - here
// the dependency moves from a language built-in into the driver's own
// per-run bookkeeping, since this core has no user-facing UUID type.
package session

import "github.com/google/uuid"

// ID uniquely names one interpret_program run, used to correlate a
// run's trace-log rows (internal/tracelog) with CLI logging.
type ID struct {
	uuid uuid.UUID
}

// New mints a fresh random (v4) session ID.
func New() ID {
	return ID{uuid: uuid.New()}
}

// String renders the session ID in its canonical hyphenated form.
func (id ID) String() string {
	return id.uuid.String()
}
