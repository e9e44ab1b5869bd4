// Package tracelog provides an optional, driver-level audit trail of
// the statements a program executed, grounded on
// funxy/internal/evaluator/builtins_sql.go's database/sql +
// modernc.org/sqlite pairing. This is strictly a side channel for
// operators inspecting a run after the fact: the rule store itself
// remains in-memory and is discarded at program end exactly as spec.md
// §5 and §6 require ("Persisted state: None"); nothing here is read
// back by the evaluator, and a program's behaviour is identical with
// or without a trace log attached.
package tracelog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/formwalk/formwalk/internal/token"
)

// Log records executed statements into a SQLite database, one row per
// statement, keyed by the owning session ID (internal/session).
type Log struct {
	db *sql.DB
}

// Open creates (or reuses) the SQLite database at path and ensures its
// schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tracelog: open %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS statements (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT    NOT NULL,
	seq        INTEGER NOT NULL,
	kind       TEXT    NOT NULL,
	name       TEXT    NOT NULL,
	line       INTEGER NOT NULL,
	column     INTEGER NOT NULL,
	ok         INTEGER NOT NULL,
	detail     TEXT    NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracelog: create schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one executed statement's outcome.
func (l *Log) Record(sessionID string, seq int, kind, name string, tok token.Token, execErr error) error {
	detail := ""
	ok := 1
	if execErr != nil {
		detail = execErr.Error()
		ok = 0
	}
	_, err := l.db.Exec(
		`INSERT INTO statements (session_id, seq, kind, name, line, column, ok, detail) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, seq, kind, name, tok.Line+1, tok.Column, ok, detail,
	)
	if err != nil {
		return fmt.Errorf("tracelog: record statement: %w", err)
	}
	return nil
}
