package database

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the store.
// They can be matched with errors.Is through a *Error.
var (
	// ErrNoRows is returned by QueryRow when the query matched nothing.
	ErrNoRows = errors.New("no rows in result set")

	// ErrClosed is returned when the store has already been closed.
	ErrClosed = errors.New("database is closed")

	// ErrNotFound is returned by Open when the database file does not exist
	// and Options.CreateIfNotExists is false.
	ErrNotFound = errors.New("database not found")
)

// Kind classifies a store error.
type Kind int

const (
	// KindNone means no error.
	KindNone Kind = iota
	// KindNoRows means the query ran but matched no rows.
	KindNoRows
	// KindEngine covers every failure raised by SQLite: malformed SQL,
	// constraint violations, I/O failures and lock conflicts alike.
	KindEngine
	// KindClosed means the store was used after Close.
	KindClosed
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNoRows:
		return "no rows"
	case KindEngine:
		return "engine failure"
	case KindClosed:
		return "closed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by the strict store methods.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op describes the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err.
// Errors that did not come from the store are reported as KindEngine.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindEngine
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Operation names used in *Error.Op.
const (
	opQuery    = "failed to execute query"
	opExec     = "failed to execute statement"
	opQueryRow = "failed to fetch row"
	opSchema   = "failed to create tables"
	opTables   = "failed to list tables"
	opColumns  = "failed to list columns"
	opCount    = "failed to count rows"
)
