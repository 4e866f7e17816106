package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/tracedb/internal/model"
)

const (
	// DefaultPath is the database file used when Open is given an empty path.
	DefaultPath = "database.db"

	// MemoryPath opens a private in-memory database. Mostly useful in tests.
	MemoryPath = ":memory:"

	// DefaultBusyTimeout is how long SQLite waits on a locked file, in milliseconds.
	DefaultBusyTimeout = 5000
)

// Store is the database-backed persistence component.
// It owns one connection for its whole lifetime. A Store is safe for
// concurrent use; calls are serialized.
type Store struct {
	// mu serializes every call, including Close.
	mu sync.Mutex

	// db is nil once the store is closed.
	db *sql.DB

	// path is the database file path.
	path string

	// created is true when Open found no file and created the schema.
	created bool

	// logger receives diagnostics for failures swallowed by the lenient calls.
	logger *slog.Logger
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its parent directory
	// when they don't exist. When false, Open fails with ErrNotFound.
	CreateIfNotExists bool

	// EnableWAL switches the file to Write-Ahead Logging.
	EnableWAL bool

	// BusyTimeout is the SQLite busy timeout in milliseconds.
	// Zero uses DefaultBusyTimeout.
	BusyTimeout int

	// Logger receives failure diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		BusyTimeout:       DefaultBusyTimeout,
	}
}

// Open opens or creates the store at path. An empty path means DefaultPath.
//
// If the file did not exist before opening, the fixed schema is created.
// An existing file is opened as-is and its tables are left alone.
// Any failure here is returned; nothing can proceed without a connection.
func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	existed := false
	if path != MemoryPath {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			existed = true
		case errors.Is(err, fs.ErrNotExist):
			if !opts.CreateIfNotExists {
				return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrNotFound, path)
			}
			if dir := filepath.Dir(path); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		default:
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	}

	dsn := path
	if path != MemoryPath {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps every call on the same SQLite handle, which also
	// keeps an in-memory database alive for the life of the store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	busyTimeout := opts.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	ctx := context.Background()
	pragmas := []string{fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout)}
	if opts.EnableWAL && path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	s := &Store{
		db:     db,
		path:   path,
		logger: logger,
	}

	if !existed {
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		s.created = true
		logger.Debug("created database schema", "path", path, "tables", len(tables))
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Created reports whether Open created the schema for a new file.
func (s *Store) Created() bool {
	return s.created
}

// Close releases the connection. Closing twice, or closing a nil Store,
// is a no-op.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// EnsureSchema runs the CREATE TABLE IF NOT EXISTS script for all tables.
// It is idempotent and leaves existing tables and rows untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return newError(KindClosed, opSchema, ErrClosed)
	}
	if _, err := s.db.ExecContext(ctx, schemaScript()); err != nil {
		return newError(KindEngine, opSchema, err)
	}
	return nil
}

// Query executes query and returns every result row with the column names.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*model.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.query(ctx, opQuery, 0, query, args...)
}

// QueryRow executes query and returns its first row.
// A query matching nothing returns an error of kind KindNoRows.
func (s *Store) QueryRow(ctx context.Context, query string, args ...any) (model.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.query(ctx, opQueryRow, 1, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, newError(KindNoRows, opQueryRow, ErrNoRows)
	}
	return rs.Rows[0], nil
}

// Exec executes a statement (typically INSERT or UPDATE) and returns the
// number of rows affected. The statement is committed on success; on
// failure nothing is rolled back beyond what SQLite itself undoes.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, newError(KindClosed, opExec, ErrClosed)
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, newError(KindEngine, opExec, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, newError(KindEngine, opExec, err)
	}
	return n, nil
}

// Dump returns every row of the named table with its column names.
// The name is not escaped or validated; callers are trusted.
func (s *Store) Dump(ctx context.Context, table string) (*model.ResultSet, error) {
	rs, err := s.Query(ctx, dumpQuery(table))
	if err != nil {
		return nil, err
	}
	rs.Title = table
	return rs, nil
}

// RunQuery executes query and returns all rows.
// On failure it logs the error and returns an empty slice.
func (s *Store) RunQuery(ctx context.Context, query string, args ...any) []model.Row {
	rs, err := s.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("error executing query", "query", query, "error", err)
		return []model.Row{}
	}
	return rs.Rows
}

// RunInsert executes a statement and commits it.
// It returns false, after logging the error, if the statement failed.
func (s *Store) RunInsert(ctx context.Context, query string, args ...any) bool {
	if _, err := s.Exec(ctx, query, args...); err != nil {
		s.logger.Error("error executing insert", "query", query, "error", err)
		return false
	}
	return true
}

// FetchSingle returns the first row of query, or nil when nothing matched
// or the query failed. Failures are logged; an empty result is not.
func (s *Store) FetchSingle(ctx context.Context, query string, args ...any) model.Row {
	row, err := s.QueryRow(ctx, query, args...)
	if err != nil {
		if KindOf(err) != KindNoRows {
			s.logger.Error("error fetching row", "query", query, "error", err)
		}
		return nil
	}
	return row
}

// DumpTable returns every row of the named table, degrading like RunQuery.
// It is exactly RunQuery("SELECT * FROM " + table).
func (s *Store) DumpTable(ctx context.Context, table string) []model.Row {
	return s.RunQuery(ctx, dumpQuery(table))
}

// Tables returns the names of the user tables in the database, sorted.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.query(ctx, opTables, 0,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		names = append(names, model.FormatValue(row[0]))
	}
	return names, nil
}

// Columns returns the column names of table in declaration order.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// PRAGMA table_info columns: cid, name, type, notnull, dflt_value, pk.
	rs, err := s.query(ctx, opColumns, 0, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, newError(KindEngine, opColumns, fmt.Errorf("no such table: %s", table))
	}
	names := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		names = append(names, model.FormatValue(row[1]))
	}
	return names, nil
}

// Count returns the number of rows in table. Unlike Dump, the name is
// quoted, so any table name is safe to pass.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.query(ctx, opCount, 1, "SELECT COUNT(*) FROM "+quoteIdent(table))
	if err != nil {
		return 0, err
	}
	n, ok := rs.Rows[0][0].(int64)
	if !ok {
		return 0, newError(KindEngine, opCount, fmt.Errorf("unexpected count value %v", rs.Rows[0][0]))
	}
	return n, nil
}

// query runs a statement and drains up to limit rows (0 means all).
// The caller must hold s.mu.
func (s *Store) query(ctx context.Context, op string, limit int, query string, args ...any) (*model.ResultSet, error) {
	if s.db == nil {
		return nil, newError(KindClosed, op, ErrClosed)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newError(KindEngine, op, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newError(KindEngine, op, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, newError(KindEngine, op, err)
	}
	dateColumns := make([]bool, len(types))
	for i, ct := range types {
		dateColumns[i] = isDateType(ct.DatabaseTypeName())
	}

	rs := &model.ResultSet{
		Columns: columns,
		Rows:    make([]model.Row, 0),
	}
	for rows.Next() {
		values := make(model.Row, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, newError(KindEngine, op, err)
		}
		for i, v := range values {
			if t, ok := v.(time.Time); ok && dateColumns[i] {
				values[i] = dateText(t)
			}
		}
		rs.Rows = append(rs.Rows, values)
		if limit > 0 && len(rs.Rows) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, newError(KindEngine, op, err)
	}
	return rs, nil
}

// isDateType reports whether the driver parses TEXT values of a column with
// this declared type into time.Time.
func isDateType(name string) bool {
	switch strings.ToUpper(name) {
	case "DATE", "DATETIME", "TIMESTAMP":
		return true
	}
	return false
}

// dateText renders a parsed DATE value back in SQLite's text layout:
// "YYYY-MM-DD" for a bare date, "YYYY-MM-DD HH:MM:SS[.fff]" otherwise,
// followed by the offset when the stored text carried one.
func dateText(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	layout := "2006-01-02 15:04:05.999999999"
	if t.Location() != time.UTC {
		layout += "-07:00"
	}
	return t.Format(layout)
}

func dumpQuery(table string) string {
	return "SELECT * FROM " + table
}

// quoteIdent quotes an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
