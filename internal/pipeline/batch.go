package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of records inserted concurrently.
const DefaultConcurrency = 4

// Execer executes a single statement. *database.Store satisfies it.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// RecordError describes a record that could not be imported.
type RecordError struct {
	// Index is the position of the record in the input.
	Index int

	// Table is the record's destination table.
	Table string

	// Err is the validation or engine error.
	Err error
}

// Error implements the error interface.
func (e RecordError) Error() string {
	return "record " + strconv.Itoa(e.Index) + " (" + e.Table + "): " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e RecordError) Unwrap() error {
	return e.Err
}

// Summary reports the outcome of an import.
type Summary struct {
	// Total is the number of records submitted.
	Total int

	// Inserted is the number of records written.
	Inserted int

	// Failed is the number of records rejected or failed in the engine.
	Failed int

	// Errors lists the failures ordered by record index.
	Errors []RecordError

	// Elapsed is the wall time of the import.
	Elapsed time.Duration
}

// Importer inserts records concurrently through an Execer.
type Importer struct {
	// store executes the generated statements.
	store Execer

	// concurrency is the maximum number of in-flight inserts.
	concurrency int

	// logger is used for import-level logging.
	logger *slog.Logger

	// sessionID fills the id column of records that leave it unset.
	sessionID string
}

// ImportOption configures an Importer.
type ImportOption func(*Importer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ImportOption {
	return func(im *Importer) {
		im.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent inserts.
// Non-positive values keep the default.
func WithConcurrency(n int) ImportOption {
	return func(im *Importer) {
		if n > 0 {
			im.concurrency = n
		}
	}
}

// WithSessionID sets the id used for records that do not carry one.
func WithSessionID(id string) ImportOption {
	return func(im *Importer) {
		im.sessionID = id
	}
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewImporter creates an Importer writing through store.
func NewImporter(store Execer, opts ...ImportOption) *Importer {
	im := &Importer{
		store:       store,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.logger == nil {
		im.logger = slog.Default()
	}
	return im
}

// Import inserts every record. Individual failures are collected in the
// summary and never stop the batch. The returned error is non-nil only when
// ctx was cancelled; a record interrupted by the cancellation counts as neither
// inserted nor failed.
func (im *Importer) Import(ctx context.Context, records []Record) (Summary, error) {
	im.logger.Info("starting import",
		"records", len(records),
		"concurrency", im.concurrency,
	)

	start := time.Now()
	summary := Summary{Total: len(records)}
	var mu sync.Mutex

	fail := func(i int, table string, err error) {
		mu.Lock()
		defer mu.Unlock()
		summary.Failed++
		summary.Errors = append(summary.Errors, RecordError{Index: i, Table: table, Err: err})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	for i, rec := range records {
		if im.sessionID != "" {
			rec = rec.WithDefaultID(im.sessionID)
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			query, args, err := rec.Statement()
			if err != nil {
				im.logger.Warn("record rejected", "index", i, "table", rec.Table, "error", err)
				fail(i, rec.Table, err)
				return nil
			}

			if _, err := im.store.Exec(ctx, query, args...); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				im.logger.Warn("insert failed", "index", i, "table", rec.Table, "error", err)
				fail(i, rec.Table, err)
				return nil
			}

			mu.Lock()
			summary.Inserted++
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	sort.Slice(summary.Errors, func(a, b int) bool {
		return summary.Errors[a].Index < summary.Errors[b].Index
	})
	summary.Elapsed = time.Since(start)

	im.logger.Info("import complete",
		"inserted", summary.Inserted,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
	)

	return summary, err
}
