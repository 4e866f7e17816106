package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyDBPath is returned when the database path is empty.
	ErrEmptyDBPath = errors.New("invalid database path: must not be empty")

	// ErrInvalidBusyTimeout is returned when the busy timeout is below one millisecond.
	ErrInvalidBusyTimeout = errors.New("invalid busy timeout: must be at least 1ms")

	// ErrUnknownFormat is returned for an output format other than
	// text, json or markdown.
	ErrUnknownFormat = errors.New("unknown output format: must be text, json or markdown")

	// ErrInvalidConcurrency is returned when import concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
