package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "tracedb"

	// DefaultDBPath is the store file used when nothing else is configured.
	DefaultDBPath = "database.db"

	// DefaultBusyTimeout is how long SQLite waits on a locked database file.
	DefaultBusyTimeout = 5 * time.Second

	// DefaultFormat is the output format of query results.
	DefaultFormat = FormatText

	// DefaultConcurrency is the number of concurrent inserts during import.
	// Inserts are serialized by the store, so more workers mostly buys
	// overlap between YAML decoding and SQLite I/O.
	DefaultConcurrency = 4
)

// Output formats for query results.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for tracedb.
// It is populated from defaults, then the config file, then CLI flags.
type Config struct {
	// DBPath is the path of the SQLite database file.
	DBPath string

	// EnableWAL enables Write-Ahead Logging on the database file.
	EnableWAL bool

	// BusyTimeout is how long SQLite waits on a locked file before failing.
	BusyTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches log output to JSON.
	LogJSON bool

	// MaskIP masks IP addresses in log output.
	MaskIP bool

	// Format is the output format of query results: text, json or markdown.
	Format string

	// Concurrency is the number of concurrent inserts during import.
	Concurrency int

	// ConfigFilePath is the config file that was loaded, if any.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		DBPath:      DefaultDBPath,
		EnableWAL:   true,
		BusyTimeout: DefaultBusyTimeout,
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for tracedb.
// On Linux: ~/.local/share/tracedb
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for tracedb.
// On Linux: ~/.config/tracedb
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the path of the per-user config file.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return ErrEmptyDBPath
	}
	// The store takes whole milliseconds and treats 0 as unset.
	if c.BusyTimeout < time.Millisecond {
		return ErrInvalidBusyTimeout
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrUnknownFormat
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
