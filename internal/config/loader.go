package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name searched in the current directory.
const DefaultConfigFile = ".tracedb.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the YAML configuration file.
// Pointer fields distinguish "not set" from zero values.
type File struct {
	Database DatabaseSection `yaml:"database"`
	Log      LogSection      `yaml:"log"`
	Output   OutputSection   `yaml:"output"`
	Import   ImportSection   `yaml:"import"`
}

// DatabaseSection configures the store.
type DatabaseSection struct {
	Path        string `yaml:"path,omitempty"`
	WAL         *bool  `yaml:"wal,omitempty"`
	BusyTimeout string `yaml:"busyTimeout,omitempty"`
}

// LogSection configures logging.
type LogSection struct {
	Verbose *bool `yaml:"verbose,omitempty"`
	JSON    *bool `yaml:"json,omitempty"`
	MaskIP  *bool `yaml:"maskIP,omitempty"`
}

// OutputSection configures result rendering.
type OutputSection struct {
	Format string `yaml:"format,omitempty"`
}

// ImportSection configures bulk import.
type ImportSection struct {
	Concurrency int `yaml:"concurrency,omitempty"`
}

// LoadConfigFile loads a YAML config file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply merges the values set in f over c.
func (f *File) Apply(c *Config) error {
	if f.Database.Path != "" {
		c.DBPath = f.Database.Path
	}
	if f.Database.WAL != nil {
		c.EnableWAL = *f.Database.WAL
	}
	if f.Database.BusyTimeout != "" {
		d, err := time.ParseDuration(f.Database.BusyTimeout)
		if err != nil {
			return ErrInvalidBusyTimeout
		}
		c.BusyTimeout = d
	}
	if f.Log.Verbose != nil {
		c.Verbose = *f.Log.Verbose
	}
	if f.Log.JSON != nil {
		c.LogJSON = *f.Log.JSON
	}
	if f.Log.MaskIP != nil {
		c.MaskIP = *f.Log.MaskIP
	}
	if f.Output.Format != "" {
		c.Format = f.Output.Format
	}
	if f.Import.Concurrency != 0 {
		c.Concurrency = f.Import.Concurrency
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .tracedb.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns the path of the file found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if p := XDGConfigFile(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Load builds a Config from defaults and the config file found by
// FindConfigFile. An explicit configPath that does not exist is an error;
// a missing default config file is not.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, ErrConfigNotFound
		}
		return cfg, nil
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = path
	return cfg, nil
}
