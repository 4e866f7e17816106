package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default DBPath is database.db", func(t *testing.T) {
		t.Parallel()
		if cfg.DBPath != "database.db" {
			t.Errorf("expected DBPath to be 'database.db', got '%s'", cfg.DBPath)
		}
	})

	t.Run("WAL is enabled by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.EnableWAL {
			t.Error("expected EnableWAL to be true")
		}
	})

	t.Run("default BusyTimeout is 5 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.BusyTimeout != 5*time.Second {
			t.Errorf("expected BusyTimeout to be 5s, got %v", cfg.BusyTimeout)
		}
	})

	t.Run("default Format is text", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != FormatText {
			t.Errorf("expected Format to be text, got %q", cfg.Format)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests each validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "empty DBPath", mutate: func(c *Config) { c.DBPath = "" }, wantErr: ErrEmptyDBPath},
		{name: "negative BusyTimeout", mutate: func(c *Config) { c.BusyTimeout = -time.Second }, wantErr: ErrInvalidBusyTimeout},
		{name: "zero BusyTimeout", mutate: func(c *Config) { c.BusyTimeout = 0 }, wantErr: ErrInvalidBusyTimeout},
		{name: "sub-millisecond BusyTimeout", mutate: func(c *Config) { c.BusyTimeout = 500 * time.Microsecond }, wantErr: ErrInvalidBusyTimeout},
		{name: "one millisecond BusyTimeout", mutate: func(c *Config) { c.BusyTimeout = time.Millisecond }, wantErr: nil},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "csv" }, wantErr: ErrUnknownFormat},
		{name: "json format", mutate: func(c *Config) { c.Format = FormatJSON }, wantErr: nil},
		{name: "markdown format", mutate: func(c *Config) { c.Format = FormatMarkdown }, wantErr: nil},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "negative concurrency", mutate: func(c *Config) { c.Concurrency = -2 }, wantErr: ErrInvalidConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestXDGPaths(t *testing.T) {
	t.Parallel()

	if filepath.Base(XDGDataDir()) != AppName {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if filepath.Base(XDGConfigDir()) != AppName {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
	if filepath.Dir(XDGConfigFile()) != XDGConfigDir() {
		t.Errorf("expected config file inside config dir, got %q", XDGConfigFile())
	}
}

// writeConfig writes a config file into a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "database: [unclosed")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("parses every section", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
database:
  path: /var/lib/tracedb/store.db
  wal: false
  busyTimeout: 2s
log:
  verbose: true
  json: true
  maskIP: true
output:
  format: markdown
import:
  concurrency: 8
`)
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("unexpected apply error: %v", err)
		}

		if cfg.DBPath != "/var/lib/tracedb/store.db" {
			t.Errorf("unexpected DBPath %q", cfg.DBPath)
		}
		if cfg.EnableWAL {
			t.Error("expected WAL to be disabled")
		}
		if cfg.BusyTimeout != 2*time.Second {
			t.Errorf("expected 2s busy timeout, got %v", cfg.BusyTimeout)
		}
		if !cfg.Verbose || !cfg.LogJSON || !cfg.MaskIP {
			t.Errorf("expected log flags to be set: %+v", cfg)
		}
		if cfg.Format != FormatMarkdown {
			t.Errorf("expected markdown format, got %q", cfg.Format)
		}
		if cfg.Concurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", cfg.Concurrency)
		}
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "output:\n  format: json\n")
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("unexpected apply error: %v", err)
		}
		if cfg.DBPath != DefaultDBPath || !cfg.EnableWAL || cfg.Concurrency != DefaultConcurrency {
			t.Errorf("expected defaults to be kept: %+v", cfg)
		}
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "database:\n  busyTimeout: soon\n")
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.Apply(NewConfig()); !errors.Is(err, ErrInvalidBusyTimeout) {
			t.Errorf("expected ErrInvalidBusyTimeout, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit path is loaded", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "database:\n  path: custom.db\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DBPath != "custom.db" {
			t.Errorf("expected custom.db, got %q", cfg.DBPath)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %q, got %q", path, cfg.ConfigFilePath)
		}
	})

	t.Run("missing explicit path is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "")
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "x.yaml")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})

	t.Run("default name", func(t *testing.T) {
		t.Parallel()

		if !strings.HasPrefix(DefaultConfigFile, ".") {
			t.Errorf("expected a dotfile, got %q", DefaultConfigFile)
		}
	})
}
