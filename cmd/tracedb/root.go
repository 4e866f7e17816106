package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/config"
	"github.com/nao1215/tracedb/internal/database"
	"github.com/nao1215/tracedb/internal/log"
)

// NewRootCmd creates the root command for tracedb.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracedb",
		Short: "Manage a session tracking SQLite store",
		Long: `tracedb manages a single SQLite file holding eight fixed tables of
per-session records: geolocation, networks, requests, device facts, battery,
clicks and host liveness pings.

The database is created with its schema on first use. Queries take raw SQL
with positional ? parameters.

Settings are read from --config, ./.tracedb.yaml or the XDG config directory,
and command-line flags take precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("db", "", "Path to the database file (default \"database.db\")")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().Bool("mask-ip", false, "Mask IP addresses in log output")

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewExecCmd())
	cmd.AddCommand(NewDumpCmd())
	cmd.AddCommand(NewTablesCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		if cfg.DBPath, err = flags.GetString("db"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-json") {
		if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("mask-ip") {
		if cfg.MaskIP, err = flags.GetBool("mask-ip"); err != nil {
			return nil, err
		}
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format = f.Value.String()
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the command logger from cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), log.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.LogJSON,
		MaskIP:  cfg.MaskIP,
	})
}

// openStore opens the store described by cfg. When create is false a
// missing database file is an error instead of being created.
func openStore(cfg *config.Config, logger *slog.Logger, create bool) (*database.Store, error) {
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = create
	opts.EnableWAL = cfg.EnableWAL
	opts.BusyTimeout = int(cfg.BusyTimeout.Milliseconds())
	opts.Logger = logger

	store, err := database.Open(cfg.DBPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("opened database", "path", store.Path(), "created", store.Created())
	return store, nil
}

// setup loads the configuration, logger and store shared by most commands.
func setup(cmd *cobra.Command, create bool) (*config.Config, *slog.Logger, *database.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cmd, cfg)
	store, err := openStore(cfg, logger, create)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, store, nil
}

// stringArgs converts positional CLI arguments to query parameters.
func stringArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
