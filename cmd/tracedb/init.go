package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/config"
)

//go:embed templates/tracedb.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database or a configuration file",
		Long: `Initialize creates the database file with all tables if it does not exist.
On an existing file, missing tables are created and existing ones are left alone.

With --write-config or --global, a commented configuration file is written
instead and no database is touched.

Examples:
  # Create database.db with the schema
  tracedb init

  # Create the database at a specific path
  tracedb init --db /var/lib/tracedb/store.db

  # Write .tracedb.yaml in the current directory
  tracedb init --write-config .tracedb.yaml

  # Write the per-user configuration file
  tracedb init --global`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().String("write-config", "",
		"Write a configuration template to this path")
	cmd.Flags().Bool("global", false,
		"Write the configuration template to the XDG config directory")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("write-config")
	if err != nil {
		return err
	}
	global, err := cmd.Flags().GetBool("global")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if global {
		outputPath = config.XDGConfigFile()
	}
	if outputPath != "" {
		return writeConfigTemplate(cmd, outputPath, force)
	}

	_, _, store, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if !store.Created() {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	tables, err := store.Tables(ctx)
	if err != nil {
		return err
	}

	if store.Created() {
		fmt.Fprintf(cmd.OutOrStdout(), "Created database: %s (%d tables)\n", store.Path(), len(tables))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Database already exists: %s (%d tables)\n", store.Path(), len(tables))
	}
	return nil
}

// writeConfigTemplate writes the embedded configuration template.
func writeConfigTemplate(cmd *cobra.Command, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/tracedb.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
