package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/report"
)

// NewDumpCmd creates the dump command.
func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <table>",
		Short: "Print every row of a table",
		Long: `Dump prints all rows of a table with its column headers.

Examples:
  tracedb dump geo
  tracedb dump victims_battery --format markdown > battery.md`,
		Args: cobra.ExactArgs(1),
		RunE: runDumpCmd,
	}

	addFormatFlag(cmd)
	return cmd
}

// runDumpCmd executes the dump command.
func runDumpCmd(cmd *cobra.Command, args []string) error {
	cfg, _, store, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	rs, err := store.Dump(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	w, err := report.NewWriter(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = w.Write(rs)
	return err
}
