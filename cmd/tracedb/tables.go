package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/model"
	"github.com/nao1215/tracedb/internal/report"
)

// NewTablesCmd creates the tables command.
func NewTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables and their row counts",
		Args:  cobra.NoArgs,
		RunE:  runTablesCmd,
	}

	addFormatFlag(cmd)
	return cmd
}

// runTablesCmd executes the tables command.
func runTablesCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, store, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	names, err := store.Tables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	rs := &model.ResultSet{
		Title:   "tables",
		Columns: []string{"table", "rows"},
		Rows:    make([]model.Row, 0, len(names)),
	}
	for _, name := range names {
		n, err := store.Count(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to count rows in %s: %w", name, err)
		}
		rs.Rows = append(rs.Rows, model.Row{name, n})
	}

	w, err := report.NewWriter(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = w.Write(rs)
	return err
}
