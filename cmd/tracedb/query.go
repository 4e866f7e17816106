package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/database"
	"github.com/nao1215/tracedb/internal/report"
)

// NewQueryCmd creates the query command.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a SQL query and print the result",
		Long: `Query runs a SQL statement and prints the rows it returns.
Extra arguments bind to ? placeholders in order.

Examples:
  tracedb query "SELECT * FROM geo"
  tracedb query "SELECT city FROM geo WHERE id = ?" 1
  tracedb query --single "SELECT * FROM victims WHERE ip = ?" 192.0.2.7
  tracedb query --format json "SELECT * FROM clicks"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runQueryCmd,
	}

	addFormatFlag(cmd)
	cmd.Flags().Bool("single", false,
		"Print only the first row; no match is an error")

	return cmd
}

// addFormatFlag registers the --format flag shared by result commands.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "",
		"Output format: text, json or markdown (default from config, else text)")
}

// runQueryCmd executes the query command.
func runQueryCmd(cmd *cobra.Command, args []string) error {
	single, err := cmd.Flags().GetBool("single")
	if err != nil {
		return err
	}

	cfg, _, store, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	query, params := args[0], stringArgs(args[1:])

	rs, err := store.Query(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if single {
		if rs.IsEmpty() {
			return fmt.Errorf("query failed: %w", database.ErrNoRows)
		}
		rs.Rows = rs.Rows[:1]
	}

	w, err := report.NewWriter(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = w.Write(rs)
	return err
}
