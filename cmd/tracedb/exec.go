package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewExecCmd creates the exec command.
func NewExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run an INSERT, UPDATE or DELETE statement",
		Long: `Exec runs a statement that returns no rows and commits it.
Extra arguments bind to ? placeholders in order.

Examples:
  tracedb exec "INSERT INTO clicks (id, site, date) VALUES (?, ?, ?)" s1 example.com 2024-01-01
  tracedb exec "DELETE FROM hostsalive WHERE id = ?" s1`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExecCmd,
	}
}

// runExecCmd executes the exec command.
func runExecCmd(cmd *cobra.Command, args []string) error {
	_, _, store, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Exec(context.Background(), args[0], stringArgs(args[1:])...)
	if err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) affected\n", n)
	return nil
}
