package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/tracedb/internal/pipeline"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Insert records from a YAML file",
		Long: `Import reads a YAML document of records and inserts each one into
its table. Records are validated against the schema first; a bad record is
reported and skipped without stopping the rest.

File format:
  records:
    - table: geo
      values:
        id: s1
        city: Lisbon
    - table: clicks
      values: {id: s1, site: example.com, date: "2024-01-01"}

Records without an id take the value of --session. With --new-session a
random session id is generated and printed.

Examples:
  tracedb import seed.yaml
  tracedb import --concurrency 8 seed.yaml
  tracedb import --new-session visit.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().Int("concurrency", 0,
		"Maximum concurrent inserts (default from config, else 4)")
	cmd.Flags().String("session", "",
		"Session id for records without an id")
	cmd.Flags().Bool("new-session", false,
		"Generate a session id for records without an id")
	cmd.MarkFlagsMutuallyExclusive("session", "new-session")
	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	session, err := cmd.Flags().GetString("session")
	if err != nil {
		return err
	}
	newSession, err := cmd.Flags().GetBool("new-session")
	if err != nil {
		return err
	}
	if newSession {
		session = pipeline.NewSessionID()
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	records, err := pipeline.LoadRecords(f)
	if err != nil {
		return err
	}

	cfg, logger, store, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer store.Close()

	importer := pipeline.NewImporter(store,
		pipeline.WithLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithSessionID(session),
	)
	summary, err := importer.Import(context.Background(), records)
	if err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	if newSession {
		fmt.Fprintf(out, "Session: %s\n", session)
	}
	fmt.Fprintf(out, "Imported %d of %d records in %s\n",
		summary.Inserted, summary.Total, summary.Elapsed.Round(time.Millisecond))
	for _, e := range summary.Errors {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed", summary.Failed)
	}
	return nil
}
