package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/nao1215/tracedb/internal/model"
)

// SimpleWriter outputs results as an aligned plain-text table followed by
// a row count.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result set as a text table.
func (w *SimpleWriter) Write(rs *model.ResultSet) (int, error) {
	var buf bytes.Buffer

	if rs != nil && rs.Title != "" {
		fmt.Fprintf(&buf, "%s\n", rs.Title)
	}

	if rs != nil && len(rs.Columns) > 0 {
		table := tablewriter.NewWriter(&buf)

		header := make([]any, len(rs.Columns))
		for i, c := range rs.Columns {
			header[i] = c
		}
		table.Header(header...)

		rows := make([][]string, len(rs.Rows))
		for i, row := range rs.Rows {
			rows[i] = row.Strings()
		}
		if err := table.Bulk(rows); err != nil {
			return 0, fmt.Errorf("failed to build table: %w", err)
		}
		if err := table.Render(); err != nil {
			return 0, fmt.Errorf("failed to render table: %w", err)
		}
	}

	fmt.Fprintf(&buf, "(%s)\n", rowCountText(rs.Len()))

	return w.output.Write(buf.Bytes())
}
