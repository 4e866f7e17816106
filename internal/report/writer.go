package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/tracedb/internal/config"
	"github.com/nao1215/tracedb/internal/model"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer defines the interface for result output.
type Writer interface {
	// Write renders the result set to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(rs *model.ResultSet) (int, error)
}

// NewWriter returns the Writer for format (text, json or markdown).
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case config.FormatText, "":
		return NewSimpleWriter(output), nil
	case config.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case config.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// rowCountText returns "1 row" or "N rows".
func rowCountText(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
