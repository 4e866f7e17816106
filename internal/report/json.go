package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/tracedb/internal/model"
)

// JSONWriter outputs results as a JSON array of objects.
// Object keys follow the column order of the result, which encoding/json
// would lose if the rows were marshaled as maps.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentString is the indentation string (typically "  ").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON using indent for each level.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result set as JSON followed by a newline.
func (w *JSONWriter) Write(rs *model.ResultSet) (int, error) {
	data, err := encodeResultSet(rs)
	if err != nil {
		return 0, err
	}

	if w.indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", w.indentString); err != nil {
			return 0, fmt.Errorf("failed to indent JSON: %w", err)
		}
		data = buf.Bytes()
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// encodeResultSet encodes rows as objects keyed by column, in column order.
func encodeResultSet(rs *model.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	if rs != nil {
		for i, rec := range rs.Records() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('{')
			for j, col := range rs.Columns {
				if j > 0 {
					buf.WriteByte(',')
				}
				key, err := json.Marshal(col)
				if err != nil {
					return nil, fmt.Errorf("failed to encode column %q: %w", col, err)
				}
				val, err := json.Marshal(rec[col])
				if err != nil {
					return nil, fmt.Errorf("failed to encode value of %q: %w", col, err)
				}
				buf.Write(key)
				buf.WriteByte(':')
				buf.Write(val)
			}
			buf.WriteByte('}')
		}
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}
