package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/tracedb/internal/model"
)

// createTestResultSet creates a result set with sample click rows.
func createTestResultSet() *model.ResultSet {
	return &model.ResultSet{
		Title:   "victims_battery",
		Columns: []string{"id", "charging", "level"},
		Rows: []model.Row{
			{"v1", "true", 0.75},
			{"v2", nil, int64(1)},
		},
	}
}

// TestNewWriter tests format selection.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "text", want: "*report.SimpleWriter"},
		{format: "", want: "*report.SimpleWriter"},
		{format: "json", want: "*report.JSONWriter"},
		{format: "markdown", want: "*report.MarkdownWriter"},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			t.Parallel()

			w, err := NewWriter(tt.format, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch w.(type) {
			case *SimpleWriter:
				if tt.want != "*report.SimpleWriter" {
					t.Errorf("got SimpleWriter, want %s", tt.want)
				}
			case *JSONWriter:
				if tt.want != "*report.JSONWriter" {
					t.Errorf("got JSONWriter, want %s", tt.want)
				}
			case *MarkdownWriter:
				if tt.want != "*report.MarkdownWriter" {
					t.Errorf("got MarkdownWriter, want %s", tt.want)
				}
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		if _, err := NewWriter("csv", &bytes.Buffer{}); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})
}

// TestSimpleWriter tests the plain-text table writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title, values and row count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestResultSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, want := range []string{"victims_battery", "v1", "v2", "0.75", "NULL", "(2 rows)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
		if !strings.Contains(strings.ToUpper(output), "CHARGING") {
			t.Errorf("expected header in output:\n%s", output)
		}
	})

	t.Run("empty result prints zero rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rs := &model.ResultSet{Columns: []string{"id"}, Rows: []model.Row{}}
		if _, err := NewSimpleWriter(&buf).Write(rs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "(0 rows)") {
			t.Errorf("expected zero row count:\n%s", buf.String())
		}
	})

	t.Run("single row count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rs := &model.ResultSet{Columns: []string{"id"}, Rows: []model.Row{{"1"}}}
		if _, err := NewSimpleWriter(&buf).Write(rs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "(1 row)") {
			t.Errorf("expected singular row count:\n%s", buf.String())
		}
	})

	t.Run("nil result set", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "(0 rows)" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("produces valid JSON with nulls", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestResultSet()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if len(parsed) != 2 {
			t.Fatalf("expected 2 objects, got %d", len(parsed))
		}
		if parsed[0]["level"] != 0.75 {
			t.Errorf("expected level 0.75, got %v", parsed[0]["level"])
		}
		if v, ok := parsed[1]["charging"]; !ok || v != nil {
			t.Errorf("expected charging null, got %v", v)
		}
	})

	t.Run("keeps column order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rs := &model.ResultSet{
			Columns: []string{"zeta", "alpha"},
			Rows:    []model.Row{{"z", "a"}},
		}
		if _, err := NewJSONWriter(&buf).Write(rs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := buf.String(); got != "[{\"zeta\":\"z\",\"alpha\":\"a\"}]\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent("\t")).Write(createTestResultSet()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n\t{") {
			t.Errorf("expected tab indentation:\n%s", buf.String())
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(&model.ResultSet{Columns: []string{"id"}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "[]\n" {
			t.Errorf("expected empty array, got %q", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title-cased heading and table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResultSet()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"## Victims Battery", "charging", "v1", "NULL", "*2 rows*"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
		if !strings.Contains(output, "|") {
			t.Errorf("expected a table:\n%s", output)
		}
	})

	t.Run("empty result gets a note", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(&model.ResultSet{Columns: []string{"id"}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "## Query Result") {
			t.Errorf("expected default title:\n%s", output)
		}
		if !strings.Contains(output, "No rows.") {
			t.Errorf("expected note:\n%s", output)
		}
	})

	t.Run("pipes in values are escaped", func(t *testing.T) {
		t.Parallel()

		if got := escapeCell("a|b\nc"); got != `a\|b c` {
			t.Errorf("unexpected escape result %q", got)
		}
	})
}
