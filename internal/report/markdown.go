package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/tracedb/internal/model"
)

// defaultMarkdownTitle heads results that have no table name.
const defaultMarkdownTitle = "Query Result"

// MarkdownWriter outputs results as a GitHub Flavored Markdown table.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result set in Markdown format.
func (w *MarkdownWriter) Write(rs *model.ResultSet) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2(markdownTitle(rs))
	md.PlainText("")

	if rs.IsEmpty() {
		md.Note("No rows.")
		md.PlainText("")
	}

	if rs != nil && len(rs.Columns) > 0 && !rs.IsEmpty() {
		rows := make([][]string, len(rs.Rows))
		for i, row := range rs.Rows {
			cells := row.Strings()
			for j := range cells {
				cells[j] = escapeCell(cells[j])
			}
			rows[i] = cells
		}
		md.Table(markdown.TableSet{
			Header: rs.Columns,
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.PlainTextf("*%s*", rowCountText(rs.Len()))

	return len(md.String()), md.Build()
}

// markdownTitle title-cases the table name: "victims_battery" becomes
// "Victims Battery".
func markdownTitle(rs *model.ResultSet) string {
	if rs == nil || rs.Title == "" {
		return defaultMarkdownTitle
	}
	return cases.Title(language.English).String(strings.ReplaceAll(rs.Title, "_", " "))
}

// escapeCell keeps cell text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
