// Package report renders query results for tracedb.
//
// Supported formats:
//   - Text: an aligned table for terminals (olekukonko/tablewriter)
//   - JSON: an array of objects with keys in column order
//   - Markdown: a GitHub Flavored Markdown table (nao1215/markdown)
package report
