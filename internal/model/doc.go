// Package model defines the value types shared by the store, the report
// writers and the CLI.
//
// This package contains the following main types:
//   - Row: One result row as returned by the SQLite engine
//   - ResultSet: Column names plus the rows of a query
//
// Rows are deliberately untyped. Every table in the store is a loose bag of
// TEXT and REAL columns, and callers supply raw SQL, so the store never maps
// rows onto structs.
package model
