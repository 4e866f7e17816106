// Package main provides the entry point for the tracedb CLI.
//
// tracedb manages a single SQLite file holding per-session geolocation,
// device, request, click and liveness records.
//
// Usage:
//
//	tracedb init
//	tracedb query "SELECT * FROM geo WHERE id = ?" 1
//	tracedb dump clicks --format markdown
//
// See --help for all available options.
package main

// main is the entry point for tracedb.
func main() {
	Execute()
}
