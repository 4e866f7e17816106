// Package database provides the SQLite-backed store for tracedb.
//
// A Store owns a single database file holding eight fixed tables:
//   - geo: one geolocation and browser fingerprint snapshot per session
//   - networks: IP and network observations
//   - requests: per-session request key/value parameters
//   - victims, victims_data, victims_battery: per-session device facts
//   - clicks: site clicks per session
//   - hostsalive: liveness pings per remote host
//
// Tables share an id column by convention only. No foreign keys are declared.
//
// The store does not build queries. Callers pass raw SQL and positional
// parameters. Two call styles are offered:
//
//   - Query, Exec and QueryRow return a *Error whose Kind tells "no rows"
//     apart from an engine failure.
//   - RunQuery, RunInsert, FetchSingle and DumpTable log failures and degrade
//     to an empty slice, false or nil.
//
// All calls on a Store are serialized by an internal lock, and the
// underlying pool is capped at one connection. Rows are fully drained before
// a call returns, so no cursor outlives the call that opened it.
//
// We use modernc.org/sqlite, the CGO-free driver, so the binary
// cross-compiles without a C toolchain.
package database
