// Package log provides the slog-based logger used across tracedb, with
// automatic redaction of sensitive attribute values.
//
// The SecureHandler wraps any slog.Handler and redacts:
//   - attributes whose key names a credential (password, token, cookie,
//     session, secret, ...)
//   - values that look like credentials (JWTs, bearer tokens, private keys)
//   - optionally, IP addresses inside string and error values
//
// The stored data is mostly per-session IP and device facts, and SQL errors
// often echo the offending values back. WithMaskIP keeps those addresses out
// of logs that get shared.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true, MaskIP: true})
//	slog.SetDefault(logger)
//
//	logger.Error("error executing insert",
//	    "query", "INSERT INTO networks (ip) VALUES ('192.0.2.7')", // ip masked
//	    "token", "abc", // redacted
//	)
package log
