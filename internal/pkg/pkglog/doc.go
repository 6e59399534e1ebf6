// Package pkglog sets up the process-wide slog logger: JSON to stdout with
// "ts", "severity" and "file" keys, plus the service name and the request
// correlation ID on every record that has one.
package pkglog
