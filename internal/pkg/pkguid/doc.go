// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy:
//   - String IDs (UUIDv7) for correlation IDs, event IDs and generated agent IDs.
//   - Numeric IDs (Snowflake or a plain Sequence) for transaction handles.
package pkguid
