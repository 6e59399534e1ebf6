// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// Domain packages keep their own error values (for example an illegal ledger
// entry) and wrap them in Error at the usecase boundary, which adds a type and
// a stable code that handlers map to HTTP status codes.
package pkgerror
