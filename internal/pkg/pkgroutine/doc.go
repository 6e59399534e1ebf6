// Package pkgroutine contains helpers for running background tasks safely.
//
// The Manager type limits concurrency, collects returned errors, and turns
// panics into ErrPanic so that background work does not crash the process
// silently.
package pkgroutine
