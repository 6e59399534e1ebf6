// Package ledger wires the double-entry agent ledger: a central transaction
// registry, the balance-sheet usecase, its audit event pipeline, graph export
// and the HTTP endpoints.
package ledger
