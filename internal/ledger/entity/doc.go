// Package entity holds the ledger's data model: agents, transactions and the
// typed errors raised when a book holds something it must not.
package entity
