// Package store keeps the transaction registry: the single owner of every
// ledger entry, addressed by handle from both counterparties' books.
package store
