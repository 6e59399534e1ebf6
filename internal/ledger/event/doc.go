// Package event carries ledger events (purged transactions, inconsistent
// books) from the usecase to an asynchronous audit consumer.
package event
