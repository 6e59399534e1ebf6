// Package outbound holds graph sinks the ledger can be exported to.
package outbound
