// Package source loads agents and seed transactions from a file so a
// simulation can start from a known balance sheet.
package source
