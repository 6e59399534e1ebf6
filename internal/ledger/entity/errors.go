package entity

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAgentNotFound       = errors.New("agent not found")
	ErrAgentExists         = errors.New("agent already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmptyIdentifier     = errors.New("agent identifier is required")
	ErrInvalidRole         = errors.New("invalid agent role")
	ErrUnsupportedRole     = errors.New("no classification table for agent role")
	ErrUnknownAttribute    = errors.New("unknown agent attribute")
	ErrEmptyType           = errors.New("transaction type is required")
	ErrSameAgent           = errors.New("transaction parties must be different agents")
	ErrNegativeAmount      = errors.New("transaction amount must not be negative")
	ErrNegativeMaturity    = errors.New("transaction maturity must not be negative")
)

// IllegalTransactionError reports a type/direction pair a book may not hold.
type IllegalTransactionError struct {
	Type    TxType
	From    string
	To      string
	AgentID string
	Reason  string
}

func (e *IllegalTransactionError) Error() string {
	return fmt.Sprintf("illegal %s transaction %s -> %s on book of %s: %s",
		e.Type, e.From, e.To, e.AgentID, e.Reason)
}

// UnknownTransactionTypeError reports a type outside the classification table.
type UnknownTransactionTypeError struct {
	Type    TxType
	From    string
	To      string
	AgentID string
}

func (e *UnknownTransactionTypeError) Error() string {
	return fmt.Sprintf("unknown transaction type %q (%s -> %s) on book of %s",
		e.Type, e.From, e.To, e.AgentID)
}

// InconsistentLedgerError reports a book whose assets and liabilities differ
// after rounding.
type InconsistentLedgerError struct {
	AgentID     string
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}

func (e *InconsistentLedgerError) Error() string {
	return fmt.Sprintf("ledger of %s is inconsistent: assets %s != liabilities %s",
		e.AgentID, e.Assets.StringFixed(2), e.Liabilities.StringFixed(2))
}
