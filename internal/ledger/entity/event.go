package entity

import "github.com/shopspring/decimal"

// LedgerEvent is published when a book changes in a way an auditor cares about.
type LedgerEvent struct {
	EventID     string
	Kind        EventKind
	AgentID     string
	Step        int64
	Tx          *Transaction
	Reason      string
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}
