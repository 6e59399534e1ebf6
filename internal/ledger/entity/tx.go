package entity

import "github.com/shopspring/decimal"

// NotDefaulted is the TimeOfDefault of a transaction that never defaulted.
const NotDefaulted int64 = -1

// Handle addresses a transaction in the registry. Both counterparties' books
// hold the same handle, never a copy of the record.
type Handle int64

// Transaction is a single ledger entry shared between two agents.
type Transaction struct {
	Handle        Handle
	Type          TxType
	AssetClass    string
	From          string
	To            string
	Amount        decimal.Decimal
	Interest      decimal.Decimal
	Maturity      int64
	TimeOfDefault int64
}

// SideOf reports which side of t the agent is on.
func (t Transaction) SideOf(agentID string) Side {
	switch agentID {
	case t.From:
		return SideFrom
	case t.To:
		return SideTo
	default:
		return SideNone
	}
}

// Defaulted reports whether the transaction carries a default step.
func (t Transaction) Defaulted() bool {
	return t.TimeOfDefault >= 0
}

// Due reports whether the transaction reached maturity.
func (t Transaction) Due() bool {
	return t.Maturity == 0
}

// Counterparty returns the other party from agentID's point of view.
func (t Transaction) Counterparty(agentID string) string {
	if agentID == t.From {
		return t.To
	}
	return t.From
}
