package entity

// TxType is the ledger entry type. The set below is closed for the bank role:
// adding a type means adding a row to every role's classification table.
type TxType string

const (
	TxTypeLoans      TxType = "loans"
	TxTypeCBReserves TxType = "cb_reserves"
	TxTypeDeposits   TxType = "deposits"
	TxTypeEquity     TxType = "equity"
	TxTypeIBLoans    TxType = "ib_loans"
	TxTypeCBLoans    TxType = "cb_loans"
)

// TxTypes lists every known transaction type in table order.
func TxTypes() []TxType {
	return []TxType{
		TxTypeLoans,
		TxTypeCBReserves,
		TxTypeDeposits,
		TxTypeEquity,
		TxTypeIBLoans,
		TxTypeCBLoans,
	}
}

// Role is the kind of agent holding a book.
type Role string

const (
	RoleBank        Role = "bank"
	RoleHousehold   Role = "household"
	RoleFirm        Role = "firm"
	RoleCentralBank Role = "central_bank"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBank, RoleHousehold, RoleFirm, RoleCentralBank:
		return true
	default:
		return false
	}
}

// Side is the position an agent takes in a transaction.
type Side int

const (
	SideNone Side = iota
	SideFrom
	SideTo
)

func (s Side) String() string {
	switch s {
	case SideFrom:
		return "from"
	case SideTo:
		return "to"
	default:
		return "none"
	}
}

// Kind is the balance-sheet side a legal entry lands on.
type Kind string

const (
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
)

// EventKind names what happened to a book.
type EventKind string

const (
	EventTransactionPurged  EventKind = "transaction.purged"
	EventLedgerInconsistent EventKind = "ledger.inconsistent"
)
