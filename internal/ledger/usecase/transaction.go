package usecase

import (
	"context"
	"log/slog"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/shopspring/decimal"
)

// NewTransaction is the input of AddTransaction.
type NewTransaction struct {
	Type          entity.TxType
	AssetClass    string
	From          string
	To            string
	Amount        decimal.Decimal
	Interest      decimal.Decimal
	Maturity      int64
	// TimeOfDefault is the step the entry defaulted at; nil means it has not.
	TimeOfDefault *int64
}

func (in NewTransaction) validate() error {
	switch {
	case in.Type == "":
		return entity.ErrEmptyType
	case in.From == "" || in.To == "":
		return entity.ErrEmptyIdentifier
	case in.From == in.To:
		return entity.ErrSameAgent
	case in.Amount.IsNegative():
		return entity.ErrNegativeAmount
	case in.Maturity < 0:
		return entity.ErrNegativeMaturity
	}
	return nil
}

// AddTransaction records a new entry and registers it on both parties' books
// atomically. Whether the type/direction is legal for either book is not
// checked here; CheckConsistency reports that.
func (u *Usecase) AddTransaction(ctx context.Context, in NewTransaction) (entity.Handle, error) {
	if err := in.validate(); err != nil {
		return 0, mapErr(err)
	}

	tod := entity.NotDefaulted
	if in.TimeOfDefault != nil && *in.TimeOfDefault >= 0 {
		tod = *in.TimeOfDefault
	}

	h, err := u.store.Create(ctx, entity.Transaction{
		Type:          in.Type,
		AssetClass:    in.AssetClass,
		From:          in.From,
		To:            in.To,
		Amount:        in.Amount,
		Interest:      in.Interest,
		Maturity:      in.Maturity,
		TimeOfDefault: tod,
	})
	if err != nil {
		return 0, mapErr(err)
	}

	slog.DebugContext(ctx, "transaction added", "tx_handle", h, "tx_type", in.Type, "from", in.From, "to", in.To, "amount", in.Amount.String())
	return h, nil
}

// RemoveTransaction deletes one entry from the registry and both books.
func (u *Usecase) RemoveTransaction(ctx context.Context, h entity.Handle) (entity.Transaction, error) {
	tx, err := u.store.Remove(ctx, h)
	return tx, mapErr(err)
}

// GetTransaction returns the entry behind h.
func (u *Usecase) GetTransaction(ctx context.Context, h entity.Handle) (entity.Transaction, error) {
	tx, err := u.store.Get(ctx, h)
	return tx, mapErr(err)
}

// Accounts returns the agent's entries in book order.
func (u *Usecase) Accounts(ctx context.Context, agentID string) ([]entity.Transaction, error) {
	txs, err := u.store.Accounts(ctx, agentID)
	return txs, mapErr(err)
}

// AccountSummary is the total and count of one transaction type on a book.
type AccountSummary struct {
	AgentID string
	Type    entity.TxType
	Total   decimal.Decimal
	Count   int
}

// GetAccount totals the amount of every entry of txType on the agent's book,
// regardless of direction.
func (u *Usecase) GetAccount(ctx context.Context, agentID string, txType entity.TxType) (AccountSummary, error) {
	txs, err := u.store.Accounts(ctx, agentID)
	if err != nil {
		return AccountSummary{}, mapErr(err)
	}

	summary := AccountSummary{AgentID: agentID, Type: txType, Total: decimal.Zero}
	for _, tx := range txs {
		if tx.Type == txType {
			summary.Total = summary.Total.Add(tx.Amount)
			summary.Count++
		}
	}

	return summary, nil
}

// GetAccountNumTransactions counts the entries of txType on the agent's book.
func (u *Usecase) GetAccountNumTransactions(ctx context.Context, agentID string, txType entity.TxType) (int, error) {
	summary, err := u.GetAccount(ctx, agentID, txType)
	return summary.Count, err
}
