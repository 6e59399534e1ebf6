package usecase

import (
	"context"
	"log/slog"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/shopspring/decimal"
)

// Purge reasons.
const (
	ReasonNegligible = "negligible amount"
	ReasonLiquidated = "matured and liquidated"
	ReasonDefaulted  = "defaulted beyond grace period"
)

// PurgedTransaction is one entry removed by PurgeAccounts.
type PurgedTransaction struct {
	Tx     entity.Transaction
	Reason string
}

// PurgeResult lists what PurgeAccounts removed from both parties' books.
type PurgeResult struct {
	AgentID string
	Step    int64
	Removed []PurgedTransaction
}

// UpdateMaturity moves every transaction on the agent's book one step closer
// to maturity, flooring at zero. The change lands on the shared record, so the
// counterparty sees it too; calling it twice in a step decrements twice.
func (u *Usecase) UpdateMaturity(ctx context.Context, agentID string) error {
	changed, err := u.store.MatureAgent(ctx, agentID)
	if err != nil {
		return mapErr(err)
	}

	slog.DebugContext(ctx, "maturity updated", "agent_id", agentID, "changed", changed)
	return nil
}

// UpdateMaturityAll decrements every registered transaction exactly once.
func (u *Usecase) UpdateMaturityAll(ctx context.Context) int {
	changed := u.store.MatureAll(ctx)
	slog.DebugContext(ctx, "maturity updated for all books", "changed", changed)
	return changed
}

// LiquidateDue returns the total amount of the agent's transactions of the
// given type that reached maturity. It does not remove anything; see
// PurgeAccounts.
func (u *Usecase) LiquidateDue(ctx context.Context, agentID string, txType entity.TxType) (decimal.Decimal, error) {
	if txType == "" {
		return decimal.Zero, mapErr(entity.ErrEmptyType)
	}

	txs, err := u.store.Accounts(ctx, agentID)
	if err != nil {
		return decimal.Zero, mapErr(err)
	}

	return DueVolume(txs, txType), nil
}

// DueVolume sums the amount of transactions of txType with zero maturity.
func DueVolume(txs []entity.Transaction, txType entity.TxType) decimal.Decimal {
	volume := decimal.Zero
	for _, tx := range txs {
		if tx.Type == txType && tx.Due() {
			volume = volume.Add(tx.Amount)
		}
	}
	return volume
}

// PurgeAccounts removes worthless transactions from the agent's book and,
// because the registry owns them, from every counterparty's book in the same
// critical section. Due transactions are only dropped for the types the
// caller has already liquidated.
func (u *Usecase) PurgeAccounts(ctx context.Context, agentID string, liquidated ...entity.TxType) (PurgeResult, error) {
	step := u.Step()
	done := make(map[entity.TxType]struct{}, len(liquidated))
	for _, t := range liquidated {
		done[t] = struct{}{}
	}

	reasons := make(map[entity.Handle]string)
	removed, err := u.store.RemoveWhere(ctx, agentID, func(tx entity.Transaction) bool {
		reason, ok := u.worthless(tx, step, done)
		if ok {
			reasons[tx.Handle] = reason
		}
		return ok
	})
	if err != nil {
		return PurgeResult{}, mapErr(err)
	}

	result := PurgeResult{AgentID: agentID, Step: step, Removed: make([]PurgedTransaction, 0, len(removed))}
	for _, tx := range removed {
		tx := tx
		result.Removed = append(result.Removed, PurgedTransaction{Tx: tx, Reason: reasons[tx.Handle]})

		u.publish(ctx, entity.LedgerEvent{
			Kind:    entity.EventTransactionPurged,
			AgentID: agentID,
			Tx:      &tx,
			Reason:  reasons[tx.Handle],
		})
	}

	if len(removed) > 0 {
		slog.InfoContext(ctx, "accounts purged", "agent_id", agentID, "step", step, "removed", len(removed))
	}

	return result, nil
}

func (u *Usecase) worthless(tx entity.Transaction, step int64, liquidated map[entity.TxType]struct{}) (string, bool) {
	if !tx.Amount.IsPositive() || tx.Amount.LessThan(u.purge.Negligible) {
		return ReasonNegligible, true
	}

	if tx.Due() {
		if _, ok := liquidated[tx.Type]; ok {
			return ReasonLiquidated, true
		}
	}

	if tx.Defaulted() && step-tx.TimeOfDefault > u.purge.GracePeriod {
		return ReasonDefaulted, true
	}

	return "", false
}

// ClearAccounts removes every transaction on the agent's book from the
// registry, and therefore from the counterparties' books as well.
func (u *Usecase) ClearAccounts(ctx context.Context, agentID string) (int, error) {
	removed, err := u.store.RemoveWhere(ctx, agentID, func(entity.Transaction) bool { return true })
	if err != nil {
		return 0, mapErr(err)
	}

	slog.InfoContext(ctx, "accounts cleared", "agent_id", agentID, "removed", len(removed))
	return len(removed), nil
}
