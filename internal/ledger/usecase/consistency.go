package usecase

import (
	"context"
	"log/slog"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/shopspring/decimal"
)

// ConsistencyReport is the outcome of a balance-sheet check. Assets and
// Liabilities are rounded to two decimal places.
type ConsistencyReport struct {
	AgentID      string
	Assets       decimal.Decimal
	Liabilities  decimal.Decimal
	Transactions int
	Consistent   bool
}

// Balance classifies every transaction from agentID's point of view and
// compares the rounded totals. The first illegal or unknown entry aborts the
// check with its error; nothing is skipped.
func Balance(c Classifier, agentID string, txs []entity.Transaction) (ConsistencyReport, error) {
	assets := decimal.Zero
	liabilities := decimal.Zero

	for _, tx := range txs {
		cl, err := c.Classify(tx, agentID)
		if err != nil {
			return ConsistencyReport{}, err
		}

		switch cl.Kind {
		case entity.KindAsset:
			assets = assets.Add(cl.Amount)
		case entity.KindLiability:
			liabilities = liabilities.Add(cl.Amount)
		}
	}

	assets = assets.Round(2)
	liabilities = liabilities.Round(2)

	return ConsistencyReport{
		AgentID:      agentID,
		Assets:       assets,
		Liabilities:  liabilities,
		Transactions: len(txs),
		Consistent:   assets.Equal(liabilities),
	}, nil
}

// CheckConsistency reports whether the agent's assets equal its liabilities.
// An imbalance is a normal result here; it is logged and published as an
// event but not returned as an error.
func (u *Usecase) CheckConsistency(ctx context.Context, agentID string) (ConsistencyReport, error) {
	report, err := u.balance(ctx, agentID)
	if err != nil {
		return ConsistencyReport{}, err
	}

	if !report.Consistent {
		slog.WarnContext(ctx, "ledger is inconsistent",
			"agent_id", agentID,
			"assets", report.Assets.StringFixed(2),
			"liabilities", report.Liabilities.StringFixed(2),
		)
		u.publish(ctx, entity.LedgerEvent{
			Kind:        entity.EventLedgerInconsistent,
			AgentID:     agentID,
			Assets:      report.Assets,
			Liabilities: report.Liabilities,
		})
	}

	return report, nil
}

// CheckConsistencyStrict is CheckConsistency for callers that treat an
// imbalance as a failure: it returns an InconsistentLedgerError alongside
// the report.
func (u *Usecase) CheckConsistencyStrict(ctx context.Context, agentID string) (ConsistencyReport, error) {
	report, err := u.CheckConsistency(ctx, agentID)
	if err != nil {
		return ConsistencyReport{}, err
	}

	if !report.Consistent {
		return report, mapErr(&entity.InconsistentLedgerError{
			AgentID:     agentID,
			Assets:      report.Assets,
			Liabilities: report.Liabilities,
		})
	}

	return report, nil
}

func (u *Usecase) balance(ctx context.Context, agentID string) (ConsistencyReport, error) {
	agent, err := u.store.GetAgent(ctx, agentID)
	if err != nil {
		return ConsistencyReport{}, mapErr(err)
	}

	classifier, err := u.classifierFor(agent)
	if err != nil {
		return ConsistencyReport{}, mapErr(err)
	}

	txs, err := u.store.Accounts(ctx, agentID)
	if err != nil {
		return ConsistencyReport{}, mapErr(err)
	}

	report, err := Balance(classifier, agentID, txs)
	if err != nil {
		slog.ErrorContext(ctx, "illegal entry on book", "agent_id", agentID, "error", err)
		return ConsistencyReport{}, mapErr(err)
	}

	return report, nil
}
