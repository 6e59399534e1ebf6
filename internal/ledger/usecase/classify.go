package usecase

import (
	"context"
	"fmt"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

// Classifier places a transaction on one side of an agent's balance sheet.
// Implementations are pure and must reject every (type, side) pair they do
// not list explicitly.
type Classifier interface {
	Classify(tx entity.Transaction, agentID string) (entity.Classification, error)
}

// DefaultClassifiers returns the classification tables shipped with the service.
func DefaultClassifiers() map[entity.Role]Classifier {
	return map[entity.Role]Classifier{
		entity.RoleBank: BankClassifier{},
	}
}

type rule struct {
	kind   entity.Kind
	reason string
}

func asset() rule { return rule{kind: entity.KindAsset} }

func liability() rule { return rule{kind: entity.KindLiability} }

func illegal(reason string) rule { return rule{reason: reason} }

type sides struct {
	from rule
	to   rule
}

//nolint:gochecknoglobals // classification table
var bankRules = map[entity.TxType]sides{
	entity.TxTypeLoans: {
		from: asset(),
		to:   illegal("agent cannot be loan recipient in this role"),
	},
	entity.TxTypeCBReserves: {
		from: asset(),
		to:   illegal("agent cannot hold reserves from central bank"),
	},
	entity.TxTypeDeposits: {
		from: illegal("agent cannot originate deposits"),
		to:   liability(),
	},
	entity.TxTypeEquity: {
		from: illegal("agent cannot originate equity"),
		to:   liability(),
	},
	entity.TxTypeIBLoans: {
		from: asset(),
		to:   liability(),
	},
	entity.TxTypeCBLoans: {
		from: illegal("central-bank loans cannot be granted by this agent"),
		to:   liability(),
	},
}

// BankClassifier is the balance-sheet table of a commercial bank.
type BankClassifier struct{}

func (BankClassifier) Classify(tx entity.Transaction, agentID string) (entity.Classification, error) {
	return classifyWith(bankRules, tx, agentID)
}

func classifyWith(table map[entity.TxType]sides, tx entity.Transaction, agentID string) (entity.Classification, error) {
	row, ok := table[tx.Type]
	if !ok {
		return entity.Classification{}, &entity.UnknownTransactionTypeError{
			Type:    tx.Type,
			From:    tx.From,
			To:      tx.To,
			AgentID: agentID,
		}
	}

	var r rule
	switch tx.SideOf(agentID) {
	case entity.SideFrom:
		r = row.from
	case entity.SideTo:
		r = row.to
	default:
		r = illegal("agent is not a party to the transaction")
	}

	switch r.kind {
	case entity.KindAsset:
		return entity.Asset(tx.Amount), nil
	case entity.KindLiability:
		return entity.Liability(tx.Amount), nil
	}

	return entity.Classification{}, &entity.IllegalTransactionError{
		Type:    tx.Type,
		From:    tx.From,
		To:      tx.To,
		AgentID: agentID,
		Reason:  r.reason,
	}
}

func (u *Usecase) classifierFor(agent entity.Agent) (Classifier, error) {
	c, ok := u.classifiers[agent.Role]
	if !ok {
		return nil, fmt.Errorf("%w: %s (agent %s)", entity.ErrUnsupportedRole, agent.Role, agent.Identifier)
	}
	return c, nil
}

// Classify classifies tx from agentID's book using the agent's role table.
func (u *Usecase) Classify(ctx context.Context, agentID string, h entity.Handle) (entity.Classification, error) {
	agent, err := u.store.GetAgent(ctx, agentID)
	if err != nil {
		return entity.Classification{}, mapErr(err)
	}

	classifier, err := u.classifierFor(agent)
	if err != nil {
		return entity.Classification{}, mapErr(err)
	}

	tx, err := u.store.Get(ctx, h)
	if err != nil {
		return entity.Classification{}, mapErr(err)
	}

	c, err := classifier.Classify(tx, agentID)
	return c, mapErr(err)
}
