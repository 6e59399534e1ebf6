package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/ledger/usecase"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type agentRecord struct {
	Identifier     string            `mapstructure:"identifier"`
	Role           string            `mapstructure:"role"`
	Parameters     map[string]string `mapstructure:"parameters"`
	StateVariables map[string]string `mapstructure:"state_variables"`
}

type transactionRecord struct {
	Type          string `mapstructure:"type"`
	AssetClass    string `mapstructure:"asset_class"`
	From          string `mapstructure:"from"`
	To            string `mapstructure:"to"`
	Amount        string `mapstructure:"amount"`
	Interest      string `mapstructure:"interest"`
	Maturity      int64  `mapstructure:"maturity"`
	TimeOfDefault *int64 `mapstructure:"time_of_default"`
}

// Seed is the content of an agents file, already converted to usecase inputs.
type Seed struct {
	Agents       []usecase.RegisterAgent
	Transactions []usecase.NewTransaction
}

type seeder interface {
	RegisterAgent(ctx context.Context, in usecase.RegisterAgent) (entity.Agent, error)
	AddTransaction(ctx context.Context, in usecase.NewTransaction) (entity.Handle, error)
}

// Load reads an agents file (any format viper understands, picked by
// extension) with top-level "agents" and "transactions" lists.
func Load(path string) (Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Seed{}, fmt.Errorf("read agents file %s: %w", path, err)
	}

	var agents []agentRecord
	if err := v.UnmarshalKey("agents", &agents); err != nil {
		return Seed{}, fmt.Errorf("decode agents: %w", err)
	}

	var txs []transactionRecord
	if err := v.UnmarshalKey("transactions", &txs); err != nil {
		return Seed{}, fmt.Errorf("decode transactions: %w", err)
	}

	seed := Seed{
		Agents:       make([]usecase.RegisterAgent, 0, len(agents)),
		Transactions: make([]usecase.NewTransaction, 0, len(txs)),
	}

	for i, a := range agents {
		if strings.TrimSpace(a.Identifier) == "" {
			return Seed{}, fmt.Errorf("agents[%d]: %w", i, entity.ErrEmptyIdentifier)
		}
		seed.Agents = append(seed.Agents, usecase.RegisterAgent{
			Identifier:     a.Identifier,
			Role:           entity.Role(strings.ToLower(strings.TrimSpace(a.Role))),
			Parameters:     a.Parameters,
			StateVariables: a.StateVariables,
		})
	}

	for i, t := range txs {
		amount, err := parseDecimal(t.Amount)
		if err != nil {
			return Seed{}, fmt.Errorf("transactions[%d].amount: %w", i, err)
		}
		interest, err := parseDecimal(t.Interest)
		if err != nil {
			return Seed{}, fmt.Errorf("transactions[%d].interest: %w", i, err)
		}

		seed.Transactions = append(seed.Transactions, usecase.NewTransaction{
			Type:          entity.TxType(strings.TrimSpace(t.Type)),
			AssetClass:    t.AssetClass,
			From:          t.From,
			To:            t.To,
			Amount:        amount,
			Interest:      interest,
			Maturity:      t.Maturity,
			TimeOfDefault: t.TimeOfDefault,
		})
	}

	return seed, nil
}

// Apply registers every agent and then every transaction, stopping at the
// first failure.
func (s Seed) Apply(ctx context.Context, uc seeder) error {
	for _, a := range s.Agents {
		if _, err := uc.RegisterAgent(ctx, a); err != nil {
			return fmt.Errorf("register agent %s: %w", a.Identifier, err)
		}
	}

	for i, t := range s.Transactions {
		if _, err := uc.AddTransaction(ctx, t); err != nil {
			return fmt.Errorf("add transaction %d (%s %s -> %s): %w", i, t.Type, t.From, t.To, err)
		}
	}

	slog.InfoContext(ctx, "ledger seeded", "agents", len(s.Agents), "transactions", len(s.Transactions))
	return nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
