package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankClassifier_Table(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("12.5")

	tests := []struct {
		name       string
		typ        entity.TxType
		side       entity.Side
		wantKind   entity.Kind
		wantReason string
	}{
		{name: "loans from", typ: entity.TxTypeLoans, side: entity.SideFrom, wantKind: entity.KindAsset},
		{name: "loans to", typ: entity.TxTypeLoans, side: entity.SideTo, wantReason: "agent cannot be loan recipient in this role"},
		{name: "cb_reserves from", typ: entity.TxTypeCBReserves, side: entity.SideFrom, wantKind: entity.KindAsset},
		{name: "cb_reserves to", typ: entity.TxTypeCBReserves, side: entity.SideTo, wantReason: "agent cannot hold reserves from central bank"},
		{name: "deposits from", typ: entity.TxTypeDeposits, side: entity.SideFrom, wantReason: "agent cannot originate deposits"},
		{name: "deposits to", typ: entity.TxTypeDeposits, side: entity.SideTo, wantKind: entity.KindLiability},
		{name: "equity from", typ: entity.TxTypeEquity, side: entity.SideFrom, wantReason: "agent cannot originate equity"},
		{name: "equity to", typ: entity.TxTypeEquity, side: entity.SideTo, wantKind: entity.KindLiability},
		{name: "ib_loans from", typ: entity.TxTypeIBLoans, side: entity.SideFrom, wantKind: entity.KindAsset},
		{name: "ib_loans to", typ: entity.TxTypeIBLoans, side: entity.SideTo, wantKind: entity.KindLiability},
		{name: "cb_loans from", typ: entity.TxTypeCBLoans, side: entity.SideFrom, wantReason: "central-bank loans cannot be granted by this agent"},
		{name: "cb_loans to", typ: entity.TxTypeCBLoans, side: entity.SideTo, wantKind: entity.KindLiability},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tx := entity.Transaction{Type: tt.typ, From: "A", To: "B", Amount: amount}
			agentID := "A"
			if tt.side == entity.SideTo {
				agentID = "B"
			}

			got, err := BankClassifier{}.Classify(tx, agentID)
			if tt.wantReason != "" {
				var illegal *entity.IllegalTransactionError
				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, tt.wantReason, illegal.Reason)
				assert.Equal(t, agentID, illegal.AgentID)
				assert.Equal(t, tt.typ, illegal.Type)
				assert.Contains(t, err.Error(), "A -> B")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.True(t, got.Amount.Equal(amount))
		})
	}
}

func TestBankClassifier_EveryTypeHasBothSides(t *testing.T) {
	t.Parallel()

	for _, typ := range entity.TxTypes() {
		row, ok := bankRules[typ]
		require.True(t, ok, "missing row for %s", typ)
		for _, r := range []rule{row.from, row.to} {
			assert.True(t, r.kind != "" || r.reason != "", "%s has an empty rule", typ)
		}
	}
}

func TestBankClassifier_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := BankClassifier{}.Classify(entity.Transaction{Type: "cash", From: "A", To: "B"}, "A")

	var unknown *entity.UnknownTransactionTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, entity.TxType("cash"), unknown.Type)
	assert.Equal(t, "A", unknown.AgentID)
}

func TestBankClassifier_NotAParty(t *testing.T) {
	t.Parallel()

	_, err := BankClassifier{}.Classify(entity.Transaction{Type: entity.TxTypeIBLoans, From: "A", To: "B"}, "C")

	var illegal *entity.IllegalTransactionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "agent is not a party to the transaction", illegal.Reason)
}

func TestUsecase_Classify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, "A", "B")
	h := f.add(t, entity.TxTypeDeposits, "A", "B", "40", 1)

	got, err := f.uc.Classify(ctx, "B", h)
	require.NoError(t, err)
	assert.Equal(t, entity.KindLiability, got.Kind)

	_, err = f.uc.Classify(ctx, "A", h)
	requireCode(t, err, pkgerror.CodeIllegalTransaction)

	_, err = f.uc.Classify(ctx, "A", 999)
	requireCode(t, err, pkgerror.CodeNotFound)
}

func TestUsecase_Classify_UnsupportedRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, "A")
	_, err := f.uc.RegisterAgent(ctx, RegisterAgent{Identifier: "H", Role: entity.RoleHousehold})
	require.NoError(t, err)
	h := f.add(t, entity.TxTypeDeposits, "H", "A", "10", 1)

	_, err = f.uc.Classify(ctx, "H", h)
	requireCode(t, err, pkgerror.CodeInvalidInput)
	assert.True(t, errors.Is(err, entity.ErrUnsupportedRole))
}
