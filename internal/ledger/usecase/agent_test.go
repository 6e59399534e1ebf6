package usecase

import (
	"context"
	"testing"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAgent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	agent, err := f.uc.RegisterAgent(ctx, RegisterAgent{
		Identifier:     " bank-1 ",
		Parameters:     map[string]string{"interest_rate_loans": "0.05", "Active": "true"},
		StateVariables: map[string]string{"liquidity": "120.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bank-1", agent.Identifier)
	assert.Equal(t, entity.RoleBank, agent.Role)
	assert.True(t, agent.Parameters.Active)
	assert.Equal(t, "0.05", agent.Parameters.InterestRateLoans.String())
	assert.Equal(t, "120.5", agent.StateVariables.Liquidity.String())

	got, err := f.uc.GetAgent(ctx, "bank-1")
	require.NoError(t, err)
	assert.Equal(t, agent.Parameters, got.Parameters)
	assert.Empty(t, got.Accounts)
}

func TestRegisterAgent_GeneratesIdentifier(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	a, err := f.uc.RegisterAgent(context.Background(), RegisterAgent{})
	require.NoError(t, err)
	b, err := f.uc.RegisterAgent(context.Background(), RegisterAgent{})
	require.NoError(t, err)

	assert.NotEmpty(t, a.Identifier)
	assert.NotEqual(t, a.Identifier, b.Identifier)
	assert.Len(t, f.uc.ListAgents(context.Background()), 2)
}

func TestRegisterAgent_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       RegisterAgent
		wantCode pkgerror.Code
		wantErr  error
	}{
		{name: "invalid role", in: RegisterAgent{Identifier: "x", Role: "pirate"}, wantCode: pkgerror.CodeInvalidInput, wantErr: entity.ErrInvalidRole},
		{name: "unknown parameter", in: RegisterAgent{Identifier: "x", Parameters: map[string]string{"leverage": "3"}}, wantCode: pkgerror.CodeInvalidInput, wantErr: entity.ErrUnknownAttribute},
		{name: "state variable as parameter", in: RegisterAgent{Identifier: "x", Parameters: map[string]string{"liquidity": "3"}}, wantCode: pkgerror.CodeInvalidInput, wantErr: entity.ErrUnknownAttribute},
		{name: "parameter as state variable", in: RegisterAgent{Identifier: "x", StateVariables: map[string]string{"active": "true"}}, wantCode: pkgerror.CodeInvalidInput, wantErr: entity.ErrUnknownAttribute},
		{name: "duplicate", in: RegisterAgent{Identifier: "A"}, wantCode: pkgerror.CodeConflict, wantErr: entity.ErrAgentExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "A")
			_, err := f.uc.RegisterAgent(context.Background(), tt.in)
			requireCode(t, err, tt.wantCode)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateAgent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, "A", "B")
	f.add(t, entity.TxTypeIBLoans, "A", "B", "10", 1)

	agent, err := f.uc.UpdateAgent(ctx, "A", map[string]string{"active": "true"}, map[string]string{"liquidity": "7"})
	require.NoError(t, err)
	assert.True(t, agent.Parameters.Active)
	assert.Equal(t, "7", agent.StateVariables.Liquidity.String())
	assert.Len(t, agent.Accounts, 1)

	_, err = f.uc.UpdateAgent(ctx, "A", map[string]string{"active": "maybe"}, nil)
	requireCode(t, err, pkgerror.CodeInvalidInput)

	got, _ := f.uc.GetAgent(ctx, "A")
	assert.True(t, got.Parameters.Active, "rejected update must not be applied")

	_, err = f.uc.UpdateAgent(ctx, "ghost", nil, nil)
	requireCode(t, err, pkgerror.CodeNotFound)
}
