package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
)

// RegisterAgent is the input of RegisterAgent. Parameters and StateVariables
// are flat name/value mappings as read from an external source.
type RegisterAgent struct {
	Identifier     string
	Role           entity.Role
	Parameters     map[string]string
	StateVariables map[string]string
}

// RegisterAgent creates an empty book. A missing identifier is generated and
// a missing role defaults to bank.
func (u *Usecase) RegisterAgent(ctx context.Context, in RegisterAgent) (entity.Agent, error) {
	id := strings.TrimSpace(in.Identifier)
	if id == "" {
		id = u.id.Generate()
	}

	role := in.Role
	if role == "" {
		role = entity.RoleBank
	}
	if !role.Valid() {
		return entity.Agent{}, mapErr(fmt.Errorf("%w: %q", entity.ErrInvalidRole, in.Role))
	}

	agent := entity.NewAgent(id, role)
	if err := agent.ApplyParameters(in.Parameters); err != nil {
		return entity.Agent{}, pkgerror.NewInvalidInput(err)
	}
	if err := agent.ApplyStateVariables(in.StateVariables); err != nil {
		return entity.Agent{}, pkgerror.NewInvalidInput(err)
	}

	if err := u.store.CreateAgent(ctx, agent); err != nil {
		return entity.Agent{}, mapErr(err)
	}

	slog.InfoContext(ctx, "agent registered", "agent_id", id, "role", role)
	return agent, nil
}

// UpdateAgent applies flat parameter and state variable values to an
// existing agent. Nothing is written when any value is rejected.
func (u *Usecase) UpdateAgent(ctx context.Context, agentID string, params, state map[string]string) (entity.Agent, error) {
	err := u.store.UpdateAgent(ctx, agentID, func(agent *entity.Agent) error {
		if err := agent.ApplyParameters(params); err != nil {
			return pkgerror.NewInvalidInput(err)
		}
		if err := agent.ApplyStateVariables(state); err != nil {
			return pkgerror.NewInvalidInput(err)
		}
		return nil
	})
	if err != nil {
		return entity.Agent{}, mapErr(err)
	}

	return u.GetAgent(ctx, agentID)
}

// GetAgent returns the agent with its current handles.
func (u *Usecase) GetAgent(ctx context.Context, agentID string) (entity.Agent, error) {
	agent, err := u.store.GetAgent(ctx, agentID)
	return agent, mapErr(err)
}

// ListAgents returns every registered agent.
func (u *Usecase) ListAgents(ctx context.Context) []entity.Agent {
	return u.store.ListAgents(ctx)
}
