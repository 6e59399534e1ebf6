package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
	"github.com/shopspring/decimal"
)

type Store interface {
	CreateAgent(ctx context.Context, agent entity.Agent) error
	UpdateAgent(ctx context.Context, agentID string, fn func(agent *entity.Agent) error) error
	GetAgent(ctx context.Context, agentID string) (entity.Agent, error)
	ListAgents(ctx context.Context) []entity.Agent

	Create(ctx context.Context, tx entity.Transaction) (entity.Handle, error)
	Get(ctx context.Context, h entity.Handle) (entity.Transaction, error)
	Remove(ctx context.Context, h entity.Handle) (entity.Transaction, error)
	Accounts(ctx context.Context, agentID string) ([]entity.Transaction, error)
	Transactions(ctx context.Context) []entity.Transaction

	MatureAgent(ctx context.Context, agentID string) (int, error)
	MatureAll(ctx context.Context) int
	RemoveWhere(ctx context.Context, agentID string, match func(tx entity.Transaction) bool) ([]entity.Transaction, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

type GraphSink interface {
	WriteAgent(ctx context.Context, agent entity.Agent) error
	WriteTransaction(ctx context.Context, tx entity.Transaction) error
}

type Runner interface {
	Go(ctx context.Context, name string, f func(ctx context.Context) error)
}

// PurgeConfig tunes which entries PurgeAccounts treats as worthless.
type PurgeConfig struct {
	// Negligible is the amount below which an entry is dropped.
	Negligible decimal.Decimal
	// GracePeriod is how many steps a defaulted entry survives its default.
	GracePeriod int64
}

// DefaultNegligible rounds to 0.00 at two decimal places.
var DefaultNegligible = decimal.RequireFromString("0.005")

type Dependency struct {
	Store       Store
	Events      EventPublisher
	Graph       GraphSink
	Runner      Runner
	ID          pkguid.StringID
	Classifiers map[entity.Role]Classifier
	// Purge nil uses DefaultNegligible and no grace period.
	Purge       *PurgeConfig
	RootCtx     context.Context
}

type Usecase struct {
	store       Store
	events      EventPublisher
	graph       GraphSink
	runner      Runner
	id          pkguid.StringID
	classifiers map[entity.Role]Classifier
	purge       PurgeConfig
	rootCtx     context.Context
	step        atomic.Int64
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	classifiers := dep.Classifiers
	if classifiers == nil {
		classifiers = DefaultClassifiers()
	}

	purge := PurgeConfig{Negligible: DefaultNegligible}
	if dep.Purge != nil {
		purge = *dep.Purge
	}
	if purge.Negligible.IsNegative() {
		purge.Negligible = decimal.Zero
	}
	if purge.GracePeriod < 0 {
		purge.GracePeriod = 0
	}

	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	return &Usecase{
		store:       dep.Store,
		events:      dep.Events,
		graph:       dep.Graph,
		runner:      dep.Runner,
		id:          id,
		classifiers: classifiers,
		purge:       purge,
		rootCtx:     root,
	}
}

// Step returns the current simulation step.
func (u *Usecase) Step() int64 {
	return u.step.Load()
}

// AdvanceStep moves the simulation clock forward by one and returns the new step.
func (u *Usecase) AdvanceStep(ctx context.Context) int64 {
	step := u.step.Add(1)
	slog.DebugContext(ctx, "simulation step advanced", "step", step)
	return step
}

func (u *Usecase) publish(ctx context.Context, event entity.LedgerEvent) {
	if u.events == nil {
		return
	}

	event.EventID = u.id.Generate()
	event.Step = u.Step()
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish ledger event", "event_id", event.EventID, "kind", event.Kind, "agent_id", event.AgentID, "error", err)
	}
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}

	var (
		illegal      *entity.IllegalTransactionError
		unknown      *entity.UnknownTransactionTypeError
		inconsistent *entity.InconsistentLedgerError
	)

	switch {
	case errors.As(err, &illegal), errors.As(err, &unknown):
		return pkgerror.NewModel(err, pkgerror.CodeIllegalTransaction)
	case errors.As(err, &inconsistent):
		return pkgerror.NewModel(err, pkgerror.CodeInconsistentLedger)
	case errors.Is(err, entity.ErrAgentNotFound), errors.Is(err, entity.ErrTransactionNotFound):
		return pkgerror.NewNotFound(err)
	case errors.Is(err, entity.ErrAgentExists):
		return pkgerror.NewConflict(err)
	case errors.Is(err, entity.ErrEmptyIdentifier),
		errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrUnsupportedRole),
		errors.Is(err, entity.ErrUnknownAttribute),
		errors.Is(err, entity.ErrEmptyType),
		errors.Is(err, entity.ErrSameAgent),
		errors.Is(err, entity.ErrNegativeAmount),
		errors.Is(err, entity.ErrNegativeMaturity):
		return pkgerror.NewInvalidInput(err)
	}

	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
