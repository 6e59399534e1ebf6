package inbound

import (
	"context"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/ledger/usecase"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgrouter"
	"github.com/shopspring/decimal"
)

type uc interface {
	RegisterAgent(ctx context.Context, in usecase.RegisterAgent) (entity.Agent, error)
	UpdateAgent(ctx context.Context, agentID string, params, state map[string]string) (entity.Agent, error)
	GetAgent(ctx context.Context, agentID string) (entity.Agent, error)
	ListAgents(ctx context.Context) []entity.Agent
	Render(ctx context.Context, agentID string) (string, error)

	AddTransaction(ctx context.Context, in usecase.NewTransaction) (entity.Handle, error)
	GetTransaction(ctx context.Context, h entity.Handle) (entity.Transaction, error)
	RemoveTransaction(ctx context.Context, h entity.Handle) (entity.Transaction, error)
	Accounts(ctx context.Context, agentID string) ([]entity.Transaction, error)
	GetAccount(ctx context.Context, agentID string, txType entity.TxType) (usecase.AccountSummary, error)

	CheckConsistency(ctx context.Context, agentID string) (usecase.ConsistencyReport, error)
	CheckConsistencyStrict(ctx context.Context, agentID string) (usecase.ConsistencyReport, error)

	UpdateMaturity(ctx context.Context, agentID string) error
	UpdateMaturityAll(ctx context.Context) int
	LiquidateDue(ctx context.Context, agentID string, txType entity.TxType) (decimal.Decimal, error)
	PurgeAccounts(ctx context.Context, agentID string, liquidated ...entity.TxType) (usecase.PurgeResult, error)
	ClearAccounts(ctx context.Context, agentID string) (int, error)

	AdvanceStep(ctx context.Context) int64
	ExportAsync(ctx context.Context) error
}

type auditTrail interface {
	Recent(limit int) []entity.LedgerEvent
}

const maxBodyBytes = 1 << 20

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, audit auditTrail) {
	end := &HTTPEndpoint{uc: uc, audit: audit}
	limit := pkgrouter.LimitBody(maxBodyBytes)

	r.GET("/agents", end.ListAgents)
	r.POST("/agents", end.RegisterAgent, limit)
	r.GET("/agents/:id", end.GetAgent)
	r.PUT("/agents/:id", end.UpdateAgent, limit)
	r.GET("/agents/:id/render", end.Render)
	r.GET("/agents/:id/consistency", end.Consistency) // ?strict=true
	r.GET("/agents/:id/liquidation", end.Liquidation) // ?type=
	r.GET("/agents/:id/accounts/:type", end.Account)
	r.POST("/agents/:id/maturity", end.UpdateMaturity)
	r.POST("/agents/:id/purge", end.Purge, limit)
	r.POST("/agents/:id/clear", end.Clear)

	r.POST("/transactions", end.AddTransaction, limit)
	r.GET("/transactions/:handle", end.GetTransaction)
	r.DELETE("/transactions/:handle", end.RemoveTransaction)

	r.POST("/maturity", end.UpdateMaturityAll)
	r.POST("/step", end.AdvanceStep)
	r.POST("/export", end.Export)
	r.GET("/events", end.Events) // ?limit=
}
