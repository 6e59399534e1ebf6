package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgerror"
)

var (
	errNoGraph  = errors.New("no graph sink configured")
	errNoRunner = errors.New("no background runner configured")
)

// ExportResult counts what Export wrote to the graph sink.
type ExportResult struct {
	Agents       int
	Transactions int
}

// Export writes every agent and then every transaction to the graph sink.
// Each record is written exactly once; the first failure stops the export.
func (u *Usecase) Export(ctx context.Context) (ExportResult, error) {
	if u.graph == nil {
		return ExportResult{}, pkgerror.NewServer(errNoGraph)
	}

	var res ExportResult
	for _, agent := range u.store.ListAgents(ctx) {
		if err := u.graph.WriteAgent(ctx, agent); err != nil {
			slog.ErrorContext(ctx, "failed to export agent", "agent_id", agent.Identifier, "error", err)
			return res, normalizeErr(fmt.Errorf("export agent %s: %w", agent.Identifier, err))
		}
		res.Agents++
	}

	for _, tx := range u.store.Transactions(ctx) {
		if err := u.graph.WriteTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "failed to export transaction", "tx_handle", tx.Handle, "error", err)
			return res, normalizeErr(fmt.Errorf("export transaction %s: %w", handleString(tx.Handle), err))
		}
		res.Transactions++
	}

	slog.InfoContext(ctx, "graph export finished", "agents", res.Agents, "transactions", res.Transactions)
	return res, nil
}

// ExportAsync schedules Export on the background runner bound to the root
// context, so it outlives the request that triggered it.
func (u *Usecase) ExportAsync(ctx context.Context) error {
	if u.graph == nil {
		return pkgerror.NewServer(errNoGraph)
	}
	if u.runner == nil {
		return pkgerror.NewServer(errNoRunner)
	}

	slog.InfoContext(ctx, "graph export scheduled")
	u.runner.Go(u.rootCtx, "graph-export", func(ctx context.Context) error {
		_, err := u.Export(ctx)
		return err
	})

	return nil
}
