package app

import (
	"log/slog"
	"os"

	"github.com/jkpaulin/BlackRhino/internal/ledger"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.ledger.enabled") {
		closer, err := ledger.New(ledger.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			UUID:      a.uuid,
			Handles:   a.handles,
		})
		if err != nil {
			slog.Error("failed to init module ledger", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.closerFn["Ledger"] = closer
		}
	}
}
