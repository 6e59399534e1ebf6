package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// closeOrder lists closers that must run in sequence after the HTTP server
// has stopped; the ledger drains its audit events before config goes away.
var closeOrder = []string{"Ledger", "Config"}

// Start serves HTTP in the background and returns a channel that is closed
// once a termination signal arrives.
func (a *App) Start() <-chan struct{} {
	terminated := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		slog.Info("termination signal received")
		close(terminated)
	}()

	return terminated
}

// Stop shuts the HTTP server down, cancels the root context so background
// tasks such as graph exports abort, waits for them until ctx expires, then
// releases module resources.
func (a *App) Stop(ctx context.Context) {
	if closer, ok := a.closerFn["HTTP Server"]; ok {
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.cancel != nil {
		a.cancel()
	}

	slog.InfoContext(ctx, "waiting for background tasks to finish")
	if err := a.goroutine.WaitContext(ctx); err != nil {
		slog.ErrorContext(ctx, "background tasks failed", "error", err)
	}

	for _, name := range closeOrder {
		closer, ok := a.closerFn[name]
		if !ok {
			continue
		}
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
