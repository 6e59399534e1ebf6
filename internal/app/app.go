package app

import (
	"context"
	"net/http"

	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgconfig"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgrouter"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgroutine"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	handles   pkguid.NumberID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	closerFn map[string]func(context.Context) error
}

func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:      ctx,
		cancel:   cancel,
		closerFn: map[string]func(context.Context) error{},
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
