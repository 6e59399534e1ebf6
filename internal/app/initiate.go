package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgconfig"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkglog"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgrouter"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgroutine"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	pkglog.InitLogging(cfg.GetString("log.level"))

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()

	node := a.config.GetInt("snowflake.node")
	var (
		handles *pkguid.Snowflake
		err     error
	)
	if a.config.IsSet("snowflake.node") {
		handles, err = pkguid.NewSnowflakeNode(node)
	} else {
		handles, err = pkguid.NewSnowflake()
	}
	if err != nil {
		slog.Error("failed to init snowflake", "node", node, "error", err)
		os.Exit(1)
	}
	a.handles = handles
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
