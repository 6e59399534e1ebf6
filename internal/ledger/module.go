package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jkpaulin/BlackRhino/internal/ledger/event"
	"github.com/jkpaulin/BlackRhino/internal/ledger/inbound"
	"github.com/jkpaulin/BlackRhino/internal/ledger/outbound"
	"github.com/jkpaulin/BlackRhino/internal/ledger/source"
	"github.com/jkpaulin/BlackRhino/internal/ledger/store"
	"github.com/jkpaulin/BlackRhino/internal/ledger/usecase"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgconfig"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgrouter"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkgroutine"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
	"github.com/shopspring/decimal"
)

const graphConnectTimeout = 10 * time.Second

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	UUID      pkguid.StringID
	Handles   pkguid.NumberID
}

type graphSink interface {
	usecase.GraphSink
	Close(ctx context.Context) error
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.UUID == nil {
		dep.UUID = pkguid.NewUUID()
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}
	if dep.Goroutine == nil {
		dep.Goroutine = pkgroutine.NewManager(0)
	}

	purge, err := purgeConfig(dep.Config)
	if err != nil {
		return nil, err
	}

	graph, err := newGraphSink(dep.Context, dep.Config)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(int(dep.Config.GetInt("modules.ledger.events.buffer")))
	audit := event.NewAuditLog(int(dep.Config.GetInt("modules.ledger.events.audit_capacity")))
	consumer := event.NewAuditConsumer(bus, audit, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("modules.ledger.events.workers")),
		MaxRetries:  int(dep.Config.GetInt("modules.ledger.events.max_retries")),
		BaseBackoff: dep.Config.GetDuration("modules.ledger.events.base_backoff"),
		Remember:    int(dep.Config.GetInt("modules.ledger.events.audit_capacity")),
	})
	consumer.Start()

	closer := func(ctx context.Context) error {
		return errors.Join(consumer.Stop(ctx), graph.Close(ctx))
	}

	uc := usecase.New(usecase.Dependency{
		Store:   store.NewRegistry(dep.Handles),
		Events:  bus,
		Graph:   graph,
		Runner:  dep.Goroutine,
		ID:      dep.UUID,
		Purge:   &purge,
		RootCtx: dep.Context,
	})

	if path := dep.Config.GetString("modules.ledger.agents_file"); path != "" {
		seed, err := source.Load(path)
		if err == nil {
			err = seed.Apply(dep.Context, uc)
		}
		if err != nil {
			_ = closer(dep.Context)
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc, audit)

	return closer, nil
}

func purgeConfig(cfg pkgconfig.Config) (usecase.PurgeConfig, error) {
	purge := usecase.PurgeConfig{
		Negligible:  usecase.DefaultNegligible,
		GracePeriod: cfg.GetInt("modules.ledger.purge.grace_period"),
	}

	if raw := cfg.GetString("modules.ledger.purge.negligible"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return usecase.PurgeConfig{}, fmt.Errorf("invalid modules.ledger.purge.negligible %q", raw)
		}
		purge.Negligible = v
	}

	return purge, nil
}

func newGraphSink(ctx context.Context, cfg pkgconfig.Config) (graphSink, error) {
	uri := cfg.GetString("modules.ledger.graph.uri")
	if uri == "" {
		slog.Info("graph uri not set, exporting to memory")
		return outbound.NewMemorySink(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, graphConnectTimeout)
	defer cancel()

	sink, err := outbound.NewNeo4jSink(ctx, outbound.Options{
		URI:            uri,
		Database:       cfg.GetString("modules.ledger.graph.database"),
		Username:       cfg.GetString("modules.ledger.graph.username"),
		Password:       cfg.GetString("modules.ledger.graph.password"),
		MaxConnections: int(cfg.GetInt("modules.ledger.graph.max_connections")),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("graph export connected", "uri", uri)
	return sink, nil
}
