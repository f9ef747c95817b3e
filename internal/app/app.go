package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/RodCinelli/gestao-engparente/internal/data/db"
	"github.com/RodCinelli/gestao-engparente/internal/http"
	"github.com/RodCinelli/gestao-engparente/internal/observability"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
	"github.com/RodCinelli/gestao-engparente/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Hub      *realtime.Hub
	Metrics  *observability.Metrics
	Server   *http.Server

	bus          bus.Bus
	otelShutdown func(context.Context) error
}

// New opens the database, migrates it and wires every layer. With serve
// set it also builds the realtime transport and the HTTP server; the
// command-line tools leave it off and get no-op notifications.
func New(ctx context.Context, cfg Config, serve bool) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &App{Log: log, Cfg: cfg}

	if serve {
		a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel())
	}

	a.DB, err = db.Open(cfg.Database(), log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrateAll(a.DB); err != nil {
		a.Close()
		return nil, err
	}

	a.Repos = wireRepos(a.DB, log)

	var notifier realtime.Notifier = realtime.NopNotifier{}
	if serve {
		if cfg.MetricsEnabled {
			a.Metrics = observability.NewMetrics()
		}
		a.Hub = realtime.NewHub(log).Instrument(a.Metrics)
		notifier = realtime.NewHubNotifier(a.Hub, log)
		if cfg.RedisAddr != "" {
			a.bus, err = bus.NewRedisBus(cfg.Redis(), log)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("init redis bus: %w", err)
			}
			notifier = bus.NewNotifier(a.bus, a.Hub, log)
		}
	}

	a.Services = wireServices(a.DB, log, cfg, a.Repos, notifier)

	if serve {
		handlers := wireHandlers(ctx, log, cfg, a.Services, a.Hub)
		middleware := wireMiddleware(log, cfg, a.Services)
		a.Server = &http.Server{Engine: wireRouter(log, cfg, a.Metrics, handlers, middleware)}
	}
	return a, nil
}

// Run serves HTTP and, with Redis configured, forwards bus events into the
// local hub. It returns when ctx ends or either side fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized for serving")
	}
	g, gctx := errgroup.WithContext(ctx)
	if a.Metrics != nil {
		a.Metrics.StartDBCollector(gctx, a.Log, a.DB, a.Cfg.MetricsScrapeInterval)
		if a.Cfg.RedisAddr != "" {
			a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.Redis().Options(), a.Cfg.MetricsScrapeInterval)
		}
	}
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
		return a.Server.Run(gctx, a.Cfg.HTTPAddr)
	})
	if a.bus != nil {
		g.Go(func() error {
			return a.bus.StartForwarder(gctx, a.Hub.Publish)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Log.Warn("close redis bus", "error", err)
		}
	}
	if a.DB != nil {
		if err := db.Close(a.DB); err != nil {
			a.Log.Warn("close database", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
	}
	a.Log.Sync()
}
