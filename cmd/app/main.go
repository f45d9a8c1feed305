package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crowddelivery/cmd"
	httpapi "crowddelivery/internal/adapters/in/http"
	"crowddelivery/internal/adapters/in/ws"
	"crowddelivery/internal/adapters/out/locationcache"
	"crowddelivery/internal/adapters/out/orderstream"
	"crowddelivery/internal/adapters/out/persistence"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/eventbus"
	"crowddelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

//	@title			Crowd delivery dispatch API
//	@version		1.0
//	@description	Order dispatch, accept arbitration and real-time coordination for merchants and riders.
//	@BasePath		/api/v1
func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := cmd.NewLogger(configs.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) (err error) {
	db, err := persistence.Open(configs.DB.Persistence())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { err = multierr.Append(err, persistence.Close(db)) }()

	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bus := eventbus.New(configs.Bus.SubscriberQueue, metrics.NewBus(registry), logger)

	g, gctx := errgroup.WithContext(ctx)

	locations, closeLocations, err := newLocationCache(gctx, configs.Redis, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLocations()) }()

	root, err := cmd.NewCompositionRoot(configs, cmd.Infrastructure{
		DB:        db,
		Bus:       bus,
		Locations: locations,
		Registry:  registry,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	manager := root.CreateJobManager()
	if err := manager.StartAll(gctx); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	httpapi.Register(e, httpapi.NewServer(root.HTTPHandlers()), httpapi.RouterOptions{
		Logger:   logger,
		Metrics:  metrics.NewHTTP(registry),
		Gatherer: registry,
	})
	gateway := ws.NewGateway(bus, root.WSHandlers(), logger)
	gateway.Register(e)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", configs.App.Addr())
		if err := e.Start(configs.App.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if configs.Kafka.Enabled() {
		forwarder, ferr := orderstream.NewForwarder(bus, configs.Kafka.Stream(), logger)
		if ferr != nil {
			return ferr
		}
		defer func() { err = multierr.Append(err, forwarder.Close()) }()
		g.Go(func() error { return forwarder.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.App.ShutdownTimeout)
		defer cancel()

		// Stop accepting requests first, then end the dispatch jobs, then the live
		// connections, which unblock once the bus closes their subscriptions.
		shutdownErr := e.Shutdown(shutdownCtx)
		manager.StopAll()
		bus.Close()
		gateway.Wait()
		return shutdownErr
	})

	return g.Wait()
}

// newLocationCache picks Redis when it is configured and the in-memory cache
// otherwise. The returned func releases the cache.
func newLocationCache(
	ctx context.Context,
	cfg cmd.RedisConfig,
	logger *slog.Logger,
) (ports.LocationCache, func() error, error) {
	if cfg.Enabled() {
		cache, err := locationcache.NewRedisCache(ctx, cfg.Cache())
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("Using redis location cache", "addr", cfg.Addr)
		return cache, cache.Close, nil
	}

	cache := locationcache.NewMemoryCache(cfg.LocationTTL)
	cache.StartJanitor(ctx)
	logger.Info("Using in-memory location cache")
	return cache, func() error { return nil }, nil
}
