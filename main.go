package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/api"
	"github.com/xyaoaf/flight-route-map/config"
	"github.com/xyaoaf/flight-route-map/db"
	"github.com/xyaoaf/flight-route-map/flightlog"
	"github.com/xyaoaf/flight-route-map/pkg/buildinfo"
	"github.com/xyaoaf/flight-route-map/pkg/cache"
	"github.com/xyaoaf/flight-route-map/pkg/health"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/pkg/metrics"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err, "Failed to load configuration")
	}
	logger.Init(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})
	logger.Info("Starting flight route map", "version", buildinfo.Version, "commit", buildinfo.Commit, "environment", cfg.Environment)

	if err := run(cfg); err != nil {
		logger.Fatal(err, "Server failed")
	}
	logger.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	hc := health.NewHealthChecker(buildinfo.Version, buildinfo.Info())

	var backend cache.Cache = cache.NoopCache{}
	if cfg.RedisConfig.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr(),
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			// Caching is an optimisation; keep serving without it.
			logger.Warn("Redis unreachable, continuing without a cache", "addr", cfg.RedisConfig.Addr(), "error", err)
		} else {
			logger.Info("Connected to Redis", "addr", cfg.RedisConfig.Addr())
		}
		backend = cache.NewRedisCache(client, cfg.CacheConfig.Prefix)
		hc.AddChecker(&health.RedisChecker{Client: client, Name: "redis"})
	}

	tables := airports.NewHolder(nil)

	deps := &api.Deps{
		Config:    cfg,
		Tables:    tables,
		Routes:    cache.NewRouteCache(backend, cfg.CacheConfig.TTL, collector),
		Responses: cache.NewCacheManager(backend),
		Health:    hc,
		Metrics:   collector,
	}

	if cfg.PostgresConfig.Enabled {
		store, err := openStore(ctx, cfg, tables)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Store = store
		hc.AddChecker(&health.PostgresChecker{DB: store, Name: "postgres"})
	}

	source := flightlog.NewSource(
		cfg.MapConfig.DefaultLogPath,
		cfg.MapConfig.DefaultLogURL,
		routes.NewFetcher(cfg.MapConfig.FetchTimeout),
		deps.Routes,
	)
	if cfg.MapConfig.DefaultLogURL == "" {
		hc.AddChecker(&health.FlightLogChecker{Path: cfg.MapConfig.DefaultLogPath, Name: "flight_log"})
	}

	deps.Refresher = worker.NewRefresher(source, tables.Table,
		api.MapDefaults(cfg.MapConfig, collector), cfg.RefreshConfig.Timeout)

	if _, err := deps.Refresher.Refresh(ctx); err != nil {
		logger.Warn("Initial load of the default flight log failed", "source", source.Describe(), "error", err)
	}
	if cfg.RefreshConfig.Enabled {
		if err := deps.Refresher.Start(cfg.RefreshConfig.Schedule); err != nil {
			return fmt.Errorf("start refresher: %w", err)
		}
		defer deps.Refresher.Stop()
		if next, ok := deps.Refresher.NextRun(); ok {
			logger.Info("Default flight log refresh scheduled", "schedule", cfg.RefreshConfig.Schedule, "next_run", next)
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTPBindAddr, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// openStore migrates and connects to PostgreSQL, then folds the stored airport
// overrides into the live table.
func openStore(ctx context.Context, cfg *config.Config, tables *airports.Holder) (*db.Store, error) {
	if cfg.InitSchema {
		if err := db.RunMigrations(ctx, cfg.PostgresConfig.DSN()); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}

	store, err := db.Open(ctx, cfg.PostgresConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}

	overrides, err := store.AirportOverrides(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load airport overrides: %w", err)
	}
	if len(overrides) > 0 {
		table, err := airports.Default().Merge(overrides)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("merge airport overrides: %w", err)
		}
		tables.Store(table)
		logger.Info("Airport overrides loaded", "overrides", len(overrides), "airports", table.Len())
	}
	return store, nil
}
