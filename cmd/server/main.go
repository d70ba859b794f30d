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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"mcms/internal/app"
	httpapi "mcms/internal/http"
	"mcms/internal/payment/gateway"
	"mcms/internal/platform/config"
	"mcms/internal/platform/httpserver"
	"mcms/internal/platform/logger"
	"mcms/internal/platform/mongo"
	"mcms/internal/platform/otel"
	"mcms/internal/platform/redis"
	"mcms/internal/ratelimit/store/bucket"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mcms: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("tracing shutdown failed", "error", err)
		}
	}()

	deps := app.Dependencies{
		Config: cfg,
		Logger: log,
		Health: map[string]httpapi.HealthChecker{},
	}

	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := mongo.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeMongo(client, log)
		if err := client.EnsureIndexes(ctx); err != nil {
			return err
		}
		deps.Stores = app.NewMongoStores(client)
		deps.Health["mongo"] = client
		log.Info("connected to mongo", "database", cfg.Store.Database)
	default:
		deps.Stores = app.NewMemoryStores()
		log.Warn("using in-memory store; data is lost on restart")
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		deps.Buckets = bucket.NewRedisBucketStore(rdb.Client)
		deps.Health["redis"] = rdb
		log.Info("rate limit buckets backed by redis")
	}

	deps.Gateway, err = gateway.NewProvider(cfg.Payments)
	if err != nil {
		return err
	}
	log.Info("payment provider selected", "provider", deps.Gateway.Name())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry

	handler, err := app.New(ctx, deps)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.Addr(), handler)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting mcms", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func closeMongo(client *mongo.Client, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Close(ctx); err != nil {
		log.Error("mongo disconnect failed", "error", err)
	}
}
