// Command recipeserver serves the recipe catalog over HTTP.
//
// The catalog is rebuilt from the seed recipes on every start. Redis (query
// cache), Kafka (analytics events) and the report store are optional; when
// one is disabled or unreachable the service keeps running and
// /health/ready reports it as degraded.
//
// Usage:
//
//	go run ./cmd/recipeserver [-config configs/development.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/cache"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/handler"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/report"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/router"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("recipe server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("recipe server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting recipe server", "port", cfg.Server.Port, "seed", cfg.Catalog.Seed)

	m := metrics.New(prometheus.DefaultRegisterer)
	checker := health.NewChecker()

	coll := recipe.NewCollection()
	if cfg.Catalog.Seed {
		var err error
		if coll, err = recipe.Seed(); err != nil {
			return fmt.Errorf("loading seed recipes: %w", err)
		}
	}

	// In-process aggregation always runs; Kafka publishing is added on top.
	aggregator := analytics.NewAggregator(nil, cfg.Analytics.TopN)
	trackers := []analytics.Tracker{aggregator}

	var collector *analytics.Collector
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.RecipeEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, cfg.Analytics.BufferSize, m)
		trackers = append(trackers, collector)
		checker.Register("kafka", health.Ping(producer.Ping, false))
		slog.Info("analytics publishing enabled", "topic", cfg.Kafka.Topics.RecipeEvents)
	} else {
		checker.Register("kafka", health.Disabled("kafka.enabled is false"))
	}

	cat := catalog.New(coll,
		catalog.WithMetrics(m),
		catalog.WithTracker(analytics.Multi(trackers...)),
		catalog.WithTopIngredients(cfg.Catalog.TopIngredients),
	)
	checker.Register("catalog", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d recipes, version %d", cat.Len(), cat.Version()),
		}
	})
	slog.Info("catalog ready", "recipes", cat.Len())

	var queryCache *cache.QueryCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
			checker.Register("redis", health.Ping(func(context.Context) error { return err }, false))
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
			checker.Register("redis", health.Ping(redisClient.Ping, false))
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	} else {
		checker.Register("redis", health.Disabled("redis.enabled is false"))
	}

	var saver *report.Saver
	store, err := report.New(ctx, cfg)
	switch {
	case err != nil:
		slog.Warn("report store unavailable, persistence disabled", "backend", cfg.Report.Backend, "error", err)
		checker.Register("reports", health.Ping(func(context.Context) error { return err }, false))
	case store == nil:
		checker.Register("reports", health.Disabled("report.backend is none"))
	default:
		defer store.Close()
		saver = report.NewSaver(store, cat, m)
		checker.Register("reports", health.Ping(store.Ping, false))
		slog.Info("report persistence enabled", "backend", cfg.Report.Backend, "interval", cfg.Report.Interval)
	}

	var limiter *middleware.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = middleware.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.New(router.Deps{
			Handler:   handler.New(cat, queryCache, saver),
			Analytics: analytics.NewHandler(aggregator),
			Health:    checker,
			Metrics:   m,
			Limiter:   limiter,
			CORS:      middleware.DefaultCORSConfig(),
			Timeout:   cfg.Server.WriteTimeout,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if collector != nil {
		collector.Start(gctx)
		defer collector.Close()
	}
	if saver != nil && cfg.Report.Interval > 0 {
		done := saver.Start(gctx, cfg.Report.Interval)
		g.Go(func() error {
			<-done
			return nil
		})
	}
	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		g.Go(func() error {
			<-gctx.Done()
			return shutdownMetrics(context.Background())
		})
	}

	g.Go(func() error {
		slog.Info("recipe server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
