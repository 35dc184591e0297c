// Command analytics aggregates recipe catalog events from Kafka and serves
// the totals at GET /api/v1/analytics.
//
// Usage:
//
//	go run ./cmd/analytics [-config configs/development.yaml] [-port 8081]
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

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	port := flag.Int("port", 8081, "HTTP port for the analytics API")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if len(cfg.Kafka.Brokers) == 0 {
		slog.Error("analytics service needs kafka.brokers")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *port); err != nil {
		slog.Error("analytics service failed", "error", err)
		os.Exit(1)
	}
	slog.Info("analytics service stopped")
}

func run(ctx context.Context, cfg *config.Config, port int) error {
	topic := cfg.Kafka.Topics.RecipeEvents

	// The consumer needs the aggregator's handler and the aggregator owns the
	// consumer, so the handler forwards through a pointer set just below.
	var aggregator *analytics.Aggregator
	consumer := kafka.NewConsumer(cfg.Kafka, topic, func(ctx context.Context, key, value []byte) error {
		return analytics.HandleEvent(aggregator)(ctx, key, value)
	})
	aggregator = analytics.NewAggregator(consumer, cfg.Analytics.TopN)

	checker := health.NewChecker()
	checker.Register("kafka", health.Ping(func(ctx context.Context) error {
		return kafka.Ping(ctx, cfg.Kafka.Brokers)
	}, true))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/analytics", analytics.NewHandler(aggregator).Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      middleware.Chain(mux, middleware.RequestID, middleware.CORS(middleware.DefaultCORSConfig())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("analytics aggregator consuming", "topic", topic, "group", cfg.Kafka.ConsumerGroup)
		return aggregator.Start(gctx)
	})
	g.Go(func() error {
		slog.Info("analytics service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
