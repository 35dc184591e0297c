package report

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/resilience"
)

// Store keeps reports ordered by creation time.
type Store interface {
	Save(ctx context.Context, r Report) error
	// Latest returns pkg/errors.ErrNotFound when nothing has been saved.
	Latest(ctx context.Context) (Report, error)
	// List returns at most limit reports, newest first. limit <= 0 means
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]Report, error)
	Ping(ctx context.Context) error
	Close() error
}

const DefaultListLimit = 20

// New opens the backend named by cfg.Report.Backend. It returns a nil Store
// and nil error for "none". Connections are retried with backoff.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Report.Backend {
	case "none":
		return nil, nil
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		var s Store
		err := resilience.Retry(ctx, "open sqlite report store", resilience.RetryConfig{MaxAttempts: 3}, func(ctx context.Context) error {
			var err error
			s, err = NewSQLiteStore(ctx, cfg.SQLite.Path)
			return err
		})
		return s, err
	case "postgres":
		var s Store
		err := resilience.Retry(ctx, "connect postgres report store", resilience.DefaultRetryConfig(), func(ctx context.Context) error {
			var err error
			s, err = NewPostgresStore(ctx, cfg.Postgres)
			return err
		})
		return s, err
	default:
		return nil, fmt.Errorf("unknown report backend %q", cfg.Report.Backend)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
