package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/metrics"
)

// Saver takes and stores reports, counting outcomes in metrics when set.
type Saver struct {
	store   Store
	source  Snapshotter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewSaver(store Store, source Snapshotter, m *metrics.Metrics) *Saver {
	return &Saver{
		store:   store,
		source:  source,
		metrics: m,
		logger:  slog.Default().With("component", "report-saver"),
	}
}

func (s *Saver) Store() Store {
	return s.store
}

// SaveNow snapshots the catalog and persists it.
func (s *Saver) SaveNow(ctx context.Context, trigger Trigger) (Report, error) {
	r := Take(ctx, s.source, trigger)
	if err := s.store.Save(ctx, r); err != nil {
		s.count("error")
		s.logger.Error("failed to save report", "trigger", trigger, "error", err)
		return Report{}, err
	}
	s.count("ok")
	s.logger.Info("report saved",
		"id", r.ID,
		"trigger", trigger,
		"recipes", r.Snapshot.RecipeCount,
		"version", r.Snapshot.Version,
	)
	return r, nil
}

// Start saves a report every interval and once more when ctx is cancelled.
// It returns immediately; the returned channel closes after the final save.
func (s *Saver) Start(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_, _ = s.SaveNow(ctx, TriggerPeriodic)
			case <-ctx.Done():
				finalCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				_, _ = s.SaveNow(finalCtx, TriggerShutdown)
				cancel()
				return
			}
		}
	}()
	s.logger.Info("periodic report saver started", "interval", interval)
	return done
}

func (s *Saver) count(status string) {
	if s.metrics != nil {
		s.metrics.ReportSavesTotal.WithLabelValues(status).Inc()
	}
}
