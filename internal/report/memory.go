package report

import (
	"context"
	"net/http"
	"sync"

	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

// MemoryStore keeps reports for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, r Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return nil
}

func (m *MemoryStore) Latest(_ context.Context) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.reports) == 0 {
		return Report{}, apperrors.New(apperrors.ErrNotFound, http.StatusNotFound, "no reports saved yet")
	}
	return m.reports[len(m.reports)-1], nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = clampLimit(limit)
	out := make([]Report, 0, min(limit, len(m.reports)))
	for i := len(m.reports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.reports[i])
	}
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
