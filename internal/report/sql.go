package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

// dialect holds the statements that differ between SQLite and Postgres.
type dialect struct {
	name   string
	schema string
	insert string
	latest string
	list   string
}

// sqlStore is the database/sql implementation shared by both backends. The
// snapshot is stored as a JSON document next to a few indexed columns.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	closeFn func() error
}

func (s *sqlStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("creating %s report schema: %w", s.dialect.name, err)
	}
	return nil
}

func (s *sqlStore) Save(ctx context.Context, r Report) error {
	payload, err := json.Marshal(r.Snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.dialect.insert,
		r.ID,
		string(r.Trigger),
		int64(r.Snapshot.Version),
		r.Snapshot.RecipeCount,
		string(payload),
		r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", r.ID, err)
	}
	return nil
}

func (s *sqlStore) Latest(ctx context.Context) (Report, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.latest)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, apperrors.New(apperrors.ErrNotFound, http.StatusNotFound, "no reports saved yet")
	}
	return r, err
}

func (s *sqlStore) List(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.list, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	out := make([]Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) Close() error {
	if s.closeFn != nil {
		return s.closeFn()
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (Report, error) {
	var (
		r       Report
		trigger string
		payload string
		created time.Time
	)
	if err := sc.Scan(&r.ID, &trigger, &payload, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, err
		}
		return Report{}, fmt.Errorf("scanning report: %w", err)
	}
	var snap catalog.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return Report{}, fmt.Errorf("decoding report %s: %w", r.ID, err)
	}
	r.Trigger = Trigger(trigger)
	r.Snapshot = snap
	r.CreatedAt = created.UTC()
	return r, nil
}
