package report

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/postgres"
)

var postgresDialect = dialect{
	name: "postgres",
	schema: `CREATE TABLE IF NOT EXISTS statistics_reports (
		id              TEXT PRIMARY KEY,
		trigger_kind    TEXT NOT NULL,
		catalog_version BIGINT NOT NULL,
		recipe_count    INTEGER NOT NULL,
		snapshot        JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
	insert: `INSERT INTO statistics_reports (id, trigger_kind, catalog_version, recipe_count, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
	latest: `SELECT id, trigger_kind, snapshot::text, created_at FROM statistics_reports
		ORDER BY created_at DESC LIMIT 1`,
	list: `SELECT id, trigger_kind, snapshot::text, created_at FROM statistics_reports
		ORDER BY created_at DESC LIMIT $1`,
}

func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig) (Store, error) {
	client, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &sqlStore{db: client.DB, dialect: postgresDialect, closeFn: client.Close}
	if err := s.migrate(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}
