package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `CREATE TABLE IF NOT EXISTS statistics_reports (
		id              TEXT PRIMARY KEY,
		trigger_kind    TEXT NOT NULL,
		catalog_version INTEGER NOT NULL,
		recipe_count    INTEGER NOT NULL,
		snapshot        TEXT NOT NULL,
		created_at      TIMESTAMP NOT NULL
	)`,
	insert: `INSERT INTO statistics_reports (id, trigger_kind, catalog_version, recipe_count, snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
	latest: `SELECT id, trigger_kind, snapshot, created_at FROM statistics_reports
		ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	list: `SELECT id, trigger_kind, snapshot, created_at FROM statistics_reports
		ORDER BY created_at DESC, rowid DESC LIMIT ?`,
}

// NewSQLiteStore opens (creating if needed) the database file at path.
func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite report store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating sqlite directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling sqlite WAL: %w", err)
	}
	s := &sqlStore{db: db, dialect: sqliteDialect}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
