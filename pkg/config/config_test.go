package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Catalog.Seed)
	assert.Equal(t, 5, cfg.Catalog.TopIngredients)
	assert.Equal(t, "memory", cfg.Report.Backend)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "recipe-events", cfg.Kafka.Topics.RecipeEvents)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9000
catalog:
  seed: false
  topIngredients: 3
report:
  backend: sqlite
  interval: 30s
redis:
  enabled: true
  cacheTTL: 5s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("RCP_SERVER_PORT", "9100")
	t.Setenv("RCP_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env overrides file")
	assert.False(t, cfg.Catalog.Seed)
	assert.Equal(t, 3, cfg.Catalog.TopIngredients)
	assert.Equal(t, "sqlite", cfg.Report.Backend)
	assert.Equal(t, 30*time.Second, cfg.Report.Interval)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("RCP_REPORT_BACKEND", "mongo")
	_, err := Load("")
	assert.ErrorContains(t, err, "unknown report backend")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestPostgresDSN(t *testing.T) {
	p := Default().Postgres
	assert.Equal(t, "host=localhost port=5432 user=recipes password=localdev dbname=recipes sslmode=disable", p.DSN())
}
