// Package cache memoises search and filter results in Redis. Keys embed a
// Generation, so entries written for another catalog instance or an older
// version are never read again and simply expire.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/metrics"
)

const keyPrefix = "recipes:query:"

// Backend is the subset of the Redis client the cache uses.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type QueryCache struct {
	backend Backend
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

func New(backend Backend, ttl time.Duration, m *metrics.Metrics) *QueryCache {
	return &QueryCache{
		backend: backend,
		ttl:     ttl,
		metrics: m,
		logger:  slog.Default().With("component", "query-cache"),
	}
}

// GetOrCompute returns the cached result for key or runs compute once per
// key across concurrent callers. Errors are returned to every waiter and
// never cached. Backend failures degrade to computing without the cache.
func (c *QueryCache) GetOrCompute(ctx context.Context, key string, compute func() ([]recipe.Recipe, error)) ([]recipe.Recipe, bool, error) {
	if res, ok := c.get(ctx, key); ok {
		return res, true, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, res)
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]recipe.Recipe), false, nil
}

// Invalidate drops every cached query.
func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.backend.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating query cache: %w", err)
	}
	c.logger.Info("query cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

func (c *QueryCache) Stats() Stats {
	s := Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

func (c *QueryCache) get(ctx context.Context, key string) ([]recipe.Recipe, bool) {
	data, found, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
	}
	if err != nil || !found {
		c.miss()
		return nil, false
	}
	var res []recipe.Recipe
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("cache entry unreadable", "key", key, "error", err)
		c.miss()
		return nil, false
	}
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
	return res, true
}

func (c *QueryCache) set(ctx context.Context, key string, res []recipe.Recipe) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *QueryCache) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}

// Generation identifies one state of one catalog. Instance is random per
// catalog, so processes sharing a Redis, or a restarted process whose
// version counter starts over, never read each other's entries.
type Generation struct {
	Instance string
	Version  uint64
}

// SearchKey normalises q the same way Search compares it: case-folded,
// untrimmed substrings.
func SearchKey(gen Generation, q recipe.Query) string {
	return buildKey(gen, "search",
		"name="+fold(q.Name),
		"ingredient="+fold(q.Ingredient),
		"duration="+strconv.Itoa(q.DurationMinutes),
	)
}

func DurationFilterKey(gen Generation, maxDuration int, ingredient string) string {
	return buildKey(gen, "filter_duration",
		"max="+strconv.Itoa(maxDuration),
		"ingredient="+fold(strings.TrimSpace(ingredient)),
	)
}

// TwoIngredientKey ignores argument order.
func TwoIngredientKey(gen Generation, a, b string) string {
	pair := []string{fold(strings.TrimSpace(a)), fold(strings.TrimSpace(b))}
	sort.Strings(pair)
	return buildKey(gen, "filter_two", "a="+pair[0], "b="+pair[1])
}

func buildKey(gen Generation, op string, parts ...string) string {
	raw := fmt.Sprintf("%s|v%d|%s|%s", gen.Instance, gen.Version, op, strings.Join(parts, "|"))
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func fold(s string) string {
	return cases.Fold().String(s)
}
