// Package catalog shares one recipe collection between concurrent callers.
// Every operation runs under the catalog lock, is counted in Prometheus and
// is reported to an analytics Tracker.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/metrics"
)

type Option func(*Catalog)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

func WithTracker(t analytics.Tracker) Option {
	return func(c *Catalog) { c.tracker = t }
}

// WithTopIngredients sets the Top size used when IngredientStatistics is
// called with top <= 0.
func WithTopIngredients(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.topIngredients = n
		}
	}
}

type Catalog struct {
	mu             sync.RWMutex
	coll           *recipe.Collection
	instanceID     string
	version        uint64
	topIngredients int

	metrics *metrics.Metrics
	tracker analytics.Tracker
	logger  *slog.Logger
}

// New wraps coll. The catalog takes ownership: coll must not be used
// directly afterwards. A nil coll starts empty.
func New(coll *recipe.Collection, opts ...Option) *Catalog {
	if coll == nil {
		coll = recipe.NewCollection()
	}
	c := &Catalog{
		coll:           coll,
		instanceID:     uuid.NewString(),
		topIngredients: recipe.DefaultTopIngredients,
		logger:         logger.WithComponent("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics != nil {
		c.metrics.CollectionSize.Set(float64(coll.Len()))
	}
	return c
}

// InstanceID is random per Catalog. Together with Version it names one
// state of this catalog, which external caches key their entries on.
func (c *Catalog) InstanceID() string {
	return c.instanceID
}

// Version increases by one on every successful Add or Remove. It restarts
// at 0 for every new Catalog.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coll.Len()
}

// List returns a copy of all recipes in insertion order.
func (c *Catalog) List(ctx context.Context) []recipe.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coll.All()
}

func (c *Catalog) Get(ctx context.Context, name string) (recipe.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.coll.Get(name)
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("recipe %q: %w", name, apperrors.ErrNotFound)
	}
	return r, nil
}

func (c *Catalog) Add(ctx context.Context, name string, ingredients []string, durationMinutes int) (recipe.Recipe, error) {
	start := time.Now()
	c.mu.Lock()
	r, err := c.coll.Add(name, ingredients, durationMinutes)
	if err == nil {
		c.version++
		c.setSize()
	}
	c.mu.Unlock()

	ev := analytics.NewEvent(analytics.EventRecipeAdded, "add")
	ev.Recipe = name
	c.observe(ctx, ev, start, err)
	if err == nil {
		logger.FromContext(ctx).Info("recipe added", "name", r.Name, "ingredients", len(r.Ingredients))
	}
	return r, err
}

func (c *Catalog) Remove(ctx context.Context, name string) (recipe.Recipe, error) {
	start := time.Now()
	c.mu.Lock()
	r, err := c.coll.Remove(name)
	if err == nil {
		c.version++
		c.setSize()
	}
	c.mu.Unlock()

	ev := analytics.NewEvent(analytics.EventRecipeRemoved, "remove")
	ev.Recipe = name
	c.observe(ctx, ev, start, err)
	if err == nil {
		logger.FromContext(ctx).Info("recipe removed", "name", r.Name)
	}
	return r, err
}

func (c *Catalog) Search(ctx context.Context, q recipe.Query) ([]recipe.Recipe, error) {
	start := time.Now()
	c.mu.RLock()
	res, err := c.coll.Search(q)
	c.mu.RUnlock()

	c.observe(ctx, SearchEvent(q, len(res)), start, err)
	return res, err
}

func (c *Catalog) FilterByDurationAndIngredient(ctx context.Context, maxDuration int, ingredient string) ([]recipe.Recipe, error) {
	start := time.Now()
	c.mu.RLock()
	res, err := c.coll.FilterByDurationAndIngredient(maxDuration, ingredient)
	c.mu.RUnlock()

	c.observe(ctx, DurationFilterEvent(ingredient, len(res)), start, err)
	return res, err
}

func (c *Catalog) FilterByTwoIngredients(ctx context.Context, a, b string) []recipe.Recipe {
	start := time.Now()
	c.mu.RLock()
	res := c.coll.FilterByTwoIngredients(a, b)
	c.mu.RUnlock()

	c.observe(ctx, TwoIngredientEvent(a, b, len(res)), start, nil)
	return res
}

func (c *Catalog) IngredientFrequency(ctx context.Context, ingredient string) int {
	start := time.Now()
	c.mu.RLock()
	n := c.coll.IngredientFrequency(ingredient)
	c.mu.RUnlock()

	ev := analytics.NewEvent(analytics.EventStatistics, "frequency")
	ev.Terms = nonEmpty(ingredient)
	ev.Results = n
	c.observe(ctx, ev, start, nil)
	return n
}

// MostIngredients returns ErrEmptyCollection when there are no recipes.
func (c *Catalog) MostIngredients(ctx context.Context) (recipe.Recipe, error) {
	return c.maxRecipe(ctx, "most_ingredients", (*recipe.Collection).MostIngredients)
}

// HighestDuration returns ErrEmptyCollection when there are no recipes.
func (c *Catalog) HighestDuration(ctx context.Context) (recipe.Recipe, error) {
	return c.maxRecipe(ctx, "highest_duration", (*recipe.Collection).HighestDuration)
}

func (c *Catalog) maxRecipe(ctx context.Context, op string, pick func(*recipe.Collection) (recipe.Recipe, bool)) (recipe.Recipe, error) {
	start := time.Now()
	c.mu.RLock()
	r, ok := pick(c.coll)
	c.mu.RUnlock()

	var err error
	if !ok {
		err = fmt.Errorf("%s: %w", op, apperrors.ErrEmptyCollection)
	}
	ev := analytics.NewEvent(analytics.EventStatistics, op)
	ev.Recipe = r.Name
	c.observe(ctx, ev, start, err)
	return r, err
}

// IngredientStatistics uses the configured default when top <= 0.
func (c *Catalog) IngredientStatistics(ctx context.Context, top int) (recipe.IngredientStats, error) {
	if top <= 0 {
		top = c.topIngredients
	}
	start := time.Now()
	c.mu.RLock()
	stats, err := c.coll.IngredientStatistics(top)
	c.mu.RUnlock()

	c.observe(ctx, analytics.NewEvent(analytics.EventStatistics, "ingredient_statistics"), start, err)
	return stats, err
}

func (c *Catalog) DurationStatistics(ctx context.Context) (recipe.DurationStats, error) {
	start := time.Now()
	c.mu.RLock()
	stats, err := c.coll.DurationStatistics()
	c.mu.RUnlock()

	c.observe(ctx, analytics.NewEvent(analytics.EventStatistics, "duration_statistics"), start, err)
	return stats, err
}

// SearchEvent, DurationFilterEvent and TwoIngredientEvent describe a query
// with the given result count. They are shared with RecordCached so cached
// answers are reported the same way as computed ones.
func SearchEvent(q recipe.Query, results int) analytics.Event {
	ev := analytics.NewEvent(analytics.EventSearch, "search")
	ev.Terms = nonEmpty(q.Name, q.Ingredient)
	ev.Results = results
	return ev
}

func DurationFilterEvent(ingredient string, results int) analytics.Event {
	ev := analytics.NewEvent(analytics.EventFilter, "filter_duration_ingredient")
	ev.Terms = nonEmpty(ingredient)
	ev.Results = results
	return ev
}

func TwoIngredientEvent(a, b string, results int) analytics.Event {
	ev := analytics.NewEvent(analytics.EventFilter, "filter_two_ingredients")
	ev.Terms = nonEmpty(a, b)
	ev.Results = results
	return ev
}

// RecordCached reports a successful query that was answered without running
// it against the collection, e.g. from a query cache.
func (c *Catalog) RecordCached(ctx context.Context, ev analytics.Event, start time.Time) {
	ev.Cached = true
	c.observe(ctx, ev, start, nil)
}

// observe finishes ev with the outcome of an operation and publishes it to
// metrics and the tracker. Called without the lock held.
func (c *Catalog) observe(ctx context.Context, ev analytics.Event, start time.Time, err error) {
	ev.Outcome = apperrors.Code(err)
	ev.LatencyUs = time.Since(start).Microseconds()
	ev.RequestID = logger.RequestID(ctx)

	if c.metrics != nil {
		c.metrics.RecipeOperations.WithLabelValues(ev.Operation, ev.Outcome).Inc()
		if err == nil && (ev.Type == analytics.EventSearch || ev.Type == analytics.EventFilter) {
			c.metrics.QueryResultsCount.WithLabelValues(ev.Operation).Observe(float64(ev.Results))
		}
	}
	if c.tracker != nil {
		c.tracker.Track(ev)
	}
	if err != nil {
		logger.FromContext(ctx).Debug("catalog operation rejected", "operation", ev.Operation, "error", err)
	}
}

// setSize must be called with the write lock held.
func (c *Catalog) setSize() {
	if c.metrics != nil {
		c.metrics.CollectionSize.Set(float64(c.coll.Len()))
	}
}

func nonEmpty(terms ...string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
