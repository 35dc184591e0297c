package catalog

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
)

// Snapshot is a point-in-time statistics summary. Pointer fields are nil
// when the collection has nothing to summarise.
type Snapshot struct {
	Version         uint64                  `json:"version" yaml:"version"`
	RecipeCount     int                     `json:"recipe_count" yaml:"recipe_count"`
	MostIngredients string                  `json:"most_ingredients,omitempty" yaml:"most_ingredients,omitempty"`
	Longest         string                  `json:"longest,omitempty" yaml:"longest,omitempty"`
	Ingredients     *recipe.IngredientStats `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Durations       *recipe.DurationStats   `json:"durations,omitempty" yaml:"durations,omitempty"`
	TakenAt         time.Time               `json:"taken_at" yaml:"taken_at"`
}

// Snapshot computes all statistics under one read lock so the fields agree
// with each other. It does not emit analytics events.
func (c *Catalog) Snapshot(ctx context.Context) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Version:     c.version,
		RecipeCount: c.coll.Len(),
		TakenAt:     time.Now().UTC(),
	}
	if r, ok := c.coll.MostIngredients(); ok {
		s.MostIngredients = r.Name
	}
	if r, ok := c.coll.HighestDuration(); ok {
		s.Longest = r.Name
	}
	if stats, err := c.coll.IngredientStatistics(c.topIngredients); err == nil {
		s.Ingredients = &stats
	}
	if stats, err := c.coll.DurationStatistics(); err == nil {
		s.Durations = &stats
	}
	return s
}
