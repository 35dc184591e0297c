// Package recipe is the in-memory recipe store: a fixed-shape Recipe record,
// an insertion-ordered Collection that enforces case-insensitive name
// uniqueness, and the search, filter and aggregation operations over it.
//
// A Collection is owned by its caller and is not safe for concurrent use.
// Services that share one collection across goroutines serialise access
// themselves (see internal/catalog).
package recipe

import (
	"fmt"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

// Recipe is a named dish with its ingredient tokens and preparation time.
type Recipe struct {
	Name            string   `json:"name" yaml:"name"`
	Ingredients     []string `json:"ingredients" yaml:"ingredients"`
	DurationMinutes int      `json:"duration_minutes" yaml:"duration_minutes"`
}

// Collection is an ordered set of recipes. The zero value is an empty,
// ready-to-use collection.
type Collection struct {
	recipes []Recipe
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len reports the number of recipes.
func (c *Collection) Len() int {
	return len(c.recipes)
}

// All returns a copy of the recipes in insertion order.
func (c *Collection) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Get looks a recipe up by case-insensitive name.
func (c *Collection) Get(name string) (Recipe, bool) {
	if i := c.indexOf(name); i >= 0 {
		return c.recipes[i], true
	}
	return Recipe{}, false
}

// Add validates and appends a new recipe. Ingredient tokens are trimmed and
// otherwise stored as given: blank tokens and duplicates are kept. On any
// error the collection is left unchanged.
func (c *Collection) Add(name string, ingredients []string, durationMinutes int) (Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return Recipe{}, fmt.Errorf("recipe name is required: %w", apperrors.ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return Recipe{}, fmt.Errorf("recipe %q duration %d: %w", name, durationMinutes, apperrors.ErrInvalidDuration)
	}
	if c.indexOf(name) >= 0 {
		return Recipe{}, fmt.Errorf("recipe %q: %w", name, apperrors.ErrDuplicateName)
	}

	r := Recipe{
		Name:            name,
		Ingredients:     trimTokens(ingredients),
		DurationMinutes: durationMinutes,
	}
	c.recipes = append(c.recipes, r)
	return r, nil
}

// Remove deletes the first recipe whose name matches case-insensitively and
// returns it.
func (c *Collection) Remove(name string) (Recipe, error) {
	i := c.indexOf(name)
	if i < 0 {
		return Recipe{}, fmt.Errorf("recipe %q: %w", name, apperrors.ErrNotFound)
	}
	removed := c.recipes[i]
	c.recipes = append(c.recipes[:i], c.recipes[i+1:]...)
	return removed, nil
}

func (c *Collection) indexOf(name string) int {
	key := fold(name)
	for i, r := range c.recipes {
		if fold(r.Name) == key {
			return i
		}
	}
	return -1
}

func trimTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.TrimSpace(tok)
	}
	return out
}

// SplitIngredients turns comma-separated user input into trimmed ingredient
// tokens. Empty entries, as in "a,,b" or a trailing comma, are skipped.
func SplitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
