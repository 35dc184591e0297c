package recipe

import (
	"fmt"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

// Query holds the optional search criteria. A zero field is not applied;
// supplied fields are AND-combined.
type Query struct {
	Name            string `json:"name,omitempty"`
	Ingredient      string `json:"ingredient,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (q Query) IsEmpty() bool {
	return q.Name == "" && q.Ingredient == "" && q.DurationMinutes == 0
}

// Search returns the recipes matching q in collection order. Name and
// ingredient match case-insensitively as substrings (the ingredient against
// any single token); duration must match exactly. An empty result is not an
// error.
func (c *Collection) Search(q Query) ([]Recipe, error) {
	if q.DurationMinutes < 0 {
		return nil, fmt.Errorf("search duration %d: %w", q.DurationMinutes, apperrors.ErrInvalidDuration)
	}
	name := fold(q.Name)
	ingredient := fold(q.Ingredient)

	results := make([]Recipe, 0)
	for _, r := range c.recipes {
		if name != "" && !strings.Contains(fold(r.Name), name) {
			continue
		}
		if ingredient != "" && !anyIngredientContains(r, ingredient) {
			continue
		}
		if q.DurationMinutes != 0 && r.DurationMinutes != q.DurationMinutes {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// FilterByDurationAndIngredient keeps recipes that take at most maxDuration
// minutes and list ingredient as one of their tokens (exact, caseless).
func (c *Collection) FilterByDurationAndIngredient(maxDuration int, ingredient string) ([]Recipe, error) {
	if maxDuration <= 0 {
		return nil, fmt.Errorf("max duration %d: %w", maxDuration, apperrors.ErrInvalidDuration)
	}
	want := fold(strings.TrimSpace(ingredient))

	results := make([]Recipe, 0)
	for _, r := range c.recipes {
		if r.DurationMinutes <= maxDuration && hasIngredient(r, want) {
			results = append(results, r)
		}
	}
	return results, nil
}

// FilterByTwoIngredients keeps recipes that list both a and b as tokens
// (exact, caseless). The argument order does not matter.
func (c *Collection) FilterByTwoIngredients(a, b string) []Recipe {
	wantA := fold(strings.TrimSpace(a))
	wantB := fold(strings.TrimSpace(b))

	results := make([]Recipe, 0)
	for _, r := range c.recipes {
		if hasIngredient(r, wantA) && hasIngredient(r, wantB) {
			results = append(results, r)
		}
	}
	return results
}

func anyIngredientContains(r Recipe, substr string) bool {
	for _, ing := range r.Ingredients {
		if strings.Contains(fold(ing), substr) {
			return true
		}
	}
	return false
}
