package recipe

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

// DefaultTopIngredients is the size of IngredientStats.Top when the caller
// does not ask for a specific count.
const DefaultTopIngredients = 5

// IngredientCount pairs an ingredient with its number of occurrences.
type IngredientCount struct {
	Ingredient string `json:"ingredient" yaml:"ingredient"`
	Count      int    `json:"count" yaml:"count"`
}

// IngredientStats summarises ingredient usage across a collection.
type IngredientStats struct {
	Top         []IngredientCount `json:"top" yaml:"top"`
	LeastCommon []string          `json:"least_common" yaml:"least_common"`
	LeastCount  int               `json:"least_count" yaml:"least_count"`
}

// DurationStats summarises preparation times across a collection.
type DurationStats struct {
	Min  int     `json:"min" yaml:"min"`
	Mean float64 `json:"mean" yaml:"mean"`
	Max  int     `json:"max" yaml:"max"`
}

// RoundedMean is Mean rounded to two decimals for display.
func (d DurationStats) RoundedMean() float64 {
	return math.Round(d.Mean*100) / 100
}

// IngredientFrequency counts the tokens, across all recipes, that equal
// ingredient ignoring case. It is 0 for an empty collection.
func (c *Collection) IngredientFrequency(ingredient string) int {
	want := fold(strings.TrimSpace(ingredient))
	count := 0
	for _, r := range c.recipes {
		for _, ing := range r.Ingredients {
			if fold(ing) == want {
				count++
			}
		}
	}
	return count
}

// MostIngredients returns the recipe with the most ingredient tokens. The
// scan keeps the first maximum it meets, so earlier recipes win ties.
func (c *Collection) MostIngredients() (Recipe, bool) {
	return c.maxBy(func(r Recipe) int { return len(r.Ingredients) })
}

// HighestDuration returns the recipe with the longest preparation time,
// earlier recipes winning ties.
func (c *Collection) HighestDuration() (Recipe, bool) {
	return c.maxBy(func(r Recipe) int { return r.DurationMinutes })
}

func (c *Collection) maxBy(key func(Recipe) int) (Recipe, bool) {
	if len(c.recipes) == 0 {
		return Recipe{}, false
	}
	best := c.recipes[0]
	bestKey := key(best)
	for _, r := range c.recipes[1:] {
		if k := key(r); k > bestKey {
			best, bestKey = r, k
		}
	}
	return best, true
}

// IngredientStatistics builds a case-sensitive frequency table over every
// ingredient token. Top holds the top most frequent ingredients (top <= 0
// means DefaultTopIngredients), equal counts keeping first-seen order.
// LeastCommon lists, in first-seen order, every ingredient whose count equals
// the minimum LeastCount.
//
// Unlike IngredientFrequency, "Uova" and "uova" are counted separately here.
func (c *Collection) IngredientStatistics(top int) (IngredientStats, error) {
	if len(c.recipes) == 0 {
		return IngredientStats{}, fmt.Errorf("ingredient statistics: %w", apperrors.ErrEmptyCollection)
	}
	if top <= 0 {
		top = DefaultTopIngredients
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range c.recipes {
		for _, ing := range r.Ingredients {
			if _, seen := counts[ing]; !seen {
				order = append(order, ing)
			}
			counts[ing]++
		}
	}
	if len(order) == 0 {
		return IngredientStats{}, fmt.Errorf("ingredient statistics: no ingredients recorded: %w", apperrors.ErrEmptyCollection)
	}

	ranked := make([]IngredientCount, 0, len(order))
	least := counts[order[0]]
	for _, ing := range order {
		ranked = append(ranked, IngredientCount{Ingredient: ing, Count: counts[ing]})
		if counts[ing] < least {
			least = counts[ing]
		}
	}

	leastCommon := make([]string, 0)
	for _, ing := range order {
		if counts[ing] == least {
			leastCommon = append(leastCommon, ing)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > top {
		ranked = ranked[:top]
	}

	return IngredientStats{
		Top:         ranked,
		LeastCommon: leastCommon,
		LeastCount:  least,
	}, nil
}

// DurationStatistics returns the minimum, mean and maximum preparation time.
// Mean keeps full precision; see RoundedMean for display.
func (c *Collection) DurationStatistics() (DurationStats, error) {
	if len(c.recipes) == 0 {
		return DurationStats{}, fmt.Errorf("duration statistics: %w", apperrors.ErrEmptyCollection)
	}
	stats := DurationStats{
		Min: c.recipes[0].DurationMinutes,
		Max: c.recipes[0].DurationMinutes,
	}
	var sum int
	for _, r := range c.recipes {
		if r.DurationMinutes < stats.Min {
			stats.Min = r.DurationMinutes
		}
		if r.DurationMinutes > stats.Max {
			stats.Max = r.DurationMinutes
		}
		sum += r.DurationMinutes
	}
	stats.Mean = float64(sum) / float64(len(c.recipes))
	return stats, nil
}
