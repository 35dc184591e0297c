package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

const (
	maxNameLength       = 200
	maxIngredients      = 100
	maxIngredientLength = 100
	maxTopIngredients   = 100
	maxDurationMinutes  = 7 * 24 * 60
	maxReportListLimit  = 100
)

// ValidationError holds per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// AddRecipeRequest is the body of POST /api/v1/recipes. Ingredients may be
// a JSON array or, for form-style clients, a comma-separated string in
// IngredientsCSV.
type AddRecipeRequest struct {
	Name            string   `json:"name"`
	Ingredients     []string `json:"ingredients"`
	IngredientsCSV  string   `json:"ingredients_csv,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
}

func (req *AddRecipeRequest) validate() error {
	errs := fieldErrors{}
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		errs["name"] = "name is required"
	case len(name) > maxNameLength:
		errs["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLength)
	}
	if req.IngredientsCSV != "" {
		req.Ingredients = append(req.Ingredients, recipe.SplitIngredients(req.IngredientsCSV)...)
	}
	if len(req.Ingredients) > maxIngredients {
		errs["ingredients"] = fmt.Sprintf("at most %d ingredients", maxIngredients)
	}
	for _, ing := range req.Ingredients {
		if len(ing) > maxIngredientLength {
			errs["ingredients"] = fmt.Sprintf("each ingredient must be at most %d characters", maxIngredientLength)
			break
		}
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > maxDurationMinutes {
		errs["duration_minutes"] = fmt.Sprintf("must be between 1 and %d", maxDurationMinutes)
	}
	return errs.err()
}

// parseSearchQuery reads name, ingredient and duration. A missing or zero
// duration leaves the criterion unset.
func parseSearchQuery(v url.Values) (recipe.Query, error) {
	errs := fieldErrors{}
	q := recipe.Query{
		Name:       v.Get("name"),
		Ingredient: v.Get("ingredient"),
	}
	if raw := v.Get("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			errs["duration"] = "duration must be a non-negative integer"
		}
		q.DurationMinutes = d
	}
	return q, errs.err()
}

func requiredPositiveInt(v url.Values, key string, errs fieldErrors) int {
	raw := v.Get(key)
	if raw == "" {
		errs[key] = key + " is required"
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		errs[key] = key + " must be a positive integer"
		return 0
	}
	return n
}

func optionalPositiveInt(v url.Values, key string, max int, errs fieldErrors) int {
	raw := v.Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > max {
		errs[key] = fmt.Sprintf("%s must be between 1 and %d", key, max)
		return 0
	}
	return n
}

func requiredString(v url.Values, key string, errs fieldErrors) string {
	s := v.Get(key)
	if strings.TrimSpace(s) == "" {
		errs[key] = key + " is required"
	}
	return s
}
