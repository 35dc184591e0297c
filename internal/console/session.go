package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

const emptyListMsg = "The recipe list is empty."

// Session runs prompt-driven operations against a catalog. Domain errors
// are rendered and swallowed; only I/O errors are returned.
type Session struct {
	cat    *catalog.Catalog
	prompt *Prompter
	render *Renderer
}

func NewSession(cat *catalog.Catalog, p *Prompter, r *Renderer) *Session {
	return &Session{cat: cat, prompt: p, render: r}
}

func (s *Session) AddRecipe(ctx context.Context) error {
	name, err := s.prompt.NonEmpty("Recipe name: ")
	if err != nil {
		return err
	}
	if _, err := s.cat.Get(ctx, name); err == nil {
		return s.render.Problem(apperrors.Code(apperrors.ErrDuplicateName), fmt.Sprintf("Recipe '%s' is already in the list.", name))
	}
	ingredients, err := s.prompt.Ingredients("Ingredients, comma separated: ")
	if err != nil {
		return err
	}
	duration, err := s.prompt.PositiveInt("Duration in minutes: ")
	if err != nil {
		return err
	}
	if _, err := s.cat.Add(ctx, name, ingredients, duration); err != nil {
		return s.problem(err)
	}
	s.render.Message("Recipe '%s' added.", name)
	return nil
}

func (s *Session) RemoveRecipe(ctx context.Context) error {
	name, err := s.prompt.String("Recipe name to remove: ")
	if err != nil {
		return err
	}
	removed, err := s.cat.Remove(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.render.Problem(apperrors.Code(err), fmt.Sprintf("Recipe '%s' not found.", name))
	}
	if err != nil {
		return s.problem(err)
	}
	s.render.Message("Recipe '%s' removed.", removed.Name)
	return nil
}

func (s *Session) ShowAll(ctx context.Context) error {
	return s.render.Recipes(s.cat.List(ctx), emptyListMsg)
}

func (s *Session) Search(ctx context.Context) error {
	q, err := s.prompt.SearchQuery()
	if errors.Is(err, ErrInvalidChoice) {
		return s.render.Problem(apperrors.Code(apperrors.ErrInvalidInput), err.Error())
	}
	if err != nil {
		return err
	}
	res, err := s.cat.Search(ctx, q)
	if err != nil {
		return s.problem(err)
	}
	return s.render.Recipes(res, "No recipe matches the criteria.")
}

func (s *Session) Frequency(ctx context.Context) error {
	if s.cat.Len() == 0 {
		return s.render.Problem(apperrors.Code(apperrors.ErrEmptyCollection), emptyListMsg)
	}
	ing, err := s.prompt.String("Ingredient to count: ")
	if err != nil {
		return err
	}
	ing = strings.TrimSpace(ing)
	return s.render.Frequency(ing, s.cat.IngredientFrequency(ctx, ing))
}

func (s *Session) MostIngredients(ctx context.Context) error {
	rec, err := s.cat.MostIngredients(ctx)
	if err != nil {
		return s.problem(err)
	}
	return s.render.MostIngredients(rec)
}

func (s *Session) Longest(ctx context.Context) error {
	rec, err := s.cat.HighestDuration(ctx)
	if err != nil {
		return s.problem(err)
	}
	return s.render.Longest(rec)
}

// IngredientStats uses the catalog's configured top size when top <= 0.
func (s *Session) IngredientStats(ctx context.Context, top int) error {
	stats, err := s.cat.IngredientStatistics(ctx, top)
	if err != nil {
		return s.problem(err)
	}
	return s.render.IngredientStats(stats)
}

func (s *Session) DurationStats(ctx context.Context) error {
	stats, err := s.cat.DurationStatistics(ctx)
	if err != nil {
		return s.problem(err)
	}
	return s.render.DurationStats(stats)
}

func (s *Session) FilterByDurationAndIngredient(ctx context.Context) error {
	maxDuration, err := s.prompt.PositiveInt("Maximum duration in minutes: ")
	if err != nil {
		return err
	}
	ing, err := s.prompt.String("Ingredient to look for: ")
	if err != nil {
		return err
	}
	res, err := s.cat.FilterByDurationAndIngredient(ctx, maxDuration, ing)
	if err != nil {
		return s.problem(err)
	}
	return s.render.Recipes(res, fmt.Sprintf("No recipe of at most %d minutes contains '%s'.", maxDuration, strings.TrimSpace(ing)))
}

func (s *Session) FilterByTwoIngredients(ctx context.Context) error {
	a, err := s.prompt.String("First ingredient: ")
	if err != nil {
		return err
	}
	b, err := s.prompt.String("Second ingredient: ")
	if err != nil {
		return err
	}
	res := s.cat.FilterByTwoIngredients(ctx, a, b)
	return s.render.Recipes(res, fmt.Sprintf("No recipe contains both '%s' and '%s'.", strings.TrimSpace(a), strings.TrimSpace(b)))
}

// RunDemo walks through every operation in a fixed order: add, remove, list,
// search, frequency, most ingredients, longest, ingredient statistics,
// duration statistics and the two filters.
func (s *Session) RunDemo(ctx context.Context) error {
	steps := []func(context.Context) error{
		s.AddRecipe,
		s.RemoveRecipe,
		s.ShowAll,
		s.Search,
		s.Frequency,
		s.MostIngredients,
		s.Longest,
		func(ctx context.Context) error { return s.IngredientStats(ctx, 0) },
		s.DurationStats,
		s.FilterByDurationAndIngredient,
		s.FilterByTwoIngredients,
	}
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
		// The listing already ends each block with a separator.
		if i != 2 {
			s.render.Separator()
		}
	}
	return nil
}

func (s *Session) problem(err error) error {
	msg := err.Error()
	if errors.Is(err, apperrors.ErrEmptyCollection) {
		msg = emptyListMsg
	}
	return s.render.Problem(apperrors.Code(err), msg)
}
