package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

var separator = strings.Repeat("-", 40)

// Renderer writes results either as human-readable blocks or as one
// structured document per call.
type Renderer struct {
	out    io.Writer
	format Format
}

func NewRenderer(out io.Writer, format Format) *Renderer {
	return &Renderer{out: out, format: format}
}

func (r *Renderer) Separator() {
	if r.format == FormatText {
		fmt.Fprintln(r.out, separator)
	}
}

// Message prints free text in text mode and is silent otherwise.
func (r *Renderer) Message(format string, args ...any) {
	if r.format == FormatText {
		fmt.Fprintf(r.out, format+"\n", args...)
	}
}

// Recipes prints each recipe as a block. emptyMsg is shown in text mode
// when rs is empty.
func (r *Renderer) Recipes(rs []recipe.Recipe, emptyMsg string) error {
	if r.format != FormatText {
		if rs == nil {
			rs = []recipe.Recipe{}
		}
		return r.encode(map[string]any{"recipes": rs, "count": len(rs)})
	}
	if len(rs) == 0 {
		fmt.Fprintln(r.out, emptyMsg)
		return nil
	}
	for _, rec := range rs {
		r.recipeBlock(rec)
	}
	return nil
}

func (r *Renderer) recipeBlock(rec recipe.Recipe) {
	fmt.Fprintf(r.out, "Name: %s\n", rec.Name)
	fmt.Fprintf(r.out, "Ingredients: %s\n", strings.Join(rec.Ingredients, ", "))
	fmt.Fprintf(r.out, "Duration: %d minutes\n", rec.DurationMinutes)
	fmt.Fprintln(r.out, separator)
}

func (r *Renderer) Frequency(ingredient string, n int) error {
	if r.format != FormatText {
		return r.encode(map[string]any{"ingredient": ingredient, "count": n})
	}
	if n == 0 {
		fmt.Fprintf(r.out, "Ingredient '%s' does not appear in any recipe.\n", ingredient)
		return nil
	}
	fmt.Fprintf(r.out, "Ingredient '%s' appears %d times across the recipes.\n", ingredient, n)
	return nil
}

func (r *Renderer) MostIngredients(rec recipe.Recipe) error {
	if r.format != FormatText {
		return r.encode(map[string]any{"most_ingredients": rec})
	}
	fmt.Fprintf(r.out, "The recipe with the most ingredients is '%s' with %d ingredients.\n", rec.Name, len(rec.Ingredients))
	return nil
}

func (r *Renderer) Longest(rec recipe.Recipe) error {
	if r.format != FormatText {
		return r.encode(map[string]any{"longest": rec})
	}
	fmt.Fprintf(r.out, "The longest recipe is '%s' at %d minutes.\n", rec.Name, rec.DurationMinutes)
	return nil
}

func (r *Renderer) IngredientStats(s recipe.IngredientStats) error {
	if r.format != FormatText {
		return r.encode(s)
	}
	fmt.Fprintln(r.out, "Most common ingredients:")
	for _, ic := range s.Top {
		fmt.Fprintf(r.out, "%s: %d occurrences\n", ic.Ingredient, ic.Count)
	}
	fmt.Fprintln(r.out, separator)
	fmt.Fprintf(r.out, "Least common ingredients: %s (frequency: %d)\n", strings.Join(s.LeastCommon, ", "), s.LeastCount)
	return nil
}

func (r *Renderer) DurationStats(s recipe.DurationStats) error {
	if r.format != FormatText {
		return r.encode(map[string]any{"min": s.Min, "mean": s.RoundedMean(), "max": s.Max})
	}
	fmt.Fprintf(r.out, "Minimum duration: %d minutes\n", s.Min)
	fmt.Fprintf(r.out, "Mean duration: %.2f minutes\n", s.Mean)
	fmt.Fprintf(r.out, "Maximum duration: %d minutes\n", s.Max)
	return nil
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// Problem reports a rejected operation. Structured formats get an object
// with the error code.
func (r *Renderer) Problem(code, message string) error {
	if r.format != FormatText {
		return r.encode(map[string]string{"error": message, "code": code})
	}
	fmt.Fprintln(r.out, message)
	return nil
}
