package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run the interactive walkthrough of every operation",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			return e.session.RunDemo(ctx)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Show all recipes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			return e.session.ShowAll(ctx)
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search by name, ingredient and/or duration (interactive menu when no flag is given)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "case-insensitive substring of the recipe name"},
			&cli.StringFlag{Name: "ingredient", Usage: "case-insensitive substring of any ingredient"},
			&cli.IntFlag{Name: "duration", Usage: "exact duration in minutes"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			q := recipe.Query{
				Name:            cmd.String("name"),
				Ingredient:      cmd.String("ingredient"),
				DurationMinutes: int(cmd.Int("duration")),
			}
			if q.IsEmpty() {
				return e.session.Search(ctx)
			}
			res, err := e.catalog.Search(ctx, q)
			if err != nil {
				return err
			}
			return e.render.Recipes(res, "No recipe matches the criteria.")
		},
	}
}

func filterCommand() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Recipes of at most --max minutes that use --ingredient",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max", Usage: "maximum duration in minutes", Required: true},
			&cli.StringFlag{Name: "ingredient", Usage: "ingredient that must be present", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			maxDuration := int(cmd.Int("max"))
			ing := cmd.String("ingredient")
			res, err := e.catalog.FilterByDurationAndIngredient(ctx, maxDuration, ing)
			if err != nil {
				return err
			}
			return e.render.Recipes(res, fmt.Sprintf("No recipe of at most %d minutes contains '%s'.", maxDuration, strings.TrimSpace(ing)))
		},
	}
}

func pairCommand() *cli.Command {
	return &cli.Command{
		Name:      "pair",
		Usage:     "Recipes that use both ingredients",
		ArgsUsage: "<ingredient> <ingredient>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("pair takes exactly two ingredients, got %d", cmd.Args().Len())
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			a, b := cmd.Args().Get(0), cmd.Args().Get(1)
			res := e.catalog.FilterByTwoIngredients(ctx, a, b)
			return e.render.Recipes(res, fmt.Sprintf("No recipe contains both '%s' and '%s'.", a, b))
		},
	}
}

func frequencyCommand() *cli.Command {
	return &cli.Command{
		Name:      "frequency",
		Usage:     "Count how many times an ingredient is used",
		ArgsUsage: "<ingredient>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("frequency takes exactly one ingredient")
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			ing := strings.TrimSpace(cmd.Args().First())
			return e.render.Frequency(ing, e.catalog.IngredientFrequency(ctx, ing))
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Most ingredients, longest recipe, ingredient and duration statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top", Usage: "number of most common ingredients (default from catalog.topIngredients)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			steps := []func(context.Context) error{
				e.session.MostIngredients,
				e.session.Longest,
				func(ctx context.Context) error { return e.session.IngredientStats(ctx, int(cmd.Int("top"))) },
				e.session.DurationStats,
			}
			for _, step := range steps {
				if err := step(ctx); err != nil {
					return err
				}
				e.render.Separator()
			}
			return nil
		},
	}
}
