package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/console"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/logger"
)

// env is what every subcommand works with.
type env struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	render  *console.Renderer
	session *console.Session
}

// setup loads configuration, routes logs to stderr and builds a fresh
// catalog for this run.
func setup(cmd *cli.Command) (*env, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	logger.SetupWriter(os.Stderr, cfg.Logging.Level, "text")

	format, err := console.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, err
	}

	coll := recipe.NewCollection()
	if cfg.Catalog.Seed {
		if coll, err = recipe.Seed(); err != nil {
			return nil, fmt.Errorf("loading seed recipes: %w", err)
		}
	}
	cat := catalog.New(coll, catalog.WithTopIngredients(cfg.Catalog.TopIngredients))
	render := console.NewRenderer(os.Stdout, format)
	return &env{
		cfg:     cfg,
		catalog: cat,
		render:  render,
		session: console.NewSession(cat, console.NewPrompter(os.Stdin, os.Stdout), render),
	}, nil
}
