// Command recipes works with the recipe catalog from the terminal.
//
// Every run starts from the built-in seed recipes (unless catalog.seed is
// false) and nothing is written back. "recipes demo" walks through every
// operation interactively; the other subcommands answer a single query.
//
// Usage:
//
//	go run ./cmd/recipes demo
//	go run ./cmd/recipes --format json search --ingredient aglio
//	go run ./cmd/recipes stats --top 10
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "Query the recipe catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file (defaults apply when empty)",
				Sources: cli.EnvVars("RCP_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override logging.level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "output format: text, json or yaml",
			},
		},
		Commands: []*cli.Command{
			demoCommand(),
			listCommand(),
			searchCommand(),
			filterCommand(),
			pairCommand(),
			frequencyCommand(),
			statsCommand(),
		},
	}
}
