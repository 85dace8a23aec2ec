package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// @title Mindful Journey API
// @version 1.0
// @description Daily mood check-ins, streaks, history and an empathetic journaling assistant.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "mindful-journey",
		Usage: "mood journal with streaks and an empathetic assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "env file to load before reading the environment",
				Value:   "config.env",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serveAction,
			},
			{
				Name:   "streak",
				Usage:  "print today's entry and the current and longest streak",
				Action: streakAction,
			},
			{
				Name:  "export",
				Usage: "write every log entry as csv or json",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "csv or json"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "file to write instead of stdout"},
				},
				Action: exportAction,
			},
		},
	}
}
