package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func streakAction(c *cli.Context) error {
	app, err := newApplication(c)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.moods.Summary()
	if err != nil {
		return err
	}

	out := c.App.Writer
	if summary.Today != nil {
		fmt.Fprintf(out, "today:          %s\n", summary.Today.Mood)
	} else {
		fmt.Fprintln(out, "today:          not logged yet")
	}
	fmt.Fprintf(out, "current streak: %d\n", summary.CurrentStreak)
	fmt.Fprintf(out, "longest streak: %d\n", summary.LongestStreak)
	fmt.Fprintf(out, "logged days:    %d\n", summary.LoggedDays)
	for _, a := range summary.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %s\n", mark, a.Name)
	}
	return nil
}

func exportAction(c *cli.Context) error {
	app, err := newApplication(c)
	if err != nil {
		return err
	}
	defer app.Close()

	data, _, err := app.moods.Export(c.String("format"))
	if err != nil {
		return err
	}

	var out io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	_, err = out.Write(data)
	return err
}
