package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/printer"
)

type ToggleCmd struct {
	flags *Flags
	app   *linemark.App

	// flags
	lineRange string
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *linemark.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"t"},
		Usage:     "Mark or unmark lines of a file",
		UsageText: "linemark toggle [--range START:END] FILE [LINE...]",
		Description: `Toggles marks on the given 1-based lines.

Lines that are not marked yet are marked. Only when every given line is
already marked are they unmarked, so a mixed selection never flips
individual lines.

With --range, a range whose every line is marked is unmarked as a whole.
Otherwise the END line of the range is toggled.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "range",
				Aliases:     []string{"r"},
				Usage:       "line range START:END selected as a block",
				Destination: &cmd.lineRange,
			},
		},
		ShellComplete: DocumentCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() < 1 {
		return fmt.Errorf("missing FILE argument")
	}
	file := c.Args().First()

	lines, err := parseLines(c.Args().Tail())
	if err != nil {
		return err
	}

	sel := linemark.Selection{Lines: lines}
	if cmd.lineRange != "" {
		r, err := parseRange(cmd.lineRange)
		if err != nil {
			return err
		}
		sel.Range = &r
		if len(sel.Lines) == 0 {
			sel.Lines = []int{r.End}
		}
	}

	if len(sel.Lines) == 0 {
		return fmt.Errorf("no lines given; pass LINE arguments or --range")
	}

	sess, err := cmd.app.Open(ctx, file, nil, nil)
	if err != nil {
		return err
	}

	last := sel.Lines
	if sel.Range != nil {
		last = append(slices.Clone(last), sel.Range.End)
	}
	if n := slices.Max(last); n >= sess.Doc.Len() {
		return fmt.Errorf("line %d is past the end of %s (%d lines)", n+1, file, sess.Doc.Len())
	}

	change := sess.Marks.Toggle(ctx, sel)
	if err := sess.Close(ctx); err != nil {
		return err
	}

	if len(change.Added) > 0 {
		p.Successf("Marked %s in %s", joinLines(change.Added), file)
	}
	if len(change.Removed) > 0 {
		p.Successf("Unmarked %s in %s", joinLines(change.Removed), file)
	}

	return nil
}
