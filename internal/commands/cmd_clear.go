package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/printer"
)

type ClearCmd struct {
	flags *Flags
	app   *linemark.App

	// flags
	yes bool

	// confirm asks the user before clearing; replaced in tests.
	confirm func(title, description string) (bool, error)
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *linemark.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app, confirm: confirmPrompt}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove every mark of a file",
		UsageText: "linemark clear [--yes] FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: DocumentCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	file := c.Args().First()

	store, err := cmd.app.OpenMarks(ctx, file, nil, nil)
	if err != nil {
		return err
	}

	count := len(store.Lines())
	if count == 0 {
		p.Infof("No marks in %s", file)
		return nil
	}

	if !cmd.yes {
		ok, err := cmd.confirm(
			"Clear all marks?",
			fmt.Sprintf("%s has %d marked line(s)", file, count),
		)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			p.Infof("Clear cancelled")
			return nil
		}
	}

	if err := store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear marks: %w", err)
	}

	p.Successf("Cleared %d mark(s) in %s", count, file)
	return nil
}

func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Run()
	return ok, err
}
