package commands

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/core/config"
	"github.com/hay-kot/linemark/internal/linemark"
)

type NavCmd struct {
	flags *Flags
	app   *linemark.App

	// flags
	line int
}

// NewNavCmd creates the next and prev commands
func NewNavCmd(flags *Flags, app *linemark.App) *NavCmd {
	return &NavCmd{flags: flags, app: app}
}

// Register adds the next and prev commands to the application
func (cmd *NavCmd) Register(app *cli.Command) *cli.Command {
	lineFlag := func() cli.Flag {
		return &cli.IntFlag{
			Name:        "line",
			Aliases:     []string{"l"},
			Usage:       "1-based line the cursor is on",
			Value:       1,
			Destination: &cmd.line,
		}
	}

	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "next",
			Usage:     "Print the next marked line after --line",
			UsageText: "linemark next [--line N] FILE",
			Description: `Prints FILE:LINE:COL of the first mark after --line, wrapping around
to the first mark. Prints nothing when the file has no marks.`,
			Flags:         []cli.Flag{lineFlag()},
			ShellComplete: DocumentCompleter(cmd.app),
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, (*linemark.MarkStore).NavigateNext)
			},
		},
		&cli.Command{
			Name:      "prev",
			Usage:     "Print the previous marked line before --line",
			UsageText: "linemark prev [--line N] FILE",
			Description: `Prints FILE:LINE:COL of the last mark before --line, wrapping around
to the last mark. Prints nothing when the file has no marks.`,
			Flags:         []cli.Flag{lineFlag()},
			ShellComplete: DocumentCompleter(cmd.app),
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, (*linemark.MarkStore).NavigatePrev)
			},
		},
	)

	return app
}

func (cmd *NavCmd) run(ctx context.Context, c *cli.Command, navigate func(*linemark.MarkStore) (int, bool)) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	file := c.Args().First()

	if cmd.line < 1 {
		return fmt.Errorf("invalid line %d: lines start at 1", cmd.line)
	}

	cursor := linemark.NewStaticCursor(cmd.line - 1)
	sess, err := cmd.app.Open(ctx, file, nil, cursor)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	target, ok := navigate(sess.Marks)
	if !ok {
		return nil
	}

	col := 1
	if cmd.flags.Config != nil && cmd.flags.Config.Navigation.CursorPosition == config.CursorLineEnd {
		col = utf8.RuneCountInString(sess.Doc.Line(target)) + 1
	}

	_, err = fmt.Fprintf(c.Root().Writer, "%s:%d:%d\n", file, target+1, col)
	return err
}
