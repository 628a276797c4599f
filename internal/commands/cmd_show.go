package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
)

type ShowCmd struct {
	flags *Flags
	app   *linemark.App

	// flags
	markedOnly bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *linemark.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print a file with its marks in the gutter",
		UsageText: "linemark show [--marked] FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "marked",
				Aliases:     []string{"m"},
				Usage:       "only print marked lines",
				Destination: &cmd.markedOnly,
			},
		},
		ShellComplete: DocumentCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}

	gutter := linemark.NewLineSet()
	sess, err := cmd.app.Open(ctx, c.Args().First(), gutter, nil)
	if err != nil {
		return err
	}

	icon := "*"
	color := "#65EAB9"
	if cfg := cmd.flags.Config; cfg != nil {
		icon = cfg.Render.GutterIcon
		color = cfg.Render.LineColor
	}

	iconStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	numStyle := lipgloss.NewStyle().Faint(true)
	blank := strings.Repeat(" ", lipgloss.Width(icon))
	width := len(strconv.Itoa(sess.Doc.Len()))

	out := c.Root().Writer
	for i, text := range sess.Doc.Lines() {
		marked := gutter.Has(i)
		if cmd.markedOnly && !marked {
			continue
		}

		sign := blank
		if marked {
			sign = iconStyle.Render(icon)
		}

		num := numStyle.Render(fmt.Sprintf("%*d", width, i+1))
		if _, err := fmt.Fprintf(out, "%s %s  %s\n", sign, num, text); err != nil {
			return err
		}
	}

	return nil
}
