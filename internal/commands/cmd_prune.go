package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/printer"
)

type PruneCmd struct {
	flags *Flags
	app   *linemark.App
}

// NewPruneCmd creates a new prune command
func NewPruneCmd(flags *Flags, app *linemark.App) *PruneCmd {
	return &PruneCmd{flags: flags, app: app}
}

// Register adds the prune command to the application
func (cmd *PruneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prune",
		Usage:     "Forget marks of files that no longer exist",
		UsageText: "linemark prune",
		Description: `Removes stored marks for files that were deleted or moved.

Marks of existing files are not affected.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *PruneCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	removed, err := cmd.app.Store.Prune(ctx)
	if err != nil {
		return fmt.Errorf("prune marks: %w", err)
	}

	if len(removed) == 0 {
		p.Infof("No missing files to prune")
		return nil
	}

	for _, doc := range removed {
		p.Printf("  %s", doc)
	}
	p.Successf("Pruned %d file(s)", len(removed))

	return nil
}
