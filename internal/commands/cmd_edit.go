package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/core/marks"
	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/pkg/iojson"
)

type EditCmd struct {
	flags *Flags
	app   *linemark.App

	input iojson.FileReader[marks.Batch]
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *linemark.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Apply a batch of edits to a file and remap its marks",
		UsageText: "linemark edit [-f batch.json] FILE",
		Description: `Reads a JSON array of edits from --file or stdin, applies them to FILE in
order and moves the marks of FILE the same way an editor would.

Each edit replaces the zero-based range (start_line, start_col) to
(end_line, end_col) with text:

  [{"start_line": 3, "start_col": 0, "end_line": 5, "end_col": 0, "text": ""}]

The batch is rejected as a whole when any edit is malformed; the first
malformed edit is reported on stderr as a JSON error with its index. Prints
the resulting marked lines as JSON.`,
		Flags:         []cli.Flag{cmd.input.Flag()},
		ShellComplete: DocumentCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

// editResult is the JSON output of linemark edit.
type editResult struct {
	Document string `json:"document"`
	Edits    int    `json:"edits"`
	Lines    []int  `json:"lines"`
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	file := c.Args().First()

	batch, err := cmd.input.Read()
	if err != nil {
		return err
	}

	if err := batch.Validate(); err != nil {
		var batchErr *marks.BatchError
		if errors.As(err, &batchErr) {
			_ = iojson.WriteError(c.Root().ErrWriter, batchErr.Err.Error(), map[string]any{
				"index": batchErr.Index,
				"edit":  batchErr.Edit,
			})
		}
		return err
	}

	lines, err := cmd.app.ApplyEdits(ctx, file, batch)
	if err != nil {
		return err
	}

	id, err := linemark.DocumentID(file)
	if err != nil {
		return err
	}

	if lines == nil {
		lines = []int{}
	}

	return iojson.WriteLine(c.Root().Writer, editResult{
		Document: id,
		Edits:    len(batch),
		Lines:    lines,
	})
}
