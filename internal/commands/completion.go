package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
)

// DocumentCompleter returns a ShellCompleteFunc that suggests documents with
// stored marks as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func DocumentCompleter(app *linemark.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		docs, err := app.Store.Documents(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, doc := range docs {
			_, _ = fmt.Fprintln(w, doc)
		}
	}
}
