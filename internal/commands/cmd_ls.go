package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *linemark.App

	// flags
	jsonOutput bool
	glob       string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *linemark.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List files with marks",
		UsageText: "linemark ls [--json] [--glob PATTERN]",
		Description: `Displays a table of every file with stored marks and its marked lines.

--glob filters files with a doublestar pattern matched against the absolute
path, e.g. '**/*.go'. Use --json for JSON lines output with zero-based lines.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "glob",
				Aliases:     []string{"g"},
				Usage:       "only list files matching a doublestar pattern",
				Destination: &cmd.glob,
			},
		},
		Action: cmd.run,
	})

	return app
}

// documentInfo is the JSON output format for linemark ls --json.
type documentInfo struct {
	Document string `json:"document"`
	Lines    []int  `json:"lines"`
	Exists   bool   `json:"exists"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.glob != "" && !doublestar.ValidatePattern(cmd.glob) {
		return fmt.Errorf("invalid glob pattern %q", cmd.glob)
	}

	docs, err := cmd.app.Store.Documents(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	infos := make([]documentInfo, 0, len(docs))
	for _, doc := range docs {
		if cmd.glob != "" && !matchGlob(cmd.glob, doc) {
			continue
		}

		lines, err := cmd.app.Store.Load(ctx, doc)
		if err != nil {
			return fmt.Errorf("load marks for %s: %w", doc, err)
		}

		infos = append(infos, documentInfo{
			Document: doc,
			Lines:    lines,
			Exists:   cmd.app.Store.Exists(doc),
		})
	}

	out := c.Root().Writer

	// JSON output mode
	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
		}
		return nil
	}

	if len(infos) == 0 {
		fmt.Fprintf(os.Stderr, "No marked files found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tMARKS\tLINES")

	missing := 0
	for _, info := range infos {
		name := info.Document
		if !info.Exists {
			name += " (missing)"
			missing++
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(info.Lines), joinLines(info.Lines))
	}

	_ = w.Flush()

	if missing > 0 {
		fmt.Fprintf(os.Stderr, "\n%d file(s) no longer exist. Run 'linemark prune' to clean up\n", missing)
	}

	return nil
}

// matchGlob matches pattern against the absolute document path. Relative
// patterns such as '**/*.go' also match without the leading separator.
func matchGlob(pattern, doc string) bool {
	doc = filepath.ToSlash(doc)
	if ok, _ := doublestar.Match(pattern, doc); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern, strings.TrimPrefix(doc, "/"))
	return ok
}
