// Command remapcheck runs mark remap scenario files and reports the cases
// whose marks or text do not come out as expected. It is used while adding
// scenarios to internal/core/marks/testdata.
package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/core/document"
	"github.com/hay-kot/linemark/internal/core/marks"
	"github.com/hay-kot/linemark/internal/core/marks/fixture"
	"github.com/hay-kot/linemark/internal/printer"
)

func main() {
	var verbose bool

	app := &cli.Command{
		Name:      "remapcheck",
		Usage:     "Check mark remap scenario files",
		UsageText: "remapcheck [--verbose] FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "print passing cases too",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				files = []string{"internal/core/marks/testdata/edits.txt"}
			}

			failed := 0
			for _, file := range files {
				n, err := check(printer.Ctx(ctx), file, verbose)
				if err != nil {
					return err
				}
				failed += n
			}

			if failed > 0 {
				return fmt.Errorf("%d case(s) failed", failed)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func check(p *printer.Printer, file string, verbose bool) (int, error) {
	cases, err := fixture.ParseFile(file)
	if err != nil {
		return 0, err
	}

	failed := 0
	for i, tc := range cases {
		got := marks.Remap(tc.Before.Marks, tc.Edit)

		doc := document.New("", strings.Join(tc.Before.Lines, "\n"))
		if err := doc.Apply(marks.Batch{tc.Edit}); err != nil {
			return failed, fmt.Errorf("%s case %d: %w", file, i+1, err)
		}

		marksOK := slices.Equal(got, tc.After.Marks)
		textOK := slices.Equal(doc.Lines(), tc.After.Lines)

		switch {
		case marksOK && textOK:
			if verbose {
				p.Successf("%s case %d: %s %v -> %v", file, i+1, tc.Edit, tc.Before.Marks, got)
			}
		case !marksOK:
			failed++
			p.Errorf("%s case %d: %s marks %v, want %v", file, i+1, tc.Edit, got, tc.After.Marks)
		default:
			failed++
			p.Errorf("%s case %d: %s text %q, want %q", file, i+1, tc.Edit, doc.Lines(), tc.After.Lines)
		}
	}

	if failed == 0 {
		p.Successf("%s: %d case(s) passed", file, len(cases))
	}
	return failed, nil
}
