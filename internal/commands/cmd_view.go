package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/core/document"
	"github.com/hay-kot/linemark/internal/core/logging"
	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/store/jsonfile"
	"github.com/hay-kot/linemark/internal/tui/viewer"
	"github.com/hay-kot/linemark/pkg/utils"
)

type ViewCmd struct {
	flags *Flags
	app   *linemark.App

	// console holds console log output while the viewer owns the terminal.
	console *utils.HoldWriter
}

// NewViewCmd creates a new view command. console may be nil.
func NewViewCmd(flags *Flags, app *linemark.App, console *utils.HoldWriter) *ViewCmd {
	return &ViewCmd{flags: flags, app: app, console: console}
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Aliases:   []string{"v"},
		Usage:     "Open a file in the interactive viewer",
		UsageText: "linemark view FILE",
		Description: `Opens FILE with its marks drawn in the gutter.

Marks can be toggled, navigated and cleared. Lines can be opened, deleted
and joined; marks follow those edits. Press ? for all keys.`,
		ShellComplete: DocumentCompleter(cmd.app),
		Action:        cmd.Run,
	})

	return app
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}

	id, err := linemark.DocumentID(c.Args().First())
	if err != nil {
		return err
	}

	doc, err := document.Open(id)
	if err != nil {
		return err
	}

	cfg := cmd.app.Config
	gutter := viewer.NewGutter(cfg.Render)
	cursor := viewer.NewCursorFor(doc)

	store := linemark.NewMarkStore(cmd.app.Store, gutter, cursor, cmd.app.Log)
	store.Activate(ctx, id)

	deps := viewer.Deps{
		Doc:    doc,
		Marks:  store,
		Gutter: gutter,
		Cursor: cursor,
		Config: cfg,
		Log:    logging.Component("viewer"),
	}

	if cfg.Watch && !cmd.flags.Ephemeral {
		w, err := jsonfile.NewWatcher(cfg.StoreFile, logging.Component("watcher"))
		if err != nil {
			log.Warn().Err(err).Msg("failed to watch marks file, external changes will not be picked up")
		} else {
			defer func() { _ = w.Close() }()
			deps.Changes = w.Watch(ctx)
		}
	}

	if cmd.console != nil {
		cmd.console.Hold()
		defer func() { _ = cmd.console.Release() }()
	}

	m := viewer.New(ctx, deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	if final, ok := finalModel.(*viewer.Model); ok && final.Discarded() {
		log.Info().Str("document", id).Msg("quit without writing, marks not saved")
		return nil
	}

	return store.Close(ctx)
}
