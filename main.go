package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/linemark/internal/commands"
	"github.com/hay-kot/linemark/internal/core/config"
	"github.com/hay-kot/linemark/internal/core/logging"
	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/printer"
	"github.com/hay-kot/linemark/internal/store/jsonfile"
	"github.com/hay-kot/linemark/internal/store/memory"
	"github.com/hay-kot/linemark/pkg/logutils"
	"github.com/hay-kot/linemark/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &linemark.App{}
		console   = utils.NewHoldWriter(os.Stderr)
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "linemark",
		Usage:     "Mark lines in files and keep the marks in place while editing",
		UsageText: "linemark [global options] [FILE | command [command options]]",
		Description: `linemark remembers marked lines per file and moves them along with
edits to the file, so a mark stays on the same text when lines are
inserted or removed above it.

Run 'linemark FILE' to open the interactive viewer.
Run 'linemark toggle FILE LINE' to mark a line from a script.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LINEMARK_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to a JSON log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("LINEMARK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LINEMARK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("LINEMARK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep marks in memory only, nothing is read from or written to disk",
				Sources:     cli.EnvVars("LINEMARK_EPHEMERAL"),
				Destination: &flags.Ephemeral,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, console)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer
			zerolog.DefaultContextLogger = &log.Logger

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			var store linemark.Catalog
			if flags.Ephemeral {
				store = memory.New()
			} else {
				store = jsonfile.NewMarkStore(cfg.StoreFile, logging.Component("store"))
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *linemark.NewApp(cfg, store, logging.Component("marks"))

			ctx = printer.NewContext(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter))
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	viewCmd := commands.NewViewCmd(flags, app, console)

	root = commands.NewToggleCmd(flags, app).Register(root)
	root = commands.NewClearCmd(flags, app).Register(root)
	root = commands.NewNavCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewShowCmd(flags, app).Register(root)
	root = commands.NewEditCmd(flags, app).Register(root)
	root = commands.NewPruneCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)
	root = viewCmd.Register(root)

	for _, sub := range root.Commands {
		name := sub.Name
		sub.Before = func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			return logging.WithCommand(ctx, name), nil
		}
	}

	// Open the viewer when a file is given without a subcommand
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return cli.ShowAppHelp(c)
		}
		if c.Args().Len() > 1 {
			return fmt.Errorf("unknown command %q. Run 'linemark --help' for usage", c.Args().First())
		}
		return viewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
