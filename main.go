package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/commands"
	"github.com/colonyops/thinkthread/internal/core/config"
	"github.com/colonyops/thinkthread/internal/core/logging"
	"github.com/colonyops/thinkthread/internal/core/notify"
	"github.com/colonyops/thinkthread/internal/core/session"
	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/toast"
	"github.com/colonyops/thinkthread/internal/social"
	"github.com/colonyops/thinkthread/pkg/logutils"
	"github.com/colonyops/thinkthread/pkg/randid"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, these are read from
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

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
		toasts    *toast.Manager
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "thinkthread",
		Usage:     "A terminal client for the ThinkThread social network",
		UsageText: "thinkthread [global options] command [command options]",
		Description: `thinkthread browses and posts to a ThinkThread server from the terminal.

Run 'thinkthread' with no arguments to open the interactive feed.
Run 'thinkthread login' to get a session token for one-shot commands.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags:                 commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			ctx = logging.WithRequestID(ctx, randid.Generate(8))

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.APIURL != "" {
				cfg.API.BaseURL = flags.APIURL
				cfg.API.ImageBaseURL = flags.APIURL
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("--api-url: %w", err)
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			toasts = toast.NewManager(toast.Config{
				DefaultDuration: cfg.Toast.DefaultDuration,
				MaxActive:       cfg.Toast.MaxActive,
			}, nil)

			flags.History = notify.NewHistory(notify.DefaultCapacity)
			flags.History.Attach(toasts)
			flags.StopPresenter = commands.NewStderrPresenter().Attach(toasts)

			sess := session.New()
			if flags.Token != "" {
				sess.SetToken(flags.Token)
			}
			flags.App = social.New(cfg, sess, toasts)

			log.Debug().Ctx(ctx).
				Str("config", flags.ConfigPath).
				Str("api", cfg.API.BaseURL).
				Bool("token", flags.Token != "").
				Msg("starting")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if toasts != nil {
				toasts.Close()
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.RegisterAll(app, flags)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'thinkthread --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		exitCode = 1
		// Failures already shown as toasts are not printed twice.
		if !social.IsReported(runErr) && runErr.Error() != "" {
			fmt.Fprintln(os.Stderr, runErr.Error())
		}
	}

	os.Exit(exitCode)
}
