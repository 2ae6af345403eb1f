package commands

import (
	"github.com/urfave/cli/v3"
)

// GlobalFlags are the root flags shared by every subcommand.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("THINKTHREAD_LOG_LEVEL"),
			Value:       "info",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file",
			Sources:     cli.EnvVars("THINKTHREAD_LOG_FILE"),
			Value:       DefaultLogFile(),
			Destination: &flags.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("THINKTHREAD_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "API base URL (overrides api.base_url)",
			Sources:     cli.EnvVars("THINKTHREAD_API_URL"),
			Destination: &flags.APIURL,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "session token from 'thinkthread login'",
			Sources:     cli.EnvVars("THINKTHREAD_TOKEN"),
			Destination: &flags.Token,
		},
	}
}

// RegisterAll adds every subcommand to app.
func RegisterAll(app *cli.Command, flags *Flags) *cli.Command {
	app = NewLoginCmd(flags).Register(app)
	app = NewRegisterCmd(flags).Register(app)
	app = NewFeedCmd(flags).Register(app)
	app = NewPostCmd(flags).Register(app)
	app = NewLikeCmd(flags).Register(app)
	app = NewProfileCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)
	app = NewToastCmd(flags).Register(app)
	return app
}
