package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/config"
	"github.com/colonyops/thinkthread/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "thinkthread config validate [options]",
				Description: "Validates the configuration file, checking URLs, durations, and the file path.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is the JSON shape of one failed field.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := buildReport(cmd.flags.Config, cmd.flags.ConfigPath)

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		writeReportText(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func buildReport(cfg *config.Config, configPath string) validationReport {
	report := validationReport{
		Valid:    true,
		Warnings: cfg.Warnings(),
	}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		return report
	}

	report.Valid = false
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return report
	}
	report.Errors = append(report.Errors, validationError{Message: err.Error()})
	return report
}

func writeReportText(out io.Writer, report validationReport) {
	ok := colored(styles.CurrentPalette.Success, styles.IconToastSuccess)
	warn := colored(styles.CurrentPalette.Warning, styles.IconToastWarning)
	bad := colored(styles.CurrentPalette.Error, styles.IconToastError)

	for _, w := range report.Warnings {
		item := ""
		if w.Item != "" {
			item = " (" + w.Item + ")"
		}
		_, _ = fmt.Fprintf(out, "%s %s%s: %s\n", warn, w.Category, item, w.Message)
	}

	for _, e := range report.Errors {
		if e.Field == "" {
			_, _ = fmt.Fprintf(out, "%s %s\n", bad, e.Message)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", bad, e.Field, e.Message)
	}

	_, _ = fmt.Fprintln(out)
	if report.Valid {
		_, _ = fmt.Fprintf(out, "%s Configuration is valid\n", ok)
		return
	}
	_, _ = fmt.Fprintf(out, "%s %d error(s) found\n", bad, len(report.Errors))
}
