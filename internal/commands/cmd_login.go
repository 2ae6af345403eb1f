package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/validate"
)

type LoginCmd struct {
	flags *Flags

	// flags
	email    string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags) *LoginCmd {
	return &LoginCmd{flags: flags}
}

// Register adds the login command to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "login",
		Usage:     "Sign in and print a session token",
		UsageText: "thinkthread login [--email EMAIL] [--password PASSWORD]",
		Description: `Signs in with email and password and prints the session token to stdout.

Sessions are never written to disk. Export the token to reuse it:

  export THINKTHREAD_TOKEN=$(thinkthread login)

Missing credentials are prompted for when stdin is a terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Usage:       "account email",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "password",
				Usage:       "account password",
				Sources:     cli.EnvVars("THINKTHREAD_PASSWORD"),
				Destination: &cmd.password,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LoginCmd) run(ctx context.Context, c *cli.Command) error {
	if (cmd.email == "" || cmd.password == "") && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if _, err := cmd.flags.App.Login(ctx, cmd.email, cmd.password); err != nil {
		return err
	}

	_, err := fmt.Fprintln(c.Root().Writer, cmd.flags.App.Session().Token())
	return err
}

func (cmd *LoginCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&cmd.email).
				Validate(validate.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&cmd.password).
				Validate(validate.Required),
		),
	).WithTheme(styles.FormTheme()).Run()
}
