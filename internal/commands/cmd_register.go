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

type RegisterCmd struct {
	flags *Flags

	// flags
	name     string
	email    string
	password string
}

// NewRegisterCmd creates a new register command
func NewRegisterCmd(flags *Flags) *RegisterCmd {
	return &RegisterCmd{flags: flags}
}

// Register adds the register command to the application
func (cmd *RegisterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "register",
		Usage:       "Create an account and print a session token",
		UsageText:   "thinkthread register [--name NAME] [--email EMAIL] [--password PASSWORD]",
		Description: "Creates an account, signs it in, and prints the session token to stdout.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "display name",
				Destination: &cmd.name,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "account email",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "password",
				Usage:       fmt.Sprintf("account password (at least %d characters)", validate.MinPasswordLength),
				Sources:     cli.EnvVars("THINKTHREAD_PASSWORD"),
				Destination: &cmd.password,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegisterCmd) run(ctx context.Context, c *cli.Command) error {
	if (cmd.name == "" || cmd.email == "" || cmd.password == "") && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if _, err := cmd.flags.App.Register(ctx, cmd.name, cmd.email, cmd.password); err != nil {
		return err
	}

	_, err := fmt.Fprintln(c.Root().Writer, cmd.flags.App.Session().Token())
	return err
}

func (cmd *RegisterCmd) runForm() error {
	var confirm string

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&cmd.name).
				Validate(validate.Required),
			huh.NewInput().
				Title("Email").
				Value(&cmd.email).
				Validate(validate.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&cmd.password).
				Validate(validate.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != cmd.password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	).WithTheme(styles.FormTheme()).Run()
}
