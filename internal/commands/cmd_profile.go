package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/core/validate"
	"github.com/colonyops/thinkthread/internal/social"
)

type ProfileCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	edit       social.ProfileEdit
}

// NewProfileCmd creates a new profile command
func NewProfileCmd(flags *Flags) *ProfileCmd {
	return &ProfileCmd{flags: flags}
}

// Register adds the profile command and its subcommands to the application
func (cmd *ProfileCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "profile",
		Usage:     "Show or edit your profile",
		UsageText: "thinkthread profile [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runShow,
		Commands: []*cli.Command{
			{
				Name:      "edit",
				Usage:     "Update your profile",
				UsageText: "thinkthread profile edit [--name NAME] [--title TITLE] [--location LOC] [--bio BIO] [--profile-img PATH] [--cover-img PATH]",
				Description: `Updates your profile. Unset flags keep their current values.

With no flags and a terminal on stdin, a form pre-filled with your current
profile is shown. Image flags accept a path or a glob matching one image.`,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "display name", Destination: &cmd.edit.Name},
					&cli.StringFlag{Name: "title", Usage: "headline shown under your name", Destination: &cmd.edit.Title},
					&cli.StringFlag{Name: "location", Usage: "location", Destination: &cmd.edit.Location},
					&cli.StringFlag{Name: "bio", Usage: "about you", Destination: &cmd.edit.Bio},
					&cli.StringFlag{Name: "profile-img", Usage: "profile image path or glob", Destination: &cmd.edit.ProfileImg},
					&cli.StringFlag{Name: "cover-img", Usage: "cover image path or glob", Destination: &cmd.edit.CoverImg},
				},
				Action: cmd.runEdit,
			},
		},
	})

	return app
}

func (cmd *ProfileCmd) runShow(ctx context.Context, c *cli.Command) error {
	u, err := cmd.flags.App.LoadProfile(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(out, u)
	}
	return writeProfile(out, u, cmd.flags.Config.API.ImageBaseURL)
}

func writeProfile(out io.Writer, u feed.User, imageBaseURL string) error {
	lines := []string{styles.ProfileNameStyle.Render(u.DisplayName())}
	if u.Title != "" {
		lines = append(lines, styles.ProfileHeadlineStyle.Render(u.Title))
	}

	field := func(label, value string) {
		if value != "" {
			lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("%-9s", label))+" "+value)
		}
	}
	field("Email", u.Email)
	field("Location", u.Location)
	field("Bio", u.Bio)
	field("Network", fmt.Sprintf("%d connections, %d followers", u.Connections, u.Followers))
	field("Avatar", feed.ProfileImage(imageBaseURL, u))
	field("Cover", feed.ImageURL(imageBaseURL, u.CoverImg))

	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ProfileCmd) runEdit(ctx context.Context, c *cli.Command) error {
	app := cmd.flags.App

	current, err := app.LoadProfile(ctx)
	if err != nil {
		return err
	}

	edit := social.EditFrom(current)
	anySet := false
	for _, name := range []string{"name", "title", "location", "bio", "profile-img", "cover-img"} {
		if c.IsSet(name) {
			anySet = true
		}
	}

	if !anySet && stdinIsTerminal() {
		if err := runProfileForm(&edit); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	} else {
		overlay(&edit.Name, cmd.edit.Name, c.IsSet("name"))
		overlay(&edit.Title, cmd.edit.Title, c.IsSet("title"))
		overlay(&edit.Location, cmd.edit.Location, c.IsSet("location"))
		overlay(&edit.Bio, cmd.edit.Bio, c.IsSet("bio"))
		edit.ProfileImg = cmd.edit.ProfileImg
		edit.CoverImg = cmd.edit.CoverImg
	}

	u, err := app.UpdateProfile(ctx, edit)
	if err != nil {
		return err
	}
	return writeProfile(c.Root().Writer, u, cmd.flags.Config.API.ImageBaseURL)
}

func overlay(dst *string, value string, set bool) {
	if set {
		*dst = value
	}
}

func runProfileForm(edit *social.ProfileEdit) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&edit.Name).Validate(validate.Required),
			huh.NewInput().Title("Title").Value(&edit.Title),
			huh.NewInput().Title("Location").Value(&edit.Location),
			huh.NewText().Title("Bio").Value(&edit.Bio),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Profile image").
				Description("Optional path or glob; leave empty to keep the current one").
				Value(&edit.ProfileImg),
			huh.NewInput().
				Title("Cover image").
				Description("Optional path or glob; leave empty to keep the current one").
				Value(&edit.CoverImg),
		),
	).WithTheme(styles.FormTheme()).Run()
}
