package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/media"
	"github.com/colonyops/thinkthread/internal/core/styles"
)

type PostCmd struct {
	flags *Flags

	// new flags
	caption    string
	image      string
	jsonOutput bool

	// rm flags
	yes bool
}

// NewPostCmd creates a new post command
func NewPostCmd(flags *Flags) *PostCmd {
	return &PostCmd{flags: flags}
}

// Register adds the post command and its subcommands to the application
func (cmd *PostCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "post",
		Usage: "Create and delete posts",
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Publish a post",
				UsageText: "thinkthread post new [--caption TEXT] [--image PATH]",
				Description: `Publishes a post with a caption, an image, or both.

--image accepts a path or a glob (e.g. "photos/**/*.png") that must match
exactly one image of at most 5MB. With neither flag set and a terminal on
stdin, a form is shown.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "caption",
						Usage:       "post text",
						Destination: &cmd.caption,
					},
					&cli.StringFlag{
						Name:        "image",
						Usage:       "image path or glob",
						Destination: &cmd.image,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "print the created post as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runNew,
			},
			{
				Name:          "rm",
				Usage:         "Delete one of your posts",
				UsageText:     "thinkthread post rm [--yes] <id>",
				ShellComplete: PostIDCompleter(cmd.flags),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *PostCmd) runNew(ctx context.Context, c *cli.Command) error {
	if cmd.caption == "" && cmd.image == "" && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	post, err := cmd.flags.App.CreatePost(ctx, strings.TrimSpace(cmd.caption), strings.TrimSpace(cmd.image))
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(out, post)
	}
	_, err = fmt.Fprintln(out, post.ID)
	return err
}

func (cmd *PostCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What do you want to talk about?").
				CharLimit(3000).
				Value(&cmd.caption),
			huh.NewInput().
				Title("Image").
				Description("Optional path or glob matching one image (max 5MB)").
				Placeholder("photos/*.png").
				Value(&cmd.image).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := media.Select(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func (cmd *PostCmd) runRm(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one post id")
	}
	id := c.Args().First()

	if !cmd.yes && stdinIsTerminal() {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Delete post " + id + "?").
			Description("This cannot be undone.").
			Value(&confirmed).
			WithTheme(styles.FormTheme()).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !confirmed {
			return nil
		}
	}

	return cmd.flags.App.DeletePost(ctx, id)
}
