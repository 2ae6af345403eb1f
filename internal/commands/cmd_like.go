package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

type LikeCmd struct {
	flags *Flags
}

// NewLikeCmd creates a new like command
func NewLikeCmd(flags *Flags) *LikeCmd {
	return &LikeCmd{flags: flags}
}

// Register adds the like and comment commands to the application
func (cmd *LikeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:          "like",
			Usage:         "Like or unlike a post",
			UsageText:     "thinkthread like <id>",
			Description:   "Toggles your like on a post and prints the new state.",
			ShellComplete: PostIDCompleter(cmd.flags),
			Action:        cmd.runLike,
		},
		&cli.Command{
			Name:          "comment",
			Usage:         "Comment on a post",
			UsageText:     "thinkthread comment <id> <text...>",
			ShellComplete: PostIDCompleter(cmd.flags),
			Action:        cmd.runComment,
		},
	)

	return app
}

func (cmd *LikeCmd) runLike(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one post id")
	}

	if err := ensureUser(ctx, cmd.flags.App); err != nil {
		return err
	}

	liked, err := cmd.flags.App.ToggleLike(ctx, c.Args().First())
	if err != nil {
		return err
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	_, err = fmt.Fprintln(c.Root().Writer, state)
	return err
}

func (cmd *LikeCmd) runComment(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("expected a post id and comment text")
	}

	args := c.Args().Slice()
	comment, err := cmd.flags.App.Comment(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, comment.ID)
	return err
}
