package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/feed"
)

const captionColumnWidth = 60

type FeedCmd struct {
	flags *Flags

	// flags
	mine       bool
	jsonOutput bool
}

// NewFeedCmd creates a new feed command
func NewFeedCmd(flags *Flags) *FeedCmd {
	return &FeedCmd{flags: flags}
}

// Register adds the feed command to the application
func (cmd *FeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "feed",
		Usage:     "List posts",
		UsageText: "thinkthread feed [--mine] [--json]",
		Description: `Displays a table of posts, newest first.

Use --mine to list only your posts (requires a session) and --json for the
full post objects.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "mine",
				Usage:       "only show your posts",
				Destination: &cmd.mine,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FeedCmd) run(ctx context.Context, c *cli.Command) error {
	app := cmd.flags.App

	load := app.LoadFeed
	if cmd.mine {
		load = app.LoadMyPosts
	}
	if err := load(ctx); err != nil {
		return err
	}

	posts := app.Posts()
	out := c.Root().Writer

	if cmd.jsonOutput {
		if posts == nil {
			posts = []feed.Post{}
		}
		return writeJSON(out, posts)
	}

	if len(posts) == 0 {
		fmt.Fprintf(os.Stderr, "No posts found\n")
		return nil
	}

	writePostTable(out, posts, app.Session().User().ID, time.Now())
	return nil
}

func writePostTable(out io.Writer, posts []feed.Post, userID string, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tAUTHOR\tPOSTED\tLIKES\tCOMMENTS\tCAPTION")

	for _, p := range posts {
		likes := fmt.Sprintf("%d", p.LikeCount())
		if p.LikedBy(userID) {
			likes += "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID,
			p.Author.DisplayName(),
			feed.TimeAgo(now, p.CreatedAt),
			likes,
			len(p.Comments),
			captionCell(p),
		)
	}

	_ = w.Flush()
}

// captionCell flattens a caption onto one line and truncates it.
func captionCell(p feed.Post) string {
	caption := strings.Join(strings.Fields(p.Caption), " ")
	if p.Image != "" {
		if caption == "" {
			caption = "[image]"
		} else {
			caption = "[image] " + caption
		}
	}
	return ansi.Truncate(caption, captionColumnWidth, "…")
}
