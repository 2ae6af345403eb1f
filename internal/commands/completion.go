package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// PostIDCompleter returns a ShellCompleteFunc that suggests post ids from the
// feed as positional completions, followed by the author as a description.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func PostIDCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.App == nil {
			return
		}
		if err := flags.App.LoadFeed(ctx); err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, p := range flags.App.Posts() {
			_, _ = fmt.Fprintf(w, "%s:%s\n", p.ID, p.Author.DisplayName())
		}
	}
}
