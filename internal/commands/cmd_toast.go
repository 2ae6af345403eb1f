package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/core/toast"
)

// demoDismissAfter applies to persistent toasts when --dismiss-after is unset.
const demoDismissAfter = 2 * time.Second

type ToastCmd struct {
	flags *Flags

	// flags
	kind         string
	title        string
	message      string
	duration     time.Duration
	dismissAfter time.Duration
}

// NewToastCmd creates a new toast command
func NewToastCmd(flags *Flags) *ToastCmd {
	return &ToastCmd{flags: flags}
}

// Register adds the toast command to the application
func (cmd *ToastCmd) Register(app *cli.Command) *cli.Command {
	kinds := make([]string, 0, len(toast.Kinds()))
	for _, k := range toast.Kinds() {
		kinds = append(kinds, string(k))
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toast",
		Usage:     "Show a toast and print its lifecycle",
		UsageText: "thinkthread toast [--kind KIND] [--title TITLE] [--message MSG] [--duration D]",
		Description: `Pushes a toast through the notification manager and prints each event
(added, dismissed, expired, evicted) with the time since it was shown.

Persistent toasts (--duration 0 or --kind loading) are dismissed after
--dismiss-after, which defaults to 2s for them.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Usage:       "toast kind (" + strings.Join(kinds, ", ") + ")",
				Value:       string(toast.KindInfo),
				Destination: &cmd.kind,
			},
			&cli.StringFlag{
				Name:        "title",
				Value:       "Hello from thinkthread",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "message",
				Destination: &cmd.message,
			},
			&cli.DurationFlag{
				Name:        "duration",
				Usage:       "how long the toast stays (<= 0 keeps it until dismissed; default from config)",
				Destination: &cmd.duration,
			},
			&cli.DurationFlag{
				Name:        "dismiss-after",
				Usage:       "dismiss the toast after this long",
				Destination: &cmd.dismissAfter,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ToastCmd) run(ctx context.Context, c *cli.Command) error {
	kind, ok := toast.ParseKind(cmd.kind)
	if !ok {
		return fmt.Errorf("unknown toast kind %q", cmd.kind)
	}

	opts := durationOptions(kind, cmd.duration, c.IsSet("duration"))
	return runToastDemo(ctx, c.Root().Writer, cmd.flags.App.Toasts(), kind, cmd.title, cmd.message, cmd.dismissAfter, opts...)
}

// durationOptions passes an explicit --duration through unchanged. Without
// one, the config default applies except for loading toasts, which persist.
func durationOptions(kind toast.Kind, d time.Duration, set bool) []toast.Option {
	switch {
	case set:
		return []toast.Option{toast.WithDuration(d)}
	case kind == toast.KindLoading:
		return []toast.Option{toast.WithDuration(0)}
	default:
		return nil
	}
}

// runToastDemo shows one toast on m and writes its events to w until it is
// removed or ctx ends.
func runToastDemo(ctx context.Context, w io.Writer, m *toast.Manager, kind toast.Kind, title, message string, dismissAfter time.Duration, opts ...toast.Option) error {
	var (
		mu    sync.Mutex
		id    string
		start = time.Now()
		done  = make(chan toast.EventType, 1)
	)

	unsub := m.Subscribe(func(ev toast.Event) {
		mu.Lock()
		defer mu.Unlock()
		if id != "" && ev.Notification.ID != id {
			return
		}
		_, _ = fmt.Fprintf(w, "%-9s %s %s\n", ev.Type, time.Since(start).Round(time.Millisecond), ev.Notification.ID)
		if ev.Type != toast.EventAdded {
			select {
			case done <- ev.Type:
			default:
			}
		}
	})
	defer unsub()

	// Notify publishes synchronously, so mu must not be held here.
	shown := m.Notify(kind, title, message, opts...)
	mu.Lock()
	id = shown
	mu.Unlock()
	if id == "" {
		return fmt.Errorf("toast manager is closed")
	}

	n, _ := m.Get(id)
	if dismissAfter <= 0 && n.Persistent() {
		dismissAfter = demoDismissAfter
	}

	var dismiss <-chan time.Time
	if dismissAfter > 0 {
		timer := time.NewTimer(dismissAfter)
		defer timer.Stop()
		dismiss = timer.C
	}

	for {
		select {
		case <-done:
			return nil
		case <-dismiss:
			m.Dismiss(id)
			dismiss = nil
		case <-ctx.Done():
			m.Dismiss(id)
			return ctx.Err()
		}
	}
}
