package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/colonyops/thinkthread/internal/core/styles"
	"github.com/colonyops/thinkthread/internal/social"
	"github.com/colonyops/thinkthread/pkg/iojson"
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// writeJSON prints obj as indented JSON, colorized when stdout is a terminal.
func writeJSON(w io.Writer, obj any) error {
	if w != os.Stdout || !stdoutIsTerminal() {
		return iojson.Write(w, obj)
	}

	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, styles.ColorizeJSON(bits))
	return err
}

// ensureUser resolves the signed-in user when the session was seeded from a
// bare token.
func ensureUser(ctx context.Context, app *social.App) error {
	sess := app.Session()
	if !sess.Authenticated() || sess.User().ID != "" {
		return nil
	}
	_, err := app.LoadProfile(ctx)
	return err
}
