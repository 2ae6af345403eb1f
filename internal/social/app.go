// Package social implements the user-facing operations of the client: signing
// in, reading the feed, posting, liking, commenting and editing the profile.
// Every operation reports its outcome through the toast manager.
package social

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/thinkthread/internal/api"
	"github.com/colonyops/thinkthread/internal/core/config"
	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/logging"
	"github.com/colonyops/thinkthread/internal/core/media"
	"github.com/colonyops/thinkthread/internal/core/session"
	"github.com/colonyops/thinkthread/internal/core/toast"
)

// ErrNotSignedIn is returned by operations that need a session.
var ErrNotSignedIn = errors.New("not signed in")

// ReportedError wraps an error that has already been shown to the user as a
// toast. Callers should not print it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already surfaced as a toast.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

// App holds the state shared by the CLI and the TUI.
type App struct {
	cfg     *config.Config
	session *session.Session
	client  *api.Client
	toasts  *toast.Manager

	mu       sync.Mutex
	timeline *feed.Timeline

	now    func() time.Time
	logger zerolog.Logger
}

// New creates an App. The API client reads its bearer token from sess.
func New(cfg *config.Config, sess *session.Session, toasts *toast.Manager) *App {
	return &App{
		cfg:      cfg,
		session:  sess,
		client:   api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sess),
		toasts:   toasts,
		timeline: feed.NewTimeline(),
		now:      time.Now,
		logger:   logging.Component("social"),
	}
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Session returns the current session.
func (a *App) Session() *session.Session { return a.session }

// Toasts returns the toast manager.
func (a *App) Toasts() *toast.Manager { return a.toasts }

// Posts returns a snapshot of the timeline.
func (a *App) Posts() []feed.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeline.Posts()
}

// Post returns a single post from the timeline.
func (a *App) Post(id string) (feed.Post, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeline.Get(id)
}

// ImageURL resolves a post or profile image path against the image host.
func (a *App) ImageURL(path string) string {
	return feed.ImageURL(a.cfg.API.ImageBaseURL, path)
}

// withTimeline runs fn with exclusive access to the timeline.
func (a *App) withTimeline(fn func(t *feed.Timeline)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.timeline)
}

// fail shows err as an error toast titled title and returns it wrapped in a
// ReportedError. An expired session is cleared.
func (a *App) fail(title string, err error) error {
	a.logger.Error().Err(err).Str("op", title).Msg("operation failed")

	if api.IsUnauthorized(err) && a.session.Authenticated() {
		a.session.Clear()
		a.toasts.Warning("Session expired", "Please sign in again")
		return &ReportedError{Err: err}
	}

	a.toasts.Error(title, api.Message(err, ""))
	return &ReportedError{Err: err}
}

// imageError shows a rejected image selection.
func (a *App) imageError(err error) error {
	switch {
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrNotAnImage):
		a.toasts.Error(err.Error(), "")
	default:
		a.toasts.Error("Could not read image", err.Error())
	}
	return &ReportedError{Err: err}
}

// requireSession shows a warning and returns ErrNotSignedIn when no one is
// signed in.
func (a *App) requireSession() error {
	if a.session.Authenticated() {
		return nil
	}
	a.toasts.Warning("Not signed in", "Run 'thinkthread login' first")
	return &ReportedError{Err: ErrNotSignedIn}
}

// selectImage validates an optional image path.
func (a *App) selectImage(path string) (*media.Image, error) {
	if path == "" {
		return nil, nil
	}
	img, err := media.Select(path)
	if err != nil {
		return nil, a.imageError(err)
	}
	return &img, nil
}
