package social

import (
	"context"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/validate"
)

// Login signs in and stores the session.
func (a *App) Login(ctx context.Context, email, password string) (feed.User, error) {
	if err := validate.Login(email, password); err != nil {
		a.toasts.Error("Login failed", err.Error())
		return feed.User{}, &ReportedError{Err: err}
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return feed.User{}, a.fail("Login failed", err)
	}

	a.session.Set(res.Token, res.User)
	a.logger.Info().Str("user_id", res.User.ID).Msg("signed in")
	a.toasts.Success("Welcome back!", "Login successful")
	return res.User, nil
}

// Register creates an account and signs it in.
func (a *App) Register(ctx context.Context, name, email, password string) (feed.User, error) {
	if err := validate.Registration(name, email, password); err != nil {
		a.toasts.Error("Registration failed", err.Error())
		return feed.User{}, &ReportedError{Err: err}
	}

	res, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return feed.User{}, a.fail("Registration failed", err)
	}

	a.session.Set(res.Token, res.User)
	a.logger.Info().Str("user_id", res.User.ID).Msg("registered")
	a.toasts.Success("Welcome to ThinkThread!", "Account created")
	return res.User, nil
}

// Logout clears the session and the timeline.
func (a *App) Logout() {
	a.session.Clear()
	a.mu.Lock()
	a.timeline = feed.NewTimeline()
	a.mu.Unlock()
	a.toasts.Success("Logged out successfully", "")
}
