package social

import (
	"context"

	"github.com/colonyops/thinkthread/internal/api"
	"github.com/colonyops/thinkthread/internal/core/feed"
)

// ProfileEdit holds the editable profile fields. Image fields are optional
// paths or globs matching a single file.
type ProfileEdit struct {
	Name       string
	Title      string
	Location   string
	Bio        string
	ProfileImg string
	CoverImg   string
}

// EditFrom pre-fills a ProfileEdit with the user's current values.
func EditFrom(u feed.User) ProfileEdit {
	return ProfileEdit{
		Name:     u.Name,
		Title:    u.Title,
		Location: u.Location,
		Bio:      u.Bio,
	}
}

// LoadProfile fetches the signed-in user's profile and refreshes the session.
func (a *App) LoadProfile(ctx context.Context) (feed.User, error) {
	if err := a.requireSession(); err != nil {
		return feed.User{}, err
	}

	u, err := a.client.Profile(ctx)
	if err != nil {
		return feed.User{}, a.fail("Failed to load profile data", err)
	}

	a.session.SetUser(u)
	return u, nil
}

// UpdateProfile saves the profile and refreshes the session.
func (a *App) UpdateProfile(ctx context.Context, edit ProfileEdit) (feed.User, error) {
	if err := a.requireSession(); err != nil {
		return feed.User{}, err
	}

	profileImg, err := a.selectImage(edit.ProfileImg)
	if err != nil {
		return feed.User{}, err
	}
	coverImg, err := a.selectImage(edit.CoverImg)
	if err != nil {
		return feed.User{}, err
	}

	loading := a.toasts.Loading("Saving profile", "")
	u, err := a.client.UpdateProfile(ctx, api.ProfileUpdate{
		Name:       edit.Name,
		Title:      edit.Title,
		Location:   edit.Location,
		Bio:        edit.Bio,
		ProfileImg: profileImg,
		CoverImg:   coverImg,
	})
	a.toasts.Dismiss(loading)

	if err != nil {
		return feed.User{}, a.fail("Failed to update profile", err)
	}

	a.session.SetUser(u)
	a.toasts.Success("Profile updated successfully!", "")
	return u, nil
}
