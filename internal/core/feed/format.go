package feed

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TimeAgo formats t relative to now the way the feed displays timestamps.
func TimeAgo(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}

	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// AvatarURL returns a generated avatar for users without a profile image.
func AvatarURL(name string) string {
	if name == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) +
		"&background=3b82f6&color=ffffff&size=200&rounded=true"
}

// ImageURL resolves an image path returned by the API against baseURL.
// Absolute URLs are returned unchanged; Windows-style separators stored by
// the backend are normalized. Empty paths yield "".
func ImageURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	path = strings.ReplaceAll(path, `\`, "/")
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ProfileImage returns u's profile image URL, falling back to a generated avatar.
func ProfileImage(baseURL string, u User) string {
	if img := ImageURL(baseURL, strings.TrimSpace(u.ProfileImg)); img != "" {
		return img
	}
	return AvatarURL(u.DisplayName())
}
