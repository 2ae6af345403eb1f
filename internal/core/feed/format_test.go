package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "Just now"},
		{"future", now.Add(time.Minute), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"same year", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), "Jan 2"},
		{"previous year", time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC), "Dec 1, 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now, tt.t))
		})
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"relative", "uploads/a.png", "http://localhost:5000/uploads/a.png"},
		{"windows separators", `uploads\posts\a.png`, "http://localhost:5000/uploads/posts/a.png"},
		{"leading slash", "/uploads/a.png", "http://localhost:5000/uploads/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageURL("http://localhost:5000/", tt.path))
		})
	}
}

func TestProfileImage_falls_back_to_avatar(t *testing.T) {
	got := ProfileImage("http://localhost:5000", User{Name: "Sarah Johnson", ProfileImg: "  "})
	assert.Equal(t, AvatarURL("Sarah Johnson"), got)
	assert.Contains(t, got, "name=Sarah+Johnson")

	got = ProfileImage("http://localhost:5000", User{ProfileImg: "uploads/me.png"})
	assert.Equal(t, "http://localhost:5000/uploads/me.png", got)
}

func TestAvatarURL_default_name(t *testing.T) {
	assert.Contains(t, AvatarURL(""), "name=User")
}
