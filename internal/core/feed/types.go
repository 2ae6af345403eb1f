// Package feed holds the social feed domain types and the client-side
// timeline that reconciles optimistic edits with server responses.
package feed

import (
	"slices"
	"time"
)

// User is a member profile as returned by the API.
type User struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Title       string    `json:"title,omitempty"`
	Location    string    `json:"location,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	ProfileImg  string    `json:"profileImg,omitempty"`
	CoverImg    string    `json:"coverImg,omitempty"`
	Connections int       `json:"connections"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayName returns the user's name, or "User" when unset.
func (u User) DisplayName() string {
	if u.Name == "" {
		return "User"
	}
	return u.Name
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string    `json:"_id"`
	Author    User      `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Pending marks a comment shown optimistically before the server
	// confirmed it.
	Pending bool `json:"-"`
}

// Post is a single feed entry.
type Post struct {
	ID        string    `json:"_id"`
	Author    User      `json:"user"`
	Caption   string    `json:"caption"`
	Image     string    `json:"postImage,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`

	// Pending marks a post shown optimistically before the server
	// confirmed it.
	Pending bool `json:"-"`
}

// LikedBy reports whether userID is in the post's likes.
func (p Post) LikedBy(userID string) bool {
	return userID != "" && slices.Contains(p.Likes, userID)
}

// LikeCount returns the number of likes.
func (p Post) LikeCount() int {
	return len(p.Likes)
}

// clone copies the slices of p so edits on the copy never alias the original.
func (p Post) clone() Post {
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	return p
}
