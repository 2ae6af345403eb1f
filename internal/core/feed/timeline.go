package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/colonyops/thinkthread/pkg/randid"
)

// TempPrefix marks ids assigned locally to optimistic posts and comments.
const TempPrefix = "tmp-"

// IsTemp reports whether id was assigned locally.
func IsTemp(id string) bool {
	return strings.HasPrefix(id, TempPrefix)
}

// Timeline is the ordered list of posts shown to the user, newest first.
// Optimistic edits are applied immediately and later confirmed or rolled
// back once the server answers.
//
// A Timeline is owned by a single UI loop and is not safe for concurrent use.
type Timeline struct {
	posts []Post
	newID func() string
}

// NewTimeline returns an empty Timeline.
func NewTimeline() *Timeline {
	return &Timeline{
		newID: func() string { return randid.WithPrefix(TempPrefix, 10) },
	}
}

// Posts returns a copy of the timeline.
func (t *Timeline) Posts() []Post {
	out := make([]Post, len(t.posts))
	for i, p := range t.posts {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of posts.
func (t *Timeline) Len() int {
	return len(t.posts)
}

// Get returns the post with the given id.
func (t *Timeline) Get(id string) (Post, bool) {
	if i := t.index(id); i >= 0 {
		return t.posts[i].clone(), true
	}
	return Post{}, false
}

// Replace installs a server snapshot. Pending posts stay on top, and pending
// comments on posts present in the snapshot are carried over. Duplicate ids in
// the snapshot keep their first occurrence.
func (t *Timeline) Replace(server []Post) {
	out := make([]Post, 0, len(server)+1)
	for _, p := range t.posts {
		if p.Pending {
			out = append(out, p)
		}
	}

	seen := make(map[string]bool, len(server))
	for _, p := range server {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		p = p.clone()
		if local, ok := t.Get(p.ID); ok {
			for _, c := range local.Comments {
				if c.Pending {
					p.Comments = append(p.Comments, c)
				}
			}
		}
		out = append(out, p)
	}

	t.posts = out
}

// AddPending prepends an optimistic post and returns its temporary id.
func (t *Timeline) AddPending(author User, caption, image string, now time.Time) string {
	id := t.newID()
	p := Post{
		ID:        id,
		Author:    author,
		Caption:   caption,
		Image:     image,
		CreatedAt: now,
		Pending:   true,
	}
	t.posts = append([]Post{p}, t.posts...)
	return id
}

// Confirm replaces the pending post tempID with the server's version. If the
// server post is already listed, the pending copy is dropped instead. If the
// pending post is gone, the server post is prepended unless already listed.
// It reports whether tempID was found.
func (t *Timeline) Confirm(tempID string, p Post) bool {
	p = p.clone()
	p.Pending = false

	ti := t.index(tempID)
	si := t.index(p.ID)

	switch {
	case ti < 0 && si < 0:
		t.posts = append([]Post{p}, t.posts...)
		return false
	case ti < 0:
		return false
	case si >= 0:
		t.posts[si] = p
		t.posts = slices.Delete(t.posts, ti, ti+1)
	default:
		t.posts[ti] = p
	}
	return true
}

// Reject drops the pending post tempID.
func (t *Timeline) Reject(tempID string) bool {
	i := t.index(tempID)
	if i < 0 || !t.posts[i].Pending {
		return false
	}
	t.posts = slices.Delete(t.posts, i, i+1)
	return true
}

// SetLiked marks postID as liked or unliked by userID. It returns the
// previous state so callers can roll back, and whether the post exists.
func (t *Timeline) SetLiked(postID, userID string, liked bool) (prev bool, ok bool) {
	i := t.index(postID)
	if i < 0 {
		return false, false
	}

	p := &t.posts[i]
	prev = p.LikedBy(userID)
	if prev == liked {
		return prev, true
	}

	if liked {
		p.Likes = append(slices.Clone(p.Likes), userID)
	} else {
		p.Likes = slices.DeleteFunc(slices.Clone(p.Likes), func(id string) bool { return id == userID })
	}
	return prev, true
}

// SetLikes overwrites the likes of postID with the server's list.
func (t *Timeline) SetLikes(postID string, likes []string) bool {
	i := t.index(postID)
	if i < 0 {
		return false
	}
	t.posts[i].Likes = slices.Clone(likes)
	return true
}

// AddPendingComment appends an optimistic comment to postID and returns its
// temporary id.
func (t *Timeline) AddPendingComment(postID string, author User, text string, now time.Time) (string, bool) {
	i := t.index(postID)
	if i < 0 {
		return "", false
	}

	id := t.newID()
	p := &t.posts[i]
	p.Comments = append(slices.Clone(p.Comments), Comment{
		ID:        id,
		Author:    author,
		Text:      text,
		CreatedAt: now,
		Pending:   true,
	})
	return id, true
}

// ConfirmComment replaces the pending comment tempID on postID with the
// server's version.
func (t *Timeline) ConfirmComment(postID, tempID string, c Comment) bool {
	i := t.index(postID)
	if i < 0 {
		return false
	}

	c.Pending = false
	p := &t.posts[i]
	p.Comments = slices.Clone(p.Comments)

	ci := slices.IndexFunc(p.Comments, func(x Comment) bool { return x.ID == tempID })
	if ci < 0 {
		if !slices.ContainsFunc(p.Comments, func(x Comment) bool { return x.ID == c.ID }) {
			p.Comments = append(p.Comments, c)
		}
		return false
	}
	p.Comments[ci] = c
	return true
}

// RejectComment drops the pending comment tempID from postID.
func (t *Timeline) RejectComment(postID, tempID string) bool {
	i := t.index(postID)
	if i < 0 {
		return false
	}

	p := &t.posts[i]
	before := len(p.Comments)
	p.Comments = slices.DeleteFunc(slices.Clone(p.Comments), func(c Comment) bool {
		return c.ID == tempID && c.Pending
	})
	return len(p.Comments) != before
}

// Remove deletes postID and returns it along with its former position so a
// failed server delete can be rolled back with Restore.
func (t *Timeline) Remove(postID string) (Post, int, bool) {
	i := t.index(postID)
	if i < 0 {
		return Post{}, -1, false
	}
	p := t.posts[i]
	t.posts = slices.Delete(t.posts, i, i+1)
	return p, i, true
}

// Restore reinserts p at index, clamped to the current bounds. It is a no-op
// if a post with the same id is already listed.
func (t *Timeline) Restore(p Post, index int) {
	if t.index(p.ID) >= 0 {
		return
	}
	index = min(max(index, 0), len(t.posts))
	t.posts = slices.Insert(t.posts, index, p.clone())
}

func (t *Timeline) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(t.posts, func(p Post) bool { return p.ID == id })
}
