package social

import (
	"context"
	"fmt"

	"github.com/colonyops/thinkthread/internal/api"
	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/validate"
)

// LoadFeed replaces the timeline with the global feed.
func (a *App) LoadFeed(ctx context.Context) error {
	posts, err := a.client.Feed(ctx)
	if err != nil {
		return a.fail("Failed to load posts", err)
	}
	a.withTimeline(func(t *feed.Timeline) { t.Replace(posts) })
	return nil
}

// LoadMyPosts replaces the timeline with the signed-in user's posts.
func (a *App) LoadMyPosts(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	posts, err := a.client.UserPosts(ctx)
	if err != nil {
		return a.fail("Failed to load your posts", err)
	}
	a.withTimeline(func(t *feed.Timeline) { t.Replace(posts) })
	return nil
}

// CreatePost publishes a post. The post appears at the top of the timeline
// immediately and is replaced by the server copy once the upload completes.
// imagePath may be empty or a glob matching exactly one file.
func (a *App) CreatePost(ctx context.Context, caption, imagePath string) (feed.Post, error) {
	if err := a.requireSession(); err != nil {
		return feed.Post{}, err
	}

	img, err := a.selectImage(imagePath)
	if err != nil {
		return feed.Post{}, err
	}
	if err := validate.Post(caption, img != nil); err != nil {
		a.toasts.Warning("Nothing to post", "Write something or attach an image")
		return feed.Post{}, &ReportedError{Err: err}
	}

	preview := ""
	if img != nil {
		preview = img.Path
	}

	var tempID string
	a.withTimeline(func(t *feed.Timeline) {
		tempID = t.AddPending(a.session.User(), caption, preview, a.now())
	})

	loading := a.toasts.Loading("Publishing post", "")
	post, err := a.client.CreatePost(ctx, api.NewPost{Caption: caption, Image: img})
	a.toasts.Dismiss(loading)

	if err != nil {
		a.withTimeline(func(t *feed.Timeline) { t.Reject(tempID) })
		return feed.Post{}, a.fail("Failed to create post", err)
	}

	if post.Author.ID == "" {
		post.Author = a.session.User()
	}
	a.withTimeline(func(t *feed.Timeline) { t.Confirm(tempID, post) })
	a.toasts.Success("Post created successfully!", "")
	return post, nil
}

// DeletePost removes a post. It disappears from the timeline at once and is
// restored in place if the server refuses.
func (a *App) DeletePost(ctx context.Context, id string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if feed.IsTemp(id) {
		a.toasts.Info("Post is still publishing", "Try again in a moment")
		return &ReportedError{Err: fmt.Errorf("post %s is pending", id)}
	}

	var (
		removed feed.Post
		index   int
		ok      bool
	)
	a.withTimeline(func(t *feed.Timeline) { removed, index, ok = t.Remove(id) })

	if err := a.client.DeletePost(ctx, id); err != nil {
		if ok {
			a.withTimeline(func(t *feed.Timeline) { t.Restore(removed, index) })
		}
		return a.fail("Failed to delete post", err)
	}

	a.toasts.Success("Post deleted successfully!", "")
	return nil
}

// ToggleLike flips the signed-in user's like on a post and returns the new
// state. The change is shown immediately and reverted if the server refuses.
func (a *App) ToggleLike(ctx context.Context, postID string) (bool, error) {
	if err := a.requireSession(); err != nil {
		return false, err
	}
	userID := a.session.User().ID

	var (
		liked bool
		prev  bool
		known bool
	)
	a.withTimeline(func(t *feed.Timeline) {
		if p, found := t.Get(postID); found {
			liked = !p.LikedBy(userID)
			prev, known = t.SetLiked(postID, userID, liked)
		}
	})

	likes, err := a.client.LikePost(ctx, postID)
	if err != nil {
		if known {
			a.withTimeline(func(t *feed.Timeline) { t.SetLiked(postID, userID, prev) })
		}
		return prev, a.fail("Failed to update like", err)
	}

	a.withTimeline(func(t *feed.Timeline) { t.SetLikes(postID, likes) })
	for _, id := range likes {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

// Comment adds a comment to a post. The comment is shown as pending until the
// server confirms it.
func (a *App) Comment(ctx context.Context, postID, text string) (feed.Comment, error) {
	if err := a.requireSession(); err != nil {
		return feed.Comment{}, err
	}
	if err := validate.Comment(text); err != nil {
		a.toasts.Warning("Comment is empty", "")
		return feed.Comment{}, &ReportedError{Err: err}
	}

	var (
		tempID  string
		pending bool
	)
	a.withTimeline(func(t *feed.Timeline) {
		tempID, pending = t.AddPendingComment(postID, a.session.User(), text, a.now())
	})

	comment, err := a.client.AddComment(ctx, postID, text)
	if err != nil {
		if pending {
			a.withTimeline(func(t *feed.Timeline) { t.RejectComment(postID, tempID) })
		}
		return feed.Comment{}, a.fail("Failed to add comment", err)
	}

	if comment.Author.ID == "" {
		comment.Author = a.session.User()
	}
	if pending {
		a.withTimeline(func(t *feed.Timeline) { t.ConfirmComment(postID, tempID, comment) })
	}
	a.toasts.Success("Comment added", "")
	return comment, nil
}
