package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/media"
)

// AuthResult is returned by Login and Register.
type AuthResult struct {
	Token string    `json:"token"`
	User  feed.User `json:"user"`
}

// NewPost is the payload for CreatePost. Image is optional.
type NewPost struct {
	Caption string
	Image   *media.Image
}

// ProfileUpdate is the payload for UpdateProfile. Images are optional.
type ProfileUpdate struct {
	Name       string
	Title      string
	Location   string
	Bio        string
	ProfileImg *media.Image
	CoverImg   *media.Image
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

type postsResponse struct {
	Posts []feed.Post `json:"posts"`
}

// Feed returns the global feed, newest first.
func (c *Client) Feed(ctx context.Context) ([]feed.Post, error) {
	var res postsResponse
	if err := c.getJSON(ctx, "/api/posts", &res); err != nil {
		return nil, err
	}
	return res.Posts, nil
}

// UserPosts returns the signed-in user's posts.
func (c *Client) UserPosts(ctx context.Context) ([]feed.Post, error) {
	var res postsResponse
	if err := c.getJSON(ctx, "/api/posts/user", &res); err != nil {
		return nil, err
	}
	return res.Posts, nil
}

// CreatePost publishes a post as multipart form data.
func (c *Client) CreatePost(ctx context.Context, p NewPost) (feed.Post, error) {
	var res struct {
		Post feed.Post `json:"post"`
	}
	err := c.sendMultipart(ctx, http.MethodPost, "/api/posts",
		[]field{{name: "caption", value: p.Caption}},
		[]filePart{{field: "postImage", image: p.Image}},
		&res,
	)
	return res.Post, err
}

// DeletePost removes one of the signed-in user's posts.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, "", nil)
}

// LikePost toggles the signed-in user's like and returns the updated likes.
func (c *Client) LikePost(ctx context.Context, id string) ([]string, error) {
	var res struct {
		Likes []string `json:"likes"`
	}
	err := c.do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id)+"/like", nil, "", &res)
	return res.Likes, err
}

// AddComment posts a comment on a post.
func (c *Client) AddComment(ctx context.Context, postID, text string) (feed.Comment, error) {
	var res struct {
		Comment feed.Comment `json:"comment"`
	}
	err := c.sendJSON(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postID)+"/comments",
		map[string]string{"text": text}, &res)
	return res.Comment, err
}

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (feed.User, error) {
	var u feed.User
	err := c.getJSON(ctx, "/api/user/profile", &u)
	return u, err
}

// UpdateProfile saves profile fields and optional images.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (feed.User, error) {
	var u feed.User
	err := c.sendMultipart(ctx, http.MethodPut, "/api/user/profile",
		[]field{
			{name: "name", value: p.Name},
			{name: "title", value: p.Title},
			{name: "location", value: p.Location},
			{name: "bio", value: p.Bio},
		},
		[]filePart{
			{field: "profileImg", image: p.ProfileImg},
			{field: "coverImg", image: p.CoverImg},
		},
		&u,
	)
	return u, err
}
