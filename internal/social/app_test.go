package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/thinkthread/internal/api"
	"github.com/colonyops/thinkthread/internal/core/config"
	"github.com/colonyops/thinkthread/internal/core/feed"
	"github.com/colonyops/thinkthread/internal/core/media"
	"github.com/colonyops/thinkthread/internal/core/session"
	"github.com/colonyops/thinkthread/internal/core/toast"
	"github.com/colonyops/thinkthread/internal/core/toast/toasttest"
)

var now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

var sarah = feed.User{ID: "u1", Name: "Sarah"}

type harness struct {
	app   *App
	mux   *http.ServeMux
	clock *toasttest.Clock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.API.ImageBaseURL = srv.URL

	clock := toasttest.NewClock(now)
	toasts := toast.NewManager(toast.Config{}, clock)
	t.Cleanup(toasts.Close)

	app := New(&cfg, session.New(), toasts)
	app.now = func() time.Time { return now }

	return &harness{app: app, mux: mux, clock: clock}
}

func (h *harness) signIn() {
	h.app.Session().Set("tok", sarah)
}

func (h *harness) seed(posts ...feed.Post) {
	h.app.withTimeline(func(t *feed.Timeline) { t.Replace(posts) })
}

// lastToast returns the newest active toast.
func (h *harness) lastToast(t *testing.T) toast.Notification {
	t.Helper()
	active := h.app.Toasts().Active()
	require.NotEmpty(t, active, "expected a toast")
	return active[len(active)-1]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ids(posts []feed.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestLogin_Success(t *testing.T) {
	h := newHarness(t)
	h.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "jwt", "user": sarah})
	})

	u, err := h.app.Login(context.Background(), "sarah@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "jwt", h.app.Session().Token())

	got := h.lastToast(t)
	assert.Equal(t, toast.KindSuccess, got.Kind)
	assert.Equal(t, "Welcome back!", got.Title)
	assert.Equal(t, "Login successful", got.Message)
}

func TestLogin_ServerMessage(t *testing.T) {
	h := newHarness(t)
	h.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid credentials"})
	})

	_, err := h.app.Login(context.Background(), "sarah@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.False(t, h.app.Session().Authenticated())

	got := h.lastToast(t)
	assert.Equal(t, toast.KindError, got.Kind)
	assert.Equal(t, "Login failed", got.Title)
	assert.Equal(t, "Invalid credentials", got.Message)
}

func TestLogin_InvalidInputSkipsRequest(t *testing.T) {
	h := newHarness(t)
	h.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	_, err := h.app.Login(context.Background(), "not-an-email", "")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Equal(t, toast.KindError, h.lastToast(t).Kind)
}

func TestRegister(t *testing.T) {
	h := newHarness(t)
	h.mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sarah", body["name"])
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "token": "jwt", "user": sarah})
	})

	_, err := h.app.Register(context.Background(), "Sarah", "sarah@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, h.app.Session().Authenticated())
	assert.Equal(t, toast.KindSuccess, h.lastToast(t).Kind)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"})

	h.app.Logout()

	assert.False(t, h.app.Session().Authenticated())
	assert.Empty(t, h.app.Posts())
	assert.Equal(t, "Logged out successfully", h.lastToast(t).Title)
}

func TestLoadFeed(t *testing.T) {
	h := newHarness(t)
	h.mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"posts":   []feed.Post{{ID: "p2"}, {ID: "p1"}},
		})
	})

	require.NoError(t, h.app.LoadFeed(context.Background()))
	assert.Equal(t, []string{"p2", "p1"}, ids(h.app.Posts()))
	assert.Empty(t, h.app.Toasts().Active())
}

func TestLoadFeed_Failure(t *testing.T) {
	h := newHarness(t)
	h.seed(feed.Post{ID: "keep"})
	h.mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := h.app.LoadFeed(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"keep"}, ids(h.app.Posts()), "timeline untouched on failure")

	got := h.lastToast(t)
	assert.Equal(t, toast.KindError, got.Kind)
	assert.Equal(t, "Failed to load posts", got.Title)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.mux.HandleFunc("GET /api/posts/user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "jwt expired"})
	})

	err := h.app.LoadMyPosts(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, h.app.Session().Authenticated())
	assert.Equal(t, "Session expired", h.lastToast(t).Title)
}

func TestRequiresSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.app.ToggleLike(context.Background(), "p1")
	require.ErrorIs(t, err, ErrNotSignedIn)
	assert.True(t, IsReported(err))
	assert.Equal(t, toast.KindWarning, h.lastToast(t).Kind)
}

func TestCreatePost_Optimistic(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"})

	h.mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		// While the request is in flight the post is already visible with a
		// loading toast.
		posts := h.app.Posts()
		require.Len(t, posts, 2)
		assert.True(t, posts[0].Pending)
		assert.True(t, feed.IsTemp(posts[0].ID))
		assert.Equal(t, "hello", posts[0].Caption)

		active := h.app.Toasts().Active()
		require.Len(t, active, 1)
		assert.Equal(t, toast.KindLoading, active[0].Kind)

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"post":    map[string]any{"_id": "p2", "caption": "hello"},
		})
	})

	post, err := h.app.CreatePost(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "p2", post.ID)
	assert.Equal(t, "u1", post.Author.ID, "author filled from the session")

	assert.Equal(t, []string{"p2", "p1"}, ids(h.app.Posts()))
	assert.False(t, h.app.Posts()[0].Pending)

	active := h.app.Toasts().Active()
	require.Len(t, active, 1, "loading toast dismissed")
	assert.Equal(t, toast.KindSuccess, active[0].Kind)
	assert.Equal(t, "Post created successfully!", active[0].Title)
}

func TestCreatePost_FailureRollsBack(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"})
	h.mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	})

	_, err := h.app.CreatePost(context.Background(), "hello", "")
	require.Error(t, err)

	assert.Equal(t, []string{"p1"}, ids(h.app.Posts()))

	active := h.app.Toasts().Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Failed to create post", active[0].Title)
	assert.Equal(t, api.MessageTooLarge, active[0].Message)
}

func TestCreatePost_Empty(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	_, err := h.app.CreatePost(context.Background(), "  ", "")
	require.Error(t, err)
	assert.Empty(t, h.app.Posts())
	assert.Equal(t, toast.KindWarning, h.lastToast(t).Kind)
}

func TestCreatePost_RejectsNonImage(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := h.app.CreatePost(context.Background(), "hello", path)
	require.ErrorIs(t, err, media.ErrNotAnImage)

	got := h.lastToast(t)
	assert.Equal(t, toast.KindError, got.Kind)
	assert.Equal(t, "Please select a valid image file", got.Title)
	assert.Empty(t, h.app.Posts())
}

func TestDeletePost(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"}, feed.Post{ID: "p2"})
	h.mux.HandleFunc("DELETE /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.PathValue("id"))
		assert.Equal(t, []string{"p2"}, ids(h.app.Posts()), "removed before the server answers")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	require.NoError(t, h.app.DeletePost(context.Background(), "p1"))
	assert.Equal(t, []string{"p2"}, ids(h.app.Posts()))
	assert.Equal(t, "Post deleted successfully!", h.lastToast(t).Title)
}

func TestDeletePost_FailureRestores(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"}, feed.Post{ID: "p2"}, feed.Post{ID: "p3"})
	h.mux.HandleFunc("DELETE /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Not allowed"})
	})

	err := h.app.DeletePost(context.Background(), "p2")
	require.Error(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(h.app.Posts()))

	got := h.lastToast(t)
	assert.Equal(t, "Failed to delete post", got.Title)
	assert.Equal(t, "Not allowed", got.Message)
}

func TestDeletePost_Pending(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	err := h.app.DeletePost(context.Background(), feed.TempPrefix+"abc")
	require.Error(t, err)
	assert.Equal(t, toast.KindInfo, h.lastToast(t).Kind)
}

func TestToggleLike(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1", Likes: []string{"u2"}})
	h.mux.HandleFunc("PUT /api/posts/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.app.Post("p1")
		require.True(t, ok)
		assert.True(t, p.LikedBy("u1"), "like applied before the server answers")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "likes": []string{"u2", "u1", "u3"}})
	})

	liked, err := h.app.ToggleLike(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	p, _ := h.app.Post("p1")
	assert.Equal(t, 3, p.LikeCount(), "server likes win")
}

func TestToggleLike_FailureRollsBack(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1", Likes: []string{"u1"}})
	h.mux.HandleFunc("PUT /api/posts/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	liked, err := h.app.ToggleLike(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, liked, "previous state returned")

	p, _ := h.app.Post("p1")
	assert.True(t, p.LikedBy("u1"))
	assert.Equal(t, "Failed to update like", h.lastToast(t).Title)
}

func TestComment(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"})
	h.mux.HandleFunc("POST /api/posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		p, _ := h.app.Post("p1")
		require.Len(t, p.Comments, 1)
		assert.True(t, p.Comments[0].Pending)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "comment": map[string]any{"_id": "c1", "text": "nice"}})
	})

	c, err := h.app.Comment(context.Background(), "p1", "nice")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)

	p, _ := h.app.Post("p1")
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "c1", p.Comments[0].ID)
	assert.False(t, p.Comments[0].Pending)
	assert.Equal(t, "Sarah", p.Comments[0].Author.Name)
}

func TestComment_FailureRollsBack(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.seed(feed.Post{ID: "p1"})
	h.mux.HandleFunc("POST /api/posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := h.app.Comment(context.Background(), "p1", "nice")
	require.Error(t, err)

	p, _ := h.app.Post("p1")
	assert.Empty(t, p.Comments)
	assert.Equal(t, "Failed to add comment", h.lastToast(t).Title)
}

func TestLoadProfile(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.mux.HandleFunc("GET /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"_id": "u1", "name": "Sarah", "title": "Engineer"})
	})

	u, err := h.app.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Engineer", u.Title)
	assert.Equal(t, "Engineer", h.app.Session().User().Title)
}

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.mux.HandleFunc("PUT /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Berlin", r.FormValue("location"))
		writeJSON(w, http.StatusOK, map[string]any{"_id": "u1", "name": "Sarah", "location": "Berlin"})
	})

	edit := EditFrom(sarah)
	edit.Location = "Berlin"

	u, err := h.app.UpdateProfile(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", u.Location)
	assert.Equal(t, "Berlin", h.app.Session().User().Location)

	active := h.app.Toasts().Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Profile updated successfully!", active[0].Title)
}

func TestSuccessToastsExpire(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.app.Logout()
	require.Len(t, h.app.Toasts().Active(), 1)

	h.clock.Advance(toast.DefaultDuration)
	assert.Empty(t, h.app.Toasts().Active())
}
