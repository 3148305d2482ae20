package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"glimpse/internal/api"
	"glimpse/internal/devserver"
	"glimpse/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *devserver.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := devserver.NewStore()
	sessions := session.NewManager(session.NewMemoryStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(devserver.SetupRouter(store, sessions, logger))
	t.Cleanup(srv.Close)
	return srv, store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientLoginAndMe(t *testing.T) {
	srv, _ := newTestServer(t)
	c := api.NewClient(srv.URL, "", testLogger())
	ctx := context.Background()

	// No token: Me reports an unauthenticated viewer, not an error.
	viewer, err := c.Me(ctx)
	if err != nil || viewer != nil {
		t.Fatalf("Me without token = (%v, %v), want (nil, nil)", viewer, err)
	}

	resp, err := c.Login(ctx, "ann")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Viewer.Username != "ann" || resp.Token == "" {
		t.Fatalf("login response = %+v", resp)
	}

	viewer, err = c.Me(ctx)
	if err != nil || viewer == nil || viewer.Username != "ann" {
		t.Fatalf("Me = (%+v, %v)", viewer, err)
	}
}

func TestClientToggleRoundTrip(t *testing.T) {
	srv, store := newTestServer(t)
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	c := api.NewClient(srv.URL, "", testLogger())
	ctx := context.Background()
	if _, err := c.Login(ctx, "ann"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	for _, kind := range api.Kinds {
		on, err := c.Toggle(ctx, kind, post.ID)
		if err != nil || !on {
			t.Fatalf("%s on: (%v, %v)", kind, on, err)
		}
		off, err := c.Toggle(ctx, kind, post.ID)
		if err != nil || off {
			t.Fatalf("%s off: (%v, %v)", kind, off, err)
		}
	}
}

func TestClientToggleUnauthorized(t *testing.T) {
	srv, store := newTestServer(t)
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	c := api.NewClient(srv.URL, "", testLogger())
	_, err := c.Toggle(context.Background(), api.KindLike, post.ID)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClientCommentLifecycle(t *testing.T) {
	srv, store := newTestServer(t)
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	c := api.NewClient(srv.URL, "", testLogger())
	ctx := context.Background()
	if _, err := c.Login(ctx, "ann"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	comment, err := c.CreateComment(ctx, post.ID, "first!")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.ID == "" || comment.CreatedBy.Username != "ann" {
		t.Fatalf("server record = %+v", comment)
	}

	if err := c.DeleteComment(ctx, post.ID, comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if got := store.Feed()[0]; len(got.Comments) != 0 {
		t.Fatalf("comment survived deletion")
	}
}

func TestClientBlankCommentRejectedLocally(t *testing.T) {
	srv, store := newTestServer(t)
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	c := api.NewClient(srv.URL, "", testLogger())
	_, err := c.CreateComment(context.Background(), post.ID, "   ")
	if !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput before any request", err)
	}
}

func TestClientDeletePostAndFeed(t *testing.T) {
	srv, store := newTestServer(t)

	c := api.NewClient(srv.URL, "", testLogger())
	ctx := context.Background()
	if _, err := c.Login(ctx, "ann"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	ann := store.EnsureUser("ann")
	p1 := store.AddPost(ann, "first", "")
	p2 := store.AddPost(ann, "second", "")

	posts, err := c.Feed(ctx)
	if err != nil || len(posts) != 2 {
		t.Fatalf("Feed = (%d, %v)", len(posts), err)
	}
	if posts[0].ID != p1.ID {
		t.Fatalf("feed order: got %s first", posts[0].ID)
	}

	if err := c.DeletePost(ctx, p1.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	posts, _ = c.Feed(ctx)
	if len(posts) != 1 || posts[0].ID != p2.ID {
		t.Fatalf("feed after delete = %v", posts)
	}
}
