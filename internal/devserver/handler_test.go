package devserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"glimpse/internal/api"
	"glimpse/internal/session"
)

func newTestRouter() (*gin.Engine, *Store) {
	gin.SetMode(gin.TestMode)
	store := NewStore()
	sessions := session.NewManager(session.NewMemoryStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRouter(store, sessions, logger), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return w, decoded
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/auth/login", "", `{"username":"`+username+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d", w.Code)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login: no token in %v", body)
	}
	return token
}

func TestLoginAndMe(t *testing.T) {
	r, _ := newTestRouter()
	token := login(t, r, "ann")

	w, body := doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d", w.Code)
	}
	if body["username"] != "ann" {
		t.Fatalf("me: %v", body)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/auth/me", "bogus", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: status %d, want 401", w.Code)
	}
}

func TestToggleFlipsMembership(t *testing.T) {
	r, store := newTestRouter()
	token := login(t, r, "ann")
	author := store.EnsureUser("ben")
	post := store.AddPost(author, "hello", "")

	w, body := doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/like", token, "")
	if w.Code != http.StatusOK || body["isLiked"] != true {
		t.Fatalf("first toggle: status %d body %v", w.Code, body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/like", token, "")
	if w.Code != http.StatusOK || body["isLiked"] != false {
		t.Fatalf("second toggle: status %d body %v", w.Code, body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/save", token, "")
	if w.Code != http.StatusOK || body["isSaved"] != true {
		t.Fatalf("save toggle: status %d body %v", w.Code, body)
	}
}

func TestToggleRequiresSession(t *testing.T) {
	r, store := newTestRouter()
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	w, _ := doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/like", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if got := store.Feed()[0]; len(got.Likes) != 0 {
		t.Fatalf("unauthenticated toggle mutated state")
	}
}

func TestCreateComment(t *testing.T) {
	r, store := newTestRouter()
	token := login(t, r, "ann")
	post := store.AddPost(store.EnsureUser("ben"), "hello", "")

	w, body := doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/comments", token, `{"text":"nice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if body["text"] != "nice" || body["id"] == "" {
		t.Fatalf("comment record = %v", body)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/posts/"+post.ID+"/comments", token, `{"text":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank comment: status %d, want 400", w.Code)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	r, store := newTestRouter()
	annToken := login(t, r, "ann")
	benToken := login(t, r, "ben")
	ann := store.EnsureUser("ann")
	post := store.AddPost(ann, "hello", "")
	comment, _ := store.AddComment(post.ID, ann, "mine")

	w, _ := doJSON(t, r, http.MethodDelete, "/posts/"+post.ID+"/comments/"+comment.ID, benToken, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status %d, want 403", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/posts/"+post.ID+"/comments/"+comment.ID, annToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("author delete: status %d", w.Code)
	}

	// The duplicate delete finds nothing.
	w, _ = doJSON(t, r, http.MethodDelete, "/posts/"+post.ID+"/comments/"+comment.ID, annToken, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("duplicate delete: status %d, want 404", w.Code)
	}
}

func TestDeletePost(t *testing.T) {
	r, store := newTestRouter()
	annToken := login(t, r, "ann")
	benToken := login(t, r, "ben")
	post := store.AddPost(store.EnsureUser("ann"), "hello", "")

	w, _ := doJSON(t, r, http.MethodDelete, "/posts/"+post.ID, benToken, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status %d, want 403", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/posts/"+post.ID, annToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("author delete: status %d", w.Code)
	}
	if len(store.Feed()) != 0 {
		t.Fatalf("post survived deletion")
	}
}

func TestFeedOrder(t *testing.T) {
	r, store := newTestRouter()
	ann := store.EnsureUser("ann")
	p1 := store.AddPost(ann, "first", "")
	p2 := store.AddPost(ann, "second", "")

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var posts []api.Post
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != p1.ID || posts[1].ID != p2.ID {
		t.Fatalf("feed order wrong: %v", posts)
	}
}
