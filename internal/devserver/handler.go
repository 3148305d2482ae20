// Package devserver is an in-memory implementation of the feed API the
// client speaks, for development and integration testing. Handlers follow
// the transport contract exactly: toggles return the server's resulting
// state, comment creation returns the stored record.
package devserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"glimpse/internal/api"
	"glimpse/internal/session"
)

const sessionMaxAge = 24 * 60 * 60 // seconds

type Handler struct {
	store    *Store
	sessions session.Manager
	logger   *slog.Logger
}

func NewHandler(store *Store, sessions session.Manager, logger *slog.Logger) *Handler {
	return &Handler{store: store, sessions: sessions, logger: logger}
}

// viewer resolves the bearer token to a user. ok is false when the request
// carries no usable session.
func (h *Handler) viewer(c *gin.Context) (api.Viewer, bool) {
	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return api.Viewer{}, false
	}
	sess, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		return api.Viewer{}, false
	}
	u, ok := h.store.UserByID(sess.UserID)
	return u, ok
}

// POST /auth/login {username}
func (h *Handler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u := h.store.EnsureUser(req.Username)
	token, err := h.sessions.Create(c.Request.Context(), u.ID, u.Username, sessionMaxAge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.logger.Info("login", "user", u.Username)
	c.JSON(http.StatusOK, api.LoginResponse{Token: token, Viewer: u})
}

// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	u, ok := h.viewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /feed
func (h *Handler) Feed(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Feed())
}

// POST /posts/:post_id/{like,share,save}
// No body: the server infers flip semantics from identity + post.
func (h *Handler) Toggle(kind api.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := h.viewer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		active, err := h.store.ToggleInteraction(kind, c.Param("post_id"), u)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{kind.ResponseField(): active})
	}
}

// POST /posts/:post_id/comments {text}
func (h *Handler) CreateComment(c *gin.Context) {
	u, ok := h.viewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req api.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	comment, err := h.store.AddComment(c.Param("post_id"), u, req.Text)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /posts/:post_id/comments/:comment_id
func (h *Handler) DeleteComment(c *gin.Context) {
	u, ok := h.viewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	err := h.store.DeleteComment(c.Param("post_id"), c.Param("comment_id"), u.ID)
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

// DELETE /posts/:post_id
func (h *Handler) DeletePost(c *gin.Context) {
	u, ok := h.viewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	err := h.store.DeletePost(c.Param("post_id"), u.ID)
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		h.logger.Info("post deleted", "post", c.Param("post_id"), "by", u.Username)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "glimpse-devserver",
	})
}
