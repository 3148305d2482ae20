// Package api is the HTTP transport collaborator for the feed widgets.
// It wraps the server's REST surface in typed methods; every method takes a
// context and returns either the server's authoritative result or an error.
// The client never mutates local widget state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Transport is the subset of the client the post widget depends on. The full
// *Client satisfies it; tests substitute fakes.
type Transport interface {
	Toggle(ctx context.Context, kind Kind, postID string) (bool, error)
	CreateComment(ctx context.Context, postID, text string) (*Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
	DeletePost(ctx context.Context, postID string) error
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// SetToken replaces the session token, e.g. after Login.
func (c *Client) SetToken(token string) { c.token = token }

// Toggle flips the viewer's like/share/save on a post. The server infers flip
// semantics from identity + post; no body is sent. The returned boolean is the
// server's resulting state, not a delta.
func (c *Client) Toggle(ctx context.Context, kind Kind, postID string) (bool, error) {
	if postID == "" {
		return false, ErrInvalidInput
	}
	var resp ToggleResponse
	if err := c.do(ctx, http.MethodPost, kind.TogglePath(postID), nil, &resp); err != nil {
		return false, fmt.Errorf("toggle %s: %w", kind, err)
	}
	active, ok := kind.state(&resp)
	if !ok {
		return false, fmt.Errorf("toggle %s: server response missing state field", kind)
	}
	return active, nil
}

// CreateComment posts a comment and returns the server's comment record. The
// record, not the local draft, is what gets appended to the roster so the id
// and author reference are authoritative.
func (c *Client) CreateComment(ctx context.Context, postID, text string) (*Comment, error) {
	if postID == "" || strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	var comment Comment
	path := fmt.Sprintf("/posts/%s/comments", postID)
	if err := c.do(ctx, http.MethodPost, path, CreateCommentRequest{Text: text}, &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	if postID == "" || commentID == "" {
		return ErrInvalidInput
	}
	path := fmt.Sprintf("/posts/%s/comments/%s", postID, commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if postID == "" {
		return ErrInvalidInput
	}
	if err := c.do(ctx, http.MethodDelete, "/posts/"+postID, nil, nil); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Feed returns the post collection in server order.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/feed", nil, &posts); err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return posts, nil
}

// Login creates a session for the given username and stores its token on the
// client for subsequent requests.
func (c *Client) Login(ctx context.Context, username string) (*LoginResponse, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidInput
	}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Username: username}, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.token = resp.Token
	return &resp, nil
}

// Me resolves the current viewer for the session token. A nil viewer with a
// nil error means the client has no token (unauthenticated browsing).
func (c *Client) Me(ctx context.Context) (*Viewer, error) {
	if c.token == "" {
		return nil, nil
	}
	var viewer Viewer
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &viewer); err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}
	return &viewer, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &eb)
		c.logger.Warn("request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return &Error{Status: resp.StatusCode, Message: eb.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
