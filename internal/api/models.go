package api

import "time"

// Viewer is the authenticated user on whose behalf the client acts.
type Viewer struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// InteractionRef records one user's like/share/save on a post.
type InteractionRef struct {
	ActorID   string `json:"actorId"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	CreatedBy Viewer    `json:"createdBy"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is the server's view of a feed post. Interaction list lengths are the
// authoritative counts; the widget keeps its own counters after mount.
type Post struct {
	ID          string           `json:"id"`
	CreatedBy   Viewer           `json:"createdBy"`
	CreatedAt   time.Time        `json:"createdAt"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Description string           `json:"description,omitempty"`
	Likes       []InteractionRef `json:"likes"`
	Shares      []InteractionRef `json:"shares"`
	Saves       []InteractionRef `json:"saves"`
	Comments    []Comment        `json:"comments"`
}

// List returns the interaction list for the given kind. A nil list is a valid
// empty list, never an error.
func (p *Post) List(kind Kind) []InteractionRef {
	switch kind {
	case KindLike:
		return p.Likes
	case KindShare:
		return p.Shares
	case KindSave:
		return p.Saves
	}
	return nil
}

type ToggleResponse struct {
	IsLiked  *bool `json:"isLiked,omitempty"`
	IsShared *bool `json:"isShared,omitempty"`
	IsSaved  *bool `json:"isSaved,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	Viewer Viewer `json:"viewer"`
}
