package postcard

import "glimpse/internal/api"

// CardMsg is implemented by every message addressed to one post card. The
// parent collection routes by id and drops messages whose card is no longer
// mounted, so a late server response cannot mutate torn-down state.
type CardMsg interface {
	CardID() string
}

// RemovedMsg announces a successful post deletion to the parent collection.
// Emitted exactly once per deletion.
type RemovedMsg struct {
	PostID string
}

type toggleResultMsg struct {
	postID string
	kind   api.Kind
	active bool
	err    error
}

func (m toggleResultMsg) CardID() string { return m.postID }

type commentCreatedMsg struct {
	postID  string
	comment *api.Comment
	err     error
}

func (m commentCreatedMsg) CardID() string { return m.postID }

type commentDeletedMsg struct {
	postID    string
	commentID string
	err       error
}

func (m commentDeletedMsg) CardID() string { return m.postID }

type postDeleteResultMsg struct {
	postID string
	err    error
}

func (m postDeleteResultMsg) CardID() string { return m.postID }

type noticeExpiredMsg struct {
	postID string
	gen    int
}

func (m noticeExpiredMsg) CardID() string { return m.postID }
