// Package postcard implements the interactive feed-post widget: a Bubble Tea
// model owning the reconciled interaction state for one post. It keeps three
// toggle reconcilers (like/share/save), the comment roster, a confirmation
// gate for destructive actions, and the transient notice line consistent
// across user input and server responses.
//
// Requests never mutate state ahead of the server: a toggle or delete is
// issued, and only the response (an authoritative result) is applied. Failed
// requests leave state at its last-known-good value and surface a notice.
package postcard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"glimpse/internal/api"
	"glimpse/internal/pointer"
)

const (
	requestTimeout = 10 * time.Second
	draftCharLimit = 500
	menuWidth      = 18
	menuHeight     = 3
)

// Model is one mounted post card. The card exclusively owns its toggle
// state, roster projection and confirmation gate; the post entity itself is
// a read-mostly copy patched only from server responses.
type Model struct {
	post   api.Post
	viewer *api.Viewer
	tr     api.Transport
	logger *slog.Logger

	toggles [3]ToggleState
	roster  Roster
	gate    Gate
	note    notice

	draft textarea.Model

	showOptions     bool
	showAllComments bool
	selComment      int

	pointer *pointer.Source
	menuSub *pointer.Subscription

	width   int
	originY int
}

// New mounts a card for a post. Toggle booleans are derived from the
// viewer's membership in the interaction lists, counters from list lengths.
func New(post api.Post, viewer *api.Viewer, tr api.Transport, logger *slog.Logger) *Model {
	draft := textarea.New()
	draft.Placeholder = "Add a comment..."
	draft.CharLimit = draftCharLimit
	draft.SetHeight(1)
	draft.ShowLineNumbers = false
	draft.Prompt = ""

	return &Model{
		post:    post,
		viewer:  viewer,
		tr:      tr,
		logger:  logger,
		toggles: seedToggles(viewer, &post),
		roster:  NewRoster(post.Comments),
		draft:   draft,
		pointer: pointer.NewSource(),
	}
}

func (m *Model) ID() string { return m.post.ID }

// SetViewer re-derives ownership and counters for a new viewer identity.
func (m *Model) SetViewer(viewer *api.Viewer) {
	m.viewer = viewer
	m.toggles = seedToggles(viewer, &m.post)
}

// SetWidth updates the card's render width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.draft.SetWidth(max(w-4, 10))
	if m.menuSub != nil {
		m.menuSub.SetRegion(m.menuRegion())
	}
}

// SetOrigin records the card's top row on screen, used to place the options
// menu region for outside-press dismissal.
func (m *Model) SetOrigin(y int) {
	m.originY = y
	if m.menuSub != nil {
		m.menuSub.SetRegion(m.menuRegion())
	}
}

// Capturing reports whether the card wants all key input routed to it.
func (m *Model) Capturing() bool {
	return m.draft.Focused() || m.showOptions || m.showAllComments || m.gate.Awaiting()
}

// Expanded reports whether the full-comments overlay is open. The parent
// holds the scroll lock while any card is expanded.
func (m *Model) Expanded() bool { return m.showAllComments }

// Close tears the card down: the overlay is dropped and the menu
// subscription is released so nothing keeps listening after unmount.
func (m *Model) Close() {
	m.closeMenu()
	m.showAllComments = false
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case toggleResultMsg:
		if msg.err != nil {
			m.logger.Warn("toggle failed", "post", msg.postID, "kind", msg.kind.String(), "err", msg.err)
			return m.note.show(m.post.ID, msg.kind.FailureNotice())
		}
		m.toggles[msg.kind].Apply(msg.active)
		return nil

	case commentCreatedMsg:
		if msg.err != nil {
			m.logger.Warn("comment create failed", "post", msg.postID, "err", msg.err)
			// The draft stays intact for retry; it only clears on success.
			return m.note.show(m.post.ID, "Error posting comment")
		}
		m.roster.Append(*msg.comment)
		m.draft.Reset()
		return nil

	case commentDeletedMsg:
		m.gate.Finish()
		if msg.err != nil {
			m.logger.Warn("comment delete failed", "post", msg.postID, "comment", msg.commentID, "err", msg.err)
			return m.note.show(m.post.ID, "Failed to delete comment")
		}
		m.roster.Remove(msg.commentID)
		if m.selComment >= m.roster.Len() && m.selComment > 0 {
			m.selComment--
		}
		return m.note.show(m.post.ID, "Comment deleted")

	case postDeleteResultMsg:
		m.gate.Finish()
		if msg.err != nil {
			m.logger.Warn("post delete failed", "post", msg.postID, "err", msg.err)
			return m.note.show(m.post.ID, "Failed to delete post")
		}
		id := msg.postID
		return func() tea.Msg { return RemovedMsg{PostID: id} }

	case noticeExpiredMsg:
		m.note.expire(msg.gen)
		return nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.pointer.Press(msg.X, msg.Y)
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.gate.Awaiting() {
		switch msg.String() {
		case "y", "enter":
			return m.confirmDelete()
		case "n", "esc":
			m.gate.Cancel()
		}
		return nil
	}

	if m.draft.Focused() {
		switch msg.String() {
		case "enter":
			return m.submitComment()
		case "esc":
			m.draft.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		return cmd
	}

	if m.showOptions {
		switch msg.String() {
		case "d":
			m.closeMenu()
			m.gate.Request(TargetPost, m.post.ID)
		case "esc", "m":
			m.closeMenu()
		}
		return nil
	}

	if m.showAllComments {
		switch msg.String() {
		case "esc", "a":
			m.showAllComments = false
		case "j", "down":
			if m.selComment < m.roster.Len()-1 {
				m.selComment++
			}
		case "k", "up":
			if m.selComment > 0 {
				m.selComment--
			}
		case "x":
			if c, ok := m.roster.At(m.selComment); ok && m.isCommentAuthor(c) {
				m.gate.Request(TargetComment, c.ID)
			}
		case "c":
			return m.draft.Focus()
		}
		return nil
	}

	switch msg.String() {
	case "l":
		return m.toggleCmd(api.KindLike)
	case "s":
		return m.toggleCmd(api.KindShare)
	case "b":
		return m.toggleCmd(api.KindSave)
	case "c":
		return m.draft.Focus()
	case "a":
		m.showAllComments = true
		m.selComment = 0
	case "m":
		if m.isPostAuthor() {
			m.openMenu()
		}
	}
	return nil
}

// toggleCmd issues the flip request for one interaction kind. No local state
// changes until the response arrives (confirmation-first, no optimistic
// pre-increment).
func (m *Model) toggleCmd(kind api.Kind) tea.Cmd {
	tr, postID := m.tr, m.post.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		active, err := tr.Toggle(ctx, kind, postID)
		return toggleResultMsg{postID: postID, kind: kind, active: active, err: err}
	}
}

// submitComment issues the create request for the current draft. Blank text
// is a silent no-op: no request, no notice, draft untouched.
func (m *Model) submitComment() tea.Cmd {
	text := m.draft.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tr, postID := m.tr, m.post.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		comment, err := tr.CreateComment(ctx, postID, text)
		return commentCreatedMsg{postID: postID, comment: comment, err: err}
	}
}

func (m *Model) confirmDelete() tea.Cmd {
	kind, targetID, ok := m.gate.Confirm()
	if !ok {
		return nil
	}
	tr, postID := m.tr, m.post.ID
	switch kind {
	case TargetComment:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := tr.DeleteComment(ctx, postID, targetID)
			return commentDeletedMsg{postID: postID, commentID: targetID, err: err}
		}
	case TargetPost:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			err := tr.DeletePost(ctx, postID)
			return postDeleteResultMsg{postID: postID, err: err}
		}
	}
	return nil
}

func (m *Model) openMenu() {
	if m.showOptions {
		return
	}
	m.showOptions = true
	// Listen for presses outside the menu for as long as it is open.
	m.menuSub = m.pointer.Subscribe(m.menuRegion(), func() {
		m.closeMenu()
	})
}

func (m *Model) closeMenu() {
	m.showOptions = false
	if m.menuSub != nil {
		m.menuSub.Close()
		m.menuSub = nil
	}
}

func (m *Model) menuRegion() pointer.Region {
	return pointer.Region{
		X:      max(m.width-menuWidth-1, 0),
		Y:      m.originY,
		Width:  menuWidth,
		Height: menuHeight,
	}
}

func (m *Model) isPostAuthor() bool {
	return m.viewer != nil && m.viewer.ID == m.post.CreatedBy.ID
}

func (m *Model) isCommentAuthor(c api.Comment) bool {
	return m.viewer != nil && m.viewer.ID == c.CreatedBy.ID
}

// Toggle exposes the reconciled state for one interaction kind.
func (m *Model) Toggle(kind api.Kind) ToggleState { return m.toggles[kind] }

// Comments exposes the roster for inspection.
func (m *Model) Comments() *Roster { return &m.roster }

// Notice returns the currently visible transient notice, if any.
func (m *Model) Notice() string { return m.note.text }
