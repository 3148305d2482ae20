// Package feedview is the parent collection of post cards. It owns card
// lifecycle (mount, removal) and holds the scroll lock while a card's
// expanded-comments overlay is open. Card-addressed messages are routed by
// post id; delivery stops at unmount, which is what suppresses late server
// responses for deleted cards.
package feedview

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"glimpse/internal/api"
	"glimpse/internal/postcard"
)

type Model struct {
	cards    []*postcard.Model
	selected int

	lock   ScrollLock
	viewer *api.Viewer
	logger *slog.Logger

	// onPostDeleted is invoked exactly once per successful post deletion.
	onPostDeleted func(postID string)

	width  int
	height int
}

func New(posts []api.Post, viewer *api.Viewer, tr api.Transport, logger *slog.Logger) Model {
	cards := make([]*postcard.Model, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postcard.New(p, viewer, tr, logger))
	}
	return Model{cards: cards, viewer: viewer, logger: logger}
}

// SetOnPostDeleted registers the removal callback exposed to the embedding
// application.
func (m *Model) SetOnPostDeleted(fn func(postID string)) { m.onPostDeleted = fn }

// SetViewer switches the viewer identity for the whole collection, e.g.
// after a session change. Every card re-derives its ownership flags and
// reseeds its counters.
func (m *Model) SetViewer(viewer *api.Viewer) {
	m.viewer = viewer
	for _, c := range m.cards {
		c.SetViewer(viewer)
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, c := range m.cards {
			c.SetWidth(msg.Width)
		}
		m.layout()
		return m, nil

	case postcard.RemovedMsg:
		m.removeCard(msg.PostID)
		return m, nil

	case postcard.CardMsg:
		// Card-addressed message: deliver to the mounted card or drop it.
		// Responses landing after teardown die here.
		if c := m.card(msg.CardID()); c != nil {
			cmd := c.Update(msg)
			m.syncLock()
			return m, cmd
		}
		m.logger.Debug("dropped message for unmounted card", "post", msg.CardID())
		return m, nil

	case tea.MouseMsg:
		var cmds []tea.Cmd
		for _, c := range m.cards {
			if cmd := c.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.currentCard()

	// A card in a modal state (draft, menu, overlay, confirmation) gets all
	// key input.
	if current != nil && current.Capturing() {
		cmd := current.Update(msg)
		m.syncLock()
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if !m.lock.Locked() && m.selected < len(m.cards)-1 {
			m.selected++
			m.layout()
		}
		return m, nil
	case "k", "up":
		if !m.lock.Locked() && m.selected > 0 {
			m.selected--
			m.layout()
		}
		return m, nil
	}

	if current != nil {
		cmd := current.Update(msg)
		m.syncLock()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.cards) == 0 {
		return "\n  No posts yet.\n"
	}
	// While the scroll lock is held, the expanded card owns the screen.
	if m.lock.Locked() {
		if c := m.card(m.lock.Holder()); c != nil {
			return c.View()
		}
	}

	views := make([]string, 0, len(m.cards)+1)
	for i, c := range m.cards {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		views = append(views, lipgloss.JoinHorizontal(lipgloss.Top, marker, c.View()))
	}
	views = append(views, helpStyle.Render("j/k posts · l like · s share · b save · c comment · a comments · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

func (m *Model) currentCard() *postcard.Model {
	if m.selected < 0 || m.selected >= len(m.cards) {
		return nil
	}
	return m.cards[m.selected]
}

func (m *Model) card(postID string) *postcard.Model {
	for _, c := range m.cards {
		if c.ID() == postID {
			return c
		}
	}
	return nil
}

// removeCard unmounts a deleted post's card, releases any lock it held, and
// fires the removal callback. No reload: the callback is authoritative.
func (m *Model) removeCard(postID string) {
	for i, c := range m.cards {
		if c.ID() != postID {
			continue
		}
		c.Close()
		m.lock.Release(postID)
		m.cards = append(m.cards[:i], m.cards[i+1:]...)
		if m.selected >= len(m.cards) && m.selected > 0 {
			m.selected--
		}
		m.logger.Info("post removed", "post", postID)
		if m.onPostDeleted != nil {
			m.onPostDeleted(postID)
		}
		return
	}
}

// syncLock keeps the scroll lock matched to overlay state after any card
// update, so the lock is released on every exit path.
func (m *Model) syncLock() {
	for _, c := range m.cards {
		if c.Expanded() {
			m.lock.Acquire(c.ID())
			return
		}
	}
	if m.lock.Locked() {
		m.lock.Release(m.lock.Holder())
	}
	m.layout()
}

// layout recomputes each card's top row so pointer regions track card
// positions.
func (m *Model) layout() {
	y := 0
	for _, c := range m.cards {
		c.SetOrigin(y)
		y += lipgloss.Height(c.View())
	}
}

// Len returns the number of mounted cards.
func (m *Model) Len() int { return len(m.cards) }
