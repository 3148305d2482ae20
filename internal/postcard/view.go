package postcard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"glimpse/internal/api"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	activeToggleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)

	idleToggleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)

	confirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCommentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237"))
)

var toggleGlyphs = map[api.Kind][2]string{
	api.KindLike:  {"♥", "♡"},
	api.KindShare: {"➤", "➣"},
	api.KindSave:  {"■", "□"},
}

func (m *Model) View() string {
	if m.showAllComments {
		return cardStyle.Width(m.contentWidth()).Render(m.viewAllComments())
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewImage())
	b.WriteString("\n")
	b.WriteString(m.viewActions())
	b.WriteString("\n")
	b.WriteString(m.viewCounts())
	if m.post.Description != "" {
		b.WriteString("\n")
		b.WriteString(authorStyle.Render(m.post.CreatedBy.Username) + " " + m.post.Description)
	}
	b.WriteString(m.viewCommentPreview())
	b.WriteString("\n")
	b.WriteString(m.viewDraft())
	if line := m.viewStatusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return cardStyle.Width(m.contentWidth()).Render(b.String())
}

func (m *Model) contentWidth() int {
	return max(m.width-2, 30)
}

func (m *Model) viewHeader() string {
	left := authorStyle.Render(m.post.CreatedBy.Username) +
		timeStyle.Render(" • "+humanize.Time(m.post.CreatedAt))
	if !m.isPostAuthor() {
		return left
	}
	right := mutedStyle.Render("⋯ m")
	if m.showOptions {
		right = menuStyle.Render("d  Delete Post")
	}
	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) viewImage() string {
	if m.post.ImageURL == "" {
		return mutedStyle.Render("No image available")
	}
	return mutedStyle.Render("[image] " + m.post.ImageURL)
}

func (m *Model) viewActions() string {
	parts := make([]string, 0, 3)
	for _, kind := range api.Kinds {
		t := m.toggles[kind]
		glyphs := toggleGlyphs[kind]
		if t.Active {
			parts = append(parts, activeToggleStyle.Render(glyphs[0]))
		} else {
			parts = append(parts, idleToggleStyle.Render(glyphs[1]))
		}
	}
	return strings.Join(parts, "  ") + mutedStyle.Render("   l/s/b")
}

func (m *Model) viewCounts() string {
	likes := m.toggles[api.KindLike].Count
	saves := m.toggles[api.KindSave].Count
	return fmt.Sprintf("%d likes   %d saves", likes, saves)
}

func (m *Model) viewCommentPreview() string {
	var b strings.Builder
	for _, c := range m.roster.Preview(previewLimit) {
		b.WriteString("\n")
		b.WriteString(authorStyle.Render(c.CreatedBy.Username+": ") + c.Text)
	}
	if m.roster.HasOverflow(previewLimit) {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("View all %d comments (a)", m.roster.Len())))
	}
	return b.String()
}

func (m *Model) viewAllComments() string {
	var b strings.Builder
	b.WriteString(authorStyle.Render(m.post.CreatedBy.Username) +
		mutedStyle.Render(fmt.Sprintf("  %d comments", m.roster.Len())))
	if m.roster.Len() == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No comments yet"))
	}
	for i, c := range m.roster.All() {
		line := authorStyle.Render(c.CreatedBy.Username+": ") + c.Text
		if m.isCommentAuthor(c) {
			line += mutedStyle.Render("  (x to delete)")
		}
		if i == m.selComment {
			line = selectedCommentStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewDraft())
	if line := m.viewStatusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("j/k navigate · c comment · esc close"))
	return b.String()
}

func (m *Model) viewDraft() string {
	if m.draft.Focused() {
		return m.draft.View()
	}
	if v := m.draft.Value(); v != "" {
		return mutedStyle.Render("Draft: ") + v
	}
	return mutedStyle.Render("Add a comment... (c)")
}

func (m *Model) viewStatusLine() string {
	if m.gate.Awaiting() {
		kind, _ := m.gate.Target()
		return confirmStyle.Render(fmt.Sprintf("Delete %s? (y/n)", kind))
	}
	if m.note.text != "" {
		return noticeStyle.Render(m.note.text)
	}
	return ""
}
