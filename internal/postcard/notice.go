package postcard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeTTL = 3 * time.Second

// notice is the transient, self-dismissing message line (the toast). The
// generation counter guards against a stale expiry tick clearing a newer
// notice that replaced this one.
type notice struct {
	text string
	gen  int
}

func (n *notice) show(postID, text string) tea.Cmd {
	n.text = text
	n.gen++
	gen := n.gen
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{postID: postID, gen: gen}
	})
}

func (n *notice) expire(gen int) {
	if gen == n.gen {
		n.text = ""
	}
}
