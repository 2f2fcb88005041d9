package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/widget"
)

var (
	userMsgStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	userLabelStyle  = userMsgStyle.Bold(true)
	botLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	pendingMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// TranscriptPanel shows the widget transcript in a scrollable viewport.
type TranscriptPanel struct {
	viewport viewport.Model
	theme    chatmd.Theme
	messages []widget.Message
	width    int
}

// NewTranscriptPanel creates an empty transcript panel.
func NewTranscriptPanel(theme chatmd.Theme) *TranscriptPanel {
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &TranscriptPanel{viewport: vp, theme: theme}
}

// SetMessages replaces the rendered transcript and scrolls to the newest
// message.
func (p *TranscriptPanel) SetMessages(msgs []widget.Message) {
	p.messages = msgs
	p.render()
	p.viewport.GotoBottom()
}

func (p *TranscriptPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *TranscriptPanel) View() string {
	return p.viewport.View()
}

func (p *TranscriptPanel) SetSize(width, height int) {
	resized := width != p.width
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	if resized {
		p.render()
	}
	p.viewport.GotoBottom()
}

func (p *TranscriptPanel) render() {
	if p.width <= 0 {
		p.viewport.SetContent("")
		return
	}
	blocks := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		blocks = append(blocks, renderMessage(m, p.theme, p.width))
	}
	p.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func renderMessage(m widget.Message, theme chatmd.Theme, width int) string {
	switch {
	case m.Role == widget.RoleUser:
		body := lipgloss.NewStyle().Width(width).Render(chatmd.TerminalSafe(m.Content.PlainText()))
		return userLabelStyle.Render("you") + "\n" + userMsgStyle.Render(body)
	case m.Pending:
		return pendingMsgStyle.Render(chatmd.TerminalSafe(m.Content.PlainText()))
	default:
		return botLabelStyle.Render("assistant") + "\n" + chatmd.RenderTerminal(m.Content, theme, width)
	}
}
