package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultMaxLogLines = 1000

var logLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // dim gray

// LogPanel is the page behind the widget: the process log, newest at the
// bottom.
type LogPanel struct {
	viewport viewport.Model
	lines    []string
	maxLines int
}

// NewLogPanel creates a log panel keeping at most maxLines lines.
func NewLogPanel(maxLines int) *LogPanel {
	if maxLines <= 0 {
		maxLines = defaultMaxLogLines
	}
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &LogPanel{viewport: vp, maxLines: maxLines}
}

func (p *LogPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case LogLineMsg:
		line := strings.TrimRight(msg.Line, "\r\n")
		follow := p.viewport.AtBottom()
		p.lines = append(p.lines, logLineStyle.Render(line))
		if len(p.lines) > p.maxLines {
			p.lines = p.lines[len(p.lines)-p.maxLines:]
		}
		p.viewport.SetContent(strings.Join(p.lines, "\n"))
		if follow {
			p.viewport.GotoBottom()
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *LogPanel) View() string {
	return p.viewport.View()
}

func (p *LogPanel) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.GotoBottom()
}

// Len returns the number of buffered lines.
func (p *LogPanel) Len() int { return len(p.lines) }
