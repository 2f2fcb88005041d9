package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// InputPanel is the single-line message box at the bottom of the chat panel.
type InputPanel struct {
	input         textinput.Model
	width, height int
}

// NewInputPanel creates an unfocused input panel with the given prompt.
func NewInputPanel(prompt, placeholder string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	return &InputPanel{input: ti}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	if !p.input.Focused() {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		text := strings.TrimSpace(p.input.Value())
		if text == "" {
			return p, nil
		}
		return p, func() tea.Msg { return InputSubmitMsg{Text: text} }
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width-ansi.StringWidth(p.input.Prompt)-1, 1)
}

// Focus gives the input keyboard focus.
func (p *InputPanel) Focus() tea.Cmd { return p.input.Focus() }

// Blur removes keyboard focus.
func (p *InputPanel) Blur() { p.input.Blur() }

// Focused reports whether the input has focus.
func (p *InputPanel) Focused() bool { return p.input.Focused() }

// Reset clears the draft.
func (p *InputPanel) Reset() { p.input.Reset() }

// Value returns the current draft.
func (p *InputPanel) Value() string { return p.input.Value() }
