package chatmd

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme holds the terminal styles used by RenderTerminal.
type Theme struct {
	Strong    lipgloss.Style
	Emphasis  lipgloss.Style
	Code      lipgloss.Style
	Link      lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardMeta  lipgloss.Style
	CardURL   lipgloss.Style
	Labels    Labels
}

// DefaultTheme returns the built-in terminal theme.
func DefaultTheme() Theme {
	return Theme{
		Strong:    lipgloss.NewStyle().Bold(true),
		Emphasis:  lipgloss.NewStyle().Italic(true),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("1")).Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		CardMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CardURL:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
		Labels:    DefaultLabels(),
	}
}

// RenderTerminal renders content for a terminal. Inline text is wrapped to
// width (no wrapping when width <= 0) and video previews become boxed cards.
func RenderTerminal(c Content, theme Theme, width int) string {
	r := &termRenderer{theme: theme, width: width}
	r.inlines(c, lipgloss.NewStyle())
	r.flush()
	return strings.Join(r.blocks, "\n")
}

// TerminalSafe removes escape sequences and control characters from s so
// that service text cannot drive the terminal. Newlines and tabs are kept.
func TerminalSafe(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

type termRenderer struct {
	theme  Theme
	width  int
	line   strings.Builder
	blocks []string
	open   bool // line has content or an explicit break since the last flush
}

func (r *termRenderer) inlines(nodes []Node, style lipgloss.Style) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			r.line.WriteString(style.Render(TerminalSafe(n.Text)))
			r.open = true
		case KindLineBreak:
			r.line.WriteByte('\n')
			r.open = true
		case KindStrong:
			r.inlines(n.Children, style.Inherit(r.theme.Strong))
		case KindEmphasis:
			r.inlines(n.Children, style.Inherit(r.theme.Emphasis))
		case KindCode:
			r.inlines(n.Children, style.Inherit(r.theme.Code))
		case KindLink:
			r.line.WriteString(r.theme.Link.Render(linkMarker + " " + TerminalSafe(n.Text)))
			r.open = true
		case KindVideo:
			if n.Video == nil {
				continue
			}
			r.flush()
			r.blocks = append(r.blocks, r.card(*n.Video))
		}
	}
}

func (r *termRenderer) flush() {
	if !r.open {
		return
	}
	text := strings.TrimSuffix(r.line.String(), "\n")
	r.line.Reset()
	r.open = false
	if r.width > 0 {
		text = lipgloss.NewStyle().Width(r.width).Render(text)
	}
	r.blocks = append(r.blocks, text)
}

func (r *termRenderer) card(v VideoPreview) string {
	lines := make([]string, 0, 4)
	if v.Variant == Rich {
		if v.Title != "" {
			lines = append(lines, r.theme.CardTitle.Render(r.theme.Labels.Play+" "+TerminalSafe(v.Title)))
		}
		if v.Description != "" {
			lines = append(lines, r.theme.CardMeta.Render(TerminalSafe(v.Description)))
		}
	}
	lines = append(lines, r.theme.Labels.Watch, r.theme.CardURL.Render(TerminalSafe(v.URL)))

	style := r.theme.Card
	if r.width > 0 {
		inner := r.width - style.GetHorizontalBorderSize()
		if inner > 0 {
			style = style.Width(inner)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}
