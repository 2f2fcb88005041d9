package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/linanwx/helpdock/panel"
)

// Rows of panel chrome around the transcript: top border, header,
// separator, separator, input, bottom border.
const chromeRows = 6

const resetStyle = "\x1b[0m"

var (
	panelBorder       = lipgloss.RoundedBorder()
	borderStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	activeBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	titleStyle        = lipgloss.NewStyle().Bold(true)
	controlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	toggleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("63")).Bold(true)
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type control int

const (
	controlNone control = iota
	controlMinimize
	controlReset
	controlClose
)

func (c control) String() string {
	switch c {
	case controlMinimize:
		return "minimize"
	case controlReset:
		return "reset"
	case controlClose:
		return "close"
	default:
		return "none"
	}
}

// Header control glyphs, drawn at panel columns width-6, width-4, width-2.
var controlGlyphs = [...]struct {
	control control
	glyph   string
	offset  int
}{
	{controlMinimize, "−", 6},
	{controlReset, "↻", 4},
	{controlClose, "×", 2},
}

type hitResult struct {
	panel.Hit
	control control
	input   bool // the input row
}

// hitPanel classifies a pointer position against a panel drawn at r. The
// border corners are the resize handles, the top border and header row drag
// the panel.
func hitPanel(r panel.Rect, p panel.Point) hitResult {
	if !r.Contains(p) {
		return hitResult{}
	}
	x, y := p.X-r.X, p.Y-r.Y
	lastX, lastY := r.Width-1, r.Height-1

	var edges panel.Edge
	switch y {
	case 0:
		edges |= panel.North
	case lastY:
		edges |= panel.South
	}
	switch x {
	case 0:
		edges |= panel.West
	case lastX:
		edges |= panel.East
	}
	if edges.Corner() {
		return hitResult{Hit: panel.Hit{Target: panel.TargetHandle, Edges: edges}}
	}

	if y == 1 {
		for _, c := range controlGlyphs {
			if x == r.Width-c.offset {
				return hitResult{Hit: panel.Hit{Target: panel.TargetControl}, control: c.control}
			}
		}
	}
	if y <= 1 {
		return hitResult{Hit: panel.Hit{Target: panel.TargetHeader}}
	}
	return hitResult{input: y == lastY-1}
}

// transcriptHeight is the number of transcript rows in a panel of height h.
func transcriptHeight(h int) int { return max(h-chromeRows, 1) }

// renderPanel draws the panel frame around its parts. The result has exactly
// r.Height lines, each exactly r.Width cells wide.
func renderPanel(r panel.Rect, title, transcript, input string, active bool) []string {
	bs := borderStyle
	if active {
		bs = activeBorderStyle
	}
	inner := max(r.Width-2, 0)
	side := func(content string) string {
		return bs.Render(panelBorder.Left) + fit(content, inner) + bs.Render(panelBorder.Right)
	}
	rule := bs.Render(panelBorder.Left + strings.Repeat(panelBorder.Top, inner) + panelBorder.Right)

	header := fit(" "+titleStyle.Render(title), max(inner-5, 0))
	for i, c := range controlGlyphs {
		if i > 0 {
			header += " "
		}
		header += controlStyle.Render(c.glyph)
	}

	lines := make([]string, 0, r.Height)
	lines = append(lines, bs.Render(panelBorder.TopLeft+strings.Repeat(panelBorder.Top, inner)+panelBorder.TopRight))
	lines = append(lines, side(header))
	lines = append(lines, rule)

	rows := strings.Split(transcript, "\n")
	th := transcriptHeight(r.Height)
	for i := 0; i < th; i++ {
		row := ""
		if i < len(rows) {
			row = rows[i]
		}
		lines = append(lines, side(row))
	}

	lines = append(lines, rule)
	lines = append(lines, side(input))
	lines = append(lines, bs.Render(panelBorder.BottomLeft+strings.Repeat(panelBorder.Bottom, inner)+panelBorder.BottomRight))
	if len(lines) > r.Height {
		lines = lines[:r.Height]
	}
	return lines
}

// toggleLabel is the text of the toggle affordance.
func toggleLabel(title string, minimized bool) string {
	if minimized {
		return " ▴ " + title + " "
	}
	return " 💬 " + title + " "
}

// toggleRect places the toggle affordance in the bottom-right corner.
func toggleRect(label string, viewport panel.Size, inset int) panel.Rect {
	w := ansi.StringWidth(label)
	return panel.Rect{
		X:      max(viewport.Width-w-inset, 0),
		Y:      max(viewport.Height-1-inset, 0),
		Width:  w,
		Height: 1,
	}
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	if n := ansi.StringWidth(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

// canvas normalises text into h lines of exactly w cells.
func canvas(s string, w, h int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = fit(line, w)
	}
	return out
}

// overlay draws fg over bg with its top-left corner at (x, y), clipping to
// the background.
func overlay(bg, fg []string, x, y int) []string {
	if len(bg) == 0 {
		return bg
	}
	width := ansi.StringWidth(bg[0])
	out := append([]string(nil), bg...)
	for i, line := range fg {
		row := y + i
		if row < 0 || row >= len(out) || x >= width {
			continue
		}
		line = ansi.Truncate(line, width-x, "")
		w := ansi.StringWidth(line)
		left := ansi.Truncate(out[row], x, "")
		right := ansi.TruncateLeft(out[row], x+w, "")
		out[row] = left + resetStyle + line + resetStyle + right
	}
	return out
}
