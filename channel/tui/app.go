package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/logger"
	"github.com/linanwx/helpdock/panel"
	"github.com/linanwx/helpdock/widget"
)

const defaultToggleKey = "ctrl+@"

// Options configures the App.
type Options struct {
	Title     string
	ToggleKey string // key string as reported by bubbletea, e.g. "ctrl+@" or "f2"
	PanelSize panel.Size
	Limits    panel.Limits
	Theme     chatmd.Theme
	LogLines  int
}

// App is the root bubbletea model: the log view as the page, the toggle
// affordance, and the floating chat panel.
type App struct {
	ctx  context.Context
	ctrl *widget.Controller
	opts Options

	logPanel   Panel
	transcript *TranscriptPanel
	input      *InputPanel
	geom       *panel.Geometry // nil until the first window size

	width, height int
	sending       bool // a send command has been issued and not yet finished
}

// NewApp creates the root TUI model for ctrl. Background sends and resets
// run with ctx.
func NewApp(ctx context.Context, ctrl *widget.Controller, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "Assistant"
	}
	if opts.ToggleKey == "" {
		opts.ToggleKey = defaultToggleKey
	}
	if opts.Limits == (panel.Limits{}) {
		opts.Limits = panel.Limits{MinWidth: 30, MinHeight: 10, ViewportMargin: 2, AnchorInset: 1}
	}
	if opts.PanelSize == (panel.Size{}) {
		opts.PanelSize = panel.Size{Width: 48, Height: 20}
	}
	m := &App{
		ctx:        ctx,
		ctrl:       ctrl,
		opts:       opts,
		logPanel:   NewLogPanel(opts.LogLines),
		transcript: NewTranscriptPanel(opts.Theme),
		input:      NewInputPanel("› ", "Type your question..."),
	}
	m.transcript.SetMessages(ctrl.Transcript())
	return m
}

func (m *App) Init() tea.Cmd {
	if m.ctrl.PanelVisible() {
		return m.input.Focus()
	}
	return nil
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case InputSubmitMsg:
		return m, m.send(msg.Text)

	case sendDoneMsg:
		m.sending = false
		m.transcript.SetMessages(m.ctrl.Transcript())
		return m, nil

	case TranscriptChangedMsg, resetDoneMsg:
		m.transcript.SetMessages(m.ctrl.Transcript())
		return m, nil

	case LogLineMsg:
		_, cmd := m.logPanel.Update(msg)
		return m, cmd

	default:
		// Cursor blink and friends.
		_, cmd := m.input.Update(msg)
		return m, cmd
	}
}

func (m *App) View() string {
	if m.width == 0 || m.height == 0 || m.geom == nil {
		return "initializing..."
	}

	hint := hintStyle.Render("helpdock · " + m.opts.ToggleKey + " toggle assistant · ctrl+c quit")
	screen := canvas(hint+"\n"+m.logPanel.View(), m.width, m.height)

	if m.ctrl.PanelVisible() {
		r := m.geom.Rect()
		chrome := renderPanel(r, m.opts.Title, m.transcript.View(), m.input.View(), m.geom.TransitionsSuppressed())
		screen = overlay(screen, chrome, r.X, r.Y)
	} else {
		label := toggleLabel(m.opts.Title, m.ctrl.Visibility() == widget.Minimized)
		r := m.toggleRect()
		screen = overlay(screen, []string{toggleStyle.Render(label)}, r.X, r.Y)
	}
	return strings.Join(screen, "\n")
}

func (m *App) resize(width, height int) {
	m.width, m.height = width, height
	if m.geom == nil {
		m.geom = panel.New(panel.Size{Width: width, Height: height}, m.opts.PanelSize, m.opts.Limits)
	} else {
		m.geom.SetViewport(width, height)
	}
	m.logPanel.SetSize(width, max(height-1, 1))
	m.layoutPanel()
}

// layoutPanel sizes the panel's parts to the current geometry.
func (m *App) layoutPanel() {
	if m.geom == nil {
		return
	}
	r := m.geom.Rect()
	inner := max(r.Width-2, 1)
	m.transcript.SetSize(inner, transcriptHeight(r.Height))
	m.input.SetSize(inner, 1)
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); {
	case key == "ctrl+c":
		return tea.Quit
	case key == m.opts.ToggleKey:
		return m.apply(m.ctrl.Toggle())
	case key == "esc" && m.ctrl.PanelVisible():
		return m.apply(m.ctrl.Close())
	}

	if !m.ctrl.PanelVisible() {
		_, cmd := m.logPanel.Update(msg)
		return cmd
	}
	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		_, cmd := m.transcript.Update(msg)
		return cmd
	}
	_, cmd := m.input.Update(msg)
	return cmd
}

func (m *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.geom == nil {
		return nil
	}
	p := panel.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionRelease:
		if m.geom.End() {
			m.layoutPanel()
		}
		return nil

	case tea.MouseActionMotion:
		if m.geom.Move(m.pointerFor(p)) {
			m.layoutPanel()
		}
		return nil

	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			return m.scroll(msg, p)
		}
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.press(p)
	}
	return nil
}

func (m *App) press(p panel.Point) tea.Cmd {
	if !m.ctrl.PanelVisible() {
		if m.toggleRect().Contains(p) {
			return m.apply(m.ctrl.Toggle())
		}
		return nil
	}

	hit := hitPanel(m.geom.Rect(), p)
	switch hit.Target {
	case panel.TargetControl:
		return m.activate(hit.control)
	case panel.TargetHeader, panel.TargetHandle:
		m.geom.PointerDown(hit.Hit, p)
		return nil
	}
	if hit.input {
		return m.input.Focus()
	}
	return nil
}

// pointerFor maps a pointer cell to the edge it stands for. The east and
// south handles sit on the last column and row, one cell inside the edge.
func (m *App) pointerFor(p panel.Point) panel.Point {
	rs, ok := m.geom.Session().(panel.Resizing)
	if !ok {
		return p
	}
	if rs.Edges.Has(panel.East) {
		p.X++
	}
	if rs.Edges.Has(panel.South) {
		p.Y++
	}
	return p
}

func (m *App) scroll(msg tea.MouseMsg, p panel.Point) tea.Cmd {
	if m.ctrl.PanelVisible() && m.geom.Rect().Contains(p) {
		_, cmd := m.transcript.Update(msg)
		return cmd
	}
	_, cmd := m.logPanel.Update(msg)
	return cmd
}

func (m *App) activate(c control) tea.Cmd {
	logger.Debug("panel control pressed", "control", c.String())
	switch c {
	case controlMinimize:
		return m.apply(m.ctrl.Minimize())
	case controlClose:
		return m.apply(m.ctrl.Close())
	case controlReset:
		return m.reset()
	}
	return nil
}

// apply follows a visibility transition with the matching focus change.
func (m *App) apply(t widget.Transition) tea.Cmd {
	if t.Changed() {
		logger.Debug("widget visibility changed", "from", t.From.String(), "to", t.To.String())
	}
	if t.To != widget.Open {
		m.input.Blur()
		return nil
	}
	m.transcript.SetMessages(m.ctrl.Transcript())
	if t.FocusInput {
		return m.input.Focus()
	}
	return nil
}

// send starts a request for text. While another send is in flight the draft
// stays in the input.
func (m *App) send(text string) tea.Cmd {
	if m.sending || m.ctrl.Sending() {
		return nil
	}
	m.sending = true
	m.input.Reset()
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return sendDoneMsg{accepted: ctrl.SendMessage(ctx, text)}
	}
}

func (m *App) reset() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return resetDoneMsg{err: ctrl.ResetSession(ctx)}
	}
}

func (m *App) toggleRect() panel.Rect {
	label := toggleLabel(m.opts.Title, m.ctrl.Visibility() == widget.Minimized)
	return toggleRect(label, panel.Size{Width: m.width, Height: m.height}, m.opts.Limits.AnchorInset)
}
