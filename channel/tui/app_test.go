package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/panel"
	"github.com/linanwx/helpdock/widget"
)

type stubClient struct {
	reply  string
	resets int
}

func (s *stubClient) Chat(ctx context.Context, message string) (string, error) {
	return s.reply, nil
}

func (s *stubClient) Reset(ctx context.Context) error {
	s.resets++
	return nil
}

func newTestApp(t *testing.T, client *stubClient) (*App, *widget.Controller) {
	t.Helper()
	ctrl := widget.New(client, widget.Options{})
	app := NewApp(context.Background(), ctrl, Options{
		Title:     "Help",
		PanelSize: panel.Size{Width: 40, Height: 16},
		Limits:    panel.Limits{MinWidth: 30, MinHeight: 10, ViewportMargin: 2, AnchorInset: 1},
		Theme:     chatmd.DefaultTheme(),
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, ctrl
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// run executes cmd and feeds its message back, the way the bubbletea loop
// would for a single command.
func run(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		app.Update(msg)
	}
}

func TestViewBeforeSize(t *testing.T) {
	ctrl := widget.New(&stubClient{}, widget.Options{})
	app := NewApp(context.Background(), ctrl, Options{})
	if got := app.View(); got != "initializing..." {
		t.Fatalf("View = %q", got)
	}
}

func TestToggleKeyOpensPanel(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{})
	if !strings.Contains(ansi.Strip(app.View()), "💬 Help") {
		t.Fatal("toggle affordance missing while hidden")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlAt})
	if !ctrl.PanelVisible() || !app.input.Focused() {
		t.Fatalf("visibility = %v, focused = %v", ctrl.Visibility(), app.input.Focused())
	}
	view := ansi.Strip(app.View())
	if strings.Contains(view, "💬 Help") {
		t.Fatal("toggle affordance shown together with the panel")
	}
	if !strings.Contains(view, "Help") || !strings.Contains(view, "×") {
		t.Fatal("panel header missing")
	}
	lines := strings.Split(app.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 100 {
			t.Fatalf("line %d is %d cells wide, want 100", i, w)
		}
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlAt})
	if ctrl.PanelVisible() || app.input.Focused() {
		t.Fatal("second toggle did not hide the panel")
	}
}

func TestClickToggleAffordance(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{})
	r := app.toggleRect()
	app.Update(press(r.X+1, r.Y))
	if !ctrl.PanelVisible() {
		t.Fatal("clicking the toggle did not open the panel")
	}
}

func TestHeaderDragMovesPanel(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{})
	ctrl.Toggle()
	start := app.geom.Rect()

	app.Update(press(start.X+5, start.Y+1))
	if _, ok := app.geom.Session().(panel.Dragging); !ok {
		t.Fatalf("session = %T, want Dragging", app.geom.Session())
	}
	app.Update(motion(start.X-15, start.Y-5))
	app.Update(release(0, 0))

	got := app.geom.Rect()
	if got.X != start.X-20 || got.Y != start.Y-6 {
		t.Fatalf("rect = %+v, want moved from %+v by (-20,-6)", got, start)
	}
	if _, ok := app.geom.Session().(panel.Idle); !ok {
		t.Fatal("session not idle after release")
	}
}

func TestCornerResize(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{})
	ctrl.Toggle()
	app.Update(press(5, 5)) // not on the panel
	start := app.geom.Rect()

	app.Update(press(start.Right()-1, start.Bottom()-1))
	app.Update(motion(start.Right()-1, start.Bottom()-1))
	if got := app.geom.Rect(); got != start {
		t.Fatalf("grabbing the handle changed the rect: %+v -> %+v", start, got)
	}

	// The panel sits one cell from the corner, so growing south-east is
	// limited by the screen; grow north-west instead.
	app.Update(release(0, 0))
	app.Update(press(start.X, start.Y))
	app.Update(motion(start.X-4, start.Y-3))
	app.Update(release(0, 0))

	got := app.geom.Rect()
	if got.Width != start.Width+4 || got.Height != start.Height+3 {
		t.Fatalf("rect = %+v, want grown by (4,3) from %+v", got, start)
	}
	if got.Right() != start.Right() || got.Bottom() != start.Bottom() {
		t.Fatalf("opposite corner moved: %+v -> %+v", start, got)
	}
	if app.transcript.viewport.Height != transcriptHeight(got.Height) {
		t.Fatal("transcript not relaid out after resize")
	}
}

func TestHeaderControls(t *testing.T) {
	client := &stubClient{}
	app, ctrl := newTestApp(t, client)
	ctrl.Toggle()
	r := app.geom.Rect()

	app.Update(press(r.X+r.Width-6, r.Y+1))
	if ctrl.Visibility() != widget.Minimized {
		t.Fatalf("visibility = %v, want minimized", ctrl.Visibility())
	}
	if !strings.Contains(ansi.Strip(app.View()), "▴ Help") {
		t.Fatal("minimized toggle label missing")
	}

	ctrl.Toggle()
	_, cmd := app.Update(press(r.X+r.Width-4, r.Y+1))
	run(app, cmd)
	if client.resets != 1 {
		t.Fatalf("resets = %d, want 1", client.resets)
	}

	app.Update(press(r.X+r.Width-2, r.Y+1))
	if ctrl.Visibility() != widget.Hidden {
		t.Fatalf("visibility = %v, want hidden", ctrl.Visibility())
	}
}

func TestSubmitSendsMessage(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{reply: "**Sure**, here you go"})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlAt})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("help me")})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no submit command")
	}
	submit := cmd()
	if got, ok := submit.(InputSubmitMsg); !ok || got.Text != "help me" {
		t.Fatalf("submit msg = %#v", submit)
	}
	_, cmd = app.Update(submit)
	run(app, cmd)

	msgs := ctrl.Transcript()
	if len(msgs) != 3 || msgs[2].Raw != "**Sure**, here you go" {
		t.Fatalf("transcript = %+v", msgs)
	}
	if !strings.Contains(ansi.Strip(app.View()), "Sure, here you go") {
		t.Fatal("reply not rendered in the panel")
	}
}

func TestSubmitWhileSendingKeepsDraft(t *testing.T) {
	app, ctrl := newTestApp(t, &stubClient{reply: "done"})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlAt})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("first")})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, pending := app.Update(cmd())
	if pending == nil {
		t.Fatal("first submit was not sent")
	}
	if got := app.input.Value(); got != "" {
		t.Fatalf("draft after accepted send = %q, want empty", got)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("second")})
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, next := app.Update(cmd()); next != nil {
		t.Fatal("second submit started a send while the first was in flight")
	}
	if got := app.input.Value(); got != "second" {
		t.Fatalf("draft after dropped submit = %q, want %q", got, "second")
	}

	run(app, pending)
	if len(ctrl.Transcript()) != 3 {
		t.Fatalf("transcript = %+v", ctrl.Transcript())
	}
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, next := app.Update(cmd()); next == nil {
		t.Fatal("draft could not be sent after the first send finished")
	}
}

func TestLogPanelKeepsNewestLines(t *testing.T) {
	p := NewLogPanel(3)
	p.SetSize(40, 5)
	for _, line := range []string{"one", "two", "three", "four", "five\n"} {
		p.Update(LogLineMsg{Line: line})
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	view := ansi.Strip(p.View())
	if strings.Contains(view, "two") || !strings.Contains(view, "five") {
		t.Fatalf("view = %q", view)
	}
}

func TestHitPanel(t *testing.T) {
	r := panel.Rect{X: 10, Y: 5, Width: 40, Height: 16}
	tests := []struct {
		name    string
		p       panel.Point
		target  panel.Target
		edges   panel.Edge
		control control
		input   bool
	}{
		{"outside", panel.Point{X: 0, Y: 0}, panel.TargetNone, 0, controlNone, false},
		{"nw corner", panel.Point{X: 10, Y: 5}, panel.TargetHandle, panel.NorthWest, controlNone, false},
		{"ne corner", panel.Point{X: 49, Y: 5}, panel.TargetHandle, panel.NorthEast, controlNone, false},
		{"sw corner", panel.Point{X: 10, Y: 20}, panel.TargetHandle, panel.SouthWest, controlNone, false},
		{"se corner", panel.Point{X: 49, Y: 20}, panel.TargetHandle, panel.SouthEast, controlNone, false},
		{"top border", panel.Point{X: 20, Y: 5}, panel.TargetHeader, 0, controlNone, false},
		{"header", panel.Point{X: 20, Y: 6}, panel.TargetHeader, 0, controlNone, false},
		{"minimize", panel.Point{X: 44, Y: 6}, panel.TargetControl, 0, controlMinimize, false},
		{"reset", panel.Point{X: 46, Y: 6}, panel.TargetControl, 0, controlReset, false},
		{"close", panel.Point{X: 48, Y: 6}, panel.TargetControl, 0, controlClose, false},
		{"between controls", panel.Point{X: 45, Y: 6}, panel.TargetHeader, 0, controlNone, false},
		{"body", panel.Point{X: 20, Y: 10}, panel.TargetNone, 0, controlNone, false},
		{"input row", panel.Point{X: 20, Y: 19}, panel.TargetNone, 0, controlNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hitPanel(r, tt.p)
			if got.Target != tt.target || got.Edges != tt.edges || got.control != tt.control || got.input != tt.input {
				t.Fatalf("hitPanel = %+v", got)
			}
		})
	}
}

func TestRenderPanelDimensions(t *testing.T) {
	r := panel.Rect{Width: 32, Height: 12}
	lines := renderPanel(r, "Help", "one\ntwo", "› hi", false)
	if len(lines) != 12 {
		t.Fatalf("rendered %d lines, want 12", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 32 {
			t.Fatalf("line %d is %d wide: %q", i, w, ansi.Strip(line))
		}
	}
	header := []rune(ansi.Strip(lines[1]))
	if string(header[32-6]) != "−" || string(header[32-4]) != "↻" || string(header[32-2]) != "×" {
		t.Fatalf("controls misplaced: %q", string(header))
	}
}

func TestOverlay(t *testing.T) {
	bg := canvas("abcdefghij\nklmnopqrst\nuvwxyz", 10, 3)
	got := overlay(bg, []string{"XY", "ZW"}, 7, 1)
	want := []string{"abcdefghij", "klmnopqXYt", "uvwxyz ZW "}
	for i := range want {
		if s := ansi.Strip(got[i]); s != want[i] {
			t.Fatalf("row %d = %q, want %q", i, s, want[i])
		}
	}

	clipped := overlay(bg, []string{"123456"}, 8, 0)
	if s := ansi.Strip(clipped[0]); s != "abcdefgh12" {
		t.Fatalf("clipped row = %q", s)
	}
}
