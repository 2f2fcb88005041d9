package channel

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linanwx/helpdock/channel/tui"
	"github.com/linanwx/helpdock/widget"
)

type nopModel struct{}

func (nopModel) Init() tea.Cmd                       { return nil }
func (nopModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return nopModel{}, nil }
func (nopModel) View() string                        { return "" }

func TestLogWriterNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	// The program is never run, so nothing drains its queue.
	program := tea.NewProgram(nopModel{}, tea.WithContext(ctx), tea.WithInput(nil), tea.WithOutput(io.Discard))
	w := newLogWriter(program)

	done := make(chan struct{})
	go func() {
		line := []byte(strings.Repeat("x", 20) + "\n")
		for i := 0; i < tuiLogBufferSize*4; i++ {
			w.Write(line)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Write blocked with a stalled program")
	}

	cancel()
	w.Close()
	if n, err := w.Write([]byte("after close\n")); err != nil || n != len("after close\n") {
		t.Fatalf("Write after Close = %d, %v", n, err)
	}
}

func TestNewHostPicksPlainForCustomIO(t *testing.T) {
	ctrl := widget.New(&scriptClient{}, widget.Options{})
	host := NewHost(ctrl, Options{In: strings.NewReader(""), Out: io.Discard, TUI: tui.Options{Title: "x"}})
	if host.Name() != "plain" {
		t.Fatalf("host = %s", host.Name())
	}
}
