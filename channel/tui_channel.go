package channel

import (
	"bytes"
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linanwx/helpdock/channel/tui"
	"github.com/linanwx/helpdock/logger"
	"github.com/linanwx/helpdock/widget"
)

const tuiLogBufferSize = 256

// tuiHost runs the widget inside a bubbletea program.
type tuiHost struct {
	ctrl *widget.Controller
	opts Options
}

func newTUIHost(ctrl *widget.Controller, opts Options) *tuiHost {
	return &tuiHost{ctrl: ctrl, opts: opts}
}

func (h *tuiHost) Name() string { return "tui" }

func (h *tuiHost) Run(ctx context.Context) error {
	app := tui.NewApp(ctx, h.ctrl, h.opts.TUI)
	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Redirect logger output to the TUI log panel.
	lw := newLogWriter(program)
	logger.Intercept(lw)
	defer func() {
		logger.Restore()
		lw.Close()
	}()

	// Program.Send blocks until the event loop takes the message, and the
	// hook can fire from inside Update, so never send inline.
	h.ctrl.SetOnChange(func() {
		go program.Send(tui.TranscriptChangedMsg{})
	})
	defer h.ctrl.SetOnChange(nil)

	logger.Info("widget host started", "host", h.Name())
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		// Cancelled from outside; not a UI failure.
		return nil
	}
	return err
}

// logWriter implements io.Writer and forwards each line to the TUI as a
// LogLineMsg. Writes never block: lines are queued and pumped into the
// program from a separate goroutine, and dropped when the queue is full.
type logWriter struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

func newLogWriter(program *tea.Program) *logWriter {
	w := &logWriter{
		lines: make(chan string, tuiLogBufferSize),
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case line := <-w.lines:
				program.Send(tui.LogLineMsg{Line: line})
			}
		}
	}()
	return w
}

func (w *logWriter) Write(p []byte) (int, error) {
	// Split on newlines in case a single write contains multiple lines.
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		select {
		case <-w.done:
			return len(p), nil
		case w.lines <- string(line):
		default:
		}
	}
	return len(p), nil
}

// Close stops the pump. Later writes are discarded.
func (w *logWriter) Close() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
