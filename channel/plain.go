package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/logger"
	"github.com/linanwx/helpdock/widget"
)

const plainPrompt = "you> "

// plainHost reads one message per line and prints each reply (for non-TTY).
type plainHost struct {
	ctrl  *widget.Controller
	theme chatmd.Theme
	in    io.Reader
	out   io.Writer
	width int
}

func newPlainHost(ctrl *widget.Controller, opts Options) *plainHost {
	h := &plainHost{ctrl: ctrl, theme: opts.Theme, in: opts.In, out: opts.Out, width: opts.Width}
	if h.in == nil {
		h.in = os.Stdin
	}
	if h.out == nil {
		h.out = os.Stdout
	}
	return h
}

func (h *plainHost) Name() string { return "plain" }

func (h *plainHost) Run(ctx context.Context) error {
	logger.Info("widget host started", "host", h.Name())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	if !h.ctrl.PanelVisible() {
		h.ctrl.Toggle()
	}
	h.printLast()
	for {
		fmt.Fprint(h.out, plainPrompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return nil
		case err := <-readErr:
			fmt.Fprintln(h.out)
			return err
		case line := <-lines:
			if done := h.handle(ctx, strings.TrimSpace(line)); done {
				fmt.Fprintln(h.out, "Goodbye!")
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether the user quit.
func (h *plainHost) handle(ctx context.Context, text string) bool {
	switch text {
	case "":
		return false
	case "exit", "quit", "/exit", "/quit":
		return true
	case "/reset":
		if err := h.ctrl.ResetSession(ctx); err != nil {
			fmt.Fprintf(h.out, "reset failed: %v\n", err)
			return false
		}
		h.printLast()
		return false
	}

	if h.ctrl.SendMessage(ctx, text) {
		h.printLast()
	}
	return false
}

func (h *plainHost) printLast() {
	msgs := h.ctrl.Transcript()
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, FormatMessage(msgs[len(msgs)-1], h.theme, h.width))
	fmt.Fprintln(h.out)
}

// FormatMessage renders one transcript entry for a terminal.
func FormatMessage(m widget.Message, theme chatmd.Theme, width int) string {
	if m.Role == widget.RoleUser {
		return chatmd.TerminalSafe(m.Content.PlainText())
	}
	return chatmd.RenderTerminal(m.Content, theme, width)
}
