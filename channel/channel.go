// Package channel hosts the chat widget on a terminal: a full-screen TUI
// when attached to one, a line-oriented prompt otherwise.
package channel

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/linanwx/helpdock/channel/tui"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/widget"
)

// Host drives a widget controller from user input until the user quits.
type Host interface {
	// Name returns the host name ("tui" or "plain").
	Name() string

	// Run blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
}

// Options configures a host.
type Options struct {
	TUI   tui.Options
	Theme chatmd.Theme
	In    io.Reader // defaults to os.Stdin
	Out   io.Writer // defaults to os.Stdout
	Width int       // plain host wrap width, 0 = no wrapping
}

// NewHost returns the TUI host when stdin and stdout are terminals and the
// plain host otherwise.
func NewHost(ctrl *widget.Controller, opts Options) Host {
	if opts.In == nil && opts.Out == nil && term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()) {
		return newTUIHost(ctrl, opts)
	}
	return newPlainHost(ctrl, opts)
}
