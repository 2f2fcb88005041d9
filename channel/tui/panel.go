// Package tui is the terminal host for the chat widget: a log view stands in
// for the host page, and the chat panel floats over it where the user drags
// it.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Panel is a composable TUI region with its own state, update logic, and view.
// The root App model orchestrates panels without knowing their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// LogLineMsg carries a single log line from the logger writer.
type LogLineMsg struct{ Line string }

// TranscriptChangedMsg asks the App to re-read the widget transcript.
type TranscriptChangedMsg struct{}

// InputSubmitMsg is emitted when the user presses Enter in the input panel.
type InputSubmitMsg struct{ Text string }

// sendDoneMsg and resetDoneMsg report the end of a background request.
type sendDoneMsg struct{ accepted bool }

type resetDoneMsg struct{ err error }
