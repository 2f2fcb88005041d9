package widget

// Visibility is the display mode of the widget.
type Visibility int

const (
	// Hidden shows only the toggle affordance.
	Hidden Visibility = iota
	// Open shows the panel.
	Open
	// Minimized hides the panel but remembers that it was collapsed rather
	// than closed.
	Minimized
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Open:
		return "open"
	case Minimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// Transition is the outcome of a visibility operation.
type Transition struct {
	From, To   Visibility
	FocusInput bool // the host should focus the message input
}

// Changed reports whether the operation changed the visibility.
func (t Transition) Changed() bool { return t.From != t.To }

// Toggle opens a hidden or minimized panel and hides an open one.
func (c *Controller) Toggle() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.visibility {
	case Open:
		return c.transitionLocked(Hidden)
	default:
		return c.transitionLocked(Open)
	}
}

// Minimize collapses an open panel, or restores a minimized one. It does
// nothing while hidden.
func (c *Controller) Minimize() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.visibility {
	case Open:
		return c.transitionLocked(Minimized)
	case Minimized:
		return c.transitionLocked(Open)
	default:
		return c.transitionLocked(c.visibility)
	}
}

// Close hides the panel. Close always lands in Hidden.
func (c *Controller) Close() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitionLocked(Hidden)
}

// Visibility returns the current display mode.
func (c *Controller) Visibility() Visibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility
}

// PanelVisible reports whether the panel is shown.
func (c *Controller) PanelVisible() bool { return c.Visibility() == Open }

// ToggleVisible reports whether the toggle affordance is shown, which is
// whenever the panel is not.
func (c *Controller) ToggleVisible() bool { return c.Visibility() != Open }

func (c *Controller) transitionLocked(to Visibility) Transition {
	t := Transition{From: c.visibility, To: to, FocusInput: to == Open && c.visibility != Open}
	c.visibility = to
	return t
}
