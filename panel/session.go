package panel

// Session is the active pointer interaction: Idle, Dragging or Resizing.
// Holding exactly one value makes a simultaneous drag and resize
// unrepresentable.
type Session interface {
	session()
}

// Idle means no pointer interaction is in progress.
type Idle struct{}

// Dragging moves the panel. Offset is the pointer position relative to the
// panel's top-left corner when the drag started.
type Dragging struct {
	Offset Point
}

// Resizing changes the panel size along Edges.
type Resizing struct {
	Edges Edge
}

func (Idle) session()     {}
func (Dragging) session() {}
func (Resizing) session() {}
