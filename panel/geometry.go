package panel

import "github.com/linanwx/helpdock/logger"

// Geometry owns the panel's position and size and the pointer session that
// mutates them. It is not safe for concurrent use; hosts drive it from their
// single event loop.
type Geometry struct {
	limits   Limits
	viewport Size
	size     Size
	pos      *Point // nil while unset (anchored to the bottom-right corner)
	session  Session
}

// New creates a panel of the requested size in the given viewport. The size
// is clamped to the limits and the position starts unset.
func New(viewport, size Size, limits Limits) *Geometry {
	g := &Geometry{
		limits:   limits,
		viewport: viewport,
		session:  Idle{},
	}
	g.size = Size{Width: g.clampWidth(size.Width), Height: g.clampHeight(size.Height)}
	return g
}

// Limits returns the configured limits.
func (g *Geometry) Limits() Limits { return g.limits }

// Viewport returns the current viewport size.
func (g *Geometry) Viewport() Size { return g.viewport }

// Size returns the current panel size.
func (g *Geometry) Size() Size { return g.size }

// Session returns the active pointer session.
func (g *Geometry) Session() Session { return g.session }

// Anchored reports whether the position is still unset. While anchored the
// panel sits AnchorInset away from the bottom-right corner; once the panel is
// moved, left/top are explicit and the right/bottom anchors no longer apply.
func (g *Geometry) Anchored() bool { return g.pos == nil }

// TransitionsSuppressed reports whether placement changes should be applied
// without animation, which is the case while a drag or resize is active.
func (g *Geometry) TransitionsSuppressed() bool {
	return !g.idle()
}

// Rect returns the panel's bounding box in viewport coordinates.
func (g *Geometry) Rect() Rect {
	if g.pos != nil {
		return Rect{X: g.pos.X, Y: g.pos.Y, Width: g.size.Width, Height: g.size.Height}
	}
	x := g.viewport.Width - g.size.Width - g.limits.AnchorInset
	y := g.viewport.Height - g.size.Height - g.limits.AnchorInset
	return Rect{X: max(x, 0), Y: max(y, 0), Width: g.size.Width, Height: g.size.Height}
}

// SetViewport records a new viewport size and pulls the panel back inside it.
func (g *Geometry) SetViewport(width, height int) {
	g.viewport = Size{Width: width, Height: height}
	g.size = Size{Width: g.clampWidth(g.size.Width), Height: g.clampHeight(g.size.Height)}
	if g.pos != nil {
		g.pos = &Point{X: g.clampX(g.pos.X), Y: g.clampY(g.pos.Y)}
	}
}

// PointerDown starts the session matching what was hit. Header presses start
// a drag, handle presses start a resize, anything else is ignored.
func (g *Geometry) PointerDown(hit Hit, p Point) bool {
	switch hit.Target {
	case TargetHeader:
		return g.BeginDrag(p)
	case TargetHandle:
		return g.BeginResize(p, hit.Edges)
	default:
		return false
	}
}

// BeginDrag starts dragging from pointer position p. It is a no-op while
// another session is active.
func (g *Geometry) BeginDrag(p Point) bool {
	if !g.idle() {
		return false
	}
	offset := p.Sub(g.Rect().TopLeft())
	g.session = Dragging{Offset: offset}
	logger.Debug("panel drag started", "offset_x", offset.X, "offset_y", offset.Y)
	return true
}

// BeginResize starts resizing along one of the four corner edge sets. An
// unset position is pinned to the current placement first so the edges
// opposite the handle stay where they are.
func (g *Geometry) BeginResize(p Point, edges Edge) bool {
	if !g.idle() || !edges.Corner() {
		return false
	}
	origin := g.Rect().TopLeft()
	g.pos = &origin
	g.session = Resizing{Edges: edges}
	logger.Debug("panel resize started", "edges", edges.String(), "x", p.X, "y", p.Y)
	return true
}

// Move applies a pointer move to the active session. It reports whether the
// geometry changed.
func (g *Geometry) Move(p Point) bool {
	switch s := g.session.(type) {
	case Dragging:
		return g.drag(p, s)
	case Resizing:
		return g.resize(p, s)
	default:
		return false
	}
}

// End finishes any active session. It is called on every pointer release,
// wherever the pointer is, and is a no-op when idle.
func (g *Geometry) End() bool {
	if g.idle() {
		return false
	}
	g.session = Idle{}
	r := g.Rect()
	logger.Debug("panel session ended", "x", r.X, "y", r.Y, "width", r.Width, "height", r.Height)
	return true
}

func (g *Geometry) drag(p Point, s Dragging) bool {
	top := p.Sub(s.Offset)
	next := Point{X: g.clampX(top.X), Y: g.clampY(top.Y)}
	if g.pos != nil && *g.pos == next {
		return false
	}
	g.pos = &next
	return true
}

func (g *Geometry) resize(p Point, s Resizing) bool {
	r := g.Rect()
	w, h := r.Width, r.Height
	if s.Edges.Has(East) {
		w = p.X - r.X
	}
	if s.Edges.Has(West) {
		w = r.Right() - p.X
	}
	if s.Edges.Has(South) {
		h = p.Y - r.Y
	}
	if s.Edges.Has(North) {
		h = r.Bottom() - p.Y
	}
	w, h = g.clampWidth(w), g.clampHeight(h)

	x, y := r.X, r.Y
	if s.Edges.Has(West) {
		x = max(r.Right()-w, 0)
	}
	if s.Edges.Has(North) {
		y = max(r.Bottom()-h, 0)
	}

	next := Size{Width: w, Height: h}
	if next == g.size && x == r.X && y == r.Y {
		return false
	}
	g.size = next
	g.pos = &Point{X: x, Y: y}
	return true
}

func (g *Geometry) idle() bool {
	switch g.session.(type) {
	case nil, Idle:
		return true
	}
	return false
}

func (g *Geometry) clampX(x int) int {
	return max(0, min(x, g.viewport.Width-g.size.Width))
}

func (g *Geometry) clampY(y int) int {
	return max(0, min(y, g.viewport.Height-g.size.Height))
}

func (g *Geometry) clampWidth(w int) int {
	return max(g.limits.MinWidth, min(w, g.viewport.Width-g.limits.ViewportMargin))
}

func (g *Geometry) clampHeight(h int) int {
	return max(g.limits.MinHeight, min(h, g.viewport.Height-g.limits.ViewportMargin))
}
