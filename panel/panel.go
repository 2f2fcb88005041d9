// Package panel tracks the position and size of the floating chat panel and
// the pointer-driven drag and resize interactions that change them.
//
// Coordinates are plain integers in whatever unit the host uses (page
// pixels in a browser, cells in a terminal). The panel is always clamped to
// stay fully inside the viewport.
package panel

// Point is a position in viewport coordinates.
type Point struct {
	X, Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned box. Right and Bottom are exclusive.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// TopLeft returns the origin of the rect.
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Edge is a set of panel edges grabbed by a resize handle.
type Edge uint8

const (
	North Edge = 1 << iota
	South
	East
	West
)

// The four corner handles.
const (
	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

// Has reports whether every edge in x is part of e.
func (e Edge) Has(x Edge) bool { return e&x == x }

// Corner reports whether e is one of the four corner combinations.
func (e Edge) Corner() bool {
	switch e {
	case NorthEast, NorthWest, SouthEast, SouthWest:
		return true
	}
	return false
}

func (e Edge) String() string {
	s := ""
	if e.Has(North) {
		s += "n"
	}
	if e.Has(South) {
		s += "s"
	}
	if e.Has(East) {
		s += "e"
	}
	if e.Has(West) {
		s += "w"
	}
	if s == "" {
		return "none"
	}
	return s
}

// Target is what a pointer-down landed on.
type Target int

const (
	TargetNone Target = iota
	// TargetHeader is open header area; pressing it starts a drag.
	TargetHeader
	// TargetControl is a header button (minimize, reset, close). It never drags.
	TargetControl
	// TargetHandle is a corner resize handle.
	TargetHandle
)

// Hit describes the element under a pointer-down.
type Hit struct {
	Target Target
	Edges  Edge // set for TargetHandle
}

// Limits bounds the panel size and placement.
type Limits struct {
	MinWidth       int
	MinHeight      int
	ViewportMargin int // the panel may grow to the viewport size minus this margin
	AnchorInset    int // distance from the bottom-right corner while the position is unset
}

// DefaultLimits returns the limits used by the browser widget, in pixels.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:       320,
		MinHeight:      250,
		ViewportMargin: 50,
		AnchorInset:    20,
	}
}
