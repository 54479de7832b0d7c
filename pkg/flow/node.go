package flow

import "maps"

// Default node dimensions used when a node does not declare its own.
const (
	DefaultNodeWidth  = 150.0
	DefaultNodeHeight = 40.0
)

// HandleRole distinguishes handles that originate edges from handles that
// receive them.
type HandleRole int

const (
	HandleSource HandleRole = iota
	HandleTarget
)

// String returns "source" or "target".
func (r HandleRole) String() string {
	if r == HandleTarget {
		return "target"
	}
	return "source"
}

// Handle is a named connection point on a node. Its ID must be unique
// within the node.
type Handle struct {
	ID   string
	Role HandleRole
	Side Side

	// Offset is the fractional position (0..1) along the side, measured
	// left-to-right for top/bottom and top-to-bottom for left/right.
	// A negative value means centered on the side.
	Offset float64

	Connectable bool

	// MaxConnections caps how many edges the host should allow on this
	// handle; zero means unlimited. The engine records it as data and
	// leaves enforcement to the host.
	MaxConnections int

	Label string
}

// NewHandle creates a connectable, centered handle.
func NewHandle(id string, role HandleRole, side Side) Handle {
	return Handle{ID: id, Role: role, Side: side, Offset: -1, Connectable: true}
}

// Node is a box in the diagram. The zero value is not usable; use NewNode.
//
// Data is an opaque payload slot for application state. The engine never
// inspects it; clipboard and history copy it by reference.
type Node struct {
	ID       string
	Position Position

	// Width and Height of the node box. Zero means the default 150x40.
	Width  float64
	Height float64

	Data any

	Selected    bool
	Selectable  bool
	Draggable   bool
	Deletable   bool
	Connectable bool

	Handles []Handle

	// Kind is a string tag the presentation layer dispatches custom
	// rendering on. The engine treats it as opaque.
	Kind string

	// ZIndex is the layering key: higher draws on top. Zero means
	// "assign on insert".
	ZIndex int

	// Class and Style are opaque presentation hints.
	Class string
	Style map[string]string

	// Extent, when set, is an axis-aligned bounding box the node's full
	// box is clamped into while dragging.
	Extent *Rect
}

// NewNode creates a node at the given diagram position with all behavior
// flags enabled and the "default" kind.
func NewNode(id string, x, y float64) *Node {
	return &Node{
		ID:          id,
		Position:    Position{X: x, Y: y},
		Selectable:  true,
		Draggable:   true,
		Deletable:   true,
		Connectable: true,
		Kind:        "default",
	}
}

// Size returns the node's effective width and height, substituting the
// defaults for unset dimensions.
func (n *Node) Size() (w, h float64) {
	w, h = n.Width, n.Height
	if w == 0 {
		w = DefaultNodeWidth
	}
	if h == 0 {
		h = DefaultNodeHeight
	}
	return w, h
}

// Bounds returns the node's axis-aligned bounding box.
func (n *Node) Bounds() Rect {
	w, h := n.Size()
	return Rect{X: n.Position.X, Y: n.Position.Y, Width: w, Height: h}
}

// Center returns the center of the node box.
func (n *Node) Center() Position {
	w, h := n.Size()
	return Position{X: n.Position.X + w/2, Y: n.Position.Y + h/2}
}

// SidePoint returns the absolute diagram position of the midpoint of the
// given side. This is where edges attach when no specific handle is named.
func (n *Node) SidePoint(s Side) Position {
	return n.sidePoint(s, 0.5)
}

// Handle returns the handle with the given ID, or false if the node does
// not declare it.
func (n *Node) Handle(id string) (Handle, bool) {
	for _, h := range n.Handles {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// HandlePoint returns the absolute diagram position of a declared handle:
// the side midpoint, or the fractional offset along the side when the
// handle declares one. The second result is false if the handle is unknown.
func (n *Node) HandlePoint(id string) (Position, bool) {
	h, ok := n.Handle(id)
	if !ok {
		return Position{}, false
	}
	t := h.Offset
	if t < 0 {
		t = 0.5
	}
	return n.sidePoint(h.Side, t), true
}

// sidePoint interpolates along a side: t=0 is the top/left end, t=1 the
// bottom/right end.
func (n *Node) sidePoint(s Side, t float64) Position {
	w, h := n.Size()
	switch s {
	case SideTop:
		return Position{X: n.Position.X + w*t, Y: n.Position.Y}
	case SideRight:
		return Position{X: n.Position.X + w, Y: n.Position.Y + h*t}
	case SideBottom:
		return Position{X: n.Position.X + w*t, Y: n.Position.Y + h}
	default:
		return Position{X: n.Position.X, Y: n.Position.Y + h*t}
	}
}

// Clone returns a deep copy of the node's engine-owned state. Data is
// copied by reference since it is opaque to the engine.
func (n *Node) Clone() *Node {
	c := *n
	if n.Handles != nil {
		c.Handles = make([]Handle, len(n.Handles))
		copy(c.Handles, n.Handles)
	}
	if n.Style != nil {
		c.Style = maps.Clone(n.Style)
	}
	if n.Extent != nil {
		extent := *n.Extent
		c.Extent = &extent
	}
	return &c
}
