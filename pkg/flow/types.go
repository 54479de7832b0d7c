package flow

import "math"

// Position is a point in diagram (unscaled) coordinates.
type Position struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Position) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is a normalized axis-aligned rectangle in diagram coordinates.
// Width and Height are always non-negative when built via RectFromPoints.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromPoints builds a normalized rectangle from two opposite corners,
// in any order. Useful for box selection where the drag may go in any
// direction.
func RectFromPoints(a, b Position) Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return Rect{X: x, Y: y, Width: math.Abs(b.X - a.X), Height: math.Abs(b.Y - a.Y)}
}

// Intersects reports whether two axis-aligned rectangles overlap.
// Two rectangles intersect unless one is entirely to the left, right,
// above, or below the other.
func (r Rect) Intersects(o Rect) bool {
	if r.X+r.Width < o.X || o.X+o.Width < r.X {
		return false
	}
	if r.Y+r.Height < o.Y || o.Y+o.Height < r.Y {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ClampBox clamps a box origin so that a box of the given size stays fully
// inside the rectangle, not just its origin point. If the box is larger
// than the rectangle on an axis, the origin pins to the rectangle's origin.
func (r Rect) ClampBox(p Position, w, h float64) Position {
	maxX := r.X + r.Width - w
	maxY := r.Y + r.Height - h
	return Position{
		X: math.Max(r.X, math.Min(p.X, maxX)),
		Y: math.Max(r.Y, math.Min(p.Y, maxY)),
	}
}

// Side identifies which side of a node a handle sits on.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// String returns the lowercase side name ("top", "right", "bottom", "left").
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseSide converts a side name to a Side. Unrecognized names report false.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "top":
		return SideTop, true
	case "right":
		return SideRight, true
	case "bottom":
		return SideBottom, true
	case "left":
		return SideLeft, true
	default:
		return SideTop, false
	}
}

// Normal returns the outward unit normal of the side: top is -y, bottom +y,
// left -x, right +x.
func (s Side) Normal() (dx, dy float64) {
	switch s {
	case SideTop:
		return 0, -1
	case SideRight:
		return 1, 0
	case SideBottom:
		return 0, 1
	default:
		return -1, 0
	}
}

// Horizontal reports whether the side's outward normal is horizontal
// (left or right). Step-like edge routing keys its bend axis on this.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// PathKind selects the geometry used to route an edge.
type PathKind int

const (
	PathBezier PathKind = iota
	PathStraight
	PathStep
	PathSmoothStep
)

// String returns the lowercase kind name.
func (k PathKind) String() string {
	switch k {
	case PathBezier:
		return "bezier"
	case PathStraight:
		return "straight"
	case PathStep:
		return "step"
	case PathSmoothStep:
		return "smoothstep"
	default:
		return "unknown"
	}
}

// ParsePathKind converts a kind name to a PathKind. Unrecognized names
// report false.
func ParsePathKind(s string) (PathKind, bool) {
	switch s {
	case "bezier":
		return PathBezier, true
	case "straight":
		return PathStraight, true
	case "step":
		return PathStep, true
	case "smoothstep":
		return PathSmoothStep, true
	default:
		return PathBezier, false
	}
}

// Zoom bounds for the viewport. Every zoom mutation clamps into this range.
const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// Viewport is the camera mapping diagram space to screen space: a pan
// offset in screen pixels plus a uniform scale factor.
type Viewport struct {
	X    float64
	Y    float64
	Zoom float64
}

// DefaultViewport returns the identity camera (no pan, zoom 1).
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ScreenToDiagram converts screen coordinates to diagram coordinates.
func (v Viewport) ScreenToDiagram(sx, sy float64) Position {
	return Position{
		X: (sx - v.X) / v.Zoom,
		Y: (sy - v.Y) / v.Zoom,
	}
}

// DiagramToScreen converts a diagram position to screen coordinates.
// It is the exact inverse of ScreenToDiagram up to floating-point tolerance.
func (v Viewport) DiagramToScreen(p Position) (sx, sy float64) {
	return p.X*v.Zoom + v.X, p.Y*v.Zoom + v.Y
}

// SnapGrid quantizes node positions to a fixed cell size when enabled.
type SnapGrid struct {
	Enabled bool
	Size    float64
}

// DefaultSnapGrid returns a disabled 20-unit grid.
func DefaultSnapGrid() SnapGrid {
	return SnapGrid{Size: 20}
}

// Snap rounds each axis to the nearest multiple of the cell size.
// Snap is idempotent: Snap(Snap(p)) == Snap(p). A non-positive cell size
// leaves the position unchanged.
func (g SnapGrid) Snap(p Position) Position {
	if g.Size <= 0 {
		return p
	}
	return Position{
		X: math.Round(p.X/g.Size) * g.Size,
		Y: math.Round(p.Y/g.Size) * g.Size,
	}
}

// DefaultEdgeOptions carries the edge attributes applied to edges created
// by completing a connection draft.
type DefaultEdgeOptions struct {
	Kind        PathKind
	Stroke      string
	StrokeWidth float64
	Animated    bool
}

// DefaultEdgeDefaults returns the stock edge options: a 2px grey bezier.
func DefaultEdgeDefaults() DefaultEdgeOptions {
	return DefaultEdgeOptions{
		Kind:        PathBezier,
		Stroke:      defaultStroke,
		StrokeWidth: defaultStrokeWidth,
	}
}
