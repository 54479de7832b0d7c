package path

import (
	"fmt"
	"math"
	"strings"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Bezier control point offset bounds: clamp((|dx|+|dy|)/3, 30, 150).
const (
	minControlOffset = 30.0
	maxControlOffset = 150.0
)

// DefaultCornerRadius is the corner rounding used for smoothstep routing.
const DefaultCornerRadius = 5.0

// Op identifies a path segment operation.
type Op int

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is one drawing operation. End is always the segment's endpoint;
// Ctrl1 is the control point for QuadTo and the first control point for
// CubeTo; Ctrl2 is CubeTo's second control point.
type Segment struct {
	Op    Op
	Ctrl1 flow.Position
	Ctrl2 flow.Position
	End   flow.Position
}

// Path is an ordered sequence of segments starting with a MoveTo.
type Path []Segment

// SVG serializes the path as an SVG path-data string.
func (p Path) SVG() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case MoveTo:
			fmt.Fprintf(&b, "M %s,%s", fmtCoord(seg.End.X), fmtCoord(seg.End.Y))
		case LineTo:
			fmt.Fprintf(&b, "L %s,%s", fmtCoord(seg.End.X), fmtCoord(seg.End.Y))
		case QuadTo:
			fmt.Fprintf(&b, "Q %s,%s %s,%s",
				fmtCoord(seg.Ctrl1.X), fmtCoord(seg.Ctrl1.Y),
				fmtCoord(seg.End.X), fmtCoord(seg.End.Y))
		case CubeTo:
			fmt.Fprintf(&b, "C %s,%s %s,%s %s,%s",
				fmtCoord(seg.Ctrl1.X), fmtCoord(seg.Ctrl1.Y),
				fmtCoord(seg.Ctrl2.X), fmtCoord(seg.Ctrl2.Y),
				fmtCoord(seg.End.X), fmtCoord(seg.End.Y))
		}
	}
	return b.String()
}

// End returns the path's final point. The zero Position is returned for an
// empty path.
func (p Path) End() flow.Position {
	if len(p) == 0 {
		return flow.Position{}
	}
	return p[len(p)-1].End
}

func fmtCoord(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}

// Route computes the edge path for the given kind between two resolved
// attachment points. The radius applies to step-like kinds; pass
// DefaultCornerRadius unless the host configures its own.
func Route(kind flow.PathKind, src flow.Position, srcSide flow.Side, tgt flow.Position, tgtSide flow.Side, radius float64) Path {
	switch kind {
	case flow.PathStraight:
		return Straight(src, tgt)
	case flow.PathStep:
		return Step(src, srcSide, tgt)
	case flow.PathSmoothStep:
		return SmoothStep(src, srcSide, tgt, tgtSide, radius)
	default:
		return Bezier(src, srcSide, tgt, tgtSide)
	}
}

// Straight routes a direct line segment.
func Straight(src, tgt flow.Position) Path {
	return Path{
		{Op: MoveTo, End: src},
		{Op: LineTo, End: tgt},
	}
}

// Bezier routes a cubic curve. Each control point is displaced from its
// endpoint along the outward normal of that endpoint's handle side by
// clamp((|dx|+|dy|)/3, 30, 150).
func Bezier(src flow.Position, srcSide flow.Side, tgt flow.Position, tgtSide flow.Side) Path {
	offset := controlOffset(src, tgt)

	sdx, sdy := srcSide.Normal()
	tdx, tdy := tgtSide.Normal()

	return Path{
		{Op: MoveTo, End: src},
		{
			Op:    CubeTo,
			Ctrl1: flow.Position{X: src.X + sdx*offset, Y: src.Y + sdy*offset},
			Ctrl2: flow.Position{X: tgt.X + tdx*offset, Y: tgt.Y + tdy*offset},
			End:   tgt,
		},
	}
}

func controlOffset(src, tgt flow.Position) float64 {
	offset := (math.Abs(tgt.X-src.X) + math.Abs(tgt.Y-src.Y)) / 3
	return math.Max(minControlOffset, math.Min(offset, maxControlOffset))
}

// Step routes one orthogonal bend through the midline. A top/bottom source
// side routes via the horizontal midline; left/right via the vertical one.
func Step(src flow.Position, srcSide flow.Side, tgt flow.Position) Path {
	if srcSide.Horizontal() {
		midX := (src.X + tgt.X) / 2
		return Path{
			{Op: MoveTo, End: src},
			{Op: LineTo, End: flow.Position{X: midX, Y: src.Y}},
			{Op: LineTo, End: flow.Position{X: midX, Y: tgt.Y}},
			{Op: LineTo, End: tgt},
		}
	}
	midY := (src.Y + tgt.Y) / 2
	return Path{
		{Op: MoveTo, End: src},
		{Op: LineTo, End: flow.Position{X: src.X, Y: midY}},
		{Op: LineTo, End: flow.Position{X: tgt.X, Y: midY}},
		{Op: LineTo, End: tgt},
	}
}

// SmoothStep routes the orthogonal midline path with rounded corners of
// the given radius. When the target sits behind the source along the
// source side's outward routing axis, the midline route would double back
// through the source node; the routine falls back to the bezier curve in
// that case.
func SmoothStep(src flow.Position, srcSide flow.Side, tgt flow.Position, tgtSide flow.Side, radius float64) Path {
	nx, ny := srcSide.Normal()

	// Displacement of the target along the outward routing axis. The
	// route needs room for both rounded corners to stay forward-going.
	forward := (tgt.X-src.X)*nx + (tgt.Y-src.Y)*ny
	if forward < 2*radius {
		return Bezier(src, srcSide, tgt, tgtSide)
	}

	r := radius
	if srcSide.Horizontal() {
		midX := (src.X + tgt.X) / 2
		dirX := sign(tgt.X - src.X)
		dirY := sign(tgt.Y - src.Y)
		return Path{
			{Op: MoveTo, End: src},
			{Op: LineTo, End: flow.Position{X: midX - r*dirX, Y: src.Y}},
			{Op: QuadTo, Ctrl1: flow.Position{X: midX, Y: src.Y}, End: flow.Position{X: midX, Y: src.Y + r*dirY}},
			{Op: LineTo, End: flow.Position{X: midX, Y: tgt.Y - r*dirY}},
			{Op: QuadTo, Ctrl1: flow.Position{X: midX, Y: tgt.Y}, End: flow.Position{X: midX + r*dirX, Y: tgt.Y}},
			{Op: LineTo, End: tgt},
		}
	}

	midY := (src.Y + tgt.Y) / 2
	dirY := sign(tgt.Y - src.Y)
	dirX := sign(tgt.X - src.X)
	return Path{
		{Op: MoveTo, End: src},
		{Op: LineTo, End: flow.Position{X: src.X, Y: midY - r*dirY}},
		{Op: QuadTo, Ctrl1: flow.Position{X: src.X, Y: midY}, End: flow.Position{X: src.X + r*dirX, Y: midY}},
		{Op: LineTo, End: flow.Position{X: tgt.X - r*dirX, Y: midY}},
		{Op: QuadTo, Ctrl1: flow.Position{X: tgt.X, Y: midY}, End: flow.Position{X: tgt.X, Y: midY + r*dirY}},
		{Op: LineTo, End: tgt},
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
