package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/path"
)

const (
	defaultPadding      = 40.0
	defaultNodeFill     = "#ffffff"
	defaultNodeStroke   = "#1a192b"
	defaultSelectStroke = "#555bf6"
	nodeCornerRadius    = 3.0
	fontSize            = 12.0
)

type Option func(*renderer)

type renderer struct {
	padding    float64
	background string
	labels     bool
	radius     float64
}

// WithPadding sets the blank margin around the content bounds, in diagram
// units.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithBackground fills the canvas with a solid color before drawing.
// An empty string keeps the background transparent.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithoutLabels suppresses node and edge text.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithCornerRadius sets the corner rounding used for smoothstep edges.
func WithCornerRadius(radius float64) Option { return func(r *renderer) { r.radius = radius } }

func newRenderer(opts ...Option) renderer {
	r := renderer{padding: defaultPadding, labels: true, radius: path.DefaultCornerRadius}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the diagram as a standalone SVG document. Edges draw
// first, then nodes in ascending z-order so higher z-indices paint on top.
// An empty store yields a small blank canvas.
func RenderSVG(s *flow.Store, opts ...Option) []byte {
	r := newRenderer(opts...)

	bounds, ok := s.ContentBounds()
	if !ok {
		bounds = flow.Rect{Width: 100, Height: 100}
	}
	x := bounds.X - r.padding
	y := bounds.Y - r.padding
	w := bounds.Width + r.padding*2
	h := bounds.Height + r.padding*2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, w, h)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, y, w, h, r.background)
	}

	for _, e := range s.Edges() {
		r.renderEdge(&buf, s, e)
	}
	for _, n := range s.NodesByZIndex() {
		r.renderNode(&buf, n)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderEdge(buf *bytes.Buffer, s *flow.Store, e *flow.Edge) {
	src, tgt, srcSide, tgtSide, ok := s.EdgeEndpoints(e)
	if !ok {
		return
	}
	p := path.Route(e.Kind, src, srcSide, tgt, tgtSide, r.radius)

	dash := ""
	if e.Animated {
		dash = ` stroke-dasharray="5,5"`
	}
	fmt.Fprintf(buf, `  <path id="edge-%s" d="%s" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		html.EscapeString(e.ID), p.SVG(), e.Stroke, e.StrokeWidth, dash)

	if r.labels && e.Label != "" {
		mid := midpoint(src, tgt)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
			mid.X, mid.Y-4, fontSize, html.EscapeString(e.Label))
	}
}

func (r *renderer) renderNode(buf *bytes.Buffer, n *flow.Node) {
	b := n.Bounds()
	fill := defaultNodeFill
	if c, ok := n.Style["fill"]; ok {
		fill = c
	}
	stroke := defaultNodeStroke
	if c, ok := n.Style["stroke"]; ok {
		stroke = c
	}
	if n.Selected {
		stroke = defaultSelectStroke
	}

	fmt.Fprintf(buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
		html.EscapeString(n.ID), b.X, b.Y, b.Width, b.Height, nodeCornerRadius, fill, stroke)

	if r.labels {
		c := n.Center()
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			c.X, c.Y, fontSize, html.EscapeString(nodeLabel(n)))
	}

	for _, h := range n.Handles {
		p, _ := n.HandlePoint(h.ID)
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n",
			p.X, p.Y, defaultNodeStroke)
	}
}

// nodeLabel picks the display text for a node: a string Data payload, a
// "label" key in a map payload, or the node ID.
func nodeLabel(n *flow.Node) string {
	switch data := n.Data.(type) {
	case string:
		return data
	case map[string]any:
		if label, ok := data["label"].(string); ok {
			return label
		}
	}
	return n.ID
}

func midpoint(a, b flow.Position) flow.Position {
	return flow.Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
