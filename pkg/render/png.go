package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flow/path"
)

// RenderPNG rasterizes the diagram at the given scale (1.0 = one pixel per
// diagram unit; 2.0 is suitable for high-DPI displays). The scene matches
// [RenderSVG]: edges below, nodes in ascending z-order on top.
func RenderPNG(s *flow.Store, scale float64, opts ...Option) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	r := newRenderer(opts...)

	bounds, ok := s.ContentBounds()
	if !ok {
		bounds = flow.Rect{Width: 100, Height: 100}
	}
	originX := bounds.X - r.padding
	originY := bounds.Y - r.padding
	w := int((bounds.Width + r.padding*2) * scale)
	h := int((bounds.Height + r.padding*2) * scale)

	dc := gg.NewContext(w, h)
	if r.background != "" {
		dc.SetHexColor(r.background)
	} else {
		dc.SetColor(color.White)
	}
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Shift diagram space into canvas space, then scale.
	dc.Scale(scale, scale)
	dc.Translate(-originX, -originY)

	for _, e := range s.Edges() {
		r.drawEdgePNG(dc, s, e)
	}
	for _, n := range s.NodesByZIndex() {
		r.drawNodePNG(dc, n)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *renderer) drawEdgePNG(dc *gg.Context, s *flow.Store, e *flow.Edge) {
	src, tgt, srcSide, tgtSide, ok := s.EdgeEndpoints(e)
	if !ok {
		return
	}
	p := path.Route(e.Kind, src, srcSide, tgt, tgtSide, r.radius)

	dc.SetHexColor(e.Stroke)
	dc.SetLineWidth(e.StrokeWidth)
	if e.Animated {
		dc.SetDash(5, 5)
	}
	tracePath(dc, p)
	dc.Stroke()
	dc.SetDash()

	if r.labels && e.Label != "" {
		mid := midpoint(src, tgt)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(e.Label, mid.X, mid.Y-4, 0.5, 0.5)
	}
}

// tracePath replays the routed path onto the drawing context.
func tracePath(dc *gg.Context, p path.Path) {
	for _, seg := range p {
		switch seg.Op {
		case path.MoveTo:
			dc.MoveTo(seg.End.X, seg.End.Y)
		case path.LineTo:
			dc.LineTo(seg.End.X, seg.End.Y)
		case path.QuadTo:
			dc.QuadraticTo(seg.Ctrl1.X, seg.Ctrl1.Y, seg.End.X, seg.End.Y)
		case path.CubeTo:
			dc.CubicTo(seg.Ctrl1.X, seg.Ctrl1.Y, seg.Ctrl2.X, seg.Ctrl2.Y, seg.End.X, seg.End.Y)
		}
	}
}

func (r *renderer) drawNodePNG(dc *gg.Context, n *flow.Node) {
	b := n.Bounds()

	fill := defaultNodeFill
	if c, ok := n.Style["fill"]; ok {
		fill = c
	}
	dc.SetHexColor(fill)
	dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, nodeCornerRadius)
	dc.Fill()

	stroke := defaultNodeStroke
	if c, ok := n.Style["stroke"]; ok {
		stroke = c
	}
	if n.Selected {
		stroke = defaultSelectStroke
	}
	dc.SetHexColor(stroke)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, nodeCornerRadius)
	dc.Stroke()

	if r.labels {
		c := n.Center()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(nodeLabel(n), c.X, c.Y, 0.5, 0.5)
	}

	dc.SetHexColor(defaultNodeStroke)
	for _, h := range n.Handles {
		p, _ := n.HandlePoint(h.ID)
		dc.DrawCircle(p.X, p.Y, 3)
		dc.Fill()
	}
}
