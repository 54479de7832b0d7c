package flowfile

import (
	"errors"
	"fmt"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Validation errors returned by ToStore and the read functions.
var (
	ErrDuplicateNode   = errors.New("duplicate node id")
	ErrUnknownEndpoint = errors.New("edge references unknown node")
	ErrBadSide         = errors.New("unrecognized side name")
	ErrBadPathKind     = errors.New("unrecognized path kind")
	ErrBadHandleRole   = errors.New("unrecognized handle role")
)

// Document is the serialized form of a diagram.
type Document struct {
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Viewport mirrors flow.Viewport.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Node is the serialized form of a flow.Node. Behavior flags are pointers
// so that an omitted flag keeps the engine default of true.
type Node struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Kind   string `json:"kind,omitempty"`
	ZIndex int    `json:"zIndex,omitempty"`

	Selectable  *bool `json:"selectable,omitempty"`
	Draggable   *bool `json:"draggable,omitempty"`
	Deletable   *bool `json:"deletable,omitempty"`
	Connectable *bool `json:"connectable,omitempty"`

	Handles []Handle `json:"handles,omitempty"`
	Extent  *Rect    `json:"extent,omitempty"`

	Class string            `json:"class,omitempty"`
	Style map[string]string `json:"style,omitempty"`
	Data  map[string]any    `json:"data,omitempty"`
}

// Handle is the serialized form of a flow.Handle. A nil Offset means
// centered on the side.
type Handle struct {
	ID             string   `json:"id"`
	Role           string   `json:"role"`
	Side           string   `json:"side"`
	Offset         *float64 `json:"offset,omitempty"`
	Connectable    *bool    `json:"connectable,omitempty"`
	MaxConnections int      `json:"maxConnections,omitempty"`
	Label          string   `json:"label,omitempty"`
}

// Rect is the serialized form of a flow.Rect.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edge is the serialized form of a flow.Edge.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`

	SourceSide string `json:"sourceSide,omitempty"`
	TargetSide string `json:"targetSide,omitempty"`

	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`

	Kind string `json:"kind,omitempty"`

	Animated   bool  `json:"animated,omitempty"`
	Selectable *bool `json:"selectable,omitempty"`
	Deletable  *bool `json:"deletable,omitempty"`

	Label       string  `json:"label,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Class       string  `json:"class,omitempty"`
}

// FromStore captures a store's persistent state as a document. Transient
// state (selection, draft connection, history, clipboard) is not captured.
func FromStore(s *flow.Store) *Document {
	doc := &Document{}

	v := s.Viewport()
	doc.Viewport = &Viewport{X: v.X, Y: v.Y, Zoom: v.Zoom}

	for _, n := range s.Nodes() {
		doc.Nodes = append(doc.Nodes, EncodeNode(n))
	}
	for _, e := range s.Edges() {
		doc.Edges = append(doc.Edges, EncodeEdge(e))
	}
	return doc
}

// ToStore validates a document and builds a store from it. The returned
// store is independent of the document.
func (d *Document) ToStore() (*flow.Store, error) {
	seen := make(map[string]bool, len(d.Nodes))
	var nodes []*flow.Node
	for _, n := range d.Nodes {
		if seen[n.ID] {
			return nil, fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNode)
		}
		seen[n.ID] = true

		node, err := DecodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		nodes = append(nodes, node)
	}

	var edges []*flow.Edge
	for _, e := range d.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			return nil, fmt.Errorf("edge %s (%s->%s): %w", e.ID, e.Source, e.Target, ErrUnknownEndpoint)
		}
		edge, err := DecodeEdge(e)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.ID, err)
		}
		edges = append(edges, edge)
	}

	s := flow.NewFrom(nodes, edges)
	if d.Viewport != nil {
		s.SetViewport(flow.Viewport{X: d.Viewport.X, Y: d.Viewport.Y, Zoom: d.Viewport.Zoom})
	}
	return s, nil
}

// EncodeNode converts an engine node to its serialized form.
func EncodeNode(n *flow.Node) Node {
	out := Node{
		ID:          n.ID,
		X:           n.Position.X,
		Y:           n.Position.Y,
		Width:       n.Width,
		Height:      n.Height,
		Kind:        n.Kind,
		ZIndex:      n.ZIndex,
		Selectable:  falseOnly(n.Selectable),
		Draggable:   falseOnly(n.Draggable),
		Deletable:   falseOnly(n.Deletable),
		Connectable: falseOnly(n.Connectable),
		Class:       n.Class,
		Style:       n.Style,
	}
	if data, ok := n.Data.(map[string]any); ok {
		out.Data = data
	}
	for _, h := range n.Handles {
		out.Handles = append(out.Handles, encodeHandle(h))
	}
	if n.Extent != nil {
		out.Extent = &Rect{X: n.Extent.X, Y: n.Extent.Y, Width: n.Extent.Width, Height: n.Extent.Height}
	}
	return out
}

// DecodeNode validates a serialized node and converts it to an engine node.
func DecodeNode(n Node) (*flow.Node, error) {
	node := flow.NewNode(n.ID, n.X, n.Y)
	node.Width = n.Width
	node.Height = n.Height
	if n.Kind != "" {
		node.Kind = n.Kind
	}
	node.ZIndex = n.ZIndex
	node.Selectable = orTrue(n.Selectable)
	node.Draggable = orTrue(n.Draggable)
	node.Deletable = orTrue(n.Deletable)
	node.Connectable = orTrue(n.Connectable)
	node.Class = n.Class
	node.Style = n.Style
	if n.Data != nil {
		node.Data = n.Data
	}
	for _, h := range n.Handles {
		handle, err := decodeHandle(h)
		if err != nil {
			return nil, fmt.Errorf("handle %s: %w", h.ID, err)
		}
		node.Handles = append(node.Handles, handle)
	}
	if n.Extent != nil {
		node.Extent = &flow.Rect{X: n.Extent.X, Y: n.Extent.Y, Width: n.Extent.Width, Height: n.Extent.Height}
	}
	return node, nil
}

func encodeHandle(h flow.Handle) Handle {
	out := Handle{
		ID:             h.ID,
		Role:           h.Role.String(),
		Side:           h.Side.String(),
		Connectable:    falseOnly(h.Connectable),
		MaxConnections: h.MaxConnections,
		Label:          h.Label,
	}
	if h.Offset >= 0 {
		offset := h.Offset
		out.Offset = &offset
	}
	return out
}

func decodeHandle(h Handle) (flow.Handle, error) {
	side, ok := flow.ParseSide(h.Side)
	if !ok {
		return flow.Handle{}, fmt.Errorf("%w: %q", ErrBadSide, h.Side)
	}
	var role flow.HandleRole
	switch h.Role {
	case "source", "":
		role = flow.HandleSource
	case "target":
		role = flow.HandleTarget
	default:
		return flow.Handle{}, fmt.Errorf("%w: %q", ErrBadHandleRole, h.Role)
	}

	handle := flow.NewHandle(h.ID, role, side)
	handle.Connectable = orTrue(h.Connectable)
	handle.MaxConnections = h.MaxConnections
	handle.Label = h.Label
	if h.Offset != nil {
		handle.Offset = *h.Offset
	}
	return handle, nil
}

// EncodeEdge converts an engine edge to its serialized form.
func EncodeEdge(e *flow.Edge) Edge {
	out := Edge{
		ID:           e.ID,
		Source:       e.Source,
		Target:       e.Target,
		SourceHandle: e.SourceHandle,
		TargetHandle: e.TargetHandle,
		Animated:     e.Animated,
		Selectable:   falseOnly(e.Selectable),
		Deletable:    falseOnly(e.Deletable),
		Label:        e.Label,
		Stroke:       e.Stroke,
		StrokeWidth:  e.StrokeWidth,
		Class:        e.Class,
	}
	if e.SourceSide != flow.SideBottom {
		out.SourceSide = e.SourceSide.String()
	}
	if e.TargetSide != flow.SideTop {
		out.TargetSide = e.TargetSide.String()
	}
	if e.Kind != flow.PathBezier {
		out.Kind = e.Kind.String()
	}
	return out
}

// DecodeEdge validates a serialized edge and converts it to an engine edge.
func DecodeEdge(e Edge) (*flow.Edge, error) {
	edge := flow.NewEdge(e.ID, e.Source, e.Target)
	if e.SourceSide != "" {
		side, ok := flow.ParseSide(e.SourceSide)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadSide, e.SourceSide)
		}
		edge.SourceSide = side
	}
	if e.TargetSide != "" {
		side, ok := flow.ParseSide(e.TargetSide)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadSide, e.TargetSide)
		}
		edge.TargetSide = side
	}
	if e.Kind != "" {
		kind, ok := flow.ParsePathKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadPathKind, e.Kind)
		}
		edge.Kind = kind
	}
	edge.SourceHandle = e.SourceHandle
	edge.TargetHandle = e.TargetHandle
	edge.Animated = e.Animated
	edge.Selectable = orTrue(e.Selectable)
	edge.Deletable = orTrue(e.Deletable)
	edge.Label = e.Label
	if e.Stroke != "" {
		edge.Stroke = e.Stroke
	}
	if e.StrokeWidth > 0 {
		edge.StrokeWidth = e.StrokeWidth
	}
	edge.Class = e.Class
	return edge, nil
}

// falseOnly returns a pointer only for false, so true flags serialize as
// omitted fields.
func falseOnly(v bool) *bool {
	if v {
		return nil
	}
	return &v
}

func orTrue(v *bool) bool {
	return v == nil || *v
}
