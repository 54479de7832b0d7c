package flow

import (
	"slices"
	"sort"
)

// Store is the canonical collection of nodes and edges plus the viewport,
// selection, draft-connection, history, and clipboard state. It is a
// single-writer structure: all calls must come from one logical thread.
//
// Node and edge IDs are the caller's responsibility; inserting a colliding
// node ID is undefined behavior, not something the store repairs.
type Store struct {
	nodes []*Node
	edges []*Edge

	viewport Viewport

	selectedNodes []string
	selectedEdges []string

	connection *Connection

	snapGrid     SnapGrid
	edgeDefaults DefaultEdgeOptions

	clipboard Clipboard

	undoStack []Snapshot
	redoStack []Snapshot

	// maxZIndex is the running maximum layering key; "bring to front"
	// assigns maxZIndex+1.
	maxZIndex int

	listener Listener
}

// New creates an empty store with the identity viewport and stock edge
// defaults.
func New() *Store {
	return &Store{
		viewport:     DefaultViewport(),
		snapGrid:     DefaultSnapGrid(),
		edgeDefaults: DefaultEdgeDefaults(),
		listener:     NoopListener{},
	}
}

// NewFrom creates a store seeded with initial nodes and edges. The running
// z-index maximum is raised to the highest explicit ZIndex among the nodes.
func NewFrom(nodes []*Node, edges []*Edge) *Store {
	s := New()
	s.nodes = slices.Clone(nodes)
	s.edges = slices.Clone(edges)
	for _, n := range s.nodes {
		if n.ZIndex > s.maxZIndex {
			s.maxZIndex = n.ZIndex
		}
	}
	return s
}

// Node returns the node with the given ID, or nil.
func (s *Store) Node(id string) *Node {
	for _, n := range s.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Edge returns the edge with the given ID, or nil.
func (s *Store) Edge(id string) *Edge {
	for _, e := range s.edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Nodes returns the nodes in insertion order. The slice is a copy; the
// node pointers are the live structs.
func (s *Store) Nodes() []*Node { return slices.Clone(s.nodes) }

// Edges returns the edges in insertion order. The slice is a copy; the
// edge pointers are the live structs.
func (s *Store) Edges() []*Edge { return slices.Clone(s.edges) }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// SnapGrid returns the current snap-grid configuration.
func (s *Store) SnapGrid() SnapGrid { return s.snapGrid }

// SetSnapGrid replaces the snap-grid configuration.
func (s *Store) SetSnapGrid(g SnapGrid) { s.snapGrid = g }

// SetSnapEnabled toggles grid snapping without changing the cell size.
func (s *Store) SetSnapEnabled(enabled bool) { s.snapGrid.Enabled = enabled }

// EdgeDefaults returns the options applied to edges created from
// connection drafts.
func (s *Store) EdgeDefaults() DefaultEdgeOptions { return s.edgeDefaults }

// SetEdgeDefaults replaces the default edge options.
func (s *Store) SetEdgeDefaults(o DefaultEdgeOptions) { s.edgeDefaults = o }

// AddNode appends a node. A zero ZIndex is assigned the running maximum
// plus one; an explicit ZIndex raises the running maximum to at least that
// value. Duplicate IDs are not checked.
func (s *Store) AddNode(n *Node) {
	if n == nil {
		return
	}
	if n.ZIndex == 0 {
		s.maxZIndex++
		n.ZIndex = s.maxZIndex
	} else if n.ZIndex > s.maxZIndex {
		s.maxZIndex = n.ZIndex
	}
	s.nodes = append(s.nodes, n)
}

// RemoveNode deletes the node, every edge touching it, and its selection
// membership. Removing an unknown ID is a no-op.
func (s *Store) RemoveNode(id string) {
	s.nodes = slices.DeleteFunc(s.nodes, func(n *Node) bool { return n.ID == id })
	s.edges = slices.DeleteFunc(s.edges, func(e *Edge) bool {
		return e.Source == id || e.Target == id
	})
	s.selectedNodes = slices.DeleteFunc(s.selectedNodes, func(n string) bool { return n == id })
}

// AddEdge appends an edge and reports whether it was inserted. An edge
// occupying the same connection slot (source, target, side-or-handle on
// both ends) as an existing edge is silently dropped; this dedup is
// intentional, not a validation failure.
func (s *Store) AddEdge(e *Edge) bool {
	if e == nil {
		return false
	}
	for _, existing := range s.edges {
		if existing.sameConnection(e) {
			return false
		}
	}
	s.edges = append(s.edges, e)
	return true
}

// ConnectionOccupied reports whether an existing edge already occupies the
// same connection slot as e, i.e. whether AddEdge would drop it.
func (s *Store) ConnectionOccupied(e *Edge) bool {
	for _, existing := range s.edges {
		if existing.sameConnection(e) {
			return true
		}
	}
	return false
}

// RemoveEdge deletes the edge and its selection membership. Removing an
// unknown ID is a no-op.
func (s *Store) RemoveEdge(id string) {
	s.edges = slices.DeleteFunc(s.edges, func(e *Edge) bool { return e.ID == id })
	s.selectedEdges = slices.DeleteFunc(s.selectedEdges, func(e string) bool { return e == id })
}

// UpdateNodePosition moves a node to a new diagram position, applying grid
// snap (when enabled) and then clamping into the node's movement extent
// (when set) so the full node box stays inside. Emits a drag notification.
func (s *Store) UpdateNodePosition(id string, pos Position) {
	n := s.Node(id)
	if n == nil {
		return
	}
	n.Position = s.constrain(n, pos)
	s.listener.NodeDragged(id, n.Position)
}

// MoveSelectedNodes shifts every selected and draggable node by a delta,
// running each through the same snap-then-clamp pipeline as
// UpdateNodePosition.
func (s *Store) MoveSelectedNodes(dx, dy float64) {
	for _, id := range slices.Clone(s.selectedNodes) {
		n := s.Node(id)
		if n == nil || !n.Draggable {
			continue
		}
		n.Position = s.constrain(n, Position{X: n.Position.X + dx, Y: n.Position.Y + dy})
		s.listener.NodeDragged(id, n.Position)
	}
}

// constrain applies the snap-then-clamp pipeline for a prospective node
// position.
func (s *Store) constrain(n *Node, pos Position) Position {
	if s.snapGrid.Enabled {
		pos = s.snapGrid.Snap(pos)
	}
	if n.Extent != nil {
		w, h := n.Size()
		pos = n.Extent.ClampBox(pos, w, h)
	}
	return pos
}

// BringToFront assigns the node the running maximum z-index plus one,
// preserving the relative order of all other nodes.
func (s *Store) BringToFront(id string) {
	n := s.Node(id)
	if n == nil {
		return
	}
	s.maxZIndex++
	n.ZIndex = s.maxZIndex
}

// SendToBack moves the node to z-index zero and shifts every other node up
// by one, preserving their relative order.
func (s *Store) SendToBack(id string) {
	target := s.Node(id)
	if target == nil {
		return
	}
	for _, n := range s.nodes {
		if n.ID != id {
			n.ZIndex++
			if n.ZIndex > s.maxZIndex {
				s.maxZIndex = n.ZIndex
			}
		}
	}
	target.ZIndex = 0
}

// NodesByZIndex returns the nodes sorted ascending by z-index, so later
// entries draw on top. The sort is stable: equal z-indices keep insertion
// order. This ordering is load-bearing for the presentation layer.
func (s *Store) NodesByZIndex() []*Node {
	nodes := slices.Clone(s.nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ZIndex < nodes[j].ZIndex })
	return nodes
}

// ContentBounds returns the bounding box of all node boxes and false if
// the store has no nodes.
func (s *Store) ContentBounds() (Rect, bool) {
	if len(s.nodes) == 0 {
		return Rect{}, false
	}
	first := s.nodes[0].Bounds()
	minX, minY := first.X, first.Y
	maxX, maxY := first.X+first.Width, first.Y+first.Height
	for _, n := range s.nodes[1:] {
		b := n.Bounds()
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.Width)
		maxY = max(maxY, b.Y+b.Height)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// EdgeEndpoints resolves the attachment points and sides for an edge: a
// named handle takes precedence over the legacy side attachment. Reports
// false when either endpoint node is missing. This is the single place
// edge endpoints are resolved; path routing consumes its output.
func (s *Store) EdgeEndpoints(e *Edge) (src, tgt Position, srcSide, tgtSide Side, ok bool) {
	sn := s.Node(e.Source)
	tn := s.Node(e.Target)
	if sn == nil || tn == nil {
		return Position{}, Position{}, SideBottom, SideTop, false
	}
	srcSide, tgtSide = e.SourceSide, e.TargetSide
	src = sn.SidePoint(srcSide)
	if e.SourceHandle != "" {
		if h, found := sn.Handle(e.SourceHandle); found {
			srcSide = h.Side
			src, _ = sn.HandlePoint(e.SourceHandle)
		}
	}
	tgt = tn.SidePoint(tgtSide)
	if e.TargetHandle != "" {
		if h, found := tn.Handle(e.TargetHandle); found {
			tgtSide = h.Side
			tgt, _ = tn.HandlePoint(e.TargetHandle)
		}
	}
	return src, tgt, srcSide, tgtSide, true
}
