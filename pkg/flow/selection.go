package flow

import "slices"

// SelectedNodes returns the selected node IDs in selection order.
func (s *Store) SelectedNodes() []string { return slices.Clone(s.selectedNodes) }

// SelectedEdges returns the selected edge IDs in selection order.
func (s *Store) SelectedEdges() []string { return slices.Clone(s.selectedEdges) }

// SelectNode selects a node. Without multi the existing selection is
// cleared first. Selecting a non-selectable or unknown node is a no-op;
// re-selecting is idempotent.
func (s *Store) SelectNode(id string, multi bool) {
	n := s.Node(id)
	if n == nil || !n.Selectable {
		return
	}
	if !multi {
		s.clearSelection()
	}
	if !slices.Contains(s.selectedNodes, id) {
		s.selectedNodes = append(s.selectedNodes, id)
	}
	n.Selected = true
	s.emitSelectionChanged()
}

// SelectEdge selects an edge with the same semantics as SelectNode.
func (s *Store) SelectEdge(id string, multi bool) {
	e := s.Edge(id)
	if e == nil || !e.Selectable {
		return
	}
	if !multi {
		s.clearSelection()
	}
	if !slices.Contains(s.selectedEdges, id) {
		s.selectedEdges = append(s.selectedEdges, id)
	}
	e.Selected = true
	s.emitSelectionChanged()
}

// SelectNodes selects every selectable node among the given IDs.
func (s *Store) SelectNodes(ids []string, multi bool) {
	if !multi {
		s.clearSelection()
	}
	for _, id := range ids {
		n := s.Node(id)
		if n == nil || !n.Selectable {
			continue
		}
		if !slices.Contains(s.selectedNodes, id) {
			s.selectedNodes = append(s.selectedNodes, id)
		}
		n.Selected = true
	}
	s.emitSelectionChanged()
}

// SelectInRect box-selects every selectable node whose bounding box
// intersects the rectangle. Edges are never box-selected. Without multi
// the prior selection is cleared first.
func (s *Store) SelectInRect(rect Rect, multi bool) {
	if !multi {
		s.clearSelection()
	}
	for _, n := range s.nodes {
		if !n.Selectable || !rect.Intersects(n.Bounds()) {
			continue
		}
		if !slices.Contains(s.selectedNodes, n.ID) {
			s.selectedNodes = append(s.selectedNodes, n.ID)
		}
		n.Selected = true
	}
	s.emitSelectionChanged()
}

// SelectAll selects every selectable node and edge.
func (s *Store) SelectAll() {
	for _, n := range s.nodes {
		if !n.Selectable {
			continue
		}
		n.Selected = true
		if !slices.Contains(s.selectedNodes, n.ID) {
			s.selectedNodes = append(s.selectedNodes, n.ID)
		}
	}
	for _, e := range s.edges {
		if !e.Selectable {
			continue
		}
		e.Selected = true
		if !slices.Contains(s.selectedEdges, e.ID) {
			s.selectedEdges = append(s.selectedEdges, e.ID)
		}
	}
	s.emitSelectionChanged()
}

// ClearSelection deselects everything. It always succeeds, resetting the
// Selected flag even on entities that are not selectable.
func (s *Store) ClearSelection() {
	s.clearSelection()
	s.emitSelectionChanged()
}

// clearSelection resets selection state without notifying.
func (s *Store) clearSelection() {
	for _, n := range s.nodes {
		n.Selected = false
	}
	for _, e := range s.edges {
		e.Selected = false
	}
	s.selectedNodes = s.selectedNodes[:0]
	s.selectedEdges = s.selectedEdges[:0]
}

func (s *Store) emitSelectionChanged() {
	s.listener.SelectionChanged(s.SelectedNodes(), s.SelectedEdges())
}
