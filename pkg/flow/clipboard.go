package flow

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Clipboard holds copied nodes and the edges whose endpoints are both
// among the copied nodes.
type Clipboard struct {
	Nodes []*Node
	Edges []*Edge
}

// HasClipboardContent reports whether a paste would do anything.
func (s *Store) HasClipboardContent() bool { return len(s.clipboard.Nodes) > 0 }

// CopySelected captures clones of every selected node, plus every edge
// whose source and target are both selected, as the clipboard.
func (s *Store) CopySelected() {
	clip := Clipboard{}
	for _, n := range s.nodes {
		if slices.Contains(s.selectedNodes, n.ID) {
			clip.Nodes = append(clip.Nodes, n.Clone())
		}
	}
	for _, e := range s.edges {
		if slices.Contains(s.selectedNodes, e.Source) && slices.Contains(s.selectedNodes, e.Target) {
			clip.Edges = append(clip.Edges, e.Clone())
		}
	}
	s.clipboard = clip
}

// CutSelected copies the selection to the clipboard and then deletes it,
// returning what DeleteSelected removed.
func (s *Store) CutSelected() (nodeIDs, edgeIDs []string) {
	s.CopySelected()
	return s.DeleteSelected()
}

// Paste inserts clones of the clipboard contents shifted by offset,
// minting fresh IDs and selecting the pasted nodes. Clipboard edges are
// re-inserted only when both endpoints pasted; their endpoints are
// remapped through the old→new ID mapping. Pasting an empty clipboard is
// a no-op. Returns the new node IDs.
func (s *Store) Paste(offset Position) []string {
	if len(s.clipboard.Nodes) == 0 {
		return nil
	}

	s.clearSelection()

	idMap := make(map[string]string, len(s.clipboard.Nodes))
	newIDs := make([]string, 0, len(s.clipboard.Nodes))

	for _, n := range s.clipboard.Nodes {
		clone := n.Clone()
		clone.ID = copyID(n.ID)
		clone.Position = Position{X: n.Position.X + offset.X, Y: n.Position.Y + offset.Y}
		clone.Selected = true
		clone.ZIndex = 0 // re-assign on insert

		idMap[n.ID] = clone.ID
		s.AddNode(clone)
		s.selectedNodes = append(s.selectedNodes, clone.ID)
		newIDs = append(newIDs, clone.ID)
	}

	for _, e := range s.clipboard.Edges {
		source, okS := idMap[e.Source]
		target, okT := idMap[e.Target]
		if !okS || !okT {
			continue
		}
		clone := e.Clone()
		clone.ID = copyID(e.ID)
		clone.Source = source
		clone.Target = target
		clone.Selected = false
		s.AddEdge(clone)
	}

	s.emitSelectionChanged()
	return newIDs
}

// DeleteSelected removes every selected node and edge that is individually
// deletable, plus cascades removal of every edge touching a deleted node
// regardless of the edge's own deletable flag. Returns the node IDs and
// the deduplicated edge IDs actually removed.
func (s *Store) DeleteSelected() (nodeIDs, edgeIDs []string) {
	for _, id := range s.selectedNodes {
		if n := s.Node(id); n != nil && n.Deletable {
			nodeIDs = append(nodeIDs, id)
		}
	}
	for _, id := range s.selectedEdges {
		if e := s.Edge(id); e != nil && e.Deletable {
			edgeIDs = append(edgeIDs, id)
		}
	}

	// Cascade: edges touching a deleted node go unconditionally.
	for _, e := range s.edges {
		if slices.Contains(nodeIDs, e.Source) || slices.Contains(nodeIDs, e.Target) {
			edgeIDs = append(edgeIDs, e.ID)
		}
	}
	slices.Sort(edgeIDs)
	edgeIDs = slices.Compact(edgeIDs)

	for _, id := range nodeIDs {
		s.RemoveNode(id)
	}
	for _, id := range edgeIDs {
		s.RemoveEdge(id)
	}

	s.clearSelection()
	s.emitSelectionChanged()
	if len(nodeIDs) > 0 || len(edgeIDs) > 0 {
		s.listener.Deleted(slices.Clone(nodeIDs), slices.Clone(edgeIDs))
	}
	return nodeIDs, edgeIDs
}

// copyID derives a fresh unique ID for a pasted entity from its source ID.
func copyID(id string) string {
	return fmt.Sprintf("%s-copy-%s", id, uuid.NewString()[:8])
}
