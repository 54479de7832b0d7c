package flow

// maxHistory bounds the undo stack; the oldest snapshot is evicted first.
const maxHistory = 100

// Snapshot is an immutable deep copy of the full node and edge collections.
type Snapshot struct {
	Nodes []*Node
	Edges []*Edge
}

// snapshot deep-copies the current graph.
func (s *Store) snapshot() Snapshot {
	snap := Snapshot{
		Nodes: make([]*Node, len(s.nodes)),
		Edges: make([]*Edge, len(s.edges)),
	}
	for i, n := range s.nodes {
		snap.Nodes[i] = n.Clone()
	}
	for i, e := range s.edges {
		snap.Edges[i] = e.Clone()
	}
	return snap
}

// restore replaces the graph with a snapshot's contents. Selection does
// not survive history navigation.
func (s *Store) restore(snap Snapshot) {
	s.nodes = snap.Nodes
	s.edges = snap.Edges
	s.clearSelection()
	s.emitSelectionChanged()
}

// SaveToHistory pushes a snapshot of the current graph onto the undo stack
// and clears the redo stack (linear undo: a new committed action
// invalidates redo). Callers choose the undoable-action boundaries; the
// store never snapshots implicitly.
func (s *Store) SaveToHistory() {
	s.undoStack = append(s.undoStack, s.snapshot())
	if len(s.undoStack) > maxHistory {
		s.undoStack = s.undoStack[1:]
	}
	s.redoStack = s.redoStack[:0]
}

// Undo restores the most recent snapshot, pushing the current state onto
// the redo stack first. Reports false when the undo stack is empty.
func (s *Store) Undo() bool {
	if len(s.undoStack) == 0 {
		return false
	}
	snap := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, s.snapshot())
	s.restore(snap)
	return true
}

// Redo is the symmetric inverse of Undo. Reports false when the redo stack
// is empty.
func (s *Store) Redo() bool {
	if len(s.redoStack) == 0 {
		return false
	}
	snap := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, s.snapshot())
	s.restore(snap)
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (s *Store) CanUndo() bool { return len(s.undoStack) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (s *Store) CanRedo() bool { return len(s.redoStack) > 0 }
