package flow

import (
	"fmt"

	"github.com/google/uuid"
)

// Connection is the transient state while the user drags from a source
// handle toward a prospective target. It exists only between StartConnection
// and CompleteConnection/CancelConnection.
type Connection struct {
	Source       string
	SourceSide   Side
	SourceHandle string

	// At is the current pointer position in diagram space, tracked purely
	// so the host can draw a rubber-band line.
	At Position
}

// Connection returns a copy of the active draft connection, or nil when
// idle.
func (s *Store) Connection() *Connection {
	if s.connection == nil {
		return nil
	}
	c := *s.connection
	return &c
}

// StartConnection begins drafting an edge from a node side. It reports
// false (and stays idle) if a draft is already active or the node is
// missing or not connectable.
func (s *Store) StartConnection(nodeID string, side Side, at Position) bool {
	if s.connection != nil {
		return false
	}
	n := s.Node(nodeID)
	if n == nil || !n.Connectable {
		return false
	}
	s.connection = &Connection{Source: nodeID, SourceSide: side, At: at}
	return true
}

// StartConnectionFromHandle begins drafting an edge from a specific handle.
// The handle must exist on the node and be connectable.
func (s *Store) StartConnectionFromHandle(nodeID, handleID string, at Position) bool {
	if s.connection != nil {
		return false
	}
	n := s.Node(nodeID)
	if n == nil || !n.Connectable {
		return false
	}
	h, ok := n.Handle(handleID)
	if !ok || !h.Connectable {
		return false
	}
	s.connection = &Connection{
		Source:       nodeID,
		SourceSide:   h.Side,
		SourceHandle: handleID,
		At:           at,
	}
	return true
}

// UpdateConnection moves the draft's tracked pointer position. It has no
// other side effect and is a no-op when idle.
func (s *Store) UpdateConnection(at Position) {
	if s.connection != nil {
		s.connection.At = at
	}
}

// CancelConnection discards the draft without creating an edge.
func (s *Store) CancelConnection() {
	s.connection = nil
}

// CompleteConnection commits the draft onto a target node side. See
// CompleteConnectionToHandle.
func (s *Store) CompleteConnection(target string, targetSide Side) *Edge {
	return s.CompleteConnectionToHandle(target, targetSide, "")
}

// CompleteConnectionToHandle commits the draft onto a target node,
// optionally naming a specific target handle. Validation is silent: the
// draft is discarded and nil returned when there is no draft, the target
// equals the source (no self-loops), the target node is missing, or an
// edge already occupies the same connection slot. On success the new edge
// carries the store's default edge options and is inserted. Either outcome
// returns the state machine to idle.
func (s *Store) CompleteConnectionToHandle(target string, targetSide Side, targetHandleID string) *Edge {
	conn := s.connection
	if conn == nil {
		return nil
	}
	s.connection = nil

	if conn.Source == target || s.Node(target) == nil {
		return nil
	}

	e := NewEdge(newEdgeID(conn.Source, target), conn.Source, target)
	e.SourceSide = conn.SourceSide
	e.TargetSide = targetSide
	e.SourceHandle = conn.SourceHandle
	e.TargetHandle = targetHandleID
	e.Kind = s.edgeDefaults.Kind
	e.Animated = s.edgeDefaults.Animated
	if s.edgeDefaults.Stroke != "" {
		e.Stroke = s.edgeDefaults.Stroke
	}
	if s.edgeDefaults.StrokeWidth > 0 {
		e.StrokeWidth = s.edgeDefaults.StrokeWidth
	}

	if !s.AddEdge(e) {
		return nil
	}
	s.listener.ConnectionCompleted(e)
	return e
}

// newEdgeID derives an edge ID from the endpoint IDs plus a short unique
// suffix, so several handle pairs between the same two nodes never collide.
func newEdgeID(source, target string) string {
	return fmt.Sprintf("e%s-%s-%s", source, target, uuid.NewString()[:8])
}
