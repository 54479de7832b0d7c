package flow

// Listener receives advisory notifications after store mutations. Events
// are signals for the host to react to (re-render, persist, log); they are
// never control flow and the store ignores anything a listener does.
//
// Click and drag-boundary events originate in the host's input layer; the
// Notify methods on Store fan them through the same listener so a host has
// a single observation point.
//
// Implementations must not call back into the store from an event method;
// the store is single-writer and mid-mutation when events fire.
type Listener interface {
	// NodeClicked reports a host-observed click on a node.
	NodeClicked(id string)
	// NodeDoubleClicked reports a host-observed double-click on a node.
	NodeDoubleClicked(id string)
	// NodeDragged fires after a node position mutation, with the final
	// (snapped, clamped) position.
	NodeDragged(id string, pos Position)
	// EdgeClicked reports a host-observed click on an edge.
	EdgeClicked(id string)
	// ConnectionCompleted fires when a draft connection commits an edge.
	ConnectionCompleted(e *Edge)
	// SelectionChanged fires after any selection mutation with the
	// resulting id lists.
	SelectionChanged(nodes, edges []string)
	// ViewportChanged fires after any camera mutation.
	ViewportChanged(v Viewport)
	// Deleted fires after DeleteSelected with the ids actually removed.
	Deleted(nodes, edges []string)
}

// NoopListener discards every event. It is the default listener.
type NoopListener struct{}

func (NoopListener) NodeClicked(string)                {}
func (NoopListener) NodeDoubleClicked(string)          {}
func (NoopListener) NodeDragged(string, Position)      {}
func (NoopListener) EdgeClicked(string)                {}
func (NoopListener) ConnectionCompleted(*Edge)         {}
func (NoopListener) SelectionChanged([]string, []string) {}
func (NoopListener) ViewportChanged(Viewport)          {}
func (NoopListener) Deleted([]string, []string)        {}

// SetListener registers the listener notified after mutations. A nil
// listener restores the discard-everything default.
func (s *Store) SetListener(l Listener) {
	if l == nil {
		l = NoopListener{}
	}
	s.listener = l
}

// NotifyNodeClicked forwards a host-observed node click to the listener.
func (s *Store) NotifyNodeClicked(id string) { s.listener.NodeClicked(id) }

// NotifyNodeDoubleClicked forwards a host-observed double-click to the
// listener.
func (s *Store) NotifyNodeDoubleClicked(id string) { s.listener.NodeDoubleClicked(id) }

// NotifyEdgeClicked forwards a host-observed edge click to the listener.
func (s *Store) NotifyEdgeClicked(id string) { s.listener.EdgeClicked(id) }
