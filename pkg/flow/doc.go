// Package flow implements the state engine behind an interactive node-link
// diagram editor: the graph of nodes and edges, the camera (pan/zoom)
// viewport, multi-selection, in-progress connection drafting, and
// undo/redo/clipboard history.
//
// # Architecture
//
// The engine is a pure, synchronous, single-writer data structure. It never
// renders, performs no I/O, and has no internal goroutines. A host UI loop
// owns a [Store], translates raw input into mutation calls, and re-reads
// node/edge/viewport/selection state after each call to redraw:
//
//	store := flow.New()
//	store.AddNode(flow.NewNode("a", 0, 0))
//	store.AddNode(flow.NewNode("b", 300, 120))
//	store.StartConnection("a", flow.SideBottom, flow.Position{X: 75, Y: 40})
//	edge := store.CompleteConnection("b", flow.SideTop)
//
// # Coordinate spaces
//
// Node positions live in diagram space (unscaled). The [Viewport] maps
// diagram space to screen space via a pan offset and a uniform zoom factor;
// [Viewport.ScreenToDiagram] and [Viewport.DiagramToScreen] are exact
// inverses up to floating-point tolerance.
//
// # Error model
//
// Expected "can't do that right now" situations are silent, well-defined
// no-ops: selecting a non-selectable entity, connecting a node to itself,
// adding a duplicate edge, undoing an empty stack, pasting an empty
// clipboard. Where a method has a return value it reports an explicit
// "nothing happened" signal (false, nil, empty slice) instead of an error.
// Lookups that miss return nil; a host should treat persistently-absent
// lookups as a bug in its own layer.
//
// # Concurrency
//
// A Store is not safe for concurrent use. All reads and writes must happen
// on one logical thread, typically the host's event-dispatch loop. Every
// method runs to completion before returning; "waiting" (for example, for
// the pointer to release over a target handle) is modeled as explicit state,
// not as a blocked computation.
//
// # Notifications
//
// A [Listener] registered via [Store.SetListener] receives advisory events
// after mutations (selection changed, viewport changed, connection
// completed, entities deleted). Events are signals for the host, never
// control flow; the default listener discards everything.
package flow
