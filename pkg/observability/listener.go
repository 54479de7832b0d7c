// Package observability provides hooks for observing diagram mutations.
//
// This package bridges the flow store's Listener interface to structured
// logging without adding observability dependencies to the engine itself.
// Hosts attach a LogListener at startup to get a debug trail of every
// mutation the store reports.
//
// # Usage
//
// Attach a listener when constructing the store:
//
//	store := flow.New()
//	store.SetListener(observability.NewLogListener(logger))
//
// The store fires events mid-mutation, so listener methods only log; they
// never call back into the store.
package observability

import (
	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// LogListener logs every store event at debug level. It is a flow.Listener.
type LogListener struct {
	logger *log.Logger
}

// NewLogListener creates a listener writing to the given logger. A nil
// logger falls back to log.Default().
func NewLogListener(logger *log.Logger) *LogListener {
	if logger == nil {
		logger = log.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) NodeClicked(id string) {
	l.logger.Debug("node clicked", "node", id)
}

func (l *LogListener) NodeDoubleClicked(id string) {
	l.logger.Debug("node double-clicked", "node", id)
}

func (l *LogListener) NodeDragged(id string, pos flow.Position) {
	l.logger.Debug("node dragged", "node", id, "x", pos.X, "y", pos.Y)
}

func (l *LogListener) EdgeClicked(id string) {
	l.logger.Debug("edge clicked", "edge", id)
}

func (l *LogListener) ConnectionCompleted(e *flow.Edge) {
	l.logger.Debug("connection completed", "edge", e.ID, "source", e.Source, "target", e.Target)
}

func (l *LogListener) SelectionChanged(nodes, edges []string) {
	l.logger.Debug("selection changed", "nodes", len(nodes), "edges", len(edges))
}

func (l *LogListener) ViewportChanged(v flow.Viewport) {
	l.logger.Debug("viewport changed", "x", v.X, "y", v.Y, "zoom", v.Zoom)
}

func (l *LogListener) Deleted(nodes, edges []string) {
	l.logger.Debug("deleted", "nodes", nodes, "edges", edges)
}
