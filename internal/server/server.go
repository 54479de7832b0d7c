// Package server exposes a flow diagram over an HTTP JSON API.
//
// The engine itself is single-writer; the server is the writer. Every
// handler takes the server mutex, so concurrent HTTP requests serialize
// into the ordered mutation stream the engine expects.
//
// # Endpoints
//
// The API lives under /api/v1:
//
//	GET    /graph                 full diagram document
//	PUT    /graph                 replace the diagram
//	POST   /nodes                 add a node
//	GET    /nodes/{nodeID}        fetch one node
//	PATCH  /nodes/{nodeID}/position  move a node
//	DELETE /nodes/{nodeID}        remove a node (cascades edges)
//	POST   /edges                 add an edge
//	DELETE /edges/{edgeID}        remove an edge
//	GET    /viewport              camera state
//	PUT    /viewport              set camera state
//	POST   /viewport/fit          fit content into a container
//	PUT    /selection             replace the selection
//	DELETE /selection             clear the selection
//	POST   /selection/delete      delete the selection
//	POST   /history/undo          undo
//	POST   /history/redo          redo
//	POST   /clipboard/copy        copy the selection
//	POST   /clipboard/paste       paste with an offset
//	GET    /render.svg            SVG snapshot
//	GET    /render.png            PNG snapshot
//	GET    /render.dot            Graphviz DOT export
//
// Mutations that the engine treats as silent no-ops (unknown IDs,
// duplicate connection slots) surface here as 404 or 409 so API clients
// get actionable feedback.
package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/observability"
)

// Server wraps a store with the mutex that makes it safe to drive from
// concurrent HTTP requests.
type Server struct {
	mu     sync.Mutex
	store  *flow.Store
	logger *log.Logger
}

// New creates a server around an existing store. The store must not be
// mutated elsewhere while the server is running. Store events are logged at
// debug level.
func New(store *flow.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	store.SetListener(observability.NewLogListener(logger))
	return &Server{store: store, logger: logger}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/graph", s.handleGetGraph)
		r.Put("/graph", s.handlePutGraph)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", s.handleAddNode)
			r.Get("/{nodeID}", s.handleGetNode)
			r.Patch("/{nodeID}/position", s.handleMoveNode)
			r.Delete("/{nodeID}", s.handleRemoveNode)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Post("/", s.handleAddEdge)
			r.Delete("/{edgeID}", s.handleRemoveEdge)
		})

		r.Route("/viewport", func(r chi.Router) {
			r.Get("/", s.handleGetViewport)
			r.Put("/", s.handleSetViewport)
			r.Post("/fit", s.handleFitView)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Put("/", s.handleSetSelection)
			r.Delete("/", s.handleClearSelection)
			r.Post("/delete", s.handleDeleteSelection)
		})

		r.Route("/history", func(r chi.Router) {
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
		})

		r.Route("/clipboard", func(r chi.Router) {
			r.Post("/copy", s.handleCopy)
			r.Post("/paste", s.handlePaste)
		})

		r.Get("/render.svg", s.handleRenderSVG)
		r.Get("/render.png", s.handleRenderPNG)
		r.Get("/render.dot", s.handleRenderDOT)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
