package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flowgrid/flowgrid/pkg/errors"
	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
	"github.com/flowgrid/flowgrid/pkg/observability"
	"github.com/flowgrid/flowgrid/pkg/render"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respondJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return false
	}
	return true
}

// ===== Graph =====

func (s *Server) handleGetGraph(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := flowfile.FromStore(s.store)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	var doc flowfile.Document
	if !decodeBody(w, r, &doc) {
		return
	}

	store, err := doc.ToStore()
	if err != nil {
		status := http.StatusBadRequest
		code := errors.ErrCodeInvalidFormat
		if stderrors.Is(err, flowfile.ErrDuplicateNode) {
			status, code = http.StatusConflict, errors.ErrCodeConflict
		}
		respondError(w, status, errors.Wrap(code, err, "invalid diagram"))
		return
	}

	store.SetListener(observability.NewLogListener(s.logger))

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ===== Nodes =====

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var doc flowfile.Node
	if !decodeBody(w, r, &doc) {
		return
	}
	if err := errors.ValidateEntityID(doc.ID); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	node, err := flowfile.DecodeNode(doc)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid node"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Node(node.ID) != nil {
		respondError(w, http.StatusConflict,
			errors.New(errors.ErrCodeConflict, "node %s already exists", node.ID))
		return
	}
	s.store.SaveToHistory()
	s.store.AddNode(node)
	respondJSON(w, http.StatusCreated, flowfile.EncodeNode(node))
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "nodeID")

	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.store.Node(id)
	if n == nil {
		respondError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id))
		return
	}
	respondJSON(w, http.StatusOK, flowfile.EncodeNode(n))
}

func (s *Server) handleMoveNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "nodeID")
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Node(id) == nil {
		respondError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id))
		return
	}
	s.store.SaveToHistory()
	s.store.UpdateNodePosition(id, flow.Position{X: body.X, Y: body.Y})
	respondJSON(w, http.StatusOK, flowfile.EncodeNode(s.store.Node(id)))
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "nodeID")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Node(id) == nil {
		respondError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id))
		return
	}
	s.store.SaveToHistory()
	s.store.RemoveNode(id)
	w.WriteHeader(http.StatusNoContent)
}

// ===== Edges =====

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var doc flowfile.Edge
	if !decodeBody(w, r, &doc) {
		return
	}
	if err := errors.ValidateEntityID(doc.ID); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	edge, err := flowfile.DecodeEdge(doc)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid edge"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Node(edge.Source) == nil || s.store.Node(edge.Target) == nil {
		respondError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeNodeNotFound, "edge endpoints must exist"))
		return
	}
	if s.store.ConnectionOccupied(edge) {
		respondError(w, http.StatusConflict,
			errors.New(errors.ErrCodeConflict, "connection slot already occupied"))
		return
	}
	s.store.SaveToHistory()
	s.store.AddEdge(edge)
	respondJSON(w, http.StatusCreated, flowfile.EncodeEdge(edge))
}

func (s *Server) handleRemoveEdge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "edgeID")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Edge(id) == nil {
		respondError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeEdgeNotFound, "edge %s not found", id))
		return
	}
	s.store.SaveToHistory()
	s.store.RemoveEdge(id)
	w.WriteHeader(http.StatusNoContent)
}

// ===== Viewport =====

func (s *Server) handleGetViewport(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	v := s.store.Viewport()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, flowfile.Viewport{X: v.X, Y: v.Y, Zoom: v.Zoom})
}

func (s *Server) handleSetViewport(w http.ResponseWriter, r *http.Request) {
	var body flowfile.Viewport
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	s.store.SetViewport(flow.Viewport{X: body.X, Y: body.Y, Zoom: body.Zoom})
	v := s.store.Viewport()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, flowfile.Viewport{X: v.X, Y: v.Y, Zoom: v.Zoom})
}

func (s *Server) handleFitView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Padding float64 `json:"padding"`
		Width   float64 `json:"width"`
		Height  float64 `json:"height"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Width <= 0 || body.Height <= 0 {
		respondError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "container dimensions must be positive"))
		return
	}

	s.mu.Lock()
	s.store.FitView(body.Padding, body.Width, body.Height)
	v := s.store.Viewport()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, flowfile.Viewport{X: v.X, Y: v.Y, Zoom: v.Zoom})
}

// ===== Selection =====

type selectionBody struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var body selectionBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ClearSelection()
	for _, id := range body.Nodes {
		s.store.SelectNode(id, true)
	}
	for _, id := range body.Edges {
		s.store.SelectEdge(id, true)
	}
	respondJSON(w, http.StatusOK, selectionBody{
		Nodes: s.store.SelectedNodes(),
		Edges: s.store.SelectedEdges(),
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.store.ClearSelection()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSelection(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.store.SaveToHistory()
	nodeIDs, edgeIDs := s.store.DeleteSelected()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, selectionBody{Nodes: nodeIDs, Edges: edgeIDs})
}

// ===== History =====

func (s *Server) handleUndo(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ok := s.store.Undo()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]bool{"applied": ok})
}

func (s *Server) handleRedo(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ok := s.store.Redo()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]bool{"applied": ok})
}

// ===== Clipboard =====

func (s *Server) handleCopy(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.store.CopySelected()
	has := s.store.HasClipboardContent()
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]bool{"copied": has})
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	s.store.SaveToHistory()
	ids := s.store.Paste(flow.Position{X: body.X, Y: body.Y})
	s.mu.Unlock()
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"nodes": ids})
}

// ===== Render =====

func (s *Server) handleRenderSVG(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	svg := render.RenderSVG(s.store, render.WithBackground("#ffffff"))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

func (s *Server) handleRenderPNG(w http.ResponseWriter, r *http.Request) {
	scale := 1.0
	if q := r.URL.Query().Get("scale"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v <= 0 || v > 8 {
			respondError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8]"))
			return
		}
		scale = v
	}

	s.mu.Lock()
	png, err := render.RenderPNG(s.store, scale, render.WithBackground("#ffffff"))
	s.mu.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "render failed"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	dot := render.ToDOT(s.store, render.DOTOptions{})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(dot))
}
