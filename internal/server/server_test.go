package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
)

func testServer() *httptest.Server {
	store := flow.New()
	store.AddNode(flow.NewNode("a", 0, 0))
	store.AddNode(flow.NewNode("b", 300, 0))
	store.AddEdge(flow.NewEdge("e1", "a", "b"))

	logger := log.New(io.Discard)
	return httptest.NewServer(New(store, logger).Router())
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetGraph(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/graph")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc flowfile.Document
	decodeInto(t, resp, &doc)
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Edges, 1)
	require.NotNil(t, doc.Viewport)
	assert.Equal(t, 1.0, doc.Viewport.Zoom)
}

func TestPutGraphReplacesDiagram(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	doc := flowfile.Document{
		Nodes: []flowfile.Node{{ID: "x", X: 10, Y: 10}},
	}
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/v1/graph", doc)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/v1/graph")
	require.NoError(t, err)
	var got flowfile.Document
	decodeInto(t, resp, &got)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, "x", got.Nodes[0].ID)
}

func TestPutGraphRejectsDuplicates(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	doc := flowfile.Document{
		Nodes: []flowfile.Node{{ID: "x"}, {ID: "x"}},
	}
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/v1/graph", doc)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var e errorResponse
	decodeInto(t, resp, &e)
	assert.Equal(t, "CONFLICT", string(e.Code))
}

func TestNodeLifecycle(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	// Create.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/nodes", flowfile.Node{ID: "c", X: 50, Y: 60})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created flowfile.Node
	decodeInto(t, resp, &created)
	assert.Equal(t, "c", created.ID)
	assert.NotZero(t, created.ZIndex, "z-index assigned on insert")

	// Duplicate create conflicts.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/nodes", flowfile.Node{ID: "c"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Move.
	resp = doJSON(t, http.MethodPatch, ts.URL+"/api/v1/nodes/c/position", map[string]float64{"x": 120, "y": 80})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var moved flowfile.Node
	decodeInto(t, resp, &moved)
	assert.Equal(t, 120.0, moved.X)

	// Fetch.
	resp, err := http.Get(ts.URL + "/api/v1/nodes/c")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Delete.
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/nodes/c", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/nodes/c")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAddNodeRejectsBadID(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/nodes", flowfile.Node{ID: "../etc"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorResponse
	decodeInto(t, resp, &e)
	assert.Equal(t, "INVALID_INPUT", string(e.Code))
}

func TestRemoveNodeCascades(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/nodes/a", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/v1/graph")
	require.NoError(t, err)
	var doc flowfile.Document
	decodeInto(t, resp, &doc)
	assert.Len(t, doc.Nodes, 1)
	assert.Empty(t, doc.Edges, "edge cascade-removed with its endpoint")
}

func TestAddEdge(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	// Same slot as the seeded e1: conflict.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/edges", flowfile.Edge{ID: "e2", Source: "a", Target: "b"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Different sides: accepted.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/edges", flowfile.Edge{
		ID: "e2", Source: "a", Target: "b", SourceSide: "right", TargetSide: "left",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Unknown endpoint: 404.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/edges", flowfile.Edge{ID: "e3", Source: "a", Target: "ghost"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestViewport(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/v1/viewport", flowfile.Viewport{X: 10, Y: 20, Zoom: 99})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var v flowfile.Viewport
	decodeInto(t, resp, &v)
	assert.Equal(t, flow.MaxZoom, v.Zoom, "zoom clamped into bounds")

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/viewport/fit", map[string]float64{
		"padding": 50, "width": 800, "height": 600,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &v)
	assert.LessOrEqual(t, v.Zoom, 1.0)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/viewport/fit", map[string]float64{"width": -1, "height": 600})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelectionAndDelete(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/v1/selection", selectionBody{Nodes: []string{"a", "ghost"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sel selectionBody
	decodeInto(t, resp, &sel)
	assert.Equal(t, []string{"a"}, sel.Nodes, "unknown IDs silently skipped")

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/selection/delete", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var removed selectionBody
	decodeInto(t, resp, &removed)
	assert.Equal(t, []string{"a"}, removed.Nodes)
	assert.Equal(t, []string{"e1"}, removed.Edges)
}

func TestUndoRedoEndpoints(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	// Nothing to undo yet.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/history/undo", nil)
	var result map[string]bool
	decodeInto(t, resp, &result)
	assert.False(t, result["applied"])

	// A mutation snapshots first, so undo restores the prior graph.
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/nodes", flowfile.Node{ID: "c"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/history/undo", nil)
	decodeInto(t, resp, &result)
	assert.True(t, result["applied"])

	getResp, err := http.Get(ts.URL + "/api/v1/nodes/c")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	getResp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/history/redo", nil)
	decodeInto(t, resp, &result)
	assert.True(t, result["applied"])
}

func TestCopyPasteEndpoints(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/v1/selection", selectionBody{Nodes: []string{"a"}})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/clipboard/copy", nil)
	var copied map[string]bool
	decodeInto(t, resp, &copied)
	assert.True(t, copied["copied"])

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/clipboard/paste", map[string]float64{"x": 20, "y": 20})
	var pasted map[string][]string
	decodeInto(t, resp, &pasted)
	require.Len(t, pasted["nodes"], 1)
	assert.NotEqual(t, "a", pasted["nodes"][0])
}

func TestRenderEndpoints(t *testing.T) {
	ts := testServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/render.svg")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "<svg"))

	resp, err = http.Get(ts.URL + "/api/v1/render.dot")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "digraph G {")

	resp, err = http.Get(ts.URL + "/api/v1/render.png?scale=0")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
