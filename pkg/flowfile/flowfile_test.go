package flowfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

const sampleDoc = `{
  "nodes": [
    {"id": "input", "x": 0, "y": 0, "kind": "source",
     "handles": [{"id": "out", "role": "source", "side": "right", "offset": 0.25}]},
    {"id": "process", "x": 250, "y": 0, "width": 200, "height": 60,
     "draggable": false,
     "extent": {"x": 0, "y": 0, "width": 800, "height": 600}},
    {"id": "output", "x": 550, "y": 0}
  ],
  "edges": [
    {"id": "e1", "source": "input", "target": "process",
     "sourceHandle": "out", "targetSide": "left", "kind": "smoothstep"},
    {"id": "e2", "source": "process", "target": "output", "animated": true}
  ],
  "viewport": {"x": 10, "y": 20, "zoom": 1.5}
}`

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, 2, s.EdgeCount())

	input := s.Node("input")
	require.NotNil(t, input)
	assert.Equal(t, "source", input.Kind)
	h, ok := input.Handle("out")
	require.True(t, ok)
	assert.Equal(t, flow.SideRight, h.Side)
	assert.Equal(t, 0.25, h.Offset)

	process := s.Node("process")
	require.NotNil(t, process)
	assert.False(t, process.Draggable)
	assert.True(t, process.Selectable, "omitted flags default to true")
	require.NotNil(t, process.Extent)
	assert.Equal(t, 800.0, process.Extent.Width)

	e1 := s.Edge("e1")
	require.NotNil(t, e1)
	assert.Equal(t, flow.PathSmoothStep, e1.Kind)
	assert.Equal(t, "out", e1.SourceHandle)
	assert.Equal(t, flow.SideLeft, e1.TargetSide)

	v := s.Viewport()
	assert.Equal(t, flow.Viewport{X: 10, Y: 20, Zoom: 1.5}, v)
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "DuplicateNode",
			doc:     `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`,
			wantErr: ErrDuplicateNode,
		},
		{
			name:    "UnknownEndpoint",
			doc:     `{"nodes": [{"id": "a"}], "edges": [{"id": "e1", "source": "a", "target": "ghost"}]}`,
			wantErr: ErrUnknownEndpoint,
		},
		{
			name:    "BadSide",
			doc:     `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"id": "e1", "source": "a", "target": "b", "sourceSide": "diagonal"}]}`,
			wantErr: ErrBadSide,
		},
		{
			name:    "BadPathKind",
			doc:     `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"id": "e1", "source": "a", "target": "b", "kind": "zigzag"}]}`,
			wantErr: ErrBadPathKind,
		},
		{
			name:    "BadHandleRole",
			doc:     `{"nodes": [{"id": "a", "handles": [{"id": "h", "role": "sink", "side": "top"}]}], "edges": []}`,
			wantErr: ErrBadHandleRole,
		},
		{
			name:    "BadHandleSide",
			doc:     `{"nodes": [{"id": "a", "handles": [{"id": "h", "role": "source", "side": "middle"}]}], "edges": []}`,
			wantErr: ErrBadSide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadMalformedJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`{"nodes": [`))
	assert.ErrorContains(t, err, "decode")
}

func TestRoundTrip(t *testing.T) {
	s, err := Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(s, &buf))

	back, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, FromStore(s), FromStore(back))
}

func TestWriteOmitsDefaults(t *testing.T) {
	s := flow.New()
	s.AddNode(flow.NewNode("a", 0, 0))
	s.AddNode(flow.NewNode("b", 200, 0))
	s.AddEdge(flow.NewEdge("e1", "a", "b"))

	var buf strings.Builder
	require.NoError(t, Write(s, &buf))
	out := buf.String()

	// Stock flags and sides stay out of the output.
	assert.NotContains(t, out, "selectable")
	assert.NotContains(t, out, "draggable")
	assert.NotContains(t, out, "sourceSide")
	assert.NotContains(t, out, `"kind": "bezier"`)
}

func TestZIndexPreserved(t *testing.T) {
	s := flow.New()
	s.AddNode(flow.NewNode("a", 0, 0))
	s.AddNode(flow.NewNode("b", 0, 0))
	s.BringToFront("a")

	var buf strings.Builder
	require.NoError(t, Write(s, &buf))
	back, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, s.Node("a").ZIndex, back.Node("a").ZIndex)

	// The running max is seeded from the loaded z-indices: a new node must
	// land on top.
	back.AddNode(flow.NewNode("c", 0, 0))
	assert.Greater(t, back.Node("c").ZIndex, back.Node("a").ZIndex)
}

func TestFileRoundTrip(t *testing.T) {
	s := flow.New()
	s.AddNode(flow.NewNode("a", 12, 34))

	path := filepath.Join(t.TempDir(), "diagram.json")
	require.NoError(t, WriteFile(s, path))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, flow.Position{X: 12, Y: 34}, back.Node("a").Position)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
