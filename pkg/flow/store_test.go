package flow

import (
	"math"
	"testing"
)

func TestAddNodeZIndex(t *testing.T) {
	tests := []struct {
		name     string
		add      func(s *Store)
		wantZ    map[string]int
		wantMaxZ int
	}{
		{
			name: "SequentialAssignment",
			add: func(s *Store) {
				s.AddNode(NewNode("a", 0, 0))
				s.AddNode(NewNode("b", 0, 0))
				s.AddNode(NewNode("c", 0, 0))
			},
			wantZ:    map[string]int{"a": 1, "b": 2, "c": 3},
			wantMaxZ: 3,
		},
		{
			name: "ExplicitRaisesRunningMax",
			add: func(s *Store) {
				n := NewNode("a", 0, 0)
				n.ZIndex = 10
				s.AddNode(n)
				s.AddNode(NewNode("b", 0, 0))
			},
			wantZ:    map[string]int{"a": 10, "b": 11},
			wantMaxZ: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.add(s)
			for id, want := range tt.wantZ {
				n := s.Node(id)
				if n == nil {
					t.Fatalf("node %s missing", id)
				}
				if n.ZIndex != want {
					t.Errorf("node %s ZIndex = %d, want %d", id, n.ZIndex, want)
				}
			}
			if s.maxZIndex != tt.wantMaxZ {
				t.Errorf("maxZIndex = %d, want %d", s.maxZIndex, tt.wantMaxZ)
			}
		})
	}
}

func TestRemoveNodeCascade(t *testing.T) {
	s := New()
	s.AddNode(NewNode("a", 0, 0))
	s.AddNode(NewNode("b", 200, 0))
	s.AddNode(NewNode("c", 400, 0))
	s.AddEdge(NewEdge("e1", "a", "b"))
	s.AddEdge(NewEdge("e2", "b", "c"))
	s.AddEdge(NewEdge("e3", "a", "c"))
	s.SelectNode("b", false)

	s.RemoveNode("b")

	if s.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", s.NodeCount())
	}
	if s.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", s.EdgeCount())
	}
	for _, e := range s.Edges() {
		if e.Source == "b" || e.Target == "b" {
			t.Errorf("edge %s still references removed node", e.ID)
		}
	}
	if len(s.SelectedNodes()) != 0 {
		t.Errorf("selection still contains removed node: %v", s.SelectedNodes())
	}
}

func TestAddEdgeDedup(t *testing.T) {
	tests := []struct {
		name      string
		second    func() *Edge
		wantAdded bool
	}{
		{
			name:      "IdenticalSlot",
			second:    func() *Edge { return NewEdge("e2", "a", "b") },
			wantAdded: false,
		},
		{
			name: "DifferentSides",
			second: func() *Edge {
				e := NewEdge("e2", "a", "b")
				e.SourceSide = SideRight
				e.TargetSide = SideLeft
				return e
			},
			wantAdded: true,
		},
		{
			name: "DifferentHandle",
			second: func() *Edge {
				e := NewEdge("e2", "a", "b")
				e.SourceHandle = "out2"
				return e
			},
			wantAdded: true,
		},
		{
			name:      "ReversedDirection",
			second:    func() *Edge { return NewEdge("e2", "b", "a") },
			wantAdded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddNode(NewNode("a", 0, 0))
			s.AddNode(NewNode("b", 200, 0))
			if !s.AddEdge(NewEdge("e1", "a", "b")) {
				t.Fatal("first AddEdge rejected")
			}

			added := s.AddEdge(tt.second())
			if added != tt.wantAdded {
				t.Errorf("AddEdge = %v, want %v", added, tt.wantAdded)
			}
			wantCount := 1
			if tt.wantAdded {
				wantCount = 2
			}
			if s.EdgeCount() != wantCount {
				t.Errorf("EdgeCount = %d, want %d", s.EdgeCount(), wantCount)
			}
		})
	}
}

func TestUpdateNodePosition(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Store, n *Node)
		move  Position
		want  Position
	}{
		{
			name:  "Plain",
			setup: func(s *Store, n *Node) {},
			move:  Position{X: 33, Y: 47},
			want:  Position{X: 33, Y: 47},
		},
		{
			name: "SnapRoundsToCell",
			setup: func(s *Store, n *Node) {
				s.SetSnapGrid(SnapGrid{Enabled: true, Size: 20})
			},
			move: Position{X: 33, Y: 47},
			want: Position{X: 40, Y: 40},
		},
		{
			name: "ExtentClampsFullBox",
			setup: func(s *Store, n *Node) {
				n.Width, n.Height = 100, 40
				n.Extent = &Rect{X: 0, Y: 0, Width: 300, Height: 200}
			},
			move: Position{X: 280, Y: 190},
			want: Position{X: 200, Y: 160},
		},
		{
			name: "SnapThenClamp",
			setup: func(s *Store, n *Node) {
				s.SetSnapGrid(SnapGrid{Enabled: true, Size: 50})
				n.Width, n.Height = 100, 40
				n.Extent = &Rect{X: 0, Y: 0, Width: 220, Height: 220}
			},
			move: Position{X: 190, Y: 30},
			want: Position{X: 120, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			n := NewNode("a", 0, 0)
			tt.setup(s, n)
			s.AddNode(n)

			s.UpdateNodePosition("a", tt.move)

			if got := s.Node("a").Position; got != tt.want {
				t.Errorf("position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapIdempotent(t *testing.T) {
	g := SnapGrid{Enabled: true, Size: 15}
	points := []Position{{X: 7, Y: 8}, {X: -22.5, Y: 3.1}, {X: 0, Y: 0}, {X: 149.9, Y: -149.9}}
	for _, p := range points {
		once := g.Snap(p)
		twice := g.Snap(once)
		if once != twice {
			t.Errorf("Snap not idempotent at %+v: %+v != %+v", p, once, twice)
		}
	}
}

func TestMoveSelectedNodes(t *testing.T) {
	s := New()
	s.AddNode(NewNode("a", 0, 0))
	fixed := NewNode("b", 100, 100)
	fixed.Draggable = false
	s.AddNode(fixed)
	s.AddNode(NewNode("c", 200, 200))

	s.SelectNode("a", false)
	s.SelectNode("b", true)
	// c stays unselected

	s.MoveSelectedNodes(10, -5)

	if got := s.Node("a").Position; got != (Position{X: 10, Y: -5}) {
		t.Errorf("a moved to %+v, want {10 -5}", got)
	}
	if got := s.Node("b").Position; got != (Position{X: 100, Y: 100}) {
		t.Errorf("non-draggable b moved to %+v", got)
	}
	if got := s.Node("c").Position; got != (Position{X: 200, Y: 200}) {
		t.Errorf("unselected c moved to %+v", got)
	}
}

func TestZOrder(t *testing.T) {
	s := New()
	s.AddNode(NewNode("A", 0, 0))
	s.AddNode(NewNode("B", 0, 0))
	s.AddNode(NewNode("C", 0, 0))

	s.BringToFront("A")

	got := renderOrder(s)
	want := []string{"B", "C", "A"}
	if !equalIDs(got, want) {
		t.Errorf("render order after BringToFront = %v, want %v", got, want)
	}

	s.SendToBack("C")
	got = renderOrder(s)
	want = []string{"C", "B", "A"}
	if !equalIDs(got, want) {
		t.Errorf("render order after SendToBack = %v, want %v", got, want)
	}
	if s.Node("C").ZIndex != 0 {
		t.Errorf("SendToBack ZIndex = %d, want 0", s.Node("C").ZIndex)
	}
}

func TestNodesByZIndexStable(t *testing.T) {
	s := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		n := NewNode(id, 0, 0)
		n.ZIndex = 5 // all equal: insertion order must win
		s.AddNode(n)
	}
	got := renderOrder(s)
	want := []string{"a", "b", "c", "d"}
	if !equalIDs(got, want) {
		t.Errorf("equal z-indices reordered: %v, want %v", got, want)
	}
}

func TestEdgeEndpoints(t *testing.T) {
	s := New()
	a := NewNode("a", 0, 0) // default 150x40
	a.Handles = []Handle{
		{ID: "out", Role: HandleSource, Side: SideRight, Offset: 0.25, Connectable: true},
	}
	s.AddNode(a)
	s.AddNode(NewNode("b", 300, 200))

	e := NewEdge("e1", "a", "b") // bottom -> top by side
	src, tgt, srcSide, tgtSide, ok := s.EdgeEndpoints(e)
	if !ok {
		t.Fatal("EdgeEndpoints reported missing nodes")
	}
	if src != (Position{X: 75, Y: 40}) || srcSide != SideBottom {
		t.Errorf("side source = %+v %v, want {75 40} bottom", src, srcSide)
	}
	if tgt != (Position{X: 375, Y: 200}) || tgtSide != SideTop {
		t.Errorf("side target = %+v %v, want {375 200} top", tgt, tgtSide)
	}

	e.SourceHandle = "out" // handle takes precedence over the side
	src, _, srcSide, _, _ = s.EdgeEndpoints(e)
	if srcSide != SideRight {
		t.Errorf("handle side = %v, want right", srcSide)
	}
	if src != (Position{X: 150, Y: 10}) {
		t.Errorf("handle point = %+v, want {150 10}", src)
	}
}

func TestContentBounds(t *testing.T) {
	s := New()
	if _, ok := s.ContentBounds(); ok {
		t.Error("empty store reported bounds")
	}
	s.AddNode(NewNode("a", 0, 0))
	s.AddNode(NewNode("b", 350, 100))
	b, ok := s.ContentBounds()
	if !ok {
		t.Fatal("bounds missing")
	}
	want := Rect{X: 0, Y: 0, Width: 500, Height: 140}
	if math.Abs(b.X-want.X) > 1e-9 || math.Abs(b.Width-want.Width) > 1e-9 ||
		math.Abs(b.Y-want.Y) > 1e-9 || math.Abs(b.Height-want.Height) > 1e-9 {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func renderOrder(s *Store) []string {
	var ids []string
	for _, n := range s.NodesByZIndex() {
		ids = append(ids, n.ID)
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
