package flow

import "testing"

func TestSelectNode(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(s *Store)
		selects   []struct {
			id    string
			multi bool
		}
		wantNodes []string
	}{
		{
			name:  "SingleReplacesSelection",
			setup: func(s *Store) {},
			selects: []struct {
				id    string
				multi bool
			}{{"a", false}, {"b", false}},
			wantNodes: []string{"b"},
		},
		{
			name:  "MultiAccumulates",
			setup: func(s *Store) {},
			selects: []struct {
				id    string
				multi bool
			}{{"a", false}, {"b", true}},
			wantNodes: []string{"a", "b"},
		},
		{
			name:  "Idempotent",
			setup: func(s *Store) {},
			selects: []struct {
				id    string
				multi bool
			}{{"a", false}, {"a", true}},
			wantNodes: []string{"a"},
		},
		{
			name: "NonSelectableNoOp",
			setup: func(s *Store) {
				s.Node("a").Selectable = false
			},
			selects: []struct {
				id    string
				multi bool
			}{{"a", false}},
			wantNodes: nil,
		},
		{
			name:  "UnknownNoOp",
			setup: func(s *Store) {},
			selects: []struct {
				id    string
				multi bool
			}{{"nope", false}},
			wantNodes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddNode(NewNode("a", 0, 0))
			s.AddNode(NewNode("b", 200, 0))
			tt.setup(s)

			for _, sel := range tt.selects {
				s.SelectNode(sel.id, sel.multi)
			}

			if got := s.SelectedNodes(); !equalIDs(got, tt.wantNodes) {
				t.Errorf("SelectedNodes = %v, want %v", got, tt.wantNodes)
			}
			for _, id := range tt.wantNodes {
				if !s.Node(id).Selected {
					t.Errorf("node %s Selected flag not set", id)
				}
			}
		})
	}
}

func TestSelectEdge(t *testing.T) {
	s := New()
	s.AddNode(NewNode("a", 0, 0))
	s.AddNode(NewNode("b", 200, 0))
	s.AddEdge(NewEdge("e1", "a", "b"))
	locked := NewEdge("e2", "b", "a")
	locked.Selectable = false
	s.AddEdge(locked)

	s.SelectEdge("e1", false)
	if got := s.SelectedEdges(); !equalIDs(got, []string{"e1"}) {
		t.Errorf("SelectedEdges = %v, want [e1]", got)
	}

	s.SelectEdge("e2", true)
	if got := s.SelectedEdges(); !equalIDs(got, []string{"e1"}) {
		t.Errorf("non-selectable edge selected: %v", got)
	}

	// Selecting a node without multi clears the edge selection too.
	s.SelectNode("a", false)
	if got := s.SelectedEdges(); len(got) != 0 {
		t.Errorf("edge selection survived single node select: %v", got)
	}
}

func TestSelectInRect(t *testing.T) {
	s := New()
	s.AddNode(NewNode("n1", 0, 0))
	s.AddNode(NewNode("n2", 200, 0))
	s.AddNode(NewNode("n3", 500, 500))

	s.SelectInRect(Rect{X: 0, Y: 0, Width: 250, Height: 50}, false)

	if got := s.SelectedNodes(); !equalIDs(got, []string{"n1", "n2"}) {
		t.Errorf("box select = %v, want [n1 n2]", got)
	}
}

func TestSelectInRectSkipsNonSelectable(t *testing.T) {
	s := New()
	locked := NewNode("a", 0, 0)
	locked.Selectable = false
	s.AddNode(locked)
	s.AddNode(NewNode("b", 10, 10))

	s.SelectInRect(Rect{X: 0, Y: 0, Width: 400, Height: 400}, false)

	if got := s.SelectedNodes(); !equalIDs(got, []string{"b"}) {
		t.Errorf("box select = %v, want [b]", got)
	}
}

func TestSelectAllAndClear(t *testing.T) {
	s := New()
	s.AddNode(NewNode("a", 0, 0))
	locked := NewNode("b", 200, 0)
	locked.Selectable = false
	s.AddNode(locked)
	s.AddEdge(NewEdge("e1", "a", "b"))

	s.SelectAll()
	if got := s.SelectedNodes(); !equalIDs(got, []string{"a"}) {
		t.Errorf("SelectAll nodes = %v, want [a]", got)
	}
	if got := s.SelectedEdges(); !equalIDs(got, []string{"e1"}) {
		t.Errorf("SelectAll edges = %v, want [e1]", got)
	}

	// ClearSelection resets flags even on non-selectable entities.
	locked.Selected = true
	s.ClearSelection()
	if len(s.SelectedNodes()) != 0 || len(s.SelectedEdges()) != 0 {
		t.Error("selection not cleared")
	}
	if locked.Selected {
		t.Error("ClearSelection left a Selected flag set")
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"Overlapping", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"Touching", Rect{X: 100, Y: 0, Width: 50, Height: 50}, true},
		{"EntirelyRight", Rect{X: 101, Y: 0, Width: 10, Height: 10}, false},
		{"EntirelyBelow", Rect{X: 0, Y: 101, Width: 10, Height: 10}, false},
		{"Contained", Rect{X: 25, Y: 25, Width: 10, Height: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.r); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.r.Intersects(base); got != tt.want {
				t.Errorf("Intersects (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
