package flow_test

import (
	"fmt"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

func ExampleStore_basic() {
	// Build a small two-node diagram with one edge
	s := flow.New()
	s.AddNode(flow.NewNode("input", 0, 0))
	s.AddNode(flow.NewNode("output", 0, 200))
	s.AddEdge(flow.NewEdge("e1", "input", "output"))

	fmt.Println("Nodes:", s.NodeCount())
	fmt.Println("Edges:", s.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 1
}

func ExampleStore_RemoveNode() {
	// Removing a node cascades to every edge touching it
	s := flow.New()
	s.AddNode(flow.NewNode("a", 0, 0))
	s.AddNode(flow.NewNode("b", 200, 0))
	s.AddEdge(flow.NewEdge("e1", "a", "b"))

	s.RemoveNode("a")
	fmt.Println("Nodes:", s.NodeCount())
	fmt.Println("Edges:", s.EdgeCount())
	// Output:
	// Nodes: 1
	// Edges: 0
}

func ExampleStore_connection() {
	// Drag a connection from one node and drop it on another
	s := flow.New()
	s.AddNode(flow.NewNode("src", 0, 0))
	s.AddNode(flow.NewNode("dst", 300, 0))

	s.StartConnection("src", flow.SideRight, flow.Position{X: 150, Y: 20})
	s.UpdateConnection(flow.Position{X: 250, Y: 20})
	edge := s.CompleteConnection("dst", flow.SideLeft)

	fmt.Println("Connected:", edge.Source, "->", edge.Target)
	fmt.Println("Sides:", edge.SourceSide, "->", edge.TargetSide)
	// Output:
	// Connected: src -> dst
	// Sides: right -> left
}

func ExampleStore_Undo() {
	// Snapshot before a mutation, then roll it back
	s := flow.New()
	s.AddNode(flow.NewNode("a", 0, 0))

	s.SaveToHistory()
	s.AddNode(flow.NewNode("b", 200, 0))
	fmt.Println("Before undo:", s.NodeCount())

	s.Undo()
	fmt.Println("After undo:", s.NodeCount())

	s.Redo()
	fmt.Println("After redo:", s.NodeCount())
	// Output:
	// Before undo: 2
	// After undo: 1
	// After redo: 2
}

func ExampleViewport_ScreenToDiagram() {
	// A viewport maps screen pixels to diagram coordinates
	v := flow.Viewport{X: 100, Y: 50, Zoom: 2}

	p := v.ScreenToDiagram(300, 250)
	fmt.Printf("Diagram point: %g,%g\n", p.X, p.Y)

	sx, sy := v.DiagramToScreen(p)
	fmt.Printf("Back on screen: %g,%g\n", sx, sy)
	// Output:
	// Diagram point: 100,100
	// Back on screen: 300,250
}

func ExampleStore_Paste() {
	// Copy a node and paste it with an offset
	s := flow.New()
	s.AddNode(flow.NewNode("a", 100, 100))
	s.SelectNode("a", false)

	s.CopySelected()
	ids := s.Paste(flow.Position{X: 20, Y: 20})

	pasted := s.Node(ids[0])
	fmt.Printf("Pasted at: %g,%g\n", pasted.Position.X, pasted.Position.Y)
	fmt.Println("Nodes:", s.NodeCount())
	// Output:
	// Pasted at: 120,120
	// Nodes: 2
}
