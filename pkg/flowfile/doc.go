// Package flowfile provides JSON import and export for flow diagrams.
//
// # Overview
//
// This package serializes a diagram (nodes, edges, and optionally the
// viewport) to and from a simple JSON format. The format is designed for:
//
//   - Persisting an editing session to disk and restoring it later
//   - Integration with external tools that produce or consume diagram data
//   - Round-trip preservation: import, edit, export, and re-import identically
//
// # JSON Format
//
// The format has two required top-level arrays and an optional viewport:
//
//	{
//	  "nodes": [
//	    {"id": "input", "x": 0, "y": 0},
//	    {"id": "output", "x": 0, "y": 200}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "input", "target": "output"}
//	  ],
//	  "viewport": {"x": 0, "y": 0, "zoom": 1}
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - x, y: Diagram-space position of the node's top-left corner
//
// Optional:
//   - width, height: Box dimensions (engine defaults apply when omitted)
//   - kind: Presentation dispatch tag (defaults to "default")
//   - zIndex: Layering key (assigned on insert when omitted)
//   - handles: Named connection points with role, side, and offset
//   - extent: Movement bounding box for dragging
//   - class, style, data: Opaque presentation and application payloads
//   - selectable, draggable, deletable, connectable: Behavior flags,
//     defaulting to true when omitted
//
// # Edge Fields
//
// Required:
//   - id, source, target
//
// Optional:
//   - sourceSide, targetSide: Attachment sides (default bottom and top)
//   - sourceHandle, targetHandle: Named handle attachments, which take
//     precedence over the sides
//   - kind: Path routing ("bezier", "straight", "step", "smoothstep")
//   - label, stroke, strokeWidth, animated, class
//   - selectable, deletable: Behavior flags, defaulting to true
//
// # Import
//
// Use [ReadFile] to read a diagram from a file path, or [Read] to read
// from any io.Reader:
//
//	s, err := flowfile.ReadFile("diagram.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the document: node IDs must be unique, edge
// endpoints must reference declared nodes, and side and kind names must
// be recognized. Errors are wrapped with context about which node or edge
// caused the problem; use errors.Is to check for the sentinel errors.
//
// # Export
//
// Use [WriteFile] to write a diagram to a file, or [Write] to write to any
// io.Writer:
//
//	err := flowfile.WriteFile(s, "diagram.json")
//
// The export includes all node and edge data plus the viewport. Transient
// editor state (selection, draft connections, history, clipboard) is not
// part of the format.
package flowfile
