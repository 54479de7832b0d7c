// Package pkg provides the core libraries for flowgrid diagram editing.
//
// # Overview
//
// Flowgrid is an engine for node-and-edge diagrams: nodes sit at diagram
// coordinates, edges connect them through sides or named handles, and a
// viewport maps the diagram onto a screen. The pkg directory is organized
// into five areas:
//
//  1. [flow] - The editing engine (graph store, selection, connections,
//     history, clipboard, viewport) and edge path routing
//  2. [flowfile] - JSON serialization of diagrams
//  3. [render] - Static output: SVG, PNG, and Graphviz DOT
//  4. [errors] - Structured error codes and input validation
//  5. [observability] - Logging hooks for store events
//
// # Architecture
//
// The typical data flow through flowgrid:
//
//	Diagram file (JSON)
//	         ↓
//	flowfile.ReadFile → *flow.Store
//	         ↓
//	host mutations (CLI editor, HTTP API)
//	         ↓
//	render.RenderSVG / RenderPNG / ToDOT
//	         ↓
//	SVG, PNG, or DOT output
//
// The engine in [flow] is pure and synchronous: no I/O, no goroutines, no
// callbacks into the host beyond advisory listener events. Hosts own
// concurrency; the HTTP server serializes requests with a mutex, and the
// terminal editor drives the store from its update loop.
package pkg
