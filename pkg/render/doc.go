// Package render turns a flow diagram into static output formats.
//
// # Overview
//
// Three sinks are provided:
//
//   - [RenderSVG] produces a standalone SVG document with nodes drawn in
//     z-order and edges routed through the path engine
//   - [RenderPNG] rasterizes the same scene onto a raster canvas
//   - [ToDOT] and [RenderDOTSVG] export the logical graph structure to
//     Graphviz for layout-free structural views
//
// The SVG and PNG sinks draw the diagram exactly as positioned: node
// coordinates come from the store and are never re-laid-out. The DOT sink
// deliberately discards positions and lets Graphviz compute its own
// arrangement, which is useful for inspecting connectivity.
//
// # Options
//
// The SVG and PNG renderers accept functional options:
//
//	svg := render.RenderSVG(store,
//	    render.WithPadding(40),
//	    render.WithBackground("#ffffff"),
//	)
//
// By default output is sized to the diagram's content bounds plus padding.
package render
