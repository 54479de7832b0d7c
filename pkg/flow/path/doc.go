// Package path routes edge geometry between resolved attachment points.
//
// Routing is a pure function of the path kind, the two endpoints, and
// their handle sides; it is the only place edge geometry is computed.
// [Route] dispatches to the four routines:
//
//   - straight: a direct line segment
//   - bezier: a cubic curve with control points displaced along the
//     outward normal of each handle side
//   - step: a single-bend orthogonal route via the midline
//   - smoothstep: the orthogonal route with rounded corners, falling back
//     to the bezier curve when the target sits behind the source along
//     the routing axis (a midline route would double back through the
//     source node)
//
// A [Path] is a sequence of move/line/quadratic/cubic segments. SVG hosts
// serialize it with [Path.SVG]; raster hosts walk the segments directly.
package path
