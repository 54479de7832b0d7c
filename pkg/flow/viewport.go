package flow

import "math"

// zoomStep is the increment used by ZoomIn and ZoomOut.
const zoomStep = 0.2

// Viewport returns the current camera state.
func (s *Store) Viewport() Viewport { return s.viewport }

// SetViewport replaces the camera state, clamping zoom into bounds.
func (s *Store) SetViewport(v Viewport) {
	v.Zoom = clampZoom(v.Zoom)
	s.viewport = v
	s.listener.ViewportChanged(s.viewport)
}

// Pan shifts the camera by a screen-space delta.
func (s *Store) Pan(dx, dy float64) {
	s.viewport.X += dx
	s.viewport.Y += dy
	s.listener.ViewportChanged(s.viewport)
}

// Zoom changes the zoom factor by delta, keeping the diagram point under
// the screen-space anchor (ax, ay) fixed. Scroll-zoom, double-click zoom,
// and pinch-zoom all route through this anchor-preserving update.
func (s *Store) Zoom(delta, ax, ay float64) {
	s.SetZoom(s.viewport.Zoom+delta, ax, ay)
}

// SetZoom sets the zoom factor to an absolute value, anchored at the
// screen-space point (ax, ay). The factor is clamped into [MinZoom, MaxZoom].
func (s *Store) SetZoom(zoom, ax, ay float64) {
	oldZoom := s.viewport.Zoom
	newZoom := clampZoom(zoom)

	s.viewport.X = ax - (ax-s.viewport.X)*newZoom/oldZoom
	s.viewport.Y = ay - (ay-s.viewport.Y)*newZoom/oldZoom
	s.viewport.Zoom = newZoom
	s.listener.ViewportChanged(s.viewport)
}

// ZoomIn zooms in by one step around the anchor point.
func (s *Store) ZoomIn(ax, ay float64) { s.Zoom(zoomStep, ax, ay) }

// ZoomOut zooms out by one step around the anchor point.
func (s *Store) ZoomOut(ax, ay float64) { s.Zoom(-zoomStep, ax, ay) }

// FitView pans and zooms so every node is visible inside a container of
// the given screen dimensions, with padding diagram units around the
// content. The fitted zoom never exceeds 1 and never drops below MinZoom.
// A store with no nodes is left unchanged.
func (s *Store) FitView(padding, containerWidth, containerHeight float64) {
	bounds, ok := s.ContentBounds()
	if !ok {
		return
	}

	contentWidth := bounds.Width + padding*2
	contentHeight := bounds.Height + padding*2

	zoom := math.Min(containerWidth/contentWidth, containerHeight/contentHeight)
	zoom = math.Max(MinZoom, math.Min(zoom, 1))

	s.viewport.Zoom = zoom
	s.viewport.X = (containerWidth-contentWidth*zoom)/2 - (bounds.X-padding)*zoom
	s.viewport.Y = (containerHeight-contentHeight*zoom)/2 - (bounds.Y-padding)*zoom
	s.listener.ViewportChanged(s.viewport)
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}
