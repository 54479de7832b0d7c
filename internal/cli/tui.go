package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
)

// Terminal cells are not square, so diagram screen pixels map to cells with
// different horizontal and vertical densities.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	// moveStep is the diagram-unit distance a node moves per keypress when
	// snapping is off; with snapping on, moves go one grid cell at a time.
	moveStep = 10.0

	// pasteOffset shifts pasted content down-right so it never lands exactly
	// on the original.
	pasteOffset = 20.0
)

// =============================================================================
// editorModel - Interactive diagram editor
// =============================================================================

// editorMode distinguishes normal editing from the connect flow, where the
// next Tab/Enter choose and commit an edge target.
type editorMode int

const (
	modeNormal editorMode = iota
	modeConnect
)

// editorModel is the bubbletea model for the diagram editor. The store
// pointer is shared across model copies; all mutations happen on the update
// goroutine, which satisfies the store's single-writer requirement.
type editorModel struct {
	store *flow.Store
	path  string

	width  int
	height int

	mode   editorMode
	target string // prospective connection target while in connect mode

	status string
	dirty  bool
}

func newEditorModel(path string, s *flow.Store) editorModel {
	return editorModel{
		store:  s,
		path:   path,
		status: "n: add node · tab: select · ?: more keys in help bar",
	}
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeConnect {
			return m.updateConnect(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// =============================================================================
// Key handling
// =============================================================================

func (m editorModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "s":
		if err := flowfile.WriteFile(m.store, m.path); err != nil {
			m.status = "save failed: " + err.Error()
			return m, nil
		}
		m.dirty = false
		m.status = "saved " + m.path
		return m, nil

	case "tab":
		m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m.cycleSelection(-1)
		return m, nil
	case "A":
		m.store.SelectAll()
		m.status = "selected everything"
		return m, nil
	case "esc":
		m.store.ClearSelection()
		return m, nil

	case "up", "down", "left", "right":
		m.moveSelection(msg.String())
		return m, nil
	case "shift+up":
		m.store.Pan(0, cellHeight)
		return m, nil
	case "shift+down":
		m.store.Pan(0, -cellHeight)
		return m, nil
	case "shift+left":
		m.store.Pan(cellWidth, 0)
		return m, nil
	case "shift+right":
		m.store.Pan(-cellWidth, 0)
		return m, nil

	case "n":
		m.addNode()
		return m, nil
	case "c":
		return m.startConnect(), nil
	case "d", "backspace":
		if len(m.store.SelectedNodes())+len(m.store.SelectedEdges()) == 0 {
			m.status = "nothing selected"
			return m, nil
		}
		m.store.SaveToHistory()
		nodes, edges := m.store.DeleteSelected()
		if len(nodes)+len(edges) == 0 {
			m.status = "nothing deletable selected"
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("deleted %d nodes, %d edges", len(nodes), len(edges))
		return m, nil

	case "y":
		m.store.CopySelected()
		m.status = fmt.Sprintf("copied %d nodes", len(m.store.SelectedNodes()))
		return m, nil
	case "Y":
		m.exportSelection()
		return m, nil
	case "x":
		if len(m.store.SelectedNodes())+len(m.store.SelectedEdges()) == 0 {
			m.status = "nothing selected"
			return m, nil
		}
		m.store.SaveToHistory()
		nodes, edges := m.store.CutSelected()
		if len(nodes)+len(edges) > 0 {
			m.dirty = true
		}
		m.status = fmt.Sprintf("cut %d nodes, %d edges", len(nodes), len(edges))
		return m, nil
	case "p":
		if !m.store.HasClipboardContent() {
			m.status = "clipboard is empty"
			return m, nil
		}
		m.store.SaveToHistory()
		ids := m.store.Paste(flow.Position{X: pasteOffset, Y: pasteOffset})
		m.dirty = true
		m.status = fmt.Sprintf("pasted %d nodes", len(ids))
		return m, nil

	case "u":
		if m.store.Undo() {
			m.dirty = true
			m.status = "undid"
		} else {
			m.status = "nothing to undo"
		}
		return m, nil
	case "r":
		if m.store.Redo() {
			m.dirty = true
			m.status = "redid"
		} else {
			m.status = "nothing to redo"
		}
		return m, nil

	case "+", "=":
		cw, ch := m.canvasSize()
		m.store.ZoomIn(float64(cw)*cellWidth/2, float64(ch)*cellHeight/2)
		return m, nil
	case "-":
		cw, ch := m.canvasSize()
		m.store.ZoomOut(float64(cw)*cellWidth/2, float64(ch)*cellHeight/2)
		return m, nil
	case "f":
		cw, ch := m.canvasSize()
		m.store.FitView(40, float64(cw)*cellWidth, float64(ch)*cellHeight)
		return m, nil
	case "g":
		grid := m.store.SnapGrid()
		m.store.SetSnapEnabled(!grid.Enabled)
		if grid.Enabled {
			m.status = "snap off"
		} else {
			m.status = fmt.Sprintf("snap on (%g)", grid.Size)
		}
		return m, nil

	case "]":
		if n := m.firstSelected(); n != nil {
			m.store.SaveToHistory()
			m.store.BringToFront(n.ID)
			m.dirty = true
		}
		return m, nil
	case "[":
		if n := m.firstSelected(); n != nil {
			m.store.SaveToHistory()
			m.store.SendToBack(n.ID)
			m.dirty = true
		}
		return m, nil
	}
	return m, nil
}

func (m editorModel) updateConnect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.store.CancelConnection()
		m.mode = modeNormal
		m.target = ""
		m.status = "connection cancelled"
		return m, nil

	case "tab":
		m.target = m.nextTarget(1)
		m.trackTarget()
		return m, nil
	case "shift+tab":
		m.target = m.nextTarget(-1)
		m.trackTarget()
		return m, nil

	case "enter":
		conn := m.store.Connection()
		if conn == nil || m.target == "" {
			m.store.CancelConnection()
			m.mode = modeNormal
			return m, nil
		}
		src := m.store.Node(conn.Source)
		tgt := m.store.Node(m.target)
		m.mode = modeNormal
		m.target = ""
		if src == nil || tgt == nil {
			m.store.CancelConnection()
			return m, nil
		}

		// Route out of the side facing the target. StartConnection fixed the
		// source side early, so re-point the draft by cancelling and
		// restarting with the facing sides before committing.
		srcSide, tgtSide := facingSides(src, tgt)
		m.store.CancelConnection()

		probe := flow.NewEdge("probe", src.ID, tgt.ID)
		probe.SourceSide, probe.TargetSide = srcSide, tgtSide
		if m.store.ConnectionOccupied(probe) {
			m.status = fmt.Sprintf("%s and %s are already connected there", src.ID, tgt.ID)
			return m, nil
		}

		m.store.SaveToHistory()
		m.store.StartConnection(src.ID, srcSide, tgt.Center())
		if e := m.store.CompleteConnection(tgt.ID, tgtSide); e != nil {
			m.dirty = true
			m.status = fmt.Sprintf("connected %s %s %s", e.Source, iconArrow, e.Target)
		}
		return m, nil
	}
	return m, nil
}

// =============================================================================
// Editing helpers
// =============================================================================

// cycleSelection selects the next (or previous) node in z-order.
func (m *editorModel) cycleSelection(step int) {
	nodes := m.store.NodesByZIndex()
	if len(nodes) == 0 {
		return
	}
	idx := -1
	for i, n := range nodes {
		if n.Selected {
			idx = i
			break
		}
	}
	next := (idx + step + len(nodes)) % len(nodes)
	m.store.SelectNode(nodes[next].ID, false)
	m.status = "selected " + nodes[next].ID
}

// moveSelection nudges the selected nodes one step in the key's direction.
func (m *editorModel) moveSelection(key string) {
	if len(m.store.SelectedNodes()) == 0 {
		return
	}
	step := moveStep
	if grid := m.store.SnapGrid(); grid.Enabled && grid.Size > 0 {
		step = grid.Size
	}
	var dx, dy float64
	switch key {
	case "up":
		dy = -step
	case "down":
		dy = step
	case "left":
		dx = -step
	case "right":
		dx = step
	}
	m.store.SaveToHistory()
	m.store.MoveSelectedNodes(dx, dy)
	m.dirty = true
}

// addNode inserts a fresh node at the center of the visible canvas and
// selects it.
func (m *editorModel) addNode() {
	cw, ch := m.canvasSize()
	center := m.store.Viewport().ScreenToDiagram(float64(cw)*cellWidth/2, float64(ch)*cellHeight/2)

	m.store.SaveToHistory()
	id := m.nextNodeID()
	n := flow.NewNode(id, center.X, center.Y)
	m.store.AddNode(n)
	m.store.SelectNode(id, false)
	m.dirty = true
	m.status = "added " + id
}

// nextNodeID returns the first free ID of the form n1, n2, ...
func (m *editorModel) nextNodeID() string {
	for i := m.store.NodeCount() + 1; ; i++ {
		id := fmt.Sprintf("n%d", i)
		if m.store.Node(id) == nil {
			return id
		}
	}
}

// startConnect enters connect mode from the selected node.
func (m editorModel) startConnect() editorModel {
	src := m.firstSelected()
	if src == nil {
		m.status = "select a node first"
		return m
	}
	if !m.store.StartConnection(src.ID, flow.SideRight, src.Center()) {
		m.status = src.ID + " is not connectable"
		return m
	}
	m.mode = modeConnect
	m.target = m.nextTarget(1)
	m.trackTarget()
	if m.target == "" {
		m.store.CancelConnection()
		m.mode = modeNormal
		m.status = "no other node to connect to"
		return m
	}
	m.status = "connect: tab to pick target, enter to commit, esc to cancel"
	return m
}

// nextTarget cycles through candidate target nodes, skipping the draft's
// source.
func (m *editorModel) nextTarget(step int) string {
	conn := m.store.Connection()
	if conn == nil {
		return ""
	}
	var candidates []string
	for _, n := range m.store.NodesByZIndex() {
		if n.ID != conn.Source {
			candidates = append(candidates, n.ID)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	idx := -1
	for i, id := range candidates {
		if id == m.target {
			idx = i
			break
		}
	}
	return candidates[(idx+step+len(candidates))%len(candidates)]
}

// trackTarget keeps the draft's rubber-band endpoint on the current target.
func (m *editorModel) trackTarget() {
	if tgt := m.store.Node(m.target); tgt != nil {
		m.store.UpdateConnection(tgt.Center())
	}
}

// firstSelected returns the first selected node, or nil.
func (m *editorModel) firstSelected() *flow.Node {
	ids := m.store.SelectedNodes()
	if len(ids) == 0 {
		return nil
	}
	return m.store.Node(ids[0])
}

// exportSelection writes the selected subgraph as JSON to the OS clipboard,
// so diagrams can be pasted into other tools.
func (m *editorModel) exportSelection() {
	selected := m.store.SelectedNodes()
	if len(selected) == 0 {
		m.status = "nothing selected to export"
		return
	}
	inSelection := make(map[string]bool, len(selected))
	for _, id := range selected {
		inSelection[id] = true
	}

	var doc flowfile.Document
	for _, n := range m.store.Nodes() {
		if inSelection[n.ID] {
			doc.Nodes = append(doc.Nodes, flowfile.EncodeNode(n))
		}
	}
	for _, e := range m.store.Edges() {
		if inSelection[e.Source] && inSelection[e.Target] {
			doc.Edges = append(doc.Edges, flowfile.EncodeEdge(e))
		}
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.status = "clipboard unavailable: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d nodes to system clipboard", len(doc.Nodes))
}

// facingSides picks the edge sides pointing at each other, based on where
// the target sits relative to the source.
func facingSides(src, tgt *flow.Node) (flow.Side, flow.Side) {
	sc, tc := src.Center(), tgt.Center()
	dx := tc.X - sc.X
	dy := tc.Y - sc.Y
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return flow.SideRight, flow.SideLeft
		}
		return flow.SideLeft, flow.SideRight
	}
	if dy >= 0 {
		return flow.SideBottom, flow.SideTop
	}
	return flow.SideTop, flow.SideBottom
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// =============================================================================
// View
// =============================================================================

// Header and status bars take three rows; the rest is canvas.
const chromeRows = 3

func (m editorModel) canvasSize() (w, h int) {
	w = m.width
	h = m.height - chromeRows
	if w < 20 {
		w = 80
	}
	if h < 5 {
		h = 24
	}
	return w, h
}

func (m editorModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.canvasView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m editorModel) headerView() string {
	title := m.path
	if m.dirty {
		title += " *"
	}
	v := m.store.Viewport()
	info := fmt.Sprintf("  %d nodes · %d edges · zoom %.0f%%",
		m.store.NodeCount(), m.store.EdgeCount(), v.Zoom*100)
	if m.store.SnapGrid().Enabled {
		info += " · snap"
	}
	return StyleTitle.Render(title) + StyleDim.Render(info)
}

func (m editorModel) statusView() string {
	help := "q quit · s save · n node · c connect · d delete · y/x/p copy/cut/paste · u/r undo/redo · +/-/f zoom"
	if m.mode == modeConnect {
		help = "tab pick target · enter commit · esc cancel"
	}
	return StyleHighlight.Render(m.status) + "\n" + StyleDim.Render(help)
}

func (m editorModel) canvasView() string {
	w, h := m.canvasSize()
	c := newCanvas(w, h)
	v := m.store.Viewport()

	// Edges under nodes, draft connection on top of edges.
	for _, e := range m.store.Edges() {
		src, tgt, _, _, ok := m.store.EdgeEndpoints(e)
		if !ok {
			continue
		}
		x0, y0 := c.cell(v, src)
		x1, y1 := c.cell(v, tgt)
		mark := '·'
		if e.Selected {
			mark = '●'
		}
		c.line(x0, y0, x1, y1, mark)
	}
	if conn := m.store.Connection(); conn != nil {
		if src := m.store.Node(conn.Source); src != nil {
			x0, y0 := c.cell(v, src.SidePoint(conn.SourceSide))
			x1, y1 := c.cell(v, conn.At)
			c.line(x0, y0, x1, y1, '+')
		}
	}

	for _, n := range m.store.NodesByZIndex() {
		m.drawNode(c, v, n)
	}

	return c.String()
}

// drawNode renders one node box. Selected nodes get double borders; the
// connect-mode target is marked in its corner.
func (m editorModel) drawNode(c *canvas, v flow.Viewport, n *flow.Node) {
	sx, sy := v.DiagramToScreen(n.Position)
	nw, nh := n.Size()
	col := int(sx / cellWidth)
	row := int(sy / cellHeight)
	bw := max(6, int(nw*v.Zoom/cellWidth))
	bh := max(3, int(nh*v.Zoom/cellHeight))

	c.box(col, row, bw, bh, n.Selected)

	label := nodeTitle(n)
	if len(label) > bw-2 {
		label = label[:bw-2]
	}
	c.text(col+(bw-len(label))/2, row+bh/2, label)

	if m.mode == modeConnect && n.ID == m.target {
		c.set(col, row, '▸')
	}
}

// nodeTitle picks a display label: string data, a "label" data key, or the ID.
func nodeTitle(n *flow.Node) string {
	switch data := n.Data.(type) {
	case string:
		if data != "" {
			return data
		}
	case map[string]any:
		if label, ok := data["label"].(string); ok && label != "" {
			return label
		}
	}
	return n.ID
}

// =============================================================================
// canvas - rune grid the view draws into
// =============================================================================

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

// cell maps a diagram position through the viewport into canvas coordinates.
func (c *canvas) cell(v flow.Viewport, p flow.Position) (x, y int) {
	sx, sy := v.DiagramToScreen(p)
	return int(sx / cellWidth), int(sy / cellHeight)
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// line draws a straight rune line with a simple DDA walk.
func (c *canvas) line(x0, y0, x1, y1 int, r rune) {
	steps := max(absInt(x1-x0), absInt(y1-y0))
	if steps == 0 {
		c.set(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		c.set(x, y, r)
	}
}

// box draws a bordered rectangle, double-struck when selected.
func (c *canvas) box(x, y, w, h int, selected bool) {
	tl, tr, bl, br, hz, vt := '┌', '┐', '└', '┘', '─', '│'
	if selected {
		tl, tr, bl, br, hz, vt = '╔', '╗', '╚', '╝', '═', '║'
	}

	for i := 1; i < w-1; i++ {
		c.set(x+i, y, hz)
		c.set(x+i, y+h-1, hz)
	}
	for j := 1; j < h-1; j++ {
		c.set(x, y+j, vt)
		c.set(x+w-1, y+j, vt)
		for i := 1; i < w-1; i++ {
			c.set(x+i, y+j, ' ')
		}
	}
	c.set(x, y, tl)
	c.set(x+w-1, y, tr)
	c.set(x, y+h-1, bl)
	c.set(x+w-1, y+h-1, br)
}

func (c *canvas) text(x, y int, s string) {
	for i, r := range s {
		c.set(x+i, y, r)
	}
}

func (c *canvas) String() string {
	rows := make([]string, c.h)
	for i, row := range c.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
