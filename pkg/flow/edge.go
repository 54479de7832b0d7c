package flow

// Stock edge appearance, matching the library defaults hosts expect.
const (
	defaultStroke      = "#b1b1b7"
	defaultStrokeWidth = 2.0
)

// Edge is a connection between two nodes. The attachment point on each end
// is either a side (legacy, defaults bottom→top) or a specific handle ID;
// the handle ID takes precedence when present.
type Edge struct {
	ID     string
	Source string
	Target string

	SourceSide Side
	TargetSide Side

	// SourceHandle and TargetHandle name specific handles on the endpoint
	// nodes. Empty means "attach by side".
	SourceHandle string
	TargetHandle string

	Kind PathKind

	Animated   bool
	Selected   bool
	Selectable bool
	Deletable  bool

	Label       string
	Stroke      string
	StrokeWidth float64

	// Class is an opaque presentation hint.
	Class string
}

// NewEdge creates an edge with the stock defaults: bottom→top attachment,
// bezier path, 2px grey stroke, selectable and deletable.
func NewEdge(id, source, target string) *Edge {
	return &Edge{
		ID:          id,
		Source:      source,
		Target:      target,
		SourceSide:  SideBottom,
		TargetSide:  SideTop,
		Kind:        PathBezier,
		Selectable:  true,
		Deletable:   true,
		Stroke:      defaultStroke,
		StrokeWidth: defaultStrokeWidth,
	}
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}

// sourceKey and targetKey express "side or handle" as a single comparable
// value: when a handle ID is set it wins over the side.
func (e *Edge) sourceKey() string {
	if e.SourceHandle != "" {
		return "handle:" + e.SourceHandle
	}
	return e.SourceSide.String()
}

func (e *Edge) targetKey() string {
	if e.TargetHandle != "" {
		return "handle:" + e.TargetHandle
	}
	return e.TargetSide.String()
}

// sameConnection reports whether two edges occupy the same connection slot:
// identical source, target, and side-or-handle on both ends. This is the
// dedup key for AddEdge and connection validation.
func (e *Edge) sameConnection(o *Edge) bool {
	return e.Source == o.Source &&
		e.Target == o.Target &&
		e.sourceKey() == o.sourceKey() &&
		e.targetKey() == o.targetKey()
}
