package observability

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

func TestLogListenerIsAListener(t *testing.T) {
	var _ flow.Listener = NewLogListener(nil)
}

func TestLogListenerLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	s := flow.New()
	s.SetListener(NewLogListener(logger))

	s.AddNode(flow.NewNode("a", 0, 0))
	s.SelectNode("a", false)
	s.UpdateNodePosition("a", flow.Position{X: 50, Y: 60})
	s.Pan(10, 10)

	out := buf.String()
	for _, want := range []string{"selection changed", "node dragged", "viewport changed"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogListenerNilLoggerDefaults(t *testing.T) {
	l := NewLogListener(nil)
	if l.logger == nil {
		t.Fatal("expected fallback logger")
	}
	// Must not panic.
	l.NodeClicked("a")
	l.Deleted([]string{"a"}, nil)
}
