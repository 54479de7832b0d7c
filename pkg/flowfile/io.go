package flowfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowgrid/flowgrid/pkg/flow"
)

// Read decodes a JSON diagram from r into a store.
//
// Read returns an error if the JSON is malformed, a node has a duplicate
// ID, an edge references an unknown node, or a side, path kind, or handle
// role name is unrecognized. Errors are wrapped with context describing
// which node or edge caused the problem.
//
// The returned store is independent of r. Read does not close r.
func Read(r io.Reader) (*flow.Store, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.ToStore()
}

// ReadFile reads a JSON diagram file at path into a store.
//
// ReadFile opens the file, decodes it using [Read], and closes the file.
// Errors wrap the underlying cause with the file path for context.
func ReadFile(path string) (*flow.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

// Write encodes a store's diagram as indented JSON and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(s *flow.Store, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromStore(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a store's diagram to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(s *flow.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}
