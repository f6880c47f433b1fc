package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
func Marshal(g flow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a graph without the shape checks of
// [Import]. A missing "nodes" key yields an empty graph.
func Unmarshal(data []byte) (flow.Graph, error) {
	var p PersistedGraph
	if err := json.Unmarshal(data, &p); err != nil {
		return flow.Graph{}, fmt.Errorf("decode: %w", err)
	}
	return FromPersisted(p), nil
}

// Import decodes a persisted graph payload.
//
// The payload must be a single JSON object with a "nodes" array; "edges" and
// "legend" are optional. Anything else (invalid JSON, wrong field types, a
// top-level array or null, trailing data) is rejected with an INVALID_IMPORT
// error and no graph is returned, so callers never apply a partial import.
// Structural problems such as dangling edges are not import errors.
func Import(data []byte) (flow.Graph, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return flow.Graph{}, errors.Wrap(errors.ErrCodeInvalidImport, err, "payload is not a graph object")
	}
	if fields == nil {
		return flow.Graph{}, errors.New(errors.ErrCodeInvalidImport, "payload is null")
	}
	if _, ok := fields["nodes"]; !ok {
		return flow.Graph{}, errors.New(errors.ErrCodeInvalidImport, "payload has no nodes array")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var p PersistedGraph
	if err := dec.Decode(&p); err != nil {
		return flow.Graph{}, errors.Wrap(errors.ErrCodeInvalidImport, err, "decode graph")
	}
	if dec.More() {
		return flow.Graph{}, errors.New(errors.ErrCodeInvalidImport, "trailing data after graph object")
	}
	return FromPersisted(p), nil
}

// WriteGraph writes a graph as indented JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToPersisted(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g flow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader with [Import] semantics.
func ReadGraph(r io.Reader) (flow.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("read: %w", err)
	}
	return Import(data)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (flow.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	return Import(data)
}

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalDocument decodes a document. The embedded graph is checked with the
// same rules as [Import].
func UnmarshalDocument(data []byte) (Document, error) {
	if _, err := Import(data); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidImport, err, "decode document")
	}
	return doc, nil
}
