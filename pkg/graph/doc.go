// Package graph provides the persisted wire format for flowboard process charts.
//
// This package defines the canonical JSON (and BSON) representation of a
// [flow.Graph], used for files, API payloads, and every storage backend.
//
// # Architecture
//
// The package sits at the serialization boundary between the editing model
// and external formats:
//
//   - [PersistedGraph], [Document]: Serialization types (this package)
//   - pkg/flow.Graph: In-memory editing model
//
// Use [ToPersisted]/[FromPersisted] to convert between them. The two are
// mutual inverses on every model field; geometry is always written from the
// node's actual rectangle so that resized nodes keep their size.
//
// # Graph Serialization
//
//	{
//	  "nodes": [
//	    {"id": "n1", "shapeKind": "start", "position": {"x": 40, "y": 40},
//	     "style": {"width": 48, "height": 48}}
//	  ],
//	  "edges": [{"id": "e1", "from": "n1", "to": "n2", "arrowEnd": "arrowclosed"}],
//	  "legend": [{"key": "hr", "label": "Human resources", "color": "#0a7"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("process.json")  // File → flow.Graph
//	graph.WriteGraphFile(g, "output.json")       // flow.Graph → File
//	data, _ := graph.Marshal(g)                  // flow.Graph → []byte
//	g, err := graph.Import(data)                 // []byte → flow.Graph (strict)
//
// # Validation
//
// Mapping never validates graph structure: missing ids and dangling edge
// endpoints pass through unchanged and are reported by package lint. [Import]
// only rejects payloads that are not shaped like a [PersistedGraph].
//
// # Concurrency
//
// All functions are safe for concurrent use; they share no state.
package graph
