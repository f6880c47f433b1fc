// Package source reads the ordered process table that flowboard charts are
// synchronised against.
//
// Each [Row] describes one step of a process: a stable reference id, the
// label shown on the node and descriptive fields such as phase and owner.
// Row order is meaningful; it drives the slot assigned by auto-layout.
//
// # Formats
//
// [ReadCSV], [ReadJSON] and [ReadYAML] decode the three supported formats;
// [ReadFile] picks one from the file extension. CSV headers are matched
// case-insensitively and accept common aliases ("id" for ref, "name" or
// "title" for label, ...). JSON and YAML accept either a top-level list of
// rows or an object with a "rows" list.
//
// Every reader validates the decoded rows with [Validate]; failures carry the
// INVALID_SOURCE code and the 1-based row number.
//
// # Watching
//
// [Watch] re-reads a file whenever it is written or replaced and hands the
// fresh rows to a callback, debouncing bursts of editor writes.
package source
