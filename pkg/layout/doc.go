// Package layout positions flowboard nodes.
//
// # Auto-Layout
//
// [AutoLayout] places the node of every source row on a fixed slot grid in
// row order: slot i is column i mod Columns of row i / Columns. Existing
// nodes are matched by external reference and only their position changes;
// rows without a node get a new one. The result depends on nothing but the
// graph and the row order, so running it twice is a no-op.
//
// # Guides
//
// [Guides] computes the alignment hints shown while a node is dragged: the
// closest matching left/centre/right line and the closest top/middle/bottom
// line among the other nodes, within a pixel tolerance. Guides are overlays
// for the renderer and never move anything.
package layout
