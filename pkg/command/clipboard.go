package command

import (
	"github.com/matzehuels/flowboard/pkg/flow"
)

// Clipboard is a detached capture of nodes and edges. It shares no memory
// with the graph it was copied from.
type Clipboard struct {
	Nodes []flow.Node
	Edges []flow.Edge
}

// Empty reports whether the clipboard holds no nodes.
func (c Clipboard) Empty() bool { return len(c.Nodes) == 0 }

// Shift returns a copy of the clipboard whose top-level nodes are moved by d.
// Nested nodes keep their position relative to a copied container.
func (c Clipboard) Shift(d flow.Point) Clipboard {
	inClip := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		inClip[n.ID] = true
	}
	out := Clipboard{
		Nodes: make([]flow.Node, len(c.Nodes)),
		Edges: make([]flow.Edge, len(c.Edges)),
	}
	for i, n := range c.Nodes {
		out.Nodes[i] = n.Clone()
		if n.ParentID == "" || !inClip[n.ParentID] {
			out.Nodes[i].Geometry = n.Geometry.Translate(d)
		}
	}
	for i, e := range c.Edges {
		out.Edges[i] = e.Clone()
	}
	return out
}

// Copy captures the selected nodes and everything contained in selected
// containers, plus the edges whose source and target were both captured.
// Nodes and edges keep their graph order.
func Copy(g flow.Graph, sel Selection) Clipboard {
	captured := make(map[string]bool)
	for _, i := range selected(g, sel.Nodes) {
		id := g.Nodes[i].ID
		captured[id] = true
		for _, d := range g.Descendants(id) {
			captured[d] = true
		}
	}

	var clip Clipboard
	for _, n := range g.Nodes {
		if captured[n.ID] {
			clip.Nodes = append(clip.Nodes, n.Clone())
		}
	}
	for _, e := range g.Edges {
		if captured[e.Source] && captured[e.Target] {
			clip.Edges = append(clip.Edges, e.Clone())
		}
	}
	return clip
}

// Paste inserts the clipboard contents into g and returns the new graph and
// the ids of the inserted nodes.
//
// Every node and edge gets a fresh id. Edge endpoints and parent links inside
// the pasted set are remapped to the new ids. Pasted nodes whose parent was
// not copied are shifted by cfg.PasteOffset and stay in that parent when it
// still exists; otherwise they become top-level. Nested nodes keep their
// relative position so they move with their pasted container.
func Paste(g flow.Graph, clip Clipboard, cfg Config) (flow.Graph, []string) {
	if clip.Empty() {
		return g, nil
	}

	remap := make(map[string]string, len(clip.Nodes))
	for _, n := range clip.Nodes {
		remap[n.ID] = cfg.ID("node")
	}

	out := g.Clone()
	ids := make([]string, 0, len(clip.Nodes))
	for _, n := range clip.Nodes {
		pasted := n.Clone()
		pasted.ID = remap[n.ID]
		if parent, ok := remap[n.ParentID]; ok && n.ParentID != "" {
			pasted.ParentID = parent
		} else {
			pasted.Geometry = pasted.Geometry.Translate(cfg.PasteOffset)
			if pasted.ParentID != "" && !g.HasNode(pasted.ParentID) {
				pasted.ParentID = ""
			}
		}
		out.Nodes = append(out.Nodes, pasted)
		ids = append(ids, pasted.ID)
	}
	for _, e := range clip.Edges {
		src, srcOK := remap[e.Source]
		dst, dstOK := remap[e.Target]
		if !srcOK || !dstOK {
			continue
		}
		pasted := e.Clone()
		pasted.ID = cfg.ID("edge")
		pasted.Source, pasted.Target = src, dst
		out.Edges = append(out.Edges, pasted)
	}
	return out, ids
}

// Duplicate copies the selection and pastes it straight back into g.
func Duplicate(g flow.Graph, sel Selection, cfg Config) (flow.Graph, []string) {
	return Paste(g, Copy(g, sel), cfg)
}

// CanPaste reports whether the clipboard has something to paste.
func CanPaste(clip Clipboard) bool { return !clip.Empty() }
