package session

import (
	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
)

// Every command below commits at most once and reports whether the graph
// changed. Commands whose preconditions fail are silent no-ops.

// AddNode adds n and selects it. It returns the node id, or "" when nothing
// was added.
func (s *Session) AddNode(n flow.Node) string {
	var id string
	s.edit("add node", func(g flow.Graph) flow.Graph {
		out, added := command.AddNode(g, n, s.opts.Command)
		id = added
		return out
	})
	if id != "" {
		s.sel = command.Select(id)
	}
	return id
}

// Delete removes the selection. Locked nodes survive.
func (s *Session) Delete() bool {
	changed := s.edit("delete", func(g flow.Graph) flow.Graph {
		return command.Delete(g, s.sel)
	})
	s.pruneSelection()
	return changed
}

// Copy replaces the clipboard with the selected nodes, their contents and
// the edges between them. An empty selection leaves the clipboard alone.
func (s *Session) Copy() bool {
	s.cancelGesture()
	clip := command.Copy(s.graph, s.sel)
	if clip.Empty() {
		return false
	}
	s.clip = clip
	return true
}

// Cut copies the selection and deletes it in one commit.
func (s *Session) Cut() bool {
	if !s.Copy() {
		return false
	}
	changed := s.edit("cut", func(g flow.Graph) flow.Graph {
		return command.Delete(g, s.sel)
	})
	s.pruneSelection()
	return changed
}

// Paste inserts the clipboard with fresh ids and selects the pasted nodes.
// Each paste advances the clipboard by the paste offset, so repeated pastes
// cascade instead of stacking on one spot.
func (s *Session) Paste() []string {
	if !command.CanPaste(s.clip) {
		return nil
	}
	var ids []string
	s.edit("paste", func(g flow.Graph) flow.Graph {
		out, pasted := command.Paste(g, s.clip, s.opts.Command)
		ids = pasted
		return out
	})
	if len(ids) > 0 {
		s.sel = command.Select(ids...)
		s.clip = s.clip.Shift(s.opts.Command.PasteOffset)
	}
	return ids
}

// Duplicate copies and pastes the selection without touching the clipboard.
func (s *Session) Duplicate() []string {
	var ids []string
	s.edit("duplicate", func(g flow.Graph) flow.Graph {
		out, pasted := command.Duplicate(g, s.sel, s.opts.Command)
		ids = pasted
		return out
	})
	if len(ids) > 0 {
		s.sel = command.Select(ids...)
	}
	return ids
}

// Align lines up the selected nodes.
func (s *Session) Align(dir command.AlignDirection) bool {
	return s.edit("align "+string(dir), func(g flow.Graph) flow.Graph {
		return command.Align(g, s.sel, dir, s.opts.Command)
	})
}

// Distribute spaces the selected nodes evenly along axis.
func (s *Session) Distribute(axis command.Axis) bool {
	return s.edit("distribute "+string(axis), func(g flow.Graph) flow.Graph {
		return command.Distribute(g, s.sel, axis, s.opts.Command)
	})
}

// Group wraps the selection in a new container and selects it.
func (s *Session) Group() string {
	var id string
	s.edit("group", func(g flow.Graph) flow.Graph {
		out, container := command.Group(g, s.sel, s.opts.Command)
		id = container
		return out
	})
	if id != "" {
		s.sel = command.Select(id)
	}
	return id
}

// Ungroup dissolves the selected containers.
func (s *Session) Ungroup() bool {
	changed := s.edit("ungroup", func(g flow.Graph) flow.Graph {
		return command.Ungroup(g, s.sel)
	})
	s.pruneSelection()
	return changed
}

// BringToFront raises the selection above every other node.
func (s *Session) BringToFront() bool {
	return s.edit("bring to front", func(g flow.Graph) flow.Graph {
		return command.BringToFront(g, s.sel)
	})
}

// SendToBack lowers the selection below every other node.
func (s *Session) SendToBack() bool {
	return s.edit("send to back", func(g flow.Graph) flow.Graph {
		return command.SendToBack(g, s.sel)
	})
}

// BringForward raises the selection by one step.
func (s *Session) BringForward() bool {
	return s.edit("bring forward", func(g flow.Graph) flow.Graph {
		return command.BringForward(g, s.sel)
	})
}

// SendBackward lowers the selection by one step.
func (s *Session) SendBackward() bool {
	return s.edit("send backward", func(g flow.Graph) flow.Graph {
		return command.SendBackward(g, s.sel)
	})
}

// Connect adds a single edge and returns its id, or "" when the endpoints
// are invalid.
func (s *Session) Connect(source, target string, opts command.EdgeOptions) string {
	var id string
	s.edit("connect", func(g flow.Graph) flow.Graph {
		out, added := command.Connect(g, source, target, opts, s.opts.Command)
		id = added
		return out
	})
	return id
}

// MoveBy shifts the selected nodes. Locked nodes stay put.
func (s *Session) MoveBy(dx, dy float64) bool {
	return s.edit("move", func(g flow.Graph) flow.Graph {
		return command.MoveBy(g, s.sel, dx, dy)
	})
}

// Reparent moves node id into container parent, or to the top level when
// parent is empty, keeping its absolute position.
func (s *Session) Reparent(id, parent string) error {
	var err error
	s.edit("reparent", func(g flow.Graph) flow.Graph {
		out, rerr := command.Reparent(g, id, parent)
		if rerr != nil {
			err = rerr
			return g
		}
		return out
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "reparent %s", id)
	}
	return nil
}

// PatchNodes updates fields of the selected nodes.
func (s *Session) PatchNodes(patch command.NodePatch) bool {
	return s.edit("edit node", func(g flow.Graph) flow.Graph {
		return command.PatchNodes(g, s.sel, patch)
	})
}

// PatchEdges updates fields of the selected edges.
func (s *Session) PatchEdges(patch command.EdgePatch) bool {
	return s.edit("edit edge", func(g flow.Graph) flow.Graph {
		return command.PatchEdges(g, s.sel, patch)
	})
}

// SetInteraction sets or, with a nil ix, clears the click behaviour of node
// id. Target URLs must use http or https.
func (s *Session) SetInteraction(id string, ix *flow.Interaction) error {
	if !s.graph.HasNode(id) {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}
	patch := command.NodePatch{ClearInteraction: ix == nil}
	if ix != nil {
		switch ix.Action {
		case flow.ActionNavigate, flow.ActionOpen, flow.ActionTooltip:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "unknown interaction action %q", ix.Action)
		}
		if ix.TargetURL != "" {
			if err := errors.ValidateURL(ix.TargetURL); err != nil {
				return err
			}
		}
		patch.Interaction = ix
	}
	s.edit("edit interaction", func(g flow.Graph) flow.Graph {
		return command.PatchNodes(g, command.Select(id), patch)
	})
	return nil
}

// SetLegend replaces the legend.
func (s *Session) SetLegend(items []flow.LegendItem) bool {
	return s.edit("edit legend", func(g flow.Graph) flow.Graph {
		out := g.Clone()
		out.Legend = append([]flow.LegendItem(nil), items...)
		return out
	})
}
