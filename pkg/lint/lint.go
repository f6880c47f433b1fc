// Package lint checks flowboard charts for structural problems.
//
// The checks are advisory: an [Issue] never blocks editing, it is a finding
// for the author to look at. [Check] is a pure function and its output order
// is fixed (nodes in graph order, then edges in graph order, then whole-graph
// findings), so results can be compared exactly.
//
// # Rules
//
// Per node, in this order:
//   - start nodes: error on incoming edges, warning without outgoing edges
//   - end nodes: error on outgoing edges, warning without incoming edges
//   - gateways: warning with fewer than two outgoing edges
//   - orphans (no edges at all): info
//   - blank labels: warning
//
// Containers and annotations are exempt from the orphan and label rules.
// Per edge, an error for a missing source and another for a missing target.
// For a non-empty graph, an info when there is no start node and another
// when there is no end node.
package lint

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// Severity ranks an issue.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes.
const (
	CodeStartHasIncoming   = "start-has-incoming"
	CodeStartNoOutgoing    = "start-no-outgoing"
	CodeEndHasOutgoing     = "end-has-outgoing"
	CodeEndNoIncoming      = "end-no-incoming"
	CodeGatewayFewBranches = "gateway-few-branches"
	CodeOrphan             = "orphan"
	CodeBlankLabel         = "blank-label"
	CodeMissingSource      = "missing-source"
	CodeMissingTarget      = "missing-target"
	CodeNoStart            = "no-start"
	CodeNoEnd              = "no-end"
)

// Issue is one finding. NodeID and EdgeID are empty for graph-level issues.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	NodeID   string   `json:"nodeId,omitempty"`
	EdgeID   string   `json:"edgeId,omitempty"`
}

// String formats the issue as "severity [target] message".
func (i Issue) String() string {
	switch {
	case i.NodeID != "":
		return fmt.Sprintf("%s [node %s] %s", i.Severity, i.NodeID, i.Message)
	case i.EdgeID != "":
		return fmt.Sprintf("%s [edge %s] %s", i.Severity, i.EdgeID, i.Message)
	default:
		return fmt.Sprintf("%s %s", i.Severity, i.Message)
	}
}

// Check runs every rule over g.
func Check(g flow.Graph) []Issue {
	var issues []Issue
	in, out := g.Incoming(), g.Outgoing()
	hasStart, hasEnd := false, false

	for _, n := range g.Nodes {
		node := func(sev Severity, code, format string, args ...any) {
			issues = append(issues, Issue{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...), NodeID: n.ID})
		}
		cat := n.Category()

		switch cat {
		case flow.CategoryStart:
			hasStart = true
			if in[n.ID] > 0 {
				node(SeverityError, CodeStartHasIncoming, "start node has %d incoming edge(s)", in[n.ID])
			}
			if out[n.ID] == 0 {
				node(SeverityWarning, CodeStartNoOutgoing, "start node has no outgoing edge")
			}
		case flow.CategoryEnd:
			hasEnd = true
			if out[n.ID] > 0 {
				node(SeverityError, CodeEndHasOutgoing, "end node has %d outgoing edge(s)", out[n.ID])
			}
			if in[n.ID] == 0 {
				node(SeverityWarning, CodeEndNoIncoming, "end node has no incoming edge")
			}
		case flow.CategoryGateway:
			if out[n.ID] < 2 {
				node(SeverityWarning, CodeGatewayFewBranches, "gateway has %d outgoing edge(s), expected at least 2", out[n.ID])
			}
		}

		if cat == flow.CategoryContainer || cat == flow.CategoryAnnotation {
			continue
		}
		if in[n.ID] == 0 && out[n.ID] == 0 {
			node(SeverityInfo, CodeOrphan, "node is not connected")
		}
		if strings.TrimSpace(n.Label) == "" {
			node(SeverityWarning, CodeBlankLabel, "node has no label")
		}
	}

	ids := g.Index()
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError, Code: CodeMissingSource, EdgeID: e.ID,
				Message: fmt.Sprintf("source node %q does not exist", e.Source),
			})
		}
		if _, ok := ids[e.Target]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError, Code: CodeMissingTarget, EdgeID: e.ID,
				Message: fmt.Sprintf("target node %q does not exist", e.Target),
			})
		}
	}

	if len(g.Nodes) > 0 {
		if !hasStart {
			issues = append(issues, Issue{Severity: SeverityInfo, Code: CodeNoStart, Message: "process has no start node"})
		}
		if !hasEnd {
			issues = append(issues, Issue{Severity: SeverityInfo, Code: CodeNoEnd, Message: "process has no end node"})
		}
	}
	return issues
}

// Summary counts issues per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Summarize counts issues per severity.
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, i := range issues {
		switch i.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// String returns e.g. "1 error, 2 warnings, 0 infos".
func (s Summary) String() string {
	return fmt.Sprintf("%d %s, %d %s, %d %s",
		s.Errors, plural(s.Errors, "error"),
		s.Warnings, plural(s.Warnings, "warning"),
		s.Infos, plural(s.Infos, "info"))
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool { return Summarize(issues).Errors > 0 }

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
