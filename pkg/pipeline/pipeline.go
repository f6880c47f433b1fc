// Package pipeline runs whole-process operations against a store.
//
// The CLI and the HTTP API both need the same load → edit → lint → save
// sequence for a stored process. [Runner] centralises it so that every entry
// point applies sync, layout and validation identically:
//
//	runner := pipeline.NewRunner(st, session.DefaultOptions(), logger)
//	res, err := runner.Sync(ctx, "onboarding", rows, "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report, res.Summary)
//
// Each call opens a fresh [session.Session] from the store, so a Runner holds
// no per-process state and may be shared by concurrent requests. Writes to
// the same process are last-writer-wins.
package pipeline

import (
	"time"

	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/lint"
	"github.com/matzehuels/flowboard/pkg/reconcile"
)

// Result is the outcome of a runner operation on one process.
type Result struct {
	ProcessID string            `json:"processId"`
	Revision  string            `json:"revision"`
	Document  graph.Document    `json:"document"`
	Report    *reconcile.Report `json:"report,omitempty"`
	Issues    []lint.Issue      `json:"issues"`
	Summary   lint.Summary      `json:"summary"`
	Saved     bool              `json:"saved"`
	Stats     Stats             `json:"stats"`
}

// Stats describes the resulting graph and how long the operation took.
type Stats struct {
	NodeCount int           `json:"nodeCount"`
	EdgeCount int           `json:"edgeCount"`
	Duration  time.Duration `json:"duration"`
}
