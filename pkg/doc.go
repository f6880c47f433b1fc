// Package pkg provides the core libraries for flowboard process charts.
//
// # Overview
//
// Flowboard edits process flowcharts: shapes, swim-lane containers and the
// edges between them. Charts are kept in sync with an external table of
// process steps, laid out on a grid, linted for structural problems and
// persisted per process id. The pkg directory is organized into four areas:
//
//  1. Model - [flow] (the editing model) and [graph] (the persisted wire format)
//  2. Editing - [command], [history], [layout] and [session]
//  3. Integration - [source], [reconcile] and [lint]
//  4. Infrastructure - [store], [config], [observability], [pipeline], [errors]
//
// # Architecture
//
// The typical data flow for a stored process:
//
//	rows file (CSV / JSON / YAML)
//	         ↓
//	    [source] package (read + validate rows)
//	         ↓
//	    [session] package (load, sync / layout / edit, commit to history)
//	         ↓
//	    [lint] package (structural findings)
//	         ↓
//	    [store] package (file, memory, Redis, MongoDB or SQLite)
//
// [pipeline] runs that sequence for the CLI and the HTTP API.
//
// # Quick Start
//
// Reconcile a stored process with a rows file:
//
//	cfg, _ := config.Load("")
//	st, _ := store.Open(ctx, cfg.Store, logger)
//	runner := pipeline.NewRunner(st, session.OptionsFromConfig(cfg, logger), logger)
//	defer runner.Close()
//
//	rows, _ := source.ReadFile("steps.csv")
//	res, _ := runner.Sync(ctx, "onboarding", rows, "")
//	fmt.Println(res.Report, res.Summary)
//
// Edit interactively through a session:
//
//	sess := session.New(flow.Graph{}, session.DefaultOptions())
//	_ = sess.Load(ctx, st, "onboarding")
//	sess.SelectAll()
//	sess.Align(command.AlignLeft)
//	_ = sess.Undo()
//	_ = sess.Save(ctx, st, "onboarding")
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                                   # All tests
//	go test -run Example ./pkg/...                      # Examples only
//	FLOWBOARD_REDIS_ADDR=localhost:6379 go test ./pkg/store  # Include Redis
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/flow
// [graph]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/graph
// [command]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/command
// [history]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/history
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/layout
// [session]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/session
// [source]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/source
// [reconcile]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/reconcile
// [lint]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/lint
// [store]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowboard/pkg/errors
package pkg
