// Package api serves stored processes over HTTP.
//
// Routes:
//
//	GET    /healthz                  build information
//	GET    /processes                stored process ids
//	GET    /processes/{id}           document, ETag is the revision
//	PUT    /processes/{id}           import a persisted graph payload
//	DELETE /processes/{id}           remove a process
//	GET    /processes/{id}/issues    lint findings
//	POST   /processes/{id}/sync      reconcile with source rows (?policy=keep|delete)
//	POST   /processes/{id}/layout    grid layout in row order
//
// Errors are JSON objects {"code": ..., "error": ...} with a status derived
// from the error code.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowboard/pkg/pipeline"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 10 << 20

// Router wires the HTTP routes to a pipeline runner.
type Router struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewRouter creates a router. A nil logger uses log.Default().
func NewRouter(runner *pipeline.Runner, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{runner: runner, logger: logger}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.logger))

	router.Get("/healthz", rt.health)

	router.Route("/processes", func(r chi.Router) {
		r.Get("/", rt.listProcesses)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.getProcess)
			r.Put("/", rt.putProcess)
			r.Delete("/", rt.deleteProcess)
			r.Get("/issues", rt.processIssues)
			r.Post("/sync", rt.syncProcess)
			r.Post("/layout", rt.layoutProcess)
		})
	})

	return router
}
