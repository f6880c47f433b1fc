package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowboard/pkg/buildinfo"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/lint"
	"github.com/matzehuels/flowboard/pkg/pipeline"
	"github.com/matzehuels/flowboard/pkg/reconcile"
	"github.com/matzehuels/flowboard/pkg/source"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type listResponse struct {
	Processes []string `json:"processes"`
}

type issuesResponse struct {
	ProcessID string       `json:"processId"`
	Issues    []lint.Issue `json:"issues"`
	Summary   lint.Summary `json:"summary"`
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// listProcesses handles GET /processes.
func (rt *Router) listProcesses(w http.ResponseWriter, r *http.Request) {
	ids, err := rt.runner.List(r.Context())
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, listResponse{Processes: ids})
}

// getProcess handles GET /processes/{id}. A matching If-None-Match yields 304.
func (rt *Router) getProcess(w http.ResponseWriter, r *http.Request) {
	res, err := rt.runner.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	etag := quoteETag(res.Revision)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respondJSON(w, http.StatusOK, res.Document)
}

// putProcess handles PUT /processes/{id}.
func (rt *Router) putProcess(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		rt.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	res, err := rt.runner.Put(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	w.Header().Set("ETag", quoteETag(res.Revision))
	respondJSON(w, http.StatusOK, res)
}

// deleteProcess handles DELETE /processes/{id}.
func (rt *Router) deleteProcess(w http.ResponseWriter, r *http.Request) {
	if err := rt.runner.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		rt.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// processIssues handles GET /processes/{id}/issues.
func (rt *Router) processIssues(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := rt.runner.Validate(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, issuesResponse{ProcessID: id, Issues: res.Issues, Summary: res.Summary})
}

// syncProcess handles POST /processes/{id}/sync. The body is a JSON array of
// source rows.
func (rt *Router) syncProcess(w http.ResponseWriter, r *http.Request) {
	policy := reconcile.OrphanPolicy(r.URL.Query().Get("policy"))
	switch policy {
	case "", reconcile.OrphanDelete, reconcile.OrphanKeep:
	default:
		rt.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown orphan policy %q", policy))
		return
	}
	rows, ok := rt.readRows(w, r)
	if !ok {
		return
	}
	res, err := rt.runner.Sync(r.Context(), chi.URLParam(r, "id"), rows, policy)
	rt.respondResult(w, r, res, err)
}

// layoutProcess handles POST /processes/{id}/layout.
func (rt *Router) layoutProcess(w http.ResponseWriter, r *http.Request) {
	rows, ok := rt.readRows(w, r)
	if !ok {
		return
	}
	res, err := rt.runner.Layout(r.Context(), chi.URLParam(r, "id"), rows)
	rt.respondResult(w, r, res, err)
}

func (rt *Router) readRows(w http.ResponseWriter, r *http.Request) ([]source.Row, bool) {
	rows, err := source.ReadJSON(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidSource, err, "read rows")
		}
		rt.respondError(w, r, err)
		return nil, false
	}
	return rows, true
}

func (rt *Router) respondResult(w http.ResponseWriter, r *http.Request, res *pipeline.Result, err error) {
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	w.Header().Set("ETag", quoteETag(res.Revision))
	respondJSON(w, http.StatusOK, res)
}

func quoteETag(revision string) string {
	return fmt.Sprintf("%q", revision)
}

// etagMatches reports whether an If-None-Match header names etag.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
