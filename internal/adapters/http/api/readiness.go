// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/vitalis/internal/app"
	"github.com/okian/vitalis/internal/domain/readiness"
)

// ReadinessDependencies defines the interface for readiness reads.
type ReadinessDependencies interface {
	Latest(ctx context.Context) (service.Result, bool)
}

// ReadinessHandler handles readiness requests.
type ReadinessHandler struct {
	deps ReadinessDependencies
}

// NewReadinessHandler creates a new readiness handler.
func NewReadinessHandler(deps ReadinessDependencies) *ReadinessHandler {
	return &ReadinessHandler{deps: deps}
}

// readinessResponse is the read shape for GET /api/readiness.
type readinessResponse struct {
	Readiness  readiness.Score   `json:"readiness"`
	History    []readiness.Score `json:"history"`
	Projection []readiness.Point `json:"projection"`
}

// HandleGetReadiness handles GET /api/readiness requests.
func (h *ReadinessHandler) HandleGetReadiness(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_readiness"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	result, ok := h.deps.Latest(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no_data", NewKind(op, ErrNoData))
		return
	}
	writeJSON(w, http.StatusOK, readinessResponse{
		Readiness:  result.Readiness,
		History:    result.History,
		Projection: result.Projection,
	})
}
