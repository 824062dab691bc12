// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/vitalis/internal/app"
)

// ChartsDependencies defines the interface for chart reads.
type ChartsDependencies interface {
	Latest(ctx context.Context) (service.Result, bool)
}

// ChartsHandler handles chart requests.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /api/charts/{name} requests.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/charts/
	name := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	result, ok := h.deps.Latest(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no_data", NewKind(op, ErrNoData))
		return
	}
	series, ok := result.Charts[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_chart", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, series)
}
