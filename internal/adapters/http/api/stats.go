// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/okian/vitalis/internal/app"
)

// StatsDependencies defines the interface for engine state reads.
type StatsDependencies interface {
	GetStats() service.Stats
}

// StatsHandler handles engine stats requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleStats handles GET /stats requests. The response is the typed engine
// snapshot: lifecycle state, the configured window, and the recompute
// counters, with the last-result fields omitted until something has been
// ingested.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetStats())
}
