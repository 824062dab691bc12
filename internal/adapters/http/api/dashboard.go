// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	service "github.com/okian/vitalis/internal/app"
	"github.com/okian/vitalis/internal/domain/chart"
	"github.com/okian/vitalis/internal/domain/derive"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/readiness"
)

// DashboardDependencies defines the interface for dashboard reads.
type DashboardDependencies interface {
	Latest(ctx context.Context) (service.Result, bool)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// dashboardResponse is the full read shape for GET /api/dashboard.
type dashboardResponse struct {
	SnapshotID string                         `json:"snapshot_id"`
	ComputedAt time.Time                      `json:"computed_at"`
	Days       []model.Day                    `json:"days"`
	Headline   derive.Headline                `json:"headline"`
	Readiness  readiness.Score                `json:"readiness"`
	Projection []readiness.Point              `json:"projection"`
	Charts     map[string]chart.LabeledSeries `json:"charts"`
}

// HandleGetDashboard handles GET /api/dashboard requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	result, ok := h.deps.Latest(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no_data", NewKind(op, ErrNoData))
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		SnapshotID: result.SnapshotID,
		ComputedAt: result.ComputedAt,
		Days:       result.Days,
		Headline:   result.Headline,
		Readiness:  result.Readiness,
		Projection: result.Projection,
		Charts:     result.Charts,
	})
}
