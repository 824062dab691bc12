// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/vitalis/internal/app"
	"github.com/okian/vitalis/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingest runs the pipeline on a snapshot and publishes the result.
	Ingest(ctx context.Context, snap model.Snapshot) (service.Result, bool, error)

	// Sync fetches a fresh snapshot upstream and ingests it.
	Sync(ctx context.Context) (service.Result, bool, error)

	// Latest returns the most recently published result.
	Latest(ctx context.Context) (service.Result, bool)
}

// Server wires HTTP routes for the wellness API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	snapshotHandler  *SnapshotHandler
	syncHandler      *SyncHandler
	dashboardHandler *DashboardHandler
	readinessHandler *ReadinessHandler
	chartsHandler    *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsDependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(stats),
		snapshotHandler:  NewSnapshotHandler(deps),
		syncHandler:      NewSyncHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		readinessHandler: NewReadinessHandler(deps),
		chartsHandler:    NewChartsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/snapshot", MetricsMiddleware(s.snapshotHandler.HandlePostSnapshot, "snapshot"))
	mux.HandleFunc("/api/sync", MetricsMiddleware(s.syncHandler.HandlePostSync, "sync"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/api/readiness", MetricsMiddleware(s.readinessHandler.HandleGetReadiness, "readiness"))
	mux.HandleFunc("/api/charts/", MetricsMiddleware(s.chartsHandler.HandleGetChart, "charts"))
}

type ackResponse struct {
	Status     string `json:"status"`
	Duplicate  bool   `json:"duplicate"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Readiness  int    `json:"readiness"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
