// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/vitalis/internal/app"
)

// SyncDependencies defines the interface for upstream sync operations.
type SyncDependencies interface {
	Sync(ctx context.Context) (service.Result, bool, error)
}

// SyncHandler handles upstream sync requests.
type SyncHandler struct {
	deps SyncDependencies
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(deps SyncDependencies) *SyncHandler {
	return &SyncHandler{deps: deps}
}

// HandlePostSync handles POST /api/sync requests.
func (h *SyncHandler) HandlePostSync(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_sync"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	result, duplicate, err := h.deps.Sync(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoFetcher) {
			writeError(w, http.StatusServiceUnavailable, "sync_unavailable", NewKind(op, ErrUnavailable))
			return
		}
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}
	status := "computed"
	if duplicate {
		status = "duplicate"
	}
	writeJSON(w, http.StatusOK, ackResponse{
		Status:     status,
		Duplicate:  duplicate,
		SnapshotID: result.SnapshotID,
		Readiness:  result.Readiness.Value,
	})
}
