// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	service "github.com/okian/vitalis/internal/app"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/sleepagg"
)

// SnapshotDependencies defines the interface for snapshot ingestion.
type SnapshotDependencies interface {
	Ingest(ctx context.Context, snap model.Snapshot) (service.Result, bool, error)
}

// SnapshotHandler handles snapshot ingestion requests.
type SnapshotHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// snapshotRequest mirrors the ingest schema for POST /api/snapshot. Sleep
// may arrive either as per-day stage segments or as timestamped spans;
// spans are bucketed into nights before aggregation.
type snapshotRequest struct {
	Sleep      []sleepSegmentRequest  `json:"sleep"`
	SleepSpans []sleepSpanRequest     `json:"sleep_spans"`
	HRDaily    []hrDailyRequest       `json:"hr_daily"`
	HRIntraday []hrIntradayRequest    `json:"hr_intraday"`
	Steps      []stepsDailyRequest    `json:"steps"`
	Calories   []caloriesDailyRequest `json:"calories"`
}

type sleepSegmentRequest struct {
	Date    string  `json:"date"`
	Stage   string  `json:"stage"`
	Minutes float64 `json:"minutes"`
}

type sleepSpanRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Stage string `json:"stage"`
}

type hrDailyRequest struct {
	Date   string   `json:"date"`
	AvgBPM *float64 `json:"avg_bpm"`
	MinBPM *float64 `json:"min_bpm"`
	MaxBPM *float64 `json:"max_bpm"`
}

type hrIntradayRequest struct {
	TS     string   `json:"ts"`
	AvgBPM *float64 `json:"avg_bpm"`
}

type stepsDailyRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

type caloriesDailyRequest struct {
	Date string  `json:"date"`
	Kcal float64 `json:"kcal"`
}

// toSnapshot validates the request and converts it into a domain snapshot.
// Dates must be YYYY-MM-DD and timestamps RFC3339; numeric fields may be
// null, which the pipeline treats as a gap rather than zero.
func (req snapshotRequest) toSnapshot() (model.Snapshot, error) {
	snap := model.Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
	}

	for i, r := range req.Sleep {
		day, ok := model.ParseDay(r.Date)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("sleep[%d]: invalid date %q", i, r.Date)
		}
		if r.Minutes < 0 {
			return model.Snapshot{}, fmt.Errorf("sleep[%d]: negative minutes", i)
		}
		snap.Sleep = append(snap.Sleep, model.SleepSegment{
			Day:     day,
			Stage:   model.ParseStage(r.Stage),
			Minutes: r.Minutes,
		})
	}

	if len(req.SleepSpans) > 0 {
		spans := make([]model.SleepSpan, 0, len(req.SleepSpans))
		for i, r := range req.SleepSpans {
			start, err := time.Parse(time.RFC3339, r.Start)
			if err != nil {
				return model.Snapshot{}, fmt.Errorf("sleep_spans[%d]: invalid start; must be RFC3339", i)
			}
			end, err := time.Parse(time.RFC3339, r.End)
			if err != nil {
				return model.Snapshot{}, fmt.Errorf("sleep_spans[%d]: invalid end; must be RFC3339", i)
			}
			spans = append(spans, model.SleepSpan{
				Start: start,
				End:   end,
				Stage: model.ParseStage(r.Stage),
			})
		}
		snap.Sleep = append(snap.Sleep, sleepagg.SpansToSegments(spans)...)
	}

	for i, r := range req.HRDaily {
		day, ok := model.ParseDay(r.Date)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("hr_daily[%d]: invalid date %q", i, r.Date)
		}
		snap.HRDaily = append(snap.HRDaily, model.HRDailyPoint{
			Day:    day,
			AvgBPM: r.AvgBPM,
			MinBPM: r.MinBPM,
			MaxBPM: r.MaxBPM,
		})
	}

	for i, r := range req.HRIntraday {
		ts, err := time.Parse(time.RFC3339, r.TS)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("hr_intraday[%d]: invalid ts; must be RFC3339", i)
		}
		snap.HRIntraday = append(snap.HRIntraday, model.HRIntradaySample{
			TS:     ts,
			AvgBPM: r.AvgBPM,
		})
	}

	for i, r := range req.Steps {
		day, ok := model.ParseDay(r.Date)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("steps[%d]: invalid date %q", i, r.Date)
		}
		if r.Steps < 0 {
			return model.Snapshot{}, fmt.Errorf("steps[%d]: negative steps", i)
		}
		snap.Steps = append(snap.Steps, model.StepsDailyPoint{Day: day, Steps: r.Steps})
	}

	for i, r := range req.Calories {
		day, ok := model.ParseDay(r.Date)
		if !ok {
			return model.Snapshot{}, fmt.Errorf("calories[%d]: invalid date %q", i, r.Date)
		}
		snap.Calories = append(snap.Calories, model.CaloriesDailyPoint{Day: day, Kcal: r.Kcal})
	}

	return snap, nil
}

// HandlePostSnapshot handles POST /api/snapshot requests.
func (h *SnapshotHandler) HandlePostSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_snapshot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := req.toSnapshot()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, duplicate, err := h.deps.Ingest(r.Context(), snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
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
