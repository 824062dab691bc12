package sample

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/vitalis/internal/domain/model"
)

// Wire shapes matching POST /api/snapshot.
type snapshotPayload struct {
	Sleep      []sleepSegmentPayload  `json:"sleep"`
	HRDaily    []hrDailyPayload       `json:"hr_daily"`
	HRIntraday []hrIntradayPayload    `json:"hr_intraday"`
	Steps      []stepsDailyPayload    `json:"steps"`
	Calories   []caloriesDailyPayload `json:"calories"`
}

type sleepSegmentPayload struct {
	Date    string  `json:"date"`
	Stage   string  `json:"stage"`
	Minutes float64 `json:"minutes"`
}

type hrDailyPayload struct {
	Date   string   `json:"date"`
	AvgBPM *float64 `json:"avg_bpm"`
	MinBPM *float64 `json:"min_bpm"`
	MaxBPM *float64 `json:"max_bpm"`
}

type hrIntradayPayload struct {
	TS     string   `json:"ts"`
	AvgBPM *float64 `json:"avg_bpm"`
}

type stepsDailyPayload struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

type caloriesDailyPayload struct {
	Date string  `json:"date"`
	Kcal float64 `json:"kcal"`
}

func toPayload(snap model.Snapshot) snapshotPayload {
	var p snapshotPayload
	for _, r := range snap.Sleep {
		p.Sleep = append(p.Sleep, sleepSegmentPayload{
			Date:    string(r.Day),
			Stage:   string(r.Stage),
			Minutes: r.Minutes,
		})
	}
	for _, r := range snap.HRDaily {
		p.HRDaily = append(p.HRDaily, hrDailyPayload{
			Date:   string(r.Day),
			AvgBPM: r.AvgBPM,
			MinBPM: r.MinBPM,
			MaxBPM: r.MaxBPM,
		})
	}
	for _, r := range snap.HRIntraday {
		p.HRIntraday = append(p.HRIntraday, hrIntradayPayload{
			TS:     r.TS.Format(time.RFC3339),
			AvgBPM: r.AvgBPM,
		})
	}
	for _, r := range snap.Steps {
		p.Steps = append(p.Steps, stepsDailyPayload{Date: string(r.Day), Steps: r.Steps})
	}
	for _, r := range snap.Calories {
		p.Calories = append(p.Calories, caloriesDailyPayload{Date: string(r.Day), Kcal: r.Kcal})
	}
	return p
}

// Post submits the snapshot to the engine's ingest endpoint and returns the
// acknowledgement body.
func Post(ctx context.Context, baseURL string, snap model.Snapshot, timeout time.Duration) (string, error) {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(toPayload(snap)).
		Post("/api/snapshot")
	if err != nil {
		return "", fmt.Errorf("submit snapshot: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return string(resp.Body()), fmt.Errorf("submit snapshot: unexpected status %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}
