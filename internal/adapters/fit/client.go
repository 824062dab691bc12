// Package fit fetches the raw wellness series from the upstream
// fitness-data service.
//
// The five series are requested concurrently and each failure independently
// defaults its series to empty: a broken heart-rate export must never block
// the sleep series. Transport timeouts and retries live here, not in the
// engine.
package fit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/sleepagg"
	"github.com/okian/vitalis/pkg/logger"
	"github.com/okian/vitalis/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout       = 10 * time.Second
	defaultRetryCount    = 3
	defaultRetryWait     = 500 * time.Millisecond
	defaultRetryMaxWait  = 3 * time.Second
	timestampParseLayout = time.RFC3339
)

// Series labels used in logs and metrics.
const (
	SeriesSleep      = "sleep"
	SeriesHRDaily    = "hr_daily"
	SeriesHRIntraday = "hr_intraday"
	SeriesSteps      = "steps"
	SeriesCalories   = "calories"
)

// Upstream endpoint paths, mirroring the fitness service API.
const (
	pathSleepSegments = "/sleep/segments"
	pathHRLast7       = "/fit/hr/last7"
	pathHRIntraday    = "/fit/hr/intraday"
	pathStepsLast7    = "/fit/steps/last7"
	pathCaloriesLast7 = "/fit/calories/last7"
)

// Client fetches raw series over HTTP.
type Client struct {
	http       *resty.Client
	baseURL    string
	timeout    time.Duration
	retryCount int
	log        logger.Logger
}

// NewClient creates a fit client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("fit")
	}
	c.http = resty.New().
		SetBaseURL(c.baseURL).
		SetTimeout(c.timeout).
		SetRetryCount(c.retryCount).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(defaultRetryMaxWait).
		SetHeader("Accept", "application/json")
	return c
}

// FetchAll requests all five series concurrently and assembles a snapshot.
// Each series failure is logged and counted, and that series alone defaults
// to empty; FetchAll itself only fails when the client has no base URL.
func (c *Client) FetchAll(ctx context.Context) (model.Snapshot, error) {
	if c.baseURL == "" {
		return model.Snapshot{}, ErrNoBaseURL
	}
	start := time.Now()
	snap := model.Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		snap.Sleep = c.fetchSleep(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.HRDaily = c.fetchHRDaily(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.HRIntraday = c.fetchHRIntraday(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Steps = c.fetchSteps(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Calories = c.fetchCalories(ctx)
	}()
	wg.Wait()

	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	return snap, nil
}

func (c *Client) fetchSleep(ctx context.Context) []model.SleepSegment {
	var payload sleepSegmentsResponse
	if err := c.get(ctx, SeriesSleep, pathSleepSegments, &payload); err != nil {
		return nil
	}
	spans := make([]model.SleepSpan, 0, len(payload.Data))
	for _, rec := range payload.Data {
		start, err1 := time.Parse(timestampParseLayout, rec.Start)
		end, err2 := time.Parse(timestampParseLayout, rec.End)
		if err1 != nil || err2 != nil {
			continue
		}
		spans = append(spans, model.SleepSpan{
			Start: start,
			End:   end,
			Stage: model.ParseStage(rec.Stage),
		})
	}
	return sleepagg.SpansToSegments(spans)
}

func (c *Client) fetchHRDaily(ctx context.Context) []model.HRDailyPoint {
	var payload hrDailyResponse
	if err := c.get(ctx, SeriesHRDaily, pathHRLast7, &payload); err != nil {
		return nil
	}
	out := make([]model.HRDailyPoint, 0, len(payload.Data))
	for _, rec := range payload.Data {
		day, ok := model.ParseDay(rec.Date)
		if !ok {
			continue
		}
		out = append(out, model.HRDailyPoint{
			Day:    day,
			AvgBPM: rec.AvgBPM.Ptr(),
			MinBPM: rec.MinBPM.Ptr(),
			MaxBPM: rec.MaxBPM.Ptr(),
		})
	}
	return out
}

func (c *Client) fetchHRIntraday(ctx context.Context) []model.HRIntradaySample {
	var payload hrIntradayResponse
	if err := c.get(ctx, SeriesHRIntraday, pathHRIntraday, &payload); err != nil {
		return nil
	}
	out := make([]model.HRIntradaySample, 0, len(payload.Samples))
	for _, rec := range payload.Samples {
		ts, err := time.Parse(timestampParseLayout, rec.TS)
		if err != nil {
			continue
		}
		out = append(out, model.HRIntradaySample{TS: ts, AvgBPM: rec.AvgBPM.Ptr()})
	}
	return out
}

func (c *Client) fetchSteps(ctx context.Context) []model.StepsDailyPoint {
	var payload stepsResponse
	if err := c.get(ctx, SeriesSteps, pathStepsLast7, &payload); err != nil {
		return nil
	}
	out := make([]model.StepsDailyPoint, 0, len(payload.Data))
	for _, rec := range payload.Data {
		day, ok := model.ParseDay(rec.Date)
		if !ok {
			continue
		}
		steps := 0
		if v := rec.Steps.Ptr(); v != nil && *v > 0 {
			steps = int(*v)
		}
		out = append(out, model.StepsDailyPoint{Day: day, Steps: steps})
	}
	return out
}

func (c *Client) fetchCalories(ctx context.Context) []model.CaloriesDailyPoint {
	var payload caloriesResponse
	if err := c.get(ctx, SeriesCalories, pathCaloriesLast7, &payload); err != nil {
		return nil
	}
	out := make([]model.CaloriesDailyPoint, 0, len(payload.Data))
	for _, rec := range payload.Data {
		day, ok := model.ParseDay(rec.Date)
		if !ok {
			continue
		}
		kcal := 0.0
		if v := rec.Kcal.Ptr(); v != nil && *v > 0 {
			kcal = *v
		}
		out = append(out, model.CaloriesDailyPoint{Day: day, Kcal: kcal})
	}
	return out
}

func (c *Client) get(ctx context.Context, series, path string, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		metrics.RecordFetchError(series)
		c.log.Warn(ctx, "series fetch failed; defaulting to empty",
			logger.String("series", series),
			logger.Error(err),
		)
		return fmt.Errorf("fetch %s: %w", series, err)
	}
	if resp.IsError() {
		metrics.RecordFetchError(series)
		c.log.Warn(ctx, "series fetch returned error status; defaulting to empty",
			logger.String("series", series),
			logger.Int("status", resp.StatusCode()),
		)
		return fmt.Errorf("fetch %s: %w: status %d", series, ErrUpstreamStatus, resp.StatusCode())
	}
	return nil
}
