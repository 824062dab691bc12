// Package service provides the core engine service that implements the
// dependencies required by the HTTP API: snapshot ingestion, the full
// recompute pipeline, and last-write-wins result publication.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/vitalis/internal/adapters/resultstore"
	"github.com/okian/vitalis/internal/domain/align"
	"github.com/okian/vitalis/internal/domain/chart"
	"github.com/okian/vitalis/internal/domain/derive"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/readiness"
	"github.com/okian/vitalis/internal/domain/sleepagg"
	"github.com/okian/vitalis/pkg/logger"
	"github.com/okian/vitalis/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWindowDays         = align.DefaultWindowDays
	defaultForecastHorizon    = readiness.DefaultHorizon
	defaultMaxIntradaySamples = 288
	defaultResultHistorySize  = 16
)

// Fetcher pulls a fresh snapshot from the upstream fitness service.
type Fetcher interface {
	FetchAll(ctx context.Context) (model.Snapshot, error)
}

// Result is one immutable output of a full recompute. The presentation
// layer reads it and discards it; nothing in it is mutated afterwards.
type Result struct {
	SnapshotID  string                         `json:"snapshot_id"`
	Fingerprint string                         `json:"fingerprint"`
	ComputedAt  time.Time                      `json:"computed_at"`
	Days        []model.Day                    `json:"days"`
	Metrics     []derive.DayMetrics            `json:"-"`
	Headline    derive.Headline                `json:"headline"`
	Readiness   readiness.Score                `json:"readiness"`
	History     []readiness.Score              `json:"history"`
	Projection  []readiness.Point              `json:"projection"`
	Charts      map[string]chart.LabeledSeries `json:"charts"`
}

// Service implements the API dependencies for the wellness engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer  *readiness.Scorer
	results resultstore.Store[Result]
	fetcher Fetcher

	// Configuration
	windowDays         int
	forecastHorizon    int
	maxIntradaySamples int
	resultHistorySize  int
	scorerOpts         []readiness.Option
	goalSleepMinutes   float64

	// State
	started         bool
	lastFingerprint string

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWindowDays sets the trailing alignment/baseline window.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithForecastHorizon sets how many days ahead readiness is projected.
func WithForecastHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.forecastHorizon = days
		}
	}
}

// WithMaxIntradaySamples caps the intraday HR chart length.
func WithMaxIntradaySamples(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxIntradaySamples = n
		}
	}
}

// WithResultHistorySize bounds the retained result ring.
func WithResultHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.resultHistorySize = n
		}
	}
}

// WithGoalSleepMinutes sets the nightly sleep goal used by scoring and the
// sleep-debt chart.
func WithGoalSleepMinutes(minutes float64) Option {
	return func(s *Service) {
		if minutes > 0 {
			s.goalSleepMinutes = minutes
			s.scorerOpts = append(s.scorerOpts, readiness.WithGoalSleepMinutes(minutes))
		}
	}
}

// WithHRSaturationBPM sets the heart-rate deviation saturation band.
func WithHRSaturationBPM(bpm float64) Option {
	return func(s *Service) {
		if bpm > 0 {
			s.scorerOpts = append(s.scorerOpts, readiness.WithHRSaturationBPM(bpm))
		}
	}
}

// WithWeights sets the readiness component weights.
func WithWeights(sleep, hr, steps float64) Option {
	return func(s *Service) {
		s.scorerOpts = append(s.scorerOpts, readiness.WithWeights(sleep, hr, steps))
	}
}

// WithFetcher sets the upstream snapshot fetcher. Without one, Sync reports
// ErrNoFetcher and ingestion happens only through the API.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		windowDays:         defaultWindowDays,
		forecastHorizon:    defaultForecastHorizon,
		maxIntradaySamples: defaultMaxIntradaySamples,
		resultHistorySize:  defaultResultHistorySize,
		goalSleepMinutes:   480,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.scorer = readiness.NewScorer(s.scorerOpts...)
	s.results = resultstore.NewInMemoryStore(
		resultstore.WithHistorySize[Result](s.resultHistorySize),
	)
	s.started = true
	s.logger.Info(ctx, "wellness engine started",
		logger.Int("windowDays", s.windowDays),
		logger.Int("forecastHorizon", s.forecastHorizon),
	)
	return nil
}

// Stop marks the service stopped. The engine holds no goroutines; this
// exists for lifecycle symmetry with the callers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "wellness engine stopped")
}

// Ingest runs the full pipeline on a snapshot and publishes the result.
// Snapshots whose fingerprint matches the last computed one are acknowledged
// without recomputing: the pipeline is pure, so the published result is
// already correct. Returns the current result and whether the snapshot was
// a duplicate.
func (s *Service) Ingest(ctx context.Context, snap model.Snapshot) (Result, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Result{}, false, ErrNotStarted
	}

	fp := snap.Fingerprint()
	if fp == s.lastFingerprint {
		metrics.RecordSnapshotDuplicate()
		s.logger.Debug(ctx, "duplicate snapshot; skipping recompute",
			logger.String("fingerprint", fp),
		)
		latest, _ := s.results.Latest(ctx)
		return latest, true, nil
	}

	start := time.Now()
	result := s.compute(snap, fp)
	elapsed := time.Since(start)

	s.results.Publish(ctx, result)
	s.lastFingerprint = fp

	metrics.RecordRecompute()
	metrics.RecordRecomputeDuration(float64(elapsed.Milliseconds()))
	metrics.UpdateReadinessScore(result.Readiness.Value)
	metrics.UpdateSeriesLength("sleep", len(snap.Sleep))
	metrics.UpdateSeriesLength("hr_daily", len(snap.HRDaily))
	metrics.UpdateSeriesLength("hr_intraday", len(snap.HRIntraday))
	metrics.UpdateSeriesLength("steps", len(snap.Steps))
	metrics.UpdateSeriesLength("calories", len(snap.Calories))

	s.logger.Info(ctx, "snapshot recomputed",
		logger.String("snapshotID", snap.ID),
		logger.Int("days", len(result.Days)),
		logger.Int("readiness", result.Readiness.Value),
		logger.Float64("durationMs", float64(elapsed.Milliseconds())),
	)
	return result, false, nil
}

// Sync fetches a fresh snapshot from the upstream service and ingests it.
func (s *Service) Sync(ctx context.Context) (Result, bool, error) {
	s.mu.RLock()
	fetcher := s.fetcher
	s.mu.RUnlock()

	if fetcher == nil {
		return Result{}, false, ErrNoFetcher
	}
	metrics.RecordSync()
	snap, err := fetcher.FetchAll(ctx)
	if err != nil {
		return Result{}, false, err
	}
	return s.Ingest(ctx, snap)
}

// Latest returns the most recently published result.
func (s *Service) Latest(ctx context.Context) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Result{}, false
	}
	return s.results.Latest(ctx)
}

// compute runs the pure pipeline: align, aggregate, derive, score, project,
// shape. It never fails; missing series degrade to their documented
// defaults. Callers hold s.mu.
func (s *Service) compute(snap model.Snapshot, fingerprint string) Result {
	days := align.Keys(unionDays(snap), s.windowDays)
	stages := sleepagg.Aggregate(days, snap.Sleep)
	dayMetrics := derive.Metrics(days, stages, snap.HRDaily, snap.Steps, snap.Calories)
	headline := derive.Headlines(snap, dayMetrics)

	history := s.scorer.History(dayMetrics)
	score := s.scorer.Score(dayMetrics)
	projection := readiness.Project(history, s.forecastHorizon)

	charts := map[string]chart.LabeledSeries{
		chart.NameSleepStages:     chart.SleepStages(days, stages),
		chart.NameHRTrend:         chart.HRTrend(days, snap.HRDaily),
		chart.NameStepsTrend:      chart.StepsTrend(days, snap.Steps),
		chart.NameCaloriesTrend:   chart.CaloriesTrend(days, snap.Calories),
		chart.NameHRIntraday:      chart.HRIntraday(snap.HRIntraday, s.maxIntradaySamples),
		chart.NameSleepDebt:       chart.SleepDebt(dayMetrics, s.goalSleepMinutes),
		chart.NameReadiness:       chart.ReadinessProjection(projection),
		chart.NameStepsVsCalories: chart.StepsVsCalories(snap.Steps, snap.Calories),
	}

	return Result{
		SnapshotID:  snap.ID,
		Fingerprint: fingerprint,
		ComputedAt:  snap.TakenAt,
		Days:        days,
		Metrics:     dayMetrics,
		Headline:    headline,
		Readiness:   score,
		History:     history,
		Projection:  projection,
		Charts:      charts,
	}
}

// unionDays collects day keys from every daily series. The aligned set is
// the union so that days carrying only activity or heart-rate data still
// reach the dashboard when sleep tracking has gaps.
func unionDays(snap model.Snapshot) []model.Day {
	days := make([]model.Day, 0,
		len(snap.Sleep)+len(snap.HRDaily)+len(snap.Steps)+len(snap.Calories))
	for _, r := range snap.Sleep {
		days = append(days, r.Day)
	}
	for _, r := range snap.HRDaily {
		days = append(days, r.Day)
	}
	for _, r := range snap.Steps {
		days = append(days, r.Day)
	}
	for _, r := range snap.Calories {
		days = append(days, r.Day)
	}
	return days
}

// Stats is the engine state exposed on the stats endpoint. The pointer
// fields stay nil until the first result is published.
type Stats struct {
	Started         bool       `json:"started"`
	WindowDays      int        `json:"window_days"`
	ForecastHorizon int        `json:"forecast_horizon"`
	SyncConfigured  bool       `json:"sync_configured"`
	RecomputeCount  int        `json:"recompute_count"`
	LastComputedAt  *time.Time `json:"last_computed_at,omitempty"`
	LastReadiness   *int       `json:"last_readiness,omitempty"`
	AlignedDays     int        `json:"aligned_days"`
}

// GetStats returns a point-in-time view of the engine state for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:         s.started,
		WindowDays:      s.windowDays,
		ForecastHorizon: s.forecastHorizon,
		SyncConfigured:  s.fetcher != nil,
	}
	if s.started {
		ctx := context.Background()
		stats.RecomputeCount = s.results.Count(ctx)
		if latest, ok := s.results.Latest(ctx); ok {
			computedAt := latest.ComputedAt
			readiness := latest.Readiness.Value
			stats.LastComputedAt = &computedAt
			stats.LastReadiness = &readiness
			stats.AlignedDays = len(latest.Days)
		}
	}
	return stats
}
