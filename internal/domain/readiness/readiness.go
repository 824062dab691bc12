// Package readiness computes the composite 0-100 daily readiness score from
// derived day metrics.
package readiness

import (
	"math"

	"github.com/okian/vitalis/internal/domain/derive"
	"github.com/okian/vitalis/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultGoalSleepMinutes = 480 // 8 hours
	defaultHRSaturationBPM  = 20
	defaultSleepWeight      = 0.5
	defaultHRWeight         = 0.3
	defaultStepsWeight      = 0.2
	maxScoreValue           = 100
)

// Steps-component breakpoints and levels. The mapping is intentionally
// asymmetric and discontinuous at the boundaries; the exact values are a
// contract, not a tuning candidate.
const (
	stepsHighBreak  = 1.35
	stepsLowBreak   = 0.60
	stepsBandLow    = 0.85
	stepsBandHigh   = 1.15
	stepsHighScore  = 0.80
	stepsLowScore   = 0.86
	stepsEdgeScore  = 0.94
	stepsIdealScore = 1.00
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithGoalSleepMinutes overrides the sleep goal used by the sleep component.
func WithGoalSleepMinutes(minutes float64) Option {
	return func(s *Scorer) {
		if minutes > 0 {
			s.goalSleepMinutes = minutes
		}
	}
}

// WithHRSaturationBPM overrides the deviation at which the heart-rate
// component saturates.
func WithHRSaturationBPM(bpm float64) Option {
	return func(s *Scorer) {
		if bpm > 0 {
			s.hrSaturationBPM = bpm
		}
	}
}

// WithWeights overrides the component weights. Invalid weight sets
// (non-positive or not summing to 1) are ignored.
func WithWeights(sleep, hr, steps float64) Option {
	return func(s *Scorer) {
		if sleep <= 0 || hr <= 0 || steps <= 0 {
			return
		}
		if math.Abs(sleep+hr+steps-1) > 1e-9 {
			return
		}
		s.sleepWeight, s.hrWeight, s.stepsWeight = sleep, hr, steps
	}
}

// Components carries the per-factor scores, each in [0, 1].
type Components struct {
	Sleep float64 `json:"sleepScore"`
	HR    float64 `json:"hrScore"`
	Steps float64 `json:"stepsScore"`
}

// Score is one day's composite readiness value with its factor breakdown.
type Score struct {
	Day        model.Day  `json:"date"`
	Value      int        `json:"value"`
	Components Components `json:"components"`
}

// Scorer combines derived KPIs into composite scores. It is total over its
// input domain: any missing series degrades to documented defaults and the
// scorer never fails.
type Scorer struct {
	goalSleepMinutes float64
	hrSaturationBPM  float64
	sleepWeight      float64
	hrWeight         float64
	stepsWeight      float64
}

// NewScorer creates a Scorer with default weights (sleep 50%, heart rate
// 30%, steps 20%).
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		goalSleepMinutes: defaultGoalSleepMinutes,
		hrSaturationBPM:  defaultHRSaturationBPM,
		sleepWeight:      defaultSleepWeight,
		hrWeight:         defaultHRWeight,
		stepsWeight:      defaultStepsWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the composite readiness for the most recent day in window,
// using the whole window (ascending, at most 7 days) as the baseline. An
// empty window yields the neutral default: sleep 0, heart rate 1, steps 1,
// composite 50.
func (s *Scorer) Score(window []derive.DayMetrics) Score {
	var last derive.DayMetrics
	if len(window) > 0 {
		last = window[len(window)-1]
	}

	comp := Components{
		Sleep: s.sleepComponent(last),
		HR:    s.hrComponent(window, last),
		Steps: s.stepsComponent(window, last),
	}
	raw := s.sleepWeight*comp.Sleep + s.hrWeight*comp.HR + s.stepsWeight*comp.Steps
	value := int(math.Round(maxScoreValue * raw))
	if value < 0 {
		value = 0
	}
	if value > maxScoreValue {
		value = maxScoreValue
	}
	return Score{Day: last.Day, Value: value, Components: comp}
}

// History scores every day in the window against the days before it,
// producing the per-day readiness series the projection extrapolates from.
// The caller aligns the window to the trailing cap, so the full prefix is
// each day's context.
func (s *Scorer) History(window []derive.DayMetrics) []Score {
	out := make([]Score, 0, len(window))
	for i := range window {
		out = append(out, s.Score(window[:i+1]))
	}
	return out
}

// sleepComponent: minutes toward the goal, clamped. Overshoot plateaus, it
// is not rewarded.
func (s *Scorer) sleepComponent(last derive.DayMetrics) float64 {
	return clamp01(last.TotalSleepMinutes / s.goalSleepMinutes)
}

// hrComponent: linear penalty on the latest day's deviation above the
// trailing average, saturating at the configured bpm band. Missing readings
// are excluded from the average, never zeroed; a day without a reading falls
// back to the average itself.
func (s *Scorer) hrComponent(window []derive.DayMetrics, last derive.DayMetrics) float64 {
	var sum float64
	var n int
	for _, m := range window {
		if m.HRAvg != nil {
			sum += *m.HRAvg
			n++
		}
	}
	var weeklyAvg float64
	if n > 0 {
		weeklyAvg = sum / float64(n)
	}
	yesterday := weeklyAvg
	if last.HRAvg != nil {
		yesterday = *last.HRAvg
	}
	return clamp01(1 - (yesterday-weeklyAvg)/s.hrSaturationBPM)
}

// stepsComponent: the latest day's steps relative to the trailing average,
// mapped through the fixed piecewise bands. rel is 1.0 when there is no
// baseline, and the mapping is deliberately non-monotonic at the outer
// breakpoints (sharp overshoot is penalized harder than mild overshoot).
func (s *Scorer) stepsComponent(window []derive.DayMetrics, last derive.DayMetrics) float64 {
	var sum float64
	for _, m := range window {
		sum += float64(m.Steps)
	}
	var avg float64
	if len(window) > 0 {
		avg = sum / float64(len(window))
	}
	rel := 1.0
	if avg > 0 {
		rel = float64(last.Steps) / avg
	}
	switch {
	case rel > stepsHighBreak:
		return stepsHighScore
	case rel < stepsLowBreak:
		return stepsLowScore
	case rel < stepsBandLow, rel > stepsBandHigh:
		return stepsEdgeScore
	default:
		return stepsIdealScore
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
