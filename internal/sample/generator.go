// Package sample generates synthetic wellness snapshots for local testing
// of the engine without a real fitness upstream.
package sample

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/vitalis/internal/domain/model"
)

// Baseline values for the synthetic week.
const (
	baseLightMinutes = 250.0
	baseDeepMinutes  = 90.0
	baseREMMinutes   = 95.0
	baseAwakeMinutes = 15.0
	baseHRAvgBPM     = 62.0
	baseSteps        = 8000
	baseKcal         = 2200.0

	intradayStepMinutes = 5
	intradayHours       = 8
)

// Generator produces randomized but plausible snapshots. A fixed seed gives
// reproducible data across runs.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC(),
	}
}

// jitter returns base scaled by a factor in [1-spread, 1+spread].
func (g *Generator) jitter(base, spread float64) float64 {
	return base * (1 + spread*(2*g.rng.Float64()-1))
}

// Snapshot generates days of daily series ending yesterday, plus one night
// of intraday heart-rate samples.
func (g *Generator) Snapshot(days int) model.Snapshot {
	snap := model.Snapshot{
		ID:      uuid.NewString(),
		TakenAt: g.now,
	}

	for i := days; i >= 1; i-- {
		day := model.DayOf(g.now.AddDate(0, 0, -i))

		snap.Sleep = append(snap.Sleep,
			model.SleepSegment{Day: day, Stage: model.StageLight, Minutes: g.jitter(baseLightMinutes, 0.2)},
			model.SleepSegment{Day: day, Stage: model.StageDeep, Minutes: g.jitter(baseDeepMinutes, 0.3)},
			model.SleepSegment{Day: day, Stage: model.StageREM, Minutes: g.jitter(baseREMMinutes, 0.3)},
			model.SleepSegment{Day: day, Stage: model.StageAwake, Minutes: g.jitter(baseAwakeMinutes, 0.5)},
		)

		avg := g.jitter(baseHRAvgBPM, 0.08)
		snap.HRDaily = append(snap.HRDaily, model.HRDailyPoint{
			Day:    day,
			AvgBPM: model.Float(avg),
			MinBPM: model.Float(avg - g.jitter(14, 0.3)),
			MaxBPM: model.Float(avg + g.jitter(55, 0.3)),
		})

		snap.Steps = append(snap.Steps, model.StepsDailyPoint{
			Day:   day,
			Steps: int(g.jitter(float64(baseSteps), 0.35)),
		})

		snap.Calories = append(snap.Calories, model.CaloriesDailyPoint{
			Day:  day,
			Kcal: g.jitter(baseKcal, 0.15),
		})
	}

	// One night of 5-minute samples ending this morning.
	start := g.now.Truncate(time.Hour).Add(-intradayHours * time.Hour)
	for m := 0; m < intradayHours*60; m += intradayStepMinutes {
		snap.HRIntraday = append(snap.HRIntraday, model.HRIntradaySample{
			TS:     start.Add(time.Duration(m) * time.Minute),
			AvgBPM: model.Float(g.jitter(baseHRAvgBPM-6, 0.1)),
		})
	}

	return snap
}
