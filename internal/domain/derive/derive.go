// Package derive computes per-day KPI summaries from aligned daily buckets.
package derive

import (
	"math"
	"strconv"

	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/sleepagg"
)

// Placeholder is shown by headline KPIs when the underlying series is empty.
const Placeholder = "--"

// DayMetrics is the derived summary for one aligned day. HRAvg stays nil
// when the day has no heart-rate reading; steps and calories default to 0
// contribution when the day is absent from their series.
type DayMetrics struct {
	Day               model.Day
	SleepByStage      sleepagg.StageMinutes
	TotalSleepMinutes float64
	HRAvg             *float64
	Steps             int
	Kcal              float64
}

// Metrics joins the aggregated sleep stages and the daily series on the
// aligned day keys, producing one DayMetrics per day in ascending order.
func Metrics(
	days []model.Day,
	stages map[model.Day]sleepagg.StageMinutes,
	hr []model.HRDailyPoint,
	steps []model.StepsDailyPoint,
	calories []model.CaloriesDailyPoint,
) []DayMetrics {
	hrByDay := make(map[model.Day]model.HRDailyPoint, len(hr))
	for _, p := range hr {
		hrByDay[p.Day] = p
	}
	stepsByDay := make(map[model.Day]int, len(steps))
	for _, p := range steps {
		stepsByDay[p.Day] = p.Steps
	}
	kcalByDay := make(map[model.Day]float64, len(calories))
	for _, p := range calories {
		kcalByDay[p.Day] = p.Kcal
	}

	out := make([]DayMetrics, 0, len(days))
	for _, d := range days {
		st := stages[d]
		if st == nil {
			st = sleepagg.StageMinutes{}
		}
		m := DayMetrics{
			Day:               d,
			SleepByStage:      st,
			TotalSleepMinutes: sleepagg.TotalSleep(st),
			Steps:             stepsByDay[d],
			Kcal:              kcalByDay[d],
		}
		if p, ok := hrByDay[d]; ok {
			m.HRAvg = p.AvgBPM
		}
		out = append(out, m)
	}
	return out
}

// Headline carries the latest-day KPI strings for the dashboard header.
type Headline struct {
	SleepMinutes string `json:"sleep_minutes"`
	HRAvgBPM     string `json:"hr_avg_bpm"`
	Steps        string `json:"steps"`
	Kcal         string `json:"kcal"`
}

// Headlines formats the most recent day's KPIs. Each value independently
// falls back to the placeholder when its underlying series is empty, so a
// missing heart-rate export does not blank the step count.
func Headlines(snap model.Snapshot, metrics []DayMetrics) Headline {
	h := Headline{
		SleepMinutes: Placeholder,
		HRAvgBPM:     Placeholder,
		Steps:        Placeholder,
		Kcal:         Placeholder,
	}
	if len(metrics) == 0 {
		return h
	}
	last := metrics[len(metrics)-1]

	if len(snap.Sleep) > 0 {
		h.SleepMinutes = strconv.Itoa(int(math.Round(last.TotalSleepMinutes)))
	}
	if last.HRAvg != nil {
		h.HRAvgBPM = strconv.Itoa(int(math.Round(*last.HRAvg)))
	}
	if len(snap.Steps) > 0 {
		h.Steps = strconv.Itoa(last.Steps)
	}
	if len(snap.Calories) > 0 {
		h.Kcal = strconv.Itoa(int(math.Round(last.Kcal)))
	}
	return h
}
