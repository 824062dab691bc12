package chart

import (
	"github.com/okian/vitalis/internal/domain/derive"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/readiness"
	"github.com/okian/vitalis/internal/domain/sleepagg"
)

// Names of the dashboard chart series.
const (
	NameSleepStages      = "sleep-stages"
	NameHRTrend          = "hr"
	NameStepsTrend       = "steps"
	NameCaloriesTrend    = "calories"
	NameHRIntraday       = "hr-intraday"
	NameSleepDebt        = "sleep-debt"
	NameReadiness        = "readiness"
	NameStepsVsCalories  = "steps-vs-calories"
	intradayLabelLayout  = "15:04"
	compareWindowEntries = 7
)

func dayLabels(days []model.Day) []string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = string(d)
	}
	return labels
}

// SleepStages builds the 7-day stacked sleep-stage series, one dataset per
// restful stage in minutes. Awake minutes are shown as their own dataset so
// restless nights stay visible without inflating sleep totals.
func SleepStages(days []model.Day, stages map[model.Day]sleepagg.StageMinutes) LabeledSeries {
	order := []model.Stage{model.StageLight, model.StageDeep, model.StageREM, model.StageAwake}
	datasets := make([]Dataset, 0, len(order))
	for _, st := range order {
		data := make([]*float64, len(days))
		for i, d := range days {
			data[i] = Value(stages[d][st])
		}
		datasets = append(datasets, Dataset{Label: string(st), Data: data})
	}
	return LabeledSeries{
		Title:    "Sleep Stages (last 7 days)",
		Type:     TypeStackedBar,
		Labels:   dayLabels(days),
		Datasets: datasets,
		YTitle:   "minutes",
		Stacked:  true,
	}
}

// HRTrend builds the avg/min/max heart-rate trend. Days without a reading
// plot as gaps.
func HRTrend(days []model.Day, points []model.HRDailyPoint) LabeledSeries {
	byDay := make(map[model.Day]model.HRDailyPoint, len(points))
	for _, p := range points {
		byDay[p.Day] = p
	}
	avg := make([]*float64, len(days))
	mn := make([]*float64, len(days))
	mx := make([]*float64, len(days))
	for i, d := range days {
		p := byDay[d]
		avg[i] = Optional(p.AvgBPM)
		mn[i] = Optional(p.MinBPM)
		mx[i] = Optional(p.MaxBPM)
	}
	return LabeledSeries{
		Title:  "Heart Rate (last 7 days)",
		Type:   TypeLine,
		Labels: dayLabels(days),
		Datasets: []Dataset{
			{Label: "Avg BPM", Data: avg},
			{Label: "Min BPM", Data: mn},
			{Label: "Max BPM", Data: mx},
		},
		YTitle: "bpm",
	}
}

// StepsTrend builds the daily step-count trend. Absent days plot as 0, not
// as gaps: a day without step records is a zero-activity day.
func StepsTrend(days []model.Day, points []model.StepsDailyPoint) LabeledSeries {
	byDay := make(map[model.Day]int, len(points))
	for _, p := range points {
		byDay[p.Day] = p.Steps
	}
	data := make([]*float64, len(days))
	for i, d := range days {
		data[i] = Value(float64(byDay[d]))
	}
	return LabeledSeries{
		Title:    "Steps (last 7 days)",
		Type:     TypeLine,
		Labels:   dayLabels(days),
		Datasets: []Dataset{{Label: "Steps", Data: data}},
		YTitle:   "steps",
	}
}

// CaloriesTrend builds the daily calorie trend, defaulting absent days to 0.
func CaloriesTrend(days []model.Day, points []model.CaloriesDailyPoint) LabeledSeries {
	byDay := make(map[model.Day]float64, len(points))
	for _, p := range points {
		byDay[p.Day] = p.Kcal
	}
	data := make([]*float64, len(days))
	for i, d := range days {
		data[i] = Value(byDay[d])
	}
	return LabeledSeries{
		Title:    "Calories (last 7 days)",
		Type:     TypeLine,
		Labels:   dayLabels(days),
		Datasets: []Dataset{{Label: "Calories", Data: data}},
		YTitle:   "kcal",
	}
}

// HRIntraday builds the same-day heart-rate trend from 5-minute samples,
// labeled by local clock time. maxSamples <= 0 keeps every sample.
func HRIntraday(samples []model.HRIntradaySample, maxSamples int) LabeledSeries {
	if maxSamples > 0 && len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	labels := make([]string, len(samples))
	data := make([]*float64, len(samples))
	for i, s := range samples {
		labels[i] = s.TS.Format(intradayLabelLayout)
		data[i] = Optional(s.AvgBPM)
	}
	return LabeledSeries{
		Title:    "Intraday HR (Today)",
		Type:     TypeLine,
		Labels:   labels,
		Datasets: []Dataset{{Label: "Avg BPM", Data: data}},
		YTitle:   "bpm",
	}
}

// SleepDebt plots nightly sleep against the goal line so shortfalls read as
// the gap between the two datasets.
func SleepDebt(metrics []derive.DayMetrics, goalMinutes float64) LabeledSeries {
	labels := make([]string, len(metrics))
	slept := make([]*float64, len(metrics))
	goal := make([]*float64, len(metrics))
	for i, m := range metrics {
		labels[i] = string(m.Day)
		slept[i] = Value(m.TotalSleepMinutes)
		goal[i] = Value(goalMinutes)
	}
	return LabeledSeries{
		Title:  "Sleep vs Goal (last 7 days)",
		Type:   TypeLine,
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Total sleep", Data: slept},
			{Label: "Goal", Data: goal},
		},
		YTitle: "minutes",
	}
}

// ReadinessProjection shapes the history+projection points into one series.
// Forecast values stay in the same dataset; the renderer distinguishes them
// by the forecast flags.
func ReadinessProjection(points []readiness.Point) LabeledSeries {
	labels := make([]string, len(points))
	data := make([]*float64, len(points))
	flags := make([]*float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		data[i] = Value(float64(p.Value))
		if p.IsForecast {
			flags[i] = Value(1)
		} else {
			flags[i] = Value(0)
		}
	}
	return LabeledSeries{
		Title:  "Readiness (history + next 3 days)",
		Type:   TypeLine,
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Readiness", Data: data},
			{Label: "Forecast flag", Data: flags},
		},
		YTitle: "score",
	}
}

// StepsVsCalories overlays the two activity series on their overlapping
// days, keeping the most recent seven overlapping labels. Returns an empty
// series when the series never overlap.
func StepsVsCalories(steps []model.StepsDailyPoint, calories []model.CaloriesDailyPoint) LabeledSeries {
	stepsByDay := make(map[model.Day]float64, len(steps))
	stepsOrder := make([]model.Day, 0, len(steps))
	for _, p := range steps {
		if _, ok := stepsByDay[p.Day]; !ok {
			stepsOrder = append(stepsOrder, p.Day)
		}
		stepsByDay[p.Day] = float64(p.Steps)
	}
	kcalByDay := make(map[model.Day]float64, len(calories))
	for _, p := range calories {
		kcalByDay[p.Day] = p.Kcal
	}

	common := make([]model.Day, 0, len(stepsOrder))
	for _, d := range stepsOrder {
		if _, ok := kcalByDay[d]; ok {
			common = append(common, d)
		}
	}
	if len(common) > compareWindowEntries {
		common = common[len(common)-compareWindowEntries:]
	}

	stepVals := make([]*float64, len(common))
	kcalVals := make([]*float64, len(common))
	for i, d := range common {
		stepVals[i] = Value(stepsByDay[d])
		kcalVals[i] = Value(kcalByDay[d])
	}
	return LabeledSeries{
		Title:  "Steps vs Calories (last 7 days)",
		Type:   TypeLine,
		Labels: dayLabels(common),
		Datasets: []Dataset{
			{Label: "Steps", Data: stepVals},
			{Label: "Calories", Data: kcalVals},
		},
		YTitle: "steps / kcal",
	}
}
