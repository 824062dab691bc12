package model

import "time"

// dayFormat is the calendar-day key layout. Lexicographic order equals
// chronological order, which the aligner relies on.
const dayFormat = "2006-01-02"

// Day is a calendar-day key in "YYYY-MM-DD" form, used as the join key
// across all series.
type Day string

// DayOf returns the Day key for a timestamp.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayFormat))
}

// ParseDay validates a raw day string and returns its Day key.
// The bool result is false when the input is not a calendar day.
func ParseDay(raw string) (Day, bool) {
	t, err := time.Parse(dayFormat, raw)
	if err != nil {
		return "", false
	}
	return DayOf(t), true
}

// SleepSegment is one per-day, per-stage block of minutes. Multiple segments
// for the same day and stage are summed during aggregation.
type SleepSegment struct {
	Day     Day
	Stage   Stage
	Minutes float64
}

// SleepSpan is a raw timestamped sleep interval as exported by the upstream
// fitness provider. Spans are bucketed to nights before aggregation.
type SleepSpan struct {
	Start time.Time
	End   time.Time
	Stage Stage
}

// HRDailyPoint is one day's heart-rate summary. A nil bpm field means
// "no reading", which is distinct from a zero reading and must never be
// coerced to 0 before averaging.
type HRDailyPoint struct {
	Day    Day
	AvgBPM *float64
	MinBPM *float64
	MaxBPM *float64
}

// HRIntradaySample is a 5-minute-bucket heart-rate sample, used only for
// same-day trend display.
type HRIntradaySample struct {
	TS     time.Time
	AvgBPM *float64
}

// StepsDailyPoint is one day's step total. Absent days contribute 0.
type StepsDailyPoint struct {
	Day   Day
	Steps int
}

// CaloriesDailyPoint is one day's energy-expenditure total. Absent days
// contribute 0.
type CaloriesDailyPoint struct {
	Day  Day
	Kcal float64
}

// Float returns a pointer to v, for building optional readings.
func Float(v float64) *float64 { return &v }
