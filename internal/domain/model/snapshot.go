package model

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// Snapshot bundles the five raw input series for one full recompute.
// A snapshot is immutable once built: the engine never mutates it and every
// recomputation reads a fresh one.
type Snapshot struct {
	ID         string
	TakenAt    time.Time
	Sleep      []SleepSegment
	HRDaily    []HRDailyPoint
	HRIntraday []HRIntradaySample
	Steps      []StepsDailyPoint
	Calories   []CaloriesDailyPoint
}

// Empty reports whether no series carries any record.
func (s Snapshot) Empty() bool {
	return len(s.Sleep) == 0 && len(s.HRDaily) == 0 && len(s.HRIntraday) == 0 &&
		len(s.Steps) == 0 && len(s.Calories) == 0
}

// Fingerprint returns a content hash over all series, independent of ID,
// TakenAt and record order. Two snapshots with equal fingerprints yield
// identical derived results, so the engine can skip recomputing them.
func (s Snapshot) Fingerprint() string {
	lines := make([]string, 0,
		len(s.Sleep)+len(s.HRDaily)+len(s.HRIntraday)+len(s.Steps)+len(s.Calories))

	for _, seg := range s.Sleep {
		lines = append(lines, fmt.Sprintf("sl|%s|%s|%g", seg.Day, seg.Stage, seg.Minutes))
	}
	for _, p := range s.HRDaily {
		lines = append(lines, fmt.Sprintf("hr|%s|%s|%s|%s", p.Day, optKey(p.AvgBPM), optKey(p.MinBPM), optKey(p.MaxBPM)))
	}
	for _, p := range s.HRIntraday {
		lines = append(lines, fmt.Sprintf("hi|%d|%s", p.TS.UnixNano(), optKey(p.AvgBPM)))
	}
	for _, p := range s.Steps {
		lines = append(lines, fmt.Sprintf("st|%s|%d", p.Day, p.Steps))
	}
	for _, p := range s.Calories {
		lines = append(lines, fmt.Sprintf("ca|%s|%g", p.Day, p.Kcal))
	}
	sort.Strings(lines)

	h := fnv.New64a()
	for _, line := range lines {
		_, _ = h.Write([]byte(line))
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func optKey(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
