// Package align normalizes per-record dates into the ordered set of unique
// calendar-day keys used as the join key across all series.
package align

import (
	"sort"

	"github.com/okian/vitalis/internal/domain/model"
)

// DefaultWindowDays is the trailing window used across the dashboard.
const DefaultWindowDays = 7

// Keys returns the ascending-sorted set of distinct days present in the
// input, truncated to the most recent lastK entries. lastK <= 0 disables
// truncation. Empty input yields an empty (non-nil) set; downstream
// components treat that as "no data".
func Keys(days []model.Day, lastK int) []model.Day {
	seen := make(map[model.Day]struct{}, len(days))
	out := make([]model.Day, 0, len(days))
	for _, d := range days {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if lastK > 0 && len(out) > lastK {
		out = out[len(out)-lastK:]
	}
	return out
}

// FromSegments extracts day keys from a sleep series, the usual reference
// series for alignment.
func FromSegments(segs []model.SleepSegment, lastK int) []model.Day {
	days := make([]model.Day, 0, len(segs))
	for _, s := range segs {
		days = append(days, s.Day)
	}
	return Keys(days, lastK)
}
