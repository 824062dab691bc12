package sleepagg

import (
	"time"

	"github.com/okian/vitalis/internal/domain/model"
)

// NightAnchorHour assigns sleep between 18:00 and next-day 18:00 to the
// previous calendar date, so a night that crosses midnight stays one bucket.
const NightAnchorHour = 18

// SpansToSegments converts raw timestamped sleep intervals into per-day
// stage segments. Zero and negative durations are dropped, and each span is
// bucketed to its night via the evening anchor.
func SpansToSegments(spans []model.SleepSpan) []model.SleepSegment {
	segs := make([]model.SleepSegment, 0, len(spans))
	for _, sp := range spans {
		if !sp.End.After(sp.Start) {
			continue
		}
		if sp.Stage == model.StageUnknown {
			continue
		}
		segs = append(segs, model.SleepSegment{
			Day:     NightOf(sp.Start),
			Stage:   sp.Stage,
			Minutes: sp.End.Sub(sp.Start).Minutes(),
		})
	}
	return segs
}

// NightOf returns the night bucket a timestamp belongs to.
func NightOf(t time.Time) model.Day {
	return model.DayOf(t.Add(-NightAnchorHour * time.Hour))
}
