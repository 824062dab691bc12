// Package sleepagg folds raw sleep-stage segments into per-day, per-stage
// minute totals.
package sleepagg

import "github.com/okian/vitalis/internal/domain/model"

// Default stage composition, used only when a day carries a generic "Sleep"
// envelope and granular stage minutes are missing or undershoot it.
const (
	defaultLightWeight = 0.60
	defaultDeepWeight  = 0.18
	defaultREMWeight   = 0.22

	allocationEpsilon = 1e-6
)

// StageMinutes maps a stage to its minute total for one day. Every canonical
// stage is present (0 when absent from the input); unknown stages are
// dropped here and handled by the display layer.
type StageMinutes map[model.Stage]float64

// Aggregate groups segments by day, then by stage, summing minutes. Every
// aligned day gets an entry; a day absent from the input gets all-zero stage
// totals. The generic "Sleep" envelope never adds to stage minutes directly
// (that would double count); instead its remainder is allocated across
// missing granular stages using the default composition.
func Aggregate(days []model.Day, segs []model.SleepSegment) map[model.Day]StageMinutes {
	byDay := make(map[model.Day]StageMinutes, len(days))
	envelope := make(map[model.Day]float64)
	aligned := make(map[model.Day]struct{}, len(days))

	for _, d := range days {
		byDay[d] = newStageMinutes()
		aligned[d] = struct{}{}
	}

	for _, seg := range segs {
		if _, ok := aligned[seg.Day]; !ok {
			continue
		}
		if seg.Minutes < 0 {
			continue
		}
		switch seg.Stage {
		case model.StageEnvelope:
			envelope[seg.Day] += seg.Minutes
		case model.StageLight, model.StageDeep, model.StageREM, model.StageAwake, model.StageOutOfBed:
			byDay[seg.Day][seg.Stage] += seg.Minutes
		default:
			// Unknown stage: ignored for totals and scoring.
		}
	}

	for day, stages := range byDay {
		allocateEnvelope(stages, envelope[day])
	}
	return byDay
}

// TotalSleep returns Light+Deep+REM minutes. Awake and out-of-bed minutes
// are excluded by contract.
func TotalSleep(stages StageMinutes) float64 {
	var total float64
	for _, st := range model.RestfulStages {
		total += stages[st]
	}
	return total
}

func newStageMinutes() StageMinutes {
	return StageMinutes{
		model.StageLight:    0,
		model.StageDeep:     0,
		model.StageREM:      0,
		model.StageAwake:    0,
		model.StageOutOfBed: 0,
	}
}

// allocateEnvelope distributes a day's generic "Sleep" envelope across
// granular stages. The restful target is the envelope minus awake minutes;
// when granular minutes undershoot that target the remainder goes to the
// missing stages weighted by the default composition, and to Light sleep
// when every stage already has minutes.
func allocateEnvelope(stages StageMinutes, envelopeMins float64) {
	if envelopeMins <= 0 {
		return
	}
	measured := TotalSleep(stages)
	target := envelopeMins - stages[model.StageAwake]
	if target < 0 {
		target = measured
	}

	switch {
	case target > 0 && measured == 0:
		// No granular data at all: use the default composition entirely.
		stages[model.StageLight] = target * defaultLightWeight
		stages[model.StageDeep] = target * defaultDeepWeight
		stages[model.StageREM] = target * defaultREMWeight
	case target > 0 && measured < target-allocationEpsilon:
		remainder := target - measured
		weights := map[model.Stage]float64{
			model.StageLight: defaultLightWeight,
			model.StageDeep:  defaultDeepWeight,
			model.StageREM:   defaultREMWeight,
		}
		var missing []model.Stage
		var totalWeight float64
		for _, st := range model.RestfulStages {
			if stages[st] <= 0 {
				missing = append(missing, st)
				totalWeight += weights[st]
			}
		}
		if len(missing) == 0 {
			stages[model.StageLight] += remainder
			return
		}
		for _, st := range missing {
			stages[st] += remainder * (weights[st] / totalWeight)
		}
	}
}
