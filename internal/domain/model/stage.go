// Package model contains the raw wellness series passed between layers.
package model

import "strings"

// Stage identifies a sleep stage. The string values are the canonical
// display names carried through to chart labels.
type Stage string

// Canonical sleep stages.
const (
	StageLight    Stage = "Light sleep"
	StageDeep     Stage = "Deep sleep"
	StageREM      Stage = "REM sleep"
	StageAwake    Stage = "Awake (during sleep)"
	StageEnvelope Stage = "Sleep" // generic envelope without granular stages
	StageOutOfBed Stage = "Out-of-bed"
	StageUnknown  Stage = ""
)

// RestfulStages are the stages that count toward total sleep. Awake and
// out-of-bed minutes are excluded from sleep totals and from scoring.
var RestfulStages = []Stage{StageLight, StageDeep, StageREM}

// ParseStage canonicalizes a free-form stage name. Provider exports name
// stages inconsistently ("light", "LIGHT_SLEEP", "Light sleep"), so matching
// is substring-based and case-insensitive. Unrecognized names map to
// StageUnknown; they are ignored for scoring but retained for display.
func ParseStage(name string) Stage {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return StageUnknown
	case strings.Contains(n, "light"):
		return StageLight
	case strings.Contains(n, "deep"):
		return StageDeep
	case strings.Contains(n, "rem"):
		return StageREM
	case strings.Contains(n, "awake"):
		return StageAwake
	case strings.Contains(n, "out-of-bed"), strings.Contains(n, "out of bed"):
		return StageOutOfBed
	case n == "sleep":
		return StageEnvelope
	default:
		return StageUnknown
	}
}

// Restful reports whether the stage counts toward total sleep minutes.
func (s Stage) Restful() bool {
	return s == StageLight || s == StageDeep || s == StageREM
}
