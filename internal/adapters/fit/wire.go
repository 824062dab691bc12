package fit

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// wireNumber decodes an optional numeric JSON value tolerantly: numbers and
// quoted numbers parse, while null, empty strings, and malformed input all
// decode as absent. Malformed values must degrade to "no reading" rather
// than failing the whole payload or propagating NaN downstream.
type wireNumber struct {
	value *float64
}

// Ptr returns the decoded value, nil when absent.
func (n wireNumber) Ptr() *float64 { return n.value }

func (n *wireNumber) UnmarshalJSON(b []byte) error {
	n.value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil //nolint:nilerr // malformed input means "absent", not failure
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			n.value = &v
		}
		return nil
	}
	if v, err := strconv.ParseFloat(string(b), 64); err == nil {
		n.value = &v
	}
	return nil
}

// Response envelopes mirroring the upstream fitness service payloads.

type sleepSegmentsResponse struct {
	Data []sleepSegmentRecord `json:"data"`
}

type sleepSegmentRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Stage string `json:"stage"`
}

type hrDailyResponse struct {
	Data []hrDailyRecord `json:"data"`
}

type hrDailyRecord struct {
	Date   string     `json:"date"`
	AvgBPM wireNumber `json:"avg_bpm"`
	MinBPM wireNumber `json:"min_bpm"`
	MaxBPM wireNumber `json:"max_bpm"`
}

type hrIntradayResponse struct {
	Samples []hrIntradayRecord `json:"samples"`
}

type hrIntradayRecord struct {
	TS     string     `json:"ts"`
	AvgBPM wireNumber `json:"avg_bpm"`
}

type stepsResponse struct {
	Data []stepsRecord `json:"data"`
}

type stepsRecord struct {
	Date  string     `json:"date"`
	Steps wireNumber `json:"steps"`
}

type caloriesResponse struct {
	Data []caloriesRecord `json:"data"`
}

type caloriesRecord struct {
	Date string     `json:"date"`
	Kcal wireNumber `json:"kcal"`
}
