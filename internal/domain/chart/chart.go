// Package chart reshapes aligned series into labeled-series form for the
// presentation layer. It performs no business logic, but its contract is
// load-bearing: label order is preserved and absent values are emitted as
// null, never as 0 and never as NaN.
package chart

import "math"

// Series type identifiers understood by the renderer.
const (
	TypeLine       = "line"
	TypeStackedBar = "stackedBar"
)

// Dataset is one named value sequence aligned to the series labels. A nil
// entry means "no value to plot", which is distinct from 0.
type Dataset struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
}

// LabeledSeries is the generic chart-ready shape: an ordered label sequence
// plus one or more named value sequences of the same length.
type LabeledSeries struct {
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	YTitle   string    `json:"yTitle,omitempty"`
	Stacked  bool      `json:"stacked"`
}

// Value wraps a float for plotting, coercing NaN and infinities to null so
// no NaN ever reaches the wire.
func Value(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Optional wraps an optional reading, passing absence through as null and
// sanitizing non-finite values.
func Optional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Value(*v)
}

// Values maps a plain float slice into plot values.
func Values(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = Value(v)
	}
	return out
}
