package readiness

import (
	"fmt"
	"math"
)

// Forecast defaults.
const (
	DefaultHorizon = 3  // days projected ahead
	historyTail    = 3  // historical points echoed before the forecast
	neutralScore   = 70 // seed when no history exists

	blendLastWeight = 0.6
	blendMeanWeight = 0.4
)

// Point is one entry of the readiness history+projection series. Forecast
// points carry no component breakdown.
type Point struct {
	Label      string `json:"label"`
	Value      int    `json:"value"`
	IsForecast bool   `json:"is_forecast"`
}

// Project extrapolates the next horizon days of readiness from the trailing
// history using a damped recurrence toward the historical mean:
//
//	proj[i] = round(0.6*proj[i-1] + 0.4*meanR)
//
// This is a heuristic extrapolation, not a statistical model; it carries no
// confidence interval. The result echoes the last three historical points
// (labeled by day) followed by horizon forecast points labeled "D+1"..,
// flagged as forecasts. Empty history seeds both the last value and the
// mean at 70.
func Project(history []Score, horizon int) []Point {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	lastR := float64(neutralScore)
	meanR := float64(neutralScore)
	if len(history) > 0 {
		lastR = float64(history[len(history)-1].Value)
		var sum float64
		for _, h := range history {
			sum += float64(h.Value)
		}
		meanR = math.Round(sum / float64(len(history)))
	}

	tail := history
	if len(tail) > historyTail {
		tail = tail[len(tail)-historyTail:]
	}
	out := make([]Point, 0, len(tail)+horizon)
	for _, h := range tail {
		out = append(out, Point{Label: string(h.Day), Value: h.Value})
	}

	prev := lastR
	for i := 1; i <= horizon; i++ {
		next := math.Round(blendLastWeight*prev + blendMeanWeight*meanR)
		out = append(out, Point{
			Label:      fmt.Sprintf("D+%d", i),
			Value:      int(next),
			IsForecast: true,
		})
		prev = next
	}
	return out
}
