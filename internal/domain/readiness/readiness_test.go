package readiness_test

import (
	"fmt"
	"testing"

	"github.com/okian/vitalis/internal/domain/derive"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/domain/readiness"
	. "github.com/smartystreets/goconvey/convey"
)

// week builds a 7-day metrics window from parallel slices. hr entries may be
// negative to mean "no reading".
func week(sleep []float64, hr []float64, steps []int) []derive.DayMetrics {
	out := make([]derive.DayMetrics, len(sleep))
	for i := range sleep {
		out[i] = derive.DayMetrics{
			Day:               model.Day(fmt.Sprintf("2026-08-%02d", 14+i)),
			TotalSleepMinutes: sleep[i],
			Steps:             steps[i],
		}
		if hr[i] >= 0 {
			out[i].HRAvg = model.Float(hr[i])
		}
	}
	return out
}

func flat(v float64) []float64 { return []float64{v, v, v, v, v, v, v} }
func flatInt(v int) []int      { return []int{v, v, v, v, v, v, v} }

func TestScore(t *testing.T) {
	Convey("Given a scorer with default configuration", t, func() {
		scorer := readiness.NewScorer()

		Convey("When the window is empty", func() {
			got := scorer.Score(nil)

			Convey("Then the neutral default applies", func() {
				So(got.Value, ShouldEqual, 50)
				So(got.Components.Sleep, ShouldEqual, 0)
				So(got.Components.HR, ShouldEqual, 1)
				So(got.Components.Steps, ShouldEqual, 1)
			})
		})

		Convey("When sleep is steady at 432 minutes with no heart-rate data", func() {
			w := week(flat(432), flat(-1), flatInt(8000))
			got := scorer.Score(w)

			Convey("Then the sleep component is 0.9 and missing HR scores 1", func() {
				So(got.Components.Sleep, ShouldAlmostEqual, 0.9, 1e-9)
				So(got.Components.HR, ShouldEqual, 1)
				So(got.Components.Steps, ShouldEqual, 1)
				So(got.Value, ShouldEqual, 95)
			})
		})

		Convey("When sleep exceeds the goal", func() {
			atGoal := scorer.Score(week(flat(480), flat(-1), flatInt(8000)))
			over := scorer.Score(week(flat(600), flat(-1), flatInt(8000)))

			Convey("Then overshoot plateaus instead of earning a bonus", func() {
				So(atGoal.Components.Sleep, ShouldEqual, 1)
				So(over.Components.Sleep, ShouldEqual, 1)
				So(over.Value, ShouldEqual, atGoal.Value)
			})
		})

		Convey("When the latest heart rate runs above the weekly average", func() {
			hr := []float64{60, 60, 60, 60, 60, 60, 80}
			got := scorer.Score(week(flat(480), hr, flatInt(8000)))

			Convey("Then the HR component takes a linear penalty", func() {
				// weekly avg 62.857; deviation 17.143 of the 20 bpm band.
				So(got.Components.HR, ShouldAlmostEqual, 1-17.142857142857142/20, 1e-9)
			})
		})

		Convey("When the deviation exceeds the saturation band", func() {
			hr := []float64{60, 60, 60, 60, 60, 60, 120}
			got := scorer.Score(week(flat(480), hr, flatInt(8000)))

			Convey("Then the HR component bottoms out at 0", func() {
				So(got.Components.HR, ShouldEqual, 0)
			})
		})

		Convey("When only some days carry heart-rate readings", func() {
			hr := []float64{-1, -1, 60, -1, -1, 60, -1}
			got := scorer.Score(week(flat(480), hr, flatInt(8000)))

			Convey("Then missing readings never drag the average toward 0", func() {
				// The average is 60, not 17; the latest day falls back to it.
				So(got.Components.HR, ShouldEqual, 1)
			})
		})

		Convey("When the latest step count spikes far above the baseline", func() {
			steps := []int{8000, 8000, 8000, 8000, 8000, 8000, 20000}
			got := scorer.Score(week(flat(480), flat(-1), steps))

			Convey("Then the steps component drops to the overexertion level", func() {
				So(got.Components.Steps, ShouldEqual, 0.80)
			})
		})

		Convey("When the latest step count collapses below the baseline", func() {
			steps := []int{8000, 8000, 8000, 8000, 8000, 8000, 1000}
			got := scorer.Score(week(flat(480), flat(-1), steps))

			Convey("Then the steps component maps to the low-activity level", func() {
				So(got.Components.Steps, ShouldEqual, 0.86)
			})
		})

		Convey("When the latest step count drifts mildly off baseline", func() {
			steps := []int{8000, 8000, 8000, 8000, 8000, 8000, 6000}
			got := scorer.Score(week(flat(480), flat(-1), steps))

			Convey("Then the edge band applies", func() {
				// rel = 6000/7714.29 = 0.778, inside (0.60, 0.85).
				So(got.Components.Steps, ShouldEqual, 0.94)
			})
		})

		Convey("When the latest step count overshoots mildly", func() {
			// Six days of 575 and one of 750 make the average exactly 600,
			// so rel = 750/600 = 1.25, inside (1.15, 1.35].
			steps := []int{575, 575, 575, 575, 575, 575, 750}
			got := scorer.Score(week(flat(480), flat(-1), steps))

			Convey("Then the edge band applies on the high side too", func() {
				So(got.Components.Steps, ShouldEqual, 0.94)
			})
		})

		Convey("When the ratio lands exactly on a breakpoint", func() {
			// Each window divides evenly so the ratio is the breakpoint
			// value itself, not a float neighbour.
			cases := []struct {
				name  string
				steps []int
				want  float64
			}{
				{"1.35 stays in the edge band", []int{565, 565, 565, 565, 565, 565, 810}, 0.94},
				{"1.15 stays on target", []int{585, 585, 585, 585, 585, 585, 690}, 1.00},
				{"0.85 stays on target", []int{615, 615, 615, 615, 615, 615, 510}, 1.00},
				{"0.60 stays in the edge band", []int{1600, 1600, 1600, 1600, 1600, 1600, 900}, 0.94},
			}
			for _, tc := range cases {
				Convey("Then "+tc.name, func() {
					got := scorer.Score(week(flat(480), flat(-1), tc.steps))
					So(got.Components.Steps, ShouldEqual, tc.want)
				})
			}
		})

		Convey("When there are no steps at all", func() {
			got := scorer.Score(week(flat(480), flat(-1), flatInt(0)))

			Convey("Then a zero baseline counts as perfectly on target", func() {
				So(got.Components.Steps, ShouldEqual, 1.00)
			})
		})

		Convey("Then the composite always stays within 0 and 100", func() {
			windows := [][]derive.DayMetrics{
				nil,
				week(flat(0), []float64{60, 60, 60, 60, 60, 60, 200}, []int{8000, 8000, 8000, 8000, 8000, 8000, 40000}),
				week(flat(10000), flat(40), flatInt(8000)),
			}
			for _, w := range windows {
				got := scorer.Score(w)
				So(got.Value, ShouldBeGreaterThanOrEqualTo, 0)
				So(got.Value, ShouldBeLessThanOrEqualTo, 100)
			}
		})
	})

	Convey("Given a scorer with overridden configuration", t, func() {
		scorer := readiness.NewScorer(
			readiness.WithGoalSleepMinutes(420),
			readiness.WithHRSaturationBPM(10),
			readiness.WithWeights(0.4, 0.4, 0.2),
		)

		Convey("When scoring a steady week", func() {
			got := scorer.Score(week(flat(420), flat(-1), flatInt(8000)))

			Convey("Then the overridden goal saturates the sleep component", func() {
				So(got.Components.Sleep, ShouldEqual, 1)
				So(got.Value, ShouldEqual, 100)
			})
		})
	})

	Convey("Given invalid weight overrides", t, func() {
		scorer := readiness.NewScorer(readiness.WithWeights(0.9, 0.9, 0.9))

		Convey("Then they are ignored and defaults stand", func() {
			got := scorer.Score(week(flat(432), flat(-1), flatInt(8000)))
			So(got.Value, ShouldEqual, 95)
		})
	})
}

func TestHistory(t *testing.T) {
	Convey("Given a week of improving sleep", t, func() {
		scorer := readiness.NewScorer()
		sleep := []float64{240, 280, 320, 360, 400, 440, 480}
		w := week(sleep, flat(-1), flatInt(8000))

		Convey("When scoring the history", func() {
			got := scorer.History(w)

			Convey("Then each day is scored against its own trailing context", func() {
				So(got, ShouldHaveLength, 7)
				So(got[0].Day, ShouldEqual, w[0].Day)
				So(got[6].Day, ShouldEqual, w[6].Day)
				// First day has only itself as baseline.
				So(got[0].Components.Sleep, ShouldAlmostEqual, 0.5, 1e-9)
				// Last day matches the full-window score.
				So(got[6].Value, ShouldEqual, scorer.Score(w).Value)
			})

			Convey("Then every day's score equals scoring its prefix", func() {
				for i := range w {
					So(got[i], ShouldResemble, scorer.Score(w[:i+1]))
				}
			})

			Convey("Then values trend upward with the sleep", func() {
				So(got[6].Value, ShouldBeGreaterThan, got[0].Value)
			})
		})
	})

	Convey("Given an empty window", t, func() {
		So(readiness.NewScorer().History(nil), ShouldBeEmpty)
	})
}
