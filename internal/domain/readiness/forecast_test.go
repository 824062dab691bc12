package readiness_test

import (
	"testing"

	"github.com/okian/vitalis/internal/domain/readiness"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProject(t *testing.T) {
	Convey("Given a rising readiness history", t, func() {
		history := []readiness.Score{
			{Day: "2026-08-18", Value: 70},
			{Day: "2026-08-19", Value: 75},
			{Day: "2026-08-20", Value: 80},
		}

		Convey("When projecting three days ahead", func() {
			got := readiness.Project(history, 3)

			Convey("Then the last three history points are echoed with day labels", func() {
				So(got, ShouldHaveLength, 6)
				So(got[0], ShouldResemble, readiness.Point{Label: "2026-08-18", Value: 70})
				So(got[1], ShouldResemble, readiness.Point{Label: "2026-08-19", Value: 75})
				So(got[2], ShouldResemble, readiness.Point{Label: "2026-08-20", Value: 80})
			})

			Convey("Then the forecast damps toward the historical mean", func() {
				// mean = 75; 0.6*80+0.4*75=78, then 77, then 76.
				So(got[3], ShouldResemble, readiness.Point{Label: "D+1", Value: 78, IsForecast: true})
				So(got[4], ShouldResemble, readiness.Point{Label: "D+2", Value: 77, IsForecast: true})
				So(got[5], ShouldResemble, readiness.Point{Label: "D+3", Value: 76, IsForecast: true})
			})
		})
	})

	Convey("Given a long history", t, func() {
		history := make([]readiness.Score, 7)
		for i := range history {
			history[i] = readiness.Score{Day: "2026-08-20", Value: 80}
		}

		Convey("When projecting", func() {
			got := readiness.Project(history, 3)

			Convey("Then only the trailing three history points are echoed", func() {
				So(got, ShouldHaveLength, 6)
			})
		})
	})

	Convey("Given no history at all", t, func() {
		got := readiness.Project(nil, 3)

		Convey("Then the projection seeds at the neutral 70", func() {
			So(got, ShouldHaveLength, 3)
			for i, p := range got {
				So(p.Value, ShouldEqual, 70)
				So(p.IsForecast, ShouldBeTrue)
				So(p.Label, ShouldEqual, []string{"D+1", "D+2", "D+3"}[i])
			}
		})
	})

	Convey("Given a non-positive horizon", t, func() {
		got := readiness.Project(nil, 0)

		Convey("Then the default horizon applies", func() {
			So(got, ShouldHaveLength, readiness.DefaultHorizon)
		})
	})
}
