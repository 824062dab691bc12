package sample_test

import (
	"testing"

	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/internal/sample"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := sample.NewGenerator(42)

		Convey("When generating a week", func() {
			snap := gen.Snapshot(7)

			Convey("Then every series is populated", func() {
				So(snap.ID, ShouldNotBeEmpty)
				So(snap.Sleep, ShouldHaveLength, 7*4)
				So(snap.HRDaily, ShouldHaveLength, 7)
				So(snap.Steps, ShouldHaveLength, 7)
				So(snap.Calories, ShouldHaveLength, 7)
				So(snap.HRIntraday, ShouldNotBeEmpty)
			})

			Convey("Then stages are canonical and minutes positive", func() {
				for _, seg := range snap.Sleep {
					So(seg.Stage, ShouldBeIn,
						model.StageLight, model.StageDeep, model.StageREM, model.StageAwake)
					So(seg.Minutes, ShouldBeGreaterThan, 0)
				}
			})

			Convey("Then heart-rate bounds are ordered", func() {
				for _, p := range snap.HRDaily {
					So(p.AvgBPM, ShouldNotBeNil)
					So(*p.MinBPM, ShouldBeLessThan, *p.AvgBPM)
					So(*p.MaxBPM, ShouldBeGreaterThan, *p.AvgBPM)
				}
			})
		})

		Convey("When generating twice with the same seed", func() {
			a := sample.NewGenerator(7).Snapshot(7)
			b := sample.NewGenerator(7).Snapshot(7)

			Convey("Then the content fingerprints match", func() {
				So(a.Fingerprint(), ShouldEqual, b.Fingerprint())
			})

			Convey("And a different seed diverges", func() {
				c := sample.NewGenerator(8).Snapshot(7)
				So(c.Fingerprint(), ShouldNotEqual, a.Fingerprint())
			})
		})
	})
}
