package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("Then its collectors register on that registry", func() {
				manager.recomputes.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "vitalis_engine_recomputes_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithRegistry(registry),
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the overrides apply to collector names", func() {
				So(manager, ShouldNotBeNil)
				manager.syncsTriggered.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "testns_testsub_syncs_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package-level helpers", func() {
			record := func() {
				RecordRecompute()
				RecordRecomputeDuration(12.5)
				RecordSnapshotDuplicate()
				UpdateReadinessScore(83)
				UpdateSeriesLength("sleep", 28)
				RecordFetchError("hr_daily")
				RecordFetchDuration(40)
				RecordSync()
				RecordHTTPRequest("snapshot", "POST", "200")
				RecordHTTPRequestDuration("snapshot", "POST", "200", 3.2)
				RecordHTTPError("snapshot", "POST", "client_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}

			Convey("Then none of them panic", func() {
				So(record, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry for the health endpoint", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
