package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/vitalis/internal/adapters/http/api"
	service "github.com/okian/vitalis/internal/app"
	"github.com/okian/vitalis/internal/domain/chart"
	"github.com/okian/vitalis/internal/domain/model"
	"github.com/okian/vitalis/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// newTestServer wires the real engine behind the API, the same shape main
// uses.
func newTestServer(opts ...service.Option) (*httptest.Server, *service.Service) {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), svc
}

const validSnapshotBody = `{
	"sleep": [
		{"date": "2026-08-19", "stage": "Light sleep", "minutes": 240},
		{"date": "2026-08-19", "stage": "Deep sleep", "minutes": 90},
		{"date": "2026-08-20", "stage": "Light sleep", "minutes": 250},
		{"date": "2026-08-20", "stage": "Deep sleep", "minutes": 92},
		{"date": "2026-08-20", "stage": "REM sleep", "minutes": 95},
		{"date": "2026-08-20", "stage": "Awake (during sleep)", "minutes": 14}
	],
	"hr_daily": [
		{"date": "2026-08-19", "avg_bpm": 60},
		{"date": "2026-08-20", "avg_bpm": 62, "min_bpm": 48, "max_bpm": 120}
	],
	"steps": [
		{"date": "2026-08-19", "steps": 8000},
		{"date": "2026-08-20", "steps": 8500}
	],
	"calories": [
		{"date": "2026-08-20", "kcal": 2300}
	]
}`

func postSnapshot(srv *httptest.Server, body string) (*http.Response, error) {
	return http.Post(srv.URL+"/api/snapshot", "application/json", strings.NewReader(body))
}

func TestPostSnapshot(t *testing.T) {
	Convey("Given a running API", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		Convey("When posting a valid snapshot", func() {
			resp, err := postSnapshot(srv, validSnapshotBody)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the engine computes and acknowledges", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
					Readiness int    `json:"readiness"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "computed")
				So(ack.Duplicate, ShouldBeFalse)
				So(ack.Readiness, ShouldBeGreaterThan, 0)
			})

			Convey("And posting the same content again", func() {
				resp2, err2 := postSnapshot(srv, validSnapshotBody)
				So(err2, ShouldBeNil)
				defer resp2.Body.Close()

				Convey("Then it is flagged as a duplicate", func() {
					var ack struct {
						Status    string `json:"status"`
						Duplicate bool   `json:"duplicate"`
					}
					So(json.NewDecoder(resp2.Body).Decode(&ack), ShouldBeNil)
					So(ack.Status, ShouldEqual, "duplicate")
					So(ack.Duplicate, ShouldBeTrue)
				})
			})
		})

		Convey("When posting timestamped sleep spans instead of segments", func() {
			body := `{"sleep_spans": [
				{"start": "2026-08-20T23:00:00Z", "end": "2026-08-21T03:00:00Z", "stage": "light"},
				{"start": "2026-08-21T03:00:00Z", "end": "2026-08-21T04:32:00Z", "stage": "deep"}
			]}`
			resp, err := postSnapshot(srv, body)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			Convey("Then the night lands in one bucket", func() {
				latest, ok := svc.Latest(context.Background())
				So(ok, ShouldBeTrue)
				So(latest.Days, ShouldResemble, []model.Day{"2026-08-20"})
				So(latest.Headline.SleepMinutes, ShouldEqual, "332")
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := postSnapshot(srv, `{"sleep": [`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the API rejects it", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an invalid date", func() {
			resp, err := postSnapshot(srv, `{"steps": [{"date": "20/08/2026", "steps": 100}]}`)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the API rejects it with a reason", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var e struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				}
				So(json.NewDecoder(resp.Body).Decode(&e), ShouldBeNil)
				So(e.Code, ShouldEqual, "bad_request")
				So(e.Message, ShouldContainSubstring, "invalid date")
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/api/snapshot")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given an API with no data yet", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		Convey("Then dashboard, readiness and charts report no data", func() {
			for _, path := range []string{"/api/dashboard", "/api/readiness", "/api/charts/hr"} {
				resp, err := http.Get(srv.URL + path)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				resp.Body.Close()
			}
		})
	})

	Convey("Given an API with an ingested snapshot", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()
		resp, err := postSnapshot(srv, validSnapshotBody)
		So(err, ShouldBeNil)
		resp.Body.Close()

		Convey("When reading the dashboard", func() {
			resp, err := http.Get(srv.URL + "/api/dashboard")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var dash struct {
				Days     []string `json:"days"`
				Headline struct {
					SleepMinutes string `json:"sleep_minutes"`
					Steps        string `json:"steps"`
				} `json:"headline"`
				Readiness struct {
					Value      int `json:"value"`
					Components struct {
						Sleep float64 `json:"sleepScore"`
						HR    float64 `json:"hrScore"`
						Steps float64 `json:"stepsScore"`
					} `json:"components"`
				} `json:"readiness"`
				Charts map[string]json.RawMessage `json:"charts"`
			}
			So(json.NewDecoder(resp.Body).Decode(&dash), ShouldBeNil)

			Convey("Then it carries KPIs, the score breakdown, and all charts", func() {
				So(dash.Days, ShouldResemble, []string{"2026-08-19", "2026-08-20"})
				So(dash.Headline.SleepMinutes, ShouldEqual, "437")
				So(dash.Headline.Steps, ShouldEqual, "8500")
				So(dash.Readiness.Value, ShouldBeBetweenOrEqual, 0, 100)
				So(dash.Readiness.Components.Sleep, ShouldBeGreaterThan, 0)
				So(dash.Charts, ShouldContainKey, chart.NameSleepStages)
				So(dash.Charts, ShouldContainKey, chart.NameStepsVsCalories)
				So(len(dash.Charts), ShouldEqual, 8)
			})
		})

		Convey("When reading the readiness series", func() {
			resp, err := http.Get(srv.URL + "/api/readiness")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var body struct {
				History    []json.RawMessage `json:"history"`
				Projection []struct {
					Label      string `json:"label"`
					IsForecast bool   `json:"is_forecast"`
				} `json:"projection"`
			}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)

			Convey("Then history and the three-day projection are present", func() {
				So(body.History, ShouldHaveLength, 2)
				So(body.Projection, ShouldHaveLength, 5) // 2 history + 3 forecast
				last := body.Projection[len(body.Projection)-1]
				So(last.Label, ShouldEqual, "D+3")
				So(last.IsForecast, ShouldBeTrue)
			})
		})

		Convey("When reading a single chart", func() {
			resp, err := http.Get(srv.URL + "/api/charts/sleep-stages")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var series struct {
				Type     string   `json:"type"`
				Labels   []string `json:"labels"`
				Datasets []struct {
					Label string     `json:"label"`
					Data  []*float64 `json:"data"`
				} `json:"datasets"`
				Stacked bool `json:"stacked"`
			}
			So(json.NewDecoder(resp.Body).Decode(&series), ShouldBeNil)

			Convey("Then the shaped series round-trips", func() {
				So(series.Type, ShouldEqual, chart.TypeStackedBar)
				So(series.Stacked, ShouldBeTrue)
				So(series.Labels, ShouldResemble, []string{"2026-08-19", "2026-08-20"})
				So(series.Datasets, ShouldHaveLength, 4)
				So(*series.Datasets[0].Data[1], ShouldEqual, 250)
			})
		})

		Convey("When requesting an unknown chart", func() {
			resp, err := http.Get(srv.URL + "/api/charts/nope")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When requesting a chart with a nested path", func() {
			resp, err := http.Get(srv.URL + "/api/charts/a/b")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reading stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var stats struct {
				Started        bool   `json:"started"`
				WindowDays     int    `json:"window_days"`
				RecomputeCount int    `json:"recompute_count"`
				LastReadiness  *int   `json:"last_readiness"`
				LastComputedAt string `json:"last_computed_at"`
			}
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats.Started, ShouldBeTrue)
			So(stats.WindowDays, ShouldEqual, 7)
			So(stats.RecomputeCount, ShouldEqual, 1)
			So(stats.LastReadiness, ShouldNotBeNil)
			So(stats.LastComputedAt, ShouldNotBeEmpty)
		})
	})
}

func TestPostSync(t *testing.T) {
	Convey("Given an API without an upstream fetcher", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		Convey("When triggering a sync", func() {
			resp, err := http.Post(srv.URL+"/api/sync", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the API reports sync as unavailable", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})

	Convey("Given an API with a fetcher", t, func() {
		srv, svc := newTestServer(service.WithFetcher(&fixedFetcher{}))
		defer srv.Close()
		defer svc.Stop()

		Convey("When triggering a sync", func() {
			resp, err := http.Post(srv.URL+"/api/sync", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the fetched snapshot is computed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status string `json:"status"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "computed")
			})
		})
	})
}

type fixedFetcher struct{}

func (f *fixedFetcher) FetchAll(ctx context.Context) (model.Snapshot, error) {
	return model.Snapshot{
		ID: "upstream-1",
		Sleep: []model.SleepSegment{
			{Day: "2026-08-20", Stage: model.StageLight, Minutes: 400},
		},
	}, nil
}

func TestHealthz(t *testing.T) {
	Convey("Given a running API", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		Convey("When probing /healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it serves the metrics exposition", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
