package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/echochamber/internal/config"
	"github.com/okian/echochamber/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func setEnv(vars map[string]string) func() {
	for k, v := range vars {
		_ = os.Setenv(k, v)
	}
	return func() {
		for k := range vars {
			_ = os.Unsetenv(k)
		}
	}
}

func TestConfigurationLoading(t *testing.T) {
	convey.Convey("Given ECHO_* environment variables", t, func() {
		restore := setEnv(map[string]string{
			"ECHO_ADDR":           ":8080",
			"ECHO_QUEUE_SIZE":     "1000",
			"ECHO_WORKER_COUNT":   "4",
			"ECHO_MAX_BATCH_SIZE": "50",
		})
		defer restore()

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 50)
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		restore := setEnv(map[string]string{"ECHO_ADDR": ""})
		defer restore()

		convey.Convey("Then configuration loading should fail", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestApplicationWiring(t *testing.T) {
	convey.Convey("Given a started service behind the full handler", t, func() {
		cfg := config.New()
		cfg.WorkerCount = 2
		cfg.QueueSize = 100
		cfg.MaxBatchSize = 3

		ctx := context.Background()
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler := newHandler(ctx, cfg, svc)
		post := func(path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			return w
		}
		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", path, http.NoBody))
			return w
		}

		convey.Convey("When analyzing and then reading statistics", func() {
			analyzed := post("/api/analyze", `{"sequence":[3,6,9,12]}`)
			stats := get("/api/statistics")

			convey.Convey("Then the analysis should be recorded", func() {
				convey.So(analyzed.Code, convey.ShouldEqual, http.StatusOK)
				var body struct {
					TotalAnalyzed    int            `json:"totalAnalyzed"`
					PatternBreakdown map[string]int `json:"patternBreakdown"`
				}
				convey.So(json.Unmarshal(stats.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body.TotalAnalyzed, convey.ShouldEqual, 1)
				convey.So(body.PatternBreakdown["arithmetic"], convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When submitting batches through the worker pool", func() {
			ok := post("/api/analyze-batch", `{"sequences":[[1,2],[2,4,8],[1,4,9,16]]}`)
			tooLarge := post("/api/analyze-batch", `{"sequences":[[1,2],[1,2],[1,2],[1,2]]}`)

			convey.Convey("Then the configured limit should apply", func() {
				convey.So(ok.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(ok.Body.String(), convey.ShouldContainSubstring, `"predicted":25`)
				convey.So(tooLarge.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When reading the docs, front end and metrics", func() {
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/").Body.String(), convey.ShouldContainSubstring, "Echo Chamber")
			convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/stats").Code, convey.ShouldEqual, http.StatusOK)
		})
	})

	convey.Convey("Given the front end is disabled", t, func() {
		cfg := config.New()
		cfg.UIEnabled = false
		svc := newService(cfg, logger.Get())
		handler := newHandler(context.Background(), cfg, svc)

		convey.Convey("Then / should be a JSON 404", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "Endpoint not found")
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background updaters", t, func() {
		svc := newService(config.New(), logger.Get())

		convey.Convey("Then they should return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx, logger.Get())
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("And a direct service update should not panic", func() {
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
