package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/cobiadigital/school-pay-visualization/internal/config"
	"github.com/cobiadigital/school-pay-visualization/internal/domain/dashboard"
	"github.com/cobiadigital/school-pay-visualization/internal/sampledata"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// run executes the root command with args and returns its stdout.
func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// generated writes the sample sources into a temp dir.
func generated(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	if _, err := run("generate", "--out", dir); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, genericFile), filepath.Join(dir, detailedFile)
}

func TestGenerateCommand(t *testing.T) {
	convey.Convey("Given the generate command", t, func() {
		dir := t.TempDir()

		convey.Convey("When writing sample data with three districts per state", func() {
			out, err := run("generate", "--out", dir, "--districts", "3")

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then both source files should exist", func() {
				convey.So(out, convey.ShouldContainSubstring, genericFile)
				convey.So(out, convey.ShouldContainSubstring, detailedFile)

				raw, err := os.ReadFile(filepath.Join(dir, genericFile))
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
				convey.So(len(lines), convey.ShouldEqual, len(sampledata.Profiles)*3+1)

				raw, err = os.ReadFile(filepath.Join(dir, detailedFile))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldContainSubstring, "data_source")
			})
		})
	})
}

func TestSummaryCommand(t *testing.T) {
	convey.Convey("Given generated sources", t, func() {
		generic, detailed := generated(t)

		convey.Convey("When summarizing Alabama", func() {
			out, err := run("summary", "--generic", generic, "--detailed", detailed, "--state", "Alabama")

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then headline metrics and the detailed districts are printed", func() {
				convey.So(out, convey.ShouldContainSubstring, "Avg Starting Salary")
				convey.So(out, convey.ShouldContainSubstring, "(9 districts)")
				convey.So(out, convey.ShouldContainSubstring, "District Details")
				convey.So(out, convey.ShouldContainSubstring, "Data Source")
				convey.So(out, convey.ShouldContainSubstring, "Baldwin County")
			})
		})

		convey.Convey("When the selection matches nothing", func() {
			out, err := run("summary", "--generic", generic, "--detailed", detailed,
				"--region", "West", "--state", "Alabama")

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the metrics read No data", func() {
				convey.So(out, convey.ShouldContainSubstring, dashboard.NoData)
				convey.So(out, convey.ShouldContainSubstring, "No districts match the selection.")
			})
		})

		convey.Convey("When the detailed source is missing", func() {
			out, err := run("summary", "--generic", generic, "--detailed", filepath.Join(t.TempDir(), "missing.csv"))

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the generic data alone is summarized", func() {
				convey.So(out, convey.ShouldContainSubstring, "Detailed district data unavailable")
				convey.So(out, convey.ShouldContainSubstring, "... 20 of")
			})
		})

		convey.Convey("When the generic source is missing", func() {
			_, err := run("summary", "--generic", filepath.Join(t.TempDir(), "missing.csv"))

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestRenderCommand(t *testing.T) {
	convey.Convey("Given generated sources", t, func() {
		generic, detailed := generated(t)
		dir := filepath.Join(t.TempDir(), "charts")

		convey.Convey("When rendering every chart as SVG", func() {
			out, err := run("render", "--generic", generic, "--detailed", detailed,
				"--out", dir, "--format", "svg", "--region", "South")

			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then one file per chart is written", func() {
				for _, id := range dashboard.ChartIDs() {
					path := filepath.Join(dir, id+".svg")
					convey.So(out, convey.ShouldContainSubstring, path)

					raw, err := os.ReadFile(path)
					convey.So(err, convey.ShouldBeNil)
					convey.So(string(raw), convey.ShouldContainSubstring, "<svg")
				}
			})
		})

		convey.Convey("When asking for an unsupported format", func() {
			_, err := run("render", "--generic", generic, "--out", dir, "--format", "gif")

			convey.Convey("Then the command fails before loading anything", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "gif")
			})
		})
	})
}

func TestServeHandler(t *testing.T) {
	convey.Convey("Given a started service behind the full handler chain", t, func() {
		generic, detailed := generated(t)
		cfg := config.New()
		cfg.GenericPath = generic
		cfg.DetailedPath = detailed
		cfg.CORSOrigins = []string{"http://localhost:3000"}

		ctx := context.Background()
		svc := newService(cfg)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler := newHandler(ctx, cfg, svc)

		convey.Convey("When a browser calls the API from an allowed origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			convey.Convey("Then CORS and request ID headers are set", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "http://localhost:3000")
				convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When a browser calls from another origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
			req.Header.Set("Origin", "http://evil.example")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			convey.Convey("Then no CORS grant is made", func() {
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When requesting the API docs", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			convey.Convey("Then the OpenAPI document is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "openapi:")
			})
		})
	})
}

func TestMetricsConfiguration(t *testing.T) {
	convey.Convey("Given generated sources and metrics settings in the environment", t, func() {
		generic, _ := generated(t)
		t.Setenv("SALARY_METRICS_NAMESPACE", "teachers")
		t.Setenv("SALARY_METRICS_REFRESH_SECONDS", "2")
		t.Setenv("SALARY_METRICS_LABELS", "deployment=test")
		convey.Reset(func() { metrics.Configure() })

		convey.Convey("When a command loads its config", func() {
			_, err := run("summary", "--generic", generic, "--detailed", "")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the global metrics follow it", func() {
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 2*time.Second)
				convey.So(metrics.Enabled(), convey.ShouldBeTrue)

				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				convey.So(names["teachers_dashboard_queries_total"], convey.ShouldBeTrue)
				convey.So(names["salary_dashboard_queries_total"], convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given metrics disabled in config", t, func() {
		cfg := config.New()
		cfg.MetricsEnabled = false
		metrics.Configure(metricsOptions(cfg)...)
		convey.Reset(func() { metrics.Configure() })

		convey.Convey("Then the system updater returns at once", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx, time.Millisecond) }, convey.ShouldNotPanic)
			convey.So(metrics.Enabled(), convey.ShouldBeFalse)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then updating should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
