package metrics_test

import (
	"testing"
	"time"

	"github.com/michellecs268/driftwatch/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	convey.Convey("Given the metrics manager", t, func() {
		convey.Convey("When creating a manager on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithNamespace("testns"),
				metrics.WithSubsystem("testsub"),
				metrics.WithPrometheusRegistry(registry),
			)

			convey.Convey("Then all pipeline metrics register", func() {
				convey.So(m, convey.ShouldNotBeNil)
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				convey.So(names["testns_testsub_batches_generated_total"], convey.ShouldBeTrue)
				convey.So(names["testns_testsub_alert_cycles_total"], convey.ShouldBeTrue)
				convey.So(names["testns_testsub_alerts_raised_total"], convey.ShouldBeTrue)
				convey.So(names["testns_testsub_scoring_duration_seconds"], convey.ShouldBeTrue)
				convey.So(names["testns_testsub_catalog_events"], convey.ShouldBeTrue)
			})
		})

		convey.Convey("When recording through the package-level helpers", func() {
			metrics.RecordBatch(5, 3)
			metrics.RecordCycle()
			metrics.RecordCycleFailure()
			metrics.RecordScores(5, 2)
			metrics.ObserveScoringDuration(10 * time.Millisecond)
			metrics.SetCatalogSize(3)

			convey.Convey("Then the global registry gathers without error", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(families), convey.ShouldBeGreaterThan, 0)
			})
		})
	})
}
