package config_test

import (
	"testing"

	"github.com/michellecs268/driftwatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("Then it carries the historical artifact names", func() {
			convey.So(cfg.LogsFile, convey.ShouldEqual, "logs.txt")
			convey.So(cfg.BaselineFile, convey.ShouldEqual, "baseline.txt")
			convey.So(cfg.StatsFile, convey.ShouldEqual, "baseline_statistics.txt")
			convey.So(cfg.LiveLogsFile, convey.ShouldEqual, "live_logs.txt")
		})

		convey.Convey("And the alerting defaults", func() {
			convey.So(cfg.ThresholdMultiplier, convey.ShouldEqual, 2.0)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.RandomSeed, convey.ShouldEqual, 0)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
		})
	})
}
