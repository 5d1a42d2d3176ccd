package baseline_test

import (
	"testing"

	"github.com/michellecs268/driftwatch/internal/domain/baseline"
	"github.com/michellecs268/driftwatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given accumulated series", t, func() {
		Convey("When a series has several values", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{"Logins": {4, 2, 5, 2, 1}},
				Days:   5,
			}
			stats, missing := baseline.Compute(acc)

			Convey("Then mean and Bessel-corrected stddev are rounded to two decimals", func() {
				// mean = 14/5 = 2.8; sample variance = 10.8/4 = 2.7
				So(missing, ShouldBeEmpty)
				So(stats["Logins"].Mean, ShouldEqual, 2.8)
				So(stats["Logins"].StdDev, ShouldEqual, 1.64)
			})
		})

		Convey("When a series has a single value", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{"TimeOnline": {7.42}},
				Days:   1,
			}
			stats, missing := baseline.Compute(acc)

			Convey("Then the stddev collapses to zero", func() {
				So(missing, ShouldBeEmpty)
				So(stats["TimeOnline"].Mean, ShouldEqual, 7.42)
				So(stats["TimeOnline"].StdDev, ShouldEqual, 0)
			})
		})

		Convey("When a series is empty", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Logins":     {3, 4},
					"EmailsSent": {},
				},
				Days: 2,
			}
			stats, missing := baseline.Compute(acc)

			Convey("Then the event is excluded and flagged missing", func() {
				So(missing, ShouldResemble, []string{"EmailsSent"})
				_, ok := stats["EmailsSent"]
				So(ok, ShouldBeFalse)
				So(stats["Logins"].Mean, ShouldEqual, 3.5)
			})
		})

		Convey("When several series are empty", func() {
			acc := &model.AccumulatedSeries{
				Series: map[string][]float64{
					"Zeta":  {},
					"Alpha": {},
				},
				Days: 0,
			}
			_, missing := baseline.Compute(acc)

			Convey("Then the missing list is sorted for stable reporting", func() {
				So(missing, ShouldResemble, []string{"Alpha", "Zeta"})
			})
		})
	})
}
